package footprint

import "time"

// SectionActivity aggregates footprint entries for one section
type SectionActivity struct {
	Edits        int       `json:"edits"`
	Deletes      int       `json:"deletes"`
	Restores     int       `json:"restores"`
	LastModified time.Time `json:"lastModified"`
}

// Summary is an on-demand digest of the activity log. It is computed from
// the entries each time; nothing here is cached.
type Summary struct {
	TotalActions int                         `json:"totalActions"`
	Actions      map[ActionKind]int          `json:"actions"`
	Sections     map[string]*SectionActivity `json:"sections"`
	FirstAction  *time.Time                  `json:"firstAction,omitempty"`
	LastAction   *time.Time                  `json:"lastAction,omitempty"`
	SessionID    string                      `json:"sessionId"`
}

// Summarize computes a digest over the given entries. Entries may be in any
// order; first/last are derived from timestamps. The per-section breakdown
// only considers entries whose details carry a section id.
func Summarize(entries []Entry, sessionID string) *Summary {
	summary := &Summary{
		TotalActions: len(entries),
		Actions:      make(map[ActionKind]int),
		Sections:     make(map[string]*SectionActivity),
		SessionID:    sessionID,
	}

	for _, entry := range entries {
		summary.Actions[entry.Kind]++

		if summary.FirstAction == nil || entry.Timestamp.Before(*summary.FirstAction) {
			ts := entry.Timestamp
			summary.FirstAction = &ts
		}
		if summary.LastAction == nil || entry.Timestamp.After(*summary.LastAction) {
			ts := entry.Timestamp
			summary.LastAction = &ts
		}

		sectionID, ok := entry.SectionID()
		if !ok {
			continue
		}

		activity := summary.Sections[sectionID]
		if activity == nil {
			activity = &SectionActivity{}
			summary.Sections[sectionID] = activity
		}

		switch entry.Kind {
		case ActionSectionEdit:
			activity.Edits++
		case ActionSectionDelete:
			activity.Deletes++
		case ActionSectionRestore:
			activity.Restores++
		}
		if entry.Timestamp.After(activity.LastModified) {
			activity.LastModified = entry.Timestamp
		}
	}

	return summary
}
