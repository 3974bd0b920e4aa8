// Package builder provides domain entities for one user's in-progress
// microsite customization: scalar overrides, the section edit map, and the
// deleted-section registry. Deletion hides a section without destroying its
// edits; restoring reveals the last-saved content, never the defaults.
package builder

import "reflect"

// Snapshot is the mutable customization state for one template instance
type Snapshot struct {
	TemplateID string `json:"templateId"`
	InstanceID string `json:"instanceId"`

	SiteName   string `json:"siteName,omitempty"`
	BrandColor string `json:"brandColor,omitempty"`
	Logo       string `json:"logo,omitempty"`

	// SectionEdits maps section id to its last-saved content object. Content
	// shape is section-kind specific and opaque here.
	SectionEdits map[string]map[string]any `json:"sectionEdits"`

	// DeletedSections marks hidden sections. Presence of a key with a true
	// value means hidden; restore removes the key entirely so deletion can
	// be tested by key presence.
	DeletedSections map[string]bool `json:"deletedSections"`
}

// NewSnapshot creates an empty snapshot for a template instance
func NewSnapshot(templateID, instanceID string) *Snapshot {
	return &Snapshot{
		TemplateID:      templateID,
		InstanceID:      instanceID,
		SectionEdits:    make(map[string]map[string]any),
		DeletedSections: make(map[string]bool),
	}
}

// ensureMaps guards against snapshots decoded from storage with nil maps
func (s *Snapshot) ensureMaps() {
	if s.SectionEdits == nil {
		s.SectionEdits = make(map[string]map[string]any)
	}
	if s.DeletedSections == nil {
		s.DeletedSections = make(map[string]bool)
	}
}

// SaveSection replaces the stored content for a section wholesale. This is
// not a deep merge: the caller sends the complete content object each time.
func (s *Snapshot) SaveSection(sectionID string, content map[string]any) {
	s.ensureMaps()
	if content == nil {
		content = map[string]any{}
	}
	s.SectionEdits[sectionID] = content
}

// SectionEdit returns the last-saved content for a section, if any
func (s *Snapshot) SectionEdit(sectionID string) (map[string]any, bool) {
	edit, ok := s.SectionEdits[sectionID]
	return edit, ok
}

// DeleteSection flags a section as hidden. Prior edits are untouched.
func (s *Snapshot) DeleteSection(sectionID string) {
	s.ensureMaps()
	s.DeletedSections[sectionID] = true
}

// RestoreSection removes the deleted flag entirely. Restoring a section that
// was never deleted is a no-op; the return reports whether anything changed.
func (s *Snapshot) RestoreSection(sectionID string) bool {
	if _, ok := s.DeletedSections[sectionID]; !ok {
		return false
	}
	delete(s.DeletedSections, sectionID)
	return true
}

// IsDeleted reports whether a section is currently hidden
func (s *Snapshot) IsDeleted(sectionID string) bool {
	return s.DeletedSections[sectionID]
}

// Reset empties both maps. Scalar overrides are cleared as well; the caller
// is responsible for removing the persisted keys.
func (s *Snapshot) Reset() {
	s.SiteName = ""
	s.BrandColor = ""
	s.Logo = ""
	s.SectionEdits = make(map[string]map[string]any)
	s.DeletedSections = make(map[string]bool)
}

// Clone returns a copy safe to read while the original keeps mutating. The
// outer maps are copied; section content maps are copied one level deep.
func (s *Snapshot) Clone() *Snapshot {
	clone := &Snapshot{
		TemplateID:      s.TemplateID,
		InstanceID:      s.InstanceID,
		SiteName:        s.SiteName,
		BrandColor:      s.BrandColor,
		Logo:            s.Logo,
		SectionEdits:    make(map[string]map[string]any, len(s.SectionEdits)),
		DeletedSections: make(map[string]bool, len(s.DeletedSections)),
	}
	for sectionID, content := range s.SectionEdits {
		copied := make(map[string]any, len(content))
		for key, value := range content {
			copied[key] = value
		}
		clone.SectionEdits[sectionID] = copied
	}
	for sectionID, hidden := range s.DeletedSections {
		clone.DeletedSections[sectionID] = hidden
	}
	return clone
}

// EffectiveContent resolves what a renderer should see for a section: the
// saved edit when one exists, otherwise the template defaults. When an edit
// exists, any repeatable-array field it lacks (or holds as a non-array) is
// backfilled from the defaults so a partially-edited object never breaks a
// renderer expecting an array.
func (s *Snapshot) EffectiveContent(sectionID string, defaults map[string]any) map[string]any {
	edit, ok := s.SectionEdits[sectionID]
	if !ok {
		return defaults
	}

	resolved := make(map[string]any, len(edit)+len(defaults))
	for key, value := range edit {
		resolved[key] = value
	}
	for key, defaultValue := range defaults {
		if !isArrayValue(defaultValue) {
			continue
		}
		if current, present := resolved[key]; !present || !isArrayValue(current) {
			resolved[key] = defaultValue
		}
	}
	return resolved
}

func isArrayValue(v any) bool {
	if v == nil {
		return false
	}
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}
