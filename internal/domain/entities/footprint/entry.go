// Package footprint provides domain entities for the builder activity log.
// Every tracked user action becomes one immutable Entry; the log is
// append-only within a session and capped to bound storage size.
package footprint

import (
	"time"

	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/security"
)

// ActionKind identifies the type of tracked builder action
type ActionKind string

const (
	ActionSectionEdit    ActionKind = "section_edit"
	ActionSectionDelete  ActionKind = "section_delete"
	ActionSectionRestore ActionKind = "section_restore"
	ActionFormUpdate     ActionKind = "form_update"
	ActionColorChange    ActionKind = "color_change"
	ActionTemplateSelect ActionKind = "template_select"
	ActionBuildRequest   ActionKind = "build_request"
	ActionWhatsAppShare  ActionKind = "whatsapp_share"
	ActionLinkCopy       ActionKind = "link_copy"
	ActionPreviewOpen    ActionKind = "preview_open"
)

// KnownActionKinds lists every kind the tracker recognizes, in display order
var KnownActionKinds = []ActionKind{
	ActionSectionEdit, ActionSectionDelete, ActionSectionRestore,
	ActionFormUpdate, ActionColorChange, ActionTemplateSelect,
	ActionBuildRequest, ActionWhatsAppShare, ActionLinkCopy,
	ActionPreviewOpen,
}

// Entry is one recorded user action. Immutable once created.
type Entry struct {
	ID        string         `json:"id"`
	Kind      ActionKind     `json:"kind"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"sessionId"`
}

// NewEntry creates a footprint entry with a fresh ULID and the current UTC time
func NewEntry(kind ActionKind, details map[string]any, sessionID string) Entry {
	if details == nil {
		details = map[string]any{}
	}
	return Entry{
		ID:        security.GenerateULID(),
		Kind:      kind,
		Details:   details,
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
	}
}

// SectionID extracts the section identifier from the entry details, if present
func (e Entry) SectionID() (string, bool) {
	if e.Details == nil {
		return "", false
	}
	if raw, ok := e.Details["sectionId"]; ok {
		if s, ok := raw.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// detailString reads a string detail field, substituting a fallback for
// missing or mistyped values so description logic never panics
func (e Entry) detailString(key, fallback string) string {
	if e.Details == nil {
		return fallback
	}
	if raw, ok := e.Details[key]; ok {
		if s, ok := raw.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
