// Package repositories defines the repository interfaces for builder state.
// These abstract the persistence mechanism so the core depends only on typed
// get/set/clear operations keyed by template instance, and tests can swap in
// an in-memory store.
package repositories

import (
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
)

// StateKey names one logical per-instance persistence blob
type StateKey string

const (
	KeySectionEdits    StateKey = "section_edits"
	KeyDeletedSections StateKey = "deleted_sections"
	KeyFootprints      StateKey = "footprints"
	KeyFormData        StateKey = "form_data"
	KeySiteMeta        StateKey = "site_meta"
)

// StateRepository persists builder state blobs per template instance. Absence
// of a key is an empty default, never an error.
type StateRepository interface {
	GetSectionEdits(instanceID string) (map[string]map[string]any, error)
	SetSectionEdits(instanceID string, edits map[string]map[string]any) error

	GetDeletedSections(instanceID string) (map[string]bool, error)
	SetDeletedSections(instanceID string, deleted map[string]bool) error

	GetFootprints(instanceID string) ([]footprint.Entry, error)
	SetFootprints(instanceID string, entries []footprint.Entry) error

	GetFormData(instanceID string) (map[string]string, error)
	SetFormData(instanceID string, form map[string]string) error

	GetSiteMeta(instanceID string) (*SiteMeta, error)
	SetSiteMeta(instanceID string, meta *SiteMeta) error

	// Clear removes the given keys for an instance; clearing absent keys is
	// a no-op.
	Clear(instanceID string, keys ...StateKey) error

	Close() error
}

// SiteMeta holds the scalar overrides persisted alongside the section maps
type SiteMeta struct {
	TemplateID string `json:"templateId"`
	SiteName   string `json:"siteName,omitempty"`
	BrandColor string `json:"brandColor,omitempty"`
	Logo       string `json:"logo,omitempty"`
}
