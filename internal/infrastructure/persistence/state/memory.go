package state

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/domain/repositories"
)

// MemoryRepository is an in-memory StateRepository. It round-trips values
// through JSON so stored shapes match the SQLite implementation exactly;
// used in tests and as a fallback when no database is reachable.
type MemoryRepository struct {
	blobs map[string]map[repositories.StateKey][]byte
	mu    sync.RWMutex
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		blobs: make(map[string]map[repositories.StateKey][]byte),
	}
}

func (m *MemoryRepository) getBlob(instanceID string, key repositories.StateKey, out any) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	instance, ok := m.blobs[instanceID]
	if !ok {
		return false, nil
	}
	payload, ok := instance[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s for %s: %w", key, instanceID, err)
	}
	return true, nil
}

func (m *MemoryRepository) setBlob(instanceID string, key repositories.StateKey, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s for %s: %w", key, instanceID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blobs[instanceID] == nil {
		m.blobs[instanceID] = make(map[repositories.StateKey][]byte)
	}
	m.blobs[instanceID][key] = payload
	return nil
}

// HasKey reports whether a blob is currently stored; test helper
func (m *MemoryRepository) HasKey(instanceID string, key repositories.StateKey) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	instance, ok := m.blobs[instanceID]
	if !ok {
		return false
	}
	_, ok = instance[key]
	return ok
}

func (m *MemoryRepository) GetSectionEdits(instanceID string) (map[string]map[string]any, error) {
	edits := make(map[string]map[string]any)
	if _, err := m.getBlob(instanceID, repositories.KeySectionEdits, &edits); err != nil {
		return nil, err
	}
	return edits, nil
}

func (m *MemoryRepository) SetSectionEdits(instanceID string, edits map[string]map[string]any) error {
	return m.setBlob(instanceID, repositories.KeySectionEdits, edits)
}

func (m *MemoryRepository) GetDeletedSections(instanceID string) (map[string]bool, error) {
	deleted := make(map[string]bool)
	if _, err := m.getBlob(instanceID, repositories.KeyDeletedSections, &deleted); err != nil {
		return nil, err
	}
	return deleted, nil
}

func (m *MemoryRepository) SetDeletedSections(instanceID string, deleted map[string]bool) error {
	return m.setBlob(instanceID, repositories.KeyDeletedSections, deleted)
}

func (m *MemoryRepository) GetFootprints(instanceID string) ([]footprint.Entry, error) {
	var entries []footprint.Entry
	if _, err := m.getBlob(instanceID, repositories.KeyFootprints, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *MemoryRepository) SetFootprints(instanceID string, entries []footprint.Entry) error {
	return m.setBlob(instanceID, repositories.KeyFootprints, entries)
}

func (m *MemoryRepository) GetFormData(instanceID string) (map[string]string, error) {
	form := make(map[string]string)
	if _, err := m.getBlob(instanceID, repositories.KeyFormData, &form); err != nil {
		return nil, err
	}
	return form, nil
}

func (m *MemoryRepository) SetFormData(instanceID string, form map[string]string) error {
	return m.setBlob(instanceID, repositories.KeyFormData, form)
}

func (m *MemoryRepository) GetSiteMeta(instanceID string) (*repositories.SiteMeta, error) {
	var meta repositories.SiteMeta
	found, err := m.getBlob(instanceID, repositories.KeySiteMeta, &meta)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &meta, nil
}

func (m *MemoryRepository) SetSiteMeta(instanceID string, meta *repositories.SiteMeta) error {
	return m.setBlob(instanceID, repositories.KeySiteMeta, meta)
}

func (m *MemoryRepository) Clear(instanceID string, keys ...repositories.StateKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	instance, ok := m.blobs[instanceID]
	if !ok {
		return nil
	}
	for _, key := range keys {
		delete(instance, key)
	}
	return nil
}

func (m *MemoryRepository) Close() error {
	return nil
}
