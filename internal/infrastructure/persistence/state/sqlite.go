package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/domain/repositories"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// SQLiteRepository persists builder state blobs in a single keyed table.
// Values are JSON-serialized text, one row per (instance, key).
type SQLiteRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewSQLiteRepository creates a repository over an open database handle
func NewSQLiteRepository(db *sql.DB, logger *logging.ChanneledLogger) *SQLiteRepository {
	return &SQLiteRepository{db: db, logger: logger}
}

// Init creates the backing table if it does not exist
func (r *SQLiteRepository) Init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS builder_state (
			instance_id TEXT NOT NULL,
			state_key   TEXT NOT NULL,
			payload     TEXT NOT NULL,
			updated_at  TEXT NOT NULL,
			PRIMARY KEY (instance_id, state_key)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create builder_state table: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) getBlob(instanceID string, key repositories.StateKey, out any) (bool, error) {
	var payload string
	err := r.db.QueryRow(
		`SELECT payload FROM builder_state WHERE instance_id = ? AND state_key = ?`,
		instanceID, string(key),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s for %s: %w", key, instanceID, err)
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		// A corrupt row is treated as absent; last-good state wins on reload.
		if r.logger != nil {
			r.logger.Storage().Warn("Discarding corrupt state blob",
				"instanceId", instanceID, "key", string(key), "error", err.Error())
		}
		return false, nil
	}
	return true, nil
}

func (r *SQLiteRepository) setBlob(instanceID string, key repositories.StateKey, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s for %s: %w", key, instanceID, err)
	}
	_, err = r.db.Exec(
		`INSERT INTO builder_state (instance_id, state_key, payload, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (instance_id, state_key) DO UPDATE SET
		   payload = excluded.payload, updated_at = excluded.updated_at`,
		instanceID, string(key), string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s for %s: %w", key, instanceID, err)
	}
	return nil
}

// GetSectionEdits returns the persisted section-edit map, empty when absent
func (r *SQLiteRepository) GetSectionEdits(instanceID string) (map[string]map[string]any, error) {
	edits := make(map[string]map[string]any)
	if _, err := r.getBlob(instanceID, repositories.KeySectionEdits, &edits); err != nil {
		return nil, err
	}
	return edits, nil
}

// SetSectionEdits persists the entire section-edit map
func (r *SQLiteRepository) SetSectionEdits(instanceID string, edits map[string]map[string]any) error {
	return r.setBlob(instanceID, repositories.KeySectionEdits, edits)
}

// GetDeletedSections returns the persisted deleted-flag map, empty when absent
func (r *SQLiteRepository) GetDeletedSections(instanceID string) (map[string]bool, error) {
	deleted := make(map[string]bool)
	if _, err := r.getBlob(instanceID, repositories.KeyDeletedSections, &deleted); err != nil {
		return nil, err
	}
	return deleted, nil
}

// SetDeletedSections persists the entire deleted-flag map
func (r *SQLiteRepository) SetDeletedSections(instanceID string, deleted map[string]bool) error {
	return r.setBlob(instanceID, repositories.KeyDeletedSections, deleted)
}

// GetFootprints returns the persisted activity log, empty when absent
func (r *SQLiteRepository) GetFootprints(instanceID string) ([]footprint.Entry, error) {
	var entries []footprint.Entry
	if _, err := r.getBlob(instanceID, repositories.KeyFootprints, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetFootprints persists the entire activity log
func (r *SQLiteRepository) SetFootprints(instanceID string, entries []footprint.Entry) error {
	return r.setBlob(instanceID, repositories.KeyFootprints, entries)
}

// GetFormData returns the persisted contact-form blob, empty when absent
func (r *SQLiteRepository) GetFormData(instanceID string) (map[string]string, error) {
	form := make(map[string]string)
	if _, err := r.getBlob(instanceID, repositories.KeyFormData, &form); err != nil {
		return nil, err
	}
	return form, nil
}

// SetFormData persists the contact-form blob
func (r *SQLiteRepository) SetFormData(instanceID string, form map[string]string) error {
	return r.setBlob(instanceID, repositories.KeyFormData, form)
}

// GetSiteMeta returns the persisted scalar overrides, nil when absent
func (r *SQLiteRepository) GetSiteMeta(instanceID string) (*repositories.SiteMeta, error) {
	var meta repositories.SiteMeta
	found, err := r.getBlob(instanceID, repositories.KeySiteMeta, &meta)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &meta, nil
}

// SetSiteMeta persists the scalar overrides
func (r *SQLiteRepository) SetSiteMeta(instanceID string, meta *repositories.SiteMeta) error {
	return r.setBlob(instanceID, repositories.KeySiteMeta, meta)
}

// Clear removes the given keys for an instance
func (r *SQLiteRepository) Clear(instanceID string, keys ...repositories.StateKey) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, 0, len(keys)+1)
	args = append(args, instanceID)
	for _, key := range keys {
		args = append(args, string(key))
	}
	_, err := r.db.Exec(
		`DELETE FROM builder_state WHERE instance_id = ? AND state_key IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to clear state for %s: %w", instanceID, err)
	}
	return nil
}

// Close closes the underlying database handle
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
