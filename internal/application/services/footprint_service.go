package services

import (
	"sync"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/domain/repositories"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// FootprintService maintains the per-instance activity log. The in-memory log
// is authoritative; persistence is best-effort and failures never surface to
// the caller of a tracked action.
type FootprintService struct {
	repo   repositories.StateRepository
	logger *logging.ChanneledLogger
	cap    int

	mu   sync.Mutex
	logs map[string][]footprint.Entry // instanceID -> oldest first
}

// NewFootprintService creates a footprint service with the given log cap
func NewFootprintService(repo repositories.StateRepository, cap int, logger *logging.ChanneledLogger) *FootprintService {
	if cap <= 0 {
		cap = 100
	}
	return &FootprintService{
		repo:   repo,
		logger: logger,
		cap:    cap,
		logs:   make(map[string][]footprint.Entry),
	}
}

// hydrate loads the persisted log for an instance on first touch. A storage
// failure yields an empty log, never an error.
func (s *FootprintService) hydrate(instanceID string) []footprint.Entry {
	if entries, ok := s.logs[instanceID]; ok {
		return entries
	}

	entries, err := s.repo.GetFootprints(instanceID)
	if err != nil {
		s.logger.Footprint().Warn("Could not hydrate footprint log, starting empty",
			"instanceId", instanceID, "error", err.Error())
		entries = nil
	}
	if len(entries) > s.cap {
		entries = entries[len(entries)-s.cap:]
	}
	s.logs[instanceID] = entries
	return entries
}

// Track appends a new entry, trims the log to the cap by dropping the oldest
// entries, and persists best-effort. The created entry is always returned.
func (s *FootprintService) Track(instanceID, sessionID string, kind footprint.ActionKind, details map[string]any) footprint.Entry {
	entry := footprint.NewEntry(kind, details, sessionID)

	s.mu.Lock()
	entries := append(s.hydrate(instanceID), entry)
	if len(entries) > s.cap {
		entries = entries[len(entries)-s.cap:]
	}
	s.logs[instanceID] = entries
	snapshot := make([]footprint.Entry, len(entries))
	copy(snapshot, entries)
	s.mu.Unlock()

	if err := s.repo.SetFootprints(instanceID, snapshot); err != nil {
		s.logger.Footprint().Warn("Footprint persistence failed, keeping in-memory log",
			"instanceId", instanceID, "error", err.Error())
	}

	s.logger.Footprint().Debug("Action tracked",
		"instanceId", instanceID,
		"sessionId", logging.SanitizeSessionID(sessionID),
		"kind", string(kind),
		"logSize", len(snapshot))

	return entry
}

// GetAll returns a copy of the log, most recent first
func (s *FootprintService) GetAll(instanceID string) []footprint.Entry {
	s.mu.Lock()
	entries := s.hydrate(instanceID)
	out := make([]footprint.Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	s.mu.Unlock()
	return out
}

// Recent returns up to n entries, most recent first
func (s *FootprintService) Recent(instanceID string, n int) []footprint.Entry {
	all := s.GetAll(instanceID)
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// Summary computes the aggregate view of the log on demand
func (s *FootprintService) Summary(instanceID, sessionID string) *footprint.Summary {
	s.mu.Lock()
	entries := s.hydrate(instanceID)
	snapshot := make([]footprint.Entry, len(entries))
	copy(snapshot, entries)
	s.mu.Unlock()

	return footprint.Summarize(snapshot, sessionID)
}

// Count returns the current log length for an instance
func (s *FootprintService) Count(instanceID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hydrate(instanceID))
}

// Clear empties the log for an instance. Clearing an empty or unknown log is
// a no-op; storage failures are logged and swallowed.
func (s *FootprintService) Clear(instanceID string) {
	s.mu.Lock()
	s.logs[instanceID] = nil
	s.mu.Unlock()

	if err := s.repo.Clear(instanceID, repositories.KeyFootprints); err != nil {
		s.logger.Footprint().Warn("Footprint clear persistence failed",
			"instanceId", instanceID, "error", err.Error())
	}
}
