// Package sessions provides the in-memory, session-scoped identifier store.
// A builder session token distinguishes footprint entries from different
// visits without authentication. Tokens are created lazily on first use,
// never persisted, and swept after a TTL of inactivity.
package sessions

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/security"
)

// Session is one live builder session
type Session struct {
	ID           string    `json:"id"`
	InstanceID   string    `json:"instanceId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `json:"lastAccessed"`
}

// Store holds live sessions keyed by session id
type Store struct {
	sessions map[string]*Session
	ttl      time.Duration
	mu       sync.RWMutex
	logger   *logging.ChanneledLogger
}

// NewStore creates a session store with the given idle TTL
func NewStore(ttl time.Duration, logger *logging.ChanneledLogger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Acquire returns a live session id for an instance. When the provided id is
// known and bound to the same instance it is reused; otherwise a fresh ULID
// session is created lazily.
func (s *Store) Acquire(instanceID, providedID string) string {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	if providedID != "" {
		if session, ok := s.sessions[providedID]; ok && session.InstanceID == instanceID {
			session.LastAccessed = now
			return session.ID
		}
	}

	session := &Session{
		ID:           security.GenerateULID(),
		InstanceID:   instanceID,
		CreatedAt:    now,
		LastAccessed: now,
	}
	s.sessions[session.ID] = session

	if s.logger != nil {
		s.logger.Builder().Debug("Builder session created",
			"instanceId", instanceID, "sessionId", logging.SanitizeSessionID(session.ID))
	}
	return session.ID
}

// Get returns a session by id
func (s *Store) Get(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

// Count returns the number of live sessions
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle past the TTL and returns how many were removed
func (s *Store) Sweep() int {
	cutoff := time.Now().UTC().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.LastAccessed.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}

	if removed > 0 && s.logger != nil {
		s.logger.Builder().Debug("Swept idle builder sessions", "removed", removed)
	}
	return removed
}

// StartSweeper runs Sweep on an interval until stop is closed
func (s *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-stop:
			return
		}
	}
}
