package services

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/builder"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/share"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/timing"
)

// ShareSource supplies the current state a share link is computed from
type ShareSource func() (*builder.Snapshot, *footprint.Summary, []footprint.Entry)

// ShareService generates preview links from the current snapshot. Regeneration
// after an edit is debounced so bursts collapse to one encode, and the last
// scheduled state always wins. Fresh links are pushed to websocket subscribers.
type ShareService struct {
	origin      string
	delay       time.Duration
	recentN     int
	broadcaster *messaging.ShareBroadcaster
	logger      *logging.ChanneledLogger

	mu         sync.Mutex
	links      map[string]string // instanceID -> current preview URL
	debouncers map[string]*timing.Debouncer
}

// NewShareService creates a share service
func NewShareService(origin string, delay time.Duration, recentN int, broadcaster *messaging.ShareBroadcaster, logger *logging.ChanneledLogger) *ShareService {
	return &ShareService{
		origin:      origin,
		delay:       delay,
		recentN:     recentN,
		broadcaster: broadcaster,
		logger:      logger,
		links:       make(map[string]string),
		debouncers:  make(map[string]*timing.Debouncer),
	}
}

// CurrentLink returns the last computed preview URL for an instance
func (s *ShareService) CurrentLink(instanceID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[instanceID]
	return link, ok
}

// Recompute builds and stores a fresh preview link immediately. An encode
// failure keeps the previous link; link generation never breaks an edit.
func (s *ShareService) Recompute(snapshot *builder.Snapshot, summary *footprint.Summary, recent []footprint.Entry) (string, error) {
	payload := share.NewPayload(snapshot, summary, recent, s.recentN)
	encoded, err := payload.Encode()
	if err != nil {
		s.logger.Share().Warn("Share link encode failed, keeping previous link",
			"instanceId", snapshot.InstanceID, "error", err.Error())
		return "", err
	}

	link := share.PreviewURL(s.origin, snapshot.TemplateID, encoded)

	s.mu.Lock()
	s.links[snapshot.InstanceID] = link
	s.mu.Unlock()

	s.broadcaster.Publish(messaging.ShareUpdate{
		InstanceID: snapshot.InstanceID,
		ShareURL:   link,
		UpdatedAt:  time.Now().UTC(),
	})

	s.logger.Share().Debug("Share link recomputed",
		"instanceId", snapshot.InstanceID,
		"templateId", snapshot.TemplateID,
		"payloadBytes", len(encoded))

	return link, nil
}

// ScheduleRecompute queues a debounced recompute. Each call supersedes any
// pending one for the instance; the source is read only when the timer fires
// so the final state of a burst is what gets encoded.
func (s *ShareService) ScheduleRecompute(instanceID string, source ShareSource) {
	s.mu.Lock()
	debouncer, ok := s.debouncers[instanceID]
	if !ok {
		debouncer = timing.NewDebouncer(s.delay)
		s.debouncers[instanceID] = debouncer
	}
	s.mu.Unlock()

	debouncer.Schedule(func() {
		snapshot, summary, recent := source()
		if snapshot == nil {
			return
		}
		s.Recompute(snapshot, summary, recent)
	})
}

// Flush runs any pending recompute for an instance immediately
func (s *ShareService) Flush(instanceID string) {
	s.mu.Lock()
	debouncer, ok := s.debouncers[instanceID]
	s.mu.Unlock()
	if ok {
		debouncer.Flush()
	}
}

// Stop cancels all pending recomputes
func (s *ShareService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, debouncer := range s.debouncers {
		debouncer.Stop()
	}
}
