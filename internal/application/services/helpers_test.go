package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/domain/repositories"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/catalog"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/media"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/persistence/state"
)

func quietLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError + 4,
		ChannelLevels:   make(map[logging.Channel]slog.Level),
	})
	if err != nil {
		t.Fatal(err)
	}
	return logger
}

// failingRepo simulates storage going away mid-session: reads keep working,
// writes start failing once fail is flipped.
type failingRepo struct {
	*state.MemoryRepository
	fail bool
}

func (r *failingRepo) SetSectionEdits(instanceID string, edits map[string]map[string]any) error {
	if r.fail {
		return errFailingRepo
	}
	return r.MemoryRepository.SetSectionEdits(instanceID, edits)
}

func (r *failingRepo) SetDeletedSections(instanceID string, deleted map[string]bool) error {
	if r.fail {
		return errFailingRepo
	}
	return r.MemoryRepository.SetDeletedSections(instanceID, deleted)
}

func (r *failingRepo) SetFootprints(instanceID string, entries []footprint.Entry) error {
	if r.fail {
		return errFailingRepo
	}
	return r.MemoryRepository.SetFootprints(instanceID, entries)
}

func (r *failingRepo) SetSiteMeta(instanceID string, meta *repositories.SiteMeta) error {
	if r.fail {
		return errFailingRepo
	}
	return r.MemoryRepository.SetSiteMeta(instanceID, meta)
}

var errFailingRepo = errors.New("storage unavailable")

type fixture struct {
	repo       *state.MemoryRepository
	templates  *TemplateService
	footprints *FootprintService
	shares     *ShareService
	builder    *BuilderService
	previews   *PreviewService
}

func newFixture(t *testing.T, footprintCap int, debounce time.Duration) *fixture {
	t.Helper()
	logger := quietLogger(t)

	registry := catalog.NewRegistry()
	for _, tmpl := range catalog.DefaultTemplates() {
		registry.Register(tmpl)
	}

	repo := state.NewMemoryRepository()
	templates := NewTemplateService(registry, logger)
	footprints := NewFootprintService(repo, footprintCap, logger)
	shares := NewShareService("https://microsites.test", debounce, 5, messaging.NewShareBroadcaster(logger), logger)
	t.Cleanup(shares.Stop)

	builder := NewBuilderService(templates, footprints, shares, repo, media.NewLogoProcessor(t.TempDir()), logger)
	previews := NewPreviewService(templates, footprints, logger)

	return &fixture{
		repo:       repo,
		templates:  templates,
		footprints: footprints,
		shares:     shares,
		builder:    builder,
		previews:   previews,
	}
}
