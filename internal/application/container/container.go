// Package container provides dependency injection for all singleton services
package container

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AtRiskMedia/microsite-go/config"
	"github.com/AtRiskMedia/microsite-go/internal/application/services"
	"github.com/AtRiskMedia/microsite-go/internal/domain/repositories"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/catalog"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/media"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/persistence/state"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/sessions"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services
	TemplateService   *services.TemplateService
	FootprintService  *services.FootprintService
	ShareService      *services.ShareService
	BuilderService    *services.BuilderService
	PreviewService    *services.PreviewService
	ValidationService *services.ValidationService
	OutboundService   *services.OutboundService

	// Infrastructure
	Logger           *logging.ChanneledLogger
	StateRepo        repositories.StateRepository
	Sessions         *sessions.Store
	ShareBroadcaster *messaging.ShareBroadcaster
	MediaDir         string
}

// NewContainer creates and wires all singleton services
func NewContainer(logger *logging.ChanneledLogger) (*Container, error) {
	registry, err := catalog.Load(config.CatalogDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}

	repo := openStateRepository(logger)

	mediaDir := filepath.Join(config.MicrositeHome, "media")
	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	var emailSink email.Service
	if config.ResendAPIKey != "" {
		emailSink, err = email.NewService(config.ResendAPIKey, config.BuildEmailFrom, config.BuildEmailTo)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize email service: %w", err)
		}
	} else {
		logger.Startup().Warn("No Resend API key configured, build requests will not be dispatched")
	}

	broadcaster := messaging.NewShareBroadcaster(logger)

	templateService := services.NewTemplateService(registry, logger)
	footprintService := services.NewFootprintService(repo, config.FootprintCap, logger)
	shareService := services.NewShareService(config.PublicOrigin, config.ShareDebounce, config.SharePreviewActions, broadcaster, logger)
	builderService := services.NewBuilderService(templateService, footprintService, shareService, repo, media.NewLogoProcessor(mediaDir), logger)

	return &Container{
		TemplateService:   templateService,
		FootprintService:  footprintService,
		ShareService:      shareService,
		BuilderService:    builderService,
		PreviewService:    services.NewPreviewService(templateService, footprintService, logger),
		ValidationService: services.NewValidationService(media.NewURLChecker(config.MediaCheckTimeout), logger),
		OutboundService:   services.NewOutboundService(emailSink, config.WhatsAppPhone, logger),

		Logger:           logger,
		StateRepo:        repo,
		Sessions:         sessions.NewStore(config.SessionTTL, logger),
		ShareBroadcaster: broadcaster,
		MediaDir:         mediaDir,
	}, nil
}

// openStateRepository connects to the configured database. When the database
// cannot be opened the service still comes up on the in-memory repository;
// edits then live for the process lifetime only.
func openStateRepository(logger *logging.ChanneledLogger) repositories.StateRepository {
	dsn := config.DBPath
	if config.DBDriver == "sqlite3" && dsn == "" {
		dbDir := filepath.Join(config.MicrositeHome, "db")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.LogError(logging.ChannelStorage, "create database directory", err,
				map[string]any{"dir": dbDir, "fallback": "in-memory"})
			return state.NewMemoryRepository()
		}
		dsn = filepath.Join(dbDir, "microsite.db")
	}

	db, err := state.NewConnection(config.DBDriver, dsn, logger)
	if err != nil {
		logger.LogError(logging.ChannelStorage, "open database", err,
			map[string]any{"driver": config.DBDriver, "fallback": "in-memory"})
		return state.NewMemoryRepository()
	}

	db.SetMaxOpenConns(config.DBMaxOpenConns)
	db.SetMaxIdleConns(config.DBMaxIdleConns)

	repo := state.NewSQLiteRepository(db, logger)
	if err := repo.Init(); err != nil {
		logger.LogError(logging.ChannelStorage, "initialize state schema", err,
			map[string]any{"fallback": "in-memory"})
		db.Close()
		return state.NewMemoryRepository()
	}
	return repo
}

// Close releases the container's infrastructure resources
func (c *Container) Close() error {
	c.ShareService.Stop()
	if err := c.StateRepo.Close(); err != nil {
		return fmt.Errorf("failed to close state repository: %w", err)
	}
	return nil
}
