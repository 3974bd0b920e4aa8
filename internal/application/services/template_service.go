// Package services contains the application-layer orchestration for the
// microsite builder: template resolution, footprint tracking, snapshot
// mutation, share-link generation, preview replay, and outbound dispatch.
package services

import (
	"errors"

	entities "github.com/AtRiskMedia/microsite-go/internal/domain/entities/catalog"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/catalog"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// ErrTemplateNotFound signals an unknown template id. Distinct from a
// malformed share payload so callers can surface the right error page.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateService resolves templates from the loaded catalog
type TemplateService struct {
	registry *catalog.Registry
	logger   *logging.ChanneledLogger
}

// NewTemplateService creates a new template service
func NewTemplateService(registry *catalog.Registry, logger *logging.ChanneledLogger) *TemplateService {
	return &TemplateService{
		registry: registry,
		logger:   logger,
	}
}

// List returns all available templates
func (s *TemplateService) List() []*entities.Template {
	return s.registry.List()
}

// Resolve returns the template with the given id or ErrTemplateNotFound
func (s *TemplateService) Resolve(templateID string) (*entities.Template, error) {
	tmpl, ok := s.registry.Get(templateID)
	if !ok {
		s.logger.Catalog().Debug("Template resolution failed", "templateId", templateID)
		return nil, ErrTemplateNotFound
	}
	return tmpl, nil
}
