package services

import (
	"context"

	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/media"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// ValidationService wraps the media URL checker. Results are advisory: a
// failed check never blocks a save, it only informs the editing client.
type ValidationService struct {
	checker *media.URLChecker
	logger  *logging.ChanneledLogger
}

// NewValidationService creates a validation service
func NewValidationService(checker *media.URLChecker, logger *logging.ChanneledLogger) *ValidationService {
	return &ValidationService{
		checker: checker,
		logger:  logger,
	}
}

// CheckMediaURL probes a URL for the given media kind. The check resolves to
// a boolean within the checker's timeout; stale results for a field are
// marked so callers can drop them.
func (s *ValidationService) CheckMediaURL(ctx context.Context, kind media.CheckKind, fieldID, rawURL string) media.CheckResult {
	result := s.checker.Check(ctx, kind, fieldID, rawURL)

	s.logger.Media().Debug("Media URL checked",
		"kind", string(kind),
		"fieldId", fieldID,
		"valid", result.Valid,
		"stale", result.Stale)

	return result
}
