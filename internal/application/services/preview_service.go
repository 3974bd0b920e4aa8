package services

import (
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/builder"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/share"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// PreviewView is the read-only rendering of a shared snapshot: every section
// of the template with its effective content after replaying the payload's
// edits over the defaults.
type PreviewView struct {
	TemplateID string           `json:"templateId"`
	SiteName   string           `json:"siteName,omitempty"`
	BrandColor string           `json:"brandColor,omitempty"`
	Logo       string           `json:"logo,omitempty"`
	Pages      []PreviewPage    `json:"pages"`
	Footprint  *share.Digest    `json:"footprint,omitempty"`
}

// PreviewPage is one rendered page of the preview
type PreviewPage struct {
	ID       string           `json:"id"`
	Path     string           `json:"path"`
	Title    string           `json:"title,omitempty"`
	Sections []PreviewSection `json:"sections"`
}

// PreviewSection is one section with its resolved content
type PreviewSection struct {
	ID      string         `json:"id"`
	Kind    string         `json:"kind"`
	Content map[string]any `json:"content"`
}

// PreviewService opens shared links: it resolves the template, decodes the
// payload, and replays the edits over the defaults without touching any
// stored builder state.
type PreviewService struct {
	templates  *TemplateService
	footprints *FootprintService
	logger     *logging.ChanneledLogger
}

// NewPreviewService creates a preview service
func NewPreviewService(templates *TemplateService, footprints *FootprintService, logger *logging.ChanneledLogger) *PreviewService {
	return &PreviewService{
		templates:  templates,
		footprints: footprints,
		logger:     logger,
	}
}

// Open decodes a shared payload against a template. An unknown template
// returns ErrTemplateNotFound; an undecodable payload returns an error
// matching share.ErrMalformedPayload. The open is recorded in the footprint
// log best-effort when an instance id is known.
func (s *PreviewService) Open(templateID, encodedPayload, instanceID, sessionID string) (*PreviewView, error) {
	tmpl, err := s.templates.Resolve(templateID)
	if err != nil {
		return nil, err
	}

	payload, err := share.Decode(encodedPayload)
	if err != nil {
		s.logger.Share().Warn("Preview payload decode failed",
			"templateId", templateID, "error", err.Error())
		return nil, err
	}

	snapshot := &builder.Snapshot{SectionEdits: payload.SectionEdits}

	view := &PreviewView{
		TemplateID: templateID,
		SiteName:   payload.SiteName,
		BrandColor: payload.BrandColor,
		Logo:       payload.Logo,
		Footprint:  payload.Footprint,
	}

	for _, page := range tmpl.Pages {
		rendered := PreviewPage{
			ID:    page.ID,
			Path:  page.Path,
			Title: page.Title,
		}
		for _, section := range page.Sections {
			rendered.Sections = append(rendered.Sections, PreviewSection{
				ID:      section.ID,
				Kind:    section.Kind,
				Content: snapshot.EffectiveContent(section.ID, section.Defaults),
			})
		}
		view.Pages = append(view.Pages, rendered)
	}

	if instanceID != "" {
		s.footprints.Track(instanceID, sessionID, footprint.ActionPreviewOpen, map[string]any{
			"templateId": templateID,
		})
	}

	s.logger.Share().Debug("Preview opened",
		"templateId", templateID,
		"editedSections", len(payload.SectionEdits))

	return view, nil
}
