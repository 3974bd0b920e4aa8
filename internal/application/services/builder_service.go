package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/builder"
	catalogentities "github.com/AtRiskMedia/microsite-go/internal/domain/entities/catalog"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/domain/repositories"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/media"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// ErrSectionNotFound signals a section id the template does not define
var ErrSectionNotFound = errors.New("section not found in template")

// ErrBuilderNotReady signals an operation against an instance whose load
// failed; only a fresh open against a valid template can recover it.
var ErrBuilderNotReady = errors.New("builder instance is not ready")

// BuilderState is the lifecycle phase of one builder instance
type BuilderState string

const (
	StateLoading BuilderState = "loading"
	StateReady   BuilderState = "ready"
	StateError   BuilderState = "error"
)

// Instance is the live editing state for one template instance
type Instance struct {
	State     BuilderState
	Template  *catalogentities.Template
	Snapshot  *builder.Snapshot
	Form      map[string]string
	SessionID string
	LoadErr   error
}

// BuilderService orchestrates the editing lifecycle: hydrate on open, then in
// the ready state every action updates the snapshot, persists best-effort,
// tracks a footprint entry, and schedules a share-link recompute. In-memory
// state stays authoritative when storage misbehaves.
type BuilderService struct {
	templates  *TemplateService
	footprints *FootprintService
	shares     *ShareService
	repo       repositories.StateRepository
	logos      *media.LogoProcessor
	logger     *logging.ChanneledLogger

	mu        sync.Mutex
	instances map[string]*Instance // keyed by instance id
}

// NewBuilderService creates the builder orchestrator
func NewBuilderService(
	templates *TemplateService,
	footprints *FootprintService,
	shares *ShareService,
	repo repositories.StateRepository,
	logos *media.LogoProcessor,
	logger *logging.ChanneledLogger,
) *BuilderService {
	return &BuilderService{
		templates:  templates,
		footprints: footprints,
		shares:     shares,
		repo:       repo,
		logos:      logos,
		logger:     logger,
		instances:  make(map[string]*Instance),
	}
}

// Open loads (or returns) the builder instance for a template instance id.
// An unknown template leaves the instance in the error state and returns
// ErrTemplateNotFound.
func (s *BuilderService) Open(templateID, instanceID, sessionID string) (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked(templateID, instanceID, sessionID)
}

func (s *BuilderService) openLocked(templateID, instanceID, sessionID string) (*Instance, error) {
	if inst, ok := s.instances[instanceID]; ok {
		if inst.State == StateError {
			return inst, inst.LoadErr
		}
		inst.SessionID = sessionID
		return inst, nil
	}

	log := s.logger.WithInstance(logging.ChannelBuilder, templateID, instanceID)
	inst := &Instance{State: StateLoading, SessionID: sessionID}
	s.instances[instanceID] = inst

	tmpl, err := s.templates.Resolve(templateID)
	if err != nil {
		inst.State = StateError
		inst.LoadErr = err
		log.Warn("Builder load failed", "error", err.Error())
		return inst, err
	}
	inst.Template = tmpl

	snapshot := builder.NewSnapshot(templateID, instanceID)
	fresh := true

	if edits, err := s.repo.GetSectionEdits(instanceID); err != nil {
		log.Warn("Could not hydrate section edits, starting empty", "error", err.Error())
	} else if len(edits) > 0 {
		snapshot.SectionEdits = edits
		fresh = false
	}

	if deleted, err := s.repo.GetDeletedSections(instanceID); err != nil {
		log.Warn("Could not hydrate deleted sections, starting empty", "error", err.Error())
	} else if len(deleted) > 0 {
		snapshot.DeletedSections = deleted
		fresh = false
	}

	if meta, err := s.repo.GetSiteMeta(instanceID); err != nil {
		log.Warn("Could not hydrate site meta, starting empty", "error", err.Error())
	} else if meta != nil {
		snapshot.SiteName = meta.SiteName
		snapshot.BrandColor = meta.BrandColor
		snapshot.Logo = meta.Logo
		fresh = false
	}

	if form, err := s.repo.GetFormData(instanceID); err != nil {
		log.Warn("Could not hydrate form data, starting empty", "error", err.Error())
	} else {
		inst.Form = form
	}

	inst.Snapshot = snapshot
	inst.State = StateReady

	if fresh {
		s.footprints.Track(instanceID, sessionID, footprint.ActionTemplateSelect, map[string]any{
			"templateId":   templateID,
			"templateName": tmpl.Name,
		})
	}

	log.Info("Builder instance ready",
		"sections", len(snapshot.SectionEdits),
		"deleted", len(snapshot.DeletedSections),
		"fresh", fresh)

	return inst, nil
}

// ready opens the instance and gates the operation on the ready state
func (s *BuilderService) ready(templateID, instanceID, sessionID string) (*Instance, error) {
	inst, err := s.openLocked(templateID, instanceID, sessionID)
	if err != nil {
		return nil, err
	}
	if inst.State != StateReady {
		return nil, ErrBuilderNotReady
	}
	return inst, nil
}

// SaveSection stores the complete content object for a section, replacing any
// previous edit wholesale.
func (s *BuilderService) SaveSection(templateID, instanceID, sessionID, sectionID string, content map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.ready(templateID, instanceID, sessionID)
	if err != nil {
		return err
	}
	if _, ok := inst.Template.FindSection(sectionID); !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	inst.Snapshot.SaveSection(sectionID, content)
	s.persistSections(inst)

	s.footprints.Track(instanceID, sessionID, footprint.ActionSectionEdit, map[string]any{"sectionId": sectionID})
	s.scheduleShare(inst)
	return nil
}

// DeleteSection hides a section. Its saved edits are untouched so a later
// restore reveals the last-saved content. Deleting twice is a no-op flag set.
func (s *BuilderService) DeleteSection(templateID, instanceID, sessionID, sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.ready(templateID, instanceID, sessionID)
	if err != nil {
		return err
	}
	if _, ok := inst.Template.FindSection(sectionID); !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	inst.Snapshot.DeleteSection(sectionID)
	s.persistDeleted(inst)

	s.footprints.Track(instanceID, sessionID, footprint.ActionSectionDelete, map[string]any{"sectionId": sectionID})
	s.scheduleShare(inst)
	return nil
}

// RestoreSection reveals a hidden section. Restoring a section that is not
// hidden is a no-op on the registry.
func (s *BuilderService) RestoreSection(templateID, instanceID, sessionID, sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.ready(templateID, instanceID, sessionID)
	if err != nil {
		return err
	}
	if _, ok := inst.Template.FindSection(sectionID); !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	inst.Snapshot.RestoreSection(sectionID)
	s.persistDeleted(inst)

	s.footprints.Track(instanceID, sessionID, footprint.ActionSectionRestore, map[string]any{"sectionId": sectionID})
	s.scheduleShare(inst)
	return nil
}

// SetSiteName updates the site name override
func (s *BuilderService) SetSiteName(templateID, instanceID, sessionID, siteName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.ready(templateID, instanceID, sessionID)
	if err != nil {
		return err
	}

	inst.Snapshot.SiteName = siteName
	s.persistMeta(inst)

	s.footprints.Track(instanceID, sessionID, footprint.ActionFormUpdate, map[string]any{"field": "siteName"})
	s.scheduleShare(inst)
	return nil
}

// SetBrandColor updates the brand color override
func (s *BuilderService) SetBrandColor(templateID, instanceID, sessionID, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.ready(templateID, instanceID, sessionID)
	if err != nil {
		return err
	}

	inst.Snapshot.BrandColor = color
	s.persistMeta(inst)

	s.footprints.Track(instanceID, sessionID, footprint.ActionColorChange, map[string]any{"color": color})
	s.scheduleShare(inst)
	return nil
}

// SetLogo updates the logo. A base64 data URI is run through the logo
// processor and stored as the resulting media URL; anything else is stored
// as-is.
func (s *BuilderService) SetLogo(templateID, instanceID, sessionID, logo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.ready(templateID, instanceID, sessionID)
	if err != nil {
		return err
	}

	if strings.HasPrefix(logo, "data:") {
		url, err := s.logos.ProcessBase64Logo(logo, instanceID)
		if err != nil {
			return fmt.Errorf("failed to process logo upload: %w", err)
		}
		logo = url
	}

	inst.Snapshot.Logo = logo
	s.persistMeta(inst)

	s.footprints.Track(instanceID, sessionID, footprint.ActionFormUpdate, map[string]any{"field": "logo"})
	s.scheduleShare(inst)
	return nil
}

// UpdateForm stores the contact form values for the instance
func (s *BuilderService) UpdateForm(templateID, instanceID, sessionID string, form map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.ready(templateID, instanceID, sessionID)
	if err != nil {
		return err
	}

	inst.Form = form
	if err := s.repo.SetFormData(instanceID, form); err != nil {
		s.logger.Storage().Warn("Form data persistence failed, keeping in-memory state",
			"instanceId", instanceID, "error", err.Error())
	}

	s.footprints.Track(instanceID, sessionID, footprint.ActionFormUpdate, map[string]any{"field": "contact"})
	return nil
}

// Reset returns the instance to template defaults: the reset is recorded in
// the footprint log first, then edits, deletions, scalar overrides and form
// data are dropped and their persisted keys removed. The footprint log itself
// is deliberately kept.
func (s *BuilderService) Reset(templateID, instanceID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.ready(templateID, instanceID, sessionID)
	if err != nil {
		return err
	}

	s.footprints.Track(instanceID, sessionID, footprint.ActionFormUpdate, map[string]any{"field": "reset"})

	inst.Snapshot.Reset()
	inst.Form = nil

	if err := s.repo.Clear(instanceID,
		repositories.KeySectionEdits,
		repositories.KeyDeletedSections,
		repositories.KeyFormData,
		repositories.KeySiteMeta,
	); err != nil {
		s.logger.Storage().Warn("Reset persistence failed, in-memory state already cleared",
			"instanceId", instanceID, "error", err.Error())
	}

	s.logger.WithInstance(logging.ChannelBuilder, templateID, instanceID).Info("Builder instance reset")
	s.scheduleShare(inst)
	return nil
}

// TrackAction records a footprint entry for an action that does not mutate
// the snapshot (link copies, shares, preview opens).
func (s *BuilderService) TrackAction(templateID, instanceID, sessionID string, kind footprint.ActionKind, details map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ready(templateID, instanceID, sessionID); err != nil {
		return err
	}
	s.footprints.Track(instanceID, sessionID, kind, details)
	return nil
}

// ShareLink returns the preview link for the instance's current state. Any
// recompute still waiting out the debounce window is flushed first so the
// link handed out never trails the latest edit.
func (s *BuilderService) ShareLink(templateID, instanceID, sessionID string) (string, error) {
	s.mu.Lock()
	inst, err := s.ready(templateID, instanceID, sessionID)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	snapshot := inst.Snapshot.Clone()
	s.mu.Unlock()

	s.shares.Flush(instanceID)

	if link, ok := s.shares.CurrentLink(instanceID); ok {
		return link, nil
	}
	return s.shares.Recompute(snapshot, s.footprints.Summary(instanceID, sessionID), s.footprints.Recent(instanceID, s.shares.recentN))
}

// persistSections writes the section edit map; failures are non-fatal
func (s *BuilderService) persistSections(inst *Instance) {
	if err := s.repo.SetSectionEdits(inst.Snapshot.InstanceID, inst.Snapshot.SectionEdits); err != nil {
		s.logger.Storage().Warn("Section edit persistence failed, keeping in-memory state",
			"instanceId", inst.Snapshot.InstanceID, "error", err.Error())
	}
}

// persistDeleted writes the deleted-section registry; failures are non-fatal
func (s *BuilderService) persistDeleted(inst *Instance) {
	if err := s.repo.SetDeletedSections(inst.Snapshot.InstanceID, inst.Snapshot.DeletedSections); err != nil {
		s.logger.Storage().Warn("Deleted section persistence failed, keeping in-memory state",
			"instanceId", inst.Snapshot.InstanceID, "error", err.Error())
	}
}

// persistMeta writes the scalar overrides; failures are non-fatal
func (s *BuilderService) persistMeta(inst *Instance) {
	meta := &repositories.SiteMeta{
		TemplateID: inst.Snapshot.TemplateID,
		SiteName:   inst.Snapshot.SiteName,
		BrandColor: inst.Snapshot.BrandColor,
		Logo:       inst.Snapshot.Logo,
	}
	if err := s.repo.SetSiteMeta(inst.Snapshot.InstanceID, meta); err != nil {
		s.logger.Storage().Warn("Site meta persistence failed, keeping in-memory state",
			"instanceId", inst.Snapshot.InstanceID, "error", err.Error())
	}
}

// scheduleShare queues a debounced link recompute reading state at fire time
func (s *BuilderService) scheduleShare(inst *Instance) {
	instanceID := inst.Snapshot.InstanceID
	sessionID := inst.SessionID
	s.shares.ScheduleRecompute(instanceID, func() (*builder.Snapshot, *footprint.Summary, []footprint.Entry) {
		s.mu.Lock()
		current, ok := s.instances[instanceID]
		var snapshot *builder.Snapshot
		if ok && current.Snapshot != nil {
			snapshot = current.Snapshot.Clone()
		}
		s.mu.Unlock()
		if snapshot == nil {
			return nil, nil, nil
		}
		return snapshot, s.footprints.Summary(instanceID, sessionID), s.footprints.Recent(instanceID, s.shares.recentN)
	})
}
