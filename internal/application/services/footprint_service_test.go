package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
)

func TestFootprintTrackCapsAtLimit(t *testing.T) {
	f := newFixture(t, 100, time.Hour)

	for i := 0; i < 150; i++ {
		f.footprints.Track("inst-1", "sess-1", footprint.ActionSectionEdit, map[string]any{
			"sectionId": fmt.Sprintf("section-%d", i),
		})
	}

	if got := f.footprints.Count("inst-1"); got != 100 {
		t.Fatalf("log size after 150 tracks: got %d, want 100", got)
	}

	all := f.footprints.GetAll("inst-1")
	if got, _ := all[0].SectionID(); got != "section-149" {
		t.Errorf("newest entry: got %s, want section-149", got)
	}
	if got, _ := all[len(all)-1].SectionID(); got != "section-50" {
		t.Errorf("oldest surviving entry: got %s, want section-50", got)
	}
}

func TestFootprintFreshInstanceIsEmpty(t *testing.T) {
	f := newFixture(t, 100, time.Hour)

	if got := f.footprints.GetAll("never-seen"); len(got) != 0 {
		t.Errorf("fresh instance log: got %d entries", len(got))
	}
	summary := f.footprints.Summary("never-seen", "sess-1")
	if summary.TotalActions != 0 {
		t.Errorf("fresh instance total: got %d", summary.TotalActions)
	}
}

func TestFootprintGetAllMostRecentFirst(t *testing.T) {
	f := newFixture(t, 100, time.Hour)

	f.footprints.Track("inst-1", "sess-1", footprint.ActionSectionEdit, map[string]any{"sectionId": "a"})
	f.footprints.Track("inst-1", "sess-1", footprint.ActionSectionDelete, map[string]any{"sectionId": "b"})

	all := f.footprints.GetAll("inst-1")
	if len(all) != 2 {
		t.Fatalf("log size: got %d", len(all))
	}
	if all[0].Kind != footprint.ActionSectionDelete {
		t.Errorf("first entry kind: got %s", all[0].Kind)
	}

	// returned slice is a copy
	all[0] = footprint.Entry{}
	if again := f.footprints.GetAll("inst-1"); again[0].Kind != footprint.ActionSectionDelete {
		t.Error("GetAll must return a copy")
	}
}

func TestFootprintSurvivesRestartViaRepository(t *testing.T) {
	f := newFixture(t, 100, time.Hour)
	f.footprints.Track("inst-1", "sess-1", footprint.ActionColorChange, map[string]any{"color": "#112233"})

	reloaded := NewFootprintService(f.repo, 100, quietLogger(t))
	all := reloaded.GetAll("inst-1")
	if len(all) != 1 || all[0].Kind != footprint.ActionColorChange {
		t.Fatalf("reloaded log: got %+v", all)
	}
}

func TestFootprintClearIsIdempotent(t *testing.T) {
	f := newFixture(t, 100, time.Hour)
	f.footprints.Track("inst-1", "sess-1", footprint.ActionLinkCopy, nil)

	f.footprints.Clear("inst-1")
	f.footprints.Clear("inst-1")
	f.footprints.Clear("never-tracked")

	if got := f.footprints.Count("inst-1"); got != 0 {
		t.Errorf("log after clear: got %d entries", got)
	}
}

func TestFootprintTrimsOversizedPersistedLog(t *testing.T) {
	f := newFixture(t, 100, time.Hour)

	var entries []footprint.Entry
	for i := 0; i < 120; i++ {
		entries = append(entries, footprint.NewEntry(footprint.ActionSectionEdit, nil, "sess-1"))
	}
	if err := f.repo.SetFootprints("inst-1", entries); err != nil {
		t.Fatal(err)
	}

	if got := f.footprints.Count("inst-1"); got != 100 {
		t.Errorf("hydrated log size: got %d, want 100", got)
	}
}
