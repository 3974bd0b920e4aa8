package state

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/domain/repositories"
)

func setupSQLite(t *testing.T) repositories.StateRepository {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	repo := NewSQLiteRepository(db, nil)
	if err := repo.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func repos(t *testing.T) map[string]repositories.StateRepository {
	return map[string]repositories.StateRepository{
		"sqlite": setupSQLite(t),
		"memory": NewMemoryRepository(),
	}
}

func TestAbsentKeysAreEmptyDefaults(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			edits, err := repo.GetSectionEdits("fresh")
			if err != nil {
				t.Fatal(err)
			}
			if len(edits) != 0 {
				t.Fatalf("fresh instance edits: got %v", edits)
			}

			deleted, err := repo.GetDeletedSections("fresh")
			if err != nil {
				t.Fatal(err)
			}
			if len(deleted) != 0 {
				t.Fatalf("fresh instance deleted: got %v", deleted)
			}

			entries, err := repo.GetFootprints("fresh")
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Fatalf("fresh instance footprints: got %d", len(entries))
			}

			meta, err := repo.GetSiteMeta("fresh")
			if err != nil {
				t.Fatal(err)
			}
			if meta != nil {
				t.Fatalf("fresh instance meta: got %v", meta)
			}
		})
	}
}

func TestSectionEditsRoundTrip(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			edits := map[string]map[string]any{
				"hero": {"headline": "Fresh Bread", "order": float64(1)},
			}
			if err := repo.SetSectionEdits("inst", edits); err != nil {
				t.Fatal(err)
			}

			got, err := repo.GetSectionEdits("inst")
			if err != nil {
				t.Fatal(err)
			}
			if got["hero"]["headline"] != "Fresh Bread" {
				t.Fatalf("headline: got %v", got["hero"]["headline"])
			}

			// Overwrite replaces the whole map.
			if err := repo.SetSectionEdits("inst", map[string]map[string]any{}); err != nil {
				t.Fatal(err)
			}
			got, _ = repo.GetSectionEdits("inst")
			if len(got) != 0 {
				t.Fatalf("after overwrite: got %v", got)
			}
		})
	}
}

func TestDeletedSectionsRoundTrip(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			if err := repo.SetDeletedSections("inst", map[string]bool{"pricing": true}); err != nil {
				t.Fatal(err)
			}
			got, err := repo.GetDeletedSections("inst")
			if err != nil {
				t.Fatal(err)
			}
			if !got["pricing"] {
				t.Fatal("pricing flag lost")
			}
		})
	}
}

func TestFootprintsRoundTrip(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			entries := []footprint.Entry{
				{
					ID:        "01ARZ3",
					Kind:      footprint.ActionSectionEdit,
					Details:   map[string]any{"sectionId": "hero"},
					Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
					SessionID: "sess_1",
				},
			}
			if err := repo.SetFootprints("inst", entries); err != nil {
				t.Fatal(err)
			}
			got, err := repo.GetFootprints("inst")
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 || got[0].Kind != footprint.ActionSectionEdit {
				t.Fatalf("footprints: got %v", got)
			}
			if sectionID, ok := got[0].SectionID(); !ok || sectionID != "hero" {
				t.Fatalf("sectionId detail lost: %v", got[0].Details)
			}
		})
	}
}

func TestSiteMetaAndFormData(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			meta := &repositories.SiteMeta{TemplateID: "bakery", SiteName: "Sunrise", BrandColor: "#f5a623"}
			if err := repo.SetSiteMeta("inst", meta); err != nil {
				t.Fatal(err)
			}
			got, err := repo.GetSiteMeta("inst")
			if err != nil {
				t.Fatal(err)
			}
			if got == nil || got.SiteName != "Sunrise" {
				t.Fatalf("meta: got %v", got)
			}

			if err := repo.SetFormData("inst", map[string]string{"email": "a@b.c"}); err != nil {
				t.Fatal(err)
			}
			form, err := repo.GetFormData("inst")
			if err != nil {
				t.Fatal(err)
			}
			if form["email"] != "a@b.c" {
				t.Fatalf("form: got %v", form)
			}
		})
	}
}

func TestClear(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			repo.SetSectionEdits("inst", map[string]map[string]any{"hero": {"a": "b"}})
			repo.SetDeletedSections("inst", map[string]bool{"hero": true})
			repo.SetFootprints("inst", []footprint.Entry{{ID: "x", Kind: footprint.ActionLinkCopy}})

			if err := repo.Clear("inst", repositories.KeySectionEdits, repositories.KeyDeletedSections); err != nil {
				t.Fatal(err)
			}

			edits, _ := repo.GetSectionEdits("inst")
			deleted, _ := repo.GetDeletedSections("inst")
			entries, _ := repo.GetFootprints("inst")
			if len(edits) != 0 || len(deleted) != 0 {
				t.Fatal("cleared keys should read back empty")
			}
			if len(entries) != 1 {
				t.Fatal("footprint log should survive a map-only clear")
			}

			// Clearing absent keys is a no-op.
			if err := repo.Clear("nope", repositories.KeyFormData); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestInstanceIsolation(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			repo.SetSectionEdits("one", map[string]map[string]any{"hero": {"a": "b"}})
			edits, err := repo.GetSectionEdits("two")
			if err != nil {
				t.Fatal(err)
			}
			if len(edits) != 0 {
				t.Fatal("instances must not share state")
			}
		})
	}
}
