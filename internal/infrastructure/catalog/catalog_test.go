package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
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

func TestLoadBuiltInCatalog(t *testing.T) {
	registry, err := Load("", quietLogger(t))
	if err != nil {
		t.Fatal(err)
	}

	if registry.Count() == 0 {
		t.Fatal("built-in catalog is empty")
	}

	tmpl, ok := registry.Get("local-cafe")
	if !ok {
		t.Fatal("local-cafe template missing from built-in catalog")
	}
	if tmpl.Name != "Local Café" {
		t.Errorf("template name: got %q", tmpl.Name)
	}

	section, ok := tmpl.FindSection("cafe-menu")
	if !ok {
		t.Fatal("cafe-menu section missing")
	}
	items, ok := section.Defaults["items"].([]any)
	if !ok || len(items) == 0 {
		t.Error("cafe-menu defaults should carry a non-empty items array")
	}
}

func TestLoadMissingDirectoryUsesBuiltIns(t *testing.T) {
	registry, err := Load(filepath.Join(t.TempDir(), "does-not-exist"), quietLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if registry.Count() != len(DefaultTemplates()) {
		t.Errorf("expected %d built-in templates, got %d", len(DefaultTemplates()), registry.Count())
	}
}

func TestLoadOverlaysDirectoryTemplates(t *testing.T) {
	dir := t.TempDir()
	def := `
id: barber-shop
name: Barber Shop
category: services
pages:
  - id: home
    path: /
    title: Home
    sections:
      - id: barber-hero
        kind: hero
        defaults:
          heading: Walk-ins welcome
`
	if err := os.WriteFile(filepath.Join(dir, "barber.yaml"), []byte(def), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatal(err)
	}

	registry, err := Load(dir, quietLogger(t))
	if err != nil {
		t.Fatal(err)
	}

	tmpl, ok := registry.Get("barber-shop")
	if !ok {
		t.Fatal("barber-shop not registered from directory")
	}
	section, ok := tmpl.FindSection("barber-hero")
	if !ok {
		t.Fatal("barber-hero section missing")
	}
	if got := section.Defaults["heading"]; got != "Walk-ins welcome" {
		t.Errorf("barber-hero heading: got %v", got)
	}

	if _, ok := registry.Get("local-cafe"); !ok {
		t.Error("directory overlay should not drop built-in templates")
	}
}

func TestLoadSkipsInvalidDefinitions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nopages.yaml"), []byte("id: empty\nname: Empty\n"), 0644); err != nil {
		t.Fatal(err)
	}

	registry, err := Load(dir, quietLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := registry.Get("empty"); ok {
		t.Error("template without pages should be rejected")
	}
	if registry.Count() != len(DefaultTemplates()) {
		t.Errorf("invalid files should be skipped, got %d templates", registry.Count())
	}
}

func TestValidateTemplateDuplicateSections(t *testing.T) {
	for _, tmpl := range DefaultTemplates() {
		if err := validateTemplate(tmpl); err != nil {
			t.Errorf("built-in template %s failed validation: %v", tmpl.ID, err)
		}
	}
}
