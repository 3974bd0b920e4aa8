package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/catalog"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// Load builds the registry from the compiled-in defaults, then overlays any
// *.yaml template definitions found in catalogDir. A missing directory is not
// an error; the defaults keep the service usable with zero configuration.
func Load(catalogDir string, logger *logging.ChanneledLogger) (*Registry, error) {
	registry := NewRegistry()

	for _, t := range DefaultTemplates() {
		if err := validateTemplate(t); err != nil {
			return nil, fmt.Errorf("invalid built-in template %q: %w", t.ID, err)
		}
		registry.Register(t)
	}

	if catalogDir == "" {
		logger.Catalog().Info("Template catalog loaded", "source", "built-in", "count", registry.Count())
		return registry, nil
	}

	entries, err := os.ReadDir(catalogDir)
	if os.IsNotExist(err) {
		logger.Catalog().Info("Catalog directory not found, using built-in templates", "dir", catalogDir, "count", registry.Count())
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read catalog directory %s: %w", catalogDir, err)
	}

	loaded := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}

		path := filepath.Join(catalogDir, name)
		t, err := loadTemplateFile(path)
		if err != nil {
			logger.Catalog().Warn("Skipping unreadable template definition", "file", path, "error", err.Error())
			continue
		}

		registry.Register(t)
		loaded++
		logger.Catalog().Debug("Registered template from file", "templateId", t.ID, "file", name)
	}

	logger.Catalog().Info("Template catalog loaded", "builtIn", len(DefaultTemplates()), "fromDir", loaded, "total", registry.Count())
	return registry, nil
}

func loadTemplateFile(path string) (*catalog.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read template file: %w", err)
	}

	var t catalog.Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("could not parse template yaml: %w", err)
	}

	if err := validateTemplate(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func validateTemplate(t *catalog.Template) error {
	if t.ID == "" {
		return fmt.Errorf("template id is required")
	}
	if len(t.Pages) == 0 {
		return fmt.Errorf("template %q has no pages", t.ID)
	}

	seen := make(map[string]bool)
	for _, page := range t.Pages {
		if page.ID == "" {
			return fmt.Errorf("template %q has a page without an id", t.ID)
		}
		for _, section := range page.Sections {
			if section.ID == "" {
				return fmt.Errorf("template %q page %q has a section without an id", t.ID, page.ID)
			}
			if seen[section.ID] {
				return fmt.Errorf("template %q has duplicate section id %q", t.ID, section.ID)
			}
			seen[section.ID] = true
		}
	}
	return nil
}
