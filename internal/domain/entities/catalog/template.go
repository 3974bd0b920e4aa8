// Package catalog provides domain entities for the microsite template catalog.
// Templates are static multi-page site definitions, read-only at runtime;
// all user customization lives in the builder snapshot, never here.
package catalog

// Template represents one prebuilt microsite definition
type Template struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category string   `json:"category" yaml:"category"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Pages    []Page   `json:"pages" yaml:"pages"`
}

// Page represents one page of a microsite template
type Page struct {
	ID       string    `json:"id" yaml:"id"`
	Path     string    `json:"path" yaml:"path"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section represents an independently editable content block within a page.
// Defaults is the compiled-in content; its shape is section-kind specific and
// opaque to the builder core.
type Section struct {
	ID       string         `json:"id" yaml:"id"`
	Kind     string         `json:"kind" yaml:"kind"`
	Defaults map[string]any `json:"defaults,omitempty" yaml:"defaults,omitempty"`
}

// FindSection returns the section with the given ID, searching all pages
func (t *Template) FindSection(sectionID string) (*Section, bool) {
	for i := range t.Pages {
		for j := range t.Pages[i].Sections {
			if t.Pages[i].Sections[j].ID == sectionID {
				return &t.Pages[i].Sections[j], true
			}
		}
	}
	return nil, false
}
