package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/dgallion1/batnadoc/internal/form"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Template is one versioned prompt. Text is a text/template receiving Data.
type Template struct {
	Version string `yaml:"version"`
	Title   string `yaml:"title"`
	Text    string `yaml:"text"`

	tmpl *template.Template
}

// Data is what a template can reference.
type Data struct {
	Input  string        // Formatted "Label: value" paragraphs
	Fields form.Snapshot // Raw values by field key
}

// Set holds all known template versions.
type Set struct {
	Default   string      `yaml:"default"`
	Templates []*Template `yaml:"templates"`
}

// Defaults returns the templates shipped with the binary.
func Defaults() (*Set, error) {
	return Parse(defaultTemplates)
}

// Load reads a template set from a YAML file. An empty path loads Defaults.
func Load(path string) (*Set, error) {
	if path == "" {
		return Defaults()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt templates: %w", err)
	}
	return Parse(data)
}

// Parse decodes and compiles a YAML template set.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode prompt templates: %w", err)
	}
	if len(s.Templates) == 0 {
		return nil, fmt.Errorf("no prompt templates defined")
	}
	seen := make(map[string]bool, len(s.Templates))
	for _, t := range s.Templates {
		if t.Version == "" {
			return nil, fmt.Errorf("prompt template without version")
		}
		if seen[t.Version] {
			return nil, fmt.Errorf("duplicate prompt template version %q", t.Version)
		}
		seen[t.Version] = true

		tmpl, err := template.New(t.Version).Option("missingkey=error").Parse(t.Text)
		if err != nil {
			return nil, fmt.Errorf("parse prompt template %s: %w", t.Version, err)
		}
		t.tmpl = tmpl
	}
	if s.Default == "" {
		s.Default = s.Templates[0].Version
	}
	if !seen[s.Default] {
		return nil, fmt.Errorf("default prompt version %q not defined", s.Default)
	}
	return &s, nil
}

// Get returns the template for a version; an empty version means the default.
func (s *Set) Get(version string) (*Template, error) {
	if version == "" {
		version = s.Default
	}
	for _, t := range s.Templates {
		if t.Version == version {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown prompt version %q", version)
}

// Build renders the prompt for a snapshot.
func (t *Template) Build(snap form.Snapshot) (string, error) {
	var sb strings.Builder
	err := t.tmpl.Execute(&sb, Data{Input: snap.Format(), Fields: snap})
	if err != nil {
		return "", fmt.Errorf("render prompt %s: %w", t.Version, err)
	}
	return sb.String(), nil
}
