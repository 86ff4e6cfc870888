// Package scaffold creates Clean Architecture project skeletons.
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/cleanarch/agentsync/internal/logging"
)

// Data holds the values available to layout templates.
type Data struct {
	// Name is the project name in kebab-case.
	Name string
	// Title is the human-readable project title derived from Name.
	Title string
	// Module is the Go module path.
	Module string
	// Year is the current year.
	Year int
}

// NewData derives template data from a project name and module path.
func NewData(name, module string) Data {
	normalized := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	titleCaser := cases.Title(language.English)
	title := titleCaser.String(strings.ReplaceAll(normalized, "-", " "))

	if module == "" {
		module = normalized
	}

	return Data{
		Name:   normalized,
		Title:  title,
		Module: module,
		Year:   time.Now().Year(),
	}
}

// Layout describes the directories and seed files of a project skeleton.
// Directory paths and file paths/contents are templates rendered against
// Data.
type Layout struct {
	Dirs  []string          `yaml:"dirs" toml:"dirs"`
	Files map[string]string `yaml:"files" toml:"files"`
}

// DefaultLayout returns the built-in Clean Architecture layout.
func DefaultLayout() Layout {
	return Layout{
		Dirs: []string{
			"cmd/{{.Name}}",
			"internal/domain/entities",
			"internal/domain/events",
			"internal/domain/services",
			"internal/application/commands",
			"internal/application/queries",
			"internal/application/handlers",
			"internal/infrastructure/persistence",
			"internal/infrastructure/messaging",
			"internal/presentation/api",
			"internal/presentation/cli",
		},
		Files: map[string]string{
			"go.mod":                            goModTemplate,
			"cmd/{{.Name}}/main.go":             mainTemplate,
			"internal/domain/doc.go":            domainDocTemplate,
			"internal/domain/errors.go":         domainErrorsTemplate,
			"internal/application/doc.go":       applicationDocTemplate,
			"internal/infrastructure/doc.go":    infrastructureDocTemplate,
			"internal/presentation/cli/cli.go":  presentationCLITemplate,
			"README.md":                         readmeTemplate,
			".gitignore":                        gitignoreTemplate,
		},
	}
}

// LoadLayout reads a custom layout manifest from a YAML or TOML file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	var layout Layout
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &layout); err != nil {
			return Layout{}, fmt.Errorf("failed to parse manifest %q: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &layout); err != nil {
			return Layout{}, fmt.Errorf("failed to parse manifest %q: %w", path, err)
		}
	}

	if len(layout.Dirs) == 0 && len(layout.Files) == 0 {
		return Layout{}, fmt.Errorf("manifest %q defines no dirs or files", path)
	}

	return layout, nil
}

// Result lists what a Generate call produced (or would produce in dry-run).
type Result struct {
	Dirs  []string
	Files []string
}

// Generator renders a layout into a target directory.
type Generator struct {
	layout Layout
}

// NewGenerator creates a generator for the given layout.
func NewGenerator(layout Layout) *Generator {
	return &Generator{layout: layout}
}

// Generate creates the layout's directories and files under dest. When
// dryRun is set, the returned result lists the paths without writing
// anything. Existing files are never overwritten.
func (g *Generator) Generate(dest string, data Data, dryRun bool) (*Result, error) {
	result := &Result{}

	for _, dirTmpl := range g.layout.Dirs {
		dir, err := render("dir", dirTmpl, data)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dest, filepath.FromSlash(dir))
		result.Dirs = append(result.Dirs, path)
		if dryRun {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %q: %w", path, err)
		}
	}

	names := make([]string, 0, len(g.layout.Files))
	for name := range g.layout.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, nameTmpl := range names {
		name, err := render("path", nameTmpl, data)
		if err != nil {
			return nil, err
		}
		content, err := render(name, g.layout.Files[nameTmpl], data)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(dest, filepath.FromSlash(name))
		result.Files = append(result.Files, path)
		if dryRun {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("refusing to overwrite existing file %q", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %q: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %q: %w", path, err)
		}
	}

	logging.Debug("scaffold generated",
		logging.Path(dest),
		logging.Count(len(result.Files)),
	)

	return result, nil
}

func render(name, tmpl string, data Data) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}
