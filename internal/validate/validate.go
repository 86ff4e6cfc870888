// Package validate checks Clean Architecture layer boundaries in a Go
// source tree.
//
// Files are assigned a layer from their path (domain, application,
// infrastructure, presentation) and their imports are parsed; an import that
// reaches outward, or pulls a framework into an inner layer, is a violation.
package validate

import (
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cleanarch/agentsync/internal/logging"
	"github.com/cleanarch/agentsync/internal/ui"
)

// Layer is an architectural layer, innermost first.
type Layer string

const (
	LayerDomain         Layer = "domain"
	LayerApplication    Layer = "application"
	LayerInfrastructure Layer = "infrastructure"
	LayerPresentation   Layer = "presentation"
)

// allLayers lists layers in dependency order, innermost first.
var allLayers = []Layer{LayerDomain, LayerApplication, LayerInfrastructure, LayerPresentation}

// forbiddenLayers maps a layer to the layers it may not import.
var forbiddenLayers = map[Layer][]Layer{
	LayerDomain:         {LayerApplication, LayerInfrastructure, LayerPresentation},
	LayerApplication:    {LayerInfrastructure, LayerPresentation},
	LayerInfrastructure: {LayerPresentation},
}

// forbiddenFrameworks maps a layer to framework import prefixes it may not
// use. Inner layers stay framework-free.
var forbiddenFrameworks = map[Layer][]string{
	LayerDomain: {
		"github.com/gin-gonic/gin",
		"github.com/labstack/echo",
		"github.com/gofiber/fiber",
		"gorm.io/gorm",
		"entgo.io/ent",
		"database/sql",
		"net/http",
	},
	LayerApplication: {
		"github.com/gin-gonic/gin",
		"github.com/labstack/echo",
		"github.com/gofiber/fiber",
	},
}

// Violation is a single layer-boundary breach.
type Violation struct {
	// File is the offending source file.
	File string
	// Line is the line of the import declaration.
	Line int
	// Layer is the layer the file belongs to.
	Layer Layer
	// Import is the offending import path.
	Import string
	// Reason explains the breach.
	Reason string
}

// LayerOf determines which layer a file path belongs to, or "" if none.
func LayerOf(path string) Layer {
	segments := strings.Split(filepath.ToSlash(path), "/")
	for _, segment := range segments {
		for _, layer := range allLayers {
			if segment == string(layer) {
				return layer
			}
		}
	}
	return ""
}

// Validate walks srcDir and checks every Go file that belongs to a layer.
// Returned violations are sorted by file, then line.
func Validate(srcDir string) ([]Violation, error) {
	var violations []Violation

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != srcDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		fileViolations, err := checkFile(path)
		if err != nil {
			// Unparsable files are skipped, matching how unreadable files
			// are treated: the check is advisory, not a compiler.
			logging.Warn("skipping unparsable file", logging.Path(path), logging.Err(err))
			return nil
		}
		violations = append(violations, fileViolations...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", srcDir, err)
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		return violations[i].Line < violations[j].Line
	})

	return violations, nil
}

// checkFile parses a single file's imports and applies the layer rules.
func checkFile(path string) ([]Violation, error) {
	layer := LayerOf(path)
	if layer == "" {
		return nil, nil
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	var violations []Violation
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		line := fset.Position(imp.Pos()).Line

		for _, framework := range forbiddenFrameworks[layer] {
			if importPath == framework || strings.HasPrefix(importPath, framework+"/") {
				violations = append(violations, Violation{
					File:   path,
					Line:   line,
					Layer:  layer,
					Import: importPath,
					Reason: fmt.Sprintf("%s cannot import framework %q", layer, framework),
				})
			}
		}

		for _, forbidden := range forbiddenLayers[layer] {
			if importsLayer(importPath, forbidden) {
				violations = append(violations, Violation{
					File:   path,
					Line:   line,
					Layer:  layer,
					Import: importPath,
					Reason: fmt.Sprintf("%s cannot import from %s", layer, forbidden),
				})
			}
		}
	}

	return violations, nil
}

// importsLayer reports whether an import path contains the layer as a path
// segment.
func importsLayer(importPath string, layer Layer) bool {
	for _, segment := range strings.Split(importPath, "/") {
		if segment == string(layer) {
			return true
		}
	}
	return false
}

// Report writes violations to w grouped by layer, or a success line when
// there are none.
func Report(w io.Writer, violations []Violation) {
	if len(violations) == 0 {
		fmt.Fprintln(w, ui.StatusSuccess("No architectural violations found"))
		return
	}

	fmt.Fprintln(w, ui.StatusError(fmt.Sprintf("Found %d violation(s):", len(violations))))
	fmt.Fprintln(w)

	byLayer := map[Layer][]Violation{}
	for _, v := range violations {
		byLayer[v.Layer] = append(byLayer[v.Layer], v)
	}

	for _, layer := range allLayers {
		layerViolations := byLayer[layer]
		if len(layerViolations) == 0 {
			continue
		}
		fmt.Fprintf(w, "[%s]\n", ui.Bold(strings.ToUpper(string(layer))))
		for _, v := range layerViolations {
			fmt.Fprintf(w, "  %s:%d\n", v.File, v.Line)
			fmt.Fprintf(w, "    import: %s\n", v.Import)
			fmt.Fprintf(w, "    reason: %s\n", v.Reason)
		}
		fmt.Fprintln(w)
	}
}
