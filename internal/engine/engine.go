package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/jsvensson/palettekit/internal/color"
	"github.com/jsvensson/palettekit/internal/palette"
)

// Engine loads and executes Go templates against a palette document.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given palette, and writes output files.
func (e *Engine) Run(doc *palette.Document) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(doc)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no apps are specified, render all.
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Families []palette.Family
	Colors   int
	FuncMap  template.FuncMap
}

// resolveColorPath resolves a "family.slot" path to a Color.
func resolveColorPath(doc *palette.Document, path string) (color.Color, error) {
	i := strings.LastIndex(path, ".")
	if i <= 0 || i == len(path)-1 {
		return color.Color{}, fmt.Errorf("invalid path %q: must be family.slot format", path)
	}

	slot, err := strconv.Atoi(path[i+1:])
	if err != nil {
		return color.Color{}, fmt.Errorf("invalid path %q: slot must be numeric", path)
	}

	c, ok := doc.Lookup(path[:i], slot)
	if !ok {
		return color.Color{}, fmt.Errorf("color not found: %s", path)
	}
	return c, nil
}

func buildTemplateData(doc *palette.Document) templateData {
	if doc == nil {
		doc = palette.New()
	}
	return templateData{
		Families: doc.Families(),
		Colors:   doc.Colors(),
		FuncMap: template.FuncMap{
			"hex": func(c color.Color) string {
				return c.Hex()
			},
			"hexBare": func(c color.Color) string {
				return c.HexBare()
			},
			"rgb": func(c color.Color) string {
				return c.RGB()
			},
			"decimal": func(c color.Color) int {
				return c.Decimal()
			},
			"color": func(path string) (color.Color, error) {
				return resolveColorPath(doc, path)
			},
			"brighten": func(amount float64, c color.Color) color.Color {
				return color.Brighten(c, amount)
			},
			"darken": func(amount float64, c color.Color) color.Color {
				return color.Darken(c, amount)
			},
		},
	}
}
