// Package palettekit loads palette documents: a JSON mapping of color
// family to scale slot to hex color.
package palettekit

import (
	"fmt"

	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/jsvensson/palettekit/internal/parser"
	"github.com/spf13/afero"
)

// Load parses a palette file and returns the accepted document.
func Load(path string) (*palette.Document, error) {
	return LoadFS(afero.NewOsFs(), path)
}

// LoadFS is Load reading from fsys.
func LoadFS(fsys afero.Fs, path string) (*palette.Document, error) {
	src, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	doc, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("loading palette %s: %w", path, err)
	}
	return doc, nil
}

// Save writes doc to path in canonical form.
func Save(path string, doc *palette.Document) error {
	return SaveFS(afero.NewOsFs(), path, doc)
}

// SaveFS is Save writing to fsys.
func SaveFS(fsys afero.Fs, path string, doc *palette.Document) error {
	if err := afero.WriteFile(fsys, path, []byte(doc.Render()+"\n"), 0644); err != nil {
		return fmt.Errorf("saving palette: %w", err)
	}
	return nil
}
