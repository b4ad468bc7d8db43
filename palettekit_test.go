package palettekit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsvensson/palettekit/internal/parser"
	"github.com/spf13/afero"
)

const samplePalette = `{
  "blue": {
    "500": "#3b82f6",
    "600": "#2563eb"
  },
  "red": {
    "500": "#ef4444"
  }
}
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.json")
	if err := os.WriteFile(path, []byte(samplePalette), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Len() != 2 || doc.Colors() != 3 {
		t.Errorf("Load() = %d families, %d colors, want 2, 3", doc.Len(), doc.Colors())
	}
	if c, ok := doc.Lookup("blue", 600); !ok || c.Hex() != "#2563eb" {
		t.Errorf("blue.600 = %v, %v", c, ok)
	}
}

func TestLoadFS_Missing(t *testing.T) {
	if _, err := LoadFS(afero.NewMemMapFs(), "nope.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFS_Rejected(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "bad.json", []byte(`{"blue": "#3b82f6"}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFS(fs, "bad.json")
	var sv *parser.SemanticViolation
	if !errors.As(err, &sv) {
		t.Fatalf("LoadFS() error = %v, want *parser.SemanticViolation", err)
	}
	if sv.Family != "blue" {
		t.Errorf("violation family = %q, want blue", sv.Family)
	}
}

func TestSaveFS_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "in.json", []byte(samplePalette), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadFS(fs, "in.json")
	if err != nil {
		t.Fatal(err)
	}

	if err := SaveFS(fs, "out.json", doc); err != nil {
		t.Fatalf("SaveFS() error: %v", err)
	}
	out, err := afero.ReadFile(fs, "out.json")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != samplePalette {
		t.Errorf("saved =\n%s\nwant:\n%s", out, samplePalette)
	}
}
