package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jsvensson/palettekit/internal/format"
	"github.com/jsvensson/palettekit/internal/parser"
)

// record is the serialized form shared by the file and redis backends.
type record struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Colors    json.RawMessage `json:"colors"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func encodeProject(p Project) ([]byte, error) {
	colors, err := p.Palette.MarshalJSON()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(record{
		ID:        p.ID,
		Name:      p.Name,
		Colors:    colors,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding project %s: %w", p.ID, err)
	}
	return format.Indent(raw), nil
}

// decodeProject runs the stored palette through the same acceptance gate as
// edited text.
func decodeProject(data []byte) (Project, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Project{}, fmt.Errorf("decoding project: %w", err)
	}
	doc, err := parser.Parse(rec.Colors)
	if err != nil {
		return Project{}, fmt.Errorf("decoding project %s palette: %w", rec.ID, err)
	}
	return Project{
		ID:        rec.ID,
		Name:      rec.Name,
		Palette:   doc,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
