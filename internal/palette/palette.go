// Package palette holds the in-memory palette document: an insertion-ordered
// mapping of color family to scale slot to color.
//
// Documents are values with copy-on-write semantics. Every operation that
// changes a document returns a new one and leaves the receiver untouched, so
// replacing the current document is a single pointer swap for callers.
package palette

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jsvensson/palettekit/internal/color"
	"github.com/jsvensson/palettekit/internal/format"
	"github.com/jsvensson/palettekit/internal/scale"
)

var (
	ErrEmptyFamilyName = errors.New("family name must not be empty")
	ErrFamilyExists    = errors.New("color family already exists")
	ErrFamilyNotFound  = errors.New("color family not found")
	ErrSlotExists      = errors.New("slot already exists")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrInvalidSlot     = errors.New("slot must be a non-negative integer")
)

// Entry is one slot of a family.
type Entry struct {
	Slot  int
	Color color.Color
}

// Family is a named, ordered group of slots.
type Family struct {
	Name    string
	entries []Entry
}

// Document is the palette: families in insertion order.
type Document struct {
	families []Family
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// NewFamily builds a family from entries in order. A repeated slot keeps its
// first position and takes the last color given for it.
func NewFamily(name string, entries ...Entry) Family {
	f := Family{Name: NormalizeName(name)}
	for _, e := range entries {
		if i := f.index(e.Slot); i >= 0 {
			f.entries[i].Color = e.Color
			continue
		}
		f.entries = append(f.entries, e)
	}
	return f
}

// FromFamilies builds a document from families in order.
func FromFamilies(families ...Family) (*Document, error) {
	d := &Document{families: make([]Family, 0, len(families))}
	for _, f := range families {
		f = f.clone()
		f.Name = NormalizeName(f.Name)
		if f.Name == "" {
			return nil, ErrEmptyFamilyName
		}
		if d.index(f.Name) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrFamilyExists, f.Name)
		}
		for _, e := range f.entries {
			if e.Slot < 0 {
				return nil, fmt.Errorf("%w: %s.%d", ErrInvalidSlot, f.Name, e.Slot)
			}
		}
		d.families = append(d.families, f)
	}
	return d, nil
}

// NormalizeName trims and lower-cases a family name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Entries returns a copy of the family's slots in stored order.
func (f Family) Entries() []Entry {
	return slices.Clone(f.entries)
}

// Slots returns the occupied slot numbers in stored order.
func (f Family) Slots() []int {
	slots := make([]int, len(f.entries))
	for i, e := range f.entries {
		slots[i] = e.Slot
	}
	return slots
}

// Lookup returns the color stored at slot.
func (f Family) Lookup(slot int) (color.Color, bool) {
	if i := f.index(slot); i >= 0 {
		return f.entries[i].Color, true
	}
	return color.Color{}, false
}

// Len returns the number of slots in the family.
func (f Family) Len() int {
	return len(f.entries)
}

func (f Family) index(slot int) int {
	return slices.IndexFunc(f.entries, func(e Entry) bool { return e.Slot == slot })
}

func (f Family) clone() Family {
	return Family{Name: f.Name, entries: slices.Clone(f.entries)}
}

// Families returns copies of all families in document order.
func (d *Document) Families() []Family {
	out := make([]Family, len(d.families))
	for i, f := range d.families {
		out[i] = f.clone()
	}
	return out
}

// Family returns the named family.
func (d *Document) Family(name string) (Family, bool) {
	if i := d.index(NormalizeName(name)); i >= 0 {
		return d.families[i].clone(), true
	}
	return Family{}, false
}

// Lookup resolves a family and slot to a color.
func (d *Document) Lookup(family string, slot int) (color.Color, bool) {
	f, ok := d.Family(family)
	if !ok {
		return color.Color{}, false
	}
	return f.Lookup(slot)
}

// Len returns the number of families.
func (d *Document) Len() int {
	return len(d.families)
}

// Colors returns the total number of colors across all families.
func (d *Document) Colors() int {
	n := 0
	for _, f := range d.families {
		n += len(f.entries)
	}
	return n
}

// Each calls fn for every color in document order until fn returns false.
func (d *Document) Each(fn func(family string, e Entry) bool) {
	for _, f := range d.families {
		for _, e := range f.entries {
			if !fn(f.Name, e) {
				return
			}
		}
	}
}

// Equal reports whether two documents hold the same families, slots, and
// colors in the same order.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return slices.EqualFunc(d.families, other.families, func(a, b Family) bool {
		return a.Name == b.Name && slices.Equal(a.entries, b.entries)
	})
}

func (d *Document) index(name string) int {
	return slices.IndexFunc(d.families, func(f Family) bool { return f.Name == name })
}

func (d *Document) clone() *Document {
	out := &Document{families: make([]Family, len(d.families))}
	for i, f := range d.families {
		out.families[i] = f.clone()
	}
	return out
}

// AddFamily returns a document with an empty family inserted at position at.
// A negative position appends; positions past the end are clamped.
func (d *Document) AddFamily(name string, at int) (*Document, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrEmptyFamilyName
	}
	if d.index(name) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrFamilyExists, name)
	}
	if at < 0 || at > len(d.families) {
		at = len(d.families)
	}
	out := d.clone()
	out.families = slices.Insert(out.families, at, Family{Name: name})
	return out, nil
}

// RemoveFamily returns a document without the named family.
func (d *Document) RemoveFamily(name string) (*Document, error) {
	i := d.index(NormalizeName(name))
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrFamilyNotFound, name)
	}
	out := d.clone()
	out.families = slices.Delete(out.families, i, i+1)
	return out, nil
}

// RenameFamily returns a document with the family renamed in place.
func (d *Document) RenameFamily(oldName, newName string) (*Document, error) {
	i := d.index(NormalizeName(oldName))
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrFamilyNotFound, oldName)
	}
	newName = NormalizeName(newName)
	if newName == "" {
		return nil, ErrEmptyFamilyName
	}
	if j := d.index(newName); j >= 0 && j != i {
		return nil, fmt.Errorf("%w: %q", ErrFamilyExists, newName)
	}
	out := d.clone()
	out.families[i].Name = newName
	return out, nil
}

// SetColor returns a document with slot set to c. An existing slot keeps its
// position; a new slot is appended to the family.
func (d *Document) SetColor(family string, slot int, c color.Color) (*Document, error) {
	if slot < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	i := d.index(NormalizeName(family))
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrFamilyNotFound, family)
	}
	out := d.clone()
	f := &out.families[i]
	if j := f.index(slot); j >= 0 {
		f.entries[j].Color = c
	} else {
		f.entries = append(f.entries, Entry{Slot: slot, Color: c})
	}
	return out, nil
}

// RemoveColor returns a document without the given slot.
func (d *Document) RemoveColor(family string, slot int) (*Document, error) {
	i := d.index(NormalizeName(family))
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrFamilyNotFound, family)
	}
	j := d.families[i].index(slot)
	if j < 0 {
		return nil, fmt.Errorf("%w: %s.%d", ErrSlotNotFound, d.families[i].Name, slot)
	}
	out := d.clone()
	f := &out.families[i]
	f.entries = slices.Delete(f.entries, j, j+1)
	return out, nil
}

// InsertColor returns a document with c added to family at the slot chosen by
// scale.AssignChecked, along with that slot. When the slot search cannot find
// a free position the document is not changed and the error wraps both
// ErrSlotExists and scale.ErrSlotCollisionUnresolved.
func (d *Document) InsertColor(family string, c color.Color) (*Document, int, error) {
	f, ok := d.Family(family)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrFamilyNotFound, family)
	}
	slot, err := scale.AssignChecked(f.Slots(), c)
	if err != nil {
		return nil, slot, fmt.Errorf("%w: %s.%d: %w", ErrSlotExists, f.Name, slot, err)
	}
	out, err := d.SetColor(f.Name, slot, c)
	if err != nil {
		return nil, 0, err
	}
	return out, slot, nil
}

// MarshalJSON encodes the document as a two-level JSON object, preserving
// family and slot order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d.families {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(quote(f.Name))
		buf.WriteString(":{")
		for j, e := range f.entries {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strconv.Itoa(e.Slot))
			buf.WriteString(`":"`)
			buf.WriteString(e.Color.Hex())
			buf.WriteByte('"')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Render returns the editor buffer form of the document: indented JSON with
// two spaces per level and no trailing newline.
func (d *Document) Render() string {
	raw, _ := d.MarshalJSON()
	return string(format.Indent(raw))
}

// quote returns s as a JSON string literal without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // a string value always encodes
	return strings.TrimRight(buf.String(), "\n")
}
