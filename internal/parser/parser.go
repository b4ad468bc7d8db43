// Package parser is the acceptance gate for palette documents. It decides
// whether a piece of text may replace the current palette and, when it may
// not, says exactly which family or key is at fault.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	hcljson "github.com/hashicorp/hcl/v2/json"
	"github.com/jsvensson/palettekit/internal/color"
	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/zclconf/go-cty/cty"
)

const sourceName = "palette.json"

// SyntaxError reports text that is not well-formed JSON. Line is 0-based, or
// -1 when no position is known.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line < 0 {
		return "syntax error: " + e.Message
	}
	return fmt.Sprintf("syntax error on line %d: %s", e.Line+1, e.Message)
}

// SemanticViolation reports well-formed JSON that is not a palette. Family
// and Key locate the offending entry; either may be empty. Line is 0-based.
type SemanticViolation struct {
	Family  string
	Key     string
	Line    int
	Message string
}

func (e *SemanticViolation) Error() string {
	return e.Message
}

// Path returns the dotted location of the violation, e.g. "blue.500".
func (e *SemanticViolation) Path() string {
	switch {
	case e.Family == "":
		return ""
	case e.Key == "":
		return e.Family
	}
	return e.Family + "." + e.Key
}

// ParseFile reads and parses a palette document from disk.
func ParseFile(path string) (*palette.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}
	return Parse(src)
}

// CheckSyntax parses src as JSON and returns the first syntax error, or nil.
func CheckSyntax(src []byte) *SyntaxError {
	_, err := parseExpr(src)
	return err
}

// Parse accepts src only if it is an object of objects whose keys are
// decimal slot numbers and whose values are "#rrggbb" strings. The error is
// a *SyntaxError or a *SemanticViolation.
func Parse(src []byte) (*palette.Document, error) {
	expr, serr := parseExpr(src)
	if serr != nil {
		return nil, serr
	}

	pairs, ok := members(expr)
	if !ok {
		return nil, &SemanticViolation{
			Line:    line(expr.Range()),
			Message: "palette must be a JSON object of color families",
		}
	}

	families := make([]palette.Family, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		f, err := parseFamily(pair, seen)
		if err != nil {
			return nil, err
		}
		families = append(families, f)
	}

	return palette.FromFamilies(families...)
}

func parseFamily(pair hcl.KeyValuePair, seen map[string]bool) (palette.Family, error) {
	raw := keyString(pair.Key)
	name := palette.NormalizeName(raw)
	at := line(pair.Key.Range())

	if name == "" {
		return palette.Family{}, &SemanticViolation{
			Family:  raw,
			Line:    at,
			Message: "color family name must not be empty",
		}
	}
	if seen[name] {
		return palette.Family{}, &SemanticViolation{
			Family:  name,
			Line:    at,
			Message: fmt.Sprintf("duplicate color family %q", name),
		}
	}
	seen[name] = true

	pairs, ok := members(pair.Value)
	if !ok {
		return palette.Family{}, &SemanticViolation{
			Family:  name,
			Line:    at,
			Message: fmt.Sprintf("color family %q must be an object", name),
		}
	}

	entries := make([]palette.Entry, 0, len(pairs))
	slots := make(map[int]bool, len(pairs))
	for _, p := range pairs {
		key := keyString(p.Key)
		path := name + "." + key
		violation := func(msg string) error {
			return &SemanticViolation{
				Family:  name,
				Key:     key,
				Line:    line(p.Key.Range()),
				Message: msg,
			}
		}

		slot, ok := parseSlot(key)
		if !ok {
			return palette.Family{}, violation(fmt.Sprintf("color key %q must be numeric", path))
		}
		// The key is rendered back from the int, so "0500" would become "500".
		if len(key) > 1 && key[0] == '0' {
			return palette.Family{}, violation(fmt.Sprintf("color key %q must not have leading zeros", path))
		}
		if slots[slot] {
			return palette.Family{}, violation(fmt.Sprintf("duplicate color key %q", path))
		}
		slots[slot] = true

		v, diags := p.Value.Value(nil)
		if diags.HasErrors() || v.IsNull() || !v.Type().Equals(cty.String) {
			return palette.Family{}, violation(fmt.Sprintf("color %q must be a string", path))
		}
		hex := v.AsString()
		if !color.IsCanonicalHex(hex) {
			return palette.Family{}, violation(fmt.Sprintf("color %q must be a valid hex color (e.g., #ff0000)", path))
		}
		c, err := color.ParseHex(hex)
		if err != nil {
			return palette.Family{}, violation(fmt.Sprintf("color %q must be a valid hex color (e.g., #ff0000)", path))
		}
		entries = append(entries, palette.Entry{Slot: slot, Color: c})
	}

	return palette.NewFamily(name, entries...), nil
}

func parseExpr(src []byte) (hcl.Expression, *SyntaxError) {
	expr, diags := hcljson.ParseExpression(src, sourceName)
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		msg := d.Summary
		if d.Detail != "" {
			msg += "; " + d.Detail
		}
		ln := -1
		if at, ok := syntaxLine(src); ok {
			ln = at
		} else if d.Subject != nil {
			ln = line(*d.Subject)
		}
		return nil, &SyntaxError{Line: ln, Message: msg}
	}
	return expr, nil
}

// syntaxLine returns the 0-based line of the first byte that cannot continue
// the JSON value in src. hcl reports some errors, such as a missing comma, on
// the closing brace of the enclosing object instead.
func syntaxLine(src []byte) (int, bool) {
	var se *json.SyntaxError
	if err := json.Unmarshal(src, new(json.RawMessage)); !errors.As(err, &se) {
		return 0, false
	}
	off := int(min(max(se.Offset-1, 0), int64(len(src))))
	return bytes.Count(src[:off], []byte("\n")), true
}

// members returns the key/value pairs of an object expression in source
// order, repeated keys included.
func members(expr hcl.Expression) ([]hcl.KeyValuePair, bool) {
	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return nil, false
	}
	return pairs, true
}

func keyString(expr hcl.Expression) string {
	v, diags := expr.Value(nil)
	if diags.HasErrors() || v.IsNull() || !v.Type().Equals(cty.String) {
		return ""
	}
	return v.AsString()
}

// parseSlot accepts a non-empty run of ASCII digits that fits in an int.
func parseSlot(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}

func line(r hcl.Range) int {
	if r.Start.Line <= 0 {
		return -1
	}
	return r.Start.Line - 1
}
