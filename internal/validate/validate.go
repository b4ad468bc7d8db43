// Package validate produces advisory, line-level feedback for palette text
// that is still being edited. It never fails: any input, however broken,
// yields a Report.
//
// The report and the acceptance gate in package parser are independent. A
// line may be flagged while the document as a whole is accepted, and the
// reverse. TryCommit is the authoritative check.
package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/jsvensson/palettekit/internal/color"
	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/jsvensson/palettekit/internal/parser"
	"github.com/tidwall/gjson"
)

// Kind classifies a finding.
type Kind string

const (
	KindSyntax           Kind = "syntax"
	KindMissingComma     Kind = "missing-comma"
	KindTrailingComma    Kind = "trailing-comma"
	KindUnbalancedQuotes Kind = "unbalanced-quotes"
	KindMissingColon     Kind = "missing-colon"
	KindNonNumericKey    Kind = "non-numeric-key"
	KindInvalidHex       Kind = "invalid-hex"
	KindInvalidValue     Kind = "invalid-value"
)

// Finding is one suspect line. Line is 0-based.
type Finding struct {
	Line    int
	Kind    Kind
	Message string
}

// Report is the result of Validate. Fatal holds the whole-document parse
// error, if any.
type Report struct {
	Findings []Finding
	Fatal    string
}

// Lines returns the suspect line indices, sorted and unique.
func (r Report) Lines() []int {
	lines := make([]int, 0, len(r.Findings))
	for _, f := range r.Findings {
		lines = append(lines, f.Line)
	}
	slices.Sort(lines)
	return slices.Compact(lines)
}

// Suspect reports whether line was flagged.
func (r Report) Suspect(line int) bool {
	return slices.ContainsFunc(r.Findings, func(f Finding) bool { return f.Line == line })
}

// OK reports whether nothing was flagged and the text parsed.
func (r Report) OK() bool {
	return len(r.Findings) == 0 && r.Fatal == ""
}

var (
	// "key": "value" with either quote style.
	hexPairPattern = regexp.MustCompile(`["']([^"']+)["']\s*:\s*["']([^"']+)["']`)
	// "key": anything, with an optional trailing comma.
	keyValuePattern = regexp.MustCompile(`["']([^"']+)["']\s*:\s*(.+?)(?:,\s*)?$`)
	stringPattern   = regexp.MustCompile(`^".*"$`)
	numberPattern   = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
)

// Validate runs three passes over text and returns the union of their
// findings: a whole-document parse, local syntax heuristics, and per-line
// content checks.
func Validate(text string) Report {
	lines := strings.Split(text, "\n")
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimSpace(l)
	}

	var r Report

	if serr := parser.CheckSyntax([]byte(text)); serr != nil {
		r.Fatal = serr.Message
		if serr.Line >= 0 && serr.Line < len(lines) {
			r.add(serr.Line, KindSyntax, serr.Message)
		}
	}

	for i, line := range trimmed {
		if line == "" {
			continue
		}
		r.checkSeparators(trimmed, i)
		r.checkQuoting(line, i)
		r.checkContent(line, i)
	}

	slices.SortStableFunc(r.Findings, func(a, b Finding) int { return a.Line - b.Line })
	return r
}

// TryCommit is the acceptance gate: it returns the parsed document or a
// *parser.SyntaxError or *parser.SemanticViolation.
func TryCommit(text string) (*palette.Document, error) {
	return parser.Parse([]byte(text))
}

func (r *Report) add(line int, kind Kind, msg string) {
	r.Findings = append(r.Findings, Finding{Line: line, Kind: kind, Message: msg})
}

func (r *Report) checkSeparators(lines []string, i int) {
	line := lines[i]
	next, ok := nextNonBlank(lines, i)
	if !ok {
		return
	}

	endsValue := strings.HasSuffix(line, `"`) || strings.HasSuffix(line, "}")
	if endsValue && !strings.HasPrefix(next, "}") {
		r.add(i, KindMissingComma, "missing comma after this line")
	}
	if strings.HasSuffix(line, ",") && strings.HasPrefix(next, "}") {
		r.add(i, KindTrailingComma, "trailing comma before closing brace")
	}
}

func (r *Report) checkQuoting(line string, i int) {
	if strings.Count(line, `"`)%2 != 0 && !strings.HasSuffix(line, ",") &&
		!strings.HasSuffix(line, "{") && !strings.HasSuffix(line, "}") {
		r.add(i, KindUnbalancedQuotes, "unbalanced quotes")
	}

	if strings.Contains(line, `"`) && !strings.Contains(line, ":") &&
		!strings.HasPrefix(line, "{") && !strings.HasPrefix(line, "}") && len(line) > 2 {
		r.add(i, KindMissingColon, "key has no colon or value")
	}
}

func (r *Report) checkContent(line string, i int) {
	if m := hexPairPattern.FindStringSubmatch(line); m != nil {
		key, value := m[1], m[2]
		if !color.IsCanonicalHex(value) {
			r.add(i, KindInvalidHex, fmt.Sprintf("%q is not a valid hex color (e.g., #ff0000)", value))
		}
		if !digitsPattern.MatchString(key) {
			r.add(i, KindNonNumericKey, fmt.Sprintf("slot key %q must be numeric", key))
		}
	}

	if m := keyValuePattern.FindStringSubmatch(line); m != nil {
		value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[2]), ","))
		if !validValue(value) {
			r.add(i, KindInvalidValue, fmt.Sprintf("invalid value %s", value))
		}
	}
}

// validValue accepts a complete JSON value or a fragment that is fine on a
// line of its own: a literal, a quoted string, a number, or a lone brace.
func validValue(v string) bool {
	if gjson.Valid(v) {
		return true
	}
	switch v {
	case "true", "false", "null", "{", "}":
		return true
	}
	return stringPattern.MatchString(v) || numberPattern.MatchString(v)
}

func nextNonBlank(lines []string, i int) (string, bool) {
	for _, l := range lines[i+1:] {
		if l != "" {
			return l, true
		}
	}
	return "", false
}
