package lsp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jsvensson/palettekit/internal/color"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	hexLiteralPattern = regexp.MustCompile(`"#[0-9a-fA-F]{6}"`)
	familyOpenPattern = regexp.MustCompile(`^\s*"([^"]*)"\s*:\s*\{`)
	slotKeyPattern    = regexp.MustCompile(`"(\d+)"\s*:\s*$`)
)

// AnalysisResult is a lexical view of a palette document. It works on
// partial text and does not depend on the document being accepted.
type AnalysisResult struct {
	Colors []ColorLocation
	// families[i] is the family whose object encloses line i, or "".
	families []string
}

// ColorLocation records a hex literal at a specific source position. Range
// covers the literal including its quotes.
type ColorLocation struct {
	Range  protocol.Range
	Color  color.Color
	Family string
	Slot   int
	// HasSlot is set when the literal is the value of a numeric slot key.
	HasSlot bool
}

// FamilyAt returns the family enclosing line, or "".
func (r *AnalysisResult) FamilyAt(line int) string {
	if r == nil || line < 0 || line >= len(r.families) {
		return ""
	}
	return r.families[line]
}

// Analyze scans content line by line for hex literals and the family each
// line belongs to.
func Analyze(content string) *AnalysisResult {
	lines := splitLines(content)
	result := &AnalysisResult{families: make([]string, len(lines))}

	family := ""
	depth := 0
	for i, line := range lines {
		if m := familyOpenPattern.FindStringSubmatch(line); m != nil && depth == 1 {
			family = strings.ToLower(strings.TrimSpace(m[1]))
		}
		result.families[i] = family

		for _, loc := range hexLiteralPattern.FindAllStringIndex(line, -1) {
			c, err := color.ParseHex(line[loc[0]+1 : loc[1]-1])
			if err != nil {
				continue
			}
			slot, hasSlot := slotBefore(line[:loc[0]], depth)
			result.Colors = append(result.Colors, ColorLocation{
				Range: protocol.Range{
					Start: protocol.Position{Line: uint32(i), Character: uint32(loc[0])},
					End:   protocol.Position{Line: uint32(i), Character: uint32(loc[1])},
				},
				Color:   c,
				Family:  family,
				Slot:    slot,
				HasSlot: hasSlot,
			})
		}

		depth += braceDelta(line)
		if depth <= 1 {
			family = ""
		}
	}

	return result
}

// slotBefore reads the slot key that prefix ends with. depth is the nesting
// at the start of the line; the key only counts inside a family object.
func slotBefore(prefix string, depth int) (int, bool) {
	if depth+braceDelta(prefix) < 2 {
		return 0, false
	}
	m := slotKeyPattern.FindStringSubmatch(prefix)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// braceDelta counts braces outside string literals.
func braceDelta(line string) int {
	delta := 0
	inString := false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '\\' && inString:
			i++
		case c == '"':
			inString = !inString
		case c == '{' && !inString:
			delta++
		case c == '}' && !inString:
			delta--
		}
	}
	return delta
}

func splitLines(content string) []string {
	return strings.Split(content, "\n")
}
