package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/jsvensson/palettekit/internal/search"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	if startLine == endLine {
		line := lines[startLine]
		startChar := int(r.Start.Character)
		endChar := int(r.End.Character)
		if startChar > len(line) {
			startChar = len(line)
		}
		if endChar > len(line) {
			endChar = len(line)
		}
		return line[startChar:endChar]
	}

	// Multi-line range
	var parts []string
	for i := startLine; i <= endLine; i++ {
		line := lines[i]
		if i == startLine {
			startChar := int(r.Start.Character)
			if startChar > len(line) {
				startChar = len(line)
			}
			parts = append(parts, line[startChar:])
		} else if i == endLine {
			endChar := int(r.End.Character)
			if endChar > len(line) {
				endChar = len(line)
			}
			parts = append(parts, line[:endChar])
		} else {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// hover produces a Hover response for the given cursor position. It shows
// the hex, rgb, and decimal forms of the literal under the cursor and the
// nearest other color in doc. Returns nil if no color is at the position.
func hover(result *AnalysisResult, doc *palette.Document, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		var b strings.Builder
		if cl.HasSlot {
			fmt.Fprintf(&b, "**%s.%d**\n\n", cl.Family, cl.Slot)
		}
		fmt.Fprintf(&b, "`%s` \u00b7 `%s` \u00b7 `%d`", cl.Color.Hex(), cl.Color.RGB(), cl.Color.Decimal())

		if m, ok := closestOther(doc, cl); ok {
			fmt.Fprintf(&b, "\n\nClosest: **%s.%d** `%s` (distance %d)", m.Family, m.Slot, m.Color.Hex(), m.Distance)
		}

		rng := cl.Range
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: b.String(),
			},
			Range: &rng,
		}
	}

	return nil
}

// closestOther searches doc for the color nearest to cl, ignoring the entry
// cl itself stands for.
func closestOther(doc *palette.Document, cl ColorLocation) (search.Match, bool) {
	if doc == nil {
		return search.Match{}, false
	}
	if cl.HasSlot {
		if without, err := doc.RemoveColor(cl.Family, cl.Slot); err == nil {
			doc = without
		}
	}
	return search.Closest(cl.Color, doc)
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	sess, ok := s.docs.Session(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return hover(Analyze(sess.Buffer()), sess.Document(), params.Position), nil
}
