package lsp

import (
	"slices"
	"strconv"
	"strings"

	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/jsvensson/palettekit/internal/scale"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// standardSlots are offered as slot key completions.
var standardSlots = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950}

// isKeyPosition reports whether the text before the cursor is the start of
// an object key: only whitespace and an optional opening quote.
func isKeyPosition(textBeforeCursor string) bool {
	t := strings.TrimLeft(textBeforeCursor, " \t")
	return t == "" || t == `"`
}

// complete suggests unused standard slots for the family enclosing the
// cursor. Slots already in the committed document are left out.
func complete(result *AnalysisResult, doc *palette.Document, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return []protocol.CompletionItem{}
	}
	line := lines[pos.Line]
	if int(pos.Character) > len(line) || !isKeyPosition(line[:pos.Character]) {
		return []protocol.CompletionItem{}
	}

	family := result.FamilyAt(int(pos.Line))
	if family == "" {
		return []protocol.CompletionItem{}
	}

	var used []int
	if doc != nil {
		if f, ok := doc.Family(family); ok {
			used = f.Slots()
		}
	}

	quoted := strings.HasSuffix(line[:pos.Character], `"`)
	kind := protocol.CompletionItemKindValue
	items := []protocol.CompletionItem{}
	for _, slot := range standardSlots {
		if slices.Contains(used, slot) {
			continue
		}
		key := strconv.Itoa(slot)
		insert := `"` + key + `": "#"`
		if quoted {
			insert = key + `": "#"`
		}
		detail := family + "." + key
		if len(used) == 0 && slot == scale.DefaultSlot {
			detail += " (default for an empty family)"
		}
		items = append(items, protocol.CompletionItem{
			Label:      key,
			Kind:       &kind,
			Detail:     &detail,
			InsertText: &insert,
		})
	}
	return items
}

// textDocumentCompletion handles textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	sess, ok := s.docs.Session(string(params.TextDocument.URI))
	if !ok {
		return []protocol.CompletionItem{}, nil
	}
	content := sess.Buffer()
	return complete(Analyze(content), sess.Document(), content, params.Position), nil
}
