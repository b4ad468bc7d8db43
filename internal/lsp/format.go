package lsp

import (
	"github.com/jsvensson/palettekit/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatting returns a single edit replacing the whole document with its
// canonical layout. Content that is not valid JSON yields no edits, so
// formatting is safe while the user is still typing.
func formatting(content string) []protocol.TextEdit {
	formatted, err := format.Format(content)
	if err != nil || formatted == content {
		return []protocol.TextEdit{}
	}

	lines := splitLines(content)
	last := len(lines) - 1
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: uint32(last), Character: uint32(len(lines[last]))},
		},
		NewText: formatted,
	}}
}

// textDocumentFormatting handles textDocument/formatting requests.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return formatting(content), nil
}
