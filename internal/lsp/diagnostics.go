package lsp

import (
	"errors"
	"strings"

	"github.com/jsvensson/palettekit/internal/parser"
	"github.com/jsvensson/palettekit/internal/validate"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "palettekit"

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

// diagnostics converts a validation report and an optional commit rejection
// into LSP diagnostics. Syntax findings are left to the rejection, which
// carries the same line.
func diagnostics(content string, report validate.Report, rejection error) []protocol.Diagnostic {
	lines := splitLines(content)
	out := []protocol.Diagnostic{}

	for _, f := range report.Findings {
		if f.Kind == validate.KindSyntax && rejection != nil {
			continue
		}
		out = append(out, protocol.Diagnostic{
			Range:    lineRange(lines, f.Line),
			Severity: &DiagWarning,
			Code:     &protocol.IntegerOrString{Value: string(f.Kind)},
			Source:   strPtr(diagnosticSource),
			Message:  f.Message,
		})
	}

	if rejection != nil {
		line, msg := rejectionLocation(rejection)
		out = append(out, protocol.Diagnostic{
			Range:    lineRange(lines, line),
			Severity: &DiagError,
			Source:   strPtr(diagnosticSource),
			Message:  msg,
		})
	}

	return out
}

// rejectionLocation returns the 0-based line to attach a rejection to.
// Errors without a position go on the first line.
func rejectionLocation(err error) (int, string) {
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		return max(se.Line, 0), se.Error()
	}
	var sv *parser.SemanticViolation
	if errors.As(err, &sv) {
		return max(sv.Line, 0), sv.Message
	}
	return 0, err.Error()
}

// lineRange spans the trimmed content of a line.
func lineRange(lines []string, line int) protocol.Range {
	if line < 0 || line >= len(lines) {
		return protocol.Range{}
	}
	text := lines[line]
	end := len(strings.TrimRight(text, " \t\r"))
	start := min(len(text)-len(strings.TrimLeft(text, " \t")), end)
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: uint32(start)},
		End:   protocol.Position{Line: uint32(line), Character: uint32(end)},
	}
}

func strPtr(s string) *string {
	return &s
}
