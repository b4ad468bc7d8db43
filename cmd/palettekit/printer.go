package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jsvensson/palettekit/internal/validate"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

func success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ "+format, a...)
}

func warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, format, a...)
}

func failure(w io.Writer, format string, a ...any) {
	red.Fprintf(w, format, a...)
}

// printReport writes one line per finding as path:line: kind: message.
func printReport(w io.Writer, path string, r validate.Report) {
	for _, f := range r.Findings {
		fmt.Fprintf(w, "%s:%d: ", path, f.Line+1)
		warning(w, "%s", f.Kind)
		fmt.Fprintf(w, ": %s\n", f.Message)
	}
}
