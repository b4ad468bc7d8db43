package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsvensson/palettekit/internal/format"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var flagCheck bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format palette files",
	Long: "Format one or more palette files in-place. Prints the name of each file that was modified.\n" +
		"With --check, files are left untouched and the changes are printed as a diff.",
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			failure(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			failure(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if flagCheck {
			writeDiff(cmd.OutOrStdout(), content, formatted)
			continue
		}
		if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
			failure(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
			hasErrors = true
		}
	}

	if hasErrors {
		return fmt.Errorf("formatting failed")
	}
	if flagCheck && needsFormatting {
		return fmt.Errorf("files are not formatted")
	}
	return nil
}

// lineDiff returns a line-level diff of a and b.
func lineDiff(a, b string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	return dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
}

// writeDiff prints changed lines prefixed with - and +.
func writeDiff(w io.Writer, a, b string) {
	for _, d := range lineDiff(a, b) {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				red.Fprintf(w, "-%s\n", line)
			case diffmatchpatch.DiffInsert:
				green.Fprintf(w, "+%s\n", line)
			case diffmatchpatch.DiffEqual:
				faint.Fprintf(w, " %s\n", line)
			}
		}
	}
}
