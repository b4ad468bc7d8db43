package main

import (
	"fmt"
	"os"

	"github.com/jsvensson/palettekit/internal/validate"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check palette files",
	Long: "Report suspect lines in each file and whether the file is accepted as a palette.\n" +
		"Exits non-zero when any file has findings or is rejected.",
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	problems := 0

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		text := string(data)

		report := validate.Validate(text)
		printReport(out, path, report)
		problems += len(report.Findings)

		doc, err := validate.TryCommit(text)
		if err != nil {
			failure(out, "%s: rejected: %v\n", path, err)
			problems++
			continue
		}
		success(out, "%s: %d families, %d colors\n", path, doc.Len(), doc.Colors())
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	return nil
}
