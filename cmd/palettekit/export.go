package main

import (
	"fmt"

	"github.com/jsvensson/palettekit"
	"github.com/jsvensson/palettekit/internal/engine"
	"github.com/spf13/cobra"
)

var (
	flagOut       string
	flagTemplates string
	flagApp       []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render templates against a palette",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFile, "file", "f", "palette.json", "path to palette file")
	exportCmd.Flags().StringVar(&flagOut, "out", "output", "output directory")
	exportCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	exportCmd.Flags().StringArrayVar(&flagApp, "app", nil, "render only specific templates by output name (can be repeated)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := palettekit.Load(flagFile)
	if err != nil {
		return err
	}

	e := &engine.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    flagOut,
		Apps:         flagApp,
	}

	if err := e.Run(doc); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	success(cmd.OutOrStdout(), "Exported palette files to %s\n", flagOut)
	return nil
}
