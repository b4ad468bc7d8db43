package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jsvensson/palettekit"
	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/jsvensson/palettekit/internal/store"
	"github.com/spf13/cobra"
)

var (
	flagFrom string
	flagName string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage saved palette projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, s store.Store, args []string) error {
		projects, err := s.List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(projects) == 0 {
			fmt.Fprintln(out, "no projects")
			return nil
		}
		for _, p := range projects {
			fmt.Fprintf(out, "%s  %-24s %3d colors  %s\n",
				faint.Sprint(p.ID), cyan.Sprint(p.Name), p.Palette.Colors(),
				p.UpdatedAt.Local().Format(time.DateTime))
		}
		return nil
	}),
}

var projectCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a project, empty or from a palette file",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, s store.Store, args []string) error {
		var doc *palette.Document
		if flagFrom != "" {
			var err error
			if doc, err = palettekit.Load(flagFrom); err != nil {
				return err
			}
		}
		p, err := s.Create(cmd.Context(), args[0], doc)
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "created %s (%s)\n", p.Name, p.ID)
		return nil
	}),
}

var projectImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Create a project from a palette file, named after the file",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, s store.Store, args []string) error {
		doc, err := palettekit.Load(args[0])
		if err != nil {
			return err
		}
		name := flagName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		p, err := s.Create(cmd.Context(), name, doc)
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "imported %s as %s (%s)\n", args[0], p.Name, p.ID)
		return nil
	}),
}

var projectShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a project's palette",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, s store.Store, args []string) error {
		p, err := s.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p.Palette.Render())
		return nil
	}),
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE: withStore(func(cmd *cobra.Command, s store.Store, args []string) error {
		p, err := s.Update(cmd.Context(), args[0], store.Patch{Name: &args[1]})
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "renamed %s to %s\n", p.ID, p.Name)
		return nil
	}),
}

var projectSaveCmd = &cobra.Command{
	Use:   "save ID FILE",
	Short: "Replace a project's palette with the contents of FILE",
	Args:  cobra.ExactArgs(2),
	RunE: withStore(func(cmd *cobra.Command, s store.Store, args []string) error {
		doc, err := palettekit.Load(args[1])
		if err != nil {
			return err
		}
		p, err := s.Update(cmd.Context(), args[0], store.Patch{Palette: doc})
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "saved %s (%d colors)\n", p.Name, p.Palette.Colors())
		return nil
	}),
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, s store.Store, args []string) error {
		if err := s.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	}),
}

// withStore opens the configured store around fn.
func withStore(fn func(*cobra.Command, store.Store, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(cfg.Store)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer s.Close()
		return fn(cmd, s, args)
	}
}

func init() {
	projectCreateCmd.Flags().StringVar(&flagFrom, "from", "", "palette file to start from")
	projectImportCmd.Flags().StringVar(&flagName, "name", "", "project name (default: file name without extension)")
	projectCmd.AddCommand(projectListCmd, projectCreateCmd, projectImportCmd, projectShowCmd,
		projectRenameCmd, projectSaveCmd, projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}
