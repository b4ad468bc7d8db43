package main

import (
	"fmt"
	"os"

	"github.com/jsvensson/palettekit/internal/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagConfig   string
	flagEnvFiles []string
	version      = "dev" // Injected at build time via ldflags

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "palettekit",
	Short:         "Edit, check and export color palettes of family/slot/hex entries",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(config.Options{
			File:     flagConfig,
			EnvFiles: flagEnvFiles,
		})
		if err != nil {
			return err
		}
		commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default "+config.DefaultFile+")")
	rootCmd.PersistentFlags().StringArrayVar(&flagEnvFiles, "env-file", nil, "dotenv file to load (can be repeated)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		failure(rootCmd.ErrOrStderr(), "%v\n", err)
		os.Exit(1)
	}
}
