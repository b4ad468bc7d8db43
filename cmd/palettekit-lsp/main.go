package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jsvensson/palettekit/internal/config"
	"github.com/jsvensson/palettekit/internal/lsp"
	"github.com/tliron/commonlog"
)

var version = "dev"

func main() {
	configFile := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(config.Options{File: *configFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())

	s := lsp.NewServer(version, cfg.Session.Debounce)
	if err := s.Run(); err != nil {
		os.Exit(1)
	}
}
