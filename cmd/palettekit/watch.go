package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/fsnotify/fsnotify"
	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/jsvensson/palettekit/internal/session"
	"github.com/jsvensson/palettekit/internal/validate"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-check a palette file every time it is saved",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()
	log := commonlog.GetLogger("palettekit.watch")

	sess := session.New(nil,
		session.WithDebounce(cfg.Session.Debounce),
		session.WithLogger(log),
		session.WithOnReport(func(r validate.Report) {
			printReport(out, path, r)
		}),
		session.WithOnCommit(func(doc *palette.Document) {
			success(out, "%s: %d families, %d colors\n", path, doc.Len(), doc.Colors())
		}),
		session.WithOnReject(func(err error) {
			failure(out, "%s: rejected: %v\n", path, err)
		}),
	)
	defer sess.Close()

	load := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Infof("reading %s: %v", path, err)
			return
		}
		if string(data) == sess.Buffer() {
			return
		}
		_ = sess.Edit(string(data))
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	load()
	sess.Flush()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			// Editors that save by rename drop the watch; re-add it.
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				_ = w.Add(path)
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				load()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Infof("watch error: %v", err)
		}
	}
}
