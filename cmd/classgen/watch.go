package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/syssam/classgen/compiler/gen"
	"github.com/syssam/classgen/compiler/load"
)

var cmdWatch = &cli.Command{
	Name:      "watch",
	Usage:     "regenerate the package whenever the schema or config changes",
	ArgsUsage: "<schema-file>",
	Flags: append([]cli.Flag{
		&cli.DurationFlag{
			Name:  "debounce",
			Usage: "quiet period before a rerun",
			Value: 200 * time.Millisecond,
		},
	}, genFlags...),
	Action: runWatch,
}

func runWatch(cctx *cli.Context) error {
	logger := configLogger(cctx, cctx.App.ErrWriter)
	s, err := loadSettings(cctx, logger)
	if err != nil {
		return err
	}
	if !s.hasTarget {
		return gen.NewConfigError("Target", nil, "missing target directory; use --target or the config file")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	files := map[string]bool{filepath.Clean(s.schema): true}
	if cfg := cctx.String("config"); cfg != "" {
		files[filepath.Clean(cfg)] = true
	}
	// Editors replace files on save, so the directories are watched.
	dirs := make(map[string]bool)
	for f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	regen := func() {
		// The config is reread so edits to it apply.
		s, err := loadSettings(cctx, logger)
		if err != nil {
			logger.Error("load settings", "error", err)
			return
		}
		if err := generateOnce(cctx.Context, s); err != nil {
			logger.Error("generate", "schema", s.schema, "error", err)
		}
	}
	regen()
	return watch(cctx.Context, watcher, files, cctx.Duration("debounce"), logger, regen)
}

func generateOnce(ctx context.Context, s *settings) error {
	m, err := load.LoadFile(s.schema)
	if err != nil {
		return err
	}
	_, err = gen.Generate(ctx, m, s.opts...)
	return err
}

// watch calls regen once per burst of changes to one of files, until ctx
// is done. Every change triggers a full rerun.
func watch(ctx context.Context, w *fsnotify.Watcher, files map[string]bool, debounce time.Duration, logger *slog.Logger, regen func()) error {
	log := logger.With("source", "watcher")
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(event.Name)] || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			log.Debug("file changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err)
		case <-timer.C:
			log.Info("regenerating")
			regen()
		}
	}
}
