package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FlushStats counts what a flush did with the artifacts.
type FlushStats struct {
	// Written files were created or replaced.
	Written int
	// Unchanged files already held the rendered content.
	Unchanged int
	// Skipped files are existing create-only stubs.
	Skipped int
}

// Sink writes artifacts below the configured target directory.
type Sink struct {
	cfg *Config
}

// NewSink returns a sink writing to cfg.Target.
func NewSink(cfg *Config) *Sink {
	return &Sink{cfg: cfg}
}

// Flush writes every artifact. Each file is replaced atomically through a
// temporary file in the same directory, so a reader never observes a
// half-written file; an I/O error stops the flush and leaves the files
// written before it in place. Output of disabled features left by
// previous runs is removed first.
func (s *Sink) Flush(ctx context.Context, out *Artifacts) (*FlushStats, error) {
	if s.cfg == nil || s.cfg.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	if err := cleanupFeatures(s.cfg); err != nil {
		return nil, fmt.Errorf("cleanup disabled features: %w", err)
	}
	stats := &FlushStats{}
	for _, a := range out.Files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		path := filepath.Join(s.cfg.Target, a.Path)
		prev, err := os.ReadFile(path)
		switch {
		case err == nil && a.Mode == CreateOnly:
			stats.Skipped++
			s.cfg.Logger.Debug("keep existing stub", "path", a.Path)
			continue
		case err == nil && bytes.Equal(prev, a.Data):
			stats.Unchanged++
			continue
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return stats, fmt.Errorf("read %s: %w", a.Path, err)
		}
		if err := writeAtomic(path, a.Data); err != nil {
			return stats, fmt.Errorf("write %s: %w", a.Path, err)
		}
		stats.Written++
		s.cfg.Logger.Debug("write artifact", "path", a.Path, "mode", a.Mode, "bytes", len(a.Data))
	}
	s.cfg.Logger.Info("flushed artifacts",
		"target", s.cfg.Target,
		"written", stats.Written,
		"unchanged", stats.Unchanged,
		"skipped", stats.Skipped,
	)
	return stats, nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
