package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runApp runs the CLI without a config file and returns its stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"classgen", "--config", "", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "dots")
	out, err := runApp(t, "generate", "--target", target, "testdata/dots.yaml")
	require.NoError(t, err)
	assert.Regexp(t, `^\d+ written, 0 unchanged, 0 skipped`, out)
	for _, path := range []string{"dot.go", "dot_base.go", "line_bind.go", "register.go", "stubs/dots/__init__.pyi", "docs/index.md"} {
		assert.FileExists(t, filepath.Join(target, path))
	}

	out, err = runApp(t, "generate", "--target", target, "testdata/dots.yaml")
	require.NoError(t, err)
	assert.Regexp(t, `^0 written, \d+ unchanged, 2 skipped`, out)
}

func TestGenerateFromConfig(t *testing.T) {
	dir := t.TempDir()
	schema, err := filepath.Abs("testdata/dots.yaml")
	require.NoError(t, err)
	config := filepath.Join(dir, "classgen.yaml")
	require.NoError(t, os.WriteFile(config, []byte(
		"schema: "+schema+"\ntarget: out\npackage: dots\nident_prefix: Sym\ndisable: [docs]\n",
	), 0o644))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	require.NoError(t, app.Run([]string{"classgen", "--config", config, "generate"}))
	assert.FileExists(t, filepath.Join(dir, "out", "idents.go"))
	assert.NoDirExists(t, filepath.Join(dir, "out", "docs"))
	b, err := os.ReadFile(filepath.Join(dir, "out", "idents.go"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "Sym_Dot")

	t.Run("flags override the file", func(t *testing.T) {
		require.NoError(t, app.Run([]string{"classgen", "--config", config, "generate", "--disable", "stubs"}))
		assert.DirExists(t, filepath.Join(dir, "out", "docs"))
		assert.NoDirExists(t, filepath.Join(dir, "out", "stubs"))
	})
}

func TestCheck(t *testing.T) {
	out, err := runApp(t, "check", "testdata/dots.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 2 classes, 1 enums, 0 constants")
}

func TestIdents(t *testing.T) {
	out, err := runApp(t, "idents", "--ident-prefix", "Name", "testdata/dots.yaml")
	require.NoError(t, err)
	assert.Regexp(t, `Name_points\s+points\s+attribute`, out)
	assert.Regexp(t, `Name_RED\s+RED\s+enum value`, out)
}

func TestCommandErrors(t *testing.T) {
	tests := map[string][]string{
		"missing schema file":    {"check"},
		"missing target":         {"generate", "testdata/dots.yaml"},
		"unknown feature":        {"check", "--disable", "sql", "testdata/dots.yaml"},
		"schema file not found":  {"check", "testdata/missing.yaml"},
		"invalid package option": {"check", "--package", "my-pkg", "testdata/dots.yaml"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := runApp(t, args...)
			assert.Error(t, err)
		})
	}
	_, err := readConfig(filepath.Join(t.TempDir(), "classgen.yaml"), true)
	assert.Error(t, err, "an explicit config file must exist")
	cfg, err := readConfig(filepath.Join(t.TempDir(), "classgen.yaml"), false)
	require.NoError(t, err)
	assert.Empty(t, cfg.Schema)
}

func TestWatchDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classes: []\n"), 0o644))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	runs := make(chan struct{}, 10)
	done := make(chan error, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	go func() {
		done <- watch(ctx, w, map[string]bool{path: true}, 50*time.Millisecond, logger, func() { runs <- struct{}{} })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), nil, 0o644))
	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte("classes: []\n"), 0o644))
	}
	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("no rerun after the schema changed")
	}
	cancel()
	require.NoError(t, <-done)
	assert.LessOrEqual(t, len(runs), 1, "a burst of writes reruns once or twice")
}
