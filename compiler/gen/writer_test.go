package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkFlush(t *testing.T) {
	cfg := MustNewConfig(testOptions(t)...)
	out := &Artifacts{Files: []*Artifact{
		{Path: "a.go", Data: []byte("package shapes\n")},
		{Path: filepath.Join("nested", "b.pyi"), Data: []byte("b\n")},
		{Path: "c.go", Data: []byte("stub\n"), Mode: CreateOnly},
	}}
	sink := NewSink(cfg)

	stats, err := sink.Flush(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, &FlushStats{Written: 3}, stats)
	b, err := os.ReadFile(filepath.Join(cfg.Target, "nested", "b.pyi"))
	require.NoError(t, err)
	assert.Equal(t, "b\n", string(b))

	t.Run("unchanged files and kept stubs", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.Target, "c.go"), []byte("edited\n"), 0o644))
		stats, err := sink.Flush(context.Background(), out)
		require.NoError(t, err)
		assert.Equal(t, &FlushStats{Unchanged: 2, Skipped: 1}, stats)
		b, err := os.ReadFile(filepath.Join(cfg.Target, "c.go"))
		require.NoError(t, err)
		assert.Equal(t, "edited\n", string(b), "create-only files are never replaced")
	})
	t.Run("changed file is replaced", func(t *testing.T) {
		out.Files[0].Data = []byte("package shapes // v2\n")
		stats, err := sink.Flush(context.Background(), out)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Written)
		entries, err := os.ReadDir(cfg.Target)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotRegexp(t, `^\.`, e.Name(), "temporary files are renamed or removed")
		}
	})
}

func TestSinkFlushErrors(t *testing.T) {
	_, err := NewSink(&Config{}).Flush(context.Background(), &Artifacts{})
	assert.True(t, IsConfigError(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := MustNewConfig(testOptions(t)...)
	stats, err := NewSink(cfg).Flush(ctx, &Artifacts{Files: []*Artifact{{Path: "a.go"}}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Written)

	// A directory where a file should go.
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Target, "dir.go"), 0o755))
	_, err = NewSink(cfg).Flush(context.Background(), &Artifacts{Files: []*Artifact{{Path: "dir.go", Data: []byte("x")}}})
	assert.Error(t, err)
}

func TestSinkCleansDisabledFeatures(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{StubsDir, DocsDir} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, sub, "old"), nil, 0o644))
	}
	cfg := MustNewConfig(append(testOptions(t), WithTarget(dir), WithoutFeatures(FeatureDocs))...)
	_, err := NewSink(cfg).Flush(context.Background(), &Artifacts{})
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(dir, DocsDir))
	assert.FileExists(t, filepath.Join(dir, StubsDir, "old"))
}
