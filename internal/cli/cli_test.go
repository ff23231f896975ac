package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/fileview/internal/config"
	"github.com/studiowebux/fileview/internal/filecache"
	"github.com/studiowebux/fileview/internal/types"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

func newTestEnv(t *testing.T) (*Env, *bytes.Buffer) {
	t.Helper()
	logger := zaptest.NewLogger(t)

	cache, err := filecache.NewManager(filepath.Join(t.TempDir(), "cache.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	out := &bytes.Buffer{}
	return &Env{
		Settings: config.DefaultSettings(),
		Logger:   logger,
		Cache:    cache,
		Out:      out,
	}, out
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestAdd_IngestsAllFiles(t *testing.T) {
	env, out := newTestEnv(t)
	dir := t.TempDir()

	err := Add(context.Background(), env, []string{
		writeFile(t, dir, "a.go", "package a"),
		writeFile(t, dir, "b.md", "# b"),
		writeFile(t, dir, "c.txt", "c"),
	})
	require.NoError(t, err)

	count, err := env.Cache.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Contains(t, out.String(), "added   a.go (9 bytes)")

	rec, err := env.Cache.FirstByName("b.md")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "# b", rec.Contents)
}

func TestAdd_ReportsFailedReads(t *testing.T) {
	env, out := newTestEnv(t)
	dir := t.TempDir()

	err := Add(context.Background(), env, []string{
		writeFile(t, dir, "ok.txt", "fine"),
		filepath.Join(dir, "missing.txt"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out.String(), "failed  missing.txt")

	count, err := env.Cache.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count, "only the readable file is cached")
}

func TestAdd_NoPaths(t *testing.T) {
	env, _ := newTestEnv(t)
	assert.Error(t, Add(context.Background(), env, nil))
}

func TestRecent_FormatsOutput(t *testing.T) {
	env, out := newTestEnv(t)
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"old.txt", "new.txt"} {
		_, err := env.Cache.Add(types.FileRecord{
			Name:         name,
			Contents:     "data",
			Type:         "text/plain",
			LastModified: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	t.Run("json", func(t *testing.T) {
		out.Reset()
		require.NoError(t, Recent(env, RecentOptions{Limit: 10, OutputFormat: "json"}))

		var got []recordSummary
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "new.txt", got[0].Name)
		assert.Equal(t, 4, got[0].Size)
	})

	t.Run("yaml", func(t *testing.T) {
		out.Reset()
		require.NoError(t, Recent(env, RecentOptions{Limit: 1, OutputFormat: "yaml"}))

		var got []recordSummary
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "new.txt", got[0].Name)
	})

	t.Run("text", func(t *testing.T) {
		out.Reset()
		require.NoError(t, Recent(env, RecentOptions{OutputFormat: "text"}))
		assert.Contains(t, out.String(), "NAME")
		assert.Contains(t, out.String(), "old.txt")
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, Recent(env, RecentOptions{OutputFormat: "xml"}))
	})
}

func TestRecent_Empty(t *testing.T) {
	env, out := newTestEnv(t)
	require.NoError(t, Recent(env, RecentOptions{}))
	assert.Equal(t, "No cached files\n", out.String())
}

func TestShow(t *testing.T) {
	env, out := newTestEnv(t)
	_, err := env.Cache.Add(types.FileRecord{Name: "main.go", Contents: "package main\n", Type: "text/x-go"})
	require.NoError(t, err)

	require.NoError(t, Show(env, ShowOptions{Name: "main.go", Plain: true}))
	assert.Equal(t, "package main\n", out.String())

	out.Reset()
	require.NoError(t, Show(env, ShowOptions{Name: "main.go"}))
	assert.Contains(t, out.String(), "main")

	err = Show(env, ShowOptions{Name: "ghost.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not cached")
}

func TestPrune(t *testing.T) {
	env, out := newTestEnv(t)
	for _, name := range []string{"a", "b", "c"} {
		_, err := env.Cache.Add(types.FileRecord{Name: name, Contents: name})
		require.NoError(t, err)
	}

	require.NoError(t, Prune(env, filecache.RetentionPolicy{MaxRecords: 1}))
	assert.Equal(t, "Pruned 2 records, 1 remaining\n", out.String())

	assert.Error(t, Prune(env, filecache.RetentionPolicy{}), "a policy without limits is rejected")
}

func TestClear(t *testing.T) {
	env, out := newTestEnv(t)
	_, err := env.Cache.Add(types.FileRecord{Name: "a", Contents: "a"})
	require.NoError(t, err)

	require.NoError(t, Clear(env))
	assert.Equal(t, "Removed 1 records\n", out.String())

	count, err := env.Cache.GetCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}
