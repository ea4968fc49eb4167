package app

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/mdnav/internal/config"
	"github.com/kyaoi/mdnav/internal/sidenav"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveWidth(t *testing.T) {
	detect := func(cell int) int { return 100 * cell }
	cfg := config.Default()

	assert.Equal(t, 1280, ResolveWidth(1280, cfg, detect))
	assert.Equal(t, 800, ResolveWidth(0, cfg, detect))

	cfg.ViewportWidth = 500
	assert.Equal(t, 500, ResolveWidth(0, cfg, detect))
	assert.Equal(t, 700, ResolveWidth(700, cfg, detect))

	cfg.ViewportWidth = 0
	assert.Equal(t, 0, ResolveWidth(0, cfg, func(int) int { return 0 }))
}

func TestLoadInitialStateDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "guide/intro.md", "# Intro")

	state, err := LoadInitialState(dir)
	require.NoError(t, err)
	require.NotNil(t, state.TreeRoot)
	assert.Equal(t, dir, state.RootDir)
	assert.Equal(t, filepath.Base(dir), state.DisplayRoot)
	assert.True(t, state.FocusTree)
	assert.Empty(t, state.RawContent)
}

func TestLoadInitialStateDirectoryWithoutMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "plain")

	state, err := LoadInitialState(dir)
	require.NoError(t, err)
	assert.Contains(t, state.RawContent, "Markdownファイルが見つかりません")
}

func TestLoadInitialStateFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# Readme")

	state, err := LoadInitialState(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Nil(t, state.TreeRoot)
	assert.Equal(t, "# Readme", state.RawContent)
	assert.Equal(t, filepath.Join(dir, "README.md"), state.ActiveAbsPath)
}

func TestLoadInitialStateMissing(t *testing.T) {
	_, err := LoadInitialState(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadTagFilteredState(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntags: [nav]\n---\n# A")
	writeFile(t, dir, "sub/b.md", "---\ntags: [nav, go]\n---\n# B")
	writeFile(t, dir, "c.md", "---\ntags: [other]\n---\n# C")

	state, err := LoadTagFilteredState(dir, "nav")
	require.NoError(t, err)
	require.NotNil(t, state.TreeRoot)
	assert.Equal(t, "a.md", state.TreeSelectionPath)
	assert.Contains(t, state.HeaderPath, "(tag: nav)")

	names := []string{}
	for _, child := range state.TreeRoot.Children {
		names = append(names, child.Name)
	}
	assert.Equal(t, []string{"sub", "a.md"}, names)

	_, err = LoadTagFilteredState(dir, "missing")
	assert.Error(t, err)
}

func TestLogTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := sidenav.NewStore(480)

	unsubscribe := store.Subscribe(logTransitions(logger))
	defer unsubscribe()
	assert.Empty(t, buf.String())

	store.Update(sidenav.Toggle)
	assert.Contains(t, buf.String(), "from=mobile-closed to=mobile-open")

	store.Set(sidenav.State{})
	assert.Contains(t, buf.String(), "violates regime invariant")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	closeLogged(logger, "model", closerFunc(func() error { return nil }))
	assert.Empty(t, buf.String())

	closeLogged(logger, "model", closerFunc(func() error { return errors.New("watcher busy") }))
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "close failed")
	assert.Contains(t, out, "resource=model")
	assert.Contains(t, out, `err="watcher busy"`)
}
