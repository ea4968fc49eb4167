package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/mdnav/internal/sidenav"
	"github.com/kyaoi/mdnav/internal/tree"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+h":
		return tea.KeyMsg{Type: tea.KeyCtrlH}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func newDocsModel(t *testing.T, viewportWidth int) (*Model, *sidenav.Store) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.md"), []byte("# Alpha\n\nfirst document"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "beta.md"), []byte("# Beta\n\nsecond document"), 0o644))

	store := sidenav.NewStore(viewportWidth)
	m := NewModel(State{
		RawContent:  "# Welcome\n\nselect a file",
		TreeRoot:    tree.NewRoot("docs", tree.NewFSLoader(dir)),
		RootDir:     dir,
		DisplayRoot: "docs",
		FocusTree:   true,
		Nav:         store,
	})
	t.Cleanup(func() { _ = m.Close() })

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return m, store
}

func plainView(m *Model) string {
	return ansi.Strip(m.View())
}

func TestDesktopShowsTreeBesideContent(t *testing.T) {
	m, _ := newDocsModel(t, 1024)

	assert.True(t, m.NavState().Desktop)
	assert.True(t, m.treeVisible())
	assert.False(t, m.treeOverlay())
	assert.Greater(t, m.tree.vp.Width, 0)
	assert.Less(t, m.contentVP.Width, 100)

	view := plainView(m)
	assert.Contains(t, view, "alpha.md")
	assert.Contains(t, view, "Welcome")
}

func TestDesktopIgnoresToggle(t *testing.T) {
	m, store := newDocsModel(t, 1024)
	m.Update(keyMsg("t"))
	assert.Equal(t, sidenav.State{Desktop: true}, store.Get())
	assert.True(t, m.treeVisible())
}

func TestNarrowStartsWithContentOnly(t *testing.T) {
	m, _ := newDocsModel(t, 480)

	assert.Equal(t, sidenav.State{MobileClosed: true}, m.NavState())
	assert.False(t, m.treeVisible())
	assert.False(t, m.tree.focused)
	assert.Equal(t, 100, m.contentVP.Width)

	view := plainView(m)
	assert.Contains(t, view, "Welcome")
	assert.NotContains(t, view, "alpha.md")
}

func TestToggleOpensOverlayAndClosesIt(t *testing.T) {
	m, store := newDocsModel(t, 480)

	m.Update(keyMsg("t"))
	assert.Equal(t, sidenav.State{MobileOpen: true}, store.Get())
	assert.Equal(t, store.Get(), m.NavState())
	assert.True(t, m.treeOverlay())
	assert.True(t, m.tree.focused)
	assert.Equal(t, 100, m.tree.vp.Width)

	view := plainView(m)
	assert.Contains(t, view, "alpha.md")
	assert.NotContains(t, view, "Welcome")

	m.Update(keyMsg("esc"))
	assert.Equal(t, sidenav.State{MobileClosed: true}, store.Get())
	assert.False(t, m.treeVisible())
	assert.False(t, m.tree.focused)
}

func TestOpeningFileClosesMobileNav(t *testing.T) {
	m, store := newDocsModel(t, 480)
	m.Update(keyMsg("t"))
	require.True(t, m.treeOverlay())

	// root, alpha.md, beta.md
	m.Update(keyMsg("j"))
	m.Update(keyMsg("enter"))

	assert.Equal(t, sidenav.State{MobileClosed: true}, store.Get())
	assert.Contains(t, plainView(m), "first document")
	assert.Equal(t, "docs/alpha.md", m.headerPath)
}

func TestExternalSetIsMirrored(t *testing.T) {
	m, store := newDocsModel(t, 480)

	store.Set(sidenav.State{MobileOpen: true})
	assert.True(t, m.treeOverlay())

	store.Update(sidenav.Close)
	assert.False(t, m.treeVisible())
}

func TestCloseReleasesSubscription(t *testing.T) {
	m, store := newDocsModel(t, 480)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	store.Set(sidenav.State{MobileOpen: true})
	assert.Equal(t, sidenav.State{MobileClosed: true}, m.NavState())
}

func TestResizeKeepsRegime(t *testing.T) {
	m, store := newDocsModel(t, 480)
	m.Update(tea.WindowSizeMsg{Width: 300, Height: 40})
	assert.Equal(t, sidenav.State{MobileClosed: true}, store.Get())
	assert.Equal(t, 300, m.contentVP.Width)
}

func TestCtrlHOpensNavOnNarrowViewport(t *testing.T) {
	m, store := newDocsModel(t, 480)
	m.Update(keyMsg("ctrl+h"))
	assert.Equal(t, sidenav.State{MobileOpen: true}, store.Get())
	assert.True(t, m.tree.focused)

	m.Update(keyMsg("ctrl+l"))
	assert.Equal(t, sidenav.State{MobileClosed: true}, store.Get())
	assert.False(t, m.tree.focused)
}

func TestSingleFileModeIgnoresNav(t *testing.T) {
	store := sidenav.NewStore(480)
	m := NewModel(State{RawContent: "# Only\n\nbody", Nav: store})
	defer m.Close()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})

	m.Update(keyMsg("t"))
	assert.Equal(t, sidenav.State{MobileClosed: true}, store.Get())
	assert.Contains(t, plainView(m), "Only")
}

func TestNilNavFallsBackToNarrow(t *testing.T) {
	m := NewModel(State{RawContent: "x"})
	defer m.Close()
	assert.Equal(t, sidenav.State{MobileClosed: true}, m.NavState())
}

func TestReopeningFilesKeepsSingleWatchWaiter(t *testing.T) {
	m, _ := newDocsModel(t, 1024)
	alpha := filepath.Join(m.rootDir, "alpha.md")

	// root, alpha.md, beta.md
	var waiters []tea.Cmd
	for _, keys := range [][]string{{"j", "enter"}, {"j", "enter"}, {"k", "enter"}} {
		var cmd tea.Cmd
		for _, key := range keys {
			_, cmd = m.Update(keyMsg(key))
		}
		if cmd != nil {
			waiters = append(waiters, cmd)
		}
	}
	require.Len(t, waiters, 1)
	require.NoError(t, m.err)
	assert.Equal(t, alpha, m.watch.file)

	require.NoError(t, os.WriteFile(alpha, []byte("# Alpha\n\nedited document"), 0o644))
	delivered := make(chan tea.Msg, 1)
	go func() { delivered <- waiters[0]() }()

	var msg tea.Msg
	select {
	case msg = <-delivered:
	case <-time.After(5 * time.Second):
		t.Fatal("no file event delivered")
	}
	event, ok := msg.(fileEventMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, alpha, filepath.Clean(event.path))

	_, next := m.Update(msg)
	assert.NotNil(t, next)
	assert.Contains(t, plainView(m), "edited document")
}

func TestSearchFindsMatches(t *testing.T) {
	m, _ := newDocsModel(t, 1024)
	m.Update(keyMsg("ctrl+l"))

	m.Update(keyMsg("/"))
	require.True(t, m.search.active)
	m.Update(keyMsg("welcome"))
	m.Update(keyMsg("enter"))

	assert.False(t, m.search.active)
	assert.Equal(t, "welcome", m.search.query)
	require.Len(t, m.search.matches, 1)
	assert.Contains(t, plainView(m), "/welcome (1/1)")
}

func TestFindSearchMatches(t *testing.T) {
	content := "one\nTwo two\nthree"
	assert.Equal(t, []int{1, 1}, findSearchMatches(content, "two"))
	assert.Nil(t, findSearchMatches(content, "  "))
	assert.Equal(t, 1, closestMatchIndex([]int{0, 5, 9}, 6))
}
