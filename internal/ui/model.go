package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kyaoi/mdnav/internal/sidenav"
)

var (
	errLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Background(lipgloss.Color("#1f2335"))
)

var helpLines = []string{
	"ヘルプ (?:閉じる / Esc)",
	"t                : ナビゲーションの開閉 (狭い画面)",
	"Esc              : ナビゲーションを閉じる (狭い画面)",
	"Ctrl+h / Ctrl+l : ツリー↔本文フォーカス切替",
	"j / k            : 選択/スクロール (フォーカス中のペイン)",
	"Ctrl+d / Ctrl+u : 半ページ移動 (本文フォーカス時)",
	"Ctrl+f / Ctrl+b : 半ページ移動 (ツリーフォーカス時)",
	"gg / G           : 先頭 / 末尾へ移動",
	"h / l            : ツリー開閉・水平スクロール",
	"Enter / l        : ツリーでファイルを開く",
	"/                : 検索モード開始",
	"n / N            : 次 / 前の一致へ移動",
	"q / Ctrl+c       : 終了",
}

// Model implements the Bubble Tea program for the markdown browser. The
// visibility of the tree panel follows a sidenav.Store.
type Model struct {
	contentVP          viewport.Model
	tree               treePanel
	renderer           *glamour.TermRenderer
	style              string
	rawContent         string
	headerPath         string
	treePreferredWidth int
	showHelp           bool
	pendingKey         string
	ready              bool
	width              int
	height             int
	err                error

	nav            *sidenav.Store
	navState       sidenav.State
	unsubscribeNav func()
	logger         *slog.Logger

	rootDir         string
	displayRoot     string
	activeAbsPath   string
	renderedContent string

	search searchState
	watch  fileWatch
}

// NewModel constructs the browser model with the provided initial state.
// A nil state.Nav is replaced by a store for an unknown viewport width.
func NewModel(state State) *Model {
	contentVP := viewport.New(0, 0)
	contentVP.Style = lipgloss.NewStyle().Padding(0, 1)
	contentVP.SetHorizontalStep(2)

	nav := state.Nav
	if nav == nil {
		nav = sidenav.NewStore(0)
	}
	logger := state.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := &Model{
		contentVP:          contentVP,
		tree:               newTreePanel(state.TreeRoot),
		style:              state.Style,
		rawContent:         state.RawContent,
		headerPath:         state.HeaderPath,
		treePreferredWidth: state.TreePreferredWidth,
		rootDir:            state.RootDir,
		displayRoot:        state.DisplayRoot,
		activeAbsPath:      state.ActiveAbsPath,
		nav:                nav,
		navState:           nav.Get(),
		logger:             logger,
		search:             newSearchState(),
	}
	if m.style == "" {
		m.style = defaultStyle
	}
	m.watch.initialPath = state.ActiveAbsPath

	m.setErr(m.tree.reveal(state.TreeSelectionPath))
	if state.FocusTree && m.treeVisible() {
		m.tree.setFocus(true)
	}

	m.unsubscribeNav = nav.Subscribe(m.applyNav)
	return m
}

// Close releases the navigation subscription and the file watcher. It is
// safe to call more than once.
func (m *Model) Close() error {
	if m.unsubscribeNav != nil {
		m.unsubscribeNav()
		m.unsubscribeNav = nil
	}
	return m.watch.close()
}

// NavState returns the navigation state the model currently renders.
func (m *Model) NavState() sidenav.State {
	return m.navState
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.watch.initialPath != "" {
		path := m.watch.initialPath
		m.watch.initialPath = ""
		return m.startWatching(path)
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch {
	case m.treeOverlay():
		body = m.tree.vp.View()
	case m.treeVisible():
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.tree.vp.View(), m.contentVP.View())
	default:
		body = m.contentVP.View()
	}

	if m.err != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, errLineStyle.Render(m.err.Error()), body)
	}

	if m.showHelp {
		helpOverlay := helpBoxStyle.Render(strings.Join(helpLines, "\n"))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpOverlay)
		}
		return helpOverlay
	}

	if line := m.searchBar(); line != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, line)
	}
	return body
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileEventMsg:
		return m, m.handleFileEvent(msg)
	case fileWatchErrMsg:
		m.err = msg.err
		m.logger.Warn("file watcher error", "err", msg.err)
		return m, m.waitForFileEvent()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.search.active {
		return m.handleSearchKey(msg)
	}

	key := msg.String()
	if key != "g" {
		m.pendingKey = ""
	}

	if m.showHelp {
		m.pendingKey = ""
		switch key {
		case "q", "?", "esc":
			m.showHelp = false
		}
		return nil
	}

	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "?":
		m.showHelp = true
		m.pendingKey = ""
		return nil
	case "t":
		if m.tree.root != nil {
			m.nav.Update(sidenav.Toggle)
		}
		return nil
	case "esc":
		if m.treeOverlay() {
			m.nav.Update(sidenav.Close)
		}
		return nil
	case "ctrl+h":
		if m.tree.root == nil {
			return nil
		}
		if !m.treeVisible() {
			m.nav.Update(sidenav.Open)
		}
		m.tree.setFocus(true)
		return nil
	case "ctrl+l":
		if m.treeOverlay() {
			m.nav.Update(sidenav.Close)
		}
		m.tree.setFocus(false)
		return nil
	case "/":
		return m.enterSearchMode()
	case "n":
		if len(m.search.matches) > 0 {
			m.nextSearchMatch()
			return nil
		}
	case "N":
		if len(m.search.matches) > 0 {
			m.previousSearchMatch()
			return nil
		}
	}

	if m.tree.focused && m.treeVisible() {
		return m.handleTreeKey(key)
	}

	if m.handleContentKey(key) {
		return nil
	}

	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return cmd
}

func (m *Model) handleContentKey(key string) bool {
	switch key {
	case "j":
		m.contentVP.ScrollDown(1)
	case "k":
		m.contentVP.ScrollUp(1)
	case "ctrl+d":
		m.contentVP.HalfPageDown()
	case "ctrl+u":
		m.contentVP.HalfPageUp()
	case "h":
		m.contentVP.ScrollLeft(max(2, m.contentVP.Width/6))
	case "l":
		m.contentVP.ScrollRight(max(2, m.contentVP.Width/6))
	case "g":
		if m.pendingKey == "g" {
			m.contentVP.GotoTop()
			m.pendingKey = ""
		} else {
			m.pendingKey = "g"
		}
		return true
	case "G":
		m.contentVP.GotoBottom()
	default:
		return false
	}
	m.pendingKey = ""
	return true
}

// applyNav mirrors a new navigation state into the model. It runs
// synchronously from sidenav.Store notifications.
func (m *Model) applyNav(s sidenav.State) {
	prev := m.navState
	m.navState = s
	if prev != s {
		m.logger.Debug("nav state applied", "from", prev.Regime(), "to", s.Regime())
	}

	switch {
	case !m.treeVisible():
		m.tree.setFocus(false)
	case m.treeOverlay() && !prev.MobileOpen:
		m.tree.setFocus(true)
	}

	if m.ready {
		m.layout()
	}
}

// treeVisible reports whether the tree panel is drawn at all.
func (m *Model) treeVisible() bool {
	return m.tree.root != nil && m.navState.NavVisible()
}

// treeOverlay reports whether the tree panel covers the whole body, which is
// how an opened navigation is shown on narrow viewports.
func (m *Model) treeOverlay() bool {
	return m.tree.root != nil && !m.navState.Desktop && m.navState.MobileOpen
}
