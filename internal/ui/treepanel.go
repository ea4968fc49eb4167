package ui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kyaoi/mdnav/internal/sidenav"
	"github.com/kyaoi/mdnav/internal/tree"
)

var (
	treeBlurBorderColor  = lipgloss.Color("#3b4261")
	treeFocusBorderColor = lipgloss.Color("#7aa2f7")
	treeLineStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	treeSelectedActive   = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1a1b26")).
				Background(lipgloss.Color("#7aa2f7")).
				Bold(true)
	treeSelectedInactive = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c0caf5")).
				Background(lipgloss.Color("#283457"))
)

type treeLine struct {
	entry *tree.Node
	label string
}

// treePanel is the navigation pane: the flattened visible part of a tree, a
// cursor into it and the viewport it is drawn in.
type treePanel struct {
	vp         viewport.Model
	root       *tree.Node
	lines      []treeLine
	cursor     int
	labelWidth int
	focused    bool
}

func newTreePanel(root *tree.Node) treePanel {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = false
	p := treePanel{vp: vp, root: root}
	p.restyle()
	return p
}

// reveal opens every directory on the way to path and puts the cursor on it
// when it is visible.
func (p *treePanel) reveal(path string) error {
	if p.root == nil {
		return nil
	}
	if err := p.root.EnsureLoaded(); err != nil {
		return err
	}
	node := p.root
	if path != "" {
		node.Open = true
		for _, name := range strings.Split(path, "/") {
			if err := node.EnsureLoaded(); err != nil {
				return err
			}
			if node = node.ChildByName(name); node == nil {
				break
			}
			if node.IsDir {
				node.Open = true
			}
		}
	}
	return p.rebuild(path)
}

// collapse closes dir and keeps the cursor on it.
func (p *treePanel) collapse(dir *tree.Node) error {
	dir.Open = false
	return p.rebuild(dir.Path)
}

// rebuild flattens the open part of the tree again, keeping the cursor on
// focusPath when it is still listed.
func (p *treePanel) rebuild(focusPath string) error {
	p.lines = p.lines[:0]
	p.labelWidth = 0
	var firstErr error
	var walk func(*tree.Node, int)
	walk = func(node *tree.Node, depth int) {
		label := formatTreeLabel(node, depth)
		p.labelWidth = max(p.labelWidth, lipgloss.Width(label))
		p.lines = append(p.lines, treeLine{entry: node, label: label})
		if !node.IsDir || !node.Open {
			return
		}
		if err := node.EnsureLoaded(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	walk(p.root, 0)

	for i, line := range p.lines {
		if line.entry.Path == focusPath {
			p.cursor = i
			break
		}
	}
	p.moveTo(p.cursor)
	return firstErr
}

func (p *treePanel) moveTo(idx int) {
	if len(p.lines) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = clamp(idx, 0, len(p.lines)-1)
	p.render()
}

func (p *treePanel) move(delta int) {
	p.moveTo(p.cursor + delta)
}

func (p *treePanel) current() *tree.Node {
	if p.cursor < 0 || p.cursor >= len(p.lines) {
		return nil
	}
	return p.lines[p.cursor].entry
}

func (p *treePanel) setFocus(focused bool) {
	p.focused = focused
	p.restyle()
	p.render()
}

func (p *treePanel) restyle() {
	color := treeBlurBorderColor
	if p.focused {
		color = treeFocusBorderColor
	}
	p.vp.Style = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(color)
}

func (p *treePanel) render() {
	rows := make([]string, len(p.lines))
	for i, line := range p.lines {
		style := treeLineStyle
		if i == p.cursor {
			style = treeSelectedInactive
			if p.focused {
				style = treeSelectedActive
			}
		}
		rows[i] = style.Render(line.label)
	}
	p.vp.SetContent(strings.Join(rows, "\n"))
	p.scrollToCursor()
}

func (p *treePanel) setSize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
	if width > 0 {
		p.scrollToCursor()
	}
}

func (p *treePanel) scrollToCursor() {
	height := p.vp.Height
	if len(p.lines) == 0 || height == 0 {
		return
	}
	switch top := p.vp.YOffset; {
	case p.cursor < top:
		p.vp.SetYOffset(p.cursor)
	case p.cursor >= top+height:
		p.vp.SetYOffset(p.cursor - height + 1)
	}
}

func (m *Model) handleTreeKey(key string) tea.Cmd {
	switch key {
	case "j", "down":
		m.tree.move(1)
	case "k", "up":
		m.tree.move(-1)
	case "ctrl+d":
		m.tree.move(max(1, m.tree.vp.Height/2))
	case "ctrl+u":
		m.tree.move(-max(1, m.tree.vp.Height/2))
	case "ctrl+j":
		m.contentVP.ScrollDown(1)
	case "ctrl+k":
		m.contentVP.ScrollUp(1)
	case "ctrl+f":
		m.contentVP.ScrollDown(max(1, m.contentVP.Height/2))
	case "ctrl+b":
		m.contentVP.ScrollUp(max(1, m.contentVP.Height/2))
	case "l", "right", "enter":
		return m.activateTreeEntry()
	case "h", "left":
		m.collapseOrAscend()
	case "g":
		if m.pendingKey == "g" {
			m.pendingKey = ""
			m.tree.moveTo(0)
		} else {
			m.pendingKey = "g"
		}
	case "G":
		m.tree.moveTo(len(m.tree.lines) - 1)
	}
	return nil
}

// activateTreeEntry opens a file, expands a closed directory or steps into
// an open one.
func (m *Model) activateTreeEntry() tea.Cmd {
	entry := m.tree.current()
	switch {
	case entry == nil:
		return nil
	case !entry.IsDir:
		return m.openFileEntry(entry)
	case !entry.Open:
		m.setErr(m.tree.reveal(entry.Path))
	default:
		if err := entry.EnsureLoaded(); err != nil {
			m.setErr(err)
		} else if len(entry.Children) > 0 {
			m.tree.move(1)
		}
	}
	return nil
}

func (m *Model) collapseOrAscend() {
	entry := m.tree.current()
	switch {
	case entry == nil:
	case entry.IsDir && entry.Open:
		m.setErr(m.tree.collapse(entry))
	case entry.Parent != nil:
		m.setErr(m.tree.reveal(entry.Parent.Path))
	}
}

// openFileEntry shows entry in the content pane. On narrow viewports the
// navigation overlay is dismissed so the document becomes visible.
func (m *Model) openFileEntry(entry *tree.Node) tea.Cmd {
	if m.rootDir == "" {
		return nil
	}
	absPath := filepath.Join(m.rootDir, filepath.FromSlash(entry.Path))
	data, err := os.ReadFile(absPath)
	if err != nil {
		m.err = err
		return nil
	}
	m.logger.Info("open file", "path", entry.Path)

	m.rawContent = string(data)
	m.activeAbsPath = absPath
	m.headerPath = composeDisplayPath(m.displayRoot, entry.Path)
	m.renderMarkdown()
	m.contentVP.GotoTop()

	if m.treeOverlay() {
		m.nav.Update(sidenav.Close)
	}
	if m.err != nil {
		return nil
	}
	return m.startWatching(absPath)
}

// setErr records err for display; nil leaves the current error alone.
func (m *Model) setErr(err error) {
	if err != nil {
		m.err = err
	}
}

func formatTreeLabel(entry *tree.Node, depth int) string {
	if depth == 0 {
		return entry.Name + "/"
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth-1))
	switch {
	case !entry.IsDir:
		b.WriteString("  ")
	case entry.Open:
		b.WriteString("- ")
	default:
		b.WriteString("+ ")
	}
	b.WriteString(entry.Name)
	if entry.IsDir {
		b.WriteByte('/')
	}
	return b.String()
}

func composeDisplayPath(root, rel string) string {
	rel = filepath.ToSlash(rel)
	switch {
	case root == "":
		return rel
	case rel == "":
		return root + "/"
	default:
		return root + "/" + rel
	}
}
