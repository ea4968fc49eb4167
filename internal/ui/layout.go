package ui

import (
	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
)

const (
	minContentWidth   = 20
	minTreePanelWidth = 18
	defaultTreeWidth  = 28
	defaultStyle      = styles.TokyoNightStyle
)

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height
	m.ready = true
	m.layout()
}

// layout sizes both panes for the current navigation state and re-renders
// the document at the resulting wrap width. Terminal resizes only change
// sizes; the navigation regime stays whatever the store says.
func (m *Model) layout() {
	width, height := m.width, m.height
	contentWidth := width
	treeWidth := 0

	switch {
	case m.treeOverlay():
		treeWidth = width
	case m.treeVisible():
		treeWidth = m.treeWidth(width)
		if treeWidth > 0 {
			contentWidth = width - treeWidth - 1
		}
	}
	if contentWidth < minContentWidth {
		contentWidth = minContentWidth
	}

	m.contentVP.Width = contentWidth
	m.contentVP.Height = height
	m.tree.setSize(treeWidth, height)

	wrapWidth := max(contentWidth-m.contentVP.Style.GetHorizontalFrameSize(), 0)
	renderer, err := newRenderer(m.style, wrapWidth)
	if err != nil {
		m.err = err
		return
	}
	m.renderer = renderer
	m.renderMarkdown()
}

// treeWidth returns the width of the docked tree panel, frame included. The
// configured width is a floor; long labels widen the panel up to half the
// screen.
func (m *Model) treeWidth(totalWidth int) int {
	preferred := m.treePreferredWidth
	if preferred <= 0 {
		preferred = defaultTreeWidth
	}
	preferred = max(preferred, m.tree.labelWidth+4)

	frame := m.tree.vp.Style.GetHorizontalFrameSize()
	minPanel := max(minTreePanelWidth-frame, 0)
	maxPanel := max(totalWidth/2-frame, minPanel)
	width := clamp(preferred, minPanel, maxPanel) + frame

	if totalWidth-width < minContentWidth {
		width = max(totalWidth-minContentWidth, 0)
	}
	return min(width, totalWidth)
}

func (m *Model) renderMarkdown() {
	if m.renderer == nil {
		return
	}
	rendered, err := m.renderer.Render(m.rawContent)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.contentVP.SetContent(rendered)
	m.renderedContent = rendered
	m.onContentChanged()
}

func newRenderer(style string, width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 0)),
	)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
