package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var searchBarStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(lipgloss.Color("#a9b1d6")).
	Background(lipgloss.Color("#1f2335"))

type searchState struct {
	input   textinput.Model
	active  bool
	query   string
	matches []int // line numbers in the rendered document
	index   int
}

func newSearchState() searchState {
	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 256
	input.Placeholder = "検索語"
	input.CursorEnd()
	input.Blur()
	return searchState{input: input, index: -1}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		query := strings.TrimSpace(m.search.input.Value())
		m.exitSearchMode()
		if query == "" {
			m.clearSearch()
			return nil
		}
		m.performSearch(query, true)
		return nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.exitSearchMode()
		return nil
	}
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return cmd
}

func (m *Model) searchBar() string {
	if m.search.active {
		return searchBarStyle.Render(m.search.input.View())
	}
	if status := m.searchStatusLine(); status != "" {
		return searchBarStyle.Render(status)
	}
	return ""
}

func (m *Model) enterSearchMode() tea.Cmd {
	m.search.active = true
	m.pendingKey = ""
	m.search.input.SetValue(m.search.query)
	m.search.input.CursorEnd()
	return m.search.input.Focus()
}

func (m *Model) exitSearchMode() {
	m.search.active = false
	m.search.input.Blur()
}

func (m *Model) clearSearch() {
	m.search.query = ""
	m.search.matches = nil
	m.search.index = -1
	m.err = nil
}

func (m *Model) searchStatusLine() string {
	if m.search.query == "" {
		return ""
	}
	total := len(m.search.matches)
	if total == 0 || m.search.index < 0 {
		return fmt.Sprintf("/%s (0/0)", m.search.query)
	}
	return fmt.Sprintf("/%s (%d/%d)", m.search.query, m.search.index+1, total)
}

func (m *Model) performSearch(query string, resetIndex bool) {
	m.search.query = strings.TrimSpace(query)
	m.search.matches = findSearchMatches(m.renderedContent, m.search.query)
	if len(m.search.matches) == 0 {
		m.search.index = -1
		m.err = fmt.Errorf("%q に一致しません。", m.search.query)
		return
	}
	if resetIndex || m.search.index < 0 || m.search.index >= len(m.search.matches) {
		m.search.index = 0
	}
	m.err = nil
	m.gotoSearchMatch()
}

func (m *Model) nextSearchMatch() {
	if len(m.search.matches) == 0 {
		return
	}
	m.search.index = (m.search.index + 1) % len(m.search.matches)
	m.err = nil
	m.gotoSearchMatch()
}

func (m *Model) previousSearchMatch() {
	total := len(m.search.matches)
	if total == 0 {
		return
	}
	if m.search.index <= 0 {
		m.search.index = total - 1
	} else {
		m.search.index--
	}
	m.err = nil
	m.gotoSearchMatch()
}

func (m *Model) gotoSearchMatch() {
	if len(m.search.matches) == 0 || m.search.index < 0 {
		return
	}
	totalLines := strings.Count(m.renderedContent, "\n") + 1
	maxOffset := max(totalLines-m.contentVP.Height, 0)
	m.contentVP.SetYOffset(clamp(m.search.matches[m.search.index], 0, maxOffset))
}

// onContentChanged re-runs the active search against freshly rendered
// content, keeping the cursor on the match closest to the previous one.
func (m *Model) onContentChanged() {
	if m.search.query == "" {
		return
	}

	prevLine := -1
	if m.search.index >= 0 && m.search.index < len(m.search.matches) {
		prevLine = m.search.matches[m.search.index]
	}

	m.search.matches = findSearchMatches(m.renderedContent, m.search.query)
	if len(m.search.matches) == 0 {
		m.search.index = -1
		m.err = fmt.Errorf("%q に一致しません。", m.search.query)
		return
	}

	if prevLine >= 0 {
		m.search.index = closestMatchIndex(m.search.matches, prevLine)
	} else if m.search.index < 0 || m.search.index >= len(m.search.matches) {
		m.search.index = 0
	}
	m.err = nil
	m.gotoSearchMatch()
}

func findSearchMatches(content, query string) []int {
	query = strings.TrimSpace(query)
	if query == "" || content == "" {
		return nil
	}

	stripped := ansi.Strip(content)
	lowerContent := strings.ToLower(stripped)
	lowerQuery := strings.ToLower(query)

	var matches []int
	offset := 0
	for {
		pos := strings.Index(lowerContent[offset:], lowerQuery)
		if pos == -1 {
			break
		}
		absolute := offset + pos
		matches = append(matches, strings.Count(lowerContent[:absolute], "\n"))
		offset = absolute + len(lowerQuery)
	}
	return matches
}

func closestMatchIndex(matches []int, line int) int {
	best := 0
	for i := 1; i < len(matches); i++ {
		if absInt(matches[i]-line) < absInt(matches[best]-line) {
			best = i
		}
	}
	return best
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
