package ui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileWatch follows the directory of the document on screen so edits made
// elsewhere are reloaded.
type fileWatch struct {
	watcher     *fsnotify.Watcher
	dir         string
	file        string
	events      chan tea.Msg
	initialPath string
}

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

func (w *fileWatch) close() error {
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

// startWatching points the watcher at path. Only the call that creates the
// watcher returns a command waiting for events; later calls move the watch
// and rely on the waiter already pending.
func (m *Model) startWatching(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	path = filepath.Clean(path)
	created, err := m.ensureWatcher()
	if err != nil {
		m.err = err
		return nil
	}
	var wait tea.Cmd
	if created {
		wait = m.waitForFileEvent()
	}

	dir := filepath.Dir(path)
	if dir != m.watch.dir {
		if m.watch.dir != "" {
			if err := m.watch.watcher.Remove(m.watch.dir); err != nil {
				m.logger.Debug("unwatch directory", "dir", m.watch.dir, "err", err)
			}
		}
		if err := m.watch.watcher.Add(dir); err != nil {
			m.err = err
			m.watch.dir = ""
			return wait
		}
		m.watch.dir = dir
	}

	m.watch.file = path
	return wait
}

func (m *Model) ensureWatcher() (bool, error) {
	if m.watch.watcher != nil {
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}
	m.watch.watcher = watcher
	m.watch.events = make(chan tea.Msg, 10)

	go watchLoop(watcher, m.watch.events)
	return true, nil
}

func watchLoop(watcher *fsnotify.Watcher, out chan<- tea.Msg) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			out <- fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			out <- fileWatchErrMsg{err: err}
		}
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	events := m.watch.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		return <-events
	}
}

func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	if m.watch.file != "" && filepath.Clean(msg.path) == m.watch.file {
		m.reloadActiveFile()
	}
	return m.waitForFileEvent()
}

func (m *Model) reloadActiveFile() {
	if m.activeAbsPath == "" {
		return
	}
	data, err := os.ReadFile(m.activeAbsPath)
	if err != nil {
		m.err = err
		return
	}

	offset := m.contentVP.YOffset
	m.rawContent = string(data)
	m.renderMarkdown()
	if m.err == nil {
		m.contentVP.SetYOffset(offset)
	}
}
