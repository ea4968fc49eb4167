package tree

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var errNotDir = errors.New("path is not a directory")

// FSLoader loads tree nodes by reading the filesystem under the given root.
// Only directories that contain markdown somewhere below them are listed.
type FSLoader struct {
	root string

	mu    sync.Mutex
	cache map[string]bool
}

// NewFSLoader creates a loader that reads from the provided root directory.
func NewFSLoader(root string) *FSLoader {
	return &FSLoader{
		root:  root,
		cache: make(map[string]bool),
	}
}

// List returns immediate child entries for the provided relative path.
func (l *FSLoader) List(relPath string) ([]*Node, error) {
	dir := l.Abs(relPath)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errNotDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var nodes []*Node
	for _, entry := range entries {
		name := entry.Name()
		childPath := join(relPath, name)
		switch {
		case entry.IsDir():
			if shouldSkipDir(name) {
				continue
			}
			has, err := l.HasMarkdown(childPath)
			if err != nil {
				return nil, err
			}
			if has {
				nodes = append(nodes, &Node{Name: name, Path: childPath, IsDir: true})
			}
		case IsMarkdown(name):
			nodes = append(nodes, &Node{Name: name, Path: childPath})
		}
	}
	return nodes, nil
}

// HasMarkdown reports whether the path (relative to the loader root) contains
// at least one markdown file within its subtree. Results are cached.
func (l *FSLoader) HasMarkdown(relPath string) (bool, error) {
	l.mu.Lock()
	cached, ok := l.cache[relPath]
	l.mu.Unlock()
	if ok {
		return cached, nil
	}

	has, err := l.scanMarkdown(relPath)
	if err != nil {
		return false, err
	}

	l.mu.Lock()
	l.cache[relPath] = has
	l.mu.Unlock()
	return has, nil
}

func (l *FSLoader) scanMarkdown(relPath string) (bool, error) {
	entries, err := os.ReadDir(l.Abs(relPath))
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			if IsMarkdown(name) {
				return true, nil
			}
			continue
		}
		if shouldSkipDir(name) {
			continue
		}
		has, err := l.HasMarkdown(join(relPath, name))
		if err != nil {
			return false, err
		}
		if has {
			return true, nil
		}
	}
	return false, nil
}

// Abs converts a slash-separated path relative to the root into an absolute
// filesystem path.
func (l *FSLoader) Abs(relPath string) string {
	if relPath == "" {
		return l.root
	}
	return filepath.Join(l.root, filepath.FromSlash(relPath))
}

func join(base, part string) string {
	if base == "" {
		return part
	}
	return base + "/" + part
}

func shouldSkipDir(name string) bool {
	switch strings.ToLower(name) {
	case ".git", "node_modules", ".hg", ".svn", ".idea", ".vscode":
		return true
	default:
		return false
	}
}

// IsMarkdown reports whether name has a markdown extension.
func IsMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx", ".markdown":
		return true
	default:
		return false
	}
}
