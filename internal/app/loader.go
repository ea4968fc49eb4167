package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kyaoi/mdnav/internal/tree"
	"github.com/kyaoi/mdnav/internal/ui"
)

// LoadInitialState analyses the target path and prepares the UI state. The
// navigation store, logger and style are filled in by the caller.
func LoadInitialState(target string) (ui.State, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return ui.State{}, err
	}
	info, err := os.Stat(absTarget)
	if err != nil {
		return ui.State{}, err
	}

	if info.IsDir() {
		return loadDirectory(absTarget)
	}

	data, err := os.ReadFile(absTarget)
	if err != nil {
		return ui.State{}, err
	}

	displayPath := absTarget
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, absTarget); err == nil {
			displayPath = rel
		}
	}

	return ui.State{
		RawContent:    string(data),
		HeaderPath:    filepath.ToSlash(displayPath),
		ActiveAbsPath: absTarget,
	}, nil
}

func loadDirectory(absTarget string) (ui.State, error) {
	rootName := filepath.Base(absTarget)
	loader := tree.NewFSLoader(absTarget)

	state := ui.State{
		HeaderPath:  rootName + "/",
		TreeRoot:    tree.NewRoot(rootName, loader),
		RootDir:     absTarget,
		DisplayRoot: rootName,
		FocusTree:   true,
	}

	hasMarkdown, err := loader.HasMarkdown("")
	if err != nil {
		return ui.State{}, err
	}
	if !hasMarkdown {
		state.RawContent = fmt.Sprintf("%s にMarkdownファイルが見つかりません。", rootName)
	}
	return state, nil
}
