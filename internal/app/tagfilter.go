package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kyaoi/mdnav/internal/tree"
	"github.com/kyaoi/mdnav/internal/ui"
)

// LoadTagFilteredState prepares a tree made only of the markdown files under
// dir whose front matter carries tag.
func LoadTagFilteredState(dir, tag string) (ui.State, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ui.State{}, err
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return ui.State{}, err
	}
	if !info.IsDir() {
		return ui.State{}, fmt.Errorf("--tag にはディレクトリを指定してください: %s", dir)
	}

	relPaths, err := tree.ScanTags(absDir, tag)
	if err != nil {
		return ui.State{}, err
	}
	if len(relPaths) == 0 {
		return ui.State{}, fmt.Errorf("タグ %q に一致するファイルがありません", tag)
	}

	displayRoot := filepath.Base(absDir)
	return ui.State{
		RawContent:        fmt.Sprintf("タグ \"%s\" を含むファイルを選択してください。", tag),
		HeaderPath:        fmt.Sprintf("%s/ (tag: %s)", displayRoot, tag),
		TreeRoot:          tree.Build(displayRoot, relPaths),
		TreeSelectionPath: relPaths[0],
		RootDir:           absDir,
		DisplayRoot:       displayRoot,
		FocusTree:         true,
	}, nil
}
