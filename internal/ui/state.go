package ui

import (
	"log/slog"

	"github.com/kyaoi/mdnav/internal/sidenav"
	"github.com/kyaoi/mdnav/internal/tree"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	RawContent         string
	HeaderPath         string
	TreePreferredWidth int
	TreeRoot           *tree.Node
	TreeSelectionPath  string
	RootDir            string
	DisplayRoot        string
	ActiveAbsPath      string
	FocusTree          bool
	// Style is a glamour standard style name.
	Style string

	// Nav decides whether the tree panel is shown. It is owned by the caller;
	// the model only subscribes to it.
	Nav    *sidenav.Store
	Logger *slog.Logger
}
