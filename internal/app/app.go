package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/mdnav/internal/config"
	"github.com/kyaoi/mdnav/internal/logging"
	"github.com/kyaoi/mdnav/internal/sidenav"
	"github.com/kyaoi/mdnav/internal/ui"
	"github.com/kyaoi/mdnav/internal/viewport"
)

// Options are the command line inputs of a run.
type Options struct {
	Target     string
	Tag        string
	ConfigPath string
	// Width overrides the viewport width in pixels when positive.
	Width int
}

// Run executes the Bubble Tea program for the markdown browser.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	if !cfg.KnownStyle() {
		logger.Warn("unknown style, using default", "style", cfg.Style)
		cfg.Style = config.Default().Style
	}

	state, err := loadState(opts)
	if err != nil {
		return err
	}

	width := ResolveWidth(opts.Width, cfg, viewport.Width)
	nav := sidenav.NewStore(width)
	logger.Info("starting", "target", opts.Target, "viewport_width", width, "regime", nav.Get().Regime())

	unsubscribe := nav.Subscribe(logTransitions(logger))
	defer unsubscribe()

	state.Nav = nav
	state.Logger = logger
	state.Style = cfg.Style
	state.TreePreferredWidth = cfg.TreeWidth

	return runProgram(ctx, state, logger)
}

func loadState(opts Options) (ui.State, error) {
	if opts.Tag != "" {
		return LoadTagFilteredState(opts.Target, opts.Tag)
	}
	return LoadInitialState(opts.Target)
}

// ResolveWidth picks the viewport width: the command line override, then the
// configured width, then detection.
func ResolveWidth(override int, cfg *config.Config, detect func(cellPixelWidth int) int) int {
	switch {
	case override > 0:
		return override
	case cfg.ViewportWidth > 0:
		return cfg.ViewportWidth
	default:
		return detect(cfg.CellPixelWidth)
	}
}

func logTransitions(logger *slog.Logger) func(sidenav.State) {
	first := true
	var last sidenav.State
	return func(s sidenav.State) {
		if !first && s != last {
			logger.Info("nav state changed", "from", last.Regime(), "to", s.Regime())
		}
		if !s.Valid() {
			logger.Warn("nav state violates regime invariant", "state", fmt.Sprintf("%+v", s))
		}
		first = false
		last = s
	}
}

func runProgram(ctx context.Context, state ui.State, logger *slog.Logger) error {
	model := ui.NewModel(state)
	defer closeLogged(logger, "model", model)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// closeLogged closes c and logs a failure at warn level.
func closeLogged(logger *slog.Logger, what string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn("close failed", "resource", what, "err", err)
	}
}
