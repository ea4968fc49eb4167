package sidenav

// Breakpoint is the viewport width in pixels above which the navigation is
// shown persistently.
const Breakpoint = 600

// State describes how the side navigation is presented.
//
// Exactly one regime is expected to hold: Desktop with both mobile flags
// unset, or !Desktop with exactly one of MobileOpen and MobileClosed set.
// Store does not enforce this; producers of updates must.
type State struct {
	Desktop      bool
	MobileOpen   bool
	MobileClosed bool
}

// Regime names a State for logging and rendering.
type Regime string

const (
	RegimeDesktop      Regime = "desktop"
	RegimeMobileOpen   Regime = "mobile-open"
	RegimeMobileClosed Regime = "mobile-closed"
	RegimeInvalid      Regime = "invalid"
)

// DetermineInitialState derives the starting state from the viewport width.
// Unknown widths (zero or negative) fall into the narrow branch.
func DetermineInitialState(width int) State {
	if width > Breakpoint {
		return State{Desktop: true}
	}
	return State{MobileClosed: true}
}

// Valid reports whether s satisfies the regime invariant.
func (s State) Valid() bool {
	if s.Desktop {
		return !s.MobileOpen && !s.MobileClosed
	}
	return s.MobileOpen != s.MobileClosed
}

// Regime returns the regime s is in.
func (s State) Regime() Regime {
	switch {
	case !s.Valid():
		return RegimeInvalid
	case s.Desktop:
		return RegimeDesktop
	case s.MobileOpen:
		return RegimeMobileOpen
	default:
		return RegimeMobileClosed
	}
}

// NavVisible reports whether the navigation panel should be drawn.
func (s State) NavVisible() bool {
	return s.Desktop || s.MobileOpen
}

// Toggle flips a mobile navigation between open and closed. Desktop is left
// untouched.
func Toggle(s State) State {
	if s.Desktop {
		return s
	}
	if s.MobileOpen {
		return State{MobileClosed: true}
	}
	return State{MobileOpen: true}
}

// Open opens a mobile navigation.
func Open(s State) State {
	if s.Desktop {
		return s
	}
	return State{MobileOpen: true}
}

// Close hides a mobile navigation.
func Close(s State) State {
	if s.Desktop {
		return s
	}
	return State{MobileClosed: true}
}
