package sidenav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegime(t *testing.T) {
	assert.Equal(t, RegimeDesktop, desktop.Regime())
	assert.Equal(t, RegimeMobileOpen, mobileOpen.Regime())
	assert.Equal(t, RegimeMobileClosed, mobileClosed.Regime())
	assert.Equal(t, RegimeInvalid, State{}.Regime())
	assert.Equal(t, RegimeInvalid, State{MobileOpen: true, MobileClosed: true}.Regime())
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name string
		fn   func(State) State
		in   State
		want State
	}{
		{"toggle desktop", Toggle, desktop, desktop},
		{"toggle closed", Toggle, mobileClosed, mobileOpen},
		{"toggle open", Toggle, mobileOpen, mobileClosed},
		{"open desktop", Open, desktop, desktop},
		{"open closed", Open, mobileClosed, mobileOpen},
		{"open open", Open, mobileOpen, mobileOpen},
		{"close desktop", Close, desktop, desktop},
		{"close open", Close, mobileOpen, mobileClosed},
		{"close closed", Close, mobileClosed, mobileClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestNavVisible(t *testing.T) {
	assert.True(t, desktop.NavVisible())
	assert.True(t, mobileOpen.NavVisible())
	assert.False(t, mobileClosed.NavVisible())
}
