package shell

import "github.com/GriffinCanCode/NamixOS/backend/internal/shared/types"

// DefaultZOrderBase is the counter value before the first focus
const DefaultZOrderBase = 500

// ZOrder hands out strictly increasing stacking values and tracks the
// single active window. The counter is never reset during a session.
type ZOrder struct {
	counter int
	active  string
}

// NewZOrder creates a z-order manager starting at base
func NewZOrder(base int) *ZOrder {
	return &ZOrder{counter: base}
}

// Focus raises w above every other window and makes it active
func (z *ZOrder) Focus(w *types.Window) int {
	z.counter++
	w.ZOrder = z.counter
	z.active = w.ID
	return z.counter
}

// Activate marks windowID active without changing stacking
func (z *ZOrder) Activate(windowID string) {
	z.active = windowID
}

// Deactivate clears the active window if it is windowID
func (z *ZOrder) Deactivate(windowID string) bool {
	if z.active != windowID {
		return false
	}
	z.active = ""
	return true
}

// Active returns the active window ID, or "" when none is active
func (z *ZOrder) Active() string {
	return z.active
}

// Top returns the last value handed out
func (z *ZOrder) Top() int {
	return z.counter
}
