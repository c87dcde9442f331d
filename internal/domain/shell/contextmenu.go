package shell

import (
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/schedule"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/types"
)

// ContextMenu is the idle -> shown -> idle state machine. While shown it
// carries exactly one target; every dismissal clears it.
type ContextMenu struct {
	target *types.ContextTarget
	x, y   int

	// pending long press, if any; seq guards against a timer that fired
	// concurrently with its cancellation
	pending    schedule.Handle
	pendingSeq uint64
	seq        uint64
}

// NewContextMenu creates an idle context menu
func NewContextMenu() *ContextMenu {
	return &ContextMenu{}
}

// Show enters the shown state for target at (x, y)
func (c *ContextMenu) Show(target types.ContextTarget, x, y int) {
	t := target
	c.target = &t
	c.x, c.y = x, y
}

// Dismiss returns to idle. It reports whether the menu was shown.
func (c *ContextMenu) Dismiss() bool {
	shown := c.target != nil
	c.target = nil
	c.x, c.y = 0, 0
	return shown
}

// Visible reports whether the menu is shown
func (c *ContextMenu) Visible() bool {
	return c.target != nil
}

// Target returns the current target
func (c *ContextMenu) Target() (types.ContextTarget, bool) {
	if c.target == nil {
		return types.ContextTarget{}, false
	}
	return *c.target, true
}

// View returns the renderable menu state
func (c *ContextMenu) View() types.ContextMenu {
	if c.target == nil {
		return types.ContextMenu{}
	}
	t := *c.target
	return types.ContextMenu{Visible: true, X: c.x, Y: c.y, Target: &t}
}

// arm records a pending long press and returns its sequence number
func (c *ContextMenu) arm(h schedule.Handle) uint64 {
	c.seq++
	c.pending = h
	c.pendingSeq = c.seq
	return c.seq
}

// disarm cancels any pending long press. It reports whether one was pending.
func (c *ContextMenu) disarm() bool {
	if c.pending == nil {
		return false
	}
	c.pending.Cancel()
	c.pending = nil
	c.pendingSeq = 0
	return true
}

// claim consumes the pending long press if seq is still current
func (c *ContextMenu) claim(seq uint64) bool {
	if c.pending == nil || c.pendingSeq != seq {
		return false
	}
	c.pending = nil
	c.pendingSeq = 0
	return true
}

// Pending reports whether a long press is waiting to fire
func (c *ContextMenu) Pending() bool {
	return c.pending != nil
}
