package shell

import "github.com/GriffinCanCode/NamixOS/backend/internal/shared/types"

// Taskbar keeps one entry per open window, in the order they were opened
type Taskbar struct {
	entries []types.TaskbarEntry
}

// NewTaskbar creates an empty taskbar
func NewTaskbar() *Taskbar {
	return &Taskbar{}
}

// Add appends entry unless its window already has one
func (t *Taskbar) Add(entry types.TaskbarEntry) bool {
	if t.Has(entry.WindowID) {
		return false
	}
	t.entries = append(t.entries, entry)
	return true
}

// Remove deletes the entry for windowID
func (t *Taskbar) Remove(windowID string) bool {
	for i, e := range t.entries {
		if e.WindowID == windowID {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether windowID has an entry
func (t *Taskbar) Has(windowID string) bool {
	for _, e := range t.entries {
		if e.WindowID == windowID {
			return true
		}
	}
	return false
}

// Entries returns a copy of the entries in display order
func (t *Taskbar) Entries() []types.TaskbarEntry {
	out := make([]types.TaskbarEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Clear removes every entry
func (t *Taskbar) Clear() {
	t.entries = nil
}
