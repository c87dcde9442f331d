package shell

// DefaultRecentCapacity is the number of slots in the dock's recent section
const DefaultRecentCapacity = 2

// Recent is a fixed-capacity most-recently-used list of app IDs
type Recent struct {
	capacity int
	items    []string
}

// NewRecent creates a recent list holding at most capacity IDs
func NewRecent(capacity int) *Recent {
	if capacity <= 0 {
		capacity = DefaultRecentCapacity
	}
	return &Recent{
		capacity: capacity,
		items:    make([]string, 0, capacity+1),
	}
}

// Touch moves appID to the front, evicting the oldest entry on overflow
func (r *Recent) Touch(appID string) {
	r.Remove(appID)
	r.items = append([]string{appID}, r.items...)
	if len(r.items) > r.capacity {
		r.items = r.items[:r.capacity]
	}
}

// Remove deletes appID if present
func (r *Recent) Remove(appID string) bool {
	for i, id := range r.items {
		if id == appID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether appID is tracked
func (r *Recent) Contains(appID string) bool {
	for _, id := range r.items {
		if id == appID {
			return true
		}
	}
	return false
}

// Clear empties the list
func (r *Recent) Clear() {
	r.items = r.items[:0]
}

// List returns the IDs most-recent-first
func (r *Recent) List() []string {
	out := make([]string, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of tracked IDs
func (r *Recent) Len() int {
	return len(r.items)
}

// Capacity returns the maximum number of tracked IDs
func (r *Recent) Capacity() int {
	return r.capacity
}
