// Package schedule provides cancellable delayed tasks.
//
// Long-press detection and the power screen sequences are expressed as
// tasks with a revocable handle instead of ambient timers. Production code
// uses Real; tests drive a Manual scheduler forward explicitly.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Handle revokes a scheduled task
type Handle interface {
	// Cancel stops the task. It reports false if the task already ran or
	// was cancelled before.
	Cancel() bool
}

// Scheduler runs fn once after d elapses
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// Real returns a scheduler backed by time.AfterFunc
func Real() Scheduler {
	return realScheduler{}
}

type realScheduler struct{}

func (realScheduler) After(d time.Duration, fn func()) Handle {
	return realHandle{timer: time.AfterFunc(d, fn)}
}

type realHandle struct {
	timer *time.Timer
}

func (h realHandle) Cancel() bool {
	return h.timer.Stop()
}

// Manual is a scheduler whose clock only moves when Advance is called.
// Due tasks run synchronously on the caller's goroutine, in due order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m        *Manual
	due      time.Duration
	seq      int
	fn       func()
	finished bool
}

// NewManual creates a manual scheduler at time zero
func NewManual() *Manual {
	return &Manual{}
}

// After schedules fn to run once the manual clock has advanced by d
func (m *Manual) After(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTask{m: m, due: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every task that became due.
// Tasks scheduled by running tasks are honoured if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		next.finished = true
		m.now = next.due
		m.removeLocked(next)
		m.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of tasks that have neither run nor been cancelled
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Elapsed returns how far the manual clock has advanced
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) nextDueLocked(limit time.Duration) *manualTask {
	due := make([]*manualTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.due <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].seq < due[j].seq
		}
		return due[i].due < due[j].due
	})
	return due[0]
}

func (m *Manual) removeLocked(target *manualTask) {
	for i, t := range m.tasks {
		if t == target {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

func (t *manualTask) Cancel() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if t.finished {
		return false
	}
	t.finished = true
	t.m.removeLocked(t)
	return true
}
