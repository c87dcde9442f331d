package power

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/schedule"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/types"
)

// Icons shown on the black screen
const (
	IconStandby = "⏸"
	IconReboot  = "🔄"
)

// Shell is the part of the lifecycle core the power screens drive
type Shell interface {
	HideAll() bool
	Reset() bool
}

// Config holds phase durations
type Config struct {
	Splash       time.Duration
	StandbyBlack time.Duration
	RebootBlack  time.Duration
}

// DefaultConfig returns the stock durations
func DefaultConfig() Config {
	return Config{
		Splash:       2500 * time.Millisecond,
		StandbyBlack: 1500 * time.Millisecond,
		RebootBlack:  3000 * time.Millisecond,
	}
}

// Status is the current power screen
type Status struct {
	Phase types.PowerPhase `json:"phase"`
	Icon  string           `json:"icon,omitempty"`
}

// Sequencer drives power phase transitions
type Sequencer struct {
	mu        sync.Mutex
	status    Status
	pending   schedule.Handle
	gen       uint64
	cfg       Config
	shell     Shell
	scheduler schedule.Scheduler
	logger    *zap.Logger
	metrics   *monitoring.Metrics
	listeners []func(Status)
}

// NewSequencer creates a sequencer showing the desktop
func NewSequencer(shell Shell, cfg Config) *Sequencer {
	return &Sequencer{
		status:    Status{Phase: types.PhaseDesktop},
		cfg:       cfg,
		shell:     shell,
		scheduler: schedule.Real(),
		logger:    zap.NewNop(),
	}
}

// WithScheduler replaces the timer source
func (s *Sequencer) WithScheduler(sch schedule.Scheduler) *Sequencer {
	s.scheduler = sch
	return s
}

// WithLogger sets the logger
func (s *Sequencer) WithLogger(l *zap.Logger) *Sequencer {
	if l != nil {
		s.logger = l
	}
	return s
}

// WithMetrics adds metrics tracking
func (s *Sequencer) WithMetrics(m *monitoring.Metrics) *Sequencer {
	s.metrics = m
	return s
}

// OnChange registers fn to be called after every phase change
func (s *Sequencer) OnChange(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Status returns the current phase
func (s *Sequencer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Phase returns the current phase
func (s *Sequencer) Phase() types.PowerPhase {
	return s.Status().Phase
}

// Boot shows the splash screen, then the desktop
func (s *Sequencer) Boot() {
	s.transition(nil, s.splashLocked)
}

// Standby hides every window, shows a black screen, then the standby
// overlay. It is ignored unless the desktop is showing.
func (s *Sequencer) Standby() bool {
	return s.transition([]types.PowerPhase{types.PhaseDesktop}, func() {
		if s.shell != nil {
			s.shell.HideAll()
		}
		s.enterLocked(types.PhaseBlack, IconStandby)
		s.afterLocked(s.cfg.StandbyBlack, func() {
			s.enterLocked(types.PhaseStandby, "")
		})
	})
}

// Wake leaves standby through a black screen and the splash
func (s *Sequencer) Wake() bool {
	return s.transition([]types.PowerPhase{types.PhaseStandby}, func() {
		s.enterLocked(types.PhaseBlack, IconStandby)
		s.afterLocked(s.cfg.StandbyBlack, s.splashLocked)
	})
}

// Reboot closes every app and replays the boot sequence. The wallpaper
// is kept.
func (s *Sequencer) Reboot() {
	s.transition(nil, func() {
		if s.shell != nil {
			s.shell.Reset()
		}
		s.enterLocked(types.PhaseBlack, IconReboot)
		s.afterLocked(s.cfg.RebootBlack, s.splashLocked)
	})
}

// Stop cancels any pending phase change
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// transition cancels pending work and runs fn under the lock. When from
// is non-empty the current phase must be one of them, checked under the
// same lock.
func (s *Sequencer) transition(from []types.PowerPhase, fn func()) bool {
	s.mu.Lock()
	if len(from) > 0 && !slices.Contains(from, s.status.Phase) {
		s.mu.Unlock()
		return false
	}
	s.cancelLocked()
	fn()
	status, listeners := s.status, slices.Clone(s.listeners)
	s.mu.Unlock()

	s.notify(status, listeners)
	return true
}

func (s *Sequencer) cancelLocked() {
	s.gen++
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
}

func (s *Sequencer) splashLocked() {
	s.enterLocked(types.PhaseSplash, "")
	s.afterLocked(s.cfg.Splash, func() {
		s.enterLocked(types.PhaseDesktop, "")
	})
}

func (s *Sequencer) enterLocked(phase types.PowerPhase, icon string) {
	s.status = Status{Phase: phase, Icon: icon}
	s.metrics.RecordPowerPhase(string(phase))
	s.logger.Debug("Power phase", zap.String("phase", string(phase)))
}

// afterLocked schedules fn for the current generation. A callback that
// fires after a newer transition started does nothing.
func (s *Sequencer) afterLocked(d time.Duration, fn func()) {
	gen := s.gen
	s.pending = s.scheduler.After(d, func() {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		s.pending = nil
		fn()
		status, listeners := s.status, slices.Clone(s.listeners)
		s.mu.Unlock()

		s.notify(status, listeners)
	})
}

func (s *Sequencer) notify(status Status, listeners []func(Status)) {
	for _, fn := range listeners {
		fn(status)
	}
}
