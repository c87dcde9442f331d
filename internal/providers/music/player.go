package music

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Config holds the player's timing
type Config struct {
	Tick   time.Duration // wall-clock interval between ticks
	Step   float64       // seconds of progress per tick
	Length float64       // track length in seconds
}

// DefaultConfig returns the stock timing: 0.5s per 500ms tick on a 3:30 track
func DefaultConfig() Config {
	return Config{
		Tick:   500 * time.Millisecond,
		Step:   0.5,
		Length: 210,
	}
}

// Status is the rendered player state
type Status struct {
	Playing  bool    `json:"playing"`
	Progress float64 `json:"progress"`
	Percent  float64 `json:"percent"`
	Clock    string  `json:"clock"`
}

// Player is the fake playback state
type Player struct {
	mu       sync.Mutex
	cfg      Config
	playing  bool
	progress float64
}

// NewPlayer creates a stopped player
func NewPlayer(cfg Config) *Player {
	def := DefaultConfig()
	if cfg.Tick <= 0 {
		cfg.Tick = def.Tick
	}
	if cfg.Step <= 0 {
		cfg.Step = def.Step
	}
	if cfg.Length <= 0 {
		cfg.Length = def.Length
	}
	return &Player{cfg: cfg}
}

// Toggle flips play/pause
func (p *Player) Toggle() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = !p.playing
	return p.statusLocked()
}

// Tick advances playback by one step. At the end of the track the
// position resets and playback stops. It reports false when paused.
func (p *Player) Tick() (Status, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return p.statusLocked(), false
	}

	p.progress += p.cfg.Step
	if p.progress >= p.cfg.Length {
		p.progress = 0
		p.playing = false
	}
	return p.statusLocked(), true
}

// Status returns the current state
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

// Run ticks every cfg.Tick until ctx is done, calling onTick after each
// step that advanced playback
func (p *Player) Run(ctx context.Context, onTick func(Status)) {
	ticker := time.NewTicker(p.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if st, ok := p.Tick(); ok && onTick != nil {
				onTick(st)
			}
		}
	}
}

func (p *Player) statusLocked() Status {
	return Status{
		Playing:  p.playing,
		Progress: p.progress,
		Percent:  p.progress / p.cfg.Length * 100,
		Clock:    Clock(p.progress),
	}
}

// Clock formats seconds as mm:ss
func Clock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
