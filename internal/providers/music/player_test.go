package music

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{9.5, "00:09"},
		{61, "01:01"},
		{209.5, "03:29"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Clock(tt.seconds))
		})
	}
}

func TestTickWhilePaused(t *testing.T) {
	p := NewPlayer(DefaultConfig())

	st, ok := p.Tick()
	assert.False(t, ok)
	assert.Zero(t, st.Progress)
}

func TestToggleAndTick(t *testing.T) {
	p := NewPlayer(DefaultConfig())

	require.True(t, p.Toggle().Playing)
	for i := 0; i < 4; i++ {
		p.Tick()
	}

	st := p.Status()
	assert.Equal(t, 2.0, st.Progress)
	assert.InDelta(t, 2.0/210*100, st.Percent, 1e-9)
	assert.Equal(t, "00:02", st.Clock)

	assert.False(t, p.Toggle().Playing)
	_, ok := p.Tick()
	assert.False(t, ok)
	assert.Equal(t, 2.0, p.Status().Progress)
}

func TestEndOfTrackResets(t *testing.T) {
	p := NewPlayer(Config{Tick: time.Millisecond, Step: 1, Length: 3})
	p.Toggle()

	p.Tick()
	p.Tick()
	st, ok := p.Tick()
	require.True(t, ok)
	assert.False(t, st.Playing)
	assert.Zero(t, st.Progress)
	assert.Equal(t, "00:00", st.Clock)
}

func TestRun(t *testing.T) {
	p := NewPlayer(Config{Tick: time.Millisecond, Step: 1, Length: 1000})
	p.Toggle()

	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int32
	done := make(chan struct{})
	go func() {
		p.Run(ctx, func(Status) { ticks.Add(1) })
		close(done)
	}()

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
