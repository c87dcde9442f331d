package terminal

import "sync"

// DefaultTranscriptSize is the number of lines kept before the oldest are dropped
const DefaultTranscriptSize = 500

// Result is the outcome of one command line
type Result struct {
	Command string   `json:"command"`
	Lines   []string `json:"lines"`
	Cleared bool     `json:"cleared"`
}

// Transcript is a thread-safe bounded buffer of output lines
type Transcript struct {
	lines []string
	size  int
	mu    sync.RWMutex
}

// NewTranscript creates a transcript holding at most size lines
func NewTranscript(size int) *Transcript {
	if size <= 0 {
		size = DefaultTranscriptSize
	}
	return &Transcript{size: size}
}

// Append adds lines, dropping the oldest on overflow
func (t *Transcript) Append(lines ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = append(t.lines, lines...)
	if over := len(t.lines) - t.size; over > 0 {
		t.lines = append([]string(nil), t.lines[over:]...)
	}
}

// Clear empties the transcript
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = nil
}

// Lines returns a copy of the transcript
func (t *Transcript) Lines() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}
