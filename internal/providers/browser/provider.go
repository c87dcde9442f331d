package browser

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultHistorySize bounds the recorded history
const DefaultHistorySize = 50

// Provider implements the disabled browser
type Provider struct {
	sanitizer *bluemonday.Policy

	mu      sync.RWMutex
	history []string
	limit   int
}

// New creates a browser provider
func New() *Provider {
	return &Provider{
		sanitizer: bluemonday.UGCPolicy(),
		limit:     DefaultHistorySize,
	}
}

// History returns the requested URLs, oldest first
func (p *Provider) History() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, len(p.history))
	copy(out, p.history)
	return out
}

func (p *Provider) record(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.history = append(p.history, url)
	if over := len(p.history) - p.limit; over > 0 {
		p.history = append([]string(nil), p.history[over:]...)
	}
}
