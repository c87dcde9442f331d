package terminal

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/monitoring"
)

// Opener surfaces an application window
type Opener interface {
	OpenWindow(windowID string) bool
}

// Windows resolves the window an app is bound to
type Windows interface {
	WindowFor(appID string) (string, bool)
}

// Folders answers whether a folder exists
type Folders interface {
	Folders() []string
	Has(folder string) bool
}

// Provider interprets terminal commands
type Provider struct {
	opener     Opener
	windows    Windows
	folders    Folders
	transcript *Transcript
	sanitizer  *bluemonday.Policy
	logger     *zap.Logger
	metrics    *monitoring.Metrics

	mu  sync.Mutex
	cwd string
}

// NewProvider creates a terminal bound to the shell and the fake folders
func NewProvider(opener Opener, folders Folders) *Provider {
	return &Provider{
		opener:     opener,
		folders:    folders,
		transcript: NewTranscript(DefaultTranscriptSize),
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     zap.NewNop(),
		cwd:        "home",
	}
}

// WithLogger sets the logger
func (p *Provider) WithLogger(l *zap.Logger) *Provider {
	if l != nil {
		p.logger = l
	}
	return p
}

// WithWindows resolves "open <app>" through an app catalog instead of
// the win-<app> naming convention
func (p *Provider) WithWindows(w Windows) *Provider {
	p.windows = w
	return p
}

// WithMetrics adds metrics tracking
func (p *Provider) WithMetrics(m *monitoring.Metrics) *Provider {
	p.metrics = m
	return p
}

// Exec runs one command line, echoing it into the transcript. The line is
// parsed as typed; user text is sanitized only where it is displayed.
func (p *Provider) Exec(line string) Result {
	cmd := strings.TrimSpace(line)
	parts := strings.Fields(cmd)

	base := ""
	if len(parts) > 0 {
		base = parts[0]
	}
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	res := Result{Command: p.sanitizer.Sanitize(cmd)}
	p.transcript.Append("$ " + res.Command)

	switch base {
	case "help":
		res.Lines = []string{"Commands:", "help", "ls", "cd <folder>", "open <app>", "clear", "about"}
	case "ls":
		res.Lines = []string{p.ls()}
	case "cd":
		res.Lines = []string{p.cd(arg)}
	case "open":
		res.Lines = []string{p.open(arg)}
	case "clear":
		p.transcript.Clear()
		res.Cleared = true
	case "about":
		res.Lines = []string{"NamixOS Terminal", "Powered by SOLEN."}
	default:
		res.Lines = []string{"Unknown command: " + p.sanitizer.Sanitize(base)}
	}

	p.transcript.Append(res.Lines...)
	p.metrics.RecordTerminalCommand(metricLabel(base))
	p.logger.Debug("Terminal command", zap.String("command", metricLabel(base)))
	return res
}

// Transcript returns every line currently on screen
func (p *Provider) Transcript() []string {
	return p.transcript.Lines()
}

// Cwd returns the current folder
func (p *Provider) Cwd() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cwd
}

func (p *Provider) ls() string {
	if p.folders == nil {
		return ""
	}
	return strings.Join(p.folders.Folders(), "  ")
}

func (p *Provider) cd(folder string) string {
	switch {
	case folder == "":
		return "Usage: cd <folder>"
	case p.folders == nil || !p.folders.Has(folder):
		return "Folder not found"
	}

	p.mu.Lock()
	p.cwd = folder
	p.mu.Unlock()
	return "Moved to " + p.sanitizer.Sanitize(folder)
}

func (p *Provider) open(app string) string {
	if app == "" {
		return "Usage: open <app>"
	}
	windowID := "win-" + app
	if p.windows != nil {
		if w, ok := p.windows.WindowFor(app); ok {
			windowID = w
		}
	}
	if p.opener == nil || !p.opener.OpenWindow(windowID) {
		return "App not found"
	}
	return "Opening " + p.sanitizer.Sanitize(app) + "..."
}

func metricLabel(base string) string {
	switch base {
	case "help", "ls", "cd", "open", "clear", "about":
		return base
	}
	return "unknown"
}
