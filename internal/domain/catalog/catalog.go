package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"
)

// DefaultIcon is shown for apps without a catalog entry
const DefaultIcon = "📦"

// WindowPrefix prefixes an app ID to form its window ID
const WindowPrefix = "win-"

var (
	// ErrDuplicateApp is returned when two entries share an ID
	ErrDuplicateApp = errors.New("duplicate app id")
	// ErrDuplicateWindow is returned when two entries share a window
	ErrDuplicateWindow = errors.New("duplicate window id")
	// ErrMissingID is returned for entries without an ID
	ErrMissingID = errors.New("app id is required")
)

//go:embed default.yaml
var defaultYAML []byte

// App is one catalog entry
type App struct {
	ID      string `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Icon    string `yaml:"icon" json:"icon"`
	Window  string `yaml:"window" json:"window"`
	Desktop bool   `yaml:"desktop" json:"desktop"`
	Dock    bool   `yaml:"dock" json:"dock"`
	Start   bool   `yaml:"start" json:"start"`
}

type file struct {
	Apps []App `yaml:"apps"`
}

// Catalog is an immutable, ID-indexed set of apps
type Catalog struct {
	apps     []App
	byID     map[string]int
	byWindow map[string]int
}

// Default returns the embedded catalog
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the default when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Missing windows default to "win-<id>".
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		apps:     make([]App, 0, len(f.Apps)),
		byID:     make(map[string]int, len(f.Apps)),
		byWindow: make(map[string]int, len(f.Apps)),
	}

	for _, app := range f.Apps {
		if app.ID == "" {
			return nil, ErrMissingID
		}
		if app.Window == "" {
			app.Window = WindowPrefix + app.ID
		}
		if app.Title == "" {
			app.Title = app.ID
		}
		if app.Icon == "" {
			app.Icon = DefaultIcon
		}
		if _, dup := c.byID[app.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateApp, app.ID)
		}
		if _, dup := c.byWindow[app.Window]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWindow, app.Window)
		}

		c.byID[app.ID] = len(c.apps)
		c.byWindow[app.Window] = len(c.apps)
		c.apps = append(c.apps, app)
	}

	return c, nil
}

// Apps returns every entry in catalog order
func (c *Catalog) Apps() []App {
	out := make([]App, len(c.apps))
	copy(out, c.apps)
	return out
}

// Lookup finds an app by ID
func (c *Catalog) Lookup(appID string) (App, bool) {
	i, ok := c.byID[appID]
	if !ok {
		return App{}, false
	}
	return c.apps[i], true
}

// WindowFor returns the window bound to appID
func (c *Catalog) WindowFor(appID string) (string, bool) {
	app, ok := c.Lookup(appID)
	return app.Window, ok
}

// Title returns the display title, falling back to the ID
func (c *Catalog) Title(appID string) string {
	if app, ok := c.Lookup(appID); ok {
		return app.Title
	}
	return appID
}

// Icon returns the dock icon, falling back to DefaultIcon
func (c *Catalog) Icon(appID string) string {
	if app, ok := c.Lookup(appID); ok {
		return app.Icon
	}
	return DefaultIcon
}

// Surface lists the IDs of apps shown on a launch surface
func (c *Catalog) Surface(name string) []string {
	var ids []string
	for _, app := range c.apps {
		switch {
		case name == "desktop" && app.Desktop,
			name == "dock" && app.Dock,
			name == "start" && app.Start:
			ids = append(ids, app.ID)
		}
	}
	sort.Strings(ids)
	return ids
}
