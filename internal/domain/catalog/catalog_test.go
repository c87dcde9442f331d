package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	ids := make([]string, 0)
	for _, app := range c.Apps() {
		ids = append(ids, app.ID)
	}
	assert.Equal(t, []string{"about", "browser", "files", "terminal", "music", "settings", "notes"}, ids)

	tests := []struct {
		app  string
		icon string
	}{
		{"browser", "🌐"},
		{"files", "🗂️"},
		{"terminal", ">"},
		{"settings", "⚙️"},
		{"notes", "📝"},
		{"about", "OS"},
		{"unknown", DefaultIcon},
	}
	for _, tt := range tests {
		t.Run(tt.app, func(t *testing.T) {
			assert.Equal(t, tt.icon, c.Icon(tt.app))
		})
	}
}

func TestWindowBindings(t *testing.T) {
	c := Default()

	win, ok := c.WindowFor("terminal")
	require.True(t, ok)
	assert.Equal(t, "win-terminal", win)

	assert.Equal(t, "Files", c.Title("files"))
	assert.Equal(t, "ghost", c.Title("ghost"))

	_, ok = c.WindowFor("ghost")
	assert.False(t, ok)
}

func TestSurface(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"browser", "files", "notes", "settings", "terminal"}, c.Surface("dock"))
	assert.Contains(t, c.Surface("desktop"), "about")
	assert.Len(t, c.Surface("start"), 7)
	assert.Empty(t, c.Surface("nowhere"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		check   func(t *testing.T, c *Catalog)
	}{
		{
			name: "defaults filled in",
			yaml: "apps:\n  - id: paint\n",
			check: func(t *testing.T, c *Catalog) {
				app, ok := c.Lookup("paint")
				require.True(t, ok)
				assert.Equal(t, "win-paint", app.Window)
				assert.Equal(t, "paint", app.Title)
				assert.Equal(t, DefaultIcon, app.Icon)
			},
		},
		{
			name:    "duplicate id",
			yaml:    "apps:\n  - id: a\n  - id: a\n    window: other\n",
			wantErr: ErrDuplicateApp,
		},
		{
			name:    "duplicate window",
			yaml:    "apps:\n  - id: a\n    window: w\n  - id: b\n    window: w\n",
			wantErr: ErrDuplicateWindow,
		},
		{
			name:    "missing id",
			yaml:    "apps:\n  - title: Nameless\n",
			wantErr: ErrMissingID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("apps: [unterminated"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Apps(), 7)

	path := filepath.Join(t.TempDir(), "apps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apps:\n  - id: solo\n    icon: S\n"), 0o644))

	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "S", c.Icon("solo"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
