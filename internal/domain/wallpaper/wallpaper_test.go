package wallpaper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"css", `{"type":"css","value":"#112233"}`, "#112233", false},
		{"css gradient", `{"type":"css","value":"linear-gradient(red, blue)"}`, "linear-gradient(red, blue)", false},
		{"image", `{"type":"image","value":"/img/beach.jpg"}`, "url(/img/beach.jpg) center/cover no-repeat", false},
		{"not json", `sunset`, "", true},
		{"unknown kind", `{"type":"video","value":"x.mp4"}`, "", true},
		{"empty value", `{"type":"css","value":""}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Decode(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.Background)
			assert.False(t, w.Default)
		})
	}
}

func TestLoadMalformedFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := MapStore{DefaultKey: "not-json-at-all"}

	w := Load(store, DefaultKey, zap.New(core))

	assert.Equal(t, Fallback(), w)
	require.Equal(t, 1, logs.FilterMessage("wallpaper data invalid").Len())
}

func TestLoadMissingKeyIsSilent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	w := Load(MapStore{}, DefaultKey, zap.New(core))

	assert.True(t, w.Default)
	assert.Equal(t, DefaultBackground, w.Background)
	assert.Zero(t, logs.Len())
}

func TestLoadValid(t *testing.T) {
	store := MapStore{DefaultKey: `{"type":"image","value":"/wall.png"}`}

	w := Load(store, DefaultKey, nil)
	assert.Equal(t, KindImage, w.Kind)
	assert.Equal(t, "/wall.png", w.Value)
	assert.False(t, w.Default)
}

func TestLoadNilStore(t *testing.T) {
	assert.Equal(t, Fallback(), Load(nil, DefaultKey, nil))
}

func TestTOMLStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.toml")
	content := "namixos_wallpaper = '{\"type\":\"css\",\"value\":\"#000\"}'\ncount = 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewTOMLStore(path)

	v, ok, err := store.Get(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"type":"css","value":"#000"}`, v)

	_, ok, err = store.Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = store.Get("count")
	assert.Error(t, err, "non-string values are rejected")

	w := Load(store, DefaultKey, nil)
	assert.Equal(t, "#000", w.Background)
}

func TestTOMLStoreMissingFile(t *testing.T) {
	store := NewTOMLStore(filepath.Join(t.TempDir(), "nope.toml"))

	_, ok, err := store.Get(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTOMLStoreBrokenFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0o644))
	core, logs := observer.New(zapcore.WarnLevel)

	w := Load(NewTOMLStore(path), DefaultKey, zap.New(core))
	assert.True(t, w.Default)
	assert.Equal(t, 1, logs.FilterMessage("wallpaper store unavailable").Len())
}
