package wallpaper

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Store reads preference values by key
type Store interface {
	Get(key string) (string, bool, error)
}

// TOMLStore reads a flat TOML file of string keys:
//
//	namixos_wallpaper = '{"type":"css","value":"#123"}'
type TOMLStore struct {
	path string
}

// NewTOMLStore creates a store backed by the file at path
func NewTOMLStore(path string) *TOMLStore {
	return &TOMLStore{path: path}
}

// Get returns the value for key. A missing file holds no keys.
func (s *TOMLStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read prefs: %w", err)
	}

	var prefs map[string]any
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return "", false, fmt.Errorf("parse prefs: %w", err)
	}

	v, ok := prefs[key]
	if !ok {
		return "", false, nil
	}
	str, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("prefs key %q is %T, want string", key, v)
	}
	return str, true, nil
}

// MapStore is an in-memory Store
type MapStore map[string]string

// Get returns the value for key
func (m MapStore) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}
