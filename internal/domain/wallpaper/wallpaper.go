package wallpaper

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// DefaultKey is the preference key holding the wallpaper
const DefaultKey = "namixos_wallpaper"

// DefaultBackground is the stock desktop background
const DefaultBackground = "linear-gradient(135deg, #0f2027, #203a43, #2c5364)"

// Kind tags the wallpaper value
type Kind string

const (
	KindCSS   Kind = "css"
	KindImage Kind = "image"
)

var (
	// ErrUnknownKind is returned for tags other than css and image
	ErrUnknownKind = errors.New("unknown wallpaper kind")
	// ErrEmptyValue is returned when the value is blank
	ErrEmptyValue = errors.New("empty wallpaper value")
)

// Wallpaper is the resolved desktop background
type Wallpaper struct {
	Kind       Kind   `json:"kind,omitempty"`
	Value      string `json:"value,omitempty"`
	Background string `json:"background"`
	Default    bool   `json:"default"`
}

type payload struct {
	Type  Kind   `json:"type"`
	Value string `json:"value"`
}

// Fallback returns the default wallpaper
func Fallback() Wallpaper {
	return Wallpaper{Background: DefaultBackground, Default: true}
}

// Decode parses a tagged wallpaper value
func Decode(raw string) (Wallpaper, error) {
	var p payload
	if err := sonic.UnmarshalString(raw, &p); err != nil {
		return Wallpaper{}, fmt.Errorf("decode wallpaper: %w", err)
	}
	if p.Value == "" {
		return Wallpaper{}, ErrEmptyValue
	}

	w := Wallpaper{Kind: p.Type, Value: p.Value}
	switch p.Type {
	case KindCSS:
		w.Background = p.Value
	case KindImage:
		w.Background = fmt.Sprintf("url(%s) center/cover no-repeat", p.Value)
	default:
		return Wallpaper{}, fmt.Errorf("%w: %q", ErrUnknownKind, p.Type)
	}
	return w, nil
}

// Load reads key from store and resolves it. Missing or invalid data
// yields Fallback().
func Load(store Store, key string, logger *zap.Logger) Wallpaper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		return Fallback()
	}

	raw, ok, err := store.Get(key)
	if err != nil {
		logger.Warn("wallpaper store unavailable", zap.String("key", key), zap.Error(err))
		return Fallback()
	}
	if !ok {
		return Fallback()
	}

	w, err := Decode(raw)
	if err != nil {
		logger.Warn("wallpaper data invalid", zap.String("key", key), zap.Error(err))
		return Fallback()
	}

	logger.Debug("Wallpaper loaded", zap.String("kind", string(w.Kind)))
	return w
}
