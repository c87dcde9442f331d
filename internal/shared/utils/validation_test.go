package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		required bool
		wantErr  bool
	}{
		{"window id", "win-terminal", true, false},
		{"underscore", "my_app", true, false},
		{"empty required", "", true, true},
		{"empty optional", "", false, false},
		{"space", "bad id", true, true},
		{"path traversal", "../etc", true, true},
		{"too long", strings.Repeat("a", MaxIDLength+1), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id, "id", tt.required)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	assert.NoError(t, ValidateString("ls", "command", 0, MaxCommandLength, false))
	assert.Error(t, ValidateString("ls\x00", "command", 0, MaxCommandLength, false))
	assert.Error(t, ValidateString(strings.Repeat("x", MaxURLLength+1), "url", 0, MaxURLLength, false))
	assert.Error(t, ValidateString("", "url", 1, MaxURLLength, true))
}
