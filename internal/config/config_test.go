package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"full hd", Config{Width: 1920, Height: 1080, FPS: 30, Workers: 4}, false},
		{"odd width", Config{Width: 1921, Height: 1080}, true},
		{"negative fps", Config{FPS: -1}, true},
		{"negative volume", Config{AudioVolume: -0.5}, true},
		{"empty range", Config{StartFrame: 10, EndFrame: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalid))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFrameRange(t *testing.T) {
	cfg := &Config{}
	start, end, err := cfg.FrameRange(900)
	require.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Equal(t, 900, end)

	cfg = &Config{StartFrame: 100, EndFrame: 200}
	start, end, err = cfg.FrameRange(900)
	require.NoError(t, err)
	assert.Equal(t, 100, start)
	assert.Equal(t, 200, end)

	cfg = &Config{EndFrame: 1000}
	_, _, err = cfg.FrameRange(900)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestErrorNamesSubject(t *testing.T) {
	err := Invalid("curve logoOpacity", "need at least %d points", 2)
	assert.Equal(t, "curve logoOpacity: need at least 2 points", err.Error())
}
