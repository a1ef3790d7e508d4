package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/adreel/internal/director"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVariantsCommand(t *testing.T) {
	out := run(t, "variants")
	assert.Contains(t, out, "launch")
	assert.Contains(t, out, "logo → problem → solution → dashboard → cta")
	assert.Contains(t, out, "scenes: cta, dashboard, logo, problem, solution")
}

func TestSheetCommandRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.yaml")
	run(t, "sheet", "--variant", "short", "--output", path)

	sheet, err := director.ReadSheet(path)
	require.NoError(t, err)
	assert.Equal(t, "short", sheet.Name)
	assert.Equal(t, 450, sheet.Duration)
	assert.Len(t, sheet.Windows, 4)
}

func TestDefaultQuality(t *testing.T) {
	assert.Equal(t, 75, defaultQuality("h264_videotoolbox"))
	assert.Equal(t, 28, defaultQuality("h264_nvenc"))
	assert.Equal(t, 23, defaultQuality("libx264"))
}
