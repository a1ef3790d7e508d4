package director

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/adreel/internal/config"
	"github.com/ivlev/adreel/internal/promo"
)

func TestDirector(t *testing.T) {
	director := NewDirector(30)

	sheet, err := director.GenerateSheet("teaser", []string{"logo", "cta"}, 10, 1920, 1080, false)
	require.NoError(t, err)

	assert.Equal(t, SheetVersion, sheet.Version)
	require.Len(t, sheet.Windows, 2)
	assert.Equal(t, 0, sheet.Windows[0].Start)
	assert.Equal(t, 150, sheet.Windows[0].Duration)
	assert.Equal(t, 150, sheet.Windows[1].Start)
	assert.Equal(t, 300, sheet.Duration)

	// 1 second per scene is below the minimum dwell
	sheet, err = director.GenerateSheet("teaser", []string{"logo", "problem", "cta"}, 3, 1920, 1080, false)
	require.NoError(t, err)
	assert.Equal(t, 60, sheet.Windows[0].Duration)
	assert.Equal(t, 180, sheet.Duration)

	_, err = director.GenerateSheet("empty", nil, 10, 1920, 1080, false)
	assert.Error(t, err)
}

func TestGeneratedSheetBuilds(t *testing.T) {
	sheet, err := NewDirector(30).GenerateSheet("teaser", promo.SceneNames(), 20, 1080, 1920, true)
	require.NoError(t, err)

	v, err := sheet.Variant()
	require.NoError(t, err)
	c, err := promo.Build(v)
	require.NoError(t, err)

	_, err = c.Evaluate(sheet.Duration - 1)
	assert.NoError(t, err)
}

func TestSheetWriteRead(t *testing.T) {
	v, err := promo.Lookup("launch", false)
	require.NoError(t, err)
	sheet := FromVariant(v)

	path := filepath.Join(t.TempDir(), "launch.yaml")
	require.NoError(t, WriteSheet(sheet, path))

	read, err := ReadSheet(path)
	require.NoError(t, err)
	assert.Equal(t, sheet, read)

	back, err := read.Variant()
	require.NoError(t, err)
	assert.Equal(t, v, back)
}

func TestReadSheetRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	doc := `version: "1.0"
name: typo
fps: 30
width: 1920
height: 1080
duration: 90
windows:
  - scene: logo
    start: 0
    durration: 90
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := ReadSheet(path)
	assert.Error(t, err)
}

func TestSheetVersion(t *testing.T) {
	s := &Sheet{Version: "2.0", Name: "future"}
	_, err := s.Variant()
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSheetPath(t *testing.T) {
	path := SheetPath(SheetsDir, "launch")

	assert.Contains(t, path, "sheet_launch_")
	assert.Contains(t, path, filepath.Join("internal", "sheets"))
	assert.Equal(t, ".yaml", filepath.Ext(path))
}

func TestFindLatestSheet(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		filepath.Join(dir, "sheet_launch_2026-02-12_10-00-00.yaml"),
		filepath.Join(dir, "sheet_launch_2026-02-13_01-00-00.yaml"),
		filepath.Join(dir, "sheet_short_2026-02-11_15-30-00.yaml"),
	}
	for i, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("version: \"1.0\"\n"), 0644))
		// Set different modification times
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(f, modTime, modTime))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))

	latest, err := FindLatestSheet(dir)
	require.NoError(t, err)
	assert.Equal(t, files[len(files)-1], latest)

	_, err = FindLatestSheet(t.TempDir())
	assert.Error(t, err)
}
