package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLatestAudio(t *testing.T) {
	dir := t.TempDir()
	files := []string{"old.mp3", "new.WAV", "cover.png"}
	for i, f := range files {
		path := filepath.Join(dir, f)
		require.NoError(t, os.WriteFile(path, nil, 0644))
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(path, modTime, modTime))
	}

	latest, err := FindLatestAudio(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new.WAV"), latest)

	_, err = FindLatestAudio(t.TempDir())
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("31.346939\n")
	require.NoError(t, err)
	assert.InDelta(t, 31.35, d, 0.01)

	_, err = parseDuration("N/A")
	assert.Error(t, err)
}

func TestPickEncoder(t *testing.T) {
	assert.Equal(t, "h264_nvenc", pickEncoder(" V....D h264_nvenc  NVIDIA NVENC H.264 encoder"))
	assert.Equal(t, "h264_videotoolbox", pickEncoder("h264_nvenc\nh264_videotoolbox"))
	assert.Equal(t, "libx264", pickEncoder(" V....D libx264  libx264 H.264"))
}

func TestImagePool(t *testing.T) {
	p := NewImagePool()
	size := image.Pt(8, 4)

	img := p.Get(size)
	require.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	assert.Equal(t, 1, p.Allocated())

	other := p.Get(image.Pt(2, 2))
	assert.Equal(t, image.Rect(0, 0, 2, 2), other.Bounds())
	assert.Equal(t, 2, p.Allocated())

	// a returned frame of a new size starts its own pool
	p.Put(image.NewRGBA(image.Rect(0, 0, 3, 3)))
	// sub-images and nil are dropped
	p.Put(image.NewRGBA(image.Rect(1, 1, 3, 3)))
	p.Put(nil)
	p.Put(img)
}

func TestBudgetFor(t *testing.T) {
	frame := uint64(1920 * 1080 * 4)
	assert.Equal(t, 8, budgetFor(8, 16<<30, frame))
	assert.Equal(t, 2, budgetFor(8, 4*frame*2, frame))
	assert.Equal(t, 1, budgetFor(8, frame, frame))
	assert.Equal(t, 4, budgetFor(4, 0, frame))
	assert.Equal(t, 1, budgetFor(0, 0, 0))
}

func TestWorkerBudget(t *testing.T) {
	b := WorkerBudget(3, 1920, 1080)
	assert.Equal(t, 3, b.Workers)

	b = WorkerBudget(0, 64, 64)
	assert.GreaterOrEqual(t, b.Workers, 1)
	assert.GreaterOrEqual(t, b.CPUs, 1)
}
