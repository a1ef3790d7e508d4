package promo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/adreel/internal/composition"
	"github.com/ivlev/adreel/internal/config"
	"github.com/ivlev/adreel/internal/scene"
	"github.com/ivlev/adreel/internal/timeline"
)

func build(t *testing.T, name string, vertical bool) *composition.Composition {
	t.Helper()
	v, err := Lookup(name, vertical)
	require.NoError(t, err)
	c, err := Build(v)
	require.NoError(t, err)
	return c
}

func node(t *testing.T, c *composition.Composition, frame int, id string) *scene.Node {
	t.Helper()
	out, err := c.Evaluate(frame)
	require.NoError(t, err)
	n := scene.Find(out.Root, id)
	require.NotNil(t, n, "frame %d has no node %q", frame, id)
	return n
}

func TestVariantsBuild(t *testing.T) {
	for _, name := range Names() {
		for _, vertical := range []bool{false, true} {
			c := build(t, name, vertical)
			s := c.Settings()
			assert.Equal(t, 30, s.FPS)
			if vertical {
				assert.Equal(t, 1080, s.Width)
				assert.Equal(t, 1920, s.Height)
			} else {
				assert.Equal(t, 1920, s.Width)
				assert.Equal(t, 1080, s.Height)
			}
			assert.Equal(t, s.DurationInFrames, c.Timeline().End(), name)
		}
	}
	assert.Equal(t, []string{"full", "launch", "short"}, Names())
}

func TestLaunchTiming(t *testing.T) {
	c := build(t, "launch", false)
	assert.Equal(t, 900, c.Settings().DurationInFrames)
	assert.Equal(t, []composition.AudioTrack{{Src: "public/audio/background.mp3", Volume: 0.6}}, c.Audio())
	assert.Empty(t, c.Timeline().Overlaps())
	assert.Empty(t, c.Timeline().Gaps(900))

	_, err := c.Evaluate(900)
	assert.ErrorIs(t, err, scene.ErrFrameOutOfRange)
}

func TestShortSkipsDashboard(t *testing.T) {
	c := build(t, "short", false)
	assert.Equal(t, 450, c.Settings().DurationInFrames)
	for _, w := range c.Timeline().Windows() {
		assert.NotEqual(t, "dashboard", w.Scene)
	}
}

func TestFullCutOrder(t *testing.T) {
	c := build(t, "full", false)
	var scenes []string
	for _, w := range c.Timeline().Windows() {
		scenes = append(scenes, w.Scene)
	}
	assert.Equal(t, []string{"logo", "problem", "solution", "dashboard", "cta"}, scenes)

	// the feature cards belong to the solution window, the fourth slot is the dashboard
	out, err := c.Evaluate(420)
	require.NoError(t, err)
	assert.NotNil(t, scene.Find(out.Root, "feature-1"))

	out, err = c.Evaluate(600)
	require.NoError(t, err)
	assert.NotNil(t, scene.Find(out.Root, "dashboard"))
	assert.Nil(t, scene.Find(out.Root, "feature-1"))
}

func TestLogoWindow(t *testing.T) {
	c := build(t, "launch", false)

	assert.Equal(t, 0.0, node(t, c, 0, "logo").Opacity)
	assert.Equal(t, 0.0, node(t, c, 0, "logo").Scale)

	logo := node(t, c, 15, "logo")
	assert.Equal(t, 1.0, logo.Opacity)
	assert.Greater(t, logo.Scale, 0.9)
	assert.Less(t, logo.Scale, 1.1)

	logo = node(t, c, 149, "logo")
	assert.Equal(t, 1.0, logo.Opacity)
	assert.InDelta(t, 1.0, logo.Scale, 0.01)

	assert.Equal(t, 0.0, node(t, c, 29, "hook").Opacity)
	assert.Equal(t, 1.0, node(t, c, 45, "hook").Opacity)
}

func TestCounters(t *testing.T) {
	c := build(t, "launch", false)

	// problem starts at 150, the counter reaches 70 at local frame 80
	stat := node(t, c, 230, "stat-1")
	assert.Equal(t, "70%", stat.Children[1].Text)
	stat = node(t, c, 170, "stat-1")
	assert.Equal(t, "0%", stat.Children[1].Text)

	// dashboard starts at 600, the score reaches 92 at local frame 100
	assert.Equal(t, "92", node(t, c, 700, "score").Text)
	assert.Equal(t, "0", node(t, c, 600, "score").Text)
}

func TestCTA(t *testing.T) {
	c := build(t, "launch", true)

	qr := node(t, c, 899, "qr")
	assert.Equal(t, 1.0, qr.Opacity)
	assert.Equal(t, ProductURL, qr.Children[1].Data)
	assert.Equal(t, 0.0, node(t, c, 750, "qr").Opacity)

	confetti := node(t, c, 800, "confetti")
	assert.Len(t, confetti.Children, 30)
	for _, p := range confetti.Children {
		assert.GreaterOrEqual(t, p.W, 8.0)
		assert.Less(t, p.W, 16.0)
	}
}

func TestEvaluationIsOrderIndependent(t *testing.T) {
	c := build(t, "launch", false)
	n := c.Settings().DurationInFrames

	forward := make([][]byte, n)
	for f := 0; f < n; f++ {
		out, err := c.Evaluate(f)
		require.NoError(t, err)
		forward[f], err = json.Marshal(out.Root)
		require.NoError(t, err)
	}
	for f := n - 1; f >= 0; f-- {
		out, err := c.Evaluate(f)
		require.NoError(t, err)
		b, err := json.Marshal(out.Root)
		require.NoError(t, err)
		require.Equal(t, string(forward[f]), string(b), "frame %d", f)
	}
}

func TestLookupAndBuildErrors(t *testing.T) {
	_, err := Lookup("teaser", false)
	assert.ErrorIs(t, err, config.ErrInvalid)

	v, err := Lookup("short", false)
	require.NoError(t, err)
	v.Windows = append(v.Windows, timeline.Window{Scene: "outro", Start: 0, Duration: 10})
	_, err = Build(v)
	assert.ErrorIs(t, err, config.ErrInvalid)

	v, err = Lookup("short", false)
	require.NoError(t, err)
	v.Windows[3].Duration = 200
	_, err = Build(v)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSceneNames(t *testing.T) {
	assert.Equal(t, []string{"cta", "dashboard", "logo", "problem", "solution"}, SceneNames())
}
