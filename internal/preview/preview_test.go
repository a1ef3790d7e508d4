package preview

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/adreel/internal/composition"
	"github.com/ivlev/adreel/internal/scene"
	"github.com/ivlev/adreel/internal/timeline"
)

var (
	red  = tcell.NewRGBColor(255, 0, 0)
	blue = tcell.NewRGBColor(0, 0, 255)
)

// stripe is a red 16x8 canvas with a blue top pixel row.
func stripe(t *testing.T) *composition.Composition {
	t.Helper()
	top := scene.Func("stripe", func(f scene.Frame) *scene.Node {
		return scene.Rect(0, 0, float64(f.Width), 1).WithFill(scene.Solid("#0000ff"))
	})
	c, err := composition.New(
		composition.Settings{ID: "stripe", Width: 16, Height: 8, FPS: 10, DurationInFrames: 20, Background: "#ff0000"},
		[]timeline.Window{{Scene: "stripe", Start: 0, Duration: 20}},
		map[string]scene.Scene{"stripe": top},
		nil,
	)
	require.NoError(t, err)
	return c
}

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func rowText(screen tcell.Screen, row, cols int) string {
	var b strings.Builder
	for x := 0; x < cols; x++ {
		r, _, _, _ := screen.GetContent(x, row)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawHalfBlocks(t *testing.T) {
	screen := newScreen(t, 16, 5)
	p := New(screen, stripe(t))
	require.NoError(t, p.Draw())

	r, _, style, _ := screen.GetContent(3, 0)
	assert.Equal(t, halfBlock, r)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, blue, fg)
	assert.Equal(t, red, bg)

	_, _, style, _ = screen.GetContent(3, 2)
	fg, bg, _ = style.Decompose()
	assert.Equal(t, red, fg)
	assert.Equal(t, red, bg)

	assert.Contains(t, rowText(screen, 4, 16), "0/19")
}

func TestDrawScalesToScreen(t *testing.T) {
	// 32 columns and 8 cell rows hold the frame at twice its size
	screen := newScreen(t, 32, 9)
	p := New(screen, stripe(t))
	require.NoError(t, p.Draw())

	s := p.r.Size()
	require.Equal(t, 32, s.X)
	require.Equal(t, 16, s.Y)

	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, halfBlock, r)
	r, _, _, _ = screen.GetContent(31, 7)
	assert.Equal(t, halfBlock, r)
}

func TestDrawCentresFrame(t *testing.T) {
	// the height limits the frame to 16x8 pixels in the middle of 40 columns
	screen := newScreen(t, 40, 5)
	p := New(screen, stripe(t))
	require.NoError(t, p.Draw())

	r, _, _, _ := screen.GetContent(11, 0)
	assert.NotEqual(t, halfBlock, r)
	r, _, _, _ = screen.GetContent(12, 0)
	assert.Equal(t, halfBlock, r)
	r, _, _, _ = screen.GetContent(27, 3)
	assert.Equal(t, halfBlock, r)
	r, _, _, _ = screen.GetContent(28, 3)
	assert.NotEqual(t, halfBlock, r)
}

func TestDrawTinyScreen(t *testing.T) {
	screen := newScreen(t, 4, 1)
	p := New(screen, stripe(t))
	assert.NoError(t, p.Draw())
}

func TestHandleEvent(t *testing.T) {
	screen := newScreen(t, 16, 5)
	p := New(screen, stripe(t))

	assert.True(t, p.HandleEvent(key(tcell.KeyRune, ' ')))
	assert.True(t, p.Paused())
	assert.True(t, p.HandleEvent(key(tcell.KeyRune, ' ')))
	assert.False(t, p.Paused())

	p.HandleEvent(key(tcell.KeyRight, 0))
	assert.Equal(t, 1, p.Frame())
	assert.True(t, p.Paused())

	p.HandleEvent(key(tcell.KeyUp, 0))
	assert.Equal(t, 11, p.Frame())
	p.HandleEvent(key(tcell.KeyUp, 0))
	assert.Equal(t, 19, p.Frame())
	p.HandleEvent(key(tcell.KeyLeft, 0))
	assert.Equal(t, 18, p.Frame())
	p.HandleEvent(key(tcell.KeyHome, 0))
	assert.Equal(t, 0, p.Frame())
	p.HandleEvent(key(tcell.KeyDown, 0))
	assert.Equal(t, 0, p.Frame())

	assert.False(t, p.HandleEvent(key(tcell.KeyRune, 'q')))
	assert.False(t, p.HandleEvent(key(tcell.KeyEscape, 0)))
}

func TestAdvance(t *testing.T) {
	screen := newScreen(t, 16, 5)

	p := New(screen, stripe(t), StartAt(18))
	p.advance()
	assert.Equal(t, 19, p.Frame())
	p.advance()
	assert.Equal(t, 19, p.Frame())
	assert.True(t, p.Paused())

	p = New(screen, stripe(t), StartAt(19), Loop())
	p.advance()
	assert.Equal(t, 0, p.Frame())

	p = New(screen, stripe(t), StartAt(500))
	assert.Equal(t, 19, p.Frame())
}

func TestRunQuits(t *testing.T) {
	screen := newScreen(t, 16, 5)
	p := New(screen, stripe(t))
	require.NoError(t, screen.PostEvent(key(tcell.KeyRune, 'q')))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, p.Run(ctx))
}

func TestRunStopsOnContext(t *testing.T) {
	screen := newScreen(t, 16, 5)
	p := New(screen, stripe(t), Loop())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Run(ctx), context.DeadlineExceeded)
	assert.Greater(t, p.Frame(), 0)
}
