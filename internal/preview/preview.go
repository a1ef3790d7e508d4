// Package preview plays a composition in the terminal, two pixels per cell
// using the upper half block.
package preview

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ivlev/adreel/internal/composition"
	"github.com/ivlev/adreel/internal/renderer"
)

const halfBlock = '▀'

type Player struct {
	screen tcell.Screen
	comp   *composition.Composition
	frame  int
	paused bool
	loop   bool

	// renderer and buffer for the current screen size
	r    *renderer.Renderer
	img  *image.RGBA
	cols int
	rows int
}

// Option configures a player.
type Option func(*Player)

// Loop restarts from frame 0 after the last frame instead of stopping there.
func Loop() Option { return func(p *Player) { p.loop = true } }

// StartAt starts playback at a global frame.
func StartAt(frame int) Option { return func(p *Player) { p.frame = frame } }

// New creates a player on an initialized screen. The caller owns the
// screen and calls Fini.
func New(screen tcell.Screen, comp *composition.Composition, opts ...Option) *Player {
	p := &Player{screen: screen, comp: comp}
	for _, opt := range opts {
		opt(p)
	}
	p.frame = p.clamp(p.frame)
	return p
}

func (p *Player) Frame() int { return p.frame }

func (p *Player) Paused() bool { return p.paused }

// Run plays at the composition frame rate until q, Esc, Ctrl-C or ctx.
func (p *Player) Run(ctx context.Context) error {
	fps := p.comp.Settings().FPS
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	if err := p.Draw(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !p.HandleEvent(ev) {
				return nil
			}
			if err := p.Draw(); err != nil {
				return err
			}
		case <-ticker.C:
			if p.paused {
				continue
			}
			p.advance()
			if err := p.Draw(); err != nil {
				return err
			}
		}
	}
}

func (p *Player) advance() {
	last := p.comp.Settings().DurationInFrames - 1
	switch {
	case p.frame < last:
		p.frame++
	case p.loop:
		p.frame = 0
	default:
		p.paused = true
	}
}

// HandleEvent applies a key press and reports whether playback continues.
// Space pauses, arrows step one frame (Up/Down one second), Home rewinds.
func (p *Player) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		fps := p.comp.Settings().FPS
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRight:
			p.seek(p.frame + 1)
		case tcell.KeyLeft:
			p.seek(p.frame - 1)
		case tcell.KeyUp:
			p.seek(p.frame + fps)
		case tcell.KeyDown:
			p.seek(p.frame - fps)
		case tcell.KeyHome:
			p.seek(0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				p.paused = !p.paused
			}
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

// seek pauses on a frame.
func (p *Player) seek(frame int) {
	p.frame = p.clamp(frame)
	p.paused = true
}

func (p *Player) clamp(frame int) int {
	return max(0, min(frame, p.comp.Settings().DurationInFrames-1))
}

// Draw renders the current frame to fit the screen above the status line.
func (p *Player) Draw() error {
	cols, rows := p.screen.Size()
	p.screen.Clear()
	if rows > 1 && cols > 0 {
		if err := p.drawFrame(cols, rows-1); err != nil {
			return err
		}
	}
	p.drawStatus(cols, rows-1)
	p.screen.Show()
	return nil
}

func (p *Player) drawFrame(cols, rows int) error {
	if p.r == nil || cols != p.cols || rows != p.rows {
		s := p.comp.Settings()
		scale := min(float64(cols)/float64(s.Width), float64(rows*2)/float64(s.Height))
		p.r = renderer.New(s.Width, s.Height, scale)
		p.img = p.r.NewImage()
		p.cols, p.rows = cols, rows
	}
	size := p.r.Size()
	if size.X == 0 || size.Y == 0 {
		return nil
	}

	out, err := p.comp.Evaluate(p.frame)
	if err != nil {
		return err
	}
	if err := p.r.Render(out.Root, p.img); err != nil {
		return err
	}

	offX := (cols - size.X) / 2
	offY := (rows - (size.Y+1)/2) / 2
	for y := 0; y < size.Y; y += 2 {
		for x := 0; x < size.X; x++ {
			top := cellColor(p.img, x, y)
			bottom := tcell.ColorBlack
			if y+1 < size.Y {
				bottom = cellColor(p.img, x, y+1)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			p.screen.SetContent(offX+x, offY+y/2, halfBlock, nil, style)
		}
	}
	return nil
}

func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (p *Player) drawStatus(cols, row int) {
	s := p.comp.Settings()
	var scenes []string
	for _, slot := range p.comp.Timeline().Active(p.frame) {
		scenes = append(scenes, slot.Window.Scene)
	}
	state := "▶"
	if p.paused {
		state = "❚❚"
	}
	line := fmt.Sprintf(" %s %d/%d  %.2fs  %v  [space] pause  [←→] step  [q] quit",
		state, p.frame, s.DurationInFrames-1, float64(p.frame)/float64(s.FPS), scenes)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateBlue)
	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		p.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		p.screen.SetContent(x, row, ' ', nil, style)
	}
}
