package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/math/f64"

	"github.com/ivlev/adreel/internal/anim"
	"github.com/ivlev/adreel/internal/scene"
)

// premul converts a colour and alpha into a premultiplied 16-bit colour.
func premul(c colorful.Color, alpha float64) color.RGBA64 {
	c = c.Clamped()
	alpha = math.Max(0, math.Min(1, alpha))
	ch := func(v float64) uint16 { return uint16(v*alpha*0xffff + 0.5) }
	return color.RGBA64{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: uint16(alpha*0xffff + 0.5)}
}

func solid(hex string, opacity float64) (image.Image, error) {
	c, a, err := anim.ParseColor(hex)
	if err != nil {
		return nil, err
	}
	return image.NewUniform(premul(c, a*opacity)), nil
}

// source builds the image a shape is filled with. Gradients are laid out on
// the node's w x h box and follow the node transform m.
func source(p *scene.Paint, m f64.Aff3, w, h, opacity float64) (image.Image, error) {
	if p == nil {
		return nil, nil
	}
	if p.Kind == scene.PaintSolid || p.Kind == "" {
		return solid(p.From, opacity)
	}

	from, fa, err := anim.ParseColor(p.From)
	if err != nil {
		return nil, err
	}
	to, ta, err := anim.ParseColor(p.To)
	if err != nil {
		return nil, err
	}
	g := &gradient{
		inv:  invert(m),
		w:    w,
		h:    h,
		from: from,
		to:   to,
		fa:   fa * opacity,
		ta:   ta * opacity,
	}
	switch p.Kind {
	case scene.PaintLinear:
		sin, cos := math.Sincos(p.Angle * math.Pi / 180)
		g.dx, g.dy = sin, -cos
		g.length = math.Abs(w*sin) + math.Abs(h*cos)
	case scene.PaintRadial:
		g.radial = true
	default:
		return nil, fmt.Errorf("unknown paint %q", p.Kind)
	}
	return g, nil
}

// gradient is an unbounded image sampled in canvas pixels.
type gradient struct {
	inv    f64.Aff3
	radial bool
	w, h   float64
	dx, dy float64
	length float64
	from   colorful.Color
	to     colorful.Color
	fa, ta float64
}

func (g *gradient) ColorModel() color.Model { return color.RGBA64Model }

func (g *gradient) Bounds() image.Rectangle {
	return image.Rect(-1<<20, -1<<20, 1<<20, 1<<20)
}

func (g *gradient) At(x, y int) color.Color {
	p := apply(g.inv, vec{float64(x) + 0.5, float64(y) + 0.5})
	cx, cy := g.w/2, g.h/2

	var t float64
	switch {
	case g.radial && cx > 0 && cy > 0:
		t = math.Hypot((p.x-cx)/cx, (p.y-cy)/cy)
	case !g.radial && g.length > 0:
		t = ((p.x-cx)*g.dx+(p.y-cy)*g.dy)/g.length + 0.5
	}
	t = math.Max(0, math.Min(1, t))
	return premul(g.from.BlendRgb(g.to, t), g.fa*(1-t)+g.ta*t)
}
