package renderer

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/adreel/internal/scene"
)

var face = basicfont.Face7x13

// text draws a single line with the bitmap face scaled to FontSize.
func (c *canvas) text(n *scene.Node, m f64.Aff3, alpha float64) {
	if n.Text == "" || n.FontSize <= 0 {
		return
	}
	color := "#ffffff"
	if n.Fill != nil {
		color = n.Fill.From
	}
	src, err := solid(color, alpha)
	if err != nil {
		c.fail(n, err)
		return
	}

	metrics := face.Metrics()
	lineH := (metrics.Ascent + metrics.Descent).Ceil()
	w := font.MeasureString(face, n.Text).Ceil()
	if w == 0 {
		return
	}
	glyphs := image.NewRGBA(image.Rect(0, 0, w, lineH))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  src,
		Face: face,
		Dot:  fixed.Point26_6{Y: metrics.Ascent},
	}
	d.DrawString(n.Text)

	k := n.FontSize / float64(lineH)
	var ox float64
	switch n.Align {
	case scene.AlignCenter:
		ox = -float64(w) * k / 2
	case scene.AlignRight:
		ox = -float64(w) * k
	}
	s2d := mul(m, mul(translate(ox, 0), scale(k)))
	draw.BiLinear.Transform(c.dst, s2d, glyphs, glyphs.Bounds(), draw.Over, nil)
}
