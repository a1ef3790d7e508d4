// Package renderer rasterizes visual trees into RGBA frames.
package renderer

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/ivlev/adreel/internal/scene"
)

// Renderer draws trees laid out for a width x height canvas, optionally
// scaled for low-resolution previews. It is safe for concurrent use.
type Renderer struct {
	width  int
	height int
	scale  float64
	qr     *qrCache
}

// New creates a renderer. A scale of 0 means 1.
func New(width, height int, scale float64) *Renderer {
	if scale <= 0 {
		scale = 1
	}
	return &Renderer{width: width, height: height, scale: scale, qr: newQRCache()}
}

// Size is the size of the frames Render fills.
func (r *Renderer) Size() image.Point {
	return image.Pt(
		int(math.Round(float64(r.width)*r.scale)),
		int(math.Round(float64(r.height)*r.scale)),
	)
}

// NewImage allocates a frame of the right size.
func (r *Renderer) NewImage() *image.RGBA {
	return image.NewRGBA(image.Rectangle{Max: r.Size()})
}

// Render clears dst and draws root into it.
func (r *Renderer) Render(root *scene.Node, dst *image.RGBA) error {
	if dst.Bounds().Size() != r.Size() {
		return fmt.Errorf("frame is %v, renderer draws %v", dst.Bounds().Size(), r.Size())
	}
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)

	c := &canvas{dst: dst, qr: r.qr}
	c.node(root, mul(translate(float64(dst.Bounds().Min.X), float64(dst.Bounds().Min.Y)), scale(r.scale)), 1)
	return c.err
}

// canvas holds the state of one Render call.
type canvas struct {
	dst *image.RGBA
	z   vector.Rasterizer
	qr  *qrCache
	err error
}

func (c *canvas) fail(n *scene.Node, err error) {
	if c.err == nil {
		c.err = fmt.Errorf("%s %q: %w", n.Kind, n.ID, err)
	}
}

// local maps node coordinates to parent coordinates: translate by (X, Y),
// then scale and rotate around the centre of the W x H box.
func local(n *scene.Node) f64.Aff3 {
	m := translate(n.X, n.Y)
	if n.Scale == 1 && n.Rotate == 0 {
		return m
	}
	cx, cy := n.W/2, n.H/2
	m = mul(m, translate(cx, cy))
	m = mul(m, rotate(n.Rotate))
	m = mul(m, scale(n.Scale))
	return mul(m, translate(-cx, -cy))
}

func (c *canvas) node(n *scene.Node, parent f64.Aff3, opacity float64) {
	if n == nil || c.err != nil {
		return
	}
	alpha := opacity * n.Opacity
	if alpha <= 0 || n.Scale <= 0 {
		return
	}
	m := mul(parent, local(n))
	px := unitScale(m)

	switch n.Kind {
	case scene.KindGroup:
	case scene.KindRect:
		seg := segments(n.Radius*px, 2, 16)
		c.shape(n, m, alpha, func(grow float64) []vec {
			return roundRect(-grow, -grow, n.W+2*grow, n.H+2*grow, n.Radius+grow, seg)
		})
	case scene.KindEllipse:
		seg := segments(math.Max(n.W, n.H)*px, 16, 128)
		c.shape(n, m, alpha, func(grow float64) []vec {
			return ellipse(-grow, -grow, n.W+2*grow, n.H+2*grow, seg)
		})
	case scene.KindPath:
		c.path(n, m, alpha, px)
	case scene.KindText:
		c.text(n, m, alpha)
	case scene.KindQR:
		c.code(n, m, alpha)
	default:
		c.fail(n, fmt.Errorf("unknown node kind"))
		return
	}

	for _, child := range n.Children {
		c.node(child, m, alpha)
	}
}

// shape fills and strokes a closed outline; outline(grow) returns it
// offset outwards by grow.
func (c *canvas) shape(n *scene.Node, m f64.Aff3, alpha float64, outline func(grow float64) []vec) {
	if n.W <= 0 || n.H <= 0 {
		return
	}
	if n.Fill != nil {
		src, err := source(n.Fill, m, n.W, n.H, alpha)
		if err != nil {
			c.fail(n, err)
			return
		}
		c.fill(m, src, contour{pts: outline(0)})
	}
	if n.Stroke != nil && n.Stroke.Width > 0 {
		src, err := solid(n.Stroke.Color, alpha)
		if err != nil {
			c.fail(n, err)
			return
		}
		half := n.Stroke.Width / 2
		ring := []contour{{pts: outline(half)}}
		if n.W > n.Stroke.Width && n.H > n.Stroke.Width {
			ring = append(ring, contour{pts: outline(-half), hole: true})
		}
		c.fill(m, src, ring...)
	}
}

func (c *canvas) path(n *scene.Node, m f64.Aff3, alpha, px float64) {
	if n.Stroke == nil || n.Stroke.Width <= 0 || len(n.Points) == 0 {
		return
	}
	src, err := solid(n.Stroke.Color, alpha)
	if err != nil {
		c.fail(n, err)
		return
	}
	pts := make([]vec, len(n.Points))
	for i, p := range n.Points {
		pts[i] = vec{p.X, p.Y}
	}
	c.fill(m, src, polyline(pts, n.Stroke.Width, segments(n.Stroke.Width*px, 8, 32))...)
}

// fill transforms contours by m and paints src through them.
func (c *canvas) fill(m f64.Aff3, src image.Image, cs ...contour) {
	screen := make([]contour, len(cs))
	for i, ct := range cs {
		pts := make([]vec, len(ct.pts))
		for j, p := range ct.pts {
			pts[j] = apply(m, p)
		}
		screen[i] = contour{pts: pts, hole: ct.hole}
	}

	r := bounds(screen).Intersect(c.dst.Bounds())
	if r.Empty() {
		return
	}

	c.z.Reset(r.Dx(), r.Dy())
	c.z.DrawOp = draw.Over
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, ct := range screen {
		pts := clip(orient(ct), r)
		if len(pts) < 3 {
			continue
		}
		c.z.MoveTo(float32(pts[0].x-ox), float32(pts[0].y-oy))
		for _, p := range pts[1:] {
			c.z.LineTo(float32(p.x-ox), float32(p.y-oy))
		}
		c.z.ClosePath()
	}
	c.z.Draw(c.dst, r, src, r.Min)
}
