package renderer

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

type vec struct{ x, y float64 }

// contour is one closed polygon; holes wind the other way.
type contour struct {
	pts  []vec
	hole bool
}

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

func translate(x, y float64) f64.Aff3 { return f64.Aff3{1, 0, x, 0, 1, y} }

func scale(s float64) f64.Aff3 { return f64.Aff3{s, 0, 0, 0, s, 0} }

// rotate turns clockwise on screen.
func rotate(deg float64) f64.Aff3 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

// mul returns a∘b: b is applied first.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func invert(m f64.Aff3) f64.Aff3 {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 {
		return identity
	}
	return f64.Aff3{
		m[4] / det, -m[1] / det, (m[1]*m[5] - m[4]*m[2]) / det,
		-m[3] / det, m[0] / det, (m[3]*m[2] - m[0]*m[5]) / det,
	}
}

func apply(m f64.Aff3, p vec) vec {
	return vec{m[0]*p.x + m[1]*p.y + m[2], m[3]*p.x + m[4]*p.y + m[5]}
}

// unitScale is how much m stretches a unit length.
func unitScale(m f64.Aff3) float64 {
	return math.Sqrt(math.Abs(m[0]*m[4] - m[1]*m[3]))
}

// segments picks a polygon resolution for an arc of the given on-screen
// radius.
func segments(radius float64, lo, hi int) int {
	n := int(math.Ceil(radius / 2))
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func arc(cx, cy, rx, ry, from, to float64, n int) []vec {
	pts := make([]vec, 0, n+1)
	for i := 0; i <= n; i++ {
		a := from + (to-from)*float64(i)/float64(n)
		sin, cos := math.Sincos(a)
		pts = append(pts, vec{cx + rx*cos, cy + ry*sin})
	}
	return pts
}

func ellipse(x, y, w, h float64, n int) []vec {
	pts := arc(x+w/2, y+h/2, w/2, h/2, 0, 2*math.Pi, n)
	return pts[:len(pts)-1]
}

func roundRect(x, y, w, h, r float64, n int) []vec {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return []vec{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	}
	var pts []vec
	pts = append(pts, arc(x+w-r, y+r, r, r, -math.Pi/2, 0, n)...)
	pts = append(pts, arc(x+w-r, y+h-r, r, r, 0, math.Pi/2, n)...)
	pts = append(pts, arc(x+r, y+h-r, r, r, math.Pi/2, math.Pi, n)...)
	pts = append(pts, arc(x+r, y+r, r, r, math.Pi, 3*math.Pi/2, n)...)
	return pts
}

// polyline strokes a path with round joins and caps.
func polyline(points []vec, width float64, n int) []contour {
	half := width / 2
	var out []contour
	for i, p := range points {
		out = append(out, contour{pts: ellipse(p.x-half, p.y-half, width, width, n)})
		if i == 0 {
			continue
		}
		q := points[i-1]
		dx, dy := p.x-q.x, p.y-q.y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		out = append(out, contour{pts: []vec{
			{q.x + nx, q.y + ny}, {p.x + nx, p.y + ny},
			{p.x - nx, p.y - ny}, {q.x - nx, q.y - ny},
		}})
	}
	return out
}

func area(pts []vec) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.x*q.y - q.x*p.y
	}
	return a / 2
}

// orient makes solid contours wind one way and holes the other, so that
// overlapping solids add up and holes cancel.
func orient(c contour) []vec {
	if (area(c.pts) > 0) != c.hole {
		rev := make([]vec, len(c.pts))
		for i, p := range c.pts {
			rev[len(rev)-1-i] = p
		}
		return rev
	}
	return c.pts
}

func bounds(cs []contour) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range cs {
		for _, p := range c.pts {
			minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
			minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
		}
	}
	if minX > maxX {
		return image.Rectangle{}
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// clip cuts a polygon to r (Sutherland-Hodgman).
func clip(pts []vec, r image.Rectangle) []vec {
	edges := []struct {
		inside func(vec) bool
		cross  func(a, b vec) vec
	}{
		{func(p vec) bool { return p.x >= float64(r.Min.X) }, func(a, b vec) vec { return atX(a, b, float64(r.Min.X)) }},
		{func(p vec) bool { return p.x <= float64(r.Max.X) }, func(a, b vec) vec { return atX(a, b, float64(r.Max.X)) }},
		{func(p vec) bool { return p.y >= float64(r.Min.Y) }, func(a, b vec) vec { return atY(a, b, float64(r.Min.Y)) }},
		{func(p vec) bool { return p.y <= float64(r.Max.Y) }, func(a, b vec) vec { return atY(a, b, float64(r.Max.Y)) }},
	}
	for _, e := range edges {
		if len(pts) == 0 {
			return nil
		}
		in := pts
		pts = make([]vec, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, p := range in {
			switch {
			case e.inside(p) && e.inside(prev):
				pts = append(pts, p)
			case e.inside(p):
				pts = append(pts, e.cross(prev, p), p)
			case e.inside(prev):
				pts = append(pts, e.cross(prev, p))
			}
			prev = p
		}
	}
	return pts
}

func atX(a, b vec, x float64) vec {
	t := (x - a.x) / (b.x - a.x)
	return vec{x, a.y + (b.y-a.y)*t}
}

func atY(a, b vec, y float64) vec {
	t := (y - a.y) / (b.y - a.y)
	return vec{a.x + (b.x-a.x)*t, y}
}
