// Package anim evaluates the animated values of a composition: clamped
// piecewise-linear curves, springs, colour blends and deterministic noise.
//
// Every value here is built once and then evaluated as a pure function of
// the frame number, so frames can be computed in any order and in parallel.
package anim

import (
	"math"
	"sort"

	"github.com/ivlev/adreel/internal/config"
)

// Extrapolation decides what a curve returns outside its control points.
type Extrapolation int

const (
	// Extend continues the slope of the outermost segment.
	Extend Extrapolation = iota
	// HoldFirst returns the value of the first control point.
	HoldFirst
	// HoldLast returns the value of the last control point.
	HoldLast
	// Identity returns the input frame unchanged.
	Identity
)

func (e Extrapolation) String() string {
	switch e {
	case Extend:
		return "extend"
	case HoldFirst:
		return "hold-first"
	case HoldLast:
		return "hold-last"
	case Identity:
		return "identity"
	}
	return "unknown"
}

// Point is one control point of a curve.
type Point struct {
	Frame float64
	Value float64
}

// Curve is a piecewise-linear value curve.
type Curve struct {
	points []Point
	left   Extrapolation
	right  Extrapolation
	easing Easing
}

// CurveOption configures a curve at build time.
type CurveOption func(*Curve)

// Extrapolate sets both extrapolation policies.
func Extrapolate(left, right Extrapolation) CurveOption {
	return func(c *Curve) {
		c.left = left
		c.right = right
	}
}

// ClampLeft holds the first value before the first control point.
func ClampLeft() CurveOption {
	return func(c *Curve) { c.left = HoldFirst }
}

// ClampRight holds the last value after the last control point.
func ClampRight() CurveOption {
	return func(c *Curve) { c.right = HoldLast }
}

// Clamp holds the outer values on both sides.
func Clamp() CurveOption {
	return func(c *Curve) {
		c.left = HoldFirst
		c.right = HoldLast
	}
}

// WithEasing reshapes the progress between every pair of control points.
func WithEasing(e Easing) CurveOption {
	return func(c *Curve) { c.easing = e }
}

// NewCurve builds a curve through (frames[i], values[i]).
func NewCurve(frames, values []float64, opts ...CurveOption) (*Curve, error) {
	if len(frames) != len(values) {
		return nil, config.Invalid("curve", "%d frames but %d values", len(frames), len(values))
	}
	points := make([]Point, len(frames))
	for i := range frames {
		points[i] = Point{Frame: frames[i], Value: values[i]}
	}
	return NewCurveFromPoints(points, opts...)
}

// NewCurveFromPoints builds a curve from control points in frame order.
func NewCurveFromPoints(points []Point, opts ...CurveOption) (*Curve, error) {
	if len(points) < 2 {
		return nil, config.Invalid("curve", "need at least 2 control points, got %d", len(points))
	}
	for i, p := range points {
		if !finite(p.Frame) || !finite(p.Value) {
			return nil, config.Invalid("curve", "control point %d is not finite", i)
		}
		if i > 0 && p.Frame <= points[i-1].Frame {
			return nil, config.Invalid("curve", "frames must be strictly increasing, got %g after %g", p.Frame, points[i-1].Frame)
		}
	}

	c := &Curve{points: append([]Point(nil), points...)}
	for _, opt := range opts {
		opt(c)
	}
	if c.left < Extend || c.left > Identity || c.right < Extend || c.right > Identity {
		return nil, config.Invalid("curve", "unknown extrapolation %d/%d", c.left, c.right)
	}
	if c.easing != nil {
		if err := checkEasing(c.easing); err != nil {
			return nil, config.Invalid("curve", "%v", err)
		}
	}
	return c, nil
}

// Points returns a copy of the control points.
func (c *Curve) Points() []Point {
	return append([]Point(nil), c.points...)
}

// At evaluates the curve at frame. A NaN frame yields NaN.
func (c *Curve) At(frame float64) float64 {
	if math.IsNaN(frame) {
		return math.NaN()
	}
	first, last := c.points[0], c.points[len(c.points)-1]

	if frame < first.Frame {
		switch c.left {
		case HoldFirst:
			return first.Value
		case HoldLast:
			return last.Value
		case Identity:
			return frame
		}
		return c.segment(0, frame)
	}
	if frame > last.Frame {
		switch c.right {
		case HoldFirst:
			return first.Value
		case HoldLast:
			return last.Value
		case Identity:
			return frame
		}
		return c.segment(len(c.points)-2, frame)
	}

	// first segment whose end is >= frame
	i := sort.Search(len(c.points)-1, func(i int) bool {
		return c.points[i+1].Frame >= frame
	})
	return c.segment(i, frame)
}

// segment evaluates segment i, eased only inside (0, 1) so endpoints stay
// exact and extension outside the segment stays linear.
func (c *Curve) segment(i int, frame float64) float64 {
	a, b := c.points[i], c.points[i+1]
	t := (frame - a.Frame) / (b.Frame - a.Frame)
	switch {
	case t == 0:
		return a.Value
	case t == 1:
		return b.Value
	case t > 0 && t < 1 && c.easing != nil:
		t = c.easing(t)
	}
	return lerp(a.Value, b.Value, t)
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
