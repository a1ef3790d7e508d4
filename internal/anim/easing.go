package anim

import (
	"fmt"
	"math"
	"strings"
)

// Easing reshapes normalized progress in [0, 1].
type Easing func(t float64) float64

// Linear leaves progress untouched.
func Linear(t float64) float64 { return t }

func Quad(t float64) float64 { return t * t }

func Cubic(t float64) float64 { return t * t * t }

// Poly returns t^n.
func Poly(n float64) Easing {
	return func(t float64) float64 { return math.Pow(t, n) }
}

func Sin(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

func Circle(t float64) float64 { return 1 - math.Sqrt(1-t*t) }

func Exp(t float64) float64 { return math.Pow(2, 10*(t-1)) }

// In runs an easing forwards.
func In(e Easing) Easing { return e }

// Out runs an easing backwards.
func Out(e Easing) Easing {
	return func(t float64) float64 { return 1 - e(1-t) }
}

// InOut makes an easing symmetric around the midpoint.
func InOut(e Easing) Easing {
	return func(t float64) float64 {
		if t < 0.5 {
			return e(t*2) / 2
		}
		return 1 - e((1-t)*2)/2
	}
}

// Ease is the standard "ease" timing curve.
var Ease = Bezier(0.42, 0, 1, 1)

// Bezier returns a cubic-bezier timing function with control points
// (x1, y1) and (x2, y2), solved for x with Newton steps and a bisection
// fallback.
func Bezier(x1, y1, x2, y2 float64) Easing {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solve := func(x float64) float64 {
		s := x
		for i := 0; i < 8; i++ {
			dx := sampleX(s) - x
			if math.Abs(dx) < 1e-7 {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}

		lo, hi := 0.0, 1.0
		s = x
		for i := 0; i < 64 && lo < hi; i++ {
			v := sampleX(s)
			if math.Abs(v-x) < 1e-7 {
				return s
			}
			if x > v {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return s
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleY(solve(t))
	}
}

var easingsByName = map[string]Easing{
	"linear": Linear,
	"ease":   Ease,
	"quad":   Quad,
	"cubic":  Cubic,
	"sin":    Sin,
	"circle": Circle,
	"exp":    Exp,
}

// EasingByName resolves names such as "cubic", "out-cubic" or "in-out-sin".
func EasingByName(name string) (Easing, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	wrap := In
	switch {
	case strings.HasPrefix(name, "in-out-"):
		wrap, name = InOut, strings.TrimPrefix(name, "in-out-")
	case strings.HasPrefix(name, "out-"):
		wrap, name = Out, strings.TrimPrefix(name, "out-")
	case strings.HasPrefix(name, "in-"):
		name = strings.TrimPrefix(name, "in-")
	}
	e, ok := easingsByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return wrap(e), nil
}

// checkEasing samples e and reports whether it keeps its endpoints and never
// decreases.
func checkEasing(e Easing) error {
	const samples = 128
	const tol = 1e-3
	if v := e(0); math.Abs(v) > tol {
		return fmt.Errorf("easing maps 0 to %g", v)
	}
	if v := e(1); math.Abs(v-1) > tol {
		return fmt.Errorf("easing maps 1 to %g", v)
	}
	prev := e(0)
	for i := 1; i <= samples; i++ {
		v := e(float64(i) / samples)
		if math.IsNaN(v) || v < prev-1e-9 {
			return fmt.Errorf("easing is not monotonic near %.3f", float64(i)/samples)
		}
		prev = v
	}
	return nil
}
