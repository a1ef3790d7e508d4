package anim

import (
	"fmt"

	"github.com/ivlev/adreel/internal/config"
)

// Builder collects the curves of one scene and remembers the first
// configuration error, so a scene constructor can declare its curves in a
// row and check once.
type Builder struct {
	scope string
	fps   int
	err   error
}

func NewBuilder(scope string, fps int) *Builder {
	return &Builder{scope: scope, fps: fps}
}

func (b *Builder) FPS() int { return b.fps }

// Err returns the first error, naming the scene and curve.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(name string, err error) {
	if b.err == nil {
		b.err = fmt.Errorf("%s/%s: %w", b.scope, name, err)
	}
}

// Curve builds a linear curve; on error it returns a constant-zero curve.
func (b *Builder) Curve(name string, frames, values []float64, opts ...CurveOption) *Curve {
	c, err := NewCurve(frames, values, opts...)
	if err != nil {
		b.fail(name, err)
		return &Curve{points: []Point{{0, 0}, {1, 0}}, left: HoldFirst, right: HoldLast}
	}
	return c
}

// Spring builds a spring at the builder's frame rate; on error it returns a
// spring that is already settled.
func (b *Builder) Spring(name string, cfg SpringConfig, opts ...SpringOption) *Spring {
	s, err := NewSpring(b.fps, cfg, opts...)
	if err != nil {
		b.fail(name, err)
		s, _ = NewSpring(1, DefaultSpringConfig(), Range(1, 1))
	}
	return s
}

// Colors builds a colour curve; on error it returns a black curve.
func (b *Builder) Colors(name string, frames []float64, colors []string, opts ...CurveOption) *ColorCurve {
	c, err := NewColorCurve(frames, colors, opts...)
	if err != nil {
		b.fail(name, err)
		c, _ = NewColorCurve([]float64{0, 1}, []string{"#000000", "#000000"})
	}
	return c
}

// Ease resolves a named easing such as "out-cubic"; on error it returns
// Linear.
func (b *Builder) Ease(name string) Easing {
	e, err := EasingByName(name)
	if err != nil {
		b.fail("easing", config.Invalid("easing", "%v", err))
		return Linear
	}
	return e
}
