package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/ivlev/adreel/internal/config"
)

// SpringConfig describes a mass on a damped spring. Damping is the damping
// coefficient; the damping ratio follows from all three values.
// Zero Mass and Stiffness fall back to 1 and 100.
type SpringConfig struct {
	Mass              float64 `yaml:"mass,omitempty"`
	Damping           float64 `yaml:"damping"`
	Stiffness         float64 `yaml:"stiffness,omitempty"`
	OvershootClamping bool    `yaml:"overshoot_clamping,omitempty"`
}

// DefaultSpringConfig is mass 1, damping 10, stiffness 100.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{Mass: 1, Damping: 10, Stiffness: 100}
}

func (c SpringConfig) withDefaults() SpringConfig {
	if c.Mass == 0 {
		c.Mass = 1
	}
	if c.Stiffness == 0 {
		c.Stiffness = 100
	}
	return c
}

// Spring is the step response of a damped harmonic oscillator released from
// rest at its start frame.
type Spring struct {
	cfg   SpringConfig
	fps   int
	delay float64
	from  float64
	to    float64
	omega float64
	zeta  float64
}

// SpringOption configures a spring at build time.
type SpringOption func(*Spring)

// Delay starts the spring at the given local frame.
func Delay(frames float64) SpringOption {
	return func(s *Spring) { s.delay = frames }
}

// Range maps the 0..1 response onto from..to.
func Range(from, to float64) SpringOption {
	return func(s *Spring) {
		s.from = from
		s.to = to
	}
}

// NewSpring validates cfg and derives the angular frequency and damping ratio.
func NewSpring(fps int, cfg SpringConfig, opts ...SpringOption) (*Spring, error) {
	if fps <= 0 {
		return nil, config.Invalid("spring", "frame rate must be positive, got %d", fps)
	}
	cfg = cfg.withDefaults()
	if !finite(cfg.Mass) || !finite(cfg.Damping) || !finite(cfg.Stiffness) {
		return nil, config.Invalid("spring", "mass, damping and stiffness must be finite")
	}
	if cfg.Mass < 0 || cfg.Damping < 0 || cfg.Stiffness < 0 {
		return nil, config.Invalid("spring", "negative parameter (mass %g, damping %g, stiffness %g)", cfg.Mass, cfg.Damping, cfg.Stiffness)
	}

	s := &Spring{cfg: cfg, fps: fps, to: 1}
	for _, opt := range opts {
		opt(s)
	}
	if !finite(s.delay) || !finite(s.from) || !finite(s.to) {
		return nil, config.Invalid("spring", "delay and range must be finite")
	}

	s.omega = math.Sqrt(cfg.Stiffness / cfg.Mass)
	s.zeta = cfg.Damping / (2 * math.Sqrt(cfg.Stiffness*cfg.Mass))
	return s, nil
}

// DampingRatio is 1 for a critically damped spring, below 1 when it
// overshoots.
func (s *Spring) DampingRatio() float64 { return s.zeta }

// At evaluates the spring at a local frame. Frames before the start return
// the starting value.
func (s *Spring) At(frame float64) float64 {
	return s.from + (s.to-s.from)*s.progress(frame-s.delay)
}

// progress solves the oscillator from rest in one step of the whole elapsed
// time, so the cost and the result do not depend on how far in the frame is.
func (s *Spring) progress(elapsed float64) float64 {
	if math.IsNaN(elapsed) || elapsed <= 0 {
		return 0
	}
	if math.IsInf(elapsed, 1) {
		return 1
	}

	pos, _ := harmonica.NewSpring(elapsed/float64(s.fps), s.omega, s.zeta).Update(0, 0, 1)
	if math.IsNaN(pos) {
		return 1
	}
	if s.cfg.OvershootClamping && pos > 1 {
		pos = 1
	}
	return pos
}

// SettleFrame returns the first local frame from which the spring stays
// within tolerance (relative to its range) of its target up to limit.
func (s *Spring) SettleFrame(tolerance float64, limit int) (int, bool) {
	span := math.Abs(s.to - s.from)
	if span == 0 {
		return 0, true
	}
	settled := -1
	for f := 0; f <= limit; f++ {
		if math.Abs(s.At(float64(f))-s.to) <= tolerance*span {
			if settled < 0 {
				settled = f
			}
			continue
		}
		settled = -1
	}
	return settled, settled >= 0
}
