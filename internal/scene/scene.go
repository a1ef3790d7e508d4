// Package scene defines the visual tree a scene produces for one frame and
// the contract a scene has to honour to be sequenced on a timeline.
package scene

import (
	"errors"
	"fmt"
)

// ErrFrameOutOfRange is returned when a scene is asked for a local frame
// outside its window.
var ErrFrameOutOfRange = errors.New("frame out of range")

// Frame is everything a scene may read while rendering.
type Frame struct {
	Local    int
	Duration int
	FPS      int
	Width    int
	Height   int
}

// Time is the local frame in seconds.
func (f Frame) Time() float64 { return float64(f.Local) / float64(f.FPS) }

// F is the local frame as a float for curve evaluation.
func (f Frame) F() float64 { return float64(f.Local) }

// Scene renders one window. Render must be a pure function of f.
type Scene interface {
	Name() string
	Render(f Frame) *Node
}

type funcScene struct {
	name string
	fn   func(Frame) *Node
}

func (s funcScene) Name() string         { return s.name }
func (s funcScene) Render(f Frame) *Node { return s.fn(f) }

// Func adapts a function to a Scene.
func Func(name string, fn func(Frame) *Node) Scene {
	return funcScene{name: name, fn: fn}
}

// Compose renders s at f after checking the local frame lies inside the
// window. A scene that returns nil renders as an empty group.
func Compose(s Scene, f Frame) (*Node, error) {
	if f.Local < 0 || f.Local >= f.Duration {
		return nil, fmt.Errorf("scene %s: local frame %d not in [0,%d): %w", s.Name(), f.Local, f.Duration, ErrFrameOutOfRange)
	}
	n := s.Render(f)
	if n == nil {
		n = Group(0, 0, float64(f.Width), float64(f.Height))
	}
	return n, nil
}
