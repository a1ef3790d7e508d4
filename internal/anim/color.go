package anim

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/adreel/internal/config"
)

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa" and returns the colour
// with its alpha in [0, 1].
func ParseColor(s string) (colorful.Color, float64, error) {
	hex := strings.TrimSpace(s)
	alpha := 1.0
	if len(hex) == 9 && strings.HasPrefix(hex, "#") {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("colour %q: %w", s, err)
		}
		alpha = float64(a) / 255
		hex = hex[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, 0, fmt.Errorf("colour %q: %w", s, err)
	}
	return c, alpha, nil
}

// FormatColor is the inverse of ParseColor; fully opaque colours drop the
// alpha byte.
func FormatColor(c colorful.Color, alpha float64) string {
	hex := c.Clamped().Hex()
	if alpha >= 1 {
		return hex
	}
	a := uint8(math.Round(math.Max(0, alpha) * 255))
	return fmt.Sprintf("%s%02x", hex, a)
}

// ColorCurve blends colour channels between stops. It always holds the
// outer stops beyond its frame range.
type ColorCurve struct {
	index  *Curve
	colors []colorful.Color
	alphas []float64
}

// NewColorCurve builds a colour blend through (frames[i], colors[i]). Only
// the easing of opts is honoured.
func NewColorCurve(frames []float64, colors []string, opts ...CurveOption) (*ColorCurve, error) {
	if len(frames) != len(colors) {
		return nil, config.Invalid("colour curve", "%d frames but %d colours", len(frames), len(colors))
	}
	steps := make([]float64, len(frames))
	cc := &ColorCurve{
		colors: make([]colorful.Color, len(colors)),
		alphas: make([]float64, len(colors)),
	}
	for i, s := range colors {
		c, a, err := ParseColor(s)
		if err != nil {
			return nil, config.Invalid("colour curve", "%v", err)
		}
		cc.colors[i], cc.alphas[i] = c, a
		steps[i] = float64(i)
	}

	index, err := NewCurve(frames, steps, append(opts[:len(opts):len(opts)], Clamp())...)
	if err != nil {
		return nil, err
	}
	cc.index = index
	return cc, nil
}

// At returns the blended colour and alpha.
func (c *ColorCurve) At(frame float64) (colorful.Color, float64) {
	pos := c.index.At(frame)
	if math.IsNaN(pos) {
		return c.colors[0], c.alphas[0]
	}
	i := int(math.Floor(pos))
	if i >= len(c.colors)-1 {
		last := len(c.colors) - 1
		return c.colors[last], c.alphas[last]
	}
	if i < 0 {
		return c.colors[0], c.alphas[0]
	}
	t := pos - float64(i)
	return c.colors[i].BlendRgb(c.colors[i+1], t), lerp(c.alphas[i], c.alphas[i+1], t)
}

// Hex returns At formatted as a hex string.
func (c *ColorCurve) Hex(frame float64) string {
	col, a := c.At(frame)
	return FormatColor(col, a)
}
