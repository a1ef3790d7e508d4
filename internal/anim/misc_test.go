package anim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/adreel/internal/config"
)

func TestParseColor(t *testing.T) {
	c, a, err := ParseColor("#6366F1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, a)
	assert.Equal(t, "#6366f1", c.Hex())

	_, a, err = ParseColor("#6366f180")
	require.NoError(t, err)
	assert.InDelta(t, 128.0/255, a, 1e-12)

	_, _, err = ParseColor("indigo")
	assert.Error(t, err)
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, s := range []string{"#0f0d1a", "#a855f740", "#ffffff00"} {
		c, a, err := ParseColor(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatColor(c, a))
	}
}

func TestColorCurve(t *testing.T) {
	cc, err := NewColorCurve([]float64{0, 10}, []string{"#000000", "#ffffff80"})
	require.NoError(t, err)

	assert.Equal(t, "#000000", cc.Hex(-3))
	assert.Equal(t, "#000000", cc.Hex(0))
	assert.Equal(t, "#ffffff80", cc.Hex(10))
	assert.Equal(t, "#ffffff80", cc.Hex(99))

	mid, alpha := cc.At(5)
	r, g, b := mid.RGB255()
	assert.InDelta(t, 128, int(r), 1)
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
	assert.InDelta(t, (1+128.0/255)/2, alpha, 1e-9)

	_, err = NewColorCurve([]float64{0, 10}, []string{"#000000", "nope"})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestColorCurveLeavesOptionsAlone(t *testing.T) {
	opts := make([]CurveOption, 1, 4)
	opts[0] = WithEasing(Linear)

	cc, err := NewColorCurve([]float64{0, 10}, []string{"#000000", "#ffffff"}, opts...)
	require.NoError(t, err)
	assert.Nil(t, opts[:2][1])
	assert.Equal(t, "#000000", cc.Hex(math.NaN()))
}

func TestNoiseIsStable(t *testing.T) {
	seen := map[float64]bool{}
	for i := 0; i < 100; i++ {
		v := Noise(42, i)
		assert.Equal(t, v, Noise(42, i))
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
		seen[v] = true
	}
	assert.Greater(t, len(seen), 95)
	assert.NotEqual(t, Noise(1, 2), Noise(2, 1))
	assert.Equal(t, Random(7), Random(7))
}

func TestBuilderKeepsFirstError(t *testing.T) {
	b := NewBuilder("logo", 30)
	ok := b.Curve("opacity", []float64{0, 15}, []float64{0, 1}, ClampRight())
	bad := b.Curve("hookY", []float64{50, 30}, []float64{30, 0})
	b.Spring("scale", SpringConfig{Damping: -1})

	require.Error(t, b.Err())
	assert.Contains(t, b.Err().Error(), "logo/hookY")
	assert.ErrorIs(t, b.Err(), config.ErrInvalid)
	assert.Equal(t, 1.0, ok.At(20))
	assert.Equal(t, 0.0, bad.At(40))
}

func TestBuilderEase(t *testing.T) {
	b := NewBuilder("logo", 30)
	e := b.Ease("out-cubic")
	require.NoError(t, b.Err())
	assert.InDelta(t, Out(Cubic)(0.3), e(0.3), 1e-12)

	fallback := b.Ease("wobble")
	assert.ErrorIs(t, b.Err(), config.ErrInvalid)
	assert.Contains(t, b.Err().Error(), "logo/easing")
	assert.Equal(t, 0.3, fallback(0.3))
}
