package promo

import (
	"math"

	"github.com/ivlev/adreel/internal/anim"
	"github.com/ivlev/adreel/internal/scene"
)

const gridSpacing = 60

// Logo reveals the product mark with a spring and brings in the hook line.
func Logo(l Layout, fps int) (scene.Scene, error) {
	b := anim.NewBuilder("logo", fps)
	scale := b.Spring("scale", anim.SpringConfig{Damping: 12, Stiffness: 100})
	opacity := b.Curve("opacity", []float64{0, 15}, []float64{0, 1}, anim.ClampRight())
	glow := b.Curve("glow", []float64{-1, 1}, []float64{0.3, 0.7})
	hookOpacity := b.Curve("hook-opacity", []float64{30, 45}, []float64{0, 1}, anim.Clamp())
	hookY := b.Curve("hook-y", []float64{30, 50}, []float64{30, 0},
		anim.Clamp(), anim.WithEasing(b.Ease("out-cubic")))
	if err := b.Err(); err != nil {
		return nil, err
	}

	s := l.S()
	return scene.Func("logo", func(f scene.Frame) *scene.Node {
		t := f.F()
		fade := opacity.At(t)

		grid := scene.Group(-l.W()*0.1, -l.H()*0.1, l.W()*1.2, l.H()*1.2).
			WithID("grid").
			WithRotate(t * 0.05).
			WithOpacity(0.5)
		line := alpha(Primary, "15")
		for x := 0.0; x <= l.W()*1.2; x += gridSpacing * s {
			grid.Add(scene.Path(x, 0, line, 1, scene.Vec{}, scene.Vec{Y: l.H() * 1.2}))
		}
		for y := 0.0; y <= l.H()*1.2; y += gridSpacing * s {
			grid.Add(scene.Path(0, y, line, 1, scene.Vec{}, scene.Vec{X: l.W() * 1.2}))
		}

		particles := scene.Group(0, 0, l.W(), l.H()).WithID("particles")
		for i := 0; i < 20; i++ {
			fi := float64(i)
			x := math.Sin(fi*0.5)*400 + math.Sin(t*0.02+fi)*50
			y := math.Cos(fi*0.7)*300 + math.Cos(t*0.015+fi*0.5)*30
			size := 2 + math.Sin(fi)*1.5
			color := Primary
			if i%2 == 1 {
				color = Accent
			}
			particles.Add(scene.Circle(l.CX()+x*s, l.CY()+y*s, size*s/2).
				WithFill(scene.Solid(color)).
				WithOpacity((0.3 + math.Sin(t*0.05+fi)*0.2) * fade))
		}

		// glow alpha byte follows the pulse, 0.3..0.7 of 0x63
		pulse := glow.At(math.Sin(t * 0.1))
		glowColor := anim.FormatColor(mustColor(Primary), math.Floor(pulse*99)/255)
		halo := scene.Circle(l.CX(), l.CY(), 250*s).
			WithID("glow").
			WithFill(scene.Radial(glowColor, alpha(Primary, "00"))).
			WithOpacity(fade)

		mark := 100 * s
		word := 90 * s
		rowW := mark + 20*s + 5*0.6*word
		top := l.CY() - (mark+30*s+28*s)/2
		logo := scene.Group(0, 0, l.W(), l.H(),
			logoMark(l.CX()-rowW/2, top, mark),
			scene.Text(l.CX()-rowW/2+mark+20*s, top+(mark-word)/2, "LLMFY", word).
				WithFill(scene.Linear(135, White, GrayLight)),
			label(l.CX(), top+mark+30*s, "AI SEARCH OPTIMIZATION", 28*s, Gray),
		).WithID("logo").WithScale(scale.At(t)).WithOpacity(fade)

		hookSize := 52 * s
		hookBottom := l.H() - l.pick(180, 360)*s
		hook := scene.Group(0, hookBottom-hookSize+hookY.At(t)*s, l.W(), hookSize*2).
			WithID("hook").
			WithOpacity(hookOpacity.At(t))
		if l.Vertical {
			hook.Add(
				label(l.CX(), -hookSize*1.2, "¿Tu web aparece cuando", hookSize, White),
				label(l.CX(), 0, "ChatGPT responde?", hookSize, Primary),
			)
		} else {
			hook.Add(label(l.CX(), 0, "¿Tu web aparece cuando ChatGPT responde?", hookSize, White))
		}

		return l.canvas("logo-scene",
			l.backdrop(scene.Radial(Dark, Darker)),
			grid,
			particles,
			halo,
			logo,
			hook,
		)
	}), nil
}
