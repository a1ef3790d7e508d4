package promo

import (
	"fmt"
	"math"

	"github.com/ivlev/adreel/internal/anim"
	"github.com/ivlev/adreel/internal/scene"
)

type stat struct {
	value string
	text  string
	color string
	from  string
	to    string
}

// Problem states the problem and pops in three stat cards.
func Problem(l Layout, fps int) (scene.Scene, error) {
	b := anim.NewBuilder("problem", fps)
	fadeIn := b.Curve("fade-in", []float64{0, 20}, []float64{0, 1}, anim.ClampRight())
	percentage := b.Curve("percentage", []float64{20, 80}, []float64{0, 70}, anim.Clamp())
	cards := make([]*anim.Spring, 3)
	for i, delay := range []float64{20, 35, 50} {
		cards[i] = b.Spring(fmt.Sprintf("stat-%d", i+1), anim.SpringConfig{Damping: 15}, anim.Delay(delay))
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	s := l.S()
	pad := l.pick(100, 80) * s
	return scene.Func("problem", func(f scene.Frame) *scene.Node {
		t := f.F()
		pct := math.Min(math.Floor(percentage.At(t)), 70)
		stats := []stat{
			{fmt.Sprintf("%d%%", int(pct)), "de usuarios usan IA para buscar", Primary, alpha(Primary, "20"), alpha(Accent, "10")},
			{"0", "herramientas de optimización para LLMs", White, alpha(Accent, "20"), alpha(Primary, "10")},
			{"∞", "oportunidades perdidas cada día", Danger, alpha(Primary, "20"), alpha(Accent, "10")},
		}

		title := scene.Group(pad, pad, l.W()-2*pad, 200*s,
			scene.Text(0, 0, "EL PROBLEMA", 24*s).WithFill(scene.Solid(Accent)),
			scene.Text(0, 44*s, "El SEO tradicional ya no es suficiente", l.pick(64, 48)*s).
				WithFill(scene.Solid(White)),
		).WithID("title").WithOpacity(fadeIn.At(t))

		grid := scene.Group(0, 0, l.W(), l.H()).WithID("stats")
		top := pad + 280*s
		gap := 60 * s
		cardW := (l.W() - 2*pad - 2*gap) / 3
		cardH := 260 * s
		if l.Vertical {
			cardW = l.W() - 2*pad
			gap = 40 * s
		}
		for i, st := range stats {
			x, y := pad+float64(i)*(cardW+gap), top
			if l.Vertical {
				x, y = pad, top+float64(i)*(cardH+gap)
			}
			p := cards[i].At(t)
			grid.Add(scene.Group(x, y, cardW, cardH,
				scene.Rect(0, 0, cardW, cardH).
					WithRadius(24*s).
					WithFill(scene.Linear(135, st.from, st.to)).
					WithStroke(alpha(Primary, "30"), 1),
				scene.Text(50*s, 50*s, st.value, 80*s).WithFill(scene.Solid(st.color)),
				scene.Text(50*s, 150*s, st.text, 24*s).WithFill(scene.Solid(Gray)),
			).WithID(fmt.Sprintf("stat-%d", i+1)).WithScale(p).WithOpacity(clamp01(p)))
		}

		return l.canvas("problem-scene",
			l.backdrop(scene.Linear(180, Darker, Dark)),
			scene.Circle(l.W()+200*s-400*s, -200*s+400*s, 400*s).
				WithFill(scene.Radial(alpha(Accent, "15"), alpha(Accent, "00"))),
			title,
			grid,
		)
	}), nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
