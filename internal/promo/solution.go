package promo

import (
	"fmt"
	"math"

	"github.com/ivlev/adreel/internal/anim"
	"github.com/ivlev/adreel/internal/scene"
)

var features = []struct {
	icon  string
	title string
	desc  string
}{
	{"🎯", "E-E-A-T Audit", "Analiza tu autoridad y confianza"},
	{"📊", "Schema Scan", "Optimiza datos estructurados"},
	{"🧠", "Semantic Analysis", "Compara con competidores"},
	{"⚡", "LLM Optimization", "Mejora citabilidad en IAs"},
}

// Solution pitches the product with four staggered feature cards.
func Solution(l Layout, fps int) (scene.Scene, error) {
	b := anim.NewBuilder("solution", fps)
	fadeIn := b.Curve("fade-in", []float64{0, 20}, []float64{0, 1}, anim.ClampRight())
	cards := make([]*anim.Spring, len(features))
	for i := range features {
		cards[i] = b.Spring(fmt.Sprintf("card-%d", i+1),
			anim.SpringConfig{Damping: 12, Stiffness: 80},
			anim.Delay(30+float64(i)*12))
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	s := l.S()
	pad := l.pick(100, 60) * s
	cols := 2
	if l.Vertical {
		cols = 1
	}
	return scene.Func("solution", func(f scene.Frame) *scene.Node {
		t := f.F()

		orbs := scene.Group(0, 0, l.W(), l.H(),
			scene.Circle(l.W()*0.1+200*s+math.Sin(t*0.03)*30*s, l.H()*0.2+200*s+math.Cos(t*0.02)*20*s, 200*s).
				WithFill(scene.Radial(alpha(Primary, "30"), alpha(Primary, "00"))),
			scene.Circle(l.W()*0.85-175*s+math.Cos(t*0.025)*25*s, l.H()*0.85-175*s+math.Sin(t*0.035)*25*s, 175*s).
				WithFill(scene.Radial(alpha(Accent, "25"), alpha(Accent, "00"))),
		).WithID("orbs")

		headline := l.pick(72, 56) * s
		header := scene.Group(0, pad, l.W(), 200*s,
			label(l.CX(), 0, "LA SOLUCIÓN", 24*s, Primary),
			label(l.CX(), 44*s, "Optimiza para", headline, White),
			label(l.CX(), 44*s+headline*1.1, "ChatGPT, Perplexity, Claude", headline, Accent),
		).WithID("header").WithOpacity(fadeIn.At(t))

		gap := 40 * s
		gridW := math.Min(1400*s, l.W()-2*pad)
		cardW := (gridW - float64(cols-1)*gap) / float64(cols)
		cardH := 160 * s
		left := (l.W() - gridW) / 2
		top := pad + 44*s + headline*2.2 + 60*s
		grid := scene.Group(0, 0, l.W(), l.H()).WithID("features")
		for i, ft := range features {
			p := cards[i].At(t)
			x := left + float64(i%cols)*(cardW+gap)
			y := top + float64(i/cols)*(cardH+gap) + (1-p)*30*s
			grid.Add(scene.Group(x, y, cardW, cardH,
				scene.Rect(0, 0, cardW, cardH).
					WithRadius(24*s).
					WithFill(scene.Linear(135, Dark, Darker)).
					WithStroke(alpha(Primary, "40"), 1),
				scene.Rect(40*s, 40*s, 80*s, 80*s).
					WithRadius(20*s).
					WithFill(scene.Linear(135, alpha(Primary, "30"), alpha(Accent, "20"))),
				label(80*s, 60*s, ft.icon, 40*s, White),
				scene.Text(150*s, 44*s, ft.title, 28*s).WithFill(scene.Solid(White)),
				scene.Text(150*s, 84*s, ft.desc, 20*s).WithFill(scene.Solid(Gray)),
			).WithID(fmt.Sprintf("feature-%d", i+1)).WithScale(p).WithOpacity(clamp01(p)))
		}

		return l.canvas("solution-scene",
			l.backdrop(scene.Linear(135, Dark, Darker)),
			orbs,
			header,
			grid,
		)
	}), nil
}
