package promo

import (
	"fmt"
	"math"

	"github.com/ivlev/adreel/internal/anim"
	"github.com/ivlev/adreel/internal/scene"
)

var eeat = []struct {
	label string
	value float64
	color string
}{
	{"Experience", 85, Primary},
	{"Expertise", 92, Accent},
	{"Authority", 78, PrimaryLight},
	{"Trust", 88, AccentLight},
}

const dashboardURL = "https://llmfy.ai/dashboard"

// Dashboard shows the product mockup with a counting score ring and the
// E-E-A-T bars.
func Dashboard(l Layout, fps int) (scene.Scene, error) {
	b := anim.NewBuilder("dashboard", fps)
	zoom := b.Spring("scale", anim.SpringConfig{Damping: 15, Stiffness: 80}, anim.Delay(10))
	score := b.Curve("score", []float64{30, 100}, []float64{0, 92}, anim.Clamp())
	ring := b.Colors("ring", []float64{30, 100}, []string{PrimaryDark, Primary})
	bars := make([]*anim.Curve, len(eeat))
	for i, bar := range eeat {
		start := 40 + float64(i)*10
		bars[i] = b.Curve("bar-"+bar.label, []float64{start, start + 40}, []float64{0, bar.value}, anim.Clamp())
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	s := l.S()
	pad := 80 * s
	return scene.Func("dashboard", func(f scene.Frame) *scene.Node {
		t := f.F()
		value := math.Min(math.Floor(score.At(t)), 92)

		w := math.Min(1600*s, l.W()-2*pad)
		contentH := l.pick(420, 1000) * s
		h := 74*s + contentH
		panel := scene.Group((l.W()-w)/2, (l.H()-h)/2, w, h,
			scene.Rect(0, 0, w, h).
				WithRadius(32*s).
				WithFill(scene.Solid(Dark)).
				WithStroke(alpha(Primary, "30"), 1),
			scene.Rect(0, 0, w, 74*s).WithFill(scene.Solid(Darker)),
			scene.Circle(47*s, 37*s, 7*s).WithFill(scene.Solid(Danger)),
			scene.Circle(73*s, 37*s, 7*s).WithFill(scene.Solid(Warning)),
			scene.Circle(99*s, 37*s, 7*s).WithFill(scene.Solid(Success)),
			scene.Rect(136*s, 18*s, 300*s, 38*s).WithRadius(8*s).WithFill(scene.Solid(Dark)),
			scene.Text(156*s, 29*s, dashboardURL, 16*s).WithFill(scene.Solid(Gray)),
		).WithID("dashboard").WithScale(zoom.At(t))

		// score ring on the left, bars on the right; stacked when vertical
		ringX, ringY := 50*s+w/5, 74*s+contentH/2
		barsX, barsY, barsW := w*0.45, 74*s+50*s, w*0.55-50*s
		if l.Vertical {
			ringX, ringY = w/2, 74*s+220*s
			barsX, barsY, barsW = 50*s, 74*s+480*s, w-100*s
		}

		r := 125 * s
		sweep := value * 3.6
		arc := make([]scene.Vec, 0, 64)
		for i := 0; i <= 60; i++ {
			a := (sweep*float64(i)/60 - 90) * math.Pi / 180
			arc = append(arc, scene.Vec{X: (r - 12*s) * math.Cos(a), Y: (r - 12*s) * math.Sin(a)})
		}
		panel.Add(scene.Group(ringX, ringY, 0, 0,
			label(0, -r-40*s, "LLM Optimization Score", 20*s, Gray),
			scene.Circle(0, 0, r).WithFill(scene.Solid(Darker)),
			scene.Path(0, 0, ring.Hex(t), 24*s, arc...).WithID("score-arc"),
			label(0, -48*s, fmt.Sprint(int(value)), 72*s, White).WithID("score"),
			label(0, 34*s, "/ 100", 18*s, Gray),
		))

		list := scene.Group(barsX, barsY, barsW, contentH,
			scene.Text(0, 0, "E-E-A-T Analysis", 24*s).WithFill(scene.Solid(White)),
		).WithID("eeat")
		for i, bar := range eeat {
			v := bars[i].At(t)
			y := 60*s + float64(i)*70*s
			list.Add(
				scene.Text(0, y, bar.label, 18*s).WithFill(scene.Solid(Gray)),
				scene.Text(barsW, y, fmt.Sprintf("%d%%", int(math.Floor(v))), 18*s).
					WithAlign(scene.AlignRight).
					WithFill(scene.Solid(White)),
				scene.Rect(0, y+28*s, barsW, 12*s).WithRadius(6*s).WithFill(scene.Solid(Darker)),
				scene.Rect(0, y+28*s, barsW*v/100, 12*s).
					WithID("bar-"+bar.label).
					WithRadius(6*s).
					WithFill(scene.Linear(90, bar.color, alpha(bar.color, "80"))),
			)
		}
		panel.Add(list)

		return l.canvas("dashboard-scene",
			l.backdrop(scene.Linear(180, Darker, Dark)),
			l.backdrop(scene.Radial(alpha(Primary, "15"), alpha(Primary, "00"))),
			panel,
		)
	}), nil
}
