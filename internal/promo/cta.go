package promo

import (
	"math"

	"github.com/ivlev/adreel/internal/anim"
	"github.com/ivlev/adreel/internal/scene"
)

// ProductURL is encoded in the QR code of the closing scene.
const ProductURL = "https://llmfy.ai"

// CTA closes the video with the headline, a pulsing button and confetti.
func CTA(l Layout, fps int) (scene.Scene, error) {
	b := anim.NewBuilder("cta", fps)
	scaleIn := b.Spring("scale", anim.SpringConfig{Damping: 12, Stiffness: 100})
	pulse := b.Curve("pulse", []float64{-1, 1}, []float64{1, 1.05})
	qr := b.Curve("qr", []float64{45, 65}, []float64{0, 1}, anim.Clamp())
	if err := b.Err(); err != nil {
		return nil, err
	}

	s := l.S()
	confettiColors := []string{Primary, Accent, PrimaryLight}
	// sizes are fixed per particle so the confetti does not flicker
	sizes := make([]float64, 30)
	for i := range sizes {
		sizes[i] = 8 + anim.Random(i)*8
	}

	return scene.Func("cta", func(f scene.Frame) *scene.Node {
		t := f.F()

		confetti := scene.Group(0, 0, l.W(), l.H()).WithID("confetti")
		wrap := l.H() + 120*s
		for i, size := range sizes {
			fi := float64(i)
			x := fi / float64(len(sizes)) * l.W()
			y := math.Mod((-50+t*3+math.Sin(fi*2)*100)*s, wrap) - 100*s
			d := size * s
			var p *scene.Node
			if i%2 == 0 {
				p = scene.Ellipse(x, y, d, d)
			} else {
				p = scene.Rect(x, y, d, d).WithRadius(2 * s)
			}
			confetti.Add(p.
				WithFill(scene.Solid(confettiColors[i%3])).
				WithRotate(t*2 + fi*30).
				WithOpacity(0.6))
		}

		headline := l.pick(80, 64) * s
		btnW, btnH := l.pick(640, 600)*s, 96*s
		y := l.CY() - 250*s
		content := scene.Group(0, 0, l.W(), l.H(),
			label(l.CX(), y, "Domina el SEO del futuro", headline, White),
			label(l.CX(), y+headline*1.1+30*s, "Prueba gratis 7 días • Cancela cuando quieras", l.pick(32, 26)*s, Gray),
			scene.Group(l.CX()-btnW/2, y+headline*1.1+122*s, btnW, btnH,
				scene.Rect(0, 0, btnW, btnH).
					WithRadius(20*s).
					WithFill(scene.Linear(135, Primary, Accent)),
				scene.Text(60*s, 30*s, "Empieza gratis en llmfy.ai", 32*s).WithFill(scene.Solid(White)),
				scene.Path(btnW-92*s, btnH/2, White, 3*s,
					scene.Vec{X: 0}, scene.Vec{X: 28 * s}),
				scene.Path(btnW-92*s, btnH/2, White, 3*s,
					scene.Vec{X: 16 * s, Y: -12 * s}, scene.Vec{X: 28 * s}, scene.Vec{X: 16 * s, Y: 12 * s}),
			).WithID("button").WithScale(pulse.At(math.Sin(t*0.15))),
			logoMark(l.CX()-90*s, y+headline*1.1+298*s, 50*s),
			scene.Text(l.CX()-24*s, y+headline*1.1+305*s, "LLMFY", 36*s).WithFill(scene.Solid(White)),
		).WithID("content").WithScale(scaleIn.At(t))

		code := 180 * s
		qrX, qrY := l.W()-code-60*s, l.H()-code-60*s
		if l.Vertical {
			qrX = l.CX() - code/2
		}
		return l.canvas("cta-scene",
			l.backdrop(scene.Radial(Dark, Darker)),
			confetti,
			scene.Circle(l.CX(), l.CY(), 400*s).
				WithFill(scene.Radial(alpha(Primary, "40"), alpha(Primary, "00"))),
			content,
			scene.Group(qrX, qrY, code, code,
				scene.Rect(-8*s, -8*s, code+16*s, code+16*s).WithRadius(8*s).WithFill(scene.Solid(White)),
				scene.QR(0, 0, code, ProductURL),
			).WithID("qr").WithOpacity(qr.At(t)),
		)
	}), nil
}
