package promo

import "github.com/ivlev/adreel/internal/scene"

// Layout is the canvas a scene is laid out for. Sizes in the scenes are
// designed for a 1080 pixel short side and scaled by S.
type Layout struct {
	Width    int
	Height   int
	Vertical bool
}

func (l Layout) W() float64  { return float64(l.Width) }
func (l Layout) H() float64  { return float64(l.Height) }
func (l Layout) CX() float64 { return l.W() / 2 }
func (l Layout) CY() float64 { return l.H() / 2 }

// S is the scale from design pixels to canvas pixels.
func (l Layout) S() float64 {
	return float64(min(l.Width, l.Height)) / 1080
}

// pick returns landscape or vertical depending on the orientation.
func (l Layout) pick(landscape, vertical float64) float64 {
	if l.Vertical {
		return vertical
	}
	return landscape
}

// canvas is the full-frame group every scene draws into.
func (l Layout) canvas(id string, children ...*scene.Node) *scene.Node {
	return scene.Group(0, 0, l.W(), l.H(), children...).WithID(id)
}

// backdrop is a full-frame rect.
func (l Layout) backdrop(p scene.Paint) *scene.Node {
	return scene.Rect(0, 0, l.W(), l.H()).WithFill(p)
}

// label is a centred text line.
func label(x, y float64, text string, size float64, color string) *scene.Node {
	return scene.Text(x, y, text, size).WithAlign(scene.AlignCenter).WithFill(scene.Solid(color))
}

// layersIcon is the product mark: three stacked chevrons in a 24 unit box
// drawn at size pixels.
func layersIcon(x, y, size float64) *scene.Node {
	u := size / 24
	pt := func(px, py float64) scene.Vec { return scene.Vec{X: px * u, Y: py * u} }
	w := 2 * u
	return scene.Group(x, y, size, size,
		scene.Path(0, 0, White, w, pt(12, 2), pt(2, 7), pt(12, 12), pt(22, 7), pt(12, 2)),
		scene.Path(0, 0, White, w, pt(2, 17), pt(12, 22), pt(22, 17)),
		scene.Path(0, 0, White, w, pt(2, 12), pt(12, 17), pt(22, 12)),
	)
}

// logoMark is the gradient tile with the layers icon inside.
func logoMark(x, y, size float64) *scene.Node {
	icon := size * 0.6
	return scene.Group(x, y, size, size,
		scene.Rect(0, 0, size, size).
			WithRadius(size*0.24).
			WithFill(scene.Linear(135, Primary, Accent)),
		layersIcon((size-icon)/2, (size-icon)/2, icon),
	)
}
