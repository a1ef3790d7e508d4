package scene

// Kind is the shape a node draws.
type Kind string

const (
	KindGroup   Kind = "group"
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindText    Kind = "text"
	KindPath    Kind = "path"
	KindQR      Kind = "qr"
)

type PaintKind string

const (
	PaintSolid  PaintKind = "solid"
	PaintLinear PaintKind = "linear"
	PaintRadial PaintKind = "radial"
)

// Paint fills a shape. Colours are "#rrggbb" or "#rrggbbaa".
// Angle follows CSS: 90 runs left to right, 180 top to bottom.
type Paint struct {
	Kind  PaintKind `json:"kind"`
	From  string    `json:"from"`
	To    string    `json:"to,omitempty"`
	Angle float64   `json:"angle,omitempty"`
}

func Solid(color string) Paint { return Paint{Kind: PaintSolid, From: color} }

func Linear(angle float64, from, to string) Paint {
	return Paint{Kind: PaintLinear, From: from, To: to, Angle: angle}
}

// Radial fades from the centre colour to the edge colour.
func Radial(from, to string) Paint {
	return Paint{Kind: PaintRadial, From: from, To: to}
}

type Stroke struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one element of the visual tree handed to the host.
//
// X and Y are relative to the parent. Scale and Rotate (degrees) pivot
// around the centre of the node's W x H box. Opacity multiplies down the
// tree. Text nodes anchor at (X, Y) according to Align, with Y at the top of
// the line.
type Node struct {
	Kind     Kind    `json:"kind"`
	ID       string  `json:"id,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w,omitempty"`
	H        float64 `json:"h,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Fill     *Paint  `json:"fill,omitempty"`
	Stroke   *Stroke `json:"stroke,omitempty"`
	Opacity  float64 `json:"opacity"`
	Scale    float64 `json:"scale"`
	Rotate   float64 `json:"rotate,omitempty"`
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
	Align    Align   `json:"align,omitempty"`
	Points   []Vec   `json:"points,omitempty"`
	Data     string  `json:"data,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

func newNode(kind Kind, x, y, w, h float64) *Node {
	return &Node{Kind: kind, X: x, Y: y, W: w, H: h, Opacity: 1, Scale: 1}
}

func Group(x, y, w, h float64, children ...*Node) *Node {
	n := newNode(KindGroup, x, y, w, h)
	return n.Add(children...)
}

func Rect(x, y, w, h float64) *Node { return newNode(KindRect, x, y, w, h) }

// Ellipse is inscribed in the x, y, w, h box.
func Ellipse(x, y, w, h float64) *Node { return newNode(KindEllipse, x, y, w, h) }

// Circle is an ellipse centred on (cx, cy).
func Circle(cx, cy, r float64) *Node { return Ellipse(cx-r, cy-r, 2*r, 2*r) }

func Text(x, y float64, text string, size float64) *Node {
	n := newNode(KindText, x, y, 0, size)
	n.Text = text
	n.FontSize = size
	n.Align = AlignLeft
	return n
}

// Path is a stroked polyline in the node's own coordinates.
func Path(x, y float64, color string, width float64, points ...Vec) *Node {
	n := newNode(KindPath, x, y, 0, 0)
	n.Points = points
	n.Stroke = &Stroke{Color: color, Width: width}
	return n
}

// QR draws data as a QR code filling a size x size box.
func QR(x, y, size float64, data string) *Node {
	n := newNode(KindQR, x, y, size, size)
	n.Data = data
	return n
}

func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func (n *Node) WithID(id string) *Node { n.ID = id; return n }

func (n *Node) WithFill(p Paint) *Node { n.Fill = &p; return n }

func (n *Node) WithStroke(color string, width float64) *Node {
	n.Stroke = &Stroke{Color: color, Width: width}
	return n
}

func (n *Node) WithRadius(r float64) *Node { n.Radius = r; return n }

func (n *Node) WithOpacity(o float64) *Node { n.Opacity = o; return n }

func (n *Node) WithScale(s float64) *Node { n.Scale = s; return n }

func (n *Node) WithRotate(deg float64) *Node { n.Rotate = deg; return n }

func (n *Node) WithAlign(a Align) *Node { n.Align = a; return n }

// Find returns the first node with the given id, depth first.
func Find(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, c := range root.Children {
		if found := Find(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every node depth first, parents before children.
func Walk(root *Node, fn func(*Node)) {
	if root == nil {
		return
	}
	fn(root)
	for _, c := range root.Children {
		Walk(c, fn)
	}
}
