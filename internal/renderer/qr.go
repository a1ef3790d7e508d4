package renderer

import (
	"sync"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/math/f64"

	"github.com/ivlev/adreel/internal/scene"
)

// qrCache keeps encoded bitmaps; scenes redraw the same code every frame.
type qrCache struct {
	mu      sync.Mutex
	bitmaps map[string][][]bool
}

func newQRCache() *qrCache {
	return &qrCache{bitmaps: make(map[string][][]bool)}
}

func (q *qrCache) bitmap(data string) ([][]bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if bm, ok := q.bitmaps[data]; ok {
		return bm, nil
	}
	code, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	bm := code.Bitmap()
	q.bitmaps[data] = bm
	return bm, nil
}

// code draws the dark modules of a QR code, one rect per horizontal run.
func (c *canvas) code(n *scene.Node, m f64.Aff3, alpha float64) {
	if n.Data == "" || n.W <= 0 {
		return
	}
	bm, err := c.qr.bitmap(n.Data)
	if err != nil {
		c.fail(n, err)
		return
	}
	color := "#000000"
	if n.Fill != nil {
		color = n.Fill.From
	}
	src, err := solid(color, alpha)
	if err != nil {
		c.fail(n, err)
		return
	}

	cell := n.W / float64(len(bm))
	var runs []contour
	for y, row := range bm {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			x0, x1 := float64(start)*cell, float64(x)*cell
			y0, y1 := float64(y)*cell, float64(y+1)*cell
			runs = append(runs, contour{pts: []vec{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}})
		}
	}
	c.fill(m, src, runs...)
}
