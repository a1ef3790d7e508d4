package system

import (
	"image"
	"sync"
	"sync/atomic"
)

// ImagePool переиспользует кадры image.RGBA одного размера, чтобы
// параллельный рендер не нагружал GC.
type ImagePool struct {
	mu        sync.RWMutex
	pools     map[image.Point]*sync.Pool
	allocated atomic.Int64
}

func NewImagePool() *ImagePool {
	return &ImagePool{pools: make(map[image.Point]*sync.Pool)}
}

// Get returns a frame of the given size anchored at the origin. Its pixels
// are whatever the previous user left.
func (p *ImagePool) Get(size image.Point) *image.RGBA {
	return p.pool(size).Get().(*image.RGBA)
}

// Put hands a frame back. Frames not anchored at the origin are dropped.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil || img.Rect.Min != (image.Point{}) {
		return
	}
	p.pool(img.Rect.Size()).Put(img)
}

// Allocated counts the frames the pool had to create.
func (p *ImagePool) Allocated() int {
	return int(p.allocated.Load())
}

func (p *ImagePool) pool(size image.Point) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.pools[size]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Double check
	if pool, ok = p.pools[size]; ok {
		return pool
	}
	pool = &sync.Pool{
		New: func() any {
			p.allocated.Add(1)
			return image.NewRGBA(image.Rectangle{Max: size})
		},
	}
	p.pools[size] = pool
	return pool
}
