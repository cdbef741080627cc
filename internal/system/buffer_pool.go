package system

import (
	"image"
	"sync"
	"sync/atomic"
)

// ImagePool переиспользует кадры *image.RGBA одного размера, чтобы не
// нагружать GC при рендере сотен кадров.
type ImagePool struct {
	pools sync.Map // image.Point -> *sync.Pool

	allocs atomic.Int64
	gets   atomic.Int64
}

var globalPool = &ImagePool{}

// GetImage берет чистый (прозрачный) кадр из общего пула.
func GetImage(width, height int) *image.RGBA {
	return globalPool.Get(width, height)
}

// PutImage возвращает кадр в общий пул.
func PutImage(img *image.RGBA) {
	globalPool.Put(img)
}

// Get returns a zeroed image of the given size.
func (p *ImagePool) Get(width, height int) *image.RGBA {
	p.gets.Add(1)
	pool := p.pool(image.Pt(width, height))
	img := pool.Get().(*image.RGBA)
	clear(img.Pix)
	return img
}

// Put returns img to the pool of its size. Images with a non-zero origin
// are dropped.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil || img.Rect.Min != (image.Point{}) {
		return
	}
	if v, ok := p.pools.Load(img.Rect.Max); ok {
		v.(*sync.Pool).Put(img)
	}
}

// Allocations is the number of images created because the pool was empty.
func (p *ImagePool) Allocations() int64 { return p.allocs.Load() }

// Gets is the number of Get calls.
func (p *ImagePool) Gets() int64 { return p.gets.Load() }

func (p *ImagePool) pool(size image.Point) *sync.Pool {
	if v, ok := p.pools.Load(size); ok {
		return v.(*sync.Pool)
	}
	v, _ := p.pools.LoadOrStore(size, &sync.Pool{
		New: func() any {
			p.allocs.Add(1)
			return image.NewRGBA(image.Rectangle{Max: size})
		},
	})
	return v.(*sync.Pool)
}
