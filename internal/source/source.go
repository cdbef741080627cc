// Package source supplies the images behind the asset handles used in draw
// trees (the logo and the character).
package source

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// ErrAssetNotFound is returned when no image exists for a handle.
var ErrAssetNotFound = errors.New("asset not found")

// Source resolves an asset handle to a decoded image. Implementations must
// be safe for concurrent use.
type Source interface {
	Image(handle string) (image.Image, error)
}

// MemorySource serves images registered in memory.
type MemorySource struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

func NewMemorySource() *MemorySource {
	return &MemorySource{images: make(map[string]image.Image)}
}

// Add registers img under handle, replacing any previous image.
func (s *MemorySource) Add(handle string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[handle] = img
}

func (s *MemorySource) Image(handle string) (image.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, handle)
	}
	return img, nil
}

// Placeholder falls back to a flat tile when the wrapped source has no image
// for a handle. Other errors pass through.
type Placeholder struct {
	Source Source
	Color  color.Color
	Size   int
}

func (p Placeholder) Image(handle string) (image.Image, error) {
	if p.Source != nil {
		img, err := p.Source.Image(handle)
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, ErrAssetNotFound) {
			return nil, err
		}
	}

	size := p.Size
	if size <= 0 {
		size = 64
	}
	c := p.Color
	if c == nil {
		c = color.RGBA{R: 0x8b, G: 0x94, B: 0x9e, A: 0xff}
	}
	tile := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(tile, tile.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return tile, nil
}
