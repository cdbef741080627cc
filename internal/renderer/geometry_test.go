package renderer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivlev/qrpromo/internal/scene"
)

func TestRoundedRect(t *testing.T) {
	assert.Len(t, roundedRect(0, 0, 10, 10, 0), 4)
	assert.Nil(t, roundedRect(0, 0, 0, 10, 2))

	p := roundedRect(0, 0, 40, 20, 100)
	b := p.bounds()
	assert.Equal(t, image.Rect(0, 0, 40, 20), b, "radius is capped at half the short side")
}

func TestClipPolygon(t *testing.T) {
	p := roundedRect(-5, -5, 20, 20, 0)
	c := p.clip(image.Rect(0, 0, 8, 8))
	assert.Equal(t, image.Rect(0, 0, 8, 8), c.bounds())

	assert.Empty(t, roundedRect(20, 20, 5, 5, 0).clip(image.Rect(0, 0, 8, 8)))
}

func TestViewEnter(t *testing.T) {
	v := IdentityView().Enter(scene.Box{W: 100, H: 100}, scene.Transform{Scale: 0.5, Opacity: 1, TranslateX: 10})
	x, y := v.Point(50, 50)
	assert.Equal(t, 60.0, x, "centre stays put, then moves by the translation")
	assert.Equal(t, 50.0, y)

	x, _ = v.Point(0, 0)
	assert.Equal(t, 35.0, x)

	inner := v.Enter(scene.Box{W: 100, H: 100}, scene.Transform{Scale: 2, Opacity: 1})
	assert.Equal(t, 1.0, inner.Zoom)
}
