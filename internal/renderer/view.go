package renderer

import (
	"image"
	"math"

	"github.com/ivlev/qrpromo/internal/scene"
)

// View maps node coordinates to canvas pixels: a uniform zoom followed by a
// pan, accumulated down the draw tree.
type View struct {
	X    float64 // Pan X in pixels
	Y    float64 // Pan Y in pixels
	Zoom float64 // 1.0 = no zoom
}

// IdentityView leaves coordinates unchanged.
func IdentityView() View {
	return View{Zoom: 1}
}

// Enter returns the view for a node's children: the node's transform is
// applied about the centre of its box, then the parent view.
func (v View) Enter(box scene.Box, t scene.Transform) View {
	cx, cy := box.Center()
	local := View{
		X:    cx - t.Scale*cx + t.TranslateX,
		Y:    cy - t.Scale*cy + t.TranslateY,
		Zoom: t.Scale,
	}
	return View{
		X:    v.Zoom*local.X + v.X,
		Y:    v.Zoom*local.Y + v.Y,
		Zoom: v.Zoom * local.Zoom,
	}
}

// Point maps a node-space point to the canvas.
func (v View) Point(x, y float64) (float64, float64) {
	return v.Zoom*x + v.X, v.Zoom*y + v.Y
}

// Box maps a node-space box to the canvas.
func (v View) Box(b scene.Box) scene.Box {
	x, y := v.Point(b.X, b.Y)
	return scene.Box{X: x, Y: y, W: b.W * v.Zoom, H: b.H * v.Zoom}
}

// Length scales a node-space length.
func (v View) Length(l float64) float64 {
	return l * v.Zoom
}

// pixelRect is the smallest integer rectangle covering b.
func pixelRect(b scene.Box) image.Rectangle {
	return image.Rect(
		int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.X+b.W)), int(math.Ceil(b.Y+b.H)),
	)
}
