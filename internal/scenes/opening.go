package scenes

import (
	"github.com/ivlev/qrpromo/internal/anim"
	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/theme"
)

// Opening shows the logo with the character and the service name.
type Opening struct{ base }

func NewOpening(th theme.Theme, frames int) *Opening {
	return &Opening{base{name: NameOpening, frames: frames, th: th}}
}

func (s *Opening) Render(frame int, ctx scene.Context) scene.Node {
	th := s.th
	title := anim.Spring(frame-30, ctx.FPS, anim.NoBounce)

	heading := []scene.Item{
		textItem("title", "QRチャリティ", th.Bold(56, th.TextPrimary), 0),
		textItem("subtitle", "コネクト", th.Bold(48, th.Brand), 8),
	}
	w, h := scene.StackSize(true, heading...)
	titleBlock := scene.Block(w, h, 48, func(b scene.Box) scene.Node {
		return riseIn(scene.Group("title-block", b, scene.VStack(b, heading...)...), title, 20)
	})

	canvas := ctx.Canvas()
	content := scene.VStack(canvas.Inset(60), logoItem(th, frame, ctx, true, 1), titleBlock)
	return scene.Group(s.name, canvas, append([]scene.Node{background(th, ctx)}, content...)...)
}
