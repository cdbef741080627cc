package scenes

import (
	"math"

	"github.com/ivlev/qrpromo/internal/anim"
	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/theme"
)

var (
	problemFirstLine  = scene.Window{From: 0, Duration: 60}
	problemSecondLine = scene.Window{From: 30, Duration: 60}
)

// Problem types out the viewer's hesitation under a thinking face.
type Problem struct{ base }

func NewProblem(th theme.Theme, frames int) *Problem {
	return &Problem{base{name: NameProblem, frames: frames, th: th}}
}

func (s *Problem) Render(frame int, ctx scene.Context) scene.Node {
	th := s.th
	icon := anim.Spring(frame, ctx.FPS, anim.Bouncy)

	emoji := mapItem(textItem("icon", "🤔", th.Font(120, 400, th.TextPrimary), 0),
		func(n scene.Node) scene.Node { return n.Scaled(math.Max(0, icon)) })

	first := th.Font(42, 400, th.TextPrimary)
	first.LineHeight = 1.4
	items := []scene.Item{
		emoji,
		windowed(problemFirstLine, frame, func(local int) scene.Item {
			return typewriterItem("line-1", "支援したいけど...", local, 3, true, first, 48)
		}),
		windowed(problemSecondLine, frame, func(local int) scene.Item {
			return typewriterItem("line-2", "手続きが面倒...", local, 3, true, th.Bold(48, th.Brand), 24)
		}),
	}

	canvas := ctx.Canvas()
	content := scene.VStack(canvas.Inset(60), items...)
	return scene.Group(s.name, canvas, append([]scene.Node{background(th, ctx)}, content...)...)
}

// windowed shows the item built for the window's local frame while the window
// is open. Outside it the slot keeps its size but draws nothing, so the rest
// of the column does not move when the window opens.
func windowed(w scene.Window, frame int, build func(local int) scene.Item) scene.Item {
	local, ok := w.Local(frame)
	it := build(local)
	if !ok {
		it.Build = func(b scene.Box) scene.Node { return scene.Group("hidden", b) }
	}
	return it
}
