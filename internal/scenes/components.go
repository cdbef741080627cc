package scenes

import (
	"math"

	"github.com/ivlev/qrpromo/internal/anim"
	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/theme"
)

const (
	logoSize      = 300.0
	characterSize = 200.0
	logoGap       = 24.0
)

// logoItem is the brand logo with an optional character popping in under it.
// The whole block scales with a no-bounce spring; the character follows 15
// frames later with a bouncy one.
func logoItem(th theme.Theme, frame int, ctx scene.Context, showCharacter bool, scale float64) scene.Item {
	logoSpring := anim.Spring(frame, ctx.FPS, anim.NoBounceFast)
	characterSpring := anim.Spring(frame-15, ctx.FPS, anim.Bouncy)

	logo := scene.Block(logoSize, logoSize, 0, func(b scene.Box) scene.Node {
		return glowing(scene.Image("logo", b, th.Logo).Rounded(16), th.Brand.WithAlpha(0.4), 40)
	})
	items := []scene.Item{logo}
	if showCharacter {
		items = append(items, scene.Block(characterSize, characterSize, logoGap, func(b scene.Box) scene.Node {
			return scene.Image("character", b, th.Character).Scaled(math.Max(0, characterSpring))
		}))
	}

	w, h := scene.StackSize(true, items...)
	return scene.Block(w, h, 0, func(b scene.Box) scene.Node {
		return scene.Group("logo-block", b, scene.VStack(b, items...)...).Scaled(logoSpring * scale)
	})
}

// glowing puts a soft halo of colour c behind n.
func glowing(n scene.Node, c scene.Color, blur float64) scene.Node {
	halo := scene.Rect(n.Name+"-glow", n.Box, c).Rounded(n.Radius).Blurred(blur)
	return scene.Group(n.Name+"-glowing", n.Box, halo, n)
}

// textItem is a single centred line.
func textItem(name, text string, font scene.Font, margin float64) scene.Item {
	lh := font.LineHeight
	if lh == 0 {
		lh = 1.2
	}
	w := scene.MeasureText(text, font.Size)
	return scene.Block(w, font.Size*lh, margin, func(b scene.Box) scene.Node {
		return scene.Text(name, b, text, font)
	})
}

// typewriterItem reveals text with an optional blinking cursor. The block
// keeps the width of the full line so the layout does not shift while typing.
func typewriterItem(name, text string, frame, charFrames int, showCursor bool, font scene.Font, margin float64) scene.Item {
	st := anim.Typewriter(text, frame, charFrames, showCursor)

	lh := font.LineHeight
	if lh == 0 {
		lh = 1.2
	}
	h := font.Size * lh
	w := scene.MeasureText(text, font.Size) + scene.MeasureText("|", font.Size) + 2

	return scene.Block(w, h, margin, func(b scene.Box) scene.Node {
		left := font
		left.Align = scene.AlignLeft

		parts := []scene.Item{
			scene.Block(scene.MeasureText(st.VisibleText, font.Size), h, 0, func(tb scene.Box) scene.Node {
				return scene.Text(name, tb, st.VisibleText, left)
			}),
		}
		if st.ShowCursor {
			parts = append(parts, scene.Block(scene.MeasureText("|", font.Size), h, 2, func(cb scene.Box) scene.Node {
				return scene.Text(name+"-cursor", cb, "|", left).Faded(st.CursorOpacity)
			}))
		}
		return scene.Group(name+"-line", b, scene.HStack(b, parts...)...)
	})
}

// run is one span of a mixed-style line.
type run struct {
	text string
	font scene.Font
}

// runsItem sets several spans on one line with their bottoms aligned.
func runsItem(name string, runs []run, lineHeight, margin float64) scene.Item {
	w, maxH := 0.0, 0.0
	for _, r := range runs {
		w += scene.MeasureText(r.text, r.font.Size)
		maxH = math.Max(maxH, r.font.Size*lineHeight)
	}

	return scene.Block(w, maxH, margin, func(b scene.Box) scene.Node {
		children := make([]scene.Node, 0, len(runs))
		x := b.X
		for i, r := range runs {
			rw := scene.MeasureText(r.text, r.font.Size)
			rh := r.font.Size * lineHeight
			f := r.font
			f.Align = scene.AlignLeft
			box := scene.Box{X: x, Y: b.Y + maxH - rh, W: rw, H: rh}
			children = append(children, scene.Text(spanName(name, i), box, r.text, f))
			x += rw
		}
		return scene.Group(name, b, children...)
	})
}

func spanName(name string, i int) string {
	return name + "-" + string(rune('a'+i))
}

// badgeItem is a pill-shaped label.
func badgeItem(name, label string, bg scene.Color, font scene.Font, padY, padX, radius, margin float64) scene.Item {
	w := scene.MeasureText(label, font.Size) + 2*padX
	h := font.Size*1.2 + 2*padY
	return scene.Block(w, h, margin, func(b scene.Box) scene.Node {
		return scene.Group(name, b,
			scene.Rect(name+"-bg", b, bg).Rounded(radius),
			scene.Text(name+"-label", b, label, font),
		)
	})
}

// paymentBadgeItem is a badge that bounces in delay frames after its window
// opens.
func paymentBadgeItem(th theme.Theme, name, label string, color scene.Color, frame, delay int, ctx scene.Context, margin float64) scene.Item {
	s := anim.Spring(frame-delay, ctx.FPS, anim.Bouncy)
	badge := badgeItem(name, label, color, th.Bold(28, th.White), 12, 24, 8, margin)
	return mapItem(badge, func(n scene.Node) scene.Node { return n.Scaled(math.Max(0, s)) })
}

// background fills the canvas with the theme colour.
func background(th theme.Theme, ctx scene.Context) scene.Node {
	return scene.Rect("background", ctx.Canvas(), th.BgPrimary)
}

// fadeOut returns the closing opacity over the last frames of a scene.
func fadeOut(frame, duration, frames int) float64 {
	return anim.MustTable(
		[]float64{float64(duration - frames), float64(duration)},
		[]float64{1, 0},
	).At(float64(frame), anim.Clamped())
}

// riseIn offsets a node vertically as a spring settles.
func riseIn(n scene.Node, progress, distance float64) scene.Node {
	return n.Faded(progress).Translated(0, (1-progress)*distance)
}

// slideIn offsets a node horizontally as a spring settles.
func slideIn(n scene.Node, progress, distance float64) scene.Node {
	return n.Faded(progress).Translated((1-progress)*distance, 0)
}
