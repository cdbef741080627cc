package scenes

import (
	"math"

	"github.com/ivlev/qrpromo/internal/anim"
	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/theme"
)

const (
	horizontalCTAFadeFrames = 30
	donationQRSize          = 200
)

var horizontalQRCard = qrCard{
	Size: 350, GridSize: 260, Border: 6, Radius: 24,
	GlowInset: 40, GlowBlur: 40,
	GlowPeriod: 40, GlowMin: 0.4, GlowMax: 0.8,
}

// HorizontalProblem states the problem in two lines for the landscape cut.
type HorizontalProblem struct{ base }

func NewHorizontalProblem(th theme.Theme, frames int) *HorizontalProblem {
	return &HorizontalProblem{base{name: NameHorizontalProblem, frames: frames, th: th}}
}

func (s *HorizontalProblem) Render(frame int, ctx scene.Context) scene.Node {
	th := s.th
	first := anim.Spring(frame, ctx.FPS, anim.NoBounce)
	second := math.Max(0, anim.Spring(frame-30, ctx.FPS, anim.NoBounce))

	emoji := textItem("icon", "🤔", th.Font(120, 400, th.TextPrimary), 0)
	emoji = mapItem(emoji, func(n scene.Node) scene.Node { return n.Scaled(first) })

	line1 := mapItem(textItem("line-1", "NPOを支援したい...", th.Bold(72, th.TextPrimary), 40),
		func(n scene.Node) scene.Node { return riseIn(n, first, 30) })
	line2 := mapItem(textItem("line-2", "でも手続きが面倒...", th.Bold(64, th.Brand), 24),
		func(n scene.Node) scene.Node { return riseIn(n, second, 30) })

	canvas := ctx.Canvas()
	content := scene.VStack(canvas, emoji, line1, line2)
	return scene.Group(s.name, canvas, append([]scene.Node{background(th, ctx)}, content...)...)
}

// HorizontalSolution puts the QR card next to the "just scan" message.
type HorizontalSolution struct{ base }

func NewHorizontalSolution(th theme.Theme, frames int) *HorizontalSolution {
	return &HorizontalSolution{base{name: NameHorizontalSolution, frames: frames, th: th}}
}

func (s *HorizontalSolution) Render(frame int, ctx scene.Context) scene.Node {
	th := s.th
	qr := anim.Spring(frame, ctx.FPS, anim.Bouncy)
	text := anim.Spring(frame-20, ctx.FPS, anim.NoBounce)

	card := mapItem(horizontalQRCard.item(th, "qr", PatternGrid(th.BgPrimary, 6, 4), frame, 0),
		func(n scene.Node) scene.Node { return n.Scaled(math.Max(0, qr)) })

	plain := leftAligned(th.Bold(80, th.TextPrimary))
	plain.LineHeight = 1.3
	accent := leftAligned(th.Bold(96, th.Brand))
	accent.LineHeight = 1.3
	message := column("message", []scene.Item{
		textItem("message-1", "QRコードを", plain, 0),
		textItem("message-2", "スキャン", accent, 0),
		textItem("message-3", "するだけ！", plain, 0),
	}, 100)
	message = mapItem(message, func(n scene.Node) scene.Node { return slideIn(n, text, 50) })

	canvas := ctx.Canvas()
	content := scene.HStack(scene.Box{X: 100, W: canvas.W - 200, H: canvas.H}, card, message)
	return scene.Group(s.name, canvas, append([]scene.Node{background(th, ctx)}, content...)...)
}

// HorizontalCTA closes the landscape cut. When a donation grid is set it is
// shown under the payment badges.
type HorizontalCTA struct {
	base
	donation *scene.Grid
}

func NewHorizontalCTA(th theme.Theme, frames int, donation *scene.Grid) *HorizontalCTA {
	return &HorizontalCTA{base: base{name: NameHorizontalCTA, frames: frames, th: th}, donation: donation}
}

func (s *HorizontalCTA) Render(frame int, ctx scene.Context) scene.Node {
	th := s.th
	logo := anim.Spring(frame, ctx.FPS, anim.NoBounceFast)
	text := anim.Spring(frame-15, ctx.FPS, anim.NoBounce)
	badges := math.Max(0, anim.Spring(frame-40, ctx.FPS, anim.Bouncy))

	logoBlock := scene.Block(280, 280, 0, func(b scene.Box) scene.Node {
		return glowing(scene.Image("logo", b, th.Logo).Rounded(24), th.Brand.WithAlpha(0.4), 60).Scaled(logo)
	})

	big := leftAligned(th.Bold(72, th.TextPrimary))
	lines := []scene.Item{
		runsItem("headline", []run{
			{"最短", big},
			{"2", leftAligned(th.Bold(120, th.Brand))},
			{"タップで", big},
		}, 1.2, 0),
		textItem("done", "支援完了！", leftAligned(th.Bold(96, th.Brand)), 16),
		mapItem(s.badgeRow(th), func(n scene.Node) scene.Node { return n.Scaled(badges) }),
	}
	if s.donation != nil {
		grid := *s.donation
		lines = append(lines, scene.Block(donationQRSize, donationQRSize, 32, func(b scene.Box) scene.Node {
			b.W = donationQRSize
			return scene.Group("donation-qr", b,
				scene.Rect("donation-qr-card", b, th.White).Rounded(12),
				scene.GridOf("donation-qr-grid", b.Inset(12), grid),
			).Scaled(badges)
		}))
	}
	textBlock := mapItem(column("text", lines, 80), func(n scene.Node) scene.Node { return slideIn(n, text, 50) })

	canvas := ctx.Canvas()
	content := scene.HStack(canvas, logoBlock, textBlock)
	children := append([]scene.Node{background(th, ctx)}, content...)
	return scene.Group(s.name, canvas, children...).Faded(fadeOut(frame, ctx.DurationInFrames, horizontalCTAFadeFrames))
}

func (s *HorizontalCTA) badgeRow(th theme.Theme) scene.Item {
	font := th.Bold(32, th.White)
	row := []scene.Item{
		badgeItem("paypay", "PayPay", th.PayPay, font, 16, 32, 12, 0),
		badgeItem("rakuten-pay", "楽天ペイ", th.RakutenPay, font, 16, 32, 12, 20),
	}
	w, h := scene.StackSize(false, row...)
	return scene.Block(w, h, 40, func(b scene.Box) scene.Node {
		return scene.Group("payments", b, scene.HStack(scene.Box{X: b.X, Y: b.Y, W: w, H: b.H}, row...)...)
	})
}

// column stacks items flush left. Every item is widened to the column so
// left-aligned text starts at the same x.
func column(name string, items []scene.Item, margin float64) scene.Item {
	w, h := scene.StackSize(true, items...)
	for i := range items {
		items[i].W = w
	}
	return scene.Block(w, h, margin, func(b scene.Box) scene.Node {
		return scene.Group(name, b, scene.VStack(b, items...)...)
	})
}

func mapItem(it scene.Item, fn func(scene.Node) scene.Node) scene.Item {
	build := it.Build
	it.Build = func(b scene.Box) scene.Node { return fn(build(b)) }
	return it
}

func leftAligned(f scene.Font) scene.Font {
	f.Align = scene.AlignLeft
	return f
}
