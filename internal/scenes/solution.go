package scenes

import (
	"math"

	"github.com/ivlev/qrpromo/internal/anim"
	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/theme"
)

var (
	solutionMessage = scene.Window{From: 15, Duration: 105}
	solutionBadges  = scene.Window{From: 45, Duration: 75}

	shortQRCard = qrCard{
		Size: 280, GridSize: 200, Border: 4, Radius: 16,
		GlowInset: 20, GlowBlur: 20,
		GlowPeriod: 60, GlowMin: 0.3, GlowMax: 0.7,
	}
)

// Solution pops the QR code in, types the pitch and brings in the payment
// badges.
type Solution struct{ base }

func NewSolution(th theme.Theme, frames int) *Solution {
	return &Solution{base{name: NameSolution, frames: frames, th: th}}
}

func (s *Solution) Render(frame int, ctx scene.Context) scene.Node {
	th := s.th
	qr := anim.Spring(frame, ctx.FPS, anim.Bouncy)

	card := mapItem(shortQRCard.item(th, "qr", PatternGrid(th.BgPrimary, 4, 2), frame, 0),
		func(n scene.Node) scene.Node { return n.Scaled(math.Max(0, qr)) })

	items := []scene.Item{
		card,
		windowed(solutionMessage, frame, func(local int) scene.Item {
			return typewriterItem("message", "スキャンするだけ!", local, 2, false, th.Bold(52, th.TextPrimary), 48)
		}),
		windowed(solutionBadges, frame, func(local int) scene.Item {
			return paymentBadges(th, local, ctx, 32)
		}),
	}

	canvas := ctx.Canvas()
	content := scene.VStack(canvas.Inset(60), items...)
	return scene.Group(s.name, canvas, append([]scene.Node{background(th, ctx)}, content...)...)
}

func paymentBadges(th theme.Theme, frame int, ctx scene.Context, margin float64) scene.Item {
	badges := []scene.Item{
		paymentBadgeItem(th, "paypay", "PayPay", th.PayPay, frame, 0, ctx, 0),
		paymentBadgeItem(th, "rakuten-pay", "楽天ペイ", th.RakutenPay, frame, 10, ctx, 32),
	}
	w, h := scene.StackSize(false, badges...)
	return scene.Block(w, h, margin, func(b scene.Box) scene.Node {
		return scene.Group("payments", b, scene.HStack(b, badges...)...)
	})
}
