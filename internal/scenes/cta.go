package scenes

import (
	"math"

	"github.com/ivlev/qrpromo/internal/anim"
	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/theme"
)

const ctaFadeFrames = 20

// CTA closes the short video with the two-tap promise and the logo, then
// fades out.
type CTA struct{ base }

func NewCTA(th theme.Theme, frames int) *CTA {
	return &CTA{base{name: NameCTA, frames: frames, th: th}}
}

func (s *CTA) Render(frame int, ctx scene.Context) scene.Node {
	th := s.th
	text := anim.Spring(frame, ctx.FPS, anim.NoBounce)
	badge := anim.Spring(frame-15, ctx.FPS, anim.Bouncy)
	logo := anim.Spring(frame-30, ctx.FPS, anim.NoBounce)

	big := th.Bold(56, th.TextPrimary)
	headline := []scene.Item{
		runsItem("headline", []run{
			{"最短", big},
			{"2", th.Bold(72, th.Brand)},
			{"タップで", big},
		}, 1.3, 0),
		textItem("done", "支援完了", th.Bold(64, th.Brand), 16),
	}
	hw, hh := scene.StackSize(true, headline...)
	headlineBlock := scene.Block(hw, hh, 0, func(b scene.Box) scene.Node {
		return riseIn(scene.Group("headline-block", b, scene.VStack(b, headline...)...), text, 30)
	})

	// Sparkle and label inside a bordered pill.
	inner := []scene.Item{
		textItem("sparkle", "✨", th.Font(36, 400, th.TextPrimary), 0),
		textItem("no-signup", "登録・ログイン不要", th.Bold(28, th.TextPrimary), 16),
	}
	iw, ih := scene.StackSize(false, inner...)
	pill := scene.Block(iw+64, ih+32, 48, func(b scene.Box) scene.Node {
		bg := scene.Rect("no-signup-bg", b, th.BgSecondary).Rounded(12).Bordered(2, th.Brand)
		children := append([]scene.Node{bg}, scene.HStack(b, inner...)...)
		return scene.Group("no-signup-badge", b, children...).Scaled(math.Max(0, badge))
	})

	logoBlock := scene.Block(180, 180, 64, func(b scene.Box) scene.Node {
		img := glowing(scene.Image("logo", b, th.Logo).Rounded(12), th.Brand.WithAlpha(0.4), 40)
		return img.Scaled(logo).Faded(logo)
	})

	canvas := ctx.Canvas()
	content := scene.VStack(canvas.Inset(60), headlineBlock, pill, logoBlock)
	children := append([]scene.Node{background(th, ctx)}, content...)
	return scene.Group(s.name, canvas, children...).Faded(fadeOut(frame, ctx.DurationInFrames, ctaFadeFrames))
}
