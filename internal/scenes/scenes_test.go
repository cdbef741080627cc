package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/theme"
)

func verticalCtx(frames int) scene.Context {
	return scene.Context{FPS: 30, Width: 1080, Height: 1920, DurationInFrames: frames}
}

func horizontalCtx(frames int) scene.Context {
	return scene.Context{FPS: 30, Width: 1920, Height: 1080, DurationInFrames: frames}
}

func find(t *testing.T, root scene.Node, name string) *scene.Node {
	t.Helper()
	n := root.Find(name)
	require.NotNil(t, n, "node %q not found", name)
	return n
}

func TestPatternCells(t *testing.T) {
	count := 0
	for _, c := range Pattern {
		if c {
			count++
		}
	}
	assert.Equal(t, 30, count)

	g := PatternGrid(scene.RGB(0, 0, 0), 4, 2)
	assert.Equal(t, 7, g.Rows())
	g.Cells[0] = false
	assert.True(t, Pattern[0], "grid must not alias the pattern")
}

func TestDonationGrid(t *testing.T) {
	g, err := DonationGrid("https://example.org/donate", scene.RGB(0, 0, 0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, g.Cols, 21)
	assert.Equal(t, g.Cols, g.Rows())
	assert.Len(t, g.Cells, g.Cols*g.Cols)

	_, err = DonationGrid("", scene.RGB(0, 0, 0))
	assert.Error(t, err)
}

func TestOpeningEntrance(t *testing.T) {
	s := NewOpening(theme.Default(), 60)
	ctx := verticalCtx(60)

	root := s.Render(0, ctx)
	assert.Equal(t, 0.0, find(t, root, "logo-block").Transform.Scale)
	title := find(t, root, "title-block")
	assert.Equal(t, 0.0, title.Transform.Opacity)
	assert.Equal(t, 20.0, title.Transform.TranslateY)

	root = s.Render(59, ctx)
	assert.InDelta(t, 1.0, find(t, root, "logo-block").Transform.Scale, 0.05)
	assert.Greater(t, find(t, root, "title-block").Transform.Opacity, 0.8)
	assert.Equal(t, "QRチャリティ", find(t, root, "title").Text)
}

func TestProblemLinesFollowTheirWindows(t *testing.T) {
	s := NewProblem(theme.Default(), 90)
	ctx := verticalCtx(90)

	root := s.Render(0, ctx)
	assert.Equal(t, "", find(t, root, "line-1").Text)
	assert.Nil(t, root.Find("line-2"), "second line opens at frame 30")

	root = s.Render(6, ctx)
	assert.Equal(t, "支援", find(t, root, "line-1").Text)

	root = s.Render(30, ctx)
	assert.Equal(t, "支援したいけど...", find(t, root, "line-1").Text)
	assert.Equal(t, "", find(t, root, "line-2").Text)

	root = s.Render(60, ctx)
	assert.Nil(t, root.Find("line-1"), "first line closes after 60 frames")
	assert.Equal(t, "手続きが面倒...", find(t, root, "line-2").Text)
}

func TestProblemLayoutIsStable(t *testing.T) {
	s := NewProblem(theme.Default(), 90)
	ctx := verticalCtx(90)

	early := find(t, s.Render(0, ctx), "icon").Box
	late := find(t, s.Render(45, ctx), "icon").Box
	assert.Equal(t, early, late)
}

func TestSolutionSequences(t *testing.T) {
	s := NewSolution(theme.Default(), 120)
	ctx := verticalCtx(120)

	root := s.Render(0, ctx)
	assert.Equal(t, 0.0, find(t, root, "qr").Transform.Scale)
	assert.InDelta(t, 0.3, find(t, root, "qr-glow").Transform.Opacity, 1e-9)
	assert.Nil(t, root.Find("message"))
	assert.Nil(t, root.Find("payments"))

	root = s.Render(30, ctx)
	assert.InDelta(t, 0.7, find(t, root, "qr-glow").Transform.Opacity, 1e-9)
	assert.Equal(t, 7, find(t, root, "qr-grid").Grid.Cols)

	root = s.Render(25, ctx)
	assert.Equal(t, "スキャンす", find(t, root, "message").Text)
	assert.Nil(t, root.Find("message-cursor"))

	root = s.Render(55, ctx)
	assert.Greater(t, find(t, root, "paypay").Transform.Scale, 0.0)
	assert.Equal(t, 0.0, find(t, root, "rakuten-pay").Transform.Scale, "second badge is delayed by 10 frames")
}

func TestCTAFadesOut(t *testing.T) {
	s := NewCTA(theme.Default(), 90)
	ctx := verticalCtx(90)

	assert.Equal(t, 1.0, s.Render(0, ctx).Transform.Opacity)
	assert.Equal(t, 1.0, s.Render(70, ctx).Transform.Opacity)
	assert.InDelta(t, 0.5, s.Render(80, ctx).Transform.Opacity, 1e-9)
	assert.InDelta(t, 1.0/20, s.Render(89, ctx).Transform.Opacity, 1e-9)

	root := s.Render(0, ctx)
	assert.Equal(t, 0.0, find(t, root, "no-signup-badge").Transform.Scale)
	assert.Equal(t, "2", find(t, root, "headline-b").Text)
}

func TestHorizontalCTADonation(t *testing.T) {
	th := theme.Default()
	ctx := horizontalCtx(120)

	plain := NewHorizontalCTA(th, 120, nil).Render(60, ctx)
	assert.Nil(t, plain.Find("donation-qr"))
	assert.InDelta(t, 2.0/3, NewHorizontalCTA(th, 120, nil).Render(100, ctx).Transform.Opacity, 1e-9)

	g, err := DonationGrid("https://example.org/donate", th.BgPrimary)
	require.NoError(t, err)
	root := NewHorizontalCTA(th, 120, &g).Render(60, ctx)
	qr := find(t, root, "donation-qr")
	assert.Equal(t, float64(donationQRSize), qr.Box.W)
	assert.Equal(t, g.Cols, find(t, root, "donation-qr-grid").Grid.Cols)
}

func TestHorizontalScenes(t *testing.T) {
	th := theme.Default()
	ctx := horizontalCtx(120)

	root := NewHorizontalProblem(th, 120).Render(0, ctx)
	assert.Equal(t, 0.0, find(t, root, "line-2").Transform.Opacity)
	assert.Equal(t, 30.0, find(t, root, "line-2").Transform.TranslateY)

	root = NewHorizontalSolution(th, 120).Render(20, ctx)
	assert.InDelta(t, 0.8, find(t, root, "qr-glow").Transform.Opacity, 1e-9)
	msg := find(t, root, "message")
	assert.Equal(t, 0.0, msg.Transform.Opacity)
	assert.Equal(t, 50.0, msg.Transform.TranslateX)
}

func TestScenesArePure(t *testing.T) {
	th := theme.Default()
	g, err := DonationGrid("https://example.org/donate", th.BgPrimary)
	require.NoError(t, err)

	all := []scene.Scene{
		NewOpening(th, 60), NewProblem(th, 90), NewSolution(th, 120), NewCTA(th, 90),
		NewHorizontalProblem(th, 120), NewHorizontalSolution(th, 120), NewHorizontalCTA(th, 120, &g),
	}
	for _, s := range all {
		ctx := verticalCtx(s.DurationInFrames())
		for _, f := range []int{47, 3, 47, 0} {
			assert.Equal(t, s.Render(f, ctx), s.Render(f, ctx), "%s@%d", s.Name(), f)
		}
	}
}
