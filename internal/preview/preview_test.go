package preview

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/qrpromo/internal/composition"
	"github.com/ivlev/qrpromo/internal/theme"
)

func TestFit(t *testing.T) {
	assert.InDelta(t, 40.0/1920, Fit(80, 20, 1080, 1920), 1e-12, "limited by height")
	assert.InDelta(t, 80.0/1920, Fit(80, 100, 1920, 1080), 1e-12, "limited by width")
	assert.Zero(t, Fit(0, 20, 1080, 1920))
	assert.Zero(t, Fit(80, 0, 1080, 1920))
}

func TestHalfBlocksPairsRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{G: 255, A: 255})
	img.SetRGBA(1, 2, color.RGBA{B: 255, A: 255})

	type cell struct{ top, bottom tcell.Color }
	got := map[image.Point]cell{}
	HalfBlocks(img, func(x, y int, top, bottom tcell.Color) {
		got[image.Pt(x, y)] = cell{top, bottom}
	})

	require.Len(t, got, 4)
	assert.Equal(t, cell{tcell.NewRGBColor(255, 0, 0), tcell.NewRGBColor(0, 255, 0)}, got[image.Pt(0, 0)])
	assert.Equal(t, cell{tcell.NewRGBColor(0, 0, 255), tcell.NewRGBColor(0, 0, 0)}, got[image.Pt(1, 1)])
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func shortDefinition(t *testing.T) *composition.Definition {
	t.Helper()
	reg, err := composition.NewRegistry(composition.DefaultOptions())
	require.NoError(t, err)
	def, err := reg.Lookup(composition.ShortID)
	require.NoError(t, err)
	return def
}

func TestDrawBackgroundTail(t *testing.T) {
	screen := newScreen(t, 40, 21)
	p := New(shortDefinition(t), nil, nil, screen)
	p.Seek(330)
	require.NoError(t, p.Draw())

	// 1080x1920 at 40/1920 is 23x40 pixels, centred in 40 columns.
	r, _, style, _ := screen.GetContent(8, 5)
	assert.Equal(t, halfBlock, r)
	fg, bg, _ := style.Decompose()
	want := theme.Default().BgPrimary.NRGBA()
	wr, wg, wb := fg.RGB()
	assert.Equal(t, [3]int32{int32(want.R), int32(want.G), int32(want.B)}, [3]int32{wr, wg, wb})
	assert.Equal(t, fg, bg)

	r, _, _, _ = screen.GetContent(2, 5)
	assert.NotEqual(t, halfBlock, r, "outside the picture")

	r, _, _, _ = screen.GetContent(1, 20)
	assert.Equal(t, 'T', r, "status line starts with the composition id")
}

func TestHandleEvent(t *testing.T) {
	screen := newScreen(t, 40, 21)
	p := New(shortDefinition(t), nil, nil, screen)

	assert.True(t, p.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.True(t, p.Paused())

	assert.True(t, p.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)))
	assert.Equal(t, 359, p.Frame(), "stepping back wraps")
	assert.True(t, p.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)))
	assert.Equal(t, 0, p.Frame())

	assert.False(t, p.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, p.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestRunStopsOnQuit(t *testing.T) {
	screen := newScreen(t, 30, 16)
	p := New(shortDefinition(t), nil, nil, screen)
	p.Seek(320)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.True(t, p.Paused())
	case <-time.After(5 * time.Second):
		t.Fatal("player did not stop")
	}
}
