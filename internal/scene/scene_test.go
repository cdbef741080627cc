package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	w := Window{From: 30, Duration: 60}

	_, ok := w.Local(29)
	assert.False(t, ok)

	local, ok := w.Local(30)
	require.True(t, ok)
	assert.Equal(t, 0, local)

	local, ok = w.Local(89)
	require.True(t, ok)
	assert.Equal(t, 59, local)

	_, ok = w.Local(90)
	assert.False(t, ok)

	local, ok = Window{From: 15}.Local(1000)
	require.True(t, ok)
	assert.Equal(t, 985, local)
}

func TestVStackCentresColumn(t *testing.T) {
	area := Box{W: 1000, H: 1000}
	build := func(b Box) Node { return Rect("r", b, RGB(1, 2, 3)) }

	nodes := VStack(area,
		Block(200, 100, 0, build),
		Block(400, 200, 50, build),
	)
	require.Len(t, nodes, 2)

	// Column height 350 centred in 1000: starts at 325.
	assert.Equal(t, Box{X: 400, Y: 325, W: 200, H: 100}, nodes[0].Box)
	assert.Equal(t, Box{X: 300, Y: 475, W: 400, H: 200}, nodes[1].Box)
}

func TestHStackCentresRow(t *testing.T) {
	area := Box{X: 100, W: 800, H: 400}
	build := func(b Box) Node { return Rect("r", b, RGB(1, 2, 3)) }

	nodes := HStack(area, Block(100, 50, 0, build), Block(100, 100, 100, build))
	require.Len(t, nodes, 2)
	assert.Equal(t, Box{X: 350, Y: 175, W: 100, H: 50}, nodes[0].Box)
	assert.Equal(t, Box{X: 550, Y: 150, W: 100, H: 100}, nodes[1].Box)

	w, h := StackSize(false, Block(100, 50, 0, build), Block(100, 100, 100, build))
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 100.0, h)
}

func TestMeasureText(t *testing.T) {
	assert.InDelta(t, 6*0.6*10, MeasureText("PayPay", 10), 1e-9)
	assert.InDelta(t, 4*10.0, MeasureText("楽天ペイ", 10), 1e-9)
}

func TestTransformThen(t *testing.T) {
	inner := Transform{TranslateX: 10, Scale: 0.5, Opacity: 0.5}
	outer := Transform{TranslateX: 100, TranslateY: 5, Scale: 2, Opacity: 0.5}

	got := inner.Then(outer)
	assert.Equal(t, Transform{TranslateX: 120, TranslateY: 5, Scale: 1, Opacity: 0.25}, got)
	assert.Equal(t, outer, Identity().Then(outer))
}

func TestNodeFind(t *testing.T) {
	root := Group("root", Box{W: 10, H: 10},
		Rect("a", Box{}, Transparent),
		Group("g", Box{}, Text("title", Box{}, "hi", Font{Size: 12})),
	)

	title := root.Find("title")
	require.NotNil(t, title)
	assert.Equal(t, "hi", title.Text)
	assert.Nil(t, root.Find("missing"))
	assert.Equal(t, 2, root.Count(KindGroup))
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#E52D27")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xe5, G: 0x2d, B: 0x27, A: 0xff}, c)

	c, err = ParseHex("fff")
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 255, 255), c)

	_, err = ParseHex("#12")
	assert.Error(t, err)

	assert.Equal(t, "#e52d274d", MustHex("#E52D27").WithAlpha(0.3).String())
}
