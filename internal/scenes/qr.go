package scenes

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/qrpromo/internal/anim"
	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/theme"
)

// PatternSize is the side of the stylised QR glyph.
const PatternSize = 7

// Pattern is the stylised QR glyph, row-major. It is decorative and does not
// decode.
var Pattern = [PatternSize * PatternSize]bool{
	true, true, true, false, true, true, true,
	true, false, true, false, true, false, true,
	true, true, true, false, true, true, true,
	false, false, false, false, false, false, false,
	true, true, true, false, true, false, true,
	true, false, true, false, false, true, false,
	true, true, true, false, true, true, true,
}

// PatternGrid returns the stylised glyph as a grid.
func PatternGrid(c scene.Color, gap, radius float64) scene.Grid {
	cells := make([]bool, len(Pattern))
	copy(cells, Pattern[:])
	return scene.Grid{Cols: PatternSize, Cells: cells, Gap: gap, Radius: radius, Color: c}
}

// DonationGrid encodes url as a scannable QR code without the quiet zone.
func DonationGrid(url string, c scene.Color) (scene.Grid, error) {
	if url == "" {
		return scene.Grid{}, fmt.Errorf("empty donation url")
	}
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return scene.Grid{}, fmt.Errorf("failed to encode donation url: %w", err)
	}
	q.DisableBorder = true

	bitmap := q.Bitmap()
	cells := make([]bool, 0, len(bitmap)*len(bitmap))
	for _, row := range bitmap {
		cells = append(cells, row...)
	}
	return scene.Grid{Cols: len(bitmap), Cells: cells, Color: c}, nil
}

// qrCard describes the white card a grid sits on and the glow behind it.
type qrCard struct {
	Size      float64
	GridSize  float64
	Border    float64
	Radius    float64
	GlowInset float64
	GlowBlur  float64
	// GlowPeriod is the length of one glow pulse; the pulse peaks halfway.
	GlowPeriod int
	GlowMin    float64
	GlowMax    float64
}

// glowOpacity is the pulsing halo opacity at frame.
func (c qrCard) glowOpacity(frame int) float64 {
	if c.GlowPeriod <= 0 {
		return c.GlowMax
	}
	p := float64(c.GlowPeriod)
	t := float64(((frame % c.GlowPeriod) + c.GlowPeriod) % c.GlowPeriod)
	return anim.MustTable(
		[]float64{0, p / 2, p},
		[]float64{c.GlowMin, c.GlowMax, c.GlowMin},
	).At(t, anim.Clamped())
}

func (c qrCard) item(th theme.Theme, name string, grid scene.Grid, frame int, margin float64) scene.Item {
	return scene.Block(c.Size, c.Size, margin, func(b scene.Box) scene.Node {
		glow := scene.Rect(name+"-glow", b.Outset(c.GlowInset), th.Brand).
			Rounded(c.Radius + c.GlowInset/2).
			Blurred(c.GlowBlur).
			Faded(c.glowOpacity(frame))
		card := scene.Rect(name+"-card", b, th.White).Rounded(c.Radius).Bordered(c.Border, th.Brand)

		gx, gy := b.Center()
		gridBox := scene.Box{X: gx - c.GridSize/2, Y: gy - c.GridSize/2, W: c.GridSize, H: c.GridSize}
		return scene.Group(name, b, glow, card, scene.GridOf(name+"-grid", gridBox, grid))
	})
}
