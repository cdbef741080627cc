package analyzer

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(w, h int, bg color.Color, content ...image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	for _, r := range content {
		draw.Draw(img, r, image.NewUniform(color.White), image.Point{}, draw.Src)
	}
	return img
}

func TestContrastDetector(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for y := 50; y < 150; y++ {
		for x := 50; x < 150; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	blocks, err := NewContrastDetector().Detect(img)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	r := blocks[0].Rect
	assert.True(t, image.Rect(60, 60, 140, 140).In(r), "block %v covers the square", r)
	assert.True(t, r.In(image.Rect(30, 30, 175, 175)), "block %v stays near the square", r)
}

func TestFlatFrameHasNoBlocks(t *testing.T) {
	blocks, err := NewContrastDetector().Detect(frame(120, 80, color.RGBA{R: 20, G: 30, B: 40, A: 255}))
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"contrast", false},
		{"", false},
		{"ocr", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, detector)
		})
	}
}

func TestSafeRect(t *testing.T) {
	safe := VerticalMargins.SafeRect(image.Rect(0, 0, 1080, 1920))
	assert.Equal(t, image.Rect(54, 134, 950, 1536), safe)

	assert.Equal(t, VerticalMargins, MarginsFor(1080, 1920))
	assert.Equal(t, LandscapeMargins, MarginsFor(1920, 1080))
}

func TestCheckFrame(t *testing.T) {
	det := NewContrastDetector()
	det.Step = 1
	det.MinBlockArea = 100
	bg := color.RGBA{B: 80, A: 255}

	centred := frame(100, 200, bg, image.Rect(30, 60, 70, 100))
	v, err := CheckFrame(det, centred, VerticalMargins)
	require.NoError(t, err)
	assert.Empty(t, v)

	low := frame(100, 200, bg, image.Rect(30, 170, 70, 190))
	v, err = CheckFrame(det, low, VerticalMargins)
	require.NoError(t, err)
	require.Len(t, v, 1)
	assert.Equal(t, []string{"bottom"}, v[0].Edges)
}

func TestCheckReportsEveryEdge(t *testing.T) {
	safe := image.Rect(10, 10, 90, 90)
	v := Check([]Block{
		{Rect: image.Rect(20, 20, 80, 80)},
		{Rect: image.Rect(0, 0, 100, 100)},
	}, safe)
	require.Len(t, v, 1)
	assert.Equal(t, []string{"top", "bottom", "left", "right"}, v[0].Edges)
}
