package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "logo.png"), color.RGBA{R: 255, A: 255})

	src, err := NewDirSource(dir)
	require.NoError(t, err)

	img, err := src.Image("logo")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	cached, err := src.Image("logo")
	require.NoError(t, err)
	assert.Same(t, img.(*image.RGBA), cached.(*image.RGBA))

	_, err = src.Image("character")
	assert.ErrorIs(t, err, ErrAssetNotFound)

	_, err = NewDirSource(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestDirSourceRejectsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), []byte("not a png"), 0o644))

	src, err := NewDirSource(dir)
	require.NoError(t, err)
	_, err = src.Image("logo")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAssetNotFound)
}

func TestPlaceholder(t *testing.T) {
	mem := NewMemorySource()
	logo := image.NewRGBA(image.Rect(0, 0, 1, 1))
	mem.Add("logo", logo)

	p := Placeholder{Source: mem, Size: 8}
	img, err := p.Image("logo")
	require.NoError(t, err)
	assert.Same(t, logo, img.(*image.RGBA))

	img, err = p.Image("character")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	_, _, _, a := img.At(4, 4).RGBA()
	assert.Equal(t, uint32(0xffff), a)

	_, err = mem.Image("character")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}
