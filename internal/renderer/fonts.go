package renderer

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Fonts holds parsed font files. Parsed fonts are safe to share between
// rasterizers; the faces built from them are not.
type Fonts struct {
	Regular *opentype.Font
	Bold    *opentype.Font
}

// LoadFonts parses the regular font and, if given, a bold variant. An empty
// regular path yields the built-in bitmap fallback.
func LoadFonts(regularPath, boldPath string) (*Fonts, error) {
	f := &Fonts{}
	if regularPath == "" {
		return f, nil
	}

	var err error
	if f.Regular, err = parseFont(regularPath); err != nil {
		return nil, err
	}
	if boldPath != "" {
		if f.Bold, err = parseFont(boldPath); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func parseFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

// Scalable reports whether a real outline font is loaded.
func (f *Fonts) Scalable() bool {
	return f != nil && f.Regular != nil
}

type faceKey struct {
	bold bool
	size int // quarter pixels
}

// faceCache builds faces lazily per size. Not safe for concurrent use.
type faceCache struct {
	fonts *Fonts
	faces map[faceKey]font.Face
}

func newFaceCache(fonts *Fonts) *faceCache {
	return &faceCache{fonts: fonts, faces: make(map[faceKey]font.Face)}
}

// face returns an outline face for size pixels, or nil when only the
// bitmap fallback is available.
func (c *faceCache) face(size float64, weight int) (font.Face, error) {
	if !c.fonts.Scalable() {
		return nil, nil
	}

	bold := weight >= 600 && c.fonts.Bold != nil
	key := faceKey{bold: bold, size: int(math.Round(size * 4))}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	src := c.fonts.Regular
	if bold {
		src = c.fonts.Bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.size) / 4,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %.1fpx: %w", size, err)
	}
	c.faces[key] = f
	return f, nil
}

func (c *faceCache) close() {
	for k, f := range c.faces {
		f.Close()
		delete(c.faces, k)
	}
}

// fallbackFace is the bitmap face scaled up when no font file is set.
var fallbackFace = basicfont.Face7x13
