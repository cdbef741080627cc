package video

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// FramePattern names the files of a PNG sequence.
const FramePattern = "frame_%05d.png"

// PNGSequence writes each frame as a numbered PNG into the Output directory.
type PNGSequence struct {
	dir  string
	next int
	enc  png.Encoder
}

func (s *PNGSequence) Begin(_ context.Context, spec Spec) error {
	if spec.Output == "" {
		return fmt.Errorf("no output directory")
	}
	if err := os.MkdirAll(spec.Output, 0o755); err != nil {
		return err
	}
	s.dir = spec.Output
	s.next = spec.FirstFrame
	s.enc = png.Encoder{CompressionLevel: png.BestSpeed}
	return nil
}

func (s *PNGSequence) WriteFrame(img *image.RGBA) error {
	if s.dir == "" {
		return fmt.Errorf("encoder not started")
	}
	path := filepath.Join(s.dir, fmt.Sprintf(FramePattern, s.next))
	if err := writePNG(&s.enc, path, img); err != nil {
		return err
	}
	s.next++
	return nil
}

func (s *PNGSequence) Close() error { return nil }

// WritePNG stores a single image.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return writePNG(&png.Encoder{}, path, img)
}

func writePNG(enc *png.Encoder, path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
