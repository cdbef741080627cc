package video

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFFmpegArgs(t *testing.T) {
	spec := Spec{Width: 1080, Height: 1920, FPS: 30, Output: "out.mp4", Encoder: "libx264", Quality: 23}
	args := strings.Join(buildFFmpegArgs(spec), " ")

	assert.Contains(t, args, "-f rawvideo -pixel_format rgba -video_size 1080x1920 -framerate 30 -i -")
	assert.Contains(t, args, "-c:v libx264 -crf 23 -preset medium")
	assert.True(t, strings.HasSuffix(args, "out.mp4"))

	tests := []struct {
		encoder string
		want    string
	}{
		{"h264_videotoolbox", "-b:v 2300k"},
		{"h264_nvenc", "-cq 23"},
	}
	for _, tt := range tests {
		t.Run(tt.encoder, func(t *testing.T) {
			spec.Encoder = tt.encoder
			assert.Contains(t, strings.Join(buildFFmpegArgs(spec), " "), tt.want)
		})
	}
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(1, 0, color.RGBA{R: 1, G: 2, B: 3, A: 4})

	var buf bytes.Buffer
	require.NoError(t, writeRawRGBA(&buf, img))
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 2, 3, 4}, buf.Bytes())

	// Sub-images are repacked to a tight buffer.
	big := image.NewRGBA(image.Rect(0, 0, 4, 4))
	big.SetRGBA(2, 2, color.RGBA{R: 9, A: 255})
	buf.Reset()
	require.NoError(t, writeRawRGBA(&buf, big.SubImage(image.Rect(2, 2, 3, 3))))
	assert.Equal(t, []byte{9, 0, 0, 255}, buf.Bytes())
}

func TestLogTail(t *testing.T) {
	assert.Equal(t, "c\nd", logTail("a\nb\nc\nd\n", 2))
	assert.Equal(t, "a", logTail("a", 5))
}

func TestPNGSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	enc, err := New("png")
	require.NoError(t, err)

	require.NoError(t, enc.Begin(context.Background(), Spec{Width: 2, Height: 2, FPS: 30, Output: dir, FirstFrame: 10}))
	for i := 0; i < 3; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		img.SetRGBA(0, 0, color.RGBA{R: uint8(i), A: 255})
		require.NoError(t, enc.WriteFrame(img))
	}
	require.NoError(t, enc.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "frame_00010.png", entries[0].Name())
	assert.Equal(t, "frame_00012.png", entries[2].Name())

	f, err := os.Open(filepath.Join(dir, "frame_00011.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(1*0x101), r)
}

func TestNewEncoder(t *testing.T) {
	enc, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &FFmpegEncoder{}, enc)

	_, err = New("gif")
	assert.Error(t, err)

	assert.Error(t, (&FFmpegEncoder{}).WriteFrame(image.NewRGBA(image.Rect(0, 0, 1, 1))))
	assert.NoError(t, (&FFmpegEncoder{}).Close())
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stills", "frame.png")
	require.NoError(t, WritePNG(path, image.NewRGBA(image.Rect(0, 0, 3, 3))))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
