package system

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAsset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.jpg"), []byte("jpg"), 0o644))

	path, err := ResolveAsset(dir, "logo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logo.jpg"), path)

	// A newer file with another extension wins.
	png := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(png, []byte("png"), 0o644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(png, later, later))
	path, err = ResolveAsset(dir, "logo")
	require.NoError(t, err)
	assert.Equal(t, png, path)

	_, err = ResolveAsset(dir, "character")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = ResolveAsset(dir, "")
	assert.Error(t, err)
}

func TestPickEncoder(t *testing.T) {
	assert.Equal(t, SoftwareEncoder, pickEncoder("", errors.New("no ffmpeg")))
	assert.Equal(t, SoftwareEncoder, pickEncoder(" V..... libx264  H.264 / AVC", nil))
	assert.Equal(t, "h264_nvenc", pickEncoder(" V..... h264_nvenc  NVIDIA\n V..... libx264", nil))
	assert.Equal(t, "h264_videotoolbox", pickEncoder("h264_nvenc h264_videotoolbox", nil))
}

func TestRecommendedWorkers(t *testing.T) {
	frame := 1920 * 1080 * 4

	tests := []struct {
		name string
		res  Resources
		want int
	}{
		{"cpu bound", Resources{LogicalCPUs: 8, AvailableMemory: 64 << 30}, 8},
		{"memory bound", Resources{LogicalCPUs: 8, AvailableMemory: uint64(frame) * 2 * 4 * 3}, 3},
		{"unknown memory", Resources{LogicalCPUs: 4}, 4},
		{"starved", Resources{LogicalCPUs: 4, AvailableMemory: 1}, 1},
		{"no cpus", Resources{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.RecommendedWorkers(frame))
		})
	}

	assert.GreaterOrEqual(t, RecommendedWorkers(1080, 1920), 1)
}

func TestImagePoolReturnsCleanImages(t *testing.T) {
	p := &ImagePool{}

	img := p.Get(4, 2)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	p.Put(img)

	again := p.Get(4, 2)
	for _, b := range again.Pix {
		require.Zero(t, b)
	}
	assert.Equal(t, int64(2), p.Gets())
	assert.GreaterOrEqual(t, p.Allocations(), int64(1))

	other := p.Get(2, 2)
	assert.Equal(t, 2, other.Bounds().Dx())
}
