package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/scenes"
)

func registry(t *testing.T, opts Options) *Registry {
	t.Helper()
	r, err := NewRegistry(opts)
	require.NoError(t, err)
	return r
}

func TestRegisteredCompositions(t *testing.T) {
	r := registry(t, DefaultOptions())
	assert.Equal(t, []string{HorizontalID, ShortID, ShortPreviewID}, r.IDs())

	tests := []struct {
		id   string
		w, h int
	}{
		{ShortID, 1080, 1920},
		{ShortPreviewID, 1920, 1080},
		{HorizontalID, 1920, 1080},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			d, err := r.Lookup(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.w, d.Width)
			assert.Equal(t, tt.h, d.Height)
			assert.Equal(t, 30, d.FPS)
			assert.Equal(t, 360, d.DurationInFrames)
			assert.Equal(t, 12.0, d.Seconds())
		})
	}

	_, err := r.Lookup("Nope")
	assert.ErrorIs(t, err, ErrUnknownComposition)
}

func TestShortTimelineLeavesBackgroundTail(t *testing.T) {
	d, err := registry(t, DefaultOptions()).Lookup(ShortID)
	require.NoError(t, err)
	assert.Equal(t, 315, d.Timeline.Duration())

	node, err := d.Frame(314)
	require.NoError(t, err)
	require.Len(t, node.Children, 2)
	assert.NotNil(t, node.Find(scenes.NameCTA))

	node, err = d.Frame(315)
	require.NoError(t, err)
	require.Len(t, node.Children, 1)
	assert.Equal(t, scene.KindRect, node.Children[0].Kind)

	_, err = d.Frame(360)
	assert.ErrorIs(t, err, ErrFrameOutOfRange)
	_, err = d.Frame(-1)
	assert.ErrorIs(t, err, ErrFrameOutOfRange)
}

func TestHorizontalCoversEveryFrame(t *testing.T) {
	d, err := registry(t, DefaultOptions()).Lookup(HorizontalID)
	require.NoError(t, err)
	assert.Equal(t, 360, d.Timeline.Duration())

	for _, tc := range []struct {
		frame int
		name  string
	}{
		{0, scenes.NameHorizontalProblem},
		{119, scenes.NameHorizontalProblem},
		{120, scenes.NameHorizontalSolution},
		{240, scenes.NameHorizontalCTA},
		{359, scenes.NameHorizontalCTA},
	} {
		node, err := d.Frame(tc.frame)
		require.NoError(t, err)
		assert.NotNil(t, node.Find(tc.name), "frame %d", tc.frame)
	}
}

func TestDonateURL(t *testing.T) {
	opts := DefaultOptions()
	opts.DonateURL = "https://example.org/donate"
	d, err := registry(t, opts).Lookup(HorizontalID)
	require.NoError(t, err)

	node, err := d.Frame(300)
	require.NoError(t, err)
	assert.NotNil(t, node.Find("donation-qr"))

	d, err = registry(t, DefaultOptions()).Lookup(HorizontalID)
	require.NoError(t, err)
	node, err = d.Frame(300)
	require.NoError(t, err)
	assert.Nil(t, node.Find("donation-qr"))
}

func TestRegisterRejectsInvalid(t *testing.T) {
	r := registry(t, DefaultOptions())
	d, err := r.Lookup(ShortID)
	require.NoError(t, err)

	assert.Error(t, r.Register(d), "duplicate id")
	bad := *d
	bad.ID = "Bad"
	bad.FPS = 0
	assert.Error(t, r.Register(&bad))
	bad.FPS = 30
	bad.Timeline = nil
	assert.Error(t, r.Register(&bad))
}
