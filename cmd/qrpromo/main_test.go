package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/qrpromo/internal/composition"
	"github.com/ivlev/qrpromo/internal/storyboard"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestFrameCommandWritesStoryboard(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "board.yaml")

	require.NoError(t, execute(t, "frame", composition.ShortID, "--frame", "40", "--every", "10", "--to", "60", "--output", out))

	sb, err := storyboard.Read(out)
	require.NoError(t, err)
	require.Len(t, sb.Frames, 3)
	assert.Equal(t, 60, sb.Frames[2].Frame)
}

func TestFlagsOverrideConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("QRPROMO_DONATE_URL", "https://env.example/give")

	require.NoError(t, execute(t, "list", "--assets", "media"))
	assert.Equal(t, "media", cfg.AssetsDir)
	assert.Equal(t, "https://env.example/give", cfg.DonateURL)
}

func TestUnknownComposition(t *testing.T) {
	t.Chdir(t.TempDir())
	err := execute(t, "frame", "Nope")
	assert.ErrorIs(t, err, composition.ErrUnknownComposition)
}
