package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "mp4", cfg.Format)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, EncoderAuto, cfg.Encoder)
	assert.Equal(t, "assets", cfg.AssetsDir)
	assert.True(t, cfg.ShowStats)
	assert.False(t, cfg.PlaceholderAssets)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: png\nworkers: 3\ndonate_url: https://example.org/d\n"), 0o644))
	t.Setenv("QRPROMO_QUALITY", "30")

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 30, cfg.Quality)
	assert.Equal(t, "https://example.org/d", cfg.DonateURL)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Format: "mp4", Encoder: EncoderAuto}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"format", func(c *Config) { c.Format = "gif" }},
		{"workers", func(c *Config) { c.Workers = -1 }},
		{"quality", func(c *Config) { c.Quality = -5 }},
		{"encoder", func(c *Config) { c.Encoder = "" }},
		{"donate url", func(c *Config) { c.DonateURL = "example.org" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestQualityFor(t *testing.T) {
	c := &Config{}
	assert.Equal(t, 75, c.QualityFor("h264_videotoolbox"))
	assert.Equal(t, 28, c.QualityFor("h264_nvenc"))
	assert.Equal(t, 23, c.QualityFor("libx264"))

	c.Quality = 18
	assert.Equal(t, 18, c.QualityFor("libx264"))
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 5, 0, time.UTC)
	c := &Config{Format: "mp4", OutputDir: "output"}
	assert.Equal(t, filepath.Join("output", "TadakayoShort_2026-03-01_12-30-05.mp4"), c.OutputPath("TadakayoShort", now))

	c.Format = "png"
	assert.Equal(t, filepath.Join("output", "TadakayoShort_2026-03-01_12-30-05"), c.OutputPath("TadakayoShort", now))

	c.Output = "custom.mp4"
	assert.Equal(t, "custom.mp4", c.OutputPath("TadakayoShort", now))
}
