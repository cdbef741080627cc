package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyOutput            = "output"
	KeyFormat            = "format"
	KeyWorkers           = "workers"
	KeyQuality           = "quality"
	KeyEncoder           = "encoder"
	KeyAssetsDir         = "assets_dir"
	KeyFontPath          = "font_path"
	KeyBoldFontPath      = "bold_font_path"
	KeyPlaceholderAssets = "placeholder_assets"
	KeyDonateURL         = "donate_url"
	KeyHistoryDB         = "history_db"
	KeyShowStats         = "show_stats"
)

// EncoderAuto picks the best H.264 encoder ffmpeg offers.
const EncoderAuto = "auto"

const (
	configName = "qrpromo"
	envPrefix  = "QRPROMO"
)

type Config struct {
	// Output is the video file (mp4) or frame directory (png). Empty means
	// a timestamped name under OutputDir.
	Output    string
	OutputDir string
	Format    string
	// Workers is the render pool size; 0 sizes it from the host.
	Workers int
	// Quality 0 picks the encoder default.
	Quality int
	Encoder string

	AssetsDir         string
	FontPath          string
	BoldFontPath      string
	PlaceholderAssets bool
	DonateURL         string

	HistoryDB    string
	ShowStats    bool
	BuildVersion string
}

// Defaults registers default values on v.
func Defaults(v *viper.Viper) {
	v.SetDefault(KeyOutput, "")
	v.SetDefault("output_dir", "output")
	v.SetDefault(KeyFormat, "mp4")
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyQuality, 0)
	v.SetDefault(KeyEncoder, EncoderAuto)
	v.SetDefault(KeyAssetsDir, "assets")
	v.SetDefault(KeyFontPath, "")
	v.SetDefault(KeyBoldFontPath, "")
	v.SetDefault(KeyPlaceholderAssets, false)
	v.SetDefault(KeyDonateURL, "")
	v.SetDefault(KeyHistoryDB, filepath.Join("output", "history.db"))
	v.SetDefault(KeyShowStats, true)
}

// NewViper returns a viper instance with defaults and QRPROMO_* environment
// variables bound.
func NewViper() *viper.Viper {
	v := viper.New()
	Defaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result. An explicit
// file must exist; without one, ./qrpromo.yaml is optional.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromViper decodes the current values of v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Output:            v.GetString(KeyOutput),
		OutputDir:         v.GetString("output_dir"),
		Format:            strings.ToLower(v.GetString(KeyFormat)),
		Workers:           v.GetInt(KeyWorkers),
		Quality:           v.GetInt(KeyQuality),
		Encoder:           v.GetString(KeyEncoder),
		AssetsDir:         v.GetString(KeyAssetsDir),
		FontPath:          v.GetString(KeyFontPath),
		BoldFontPath:      v.GetString(KeyBoldFontPath),
		PlaceholderAssets: v.GetBool(KeyPlaceholderAssets),
		DonateURL:         v.GetString(KeyDonateURL),
		HistoryDB:         v.GetString(KeyHistoryDB),
		ShowStats:         v.GetBool(KeyShowStats),
	}
}

func (c *Config) Validate() error {
	switch c.Format {
	case "mp4", "png":
	default:
		return fmt.Errorf("format must be mp4 or png, got %q", c.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Quality < 0 {
		return fmt.Errorf("quality must be >= 0, got %d", c.Quality)
	}
	if c.Encoder == "" {
		return fmt.Errorf("encoder must not be empty")
	}
	if c.DonateURL != "" && !strings.Contains(c.DonateURL, "://") {
		return fmt.Errorf("donate_url must be an absolute URL, got %q", c.DonateURL)
	}
	return nil
}

// QualityFor returns c.Quality, or the default for the encoder when unset.
func (c *Config) QualityFor(encoder string) int {
	if c.Quality > 0 {
		return c.Quality
	}
	switch encoder {
	case "h264_videotoolbox":
		return 75 // Хорошее качество для VideoToolbox
	case "h264_nvenc":
		return 28 // Эквивалент CRF для NVENC
	default:
		return 23 // Стандартный CRF для x264
	}
}

// OutputPath returns c.Output or a timestamped name for the composition.
func (c *Config) OutputPath(compositionID string, now time.Time) string {
	if c.Output != "" {
		return c.Output
	}
	name := fmt.Sprintf("%s_%s", compositionID, now.Format("2006-01-02_15-04-05"))
	if c.Format == "mp4" {
		name += ".mp4"
	}
	return filepath.Join(c.OutputDir, name)
}
