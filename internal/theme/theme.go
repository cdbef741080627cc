// Package theme holds the brand palette and asset handles shared by every
// scene. A Theme is a value: build it once and pass it to the scenes.
package theme

import "github.com/ivlev/qrpromo/internal/scene"

// Asset handles. They are resolved to files by the host, never by scenes.
const (
	AssetLogo      = "tadakayo-logo"
	AssetCharacter = "tadakayo-character"
)

// Theme is the immutable styling of a composition.
type Theme struct {
	Brand     scene.Color `yaml:"brand"`
	BrandDark scene.Color `yaml:"brand_dark"`
	BrandGlow scene.Color `yaml:"brand_glow"`

	BgPrimary   scene.Color `yaml:"bg_primary"`
	BgSecondary scene.Color `yaml:"bg_secondary"`

	TextPrimary   scene.Color `yaml:"text_primary"`
	TextSecondary scene.Color `yaml:"text_secondary"`

	AccentGreen scene.Color `yaml:"accent_green"`
	AccentBlue  scene.Color `yaml:"accent_blue"`

	White scene.Color `yaml:"white"`

	PayPay     scene.Color `yaml:"paypay"`
	RakutenPay scene.Color `yaml:"rakuten_pay"`

	FontFamily string `yaml:"font_family"`
	Logo       string `yaml:"logo"`
	Character  string `yaml:"character"`
}

// Default returns the brand theme.
func Default() Theme {
	return Theme{
		Brand:         scene.MustHex("#E52D27"),
		BrandDark:     scene.MustHex("#c41e1a"),
		BrandGlow:     scene.MustHex("#E52D27").WithAlpha(0.3),
		BgPrimary:     scene.MustHex("#0d1117"),
		BgSecondary:   scene.MustHex("#161b22"),
		TextPrimary:   scene.MustHex("#e6edf3"),
		TextSecondary: scene.MustHex("#8b949e"),
		AccentGreen:   scene.MustHex("#3fb950"),
		AccentBlue:    scene.MustHex("#58a6ff"),
		White:         scene.RGB(255, 255, 255),
		PayPay:        scene.MustHex("#FF0033"),
		RakutenPay:    scene.MustHex("#BF0000"),
		FontFamily:    "Noto Sans JP",
		Logo:          AssetLogo,
		Character:     AssetCharacter,
	}
}

// Font returns a font description in the theme's family.
func (t Theme) Font(size float64, weight int, c scene.Color) scene.Font {
	return scene.Font{
		Family: t.FontFamily,
		Size:   size,
		Weight: weight,
		Color:  c,
		Align:  scene.AlignCenter,
	}
}

// Bold is Font with weight 700.
func (t Theme) Bold(size float64, c scene.Color) scene.Font {
	return t.Font(size, 700, c)
}
