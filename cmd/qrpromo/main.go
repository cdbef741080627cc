// Command qrpromo renders the QR charity promo videos.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ivlev/qrpromo/internal/config"
	"github.com/ivlev/qrpromo/internal/system"
)

// buildVersion is set at link time with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

var (
	// configFile is set by the --config flag.
	configFile string

	v   *viper.Viper
	cfg *config.Config
)

// flagKeys maps CLI flags to config keys. Only flags defined on the running
// command are bound.
var flagKeys = map[string]string{
	"assets":       config.KeyAssetsDir,
	"font":         config.KeyFontPath,
	"bold-font":    config.KeyBoldFontPath,
	"donate-url":   config.KeyDonateURL,
	"placeholders": config.KeyPlaceholderAssets,
	"history-db":   config.KeyHistoryDB,
	"output":       config.KeyOutput,
	"format":       config.KeyFormat,
	"workers":      config.KeyWorkers,
	"quality":      config.KeyQuality,
	"encoder":      config.KeyEncoder,
	"stats":        config.KeyShowStats,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "qrpromo",
	Short:         "Render the QR charity promo videos",
	Long:          `qrpromo renders the vertical and horizontal QR charity promo compositions to video, PNG frames, YAML storyboards or a terminal preview.`,
	Version:       buildVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "YAML config file (default: ./qrpromo.yaml if present)")
	pf.String("assets", "assets", "Папка с изображениями (logo, character)")
	pf.String("font", "", "TTF/OTF шрифт (по умолчанию встроенный растровый)")
	pf.String("bold-font", "", "Жирный вариант шрифта")
	pf.String("donate-url", "", "Ссылка для QR-кода пожертвования в горизонтальной версии")
	pf.Bool("placeholders", false, "Рисовать заглушки вместо отсутствующих изображений")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(stillCmd)
	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(checkCmd)
}

// setup loads the configuration with the running command's flags bound.
func setup(cmd *cobra.Command) error {
	v = config.NewViper()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	var err error
	cfg, err = config.Load(v, configFile)
	if err != nil {
		return err
	}
	cfg.BuildVersion = buildVersion

	// Увеличиваем лимиты системы (для macOS/Linux)
	system.RaiseFileLimit(4096)
	return nil
}
