package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/ivlev/qrpromo/internal/analyzer"
	"github.com/ivlev/qrpromo/internal/renderer"
	"github.com/ivlev/qrpromo/internal/storyboard"
	"github.com/ivlev/qrpromo/internal/system"
)

var checkEvery int

var checkCmd = &cobra.Command{
	Use:   "check <composition>",
	Short: "Check rendered frames against platform safe areas",
	Long: `Check renders every --every frames, finds the drawn content with edge
detection and reports content that reaches into the margins a player covers
with its own UI (captions and buttons on vertical video, title-safe on
landscape).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := lookup(args[0])
		if err != nil {
			return err
		}
		frames, err := storyboard.Every(0, def.DurationInFrames-1, checkEvery)
		if err != nil {
			return err
		}

		src, err := openSource()
		if err != nil {
			return err
		}
		fonts, err := loadFonts()
		if err != nil {
			return err
		}
		ras := renderer.New(src, fonts)
		defer ras.Close()

		det := analyzer.NewContrastDetector()
		margins := analyzer.MarginsFor(def.Width, def.Height)
		fmt.Printf("[*] Безопасная зона %s: %v\n", def.ID, margins.SafeRect(image.Rect(0, 0, def.Width, def.Height)))

		issues := 0
		for _, f := range frames {
			tree, err := def.Frame(f)
			if err != nil {
				return err
			}
			img, err := ras.Render(tree, def.Width, def.Height)
			if err != nil {
				return err
			}
			violations, err := analyzer.CheckFrame(det, img, margins)
			system.PutImage(img)
			if err != nil {
				return err
			}
			for _, v := range violations {
				issues++
				fmt.Printf("[!] Кадр %d: блок %v заходит в поля %v\n", f, v.Block.Rect, v.Edges)
			}
		}

		if issues > 0 {
			return fmt.Errorf("%d блоков вне безопасной зоны", issues)
		}
		fmt.Printf("[+++] Проверено кадров: %d, нарушений нет\n", len(frames))
		return nil
	},
}

func init() {
	checkCmd.Flags().IntVar(&checkEvery, "every", 15, "Шаг между проверяемыми кадрами")
}
