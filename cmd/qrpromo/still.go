package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/qrpromo/internal/renderer"
	"github.com/ivlev/qrpromo/internal/system"
	"github.com/ivlev/qrpromo/internal/video"
)

var stillFrame int

var stillCmd = &cobra.Command{
	Use:   "still <composition>",
	Short: "Render one frame to PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := lookup(args[0])
		if err != nil {
			return err
		}
		tree, err := def.Frame(stillFrame)
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

		img, err := ras.Render(tree, def.Width, def.Height)
		if err != nil {
			return err
		}
		defer system.PutImage(img)

		out := cfg.Output
		if out == "" {
			out = filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_frame_%05d.png", def.ID, stillFrame))
		}
		if err := video.WritePNG(out, img); err != nil {
			return err
		}
		fmt.Printf("[+++] Кадр %d сохранен: %s\n", stillFrame, out)
		return nil
	},
}

func init() {
	stillCmd.Flags().IntVar(&stillFrame, "frame", 0, "Номер кадра")
	stillCmd.Flags().String("output", "", "PNG-файл (по умолчанию в output/)")
}
