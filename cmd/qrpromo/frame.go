package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/qrpromo/internal/storyboard"
)

var (
	frameAt    int
	frameEvery int
	frameTo    int
)

var frameCmd = &cobra.Command{
	Use:   "frame <composition>",
	Short: "Export frame draw trees as a YAML storyboard",
	Long: `Frame writes the draw tree of one frame, or of every --every frames from
--frame to --to, as YAML. Nothing is rasterized, so assets and fonts are not
needed.

Example:
  qrpromo frame TadakayoShort --frame 52
  qrpromo frame TadakayoShort --every 15 --output short.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := lookup(args[0])
		if err != nil {
			return err
		}

		frames := []int{frameAt}
		if frameEvery > 0 {
			to := frameTo
			if to < 0 {
				to = def.DurationInFrames - 1
			}
			if frames, err = storyboard.Every(frameAt, to, frameEvery); err != nil {
				return err
			}
		}

		sb, err := storyboard.Capture(def, frames)
		if err != nil {
			return err
		}

		out := cfg.Output
		if out == "" {
			out = storyboard.GeneratePath(cfg.OutputDir, def.ID, time.Now())
		}
		if err := storyboard.Write(sb, out); err != nil {
			return err
		}
		fmt.Printf("[+++] Раскадровка (%d кадров) сохранена: %s\n", len(sb.Frames), out)
		return nil
	},
}

func init() {
	f := frameCmd.Flags()
	f.IntVar(&frameAt, "frame", 0, "Кадр (или первый кадр с --every)")
	f.IntVar(&frameEvery, "every", 0, "Шаг между кадрами")
	f.IntVar(&frameTo, "to", -1, "Последний кадр с --every (-1: до конца)")
	f.String("output", "", "YAML-файл (по умолчанию в output/)")
}
