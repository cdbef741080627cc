package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ivlev/qrpromo/internal/preview"
)

var previewFrame int

var previewCmd = &cobra.Command{
	Use:   "preview <composition>",
	Short: "Play a composition in the terminal",
	Long:  `Preview plays the composition with half-block cells. Space pauses, left and right step one frame, Home rewinds, q or Esc quits.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := lookup(args[0])
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

		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()

		ctx, cancel := signalContext()
		defer cancel()

		player := preview.New(def, src, fonts, screen)
		player.Seek(previewFrame)
		return player.Run(ctx)
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewFrame, "frame", 0, "Начальный кадр")
}
