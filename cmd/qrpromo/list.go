package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the compositions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}
		for _, id := range reg.IDs() {
			def, _ := reg.Lookup(id)
			fmt.Printf("%-22s %4dx%-4d %2d fps  %3d frames (%.1fs)  timeline %d frames\n",
				def.ID, def.Width, def.Height, def.FPS, def.DurationInFrames, def.Seconds(), def.Timeline.Duration())
		}
		return nil
	},
}
