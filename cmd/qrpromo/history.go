package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/qrpromo/internal/history"
)

var (
	historyLimit       int
	historyComposition string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent render runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(context.Background(), historyComposition, historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("[*] История пуста")
			return nil
		}

		for _, r := range runs {
			fmt.Printf("%s  %-20s %-3s %-17s %4d frames from %-3d %2d workers %7.2fs %6.1f fps  %-8s %s\n",
				r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Composition, r.Format, r.Encoder,
				r.Frames, r.FirstFrame, r.Workers, r.Duration.Seconds(), r.FPS(), r.Status, r.Output)
			if r.Error != "" {
				fmt.Printf("    [!] %s\n", r.Error)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Сколько запусков показать")
	historyCmd.Flags().StringVar(&historyComposition, "composition", "", "Только эта композиция")
	historyCmd.Flags().String("history-db", "", "SQLite-файл истории рендеров")
}
