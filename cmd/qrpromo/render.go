package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/qrpromo/internal/engine"
	"github.com/ivlev/qrpromo/internal/system"
	"github.com/ivlev/qrpromo/internal/video"
)

var (
	renderFrom int
	renderTo   int
)

var renderCmd = &cobra.Command{
	Use:   "render <composition>",
	Short: "Render a composition to mp4 or a PNG sequence",
	Long: `Render rasterizes the frames of a composition in parallel and streams them
in order to ffmpeg (--format mp4) or writes numbered PNG files (--format png).

Example:
  qrpromo render TadakayoShort
  qrpromo render TadakayoHorizontal --donate-url https://example.org/give
  qrpromo render TadakayoShort --format png --from 60 --to 149`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.IntVar(&renderFrom, "from", 0, "Первый кадр")
	f.IntVar(&renderTo, "to", engine.Last, "Последний кадр включительно (-1: до конца)")
	f.String("output", "", "Путь к видео или папке кадров (если пусто, генерируется в output/)")
	f.String("format", "mp4", "Формат: mp4, png")
	f.Int("workers", 0, "Потоки рендера (0: по ядрам и памяти)")
	f.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	f.String("encoder", "auto", "Кодек ffmpeg (auto: аппаратный, если доступен)")
	f.String("history-db", "", "SQLite-файл истории рендеров")
	f.Bool("stats", true, "Печатать отчет производительности")
}

func runRender(cmd *cobra.Command, args []string) error {
	def, err := lookup(args[0])
	if err != nil {
		return err
	}
	if cfg.Format == "mp4" && !system.HasFFmpeg() {
		return fmt.Errorf("ffmpeg не найден в PATH (используйте --format png)")
	}

	src, err := openSource()
	if err != nil {
		return err
	}
	fonts, err := loadFonts()
	if err != nil {
		return err
	}
	enc, err := video.New(cfg.Format)
	if err != nil {
		return err
	}

	project := engine.NewProject(def, cfg, src, fonts, enc)
	if store := openHistory(); store != nil {
		defer store.Close()
		project.History = store
	}

	ctx, cancel := signalContext()
	defer cancel()

	if _, err := project.Run(ctx, engine.Range{From: renderFrom, To: renderTo}); err != nil {
		return fmt.Errorf("ошибка проекта: %w", err)
	}
	return nil
}
