package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/qrpromo/internal/composition"
	"github.com/ivlev/qrpromo/internal/config"
	"github.com/ivlev/qrpromo/internal/history"
	"github.com/ivlev/qrpromo/internal/renderer"
	"github.com/ivlev/qrpromo/internal/source"
	"github.com/ivlev/qrpromo/internal/system"
	"github.com/ivlev/qrpromo/internal/video"
)

// Last marks the final frame of the composition in a Range.
const Last = -1

// Range is an inclusive span of global frames.
type Range struct {
	From, To int
}

// All covers the whole composition.
func All() Range { return Range{From: 0, To: Last} }

// resolve clamps Last and checks the range against the composition.
func (r Range) resolve(duration int) (Range, error) {
	if r.To == Last {
		r.To = duration - 1
	}
	if r.From < 0 || r.To >= duration || r.From > r.To {
		return r, fmt.Errorf("%w: range %d..%d not in [0, %d)", composition.ErrFrameOutOfRange, r.From, r.To, duration)
	}
	return r, nil
}

// Len is the number of frames in the range.
func (r Range) Len() int { return r.To - r.From + 1 }

// Stats describe a finished pass.
type Stats struct {
	Output  string
	Encoder string
	Frames  int
	Workers int
	Total   time.Duration
	// Render and Encode are cumulative busy times: Render sums every worker.
	Render time.Duration
	Encode time.Duration
	// Allocations is the number of frame buffers the pool had to create.
	Allocations int64
}

// FPS is the effective frames per second of the pass.
func (s Stats) FPS() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Total.Seconds()
}

// Project renders one composition through an encoder.
type Project struct {
	Definition *composition.Definition
	Config     *config.Config
	Source     source.Source
	Fonts      *renderer.Fonts
	Encoder    video.VideoEncoder
	// History, when set, receives a record of every pass.
	History *history.Store

	pool *system.ImagePool
}

func NewProject(def *composition.Definition, cfg *config.Config, src source.Source, fonts *renderer.Fonts, enc video.VideoEncoder) *Project {
	return &Project{
		Definition: def,
		Config:     cfg,
		Source:     src,
		Fonts:      fonts,
		Encoder:    enc,
	}
}

type renderResult struct {
	frame int
	img   *image.RGBA
}

// Run renders the frames of r in parallel and feeds them to the encoder
// strictly in order.
func (p *Project) Run(ctx context.Context, r Range) (*Stats, error) {
	startTime := time.Now()
	def := p.Definition

	r, err := r.resolve(def.DurationInFrames)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Output:  p.Config.OutputPath(def.ID, startTime),
		Encoder: p.encoderName(),
		Frames:  r.Len(),
		Workers: p.workers(r.Len()),
	}

	fmt.Println("--- [PROJECT: QR PROMO RENDER] ---")
	fmt.Printf("[*] Композиция: %s | Кадры: %d..%d (%d)\n", def.ID, r.From, r.To, r.Len())
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Воркеры: %d\n", def.Width, def.Height, def.FPS, stats.Workers)
	fmt.Printf("[*] Вывод: %s (%s, %s)\n", stats.Output, p.Config.Format, stats.Encoder)
	fmt.Println("-----------------------------")

	err = p.encode(ctx, r, stats)
	stats.Total = time.Since(startTime)

	p.record(ctx, r, stats, startTime, err)
	if err != nil {
		return stats, err
	}

	if p.Config.ShowStats {
		p.report(stats)
	}
	fmt.Printf("[+++] Успех! Результат сохранен: %s\n", stats.Output)
	return stats, nil
}

func (p *Project) encode(ctx context.Context, r Range, stats *Stats) error {
	def := p.Definition
	if p.Config.Format == "mp4" {
		if err := os.MkdirAll(filepath.Dir(stats.Output), 0o755); err != nil {
			return err
		}
	}

	spec := video.Spec{
		Width:      def.Width,
		Height:     def.Height,
		FPS:        def.FPS,
		Output:     stats.Output,
		Encoder:    stats.Encoder,
		Quality:    p.Config.QualityFor(stats.Encoder),
		FirstFrame: r.From,
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	// ffmpeg живет дольше пайплайна, поэтому получает внешний контекст.
	if err := p.Encoder.Begin(ctx, spec); err != nil {
		return fmt.Errorf("ошибка запуска энкодера: %w", err)
	}

	pipeErr := p.pipeline(ctx, r, stats)
	closeErr := p.Encoder.Close()
	if pipeErr != nil {
		return pipeErr
	}
	if closeErr != nil {
		return fmt.Errorf("ошибка сборки финального видео: %w", closeErr)
	}
	return nil
}

// pipeline: producer -> render pool -> reorder writer -> encoder. Tokens
// bound the frames between the producer and the writer, so a slow frame
// never lets the reorder buffer grow past the window.
func (p *Project) pipeline(ctx context.Context, r Range, stats *Stats) error {
	def := p.Definition
	pool := p.imagePool()
	allocsBefore := pool.Allocations()

	window := stats.Workers * 2
	tokens := make(chan struct{}, window)
	jobs := make(chan int)
	results := make(chan renderResult, window)

	var renderBusy atomic.Int64
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for f := r.From; f <= r.To; f++ {
			select {
			case tokens <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			select {
			case jobs <- f:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < stats.Workers; w++ {
		g.Go(func() error {
			// Кэш шрифтов не потокобезопасен: растеризатор на каждый воркер.
			ras := renderer.New(p.Source, p.Fonts)
			defer ras.Close()

			for f := range jobs {
				start := time.Now()
				tree, err := def.Frame(f)
				if err != nil {
					return err
				}
				img := pool.Get(def.Width, def.Height)
				if err := ras.Draw(img, tree); err != nil {
					pool.Put(img)
					return fmt.Errorf("frame %d: %w", f, err)
				}
				renderBusy.Add(int64(time.Since(start)))

				select {
				case results <- renderResult{frame: f, img: img}:
				case <-gctx.Done():
					pool.Put(img)
					return gctx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		pending := make(map[int]*image.RGBA, window)
		defer func() {
			for _, img := range pending {
				pool.Put(img)
			}
		}()

		step := max(def.FPS, 1)
		for next := r.From; next <= r.To; {
			select {
			case res := <-results:
				pending[res.frame] = res.img
			case <-gctx.Done():
				return gctx.Err()
			}

			for {
				img, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)

				start := time.Now()
				err := p.Encoder.WriteFrame(img)
				stats.Encode += time.Since(start)
				pool.Put(img)
				if err != nil {
					return fmt.Errorf("frame %d: %w", next, err)
				}
				<-tokens

				done := next - r.From + 1
				if done%step == 0 || next == r.To {
					fmt.Printf("[>] Ready: %d/%d\n", done, r.Len())
				}
				next++
			}
		}
		return nil
	})

	err := g.Wait()
	stats.Render = time.Duration(renderBusy.Load())
	stats.Allocations = pool.Allocations() - allocsBefore
	return err
}

func (p *Project) imagePool() *system.ImagePool {
	if p.pool == nil {
		p.pool = &system.ImagePool{}
	}
	return p.pool
}

func (p *Project) workers(frames int) int {
	n := p.Config.Workers
	if n <= 0 {
		n = system.RecommendedWorkers(p.Definition.Width, p.Definition.Height)
	}
	return max(1, min(n, frames))
}

func (p *Project) encoderName() string {
	if p.Config.Format != "mp4" {
		return p.Config.Format
	}
	if p.Config.Encoder == config.EncoderAuto {
		return system.DetectH264Encoder()
	}
	return p.Config.Encoder
}

func (p *Project) record(ctx context.Context, r Range, stats *Stats, startTime time.Time, runErr error) {
	if p.History == nil {
		return
	}

	run := &history.Run{
		Composition: p.Definition.ID,
		Format:      p.Config.Format,
		Encoder:     stats.Encoder,
		Output:      stats.Output,
		FirstFrame:  r.From,
		Frames:      stats.Frames,
		Workers:     stats.Workers,
		StartedAt:   startTime,
		Duration:    stats.Total,
		Status:      history.StatusOK,
	}
	switch {
	case runErr == nil:
	case errors.Is(runErr, context.Canceled):
		run.Status = history.StatusCanceled
		run.Error = runErr.Error()
	default:
		run.Status = history.StatusFailed
		run.Error = runErr.Error()
	}

	if err := p.History.Record(context.WithoutCancel(ctx), run); err != nil {
		log.Printf("[!] Не удалось записать историю рендера: %v", err)
	}
}

func (p *Project) report(s *Stats) {
	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU, all workers): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Frame Buffers Allocated: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, s.Total.Seconds(), s.Render.Seconds(), s.Encode.Seconds(), s.Allocations, s.FPS(),
	)
}
