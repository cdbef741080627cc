package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strings"
)

// Spec describes the stream an encoder receives.
type Spec struct {
	Width, Height int
	FPS           int
	Output        string
	// Encoder is the ffmpeg video codec (libx264, h264_nvenc, ...).
	Encoder string
	// Quality is CRF/CQ for x264/NVENC and a bitrate step for VideoToolbox.
	Quality int
	// FirstFrame numbers the first frame written, for image sequences.
	FirstFrame int
}

// VideoEncoder принимает кадры строго по порядку.
type VideoEncoder interface {
	Begin(ctx context.Context, spec Spec) error
	WriteFrame(img *image.RGBA) error
	// Close finalises the output. It must be called even after a failed
	// WriteFrame.
	Close() error
}

// New returns the encoder for an output format: "mp4" or "png".
func New(format string) (VideoEncoder, error) {
	switch strings.ToLower(format) {
	case "mp4", "":
		return &FFmpegEncoder{}, nil
	case "png":
		return &PNGSequence{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// FFmpegEncoder передает raw RGBA кадры в ffmpeg через stdin, без
// промежуточных файлов.
type FFmpegEncoder struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	log   bytes.Buffer
	spec  Spec
}

func (e *FFmpegEncoder) Begin(ctx context.Context, spec Spec) error {
	e.spec = spec
	e.cmd = exec.CommandContext(ctx, "ffmpeg", buildFFmpegArgs(spec)...)
	e.cmd.Stdout = &e.log
	e.cmd.Stderr = &e.log

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}
	return nil
}

func (e *FFmpegEncoder) WriteFrame(img *image.RGBA) error {
	if e.stdin == nil {
		return fmt.Errorf("encoder not started")
	}
	if b := img.Bounds(); b.Dx() != e.spec.Width || b.Dy() != e.spec.Height {
		return fmt.Errorf("frame is %dx%d, stream is %dx%d", b.Dx(), b.Dy(), e.spec.Width, e.spec.Height)
	}
	if err := writeRawRGBA(e.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w\n%s", err, logTail(e.log.String(), 20))
	}
	return nil
}

func (e *FFmpegEncoder) Close() error {
	if e.cmd == nil {
		return nil
	}
	if e.stdin != nil {
		e.stdin.Close()
	}
	err := e.cmd.Wait()
	e.cmd = nil
	if err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\n%s", err, logTail(e.log.String(), 20))
	}
	return nil
}

func buildFFmpegArgs(spec Spec) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"-framerate", fmt.Sprintf("%d", spec.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", spec.Encoder,
	}

	// Качество в зависимости от энкодера
	switch spec.Encoder {
	case "h264_videotoolbox":
		// VideoToolbox не везде поддерживает -q:v, используем битрейт.
		bitrate := spec.Quality * 100 // кбит/с
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", spec.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", spec.Quality), "-preset", "medium")
	}

	args = append(args, "-movflags", "+faststart", spec.Output)
	return args
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	// Кадр должен быть RGBA со стандартным шагом (stride) и началом в нуле.
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}

// logTail returns the last n lines of an ffmpeg log.
func logTail(log string, n int) string {
	lines := strings.Split(strings.TrimRight(log, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
