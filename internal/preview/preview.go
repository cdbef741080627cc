// Package preview plays a composition in the terminal. Every cell shows two
// pixels with an upper half block: the foreground is the top pixel and the
// background the bottom one.
package preview

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ivlev/qrpromo/internal/composition"
	"github.com/ivlev/qrpromo/internal/renderer"
	"github.com/ivlev/qrpromo/internal/source"
)

const halfBlock = '▀'

// statusRows are kept free under the picture.
const statusRows = 1

// Player owns the screen while Run is active.
type Player struct {
	def    *composition.Definition
	ras    *renderer.Rasterizer
	screen tcell.Screen

	frame  int
	paused bool
	buf    *image.RGBA
}

// New prepares a player on an initialised screen.
func New(def *composition.Definition, src source.Source, fonts *renderer.Fonts, screen tcell.Screen) *Player {
	return &Player{
		def:    def,
		ras:    renderer.New(src, fonts),
		screen: screen,
	}
}

// Frame is the frame on screen.
func (p *Player) Frame() int { return p.frame }

// Paused reports whether playback is stopped.
func (p *Player) Paused() bool { return p.paused }

// Seek jumps to frame, wrapping around the composition.
func (p *Player) Seek(frame int) {
	n := p.def.DurationInFrames
	p.frame = ((frame % n) + n) % n
}

// Run plays until q, Esc or Ctrl-C, or until ctx is done.
func (p *Player) Run(ctx context.Context) error {
	defer p.ras.Close()

	ticker := time.NewTicker(time.Second / time.Duration(max(p.def.FPS, 1)))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	if err := p.Draw(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !p.HandleEvent(ev) {
				return nil
			}
			if err := p.Draw(); err != nil {
				return err
			}

		case <-ticker.C:
			if p.paused {
				continue
			}
			p.Seek(p.frame + 1)
			if err := p.Draw(); err != nil {
				return err
			}
		}
	}
}

// HandleEvent applies a key or resize event. It returns false when the
// player should stop.
func (p *Player) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			p.paused = true
			p.Seek(p.frame - 1)
		case tcell.KeyRight:
			p.paused = true
			p.Seek(p.frame + 1)
		case tcell.KeyHome:
			p.Seek(0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				p.paused = !p.paused
			}
		}

	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

// Draw renders the current frame to the screen.
func (p *Player) Draw() error {
	cols, rows := p.screen.Size()
	zoom := Fit(cols, rows-statusRows, p.def.Width, p.def.Height)

	p.screen.Clear()
	if zoom > 0 {
		w := int(math.Ceil(float64(p.def.Width) * zoom))
		h := int(math.Ceil(float64(p.def.Height) * zoom))
		img := p.buffer(w, h)

		tree, err := p.def.Frame(p.frame)
		if err != nil {
			return err
		}
		if err := p.ras.DrawScaled(img, tree, zoom); err != nil {
			return err
		}

		x0 := (cols - w) / 2
		HalfBlocks(img, func(x, y int, top, bottom tcell.Color) {
			p.screen.SetContent(x0+x, y, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		})
	}

	p.drawStatus(cols, rows)
	p.screen.Show()
	return nil
}

func (p *Player) buffer(w, h int) *image.RGBA {
	if p.buf == nil || p.buf.Rect.Dx() != w || p.buf.Rect.Dy() != h {
		p.buf = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	clear(p.buf.Pix)
	return p.buf
}

func (p *Player) drawStatus(cols, rows int) {
	state := "play"
	if p.paused {
		state = "pause"
	}
	line := fmt.Sprintf(" %s  %d/%d  %.2fs  [%s]  space: pause  <-/->: step  q: quit",
		p.def.ID, p.frame, p.def.DurationInFrames, p.def.Context().Seconds(p.frame), state)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	y := rows - 1
	for x, r := range []rune(line) {
		if x >= cols {
			break
		}
		p.screen.SetContent(x, y, r, nil, style)
	}
}

// Fit is the zoom that fits a width x height frame into a grid of cells
// two pixels tall. It is zero when nothing fits.
func Fit(cols, rows, width, height int) float64 {
	if cols <= 0 || rows <= 0 || width <= 0 || height <= 0 {
		return 0
	}
	return math.Min(float64(cols)/float64(width), float64(2*rows)/float64(height))
}

// HalfBlocks walks img in cells of one column by two rows. An odd last row
// pairs with black.
func HalfBlocks(img *image.RGBA, fn func(x, y int, top, bottom tcell.Color)) {
	b := img.Bounds()
	for y := 0; y < (b.Dy()+1)/2; y++ {
		for x := 0; x < b.Dx(); x++ {
			top := cellColor(img, b.Min.X+x, b.Min.Y+2*y)
			bottom := tcell.NewRGBColor(0, 0, 0)
			if 2*y+1 < b.Dy() {
				bottom = cellColor(img, b.Min.X+x, b.Min.Y+2*y+1)
			}
			fn(x, y, top, bottom)
		}
	}
}

// cellColor composites the pixel over black.
func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
