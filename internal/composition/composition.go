// Package composition registers the renderable videos: a canvas size, a frame
// rate, a length and the timeline that fills it.
package composition

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ivlev/qrpromo/internal/effects"
	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/scenes"
	"github.com/ivlev/qrpromo/internal/theme"
	"github.com/ivlev/qrpromo/internal/timeline"
)

// Composition IDs.
const (
	ShortID        = "TadakayoShort"
	ShortPreviewID = "TadakayoShortPreview"
	HorizontalID   = "TadakayoHorizontal"
)

const (
	defaultFPS      = 30
	defaultDuration = 360
)

var (
	ErrUnknownComposition = errors.New("unknown composition")
	ErrFrameOutOfRange    = errors.New("frame out of range")
)

// Definition is one renderable video.
type Definition struct {
	ID               string
	Width            int
	Height           int
	FPS              int
	DurationInFrames int
	Timeline         *timeline.Timeline
	// Background is drawn under the timeline and is all that shows on frames
	// the timeline does not cover.
	Background scene.Color
}

// Context is the scene context at the composition level.
func (d *Definition) Context() scene.Context {
	return scene.Context{FPS: d.FPS, Width: d.Width, Height: d.Height, DurationInFrames: d.DurationInFrames}
}

// Seconds is the running time of the composition.
func (d *Definition) Seconds() float64 {
	return d.Context().Seconds(d.DurationInFrames)
}

// Frame builds the draw tree for frame.
func (d *Definition) Frame(frame int) (scene.Node, error) {
	if frame < 0 || frame >= d.DurationInFrames {
		return scene.Node{}, fmt.Errorf("%w: %d not in [0, %d) for %s", ErrFrameOutOfRange, frame, d.DurationInFrames, d.ID)
	}

	ctx := d.Context()
	canvas := ctx.Canvas()
	children := []scene.Node{scene.Rect("background", canvas, d.Background)}
	if node, ok := d.Timeline.Render(frame, ctx); ok {
		children = append(children, node)
	}
	return scene.Group(d.ID, canvas, children...), nil
}

// Options tune the registered compositions.
type Options struct {
	Theme theme.Theme
	// DonateURL, when set, adds a scannable donation QR code to the
	// horizontal call to action.
	DonateURL string
}

// DefaultOptions uses the brand theme and no donation link.
func DefaultOptions() Options {
	return Options{Theme: theme.Default()}
}

// ShortTimeline is the vertical promo: opening, problem, solution and call
// to action joined by fade, slide and fade transitions.
func ShortTimeline(th theme.Theme) (*timeline.Timeline, error) {
	return timeline.NewSeries().
		Sequence(scenes.NewOpening(th, 60)).
		Transition(effects.Fade{}, 15).
		Sequence(scenes.NewProblem(th, 90)).
		Transition(effects.Slide{Direction: effects.FromRight}, 15).
		Sequence(scenes.NewSolution(th, 120)).
		Transition(effects.Fade{}, 15).
		Sequence(scenes.NewCTA(th, 90)).
		Build()
}

// HorizontalTimeline is the landscape cut: three back-to-back scenes.
func HorizontalTimeline(th theme.Theme, donateURL string) (*timeline.Timeline, error) {
	var donation *scene.Grid
	if donateURL != "" {
		g, err := scenes.DonationGrid(donateURL, th.BgPrimary)
		if err != nil {
			return nil, err
		}
		donation = &g
	}
	return timeline.Sequential(
		scenes.NewHorizontalProblem(th, 120),
		scenes.NewHorizontalSolution(th, 120),
		scenes.NewHorizontalCTA(th, 120, donation),
	)
}

// Registry holds the compositions by ID.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry builds every composition.
func NewRegistry(opts Options) (*Registry, error) {
	short, err := ShortTimeline(opts.Theme)
	if err != nil {
		return nil, fmt.Errorf("short timeline: %w", err)
	}
	horizontal, err := HorizontalTimeline(opts.Theme, opts.DonateURL)
	if err != nil {
		return nil, fmt.Errorf("horizontal timeline: %w", err)
	}

	r := &Registry{defs: make(map[string]*Definition)}
	for _, d := range []*Definition{
		{ID: ShortID, Width: 1080, Height: 1920, Timeline: short},
		{ID: ShortPreviewID, Width: 1920, Height: 1080, Timeline: short},
		{ID: HorizontalID, Width: 1920, Height: 1080, Timeline: horizontal},
	} {
		d.FPS = defaultFPS
		d.DurationInFrames = defaultDuration
		d.Background = opts.Theme.BgPrimary
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds d, replacing nothing.
func (r *Registry) Register(d *Definition) error {
	switch {
	case d.ID == "":
		return fmt.Errorf("composition has no id")
	case d.Width <= 0 || d.Height <= 0:
		return fmt.Errorf("composition %s: invalid size %dx%d", d.ID, d.Width, d.Height)
	case d.FPS <= 0:
		return fmt.Errorf("composition %s: invalid fps %d", d.ID, d.FPS)
	case d.DurationInFrames <= 0:
		return fmt.Errorf("composition %s: invalid duration %d", d.ID, d.DurationInFrames)
	case d.Timeline == nil:
		return fmt.Errorf("composition %s: no timeline", d.ID)
	}
	if _, ok := r.defs[d.ID]; ok {
		return fmt.Errorf("composition %s already registered", d.ID)
	}
	r.defs[d.ID] = d
	return nil
}

// Lookup returns the composition with the given ID.
func (r *Registry) Lookup(id string) (*Definition, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComposition, id)
	}
	return d, nil
}

// IDs lists the registered compositions in name order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
