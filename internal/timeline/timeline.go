// Package timeline sequences scenes end to end and blends neighbours across
// transition windows.
//
// A transition between scenes A and B does not add frames: B starts
// DurationInFrames before A ends, so the window re-uses the tail of A and the
// head of B and the series is shorter than the sum of its scenes by the total
// transition length.
package timeline

import (
	"errors"
	"fmt"

	"github.com/ivlev/qrpromo/internal/effects"
	"github.com/ivlev/qrpromo/internal/scene"
)

// ErrInvalidTimeline is returned by Build for malformed series.
var ErrInvalidTimeline = errors.New("invalid timeline")

// Transition joins two adjacent sequences.
type Transition struct {
	Presentation     effects.Presentation
	DurationInFrames int
}

// Role tells how a layer takes part in the current frame.
type Role int

const (
	Solo Role = iota
	Exiting
	Entering
)

func (r Role) String() string {
	switch r {
	case Exiting:
		return "exiting"
	case Entering:
		return "entering"
	default:
		return "solo"
	}
}

// Layer is one scene active at a global frame.
type Layer struct {
	Index      int
	Scene      scene.Scene
	LocalFrame int
	Role       Role
	// Progress is the linear transition progress; zero for Solo layers.
	Progress   float64
	Transition *Transition
}

// Span is the placement of one scene on the timeline.
type Span struct {
	Name  string
	Start int
	// Duration is the scene's own length including frames shared with
	// transitions.
	Duration int
}

// End is the first frame after the span.
func (s Span) End() int { return s.Start + s.Duration }

type placed struct {
	scene scene.Scene
	span  Span
	// out is the transition into the next scene, if any.
	out *Transition
}

// Timeline is an immutable, validated series. It is safe for concurrent use.
type Timeline struct {
	scenes   []placed
	duration int
}

// Duration is the number of frames the series covers.
func (t *Timeline) Duration() int { return t.duration }

// Spans returns the placement of every scene.
func (t *Timeline) Spans() []Span {
	spans := make([]Span, len(t.scenes))
	for i, p := range t.scenes {
		spans[i] = p.span
	}
	return spans
}

// Windows returns the [start, end) frame ranges of every transition.
func (t *Timeline) Windows() [][2]int {
	var out [][2]int
	for i, p := range t.scenes {
		if p.out == nil {
			continue
		}
		start := t.scenes[i+1].span.Start
		out = append(out, [2]int{start, start + p.out.DurationInFrames})
	}
	return out
}

// Resolve returns the layers active at frame, bottom first. Outside
// [0, Duration()) it returns nil; inside it returns one layer, or two during
// a transition window.
func (t *Timeline) Resolve(frame int) []Layer {
	if frame < 0 || frame >= t.duration {
		return nil
	}

	for i, p := range t.scenes {
		if frame < p.span.Start || frame >= p.span.End() {
			continue
		}

		if p.out != nil {
			next := t.scenes[i+1]
			if frame >= next.span.Start {
				progress := float64(frame-next.span.Start) / float64(p.out.DurationInFrames)
				return []Layer{
					{Index: i, Scene: p.scene, LocalFrame: frame - p.span.Start, Role: Exiting, Progress: progress, Transition: p.out},
					{Index: i + 1, Scene: next.scene, LocalFrame: frame - next.span.Start, Role: Entering, Progress: progress, Transition: p.out},
				}
			}
		}
		return []Layer{{Index: i, Scene: p.scene, LocalFrame: frame - p.span.Start, Role: Solo}}
	}
	return nil
}

// Render draws the active layers at frame onto a canvas of ctx's size. The
// boolean is false when no scene covers the frame.
func (t *Timeline) Render(frame int, ctx scene.Context) (scene.Node, bool) {
	layers := t.Resolve(frame)
	if len(layers) == 0 {
		return scene.Node{}, false
	}

	canvas := ctx.Canvas()
	children := make([]scene.Node, 0, len(layers))
	for _, l := range layers {
		sctx := ctx
		sctx.DurationInFrames = l.Scene.DurationInFrames()
		node := scene.Group(l.Scene.Name(), canvas, l.Scene.Render(l.LocalFrame, sctx))

		if l.Transition != nil && l.Transition.Presentation != nil {
			exiting, entering := l.Transition.Presentation.Style(l.Progress, ctx.Width, ctx.Height)
			if l.Role == Exiting {
				node = node.WithTransform(exiting)
			} else {
				node = node.WithTransform(entering)
			}
		}
		children = append(children, node)
	}
	return scene.Group("timeline", canvas, children...), true
}

type item struct {
	scene      scene.Scene
	transition *Transition
}

// Series builds a Timeline from alternating sequences and transitions.
type Series struct {
	items []item
}

// NewSeries starts an empty series.
func NewSeries() *Series {
	return &Series{}
}

// Sequence appends a scene.
func (s *Series) Sequence(sc scene.Scene) *Series {
	s.items = append(s.items, item{scene: sc})
	return s
}

// Transition appends a transition between the previous and next sequence.
func (s *Series) Transition(p effects.Presentation, frames int) *Series {
	s.items = append(s.items, item{transition: &Transition{Presentation: p, DurationInFrames: frames}})
	return s
}

// Build validates the series and places every scene.
func (s *Series) Build() (*Timeline, error) {
	if len(s.items) == 0 {
		return nil, fmt.Errorf("%w: no sequences", ErrInvalidTimeline)
	}

	var placedScenes []placed
	var pending *Transition
	for i, it := range s.items {
		if it.transition != nil {
			switch {
			case i == 0:
				return nil, fmt.Errorf("%w: series starts with a transition", ErrInvalidTimeline)
			case i == len(s.items)-1:
				return nil, fmt.Errorf("%w: series ends with a transition", ErrInvalidTimeline)
			case pending != nil:
				return nil, fmt.Errorf("%w: consecutive transitions at entry %d", ErrInvalidTimeline, i)
			case it.transition.DurationInFrames <= 0:
				return nil, fmt.Errorf("%w: transition %d has non-positive duration %d",
					ErrInvalidTimeline, i, it.transition.DurationInFrames)
			}
			pending = it.transition
			placedScenes[len(placedScenes)-1].out = pending
			continue
		}

		if it.scene == nil {
			return nil, fmt.Errorf("%w: entry %d has no scene", ErrInvalidTimeline, i)
		}
		dur := it.scene.DurationInFrames()
		if dur <= 0 {
			return nil, fmt.Errorf("%w: scene %q has non-positive duration %d", ErrInvalidTimeline, it.scene.Name(), dur)
		}

		start := 0
		if n := len(placedScenes); n > 0 {
			prev := placedScenes[n-1]
			start = prev.span.End()
			if pending != nil {
				start -= pending.DurationInFrames
			}
		}
		placedScenes = append(placedScenes, placed{
			scene: it.scene,
			span:  Span{Name: it.scene.Name(), Start: start, Duration: dur},
		})
		pending = nil
	}

	if err := checkOverlaps(placedScenes); err != nil {
		return nil, err
	}

	last := placedScenes[len(placedScenes)-1].span
	return &Timeline{scenes: placedScenes, duration: last.End()}, nil
}

// checkOverlaps rejects transitions longer than a neighbour and scenes whose
// incoming and outgoing windows would overlap.
func checkOverlaps(scenes []placed) error {
	for i, p := range scenes {
		in := 0
		if i > 0 && scenes[i-1].out != nil {
			in = scenes[i-1].out.DurationInFrames
		}
		out := 0
		if p.out != nil {
			out = p.out.DurationInFrames
		}
		if in > p.span.Duration || out > p.span.Duration {
			return fmt.Errorf("%w: transition longer than scene %q (%d frames)", ErrInvalidTimeline, p.span.Name, p.span.Duration)
		}
		if in+out > p.span.Duration {
			return fmt.Errorf("%w: transitions around scene %q overlap", ErrInvalidTimeline, p.span.Name)
		}
	}
	return nil
}

// Sequential places scenes back to back without transitions.
func Sequential(scenes ...scene.Scene) (*Timeline, error) {
	s := NewSeries()
	for _, sc := range scenes {
		s.Sequence(sc)
	}
	return s.Build()
}
