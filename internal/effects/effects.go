package effects

import (
	"fmt"
	"strings"

	"github.com/ivlev/qrpromo/internal/scene"
)

// Presentation styles the two scenes meeting at a transition. Progress runs
// linearly from 0 (only the exiting scene) to 1 (only the entering scene).
type Presentation interface {
	Name() string
	Style(progress float64, width, height int) (exiting, entering scene.Transform)
}

// Fade blends the entering scene over the exiting one.
type Fade struct{}

func (Fade) Name() string { return "fade" }

func (Fade) Style(p float64, _, _ int) (scene.Transform, scene.Transform) {
	entering := scene.Identity()
	entering.Opacity = clamp01(p)
	return scene.Identity(), entering
}

// Direction is the side a sliding scene enters from.
type Direction string

const (
	FromLeft   Direction = "from-left"
	FromRight  Direction = "from-right"
	FromTop    Direction = "from-top"
	FromBottom Direction = "from-bottom"
)

// Slide pushes the exiting scene out while the entering scene moves in.
type Slide struct {
	Direction Direction
}

func (s Slide) Name() string { return "slide(" + string(s.direction()) + ")" }

func (s Slide) direction() Direction {
	if s.Direction == "" {
		return FromLeft
	}
	return s.Direction
}

func (s Slide) Style(p float64, width, height int) (scene.Transform, scene.Transform) {
	p = clamp01(p)
	exiting, entering := scene.Identity(), scene.Identity()
	w, h := float64(width), float64(height)

	switch s.direction() {
	case FromRight:
		entering.TranslateX = (1 - p) * w
		exiting.TranslateX = -p * w
	case FromTop:
		entering.TranslateY = -(1 - p) * h
		exiting.TranslateY = p * h
	case FromBottom:
		entering.TranslateY = (1 - p) * h
		exiting.TranslateY = -p * h
	default:
		entering.TranslateX = -(1 - p) * w
		exiting.TranslateX = p * w
	}
	return exiting, entering
}

// New builds a presentation by kind ("fade", "slide") and optional direction.
func New(kind, direction string) (Presentation, error) {
	switch strings.ToLower(kind) {
	case "fade", "":
		return Fade{}, nil
	case "slide":
		d := Direction(strings.ToLower(direction))
		switch d {
		case "", FromLeft, FromRight, FromTop, FromBottom:
			return Slide{Direction: d}, nil
		}
		return nil, fmt.Errorf("unknown slide direction: %s", direction)
	default:
		return nil, fmt.Errorf("unknown transition: %s", kind)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
