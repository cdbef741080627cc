// Package scenes holds the scenes of the promo videos. Every scene is a pure
// function of its local frame and the theme it was built with.
package scenes

import (
	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/theme"
)

// Scene names as they appear on the timeline.
const (
	NameOpening            = "opening"
	NameProblem            = "problem"
	NameSolution           = "solution"
	NameCTA                = "cta"
	NameHorizontalProblem  = "horizontal-problem"
	NameHorizontalSolution = "horizontal-solution"
	NameHorizontalCTA      = "horizontal-cta"
)

type base struct {
	name   string
	frames int
	th     theme.Theme
}

func (b base) Name() string          { return b.name }
func (b base) DurationInFrames() int { return b.frames }

// Ensure every scene satisfies scene.Scene.
var (
	_ scene.Scene = (*Opening)(nil)
	_ scene.Scene = (*Problem)(nil)
	_ scene.Scene = (*Solution)(nil)
	_ scene.Scene = (*CTA)(nil)
	_ scene.Scene = (*HorizontalProblem)(nil)
	_ scene.Scene = (*HorizontalSolution)(nil)
	_ scene.Scene = (*HorizontalCTA)(nil)
)
