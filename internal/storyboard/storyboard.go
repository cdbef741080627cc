// Package storyboard exports frame draw trees as YAML, for review and for
// diffing the output of scene changes without rendering video.
package storyboard

import (
	"fmt"

	"github.com/ivlev/qrpromo/internal/composition"
	"github.com/ivlev/qrpromo/internal/scene"
)

// Version of the storyboard file format.
const Version = "1.0"

// Storyboard is a set of frame snapshots of one composition.
type Storyboard struct {
	Version          string  `yaml:"version"`
	Composition      string  `yaml:"composition"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	FPS              int     `yaml:"fps"`
	DurationInFrames int     `yaml:"duration_in_frames"`
	Frames           []Frame `yaml:"frames"`
}

// Frame is the snapshot of one global frame.
type Frame struct {
	Frame  int        `yaml:"frame"`
	Time   float64    `yaml:"time"` // seconds
	Layers []Layer    `yaml:"layers,omitempty"`
	Tree   scene.Node `yaml:"tree"`
}

// Layer names a scene active in the frame.
type Layer struct {
	Scene      string  `yaml:"scene"`
	LocalFrame int     `yaml:"local_frame"`
	Role       string  `yaml:"role"`
	Progress   float64 `yaml:"progress,omitempty"`
}

// Capture snapshots the given frames of def.
func Capture(def *composition.Definition, frames []int) (*Storyboard, error) {
	sb := &Storyboard{
		Version:          Version,
		Composition:      def.ID,
		Width:            def.Width,
		Height:           def.Height,
		FPS:              def.FPS,
		DurationInFrames: def.DurationInFrames,
	}

	for _, f := range frames {
		tree, err := def.Frame(f)
		if err != nil {
			return nil, err
		}
		snap := Frame{Frame: f, Time: def.Context().Seconds(f), Tree: tree}
		for _, l := range def.Timeline.Resolve(f) {
			snap.Layers = append(snap.Layers, Layer{
				Scene:      l.Scene.Name(),
				LocalFrame: l.LocalFrame,
				Role:       l.Role.String(),
				Progress:   l.Progress,
			})
		}
		sb.Frames = append(sb.Frames, snap)
	}
	return sb, nil
}

// Every lists frames from..to (inclusive) in steps of step.
func Every(from, to, step int) ([]int, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}
	if to < from {
		return nil, fmt.Errorf("empty frame range %d..%d", from, to)
	}
	frames := make([]int, 0, (to-from)/step+1)
	for f := from; f <= to; f += step {
		frames = append(frames, f)
	}
	return frames, nil
}
