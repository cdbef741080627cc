// Package scene defines the scene contract and the plain-data draw tree that
// scenes emit for a single frame.
package scene

// Context carries the fixed video parameters a scene renders against.
// DurationInFrames is the duration of the enclosing sequence, not the video.
type Context struct {
	FPS              int
	Width            int
	Height           int
	DurationInFrames int
}

// Canvas returns the full frame box.
func (c Context) Canvas() Box {
	return Box{W: float64(c.Width), H: float64(c.Height)}
}

// Seconds converts a frame count to seconds.
func (c Context) Seconds(frames int) float64 {
	if c.FPS <= 0 {
		return 0
	}
	return float64(frames) / float64(c.FPS)
}

// Scene is a pure function of its local frame. Render must not retain state
// between calls: frames may be requested in any order.
type Scene interface {
	Name() string
	DurationInFrames() int
	Render(frame int, ctx Context) Node
}

// Func adapts a plain function to Scene.
type Func struct {
	ID     string
	Frames int
	Fn     func(frame int, ctx Context) Node
}

func (f Func) Name() string          { return f.ID }
func (f Func) DurationInFrames() int { return f.Frames }

func (f Func) Render(frame int, ctx Context) Node {
	return f.Fn(frame, ctx)
}

// Window is a nested sequence inside a scene: children are shown only for
// frames in [From, From+Duration) and see frames relative to From.
// A zero Duration leaves the window open-ended.
type Window struct {
	From     int
	Duration int
}

// Local maps a scene frame into the window.
func (w Window) Local(frame int) (int, bool) {
	if frame < w.From {
		return 0, false
	}
	if w.Duration > 0 && frame >= w.From+w.Duration {
		return 0, false
	}
	return frame - w.From, true
}
