package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig describes a unit-mass damped oscillator.
type SpringConfig struct {
	Damping   float64 `yaml:"damping"`
	Stiffness float64 `yaml:"stiffness"`
	// Mass defaults to 1 when zero.
	Mass float64 `yaml:"mass,omitempty"`
	// OvershootClamping pins values above 1 to 1.
	OvershootClamping bool `yaml:"overshoot_clamping,omitempty"`
}

// Common configurations used by the scenes.
var (
	NoBounce     = SpringConfig{Damping: 200, Stiffness: 80}
	NoBounceFast = SpringConfig{Damping: 200, Stiffness: 100}
	Bouncy       = SpringConfig{Damping: 8, Stiffness: 100}
)

// DefaultSettleThreshold is the distance from 1 treated as "at rest".
const DefaultSettleThreshold = 0.005

func (c SpringConfig) mass() float64 {
	if c.Mass <= 0 {
		return 1
	}
	return c.Mass
}

// AngularFrequency is sqrt(k/m).
func (c SpringConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.mass())
}

// DampingRatio is c / (2*sqrt(k*m)).
func (c SpringConfig) DampingRatio() float64 {
	if c.Stiffness <= 0 {
		return 0
	}
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.mass()))
}

// step returns the per-frame state transition. Ratios above 1 use the
// critically damped response, the same curve the host framework draws for
// "no bounce" springs.
func (c SpringConfig) step(fps int) harmonica.Spring {
	zeta := c.DampingRatio()
	if zeta > 1 {
		zeta = 1
	}
	return harmonica.NewSpring(harmonica.FPS(fps), c.AngularFrequency(), zeta)
}

// Spring returns the progress of a spring released at frame 0: 0 at rest,
// settling at 1. Frames <= 0 yield 0. Bouncy configs overshoot past 1 and may
// dip below 0 on the way back; callers clamp where a negative value is not
// drawable.
//
// The per-frame step is linear in the offset from rest, so the state at
// frame n is the step matrix raised to n, evaluated in O(log n).
func Spring(frame, fps int, cfg SpringConfig) float64 {
	if frame <= 0 || fps <= 0 {
		return 0
	}

	m := stepMatrix(cfg.step(fps)).pow(frame)
	// Released at offset -1 from rest with zero velocity.
	pos := 1 - m[0][0]

	if cfg.OvershootClamping && pos > 1 {
		return 1
	}
	return pos
}

// matrix2 maps (offset, velocity) to the next frame's (offset, velocity).
type matrix2 [2][2]float64

// stepMatrix reads the transition coefficients back out of s by stepping
// the two unit states around an equilibrium of 0.
func stepMatrix(s harmonica.Spring) matrix2 {
	pp, vp := s.Update(1, 0, 0)
	pv, vv := s.Update(0, 1, 0)
	return matrix2{{pp, pv}, {vp, vv}}
}

func (a matrix2) mul(b matrix2) matrix2 {
	return matrix2{
		{a[0][0]*b[0][0] + a[0][1]*b[1][0], a[0][0]*b[0][1] + a[0][1]*b[1][1]},
		{a[1][0]*b[0][0] + a[1][1]*b[1][0], a[1][0]*b[0][1] + a[1][1]*b[1][1]},
	}
}

func (a matrix2) pow(n int) matrix2 {
	r := matrix2{{1, 0}, {0, 1}}
	for n > 0 {
		if n&1 == 1 {
			r = r.mul(a)
		}
		a = a.mul(a)
		n >>= 1
	}
	return r
}

// SpringBetween maps spring progress onto [from, to].
func SpringBetween(frame, fps int, cfg SpringConfig, from, to float64) float64 {
	return lerp(from, to, Spring(frame, fps, cfg))
}

// SpringSettleFrames reports the first frame after which the spring stays
// within threshold of 1. Evaluation stops after one minute of frames.
// It walks every frame once, so call it when planning durations rather than
// per rendered frame.
func SpringSettleFrames(fps int, cfg SpringConfig, threshold float64) int {
	if fps <= 0 {
		return 0
	}
	if threshold <= 0 {
		threshold = DefaultSettleThreshold
	}

	s := cfg.step(fps)
	limit := fps * 60
	pos, vel := 0.0, 0.0
	settled := 0
	for i := 1; i <= limit; i++ {
		pos, vel = s.Update(pos, vel, 1)
		if math.Abs(1-pos) >= threshold {
			settled = i + 1
		}
	}
	if settled > limit {
		return limit
	}
	return settled
}
