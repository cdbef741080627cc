package anim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when an interpolation table is malformed.
var ErrInvalidRange = errors.New("invalid interpolation range")

// Extrapolate selects what happens outside the input range.
type Extrapolate int

const (
	// Extend continues the nearest segment linearly.
	Extend Extrapolate = iota
	// Clamp pins to the boundary output value.
	Clamp
	// Identity returns the input unchanged.
	Identity
	// Wrap repeats the table periodically.
	Wrap
)

func (e Extrapolate) String() string {
	switch e {
	case Clamp:
		return "clamp"
	case Identity:
		return "identity"
	case Wrap:
		return "wrap"
	default:
		return "extend"
	}
}

// Easing maps a segment ratio in [0,1] onto [0,1].
type Easing func(t float64) float64

type options struct {
	left, right Extrapolate
	easing      Easing
}

// Option configures a single interpolation call.
type Option func(*options)

// ExtrapolateLeft sets the policy for inputs below the first breakpoint.
func ExtrapolateLeft(e Extrapolate) Option {
	return func(o *options) { o.left = e }
}

// ExtrapolateRight sets the policy for inputs above the last breakpoint.
func ExtrapolateRight(e Extrapolate) Option {
	return func(o *options) { o.right = e }
}

// Clamped pins both sides.
func Clamped() Option {
	return func(o *options) {
		o.left = Clamp
		o.right = Clamp
	}
}

// WithEasing applies fn to the ratio inside the bracketing segment.
func WithEasing(fn Easing) Option {
	return func(o *options) { o.easing = fn }
}

// Table is a validated piecewise-linear mapping.
type Table struct {
	in  []float64
	out []float64
}

// NewTable validates and copies the breakpoint table.
func NewTable(in, out []float64) (*Table, error) {
	if len(in) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 breakpoints, got %d", ErrInvalidRange, len(in))
	}
	if len(in) != len(out) {
		return nil, fmt.Errorf("%w: input has %d entries, output has %d", ErrInvalidRange, len(in), len(out))
	}
	for i, v := range in {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: input[%d] is not finite", ErrInvalidRange, i)
		}
		if i > 0 && v <= in[i-1] {
			return nil, fmt.Errorf("%w: input must be strictly increasing (input[%d]=%g <= input[%d]=%g)",
				ErrInvalidRange, i, v, i-1, in[i-1])
		}
	}

	t := &Table{
		in:  make([]float64, len(in)),
		out: make([]float64, len(out)),
	}
	copy(t.in, in)
	copy(t.out, out)
	return t, nil
}

// MustTable is NewTable for tables fixed at authoring time.
func MustTable(in, out []float64) *Table {
	t, err := NewTable(in, out)
	if err != nil {
		panic(err)
	}
	return t
}

// Interpolate maps x through the table described by in/out.
func Interpolate(x float64, in, out []float64, opts ...Option) (float64, error) {
	t, err := NewTable(in, out)
	if err != nil {
		return 0, err
	}
	return t.At(x, opts...), nil
}

// At evaluates the table at x. Both sides extend by default. A NaN x
// yields the first output, whatever the extrapolation.
func (t *Table) At(x float64, opts ...Option) float64 {
	if math.IsNaN(x) {
		return t.out[0]
	}

	o := options{left: Extend, right: Extend}
	for _, opt := range opts {
		opt(&o)
	}

	first, last := t.in[0], t.in[len(t.in)-1]

	if x < first {
		switch o.left {
		case Clamp:
			return t.out[0]
		case Identity:
			return x
		case Wrap:
			x = wrap(x, first, last)
		}
	} else if x > last {
		switch o.right {
		case Clamp:
			return t.out[len(t.out)-1]
		case Identity:
			return x
		case Wrap:
			x = wrap(x, first, last)
		}
	}

	k := t.segment(x)
	ratio := (x - t.in[k]) / (t.in[k+1] - t.in[k])
	if o.easing != nil {
		ratio = o.easing(ratio)
	}
	return lerp(t.out[k], t.out[k+1], ratio)
}

// segment returns k such that in[k] <= x < in[k+1], using the outer
// segments for out-of-range inputs.
func (t *Table) segment(x float64) int {
	n := len(t.in)
	for k := 1; k < n-1; k++ {
		if x < t.in[k] {
			return k - 1
		}
	}
	return n - 2
}

func wrap(x, lo, hi float64) float64 {
	span := hi - lo
	m := math.Mod(x-lo, span)
	if m < 0 {
		m += span
	}
	return lo + m
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseInOutCubic accelerates then decelerates.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func EaseInQuad(t float64) float64 { return t * t }

func EaseOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

func EaseOutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }
