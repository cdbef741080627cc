// Package anim holds the frame-driven animation primitives: piecewise-linear
// interpolation, spring progress curves and the typewriter reveal.
//
// Every function is a pure mapping from a frame number (and fixed
// configuration) to a value, so frames can be evaluated in any order and
// from any goroutine.
package anim
