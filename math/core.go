// math/core.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Degrees converts an angle expressed in radians to degrees
func Degrees(r float32) float32 {
	return r * 180 / gomath.Pi
}

// Radians converts an angle expressed in degrees to radians
func Radians(d float32) float32 {
	return d / 180 * gomath.Pi
}

// A number of utility functions for evaluating transcendentals and the
// like follow; everything in the calculators is float32, so it's handy to
// be able to call these directly rather than with all of the casts that
// are required when using the math package.

func Sin(a float32) float32 {
	return float32(gomath.Sin(float64(a)))
}

func Cos(a float32) float32 {
	return float32(gomath.Cos(float64(a)))
}

// SafeASin clamps its argument to [-1,1] so that it never returns NaN.
func SafeASin(a float32) float32 {
	return float32(gomath.Asin(float64(Clamp(a, -1, 1))))
}

func Sqrt(a float32) float32 {
	return float32(gomath.Sqrt(float64(a)))
}

func Mod(a, b float32) float32 {
	return float32(gomath.Mod(float64(a), float64(b)))
}

func Pow(a, b float32) float32 {
	return float32(gomath.Pow(float64(a), float64(b)))
}

func Round(v float32) float32 {
	return float32(gomath.Round(float64(v)))
}

func IsNaN(v float32) bool {
	return gomath.IsNaN(float64(v))
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// Lerp linearly interpolates x of the way between a and b. x==0
// corresponds to a, x==1 corresponds to b, etc.
func Lerp(x, a, b float32) float32 {
	return (1-x)*a + x*b
}
