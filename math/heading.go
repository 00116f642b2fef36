// math/heading.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// headings and directions

// NormalizeHeading reduces h to [0,360).
func NormalizeHeading(h float32) float32 {
	if h < 0 {
		h = 360 - Mod(-h, 360)
	}
	h = Mod(h, 360)
	if h >= 360 { // 360 - tiny can round up
		h = 0
	}
	return h
}

// NormalizeSigned reduces an angle to [-180,180].
func NormalizeSigned(a float32) float32 {
	a = NormalizeHeading(a)
	if a > 180 {
		a -= 360
	}
	return a
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float32, b float32) float32 {
	return Abs(NormalizeSigned(a - b))
}

// OppositeHeading returns the reciprocal of h, e.g. for the other end
// of a runway.
func OppositeHeading(h float32) float32 {
	return NormalizeHeading(h + 180)
}
