// math/heading_test.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestNormalizeHeading(t *testing.T) {
	for _, h := range [][2]float32{{0, 0}, {360, 0}, {370, 10}, {-10, 350}, {-360, 0}, {-725, 355}, {359.5, 359.5}} {
		if n := NormalizeHeading(h[0]); Abs(n-h[1]) > 1e-4 {
			t.Errorf("NormalizeHeading(%f) = %f, expected %f", h[0], n, h[1])
		}
	}
}

func TestNormalizeSigned(t *testing.T) {
	for _, h := range [][2]float32{{0, 0}, {90, 90}, {180, 180}, {190, -170}, {-190, 170}, {270, -90}, {-90, -90}} {
		if n := NormalizeSigned(h[0]); Abs(n-h[1]) > 1e-4 {
			t.Errorf("NormalizeSigned(%f) = %f, expected %f", h[0], n, h[1])
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	type hd struct {
		a, b, d float32
	}

	for _, h := range []hd{hd{10, 90, 80}, hd{350, 12, 22}, hd{340, 120, 140}, hd{-90, 80, 170},
		hd{40, 181, 141}, hd{-170, 160, 30}, hd{-120, -150, 30}} {
		if d := HeadingDifference(h.a, h.b); Abs(d-h.d) > 1e-4 {
			t.Errorf("HeadingDifference(%f, %f) -> %f, expected %f", h.a, h.b, d, h.d)
		}
		if d := HeadingDifference(h.b, h.a); Abs(d-h.d) > 1e-4 {
			t.Errorf("HeadingDifference(%f, %f) -> %f, expected %f", h.b, h.a, d, h.d)
		}
	}
}

func TestOppositeHeading(t *testing.T) {
	for _, h := range []struct{ h, opp float32 }{{0, 180}, {90, 270}, {281.2, 101.2}, {180, 0}, {-10, 170}} {
		if opp := OppositeHeading(h.h); Abs(opp-h.opp) > 1e-3 {
			t.Errorf("OppositeHeading(%f) = %f, expected %f", h.h, opp, h.opp)
		}
	}
}
