// math/interp_test.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"errors"
	"testing"
)

func TestInterpolate(t *testing.T) {
	bp := []Breakpoint{{0, 700}, {2000, 620}, {4000, 540}, {8000, 380}}

	tests := []struct {
		name     string
		x        float32
		expected float32
	}{
		{"first breakpoint", 0, 700},
		{"interior breakpoint", 4000, 540},
		{"last breakpoint", 8000, 380},
		{"below range clamps", -500, 700},
		{"above range clamps", 12000, 380},
		{"midpoint", 1000, 660},
		{"quarter", 5000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, err := Interpolate(bp, tt.x)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if y != tt.expected {
				t.Errorf("Interpolate(%f) = %f, expected %f", tt.x, y, tt.expected)
			}
		})
	}
}

func TestInterpolateSmallTables(t *testing.T) {
	if _, err := Interpolate(nil, 10); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("empty table: expected ErrInvalidTable, got %v", err)
	}

	single := []Breakpoint{{1000, 42}}
	for _, x := range []float32{0, 1000, 5000} {
		if y, err := Interpolate(single, x); err != nil || y != 42 {
			t.Errorf("single breakpoint at %f: got %f, %v; expected 42", x, y, err)
		}
	}
}

func TestInterpolateDuplicateX(t *testing.T) {
	// A step in the table.
	bp := []Breakpoint{{0, 10}, {10, 20}, {10, 30}, {20, 40}}
	if y, _ := Interpolate(bp, 15); y != 35 {
		t.Errorf("got %f, expected 35", y)
	}
	if y, _ := Interpolate(bp, 5); y != 15 {
		t.Errorf("got %f, expected 15", y)
	}
}

func TestTable(t *testing.T) {
	if _, err := MakeTable(Breakpoint{10, 1}, Breakpoint{5, 2}); !errors.Is(err, ErrUnsortedTable) {
		t.Errorf("expected ErrUnsortedTable, got %v", err)
	}

	bp := []Breakpoint{{0, 0}, {100, 50}}
	tbl, err := MakeTable(bp...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bp[1].Y = 1000 // the table owns a copy
	if y, _ := tbl.Lookup(50); y != 25 {
		t.Errorf("Lookup(50) = %f, expected 25", y)
	}
	if !tbl.Covers(100) || tbl.Covers(101) || tbl.Covers(-1) {
		t.Errorf("unexpected coverage for range %v", bp)
	}
	if lo, hi := tbl.Range(); lo != 0 || hi != 100 {
		t.Errorf("Range() = %f, %f", lo, hi)
	}
}
