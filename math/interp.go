// math/interp.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"errors"
	"slices"
)

var (
	ErrInvalidTable  = errors.New("Interpolation table needs at least two breakpoints")
	ErrUnsortedTable = errors.New("Interpolation table breakpoints are not in ascending order")
)

// Breakpoint is a single (x, y) entry of a piecewise-linear table.
type Breakpoint struct {
	X, Y float32
}

// Interpolate returns the piecewise-linear value of the table at x. The
// breakpoints must be sorted by X. Queries outside the table are clamped
// to the first or last Y; there is no extrapolation. A query that lands
// exactly on a breakpoint returns its Y unchanged.
func Interpolate(bp []Breakpoint, x float32) (float32, error) {
	switch {
	case len(bp) == 0:
		return 0, ErrInvalidTable
	case x <= bp[0].X:
		return bp[0].Y, nil
	case x >= bp[len(bp)-1].X:
		// A single breakpoint answers every query from one of these two
		// clamping cases.
		return bp[len(bp)-1].Y, nil
	}

	// Index of the first breakpoint with X >= x; bp[0].X < x so i >= 1.
	i, found := slices.BinarySearchFunc(bp, x, func(b Breakpoint, x float32) int {
		if b.X < x {
			return -1
		} else if b.X > x {
			return 1
		}
		return 0
	})
	if found {
		return bp[i].Y, nil
	}

	b0, b1 := bp[i-1], bp[i]
	if b1.X == b0.X {
		return b1.Y, nil
	}
	t := (x - b0.X) / (b1.X - b0.X)
	return Lerp(t, b0.Y, b1.Y), nil
}

// Table is a validated, ordered set of breakpoints.
type Table struct {
	bp []Breakpoint
}

// MakeTable returns a Table holding a copy of the given breakpoints. It
// returns ErrUnsortedTable if they are not in non-decreasing order of X.
func MakeTable(bp ...Breakpoint) (Table, error) {
	if !slices.IsSortedFunc(bp, func(a, b Breakpoint) int {
		if a.X < b.X {
			return -1
		} else if a.X > b.X {
			return 1
		}
		return 0
	}) {
		return Table{}, ErrUnsortedTable
	}
	return Table{bp: slices.Clone(bp)}, nil
}

func (t Table) Len() int { return len(t.bp) }

// Range returns the smallest and largest X covered by the table.
func (t Table) Range() (float32, float32) {
	if len(t.bp) == 0 {
		return 0, 0
	}
	return t.bp[0].X, t.bp[len(t.bp)-1].X
}

// Covers reports whether x lies within the table's breakpoints, i.e.,
// whether a lookup will be answered without clamping.
func (t Table) Covers(x float32) bool {
	lo, hi := t.Range()
	return len(t.bp) > 0 && x >= lo && x <= hi
}

func (t Table) Lookup(x float32) (float32, error) {
	return Interpolate(t.bp, x)
}
