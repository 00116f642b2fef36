// util/generic.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

// Select returns a if sel is true and b otherwise.
func Select[T any](sel bool, a, b T) T {
	if sel {
		return a
	}
	return b
}

// MapSlice returns the slice that results from applying xform to each
// element of from.
func MapSlice[F, T any](from []F, xform func(F) T) []T {
	var to []T
	for _, item := range from {
		to = append(to, xform(item))
	}
	return to
}

// Ptr returns a pointer to a copy of v; handy for optional record fields.
func Ptr[T any](v T) *T {
	return &v
}
