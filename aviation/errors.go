// aviation/errors.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "errors"

var (
	ErrInvalidDeviationEntry = errors.New("Deviation table headings must be in [0, 360)")
	ErrInvalidVariation      = errors.New("Invalid magnetic variation")
	ErrNoAircraftName        = errors.New("Aircraft profile has no name")
	ErrUnknownAirport        = errors.New("Unknown airport")
	ErrUnknownRunway         = errors.New("Unknown runway")
	ErrUnknownSurface        = errors.New("Unknown runway surface")
	ErrUnsupportedFormat     = errors.New("Unsupported data file format")
)
