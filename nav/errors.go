// nav/errors.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import "errors"

// Errors used by the nav package
var (
	ErrInvalidCourse          = errors.New("Course must be in [0, 360)")
	ErrInvalidDistance        = errors.New("Distance must not be negative")
	ErrInvalidFuel            = errors.New("Fuel must not be negative")
	ErrInvalidTAS             = errors.New("TAS must be positive")
	ErrInvalidWind            = errors.New("Invalid wind")
	ErrMissingCourse          = errors.New("No course given")
	ErrMissingTAS             = errors.New("No TAS given")
	ErrNegativeCruiseDistance = errors.New("Climb and descent distances exceed the leg distance")
	ErrNonPositiveGroundSpeed = errors.New("Ground speed is not positive")
	ErrPartialClimb           = errors.New("Climb needs TAS, distance and fuel")
	ErrPartialDescent         = errors.New("Descent needs TAS, distance and fuel")
	ErrWaypointsOutOfOrder    = errors.New("Waypoint distances must not decrease")
)
