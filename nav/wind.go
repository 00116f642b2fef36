// nav/wind.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	"github.com/vfrkit/vfrkit/math"
	"github.com/vfrkit/vfrkit/wx"
)

// ETASThreshold is the wind correction angle (degrees) above which the
// ground speed is computed from the effective TAS, TAS·cos(WCA), rather
// than from the TAS itself. The jump in ground speed at the threshold is
// part of the method and is kept as is.
const ETASThreshold = 10

// WindSolution is the solution of the wind triangle for a course.
type WindSolution struct {
	// WCA is the wind correction angle in degrees; positive means the
	// heading is to the right of the course.
	WCA         float32
	GroundSpeed float32
	// Crosswind is positive for wind from the right.
	Crosswind float32
	// Headwind is positive for wind on the nose and negative for a
	// tailwind.
	Headwind float32
	// ETAS is only meaningful if HasETAS is set.
	ETAS    float32
	HasETAS bool
	// Unreliable is set when the crosswind exceeds the TAS: the course
	// can't be held and WCA is clamped to ±90.
	Unreliable bool
}

// Warning returns a description of the problem with an unreliable
// solution, or "" if the solution is fine.
func (ws WindSolution) Warning() string {
	if !ws.Unreliable {
		return ""
	}
	return fmt.Sprintf("crosswind %.0f kts exceeds TAS; course can't be held", math.Abs(ws.Crosswind))
}

// SolveWindTriangle solves the wind triangle for the given true course,
// wind (from, degrees true) and TAS.
func SolveWindTriangle(course float32, wind wx.Wind, tas float32) WindSolution {
	var ws WindSolution
	ws.Headwind, ws.Crosswind = wind.Components(course)

	ratio := ws.Crosswind / tas
	ws.Unreliable = math.Abs(ratio) > 1
	ws.WCA = math.Degrees(math.SafeASin(math.Clamp(ratio, -1, 1)))

	if usesETAS(ws.WCA) {
		ws.ETAS = tas * math.Cos(math.Radians(ws.WCA))
		ws.HasETAS = true
		ws.GroundSpeed = ws.ETAS - ws.Headwind
	} else {
		ws.GroundSpeed = tas - ws.Headwind
	}
	return ws
}

func usesETAS(wca float32) bool {
	return math.Abs(wca) > ETASThreshold
}
