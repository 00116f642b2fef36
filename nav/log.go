// nav/log.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

// Available trace logging categories
const (
	NavLogWind     = "wind"
	NavLogPhase    = "phase"
	NavLogHeading  = "heading"
	NavLogWaypoint = "waypoint"
)

var allNavLogCategories = []string{NavLogWind, NavLogPhase, NavLogHeading, NavLogWaypoint}
