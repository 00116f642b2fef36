// nav/waypoint.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	gomath "math"

	"github.com/vfrkit/vfrkit/math"
	"github.com/vfrkit/vfrkit/util"
)

const (
	TopOfClimbName     = "Top of Climb"
	DescentStartedName = "Descent Started"
)

// Waypoint is a checkpoint along a leg; Distance is measured from the
// start of the leg.
type Waypoint struct {
	Name     string  `json:"name"`
	Distance float32 `json:"distance"`
}

// FlightParams carries the state of the flight at the start of the leg.
type FlightParams struct {
	Departure *util.TimeOfDay
	Prior     Elapsed
}

type WaypointResult struct {
	Name string `json:"name"`
	// Synthetic is set for the top of climb and start of descent
	// checkpoints.
	Synthetic         bool    `json:"synthetic,omitempty"`
	Distance          float32 `json:"distance"`
	DistanceSinceLast float32 `json:"distanceSinceLast"`
	TimeSinceLast     float32 `json:"timeSinceLast"`
	FuelSinceLast     float32 `json:"fuelSinceLast"`
	// Elapsed is cumulative, including the prior legs.
	Elapsed Elapsed         `json:"elapsed"`
	ETA     *util.TimeOfDay `json:"eta,omitempty"`
}

// region is a stretch of the leg flown at a single ground speed.
type region struct {
	name        string
	start, end  float32
	groundSpeed float32
	// Fuel is either pro-rated by distance (climb and descent) or by time.
	fuelPerNM   float32
	fuelPerHour float32
}

func (r region) traverse(a, b float32) (time, fuel float32, err error) {
	lo, hi := max(a, r.start), min(b, r.end)
	if hi <= lo {
		return 0, 0, nil
	}
	if r.groundSpeed <= 0 {
		return 0, 0, fmt.Errorf("%s: %.1f kts: %w", r.name, r.groundSpeed, ErrNonPositiveGroundSpeed)
	}
	d := hi - lo
	time = d / r.groundSpeed
	fuel = d*r.fuelPerNM + time*r.fuelPerHour
	return
}

// AccumulateWaypoints computes distance, time and fuel between the
// given checkpoints, which must be in order of increasing distance.
// Top of climb and start of descent checkpoints are added for the
// climb and descent phases if present. Each stretch of the leg is
// flown at its phase's ground speed.
func AccumulateWaypoints(waypoints []Waypoint, groundSpeed, fuelFlow float32, params FlightParams,
	totalDistance float32, climb *PhaseResult, descent *PhaseResult) ([]WaypointResult, error) {
	for i, wp := range waypoints {
		if wp.Distance < 0 || math.IsNaN(wp.Distance) {
			return nil, fmt.Errorf("%s: %w", wp.Name, ErrInvalidDistance)
		}
		if i > 0 && wp.Distance < waypoints[i-1].Distance {
			return nil, fmt.Errorf("%s at %.1f nm after %s at %.1f nm: %w", wp.Name, wp.Distance,
				waypoints[i-1].Name, waypoints[i-1].Distance, ErrWaypointsOutOfOrder)
		}
	}

	toc, tod := float32(0), float32(gomath.Inf(1))
	var synthetic []Waypoint
	var regions []region
	if climb != nil && climb.Distance > 0 {
		toc = climb.Distance
		synthetic = append(synthetic, Waypoint{Name: TopOfClimbName, Distance: toc})
		regions = append(regions, region{
			name:        "climb",
			start:       0,
			end:         toc,
			groundSpeed: climb.GroundSpeed,
			fuelPerNM:   climb.FuelUsed / climb.Distance,
		})
	}
	if descent != nil && descent.Distance > 0 {
		tod = max(toc, totalDistance-descent.Distance)
		synthetic = append(synthetic, Waypoint{Name: DescentStartedName, Distance: tod})
	}
	regions = append(regions, region{
		name:        "cruise",
		start:       toc,
		end:         tod,
		groundSpeed: groundSpeed,
		fuelPerHour: fuelFlow,
	})
	if descent != nil && descent.Distance > 0 {
		regions = append(regions, region{
			name:        "descent",
			start:       tod,
			end:         float32(gomath.Inf(1)),
			groundSpeed: descent.GroundSpeed,
			fuelPerNM:   descent.FuelUsed / descent.Distance,
		})
	}

	// Merge the two sorted sequences; at equal distances the user's
	// checkpoint comes first.
	merged := make([]WaypointResult, 0, len(waypoints)+len(synthetic))
	i, j := 0, 0
	for i < len(waypoints) || j < len(synthetic) {
		if j == len(synthetic) || (i < len(waypoints) && waypoints[i].Distance <= synthetic[j].Distance) {
			merged = append(merged, WaypointResult{Name: waypoints[i].Name, Distance: waypoints[i].Distance})
			i++
		} else {
			merged = append(merged, WaypointResult{Name: synthetic[j].Name, Distance: synthetic[j].Distance,
				Synthetic: true})
			j++
		}
	}

	elapsed := params.Prior
	var last float32
	for k := range merged {
		wr := &merged[k]
		wr.DistanceSinceLast = wr.Distance - last

		for _, r := range regions {
			t, f, err := r.traverse(last, wr.Distance)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", wr.Name, err)
			}
			wr.TimeSinceLast += t
			wr.FuelSinceLast += f
		}

		elapsed = elapsed.Add(Elapsed{Time: wr.TimeSinceLast, Fuel: wr.FuelSinceLast})
		wr.Elapsed = elapsed
		if params.Departure != nil {
			wr.ETA = util.Ptr(params.Departure.Add(elapsed.Time))
		}
		last = wr.Distance

		NavLog(NavLogWaypoint, "%s: %+v", wr.Name, *wr)
	}

	return merged, nil
}
