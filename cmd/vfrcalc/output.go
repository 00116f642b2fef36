// cmd/vfrcalc/output.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vfrkit/vfrkit/perf"

	"github.com/goforj/godump"
	"github.com/iancoleman/orderedmap"
	"github.com/labstack/gommon/color"
)

// writeJSON writes o with its keys in insertion order.
func writeJSON(w io.Writer, o *orderedmap.OrderedMap) error {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func dump(o *options, w io.Writer, v ...any) {
	if o.dump {
		godump.Fdump(w, v...)
	}
}

func decisionBanner(d perf.Decision) string {
	switch d {
	case perf.DecisionGo:
		return color.Green(string(d), color.B)
	case perf.DecisionMarginal:
		return color.Yellow(string(d), color.B)
	default:
		return color.Red(string(d), color.B)
	}
}

func writeNotes(w io.Writer, label string, notes []string, colorize func(any, ...string) string) {
	for _, n := range notes {
		fmt.Fprintf(w, "%s %s\n", colorize(label), n)
	}
}

func takeoffMap(r perf.TakeoffResult) *orderedmap.OrderedMap {
	atmos := orderedmap.New()
	atmos.Set("pressureAltitude", round(r.Atmosphere.PressureAltitude, 0))
	atmos.Set("densityAltitude", round(r.Atmosphere.DensityAltitude, 0))
	atmos.Set("oat", round(r.Atmosphere.OAT, 1))
	atmos.Set("isaDeviation", round(r.Atmosphere.ISADeviation, 1))
	atmos.Set("densityRatio", round(r.Atmosphere.DensityRatio, 4))

	vs := orderedmap.New()
	vs.Set("vr", round(r.VSpeeds.VR, 0))
	vs.Set("vx", round(r.VSpeeds.VX, 0))
	vs.Set("vy", round(r.VSpeeds.VY, 0))

	o := orderedmap.New()
	o.Set("decision", r.Decision)
	o.Set("safetyMargin", round(r.SafetyMargin, 3))
	o.Set("groundRoll", round(r.GroundRoll, 0))
	o.Set("climbDistance", round(r.ClimbDistance, 0))
	o.Set("obstacleDistance", round(r.ObstacleDistance, 0))
	o.Set("rateOfClimb", round(r.RateOfClimb, 0))
	o.Set("climbTAS", round(r.ClimbTAS, 0))
	o.Set("climbFuelFlow", round(r.ClimbFuelFlow, 1))
	o.Set("atmosphere", atmos)
	o.Set("vspeeds", vs)
	o.Set("warnings", nonNil(r.Warnings))
	o.Set("errors", nonNil(r.Errors))
	return o
}

func writeTakeoffText(w io.Writer, r perf.TakeoffResult) {
	fmt.Fprintf(w, "%s  margin %.0f%%\n", decisionBanner(r.Decision), 100*r.SafetyMargin)
	fmt.Fprintf(w, "  %s\n", r.Atmosphere)
	fmt.Fprintf(w, "  VR %.0f  VX %.0f  VY %.0f KIAS\n", r.VSpeeds.VR, r.VSpeeds.VX, r.VSpeeds.VY)
	fmt.Fprintf(w, "  ground roll %.0f'  climb %.0f'  over obstacle %.0f'\n", r.GroundRoll, r.ClimbDistance,
		r.ObstacleDistance)
	fmt.Fprintf(w, "  climb %.0f ft/min at %.0f KTAS, %.1f gph\n", r.RateOfClimb, r.ClimbTAS, r.ClimbFuelFlow)
	writeNotes(w, "  warning:", r.Warnings, color.Yellow)
	writeNotes(w, "  error:", r.Errors, color.Red)
}

func round(v float32, digits int) float64 {
	p := 1.0
	for i := 0; i < digits; i++ {
		p *= 10
	}
	f := float64(v) * p
	if f < 0 {
		return -float64(int64(-f+0.5)) / p
	}
	return float64(int64(f+0.5)) / p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
