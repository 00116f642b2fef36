// perf/takeoff.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package perf

import (
	"fmt"

	av "github.com/vfrkit/vfrkit/aviation"
	"github.com/vfrkit/vfrkit/log"
	"github.com/vfrkit/vfrkit/math"
	"github.com/vfrkit/vfrkit/util"
	"github.com/vfrkit/vfrkit/wx"
)

const (
	// Safety margins (fraction of the runway left over after clearing the
	// obstacle) for the decision.
	GoMargin = 0.20

	feetPerNM = 6076.12

	maxRecommendedSlope = 2 // percent
)

type Decision string

const (
	DecisionGo       Decision = "GO"
	DecisionMarginal Decision = "MARGINAL"
	DecisionNoGo     Decision = "NO-GO"
)

func DecisionForMargin(margin float32) Decision {
	switch {
	case margin >= GoMargin:
		return DecisionGo
	case margin >= 0:
		return DecisionMarginal
	default:
		return DecisionNoGo
	}
}

// AltitudeSource gives the field's altitude in one of the ways a pilot
// may know it: PressureAltitude, ElevationQNH, or DensityAltitude.
type AltitudeSource interface {
	pressureAltitude(oat *float32, e *util.ErrorLogger) (float32, bool)
}

// PressureAltitude is a pressure altitude in feet.
type PressureAltitude struct {
	Feet float32
}

func (p PressureAltitude) pressureAltitude(oat *float32, e *util.ErrorLogger) (float32, bool) {
	return p.Feet, true
}

// ElevationQNH is the field elevation (feet) and altimeter setting (hPa).
type ElevationQNH struct {
	Elevation float32
	QNH       float32
}

func (eq ElevationQNH) pressureAltitude(oat *float32, e *util.ErrorLogger) (float32, bool) {
	if eq.QNH <= 0 {
		e.ErrorString("QNH %.1f must be positive", eq.QNH)
		return 0, false
	}
	if eq.QNH < 900 || eq.QNH > 1100 {
		e.WarningString("QNH %.1f hPa is implausible", eq.QNH)
	}
	return wx.PressureAltitudeFromQNH(eq.Elevation, eq.QNH), true
}

// DensityAltitude is a density altitude in feet. The pressure altitude
// is recovered from it if the OAT is known; otherwise ISA is assumed and
// the two are equal.
type DensityAltitude struct {
	Feet float32
}

func (d DensityAltitude) pressureAltitude(oat *float32, e *util.ErrorLogger) (float32, bool) {
	if oat == nil {
		return d.Feet, true
	}
	return wx.PressureAltitudeFromDensity(d.Feet, *oat), true
}

type TakeoffInput struct {
	Aircraft *av.AircraftPerformance
	Weight   float32

	Altitude AltitudeSource
	// OAT is in Celsius; ISA is assumed if nil.
	OAT *float32

	RunwayLength float32 // ft
	Surface      av.SurfaceCategory
	Slope        float32 // percent, positive uphill

	Headwind  float32 // kts, negative for a tailwind
	Crosswind float32 // kts

	ObstacleHeight float32 // ft
}

type TakeoffResult struct {
	Atmosphere wx.Atmosphere
	VSpeeds    av.VSpeeds // KIAS

	GroundRoll       float32 // ft
	ClimbDistance    float32 // ft, from liftoff to clearing the obstacle
	ObstacleDistance float32 // ft

	RateOfClimb   float32 // ft/min at the takeoff weight
	ClimbTAS      float32
	ClimbFuelFlow float32

	SafetyMargin float32
	Decision     Decision

	Warnings []string
	Errors   []string
}

// ComputeTakeoff estimates the takeoff ground roll and the distance to
// clear an obstacle by scaling the POH figures for the conditions.
// Problems are reported in the result's Errors and Warnings; with any
// errors, the decision is NO-GO but partial results are still filled in.
func ComputeTakeoff(in TakeoffInput, lg *log.Logger) TakeoffResult {
	var res TakeoffResult
	var e util.ErrorLogger
	e.Push("takeoff")

	finish := func() TakeoffResult {
		e.Pop()
		e.CheckDepth(0)

		res.Errors, res.Warnings = e.Errors(), e.Warnings()
		if e.HaveErrors() {
			res.Decision = DecisionNoGo
		} else {
			res.Decision = DecisionForMargin(res.SafetyMargin)
		}
		lg.Debug("takeoff", "weight", in.Weight, "atmosphere", res.Atmosphere, "groundRoll", res.GroundRoll,
			"obstacleDistance", res.ObstacleDistance, "decision", res.Decision, "errors", res.Errors,
			"warnings", res.Warnings)
		return res
	}

	ap := in.Aircraft
	if ap == nil {
		e.ErrorString("no aircraft performance data")
		return finish()
	}
	checkInputs(in, &e)

	// Atmosphere
	e.Push("atmosphere")
	pa, ok := float32(0), false
	if in.Altitude == nil {
		e.ErrorString("no altitude given")
	} else {
		pa, ok = in.Altitude.pressureAltitude(in.OAT, &e)
	}
	var oat float32
	if in.OAT != nil {
		oat = *in.OAT
	} else {
		oat = wx.ISATemperature(pa)
		e.WarningString("no OAT given; ISA temperature %.1fC assumed", oat)
	}
	e.Pop()
	if !ok {
		return finish()
	}
	res.Atmosphere = wx.MakeAtmosphere(pa, oat)
	da, sigma := res.Atmosphere.DensityAltitude, res.Atmosphere.DensityRatio

	// Climb performance
	e.Push("climb table")
	if lo, hi := ap.ClimbRange(); len(ap.Climb) > 0 && (da < lo || da > hi) {
		e.WarningString("density altitude %.0f' outside table range %.0f'-%.0f'; clamped", da, lo, hi)
	}
	climb, err := ap.ClimbAt(da)
	if err != nil {
		e.Error(err)
	} else if in.Weight > 0 && ap.Weight.Reference > 0 {
		res.RateOfClimb = climb.ROC * ap.Weight.Reference / in.Weight
		res.ClimbTAS = climb.TAS
		res.ClimbFuelFlow = climb.FuelFlow
		if res.RateOfClimb <= 0 {
			e.ErrorString("rate of climb %.0f ft/min is not positive", res.RateOfClimb)
		}
	}
	e.Pop()

	// V-speeds
	e.Push("vspeeds")
	res.VSpeeds, err = ap.VSpeedsAt(in.Weight)
	if err != nil {
		e.Error(err)
	}
	e.Pop()

	if e.HaveErrors() {
		return finish()
	}

	e.Push("runway")
	computeDistances(in, da, sigma, &res, &e)
	e.Pop()

	return finish()
}

func computeDistances(in TakeoffInput, da, sigma float32, res *TakeoffResult, e *util.ErrorLogger) {
	vrTAS := wx.IASToTAS(res.VSpeeds.VR, da)
	vxTAS := wx.IASToTAS(res.VSpeeds.VX, da)

	surfaceFactor, ok := in.Surface.DragFactor()
	if !ok {
		if in.Surface == av.SurfaceWater {
			e.ErrorString("can't take off from water")
			return
		}
		e.WarningString("unknown runway surface; paved runway assumed")
		surfaceFactor = 1
	}

	if in.Headwind >= vrTAS {
		e.ErrorString("headwind %.0f kts is at or above the liftoff speed %.0f KTAS", in.Headwind, vrTAS)
		return
	}
	windFactor := math.Sqr(1 - in.Headwind/vrTAS)
	slopeFactor := 1 + 0.1*in.Slope
	weightFactor := math.Sqr(in.Weight / in.Aircraft.Weight.Reference)

	res.GroundRoll = in.Aircraft.Takeoff.GroundRoll / math.Sqr(sigma) * weightFactor * surfaceFactor * windFactor *
		slopeFactor

	climbGS := max(vxTAS-in.Headwind, 0)
	res.ClimbDistance = in.ObstacleHeight * climbGS * (feetPerNM / 60) / res.RateOfClimb
	res.ObstacleDistance = res.GroundRoll + res.ClimbDistance

	if res.GroundRoll < 0 || res.ClimbDistance < 0 {
		e.ErrorString("negative takeoff distance computed (ground roll %.0f', climb %.0f')", res.GroundRoll,
			res.ClimbDistance)
		return
	}

	res.SafetyMargin = (in.RunwayLength - res.ObstacleDistance) / in.RunwayLength
}

// checkInputs reports inputs that make the calculation impossible as
// errors and ones outside the aircraft's envelope as warnings.
func checkInputs(in TakeoffInput, e *util.ErrorLogger) {
	e.Push("inputs")
	defer e.Pop()

	ap := in.Aircraft
	if in.Weight <= 0 {
		e.ErrorString("weight %.0f must be positive", in.Weight)
	} else if ap.Weight.Max > 0 && in.Weight > ap.Weight.Max {
		e.WarningString("weight %.0f exceeds maximum takeoff weight %.0f", in.Weight, ap.Weight.Max)
	}
	if ap.Weight.Reference <= 0 {
		e.ErrorString("aircraft reference weight must be positive")
	}
	if ap.Takeoff.GroundRoll <= 0 {
		e.ErrorString("aircraft has no POH ground roll")
	}
	if in.RunwayLength <= 0 {
		e.ErrorString("runway length %.0f must be positive", in.RunwayLength)
	}
	if in.ObstacleHeight < 0 {
		e.ErrorString("obstacle height %.0f must not be negative", in.ObstacleHeight)
	}
	if in.Slope <= -10 {
		e.ErrorString("runway slope %.1f%% is implausible", in.Slope)
	} else if math.Abs(in.Slope) > maxRecommendedSlope {
		e.WarningString("runway slope %.1f%% is beyond %d%%", in.Slope, maxRecommendedSlope)
	}
	if in.Headwind < 0 {
		e.WarningString("tailwind component %.0f kts", -in.Headwind)
	}
	if xw := math.Abs(in.Crosswind); ap.MaxDemonstratedCrosswind > 0 && xw > ap.MaxDemonstratedCrosswind {
		e.WarningString("crosswind %.0f kts exceeds demonstrated %.0f kts", xw, ap.MaxDemonstratedCrosswind)
	}
}

func (r TakeoffResult) String() string {
	return fmt.Sprintf("%s: ground roll %.0f', obstacle %.0f', margin %.0f%%", r.Decision, r.GroundRoll,
		r.ObstacleDistance, 100*r.SafetyMargin)
}
