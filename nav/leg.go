// nav/leg.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	av "github.com/vfrkit/vfrkit/aviation"
	"github.com/vfrkit/vfrkit/log"
	"github.com/vfrkit/vfrkit/math"
	"github.com/vfrkit/vfrkit/util"
	"github.com/vfrkit/vfrkit/wx"
)

// Elapsed is time (hours) and fuel accumulated over a flight.
type Elapsed struct {
	Time float32 `json:"time"`
	Fuel float32 `json:"fuel"`
}

func (e Elapsed) Add(o Elapsed) Elapsed {
	return Elapsed{Time: e.Time + o.Time, Fuel: e.Fuel + o.Fuel}
}

// PhaseSegment describes a climb or descent at the start or end of a
// leg. Fuel is the total fuel used for the segment.
type PhaseSegment struct {
	TAS      float32
	Distance float32
	Fuel     float32
	// Wind is the wind for the segment; the leg's wind is used if nil.
	Wind *wx.Wind
}

func (ps *PhaseSegment) validate(name string) error {
	if ps.TAS <= 0 || math.IsNaN(ps.TAS) {
		return fmt.Errorf("%s: %w", name, ErrInvalidTAS)
	}
	if ps.Distance < 0 || math.IsNaN(ps.Distance) {
		return fmt.Errorf("%s: %w", name, ErrInvalidDistance)
	}
	if ps.Fuel < 0 || math.IsNaN(ps.Fuel) {
		return fmt.Errorf("%s: %w", name, ErrInvalidFuel)
	}
	if ps.Wind != nil {
		if err := ps.Wind.Validate(); err != nil {
			return fmt.Errorf("%s: %w: %v", name, ErrInvalidWind, err)
		}
	}
	return nil
}

// LegInput is a validated description of a single leg.
type LegInput struct {
	TrueCourse float32
	TAS        float32
	Wind       wx.Wind
	// MagneticVariation is east positive.
	MagneticVariation float32
	// Distance is the leg length in nm; 0 if not known.
	Distance float32
	// FuelFlow is the cruise fuel flow per hour; 0 if not known.
	FuelFlow float32

	// Prior is the time and fuel of the legs flown before this one.
	Prior     Elapsed
	Departure *util.TimeOfDay

	Climb   *PhaseSegment
	Descent *PhaseSegment

	AdditionalFuel float32
	// ApproachFuel is only added for the final leg.
	ApproachFuel float32
	FinalLeg     bool

	Deviation av.DeviationTable
}

func (li LegInput) Validate() error {
	if li.TrueCourse < 0 || li.TrueCourse >= 360 || math.IsNaN(li.TrueCourse) {
		return fmt.Errorf("%.1f: %w", li.TrueCourse, ErrInvalidCourse)
	}
	if li.TAS <= 0 || math.IsNaN(li.TAS) {
		return fmt.Errorf("%.1f: %w", li.TAS, ErrInvalidTAS)
	}
	if err := li.Wind.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWind, err)
	}
	if li.Distance < 0 || math.IsNaN(li.Distance) {
		return fmt.Errorf("leg: %w", ErrInvalidDistance)
	}
	for _, f := range []float32{li.FuelFlow, li.Prior.Fuel, li.AdditionalFuel, li.ApproachFuel} {
		if f < 0 || math.IsNaN(f) {
			return fmt.Errorf("leg: %w", ErrInvalidFuel)
		}
	}
	if li.Prior.Time < 0 {
		return fmt.Errorf("prior time %.2f must not be negative", li.Prior.Time)
	}
	if li.Climb != nil {
		if err := li.Climb.validate("climb"); err != nil {
			return err
		}
	}
	if li.Descent != nil {
		if err := li.Descent.validate("descent"); err != nil {
			return err
		}
	}
	return nil
}

// LegForm is the sparse form of a leg as entered by a user: every field
// is optional. Validate converts it into a LegInput.
type LegForm struct {
	TrueCourse        *float32
	TAS               *float32
	WindDirection     *float32
	WindSpeed         *float32
	MagneticVariation *float32
	Distance          *float32
	FuelFlow          *float32

	PriorTime *float32
	PriorFuel *float32
	Departure *util.TimeOfDay

	ClimbTAS      *float32
	ClimbDistance *float32
	ClimbFuel     *float32
	ClimbWind     *wx.Wind

	DescentTAS      *float32
	DescentDistance *float32
	DescentFuel     *float32
	DescentWind     *wx.Wind

	AdditionalFuel *float32
	ApproachFuel   *float32
	FinalLeg       bool

	Deviation []av.DeviationEntry
}

func valueOr(v *float32, def float32) float32 {
	if v == nil {
		return def
	}
	return *v
}

// makeSegment returns nil if no field of the segment was given and
// errPartial if only some of them were.
func makeSegment(tas, dist, fuel *float32, wind *wx.Wind, errPartial error) (*PhaseSegment, error) {
	switch {
	case tas == nil && dist == nil && fuel == nil:
		if wind != nil {
			return nil, errPartial
		}
		return nil, nil
	case tas == nil || dist == nil || fuel == nil:
		return nil, errPartial
	default:
		return &PhaseSegment{TAS: *tas, Distance: *dist, Fuel: *fuel, Wind: wind}, nil
	}
}

// Validate checks the form and returns the corresponding LegInput. A
// missing wind is taken to be calm; other missing optional values are
// taken to be zero.
func (f LegForm) Validate() (LegInput, error) {
	if f.TrueCourse == nil {
		return LegInput{}, ErrMissingCourse
	}
	if f.TAS == nil {
		return LegInput{}, ErrMissingTAS
	}
	if (f.WindDirection == nil) != (f.WindSpeed == nil) {
		return LegInput{}, fmt.Errorf("%w: direction and speed must be given together", ErrInvalidWind)
	}

	li := LegInput{
		TrueCourse:        *f.TrueCourse,
		TAS:               *f.TAS,
		Wind:              wx.Wind{Direction: valueOr(f.WindDirection, 0), Speed: valueOr(f.WindSpeed, 0)},
		MagneticVariation: valueOr(f.MagneticVariation, 0),
		Distance:          valueOr(f.Distance, 0),
		FuelFlow:          valueOr(f.FuelFlow, 0),
		Prior:             Elapsed{Time: valueOr(f.PriorTime, 0), Fuel: valueOr(f.PriorFuel, 0)},
		Departure:         f.Departure,
		AdditionalFuel:    valueOr(f.AdditionalFuel, 0),
		ApproachFuel:      valueOr(f.ApproachFuel, 0),
		FinalLeg:          f.FinalLeg,
	}
	if li.TrueCourse == 360 {
		li.TrueCourse = 0
	}

	var err error
	if li.Climb, err = makeSegment(f.ClimbTAS, f.ClimbDistance, f.ClimbFuel, f.ClimbWind, ErrPartialClimb); err != nil {
		return LegInput{}, err
	}
	if li.Descent, err = makeSegment(f.DescentTAS, f.DescentDistance, f.DescentFuel, f.DescentWind, ErrPartialDescent); err != nil {
		return LegInput{}, err
	}
	if li.Deviation, err = av.MakeDeviationTable(f.Deviation...); err != nil {
		return LegInput{}, err
	}

	if err := li.Validate(); err != nil {
		return LegInput{}, err
	}
	return li, nil
}

// PhaseResult is the outcome of one phase (climb, cruise or descent) of
// a leg.
type PhaseResult struct {
	Distance    float32 `json:"distance"`
	GroundSpeed float32 `json:"groundSpeed"`
	Time        float32 `json:"time"` // hours
	FuelUsed    float32 `json:"fuelUsed"`
	TAS         float32 `json:"tas"`
	WCA         float32 `json:"wca"`
}

// CourseResult is the outcome of ComputeLeg. Optional values are nil
// when they can't be computed from the inputs given.
type CourseResult struct {
	TrueHeading         float32
	MagneticCourse      float32
	WindCorrectionAngle float32
	MagneticHeading     float32
	Deviation           float32
	CompassCourse       float32

	GroundSpeed float32
	ETAS        *float32
	Crosswind   float32 // positive from the right
	Headwind    float32 // positive on the nose

	// LegTime is in hours; it is zero if the leg distance isn't known.
	LegTime float32
	ETA     *util.TimeOfDay
	LegFuel *float32

	Climb   *PhaseResult
	Cruise  *PhaseResult
	Descent *PhaseResult

	// Elapsed includes the prior legs.
	Elapsed Elapsed

	Warnings []string
}

// ComputeLeg computes headings, ground speed, time and fuel for a leg. lg
// may be nil.
func ComputeLeg(in LegInput, lg *log.Logger) (CourseResult, error) {
	if err := in.Validate(); err != nil {
		return CourseResult{}, err
	}

	var res CourseResult
	warn := func(phase string, ws WindSolution) {
		if msg := ws.Warning(); msg != "" {
			res.Warnings = append(res.Warnings, phase+": "+msg)
			lg.Info("unreliable wind solution", "phase", phase, "crosswind", ws.Crosswind)
		}
	}

	cruise := SolveWindTriangle(in.TrueCourse, in.Wind, in.TAS)
	NavLog(NavLogWind, "cruise %s on %03.0f TAS %.0f: %+v", in.Wind, in.TrueCourse, in.TAS, cruise)
	warn("cruise", cruise)

	res.WindCorrectionAngle = cruise.WCA
	res.GroundSpeed = cruise.GroundSpeed
	res.Crosswind = cruise.Crosswind
	res.Headwind = cruise.Headwind
	if cruise.HasETAS {
		res.ETAS = util.Ptr(cruise.ETAS)
	}

	res.TrueHeading = math.NormalizeHeading(in.TrueCourse + cruise.WCA)
	res.MagneticCourse = av.MagneticFromTrue(in.TrueCourse, in.MagneticVariation)
	res.MagneticHeading = math.NormalizeHeading(res.MagneticCourse + cruise.WCA)
	res.CompassCourse = in.Deviation.Correct(res.MagneticHeading)
	res.Deviation = in.Deviation.Deviation(res.MagneticHeading)
	NavLog(NavLogHeading, "TC %.1f TH %.1f MC %.1f MH %.1f CC %.1f", in.TrueCourse, res.TrueHeading,
		res.MagneticCourse, res.MagneticHeading, res.CompassCourse)

	res.Elapsed = in.Prior

	if in.Distance == 0 {
		// Headings and speeds only.
		return res, nil
	}

	phase := func(name string, seg *PhaseSegment, distance float32) (*PhaseResult, error) {
		wind, tas := in.Wind, in.TAS
		if seg != nil {
			tas = seg.TAS
			if seg.Wind != nil {
				wind = *seg.Wind
			}
		}

		ws := cruise
		if seg != nil {
			ws = SolveWindTriangle(in.TrueCourse, wind, tas)
			warn(name, ws)
		}
		if distance > 0 && ws.GroundSpeed <= 0 {
			return nil, fmt.Errorf("%s: %.1f kts: %w", name, ws.GroundSpeed, ErrNonPositiveGroundSpeed)
		}

		pr := &PhaseResult{
			Distance:    distance,
			GroundSpeed: ws.GroundSpeed,
			TAS:         tas,
			WCA:         ws.WCA,
		}
		if distance > 0 {
			pr.Time = distance / ws.GroundSpeed
		}
		if seg != nil {
			pr.FuelUsed = seg.Fuel
		} else {
			pr.FuelUsed = in.FuelFlow * pr.Time
		}
		NavLog(NavLogPhase, "%s: %+v", name, *pr)
		return pr, nil
	}

	cruiseDistance := in.Distance
	var err error
	if in.Climb != nil {
		cruiseDistance -= in.Climb.Distance
		if res.Climb, err = phase("climb", in.Climb, in.Climb.Distance); err != nil {
			return CourseResult{}, err
		}
	}
	if in.Descent != nil {
		cruiseDistance -= in.Descent.Distance
		if res.Descent, err = phase("descent", in.Descent, in.Descent.Distance); err != nil {
			return CourseResult{}, err
		}
	}
	if cruiseDistance < 0 {
		return CourseResult{}, fmt.Errorf("%.1f nm: %w", cruiseDistance, ErrNegativeCruiseDistance)
	}
	if res.Cruise, err = phase("cruise", nil, cruiseDistance); err != nil {
		return CourseResult{}, err
	}

	var fuel float32
	for _, p := range []*PhaseResult{res.Climb, res.Cruise, res.Descent} {
		if p != nil {
			res.LegTime += p.Time
			fuel += p.FuelUsed
		}
	}

	if in.FuelFlow > 0 {
		fuel += in.AdditionalFuel
		if in.FinalLeg {
			fuel += in.ApproachFuel
		}
		res.LegFuel = util.Ptr(fuel)
	}

	leg := Elapsed{Time: res.LegTime}
	if res.LegFuel != nil {
		leg.Fuel = *res.LegFuel
	}
	res.Elapsed = in.Prior.Add(leg)

	if in.Departure != nil {
		res.ETA = util.Ptr(in.Departure.Add(res.Elapsed.Time))
	}

	lg.Debug("computed leg", "course", in.TrueCourse, "distance", in.Distance, "groundSpeed", res.GroundSpeed,
		"legTime", res.LegTime)

	return res, nil
}
