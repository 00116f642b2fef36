// cmd/vfrcalc/leg.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	av "github.com/vfrkit/vfrkit/aviation"
	"github.com/vfrkit/vfrkit/nav"
	"github.com/vfrkit/vfrkit/util"

	"github.com/iancoleman/orderedmap"
	"github.com/labstack/gommon/color"
)

type legFlags struct {
	options

	course, tas, dist, ff  optFloat
	extra, approach        optFloat
	priorFuel              optFloat
	wind                   optWind
	climbWind, descentWind optWind
	depart                 optTime

	variation string
	priorTime string
	climb     string
	descent   string
	final     bool
	deviation string
	aircraft  string
	waypoints string
}

func (lf *legFlags) register(fs *flag.FlagSet) {
	lf.options.register(fs)

	fs.Var(&lf.course, "course", "True course (degrees)")
	fs.Var(&lf.tas, "tas", "Cruise true airspeed (kts)")
	fs.Var(&lf.wind, "wind", "Wind as direction/speed, e.g. 270/15")
	fs.StringVar(&lf.variation, "var", "", "Magnetic variation, e.g. 5W, 3.5E or -5")
	fs.Var(&lf.dist, "dist", "Leg distance (nm)")
	fs.Var(&lf.ff, "ff", "Cruise fuel flow (per hour)")
	fs.Var(&lf.depart, "depart", "Departure time, HH:MM")
	fs.StringVar(&lf.priorTime, "prior-time", "", "Time flown on earlier legs, hours or H:MM")
	fs.Var(&lf.priorFuel, "prior-fuel", "Fuel burned on earlier legs")
	fs.StringVar(&lf.climb, "climb", "", "Climb phase as tas,distance,fuel")
	fs.Var(&lf.climbWind, "climbwind", "Wind during the climb, if different")
	fs.StringVar(&lf.descent, "descent", "", "Descent phase as tas,distance,fuel")
	fs.Var(&lf.descentWind, "descentwind", "Wind during the descent, if different")
	fs.Var(&lf.extra, "extra", "Additional fuel for the leg")
	fs.Var(&lf.approach, "approach", "Approach fuel, added on the final leg")
	fs.BoolVar(&lf.final, "final", false, "This is the final leg")
	fs.StringVar(&lf.deviation, "deviation", "", "Compass deviation card (JSON)")
	fs.StringVar(&lf.aircraft, "aircraft", "", "Aircraft profile; its deviation card is used if -deviation isn't given")
	fs.StringVar(&lf.waypoints, "waypoints", "", "Checkpoints along the leg (JSON array of {name, distance})")
}

// form gathers the flags into a LegForm.
func (lf *legFlags) form() (nav.LegForm, error) {
	f := nav.LegForm{
		TrueCourse:     lf.course.v,
		TAS:            lf.tas.v,
		Distance:       lf.dist.v,
		FuelFlow:       lf.ff.v,
		PriorFuel:      lf.priorFuel.v,
		Departure:      lf.depart.t,
		ClimbWind:      lf.climbWind.w,
		DescentWind:    lf.descentWind.w,
		AdditionalFuel: lf.extra.v,
		ApproachFuel:   lf.approach.v,
		FinalLeg:       lf.final,
	}
	if lf.wind.w != nil {
		f.WindDirection, f.WindSpeed = &lf.wind.w.Direction, &lf.wind.w.Speed
	}

	if lf.variation != "" {
		v, err := av.ParseVariation(lf.variation)
		if err != nil {
			return f, fmt.Errorf("-var: %w", err)
		}
		if lf.varconv == "legacy" {
			v = av.VariationFromLegacy(v)
		}
		f.MagneticVariation = &v
	}

	if lf.priorTime != "" {
		h, err := parseHours(lf.priorTime)
		if err != nil {
			return f, fmt.Errorf("-prior-time: %w", err)
		}
		f.PriorTime = &h
	}

	phase := func(name, s string) (tas, dist, fuel *float32, err error) {
		if s == "" {
			return
		}
		v, err := parseFloats(s, 3)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("-%s: %w", name, err)
		}
		return &v[0], &v[1], &v[2], nil
	}
	var err error
	if f.ClimbTAS, f.ClimbDistance, f.ClimbFuel, err = phase("climb", lf.climb); err != nil {
		return f, err
	}
	if f.DescentTAS, f.DescentDistance, f.DescentFuel, err = phase("descent", lf.descent); err != nil {
		return f, err
	}

	switch {
	case lf.deviation != "":
		dt, err := av.LoadDeviationTable(lf.deviation)
		if err != nil {
			return f, err
		}
		f.Deviation = dt.Entries()
	case lf.aircraft != "":
		ap, err := av.LoadAircraftPerformance(lf.aircraft)
		if err != nil {
			return f, err
		}
		f.Deviation = ap.Deviation
	}

	return f, nil
}

func runLeg(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("leg", flag.ContinueOnError)
	var lf legFlags
	lf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := lf.init(); err != nil {
		return err
	}

	form, err := lf.form()
	if err != nil {
		return err
	}
	in, err := form.Validate()
	if err != nil {
		return err
	}

	res, err := nav.ComputeLeg(in, lf.lg)
	if err != nil {
		return err
	}

	var wps []nav.WaypointResult
	if lf.waypoints != "" {
		b, err := util.ReadData(lf.waypoints)
		if err != nil {
			return err
		}
		var checkpoints []nav.Waypoint
		if err := util.UnmarshalJSONBytes(b, &checkpoints); err != nil {
			return fmt.Errorf("%s: %w", lf.waypoints, err)
		}

		params := nav.FlightParams{Departure: in.Departure, Prior: in.Prior}
		if wps, err = nav.AccumulateWaypoints(checkpoints, res.GroundSpeed, in.FuelFlow, params, in.Distance,
			res.Climb, res.Descent); err != nil {
			return err
		}
	}

	dump(&lf.options, w, in, res, wps)
	if lf.json {
		return writeJSON(w, legMap(res, wps))
	}
	writeLegText(w, in, res, wps)
	return nil
}

func legMap(res nav.CourseResult, wps []nav.WaypointResult) *orderedmap.OrderedMap {
	o := orderedmap.New()
	o.Set("trueHeading", round(res.TrueHeading, 1))
	o.Set("magneticCourse", round(res.MagneticCourse, 1))
	o.Set("windCorrectionAngle", round(res.WindCorrectionAngle, 1))
	o.Set("magneticHeading", round(res.MagneticHeading, 1))
	o.Set("deviation", round(res.Deviation, 1))
	o.Set("compassCourse", round(res.CompassCourse, 1))
	o.Set("groundSpeed", round(res.GroundSpeed, 1))
	if res.ETAS != nil {
		o.Set("etas", round(*res.ETAS, 1))
	}
	o.Set("headwind", round(res.Headwind, 1))
	o.Set("crosswind", round(res.Crosswind, 1))
	o.Set("legTime", round(res.LegTime, 3))
	if res.LegFuel != nil {
		o.Set("legFuel", round(*res.LegFuel, 1))
	}
	if res.ETA != nil {
		o.Set("eta", res.ETA.String())
	}
	for _, p := range []struct {
		name string
		r    *nav.PhaseResult
	}{{"climb", res.Climb}, {"cruise", res.Cruise}, {"descent", res.Descent}} {
		if p.r != nil {
			o.Set(p.name, p.r)
		}
	}
	el := orderedmap.New()
	el.Set("time", round(res.Elapsed.Time, 3))
	el.Set("fuel", round(res.Elapsed.Fuel, 1))
	o.Set("elapsed", el)
	if wps != nil {
		o.Set("waypoints", wps)
	}
	o.Set("warnings", nonNil(res.Warnings))
	return o
}

func writeLegText(w io.Writer, in nav.LegInput, res nav.CourseResult, wps []nav.WaypointResult) {
	fmt.Fprintf(w, "TC %03.0f  TH %03.0f  MC %03.0f  MH %03.0f  CC %03.0f\n", in.TrueCourse, res.TrueHeading,
		res.MagneticCourse, res.MagneticHeading, res.CompassCourse)
	fmt.Fprintf(w, "WCA %+.1f  var %s  dev %+.1f\n", res.WindCorrectionAngle, av.FormatVariation(in.MagneticVariation),
		res.Deviation)
	fmt.Fprintf(w, "GS %.0f kts  headwind %.0f  crosswind %.0f", res.GroundSpeed, res.Headwind, res.Crosswind)
	if res.ETAS != nil {
		fmt.Fprintf(w, "  ETAS %.0f", *res.ETAS)
	}
	fmt.Fprintln(w)

	if in.Distance > 0 {
		fmt.Fprintf(w, "time %s", util.FormatDuration(res.LegTime))
		if res.LegFuel != nil {
			fmt.Fprintf(w, "  fuel %.1f", *res.LegFuel)
		}
		if res.ETA != nil {
			fmt.Fprintf(w, "  ETA %s", res.ETA)
		}
		fmt.Fprintf(w, "  (total %s, %.1f fuel)\n", util.FormatDuration(res.Elapsed.Time), res.Elapsed.Fuel)

		for _, p := range []struct {
			name string
			r    *nav.PhaseResult
		}{{"climb", res.Climb}, {"cruise", res.Cruise}, {"descent", res.Descent}} {
			if p.r != nil && (p.name != "cruise" || res.Climb != nil || res.Descent != nil) {
				fmt.Fprintf(w, "  %-8s %5.1f nm  GS %3.0f  %s  %.1f fuel\n", p.name, p.r.Distance, p.r.GroundSpeed,
					util.FormatDuration(p.r.Time), p.r.FuelUsed)
			}
		}
	}

	if len(wps) > 0 {
		fmt.Fprintf(w, "%-16s %6s %6s %6s %6s %6s\n", "checkpoint", "dist", "leg", "time", "fuel", "ETA")
		for _, wp := range wps {
			eta := ""
			if wp.ETA != nil {
				eta = wp.ETA.String()
			}
			fmt.Fprintf(w, "%-16s %6.1f %6.1f %6s %6.1f %6s\n", wp.Name, wp.Distance, wp.DistanceSinceLast,
				util.FormatDuration(wp.TimeSinceLast), wp.FuelSinceLast, eta)
		}
	}

	writeNotes(w, "warning:", res.Warnings, color.Yellow)
}
