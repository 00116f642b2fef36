// cmd/vfrcalc/takeoff.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"time"

	av "github.com/vfrkit/vfrkit/aviation"
	"github.com/vfrkit/vfrkit/perf"
	"github.com/vfrkit/vfrkit/util"
	"github.com/vfrkit/vfrkit/wx"

	"github.com/iancoleman/orderedmap"
	"github.com/labstack/gommon/color"
)

// conditions are the flags describing the aircraft and the air that the
// takeoff and runways commands share.
type conditions struct {
	options

	aircraft string
	weight   optFloat
	oat      optFloat
	wind     optWind
	obstacle float64
}

func (c *conditions) register(fs *flag.FlagSet) {
	c.options.register(fs)

	fs.StringVar(&c.aircraft, "aircraft", "", "Aircraft profile (YAML or JSON)")
	fs.Var(&c.weight, "weight", "Takeoff weight (lbs); defaults to the profile's maximum")
	fs.Var(&c.oat, "oat", "Outside air temperature (C); ISA if not given")
	fs.Var(&c.wind, "wind", "Wind as direction/speed, e.g. 270/15")
	fs.Float64Var(&c.obstacle, "obstacle", 50, "Obstacle height (ft)")
}

func (c *conditions) load() (*av.AircraftPerformance, float32, error) {
	if c.aircraft == "" {
		return nil, 0, errors.New("-aircraft must be given")
	}
	ap, err := av.LoadAircraftPerformance(c.aircraft)
	if err != nil {
		return nil, 0, err
	}
	weight := ap.Weight.Max
	if c.weight.v != nil {
		weight = *c.weight.v
	}
	return ap, weight, nil
}

///////////////////////////////////////////////////////////////////////////
// takeoff

func runTakeoff(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("takeoff", flag.ContinueOnError)
	var c conditions
	c.register(fs)
	var pa, da, elev, rwyHdg, hw, xw optFloat
	fs.Var(&pa, "pa", "Pressure altitude (ft)")
	fs.Var(&da, "da", "Density altitude (ft)")
	fs.Var(&elev, "elev", "Field elevation (ft), used with -qnh")
	qnh := fs.Float64("qnh", float64(wx.StandardPressure), "Altimeter setting (hPa), used with -elev")
	rwy := fs.Float64("rwy", 0, "Runway length (ft)")
	surface := fs.String("surface", "PG", "Runway surface: PG, PP, GG, GF, GV, DT, SD, or a raw surface code")
	slope := fs.Float64("slope", 0, "Runway slope (percent, positive uphill)")
	fs.Var(&hw, "hw", "Headwind component (kts, negative for a tailwind)")
	fs.Var(&xw, "xw", "Crosswind component (kts)")
	fs.Var(&rwyHdg, "rwyhdg", "Runway heading, used with -wind")
	sweep := fs.String("sweep", "", "Comma-separated weights to evaluate instead of -weight")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.init(); err != nil {
		return err
	}

	ap, weight, err := c.load()
	if err != nil {
		return err
	}

	in := perf.TakeoffInput{
		Aircraft:       ap,
		Weight:         weight,
		OAT:            c.oat.v,
		RunwayLength:   float32(*rwy),
		Slope:          float32(*slope),
		ObstacleHeight: float32(c.obstacle),
	}

	switch n := countSet(pa, da, elev); {
	case n > 1:
		return errors.New("only one of -pa, -da and -elev may be given")
	case pa.v != nil:
		in.Altitude = perf.PressureAltitude{Feet: *pa.v}
	case da.v != nil:
		in.Altitude = perf.DensityAltitude{Feet: *da.v}
	case elev.v != nil:
		in.Altitude = perf.ElevationQNH{Elevation: *elev.v, QNH: float32(*qnh)}
	default:
		return errors.New("one of -pa, -da or -elev must be given")
	}

	if in.Surface, err = av.ParseSurfaceCategory(*surface); err != nil {
		if in.Surface = av.CategorizeSurface(*surface); in.Surface == av.SurfaceUnknown {
			return err
		}
	}

	switch {
	case c.wind.w != nil && (hw.v != nil || xw.v != nil):
		return errors.New("-wind can't be given with -hw or -xw")
	case c.wind.w != nil:
		if rwyHdg.v == nil {
			return errors.New("-wind requires -rwyhdg")
		}
		in.Headwind, in.Crosswind = perf.RunwayWind(*rwyHdg.v, *c.wind.w)
	default:
		in.Headwind, in.Crosswind = valueOf(hw), valueOf(xw)
	}

	if *sweep != "" {
		weights, err := parseFloatList(*sweep)
		if err != nil {
			return fmt.Errorf("-sweep: %w", err)
		}
		results := perf.WeightSweep(in, weights, c.lg)
		dump(&c.options, w, in, results)

		if c.json {
			var rs []*orderedmap.OrderedMap
			for i, r := range results {
				m := takeoffMap(r)
				m.Set("weight", weights[i])
				rs = append(rs, m)
			}
			o := orderedmap.New()
			o.Set("aircraft", ap.Name)
			o.Set("results", rs)
			return writeJSON(w, o)
		}
		fmt.Fprintf(w, "%s\n", ap.Name)
		for i, r := range results {
			fmt.Fprintf(w, "%.0f lbs: ", weights[i])
			writeTakeoffText(w, r)
		}
		return nil
	}

	res := perf.ComputeTakeoff(in, c.lg)
	dump(&c.options, w, in, res)
	if c.json {
		o := takeoffMap(res)
		o.Set("aircraft", ap.Name)
		o.Set("weight", weight)
		return writeJSON(w, o)
	}
	fmt.Fprintf(w, "%s at %.0f lbs: ", ap.Name, weight)
	writeTakeoffText(w, res)
	return nil
}

func countSet(f ...optFloat) int {
	n := 0
	for _, v := range f {
		if v.v != nil {
			n++
		}
	}
	return n
}

func valueOf(f optFloat) float32 {
	if f.v == nil {
		return 0
	}
	return *f.v
}

///////////////////////////////////////////////////////////////////////////
// runways

// runwayTakeoff is a takeoff from one runway end at the airport.
type runwayTakeoff struct {
	runway av.Runway
	end    av.RunwayEnd
	input  perf.TakeoffInput
	result perf.TakeoffResult
}

func runRunways(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("runways", flag.ContinueOnError)
	var c conditions
	c.register(fs)
	icao := fs.String("airport", "", "Airport ICAO code")
	runwaysPath := fs.String("runways", "", "Runway database (JSON, optionally zstd-compressed)")
	airportsPath := fs.String("airports", "", "Airport database, for the magnetic variation")
	qnh := fs.Float64("qnh", float64(wx.StandardPressure), "Altimeter setting (hPa)")
	dateStr := fs.String("date", "", "Date for the magnetic variation, YYYY-MM-DD; today if not given")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.init(); err != nil {
		return err
	}
	if *icao == "" || *runwaysPath == "" {
		return errors.New("-airport and -runways must be given")
	}

	date := time.Now()
	if *dateStr != "" {
		var err error
		if date, err = time.Parse(time.DateOnly, *dateStr); err != nil {
			return fmt.Errorf("-date: %w", err)
		}
	}

	ap, weight, err := c.load()
	if err != nil {
		return err
	}

	rdb, err := av.LoadRunwayDB(*runwaysPath, c.lg)
	if err != nil {
		return err
	}
	rwys, err := rdb.Lookup(*icao)
	if err != nil {
		return err
	}
	if len(rwys) == 0 {
		return fmt.Errorf("%s: no open runways", *icao)
	}

	var notes []string
	fieldElev, ok := av.FieldElevation(rwys)
	if !ok {
		notes = append(notes, "field elevation unknown; sea level assumed")
	}

	variation, err := airportVariation(*airportsPath, *icao, rwys, fieldElev, date, c.options)
	if err != nil {
		notes = append(notes, fmt.Sprintf("magnetic variation: %v; 0 assumed", err))
	}

	var takeoffs []runwayTakeoff
	for _, r := range rwys {
		for _, end := range r.Ends() {
			hdg, ok := r.TakeoffHeading(end, variation)
			if !ok {
				notes = append(notes, fmt.Sprintf("runway %s: unknown heading; skipped", end.Id))
				continue
			}

			elev := fieldElev
			if end.Elevation != nil {
				elev = *end.Elevation
			}
			in := perf.TakeoffInput{
				Aircraft:       ap,
				Weight:         weight,
				Altitude:       perf.ElevationQNH{Elevation: elev, QNH: float32(*qnh)},
				OAT:            c.oat.v,
				RunwayLength:   r.Length,
				Surface:        r.Surface,
				ObstacleHeight: float32(c.obstacle),
			}
			if s, ok := r.Slope(end); ok {
				in.Slope = s
			}
			if c.wind.w != nil {
				in.Headwind, in.Crosswind = perf.RunwayWind(hdg, *c.wind.w)
			}
			takeoffs = append(takeoffs, runwayTakeoff{runway: r, end: end, input: in})
		}
	}

	inputs := make([]perf.TakeoffInput, len(takeoffs))
	for i := range takeoffs {
		inputs[i] = takeoffs[i].input
	}
	results, err := perf.ComputeTakeoffs(ctx, inputs, c.lg)
	if err != nil {
		return err
	}
	for i := range takeoffs {
		takeoffs[i].result = results[i]
	}
	// Best first; takeoffs that couldn't be computed go last.
	slices.SortStableFunc(takeoffs, func(a, b runwayTakeoff) int {
		if ae, be := len(a.result.Errors) > 0, len(b.result.Errors) > 0; ae != be {
			return util.Select(ae, 1, -1)
		}
		return cmp.Compare(b.result.SafetyMargin, a.result.SafetyMargin)
	})

	dump(&c.options, w, takeoffs)
	if c.json {
		return writeJSON(w, runwaysMap(ap, weight, *icao, variation, takeoffs, notes))
	}

	fmt.Fprintf(w, "%s  %s at %.0f lbs  var %s\n", *icao, ap.Name, weight, av.FormatVariation(variation))
	for _, n := range notes {
		fmt.Fprintf(w, "%s %s\n", color.Yellow("note:"), n)
	}
	for _, t := range takeoffs {
		fmt.Fprintf(w, "RWY %-4s %5.0f' %-15s  hw %3.0f xw %3.0f  ", t.end.Id, t.runway.Length,
			t.runway.Surface.Description(), t.input.Headwind, t.input.Crosswind)
		writeTakeoffText(w, t.result)
	}
	return nil
}

// airportVariation finds the magnetic variation at the airport, using
// the airport database's location if available and otherwise the
// location of one of its runway thresholds.
func airportVariation(airportsPath, icao string, rwys []av.Runway, elev float32, date time.Time,
	o options) (float32, error) {
	var loc av.LatLong
	found := false
	if airportsPath != "" {
		adb, err := av.LoadAirportDB(airportsPath, o.lg)
		if err != nil {
			return 0, err
		}
		if apt, err := adb.Lookup(icao); err == nil && !apt.Location.IsZero() {
			loc, found = apt.Location, true
		}
	}
	for _, r := range rwys {
		for _, e := range r.Ends() {
			if found {
				break
			}
			loc, found = e.Location()
		}
	}
	if !found {
		return 0, errors.New("airport location unknown")
	}

	v, err := av.MagneticVariationAt(loc, elev, date)
	if err != nil {
		return 0, err
	}
	o.lg.Debug("magnetic variation", "airport", icao, "location", loc, "date", date, "variation", v)
	return v, nil
}

func runwaysMap(ap *av.AircraftPerformance, weight float32, icao string, variation float32, takeoffs []runwayTakeoff,
	notes []string) *orderedmap.OrderedMap {
	o := orderedmap.New()
	o.Set("airport", icao)
	o.Set("aircraft", ap.Name)
	o.Set("weight", weight)
	o.Set("magneticVariation", round(variation, 1))
	var rs []*orderedmap.OrderedMap
	for _, t := range takeoffs {
		m := orderedmap.New()
		m.Set("runway", t.end.Id)
		m.Set("length", t.runway.Length)
		m.Set("surface", t.runway.Surface)
		m.Set("lighted", t.runway.IsLighted())
		m.Set("slope", round(t.input.Slope, 2))
		m.Set("headwind", round(t.input.Headwind, 1))
		m.Set("crosswind", round(t.input.Crosswind, 1))
		m.Set("takeoff", takeoffMap(t.result))
		rs = append(rs, m)
	}
	o.Set("runways", rs)
	o.Set("notes", nonNil(notes))
	return o
}
