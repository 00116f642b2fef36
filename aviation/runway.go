// aviation/runway.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfrkit/vfrkit/log"
	"github.com/vfrkit/vfrkit/math"
	"github.com/vfrkit/vfrkit/util"
)

///////////////////////////////////////////////////////////////////////////
// Runway surfaces

type SurfaceCategory string

const (
	SurfaceUnknown      SurfaceCategory = ""
	SurfacePavementGood SurfaceCategory = "PG"
	SurfacePavementPoor SurfaceCategory = "PP"
	SurfaceGrassGood    SurfaceCategory = "GG"
	SurfaceGrassFair    SurfaceCategory = "GF"
	SurfaceGravel       SurfaceCategory = "GV"
	SurfaceDirt         SurfaceCategory = "DT"
	SurfaceSand         SurfaceCategory = "SD"
	SurfaceWater        SurfaceCategory = "WT"
)

// Ground roll multipliers relative to a dry paved runway. Water has no
// factor; a landplane can't use it.
var surfaceDragFactors = map[SurfaceCategory]float32{
	SurfacePavementGood: 1.0,
	SurfacePavementPoor: 1.05,
	SurfaceGrassGood:    1.15,
	SurfaceGrassFair:    1.25,
	SurfaceGravel:       1.15,
	SurfaceDirt:         1.2,
	SurfaceSand:         1.4,
}

var surfaceDescriptions = map[SurfaceCategory]string{
	SurfaceUnknown:      "unknown",
	SurfacePavementGood: "pavement (good)",
	SurfacePavementPoor: "pavement (poor)",
	SurfaceGrassGood:    "grass (good)",
	SurfaceGrassFair:    "grass (fair)",
	SurfaceGravel:       "gravel",
	SurfaceDirt:         "dirt",
	SurfaceSand:         "sand",
	SurfaceWater:        "water",
}

// DragFactor returns the ground roll multiplier for the surface; ok is
// false for unknown surfaces and water.
func (s SurfaceCategory) DragFactor() (factor float32, ok bool) {
	factor, ok = surfaceDragFactors[s]
	return
}

func (s SurfaceCategory) Description() string {
	if d, ok := surfaceDescriptions[s]; ok {
		return d
	}
	return string(s)
}

// ParseSurfaceCategory accepts one of the two-letter category codes.
func ParseSurfaceCategory(s string) (SurfaceCategory, error) {
	c := SurfaceCategory(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := surfaceDescriptions[c]; !ok || c == SurfaceUnknown {
		return SurfaceUnknown, fmt.Errorf("%q: %w", s, ErrUnknownSurface)
	}
	return c, nil
}

// Raw surface codes found in runway databases, mostly the OurAirports
// ones, including their common typos and truncations.
var rawSurfaceCategories = map[string]SurfaceCategory{
	"A": "PG", "ASP": "PG", "ASF": "PG", "ASPH": "PG", "ASPH-G": "PG",
	"C": "PG", "CON": "PG", "CONC": "PG", "CONC-G": "PG", "CG": "PG",
	"TAR": "PG", "BIT": "PG", "MAC": "PG", "PAV": "PG",
	"AG": "PG", "CCN": "PG", "PFC": "PG", "PEM": "PG",
	"APS": "PG", "ASB": "PG", "C0N": "PG", "OON": "PG",
	"BRI": "PG", "LIM": "PG", "B": "PG",
	"PAD": "PG", "PAD/CON": "PG",
	"ASPHALT": "PG", "CONCRETE": "PG", "BLACKTOP": "PG", "BLA": "PG",
	"'ASPHALT'": "PG", "'CONCRETE'": "PG", "'AS": "PG", "'CO": "PG",

	"RAI": "PP", "PSP": "PP", "M": "PP", "MAT": "PP", "MET": "PP", "ALU": "PP",
	"OIL": "PP", "STE": "PP", "PER": "PP", "ROO": "PP", "DEC": "PP", "NEO": "PP",
	"OLD": "PP", "ROU": "PP", "?ST": "PP", "PCN": "PP",

	"T": "GG", "TUR": "GG", "TG": "GG", "TURF": "GG", "TURF-G": "GG",
	"GR": "GG", "GRS": "GG", "GRA": "GG", "GRASS": "GG", "G": "GG",
	"TRT": "GG", "ERB": "GG", "HER": "GG", "PAD/GRASS": "GG",

	"TF": "GF", "TURF-F": "GF", "SOD": "GF", "SOF": "GF",

	"GRE": "GV", "GRV": "GV", "GRR": "GV", "GRVL": "GV", "GVL": "GV", "GRAVEL": "GV",
	"STO": "GV", "ROC": "GV", "COR": "GV", "PIE": "GV", "PIC": "GV",
	"PIÇ": "GV", "CRU": "GV", "LOO": "GV", "ROL": "GV",
	"ZAH": "GV", "OLI": "GV", "PAC": "GV", "YEL": "GV", "BRO": "GV", "RED": "GV",
	"B/G": "GV",

	"D": "DT", "DIR": "DT", "DIRT": "DT",
	"EAR": "DT", "SOI": "DT", "CLA": "DT", "SHA": "DT", "VOL": "DT",
	"TER": "DT", "NAT": "DT", "COM": "DT", "UNP": "DT",
	"MUR": "DT", "LOA": "DT", "HAR": "DT", "EER": "DT", "SIL": "DT", "LAT": "DT",
	"U": "DT", "UNS": "DT", "UNSEALED": "DT", "NOT": "DT",

	"S": "SD", "SAN": "SD", "SAND": "SD",

	"W": "WT", "WAT": "WT", "WATER": "WT",
	"SEA": "WT", "LAK": "WT", "MAR": "WT", "ICE": "WT", "BLU": "WT",
}

// CategorizeSurface maps a raw runway surface description to a category:
// first by exact match, then by its first three, two, and one
// characters. Unidentified surfaces give SurfaceUnknown.
func CategorizeSurface(raw string) SurfaceCategory {
	s := []rune(strings.ToUpper(strings.TrimSpace(raw)))
	if len(s) == 0 {
		return SurfaceUnknown
	}
	if c, ok := rawSurfaceCategories[string(s)]; ok {
		return c
	}
	for _, n := range []int{3, 2, 1} {
		if len(s) >= n {
			if c, ok := rawSurfaceCategories[string(s[:n])]; ok {
				return c
			}
		}
	}
	return SurfaceUnknown
}

///////////////////////////////////////////////////////////////////////////
// Runways

// RunwayEnd is one end of a runway. Unknown values are nil.
type RunwayEnd struct {
	Id                 string   `json:"id"`
	Latitude           *float32 `json:"lat,omitempty"`
	Longitude          *float32 `json:"lon,omitempty"`
	Elevation          *float32 `json:"elev,omitempty"` // ft
	Heading            *float32 `json:"hdg,omitempty"`  // degrees true
	DisplacedThreshold float32  `json:"dt,omitempty"`   // ft
}

// Location returns the threshold position, if known.
func (re RunwayEnd) Location() (LatLong, bool) {
	if re.Latitude == nil || re.Longitude == nil {
		return LatLong{}, false
	}
	return LatLong{Latitude: *re.Latitude, Longitude: *re.Longitude}, true
}

// TrueHeading returns the runway end's true heading. Without a surveyed
// heading it is estimated from the runway number, which is magnetic.
func (re RunwayEnd) TrueHeading(variation float32) (float32, bool) {
	if re.Heading != nil {
		return *re.Heading, true
	}
	num := strings.TrimRight(re.Id, "LRCW")
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 || n > 36 {
		return 0, false
	}
	return TrueFromMagnetic(float32(10*n), variation), true
}

type Runway struct {
	Length  float32         `json:"l,omitempty"` // ft
	Width   float32         `json:"w,omitempty"` // ft
	Surface SurfaceCategory `json:"s,omitempty"`
	Lighted int             `json:"lit,omitempty"`
	Closed  int             `json:"cls,omitempty"`
	LowEnd  *RunwayEnd      `json:"le,omitempty"`
	HighEnd *RunwayEnd      `json:"he,omitempty"`
}

func (r Runway) IsLighted() bool { return r.Lighted != 0 }
func (r Runway) IsClosed() bool  { return r.Closed != 0 }

// Ends returns the runway's known ends.
func (r Runway) Ends() []RunwayEnd {
	var ends []RunwayEnd
	if r.LowEnd != nil {
		ends = append(ends, *r.LowEnd)
	}
	if r.HighEnd != nil {
		ends = append(ends, *r.HighEnd)
	}
	return ends
}

func (r Runway) String() string {
	ids := util.MapSlice(r.Ends(), func(e RunwayEnd) string { return e.Id })
	return strings.Join(ids, "/")
}

// TakeoffHeading returns the true heading for a takeoff from the given
// end. Without a surveyed heading for that end, the reciprocal of the
// other end's surveyed heading is preferred over the runway number.
func (r Runway) TakeoffHeading(from RunwayEnd, variation float32) (float32, bool) {
	if from.Heading == nil {
		for _, e := range r.Ends() {
			if e.Id != from.Id && e.Heading != nil {
				return math.OppositeHeading(*e.Heading), true
			}
		}
	}
	return from.TrueHeading(variation)
}

// RunwayDB maps airport ICAO codes to their runways.
type RunwayDB map[string][]Runway

// LoadRunwayDB reads a runway database. Parsed databases are cached in
// the user's cache directory keyed by the file's contents.
func LoadRunwayDB(path string, lg *log.Logger) (RunwayDB, error) {
	b, err := util.ReadData(path)
	if err != nil {
		return nil, err
	}

	key := util.CacheKey("runways", b)
	var db RunwayDB
	if _, err := util.CacheRetrieveObject(key, &db); err == nil && db != nil {
		lg.Debugf("%s: using cached runways %s", path, key)
		return db, nil
	}

	db = nil
	if err := util.UnmarshalJSONBytes(b, &db); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for icao, rwys := range db {
		for i := range rwys {
			if _, ok := surfaceDescriptions[rwys[i].Surface]; !ok {
				// Tolerate raw surface codes in hand-edited files.
				rwys[i].Surface = CategorizeSurface(string(rwys[i].Surface))
			}
		}
		if up := strings.ToUpper(icao); up != icao {
			delete(db, icao)
			db[up] = rwys
		}
	}

	if err := util.CacheStoreObject(key, db); err != nil {
		lg.Warnf("%s: unable to cache runways: %v", path, err)
	}
	lg.Infof("%s: loaded runways for %d airports", path, len(db))
	return db, nil
}

// Lookup returns the open runways at the given airport.
func (db RunwayDB) Lookup(icao string) ([]Runway, error) {
	rwys, ok := db[strings.ToUpper(strings.TrimSpace(icao))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", icao, ErrUnknownAirport)
	}
	var open []Runway
	for _, r := range rwys {
		if !r.IsClosed() {
			open = append(open, r)
		}
	}
	return open, nil
}

// LookupEnd returns the runway and runway end with the given identifier,
// e.g. "31" or "13L".
func (db RunwayDB) LookupEnd(icao, id string) (Runway, RunwayEnd, error) {
	rwys, err := db.Lookup(icao)
	if err != nil {
		return Runway{}, RunwayEnd{}, err
	}
	id = strings.ToUpper(strings.TrimSpace(id))
	for _, r := range rwys {
		for _, e := range r.Ends() {
			if e.Id == id || strings.TrimLeft(e.Id, "0") == strings.TrimLeft(id, "0") {
				return r, e, nil
			}
		}
	}
	return Runway{}, RunwayEnd{}, fmt.Errorf("%s %s: %w", icao, id, ErrUnknownRunway)
}

// FieldElevation returns the highest known runway end elevation at the
// airport.
func FieldElevation(rwys []Runway) (float32, bool) {
	var elev float32
	found := false
	for _, r := range rwys {
		for _, e := range r.Ends() {
			if e.Elevation != nil && (!found || *e.Elevation > elev) {
				elev, found = *e.Elevation, true
			}
		}
	}
	return elev, found
}

// Slope returns the runway slope in percent for a takeoff from the given
// end: positive when uphill.
func (r Runway) Slope(from RunwayEnd) (float32, bool) {
	if r.LowEnd == nil || r.HighEnd == nil || r.Length <= 0 {
		return 0, false
	}
	if r.LowEnd.Elevation == nil || r.HighEnd.Elevation == nil {
		return 0, false
	}
	other := *r.HighEnd
	if from.Id == r.HighEnd.Id {
		other = *r.LowEnd
	}
	if from.Elevation == nil {
		return 0, false
	}
	return math.Clamp(100*(*other.Elevation-*from.Elevation)/r.Length, -10, 10), true
}
