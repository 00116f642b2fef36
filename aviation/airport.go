// aviation/airport.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vfrkit/vfrkit/log"
	"github.com/vfrkit/vfrkit/math"
	"github.com/vfrkit/vfrkit/util"
)

type LatLong struct {
	Latitude  float32 `json:"lat" yaml:"lat"`
	Longitude float32 `json:"lon" yaml:"lon"`
}

func (p LatLong) IsZero() bool {
	return p.Latitude == 0 && p.Longitude == 0
}

func (p LatLong) String() string {
	ns, ew := "N", "E"
	if p.Latitude < 0 {
		ns = "S"
	}
	if p.Longitude < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.4f%s %.4f%s", math.Abs(p.Latitude), ns, math.Abs(p.Longitude), ew)
}

// Airport is a single entry of the airport database. It is stored in the
// compact array form [code, lat, lon, name].
type Airport struct {
	Code     string
	Location LatLong
	Name     string
}

func (ap *Airport) UnmarshalJSON(b []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if len(fields) != 4 {
		return fmt.Errorf("expected [code, lat, lon, name], got %d fields", len(fields))
	}

	if err := json.Unmarshal(fields[0], &ap.Code); err != nil {
		return fmt.Errorf("airport code: %w", err)
	}
	if err := json.Unmarshal(fields[1], &ap.Location.Latitude); err != nil {
		return fmt.Errorf("%s: latitude: %w", ap.Code, err)
	}
	if err := json.Unmarshal(fields[2], &ap.Location.Longitude); err != nil {
		return fmt.Errorf("%s: longitude: %w", ap.Code, err)
	}
	if err := json.Unmarshal(fields[3], &ap.Name); err != nil {
		return fmt.Errorf("%s: name: %w", ap.Code, err)
	}
	return nil
}

func (ap Airport) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{ap.Code, ap.Location.Latitude, ap.Location.Longitude, ap.Name})
}

// AirportDB maps airport codes (ICAO if assigned, otherwise the local
// identifier) to airports.
type AirportDB map[string]Airport

// LoadAirportDB reads an airport database in the compact array format.
// Entries without a code or with an out-of-range location are skipped
// and reported to the log.
func LoadAirportDB(path string, lg *log.Logger) (AirportDB, error) {
	b, err := util.ReadData(path)
	if err != nil {
		return nil, err
	}

	var airports []Airport
	if err := util.UnmarshalJSONBytes(b, &airports); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	db := make(AirportDB, len(airports))
	for _, ap := range airports {
		code := strings.ToUpper(strings.TrimSpace(ap.Code))
		if code == "" || math.Abs(ap.Location.Latitude) > 90 || math.Abs(ap.Location.Longitude) > 180 {
			lg.Warnf("%s: skipping invalid airport entry %+v", path, ap)
			continue
		}
		ap.Code = code
		db[code] = ap
	}

	lg.Infof("%s: loaded %d airports", path, len(db))
	return db, nil
}

func (db AirportDB) Lookup(code string) (Airport, error) {
	if ap, ok := db[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return ap, nil
	}
	return Airport{}, fmt.Errorf("%s: %w", code, ErrUnknownAirport)
}
