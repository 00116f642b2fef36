// wx/wind.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfrkit/vfrkit/math"
)

// Wind is given in the aviation convention: Direction is where the wind
// blows from (degrees true), Speed is in knots.
type Wind struct {
	Direction float32 `json:"direction" yaml:"direction"`
	Speed     float32 `json:"speed" yaml:"speed"`
}

func (w Wind) Calm() bool {
	return w.Speed == 0
}

// Validate checks that the wind is physically meaningful.
func (w Wind) Validate() error {
	if w.Direction < 0 || w.Direction > 360 || math.IsNaN(w.Direction) {
		return fmt.Errorf("wind direction %.0f out of range [0, 360]", w.Direction)
	}
	if w.Speed < 0 || math.IsNaN(w.Speed) {
		return fmt.Errorf("wind speed %.0f must not be negative", w.Speed)
	}
	return nil
}

// Components returns the headwind and crosswind components of the wind
// with respect to the given course. Headwind is positive for wind on the
// nose and negative for a tailwind; crosswind is positive for wind from
// the right.
func (w Wind) Components(course float32) (headwind, crosswind float32) {
	rel := math.Radians(math.NormalizeSigned(w.Direction - course))
	return w.Speed * math.Cos(rel), w.Speed * math.Sin(rel)
}

func (w Wind) String() string {
	return fmt.Sprintf("%03d/%d", int(math.Round(math.NormalizeHeading(w.Direction))), int(math.Round(w.Speed)))
}

// ParseWind parses winds given as "ddd/ss", "dddss" or "dddssKT" (the
// METAR form without gusts).
func ParseWind(s string) (Wind, error) {
	s = strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "KT")

	var ds, ss string
	if d, sp, ok := strings.Cut(s, "/"); ok {
		ds, ss = d, sp
	} else if len(s) >= 5 {
		ds, ss = s[:3], s[3:]
	} else {
		return Wind{}, fmt.Errorf("%q: expected wind as ddd/ss", s)
	}

	dir, err := strconv.Atoi(strings.TrimSpace(ds))
	if err != nil {
		return Wind{}, fmt.Errorf("%q: invalid direction: %w", s, err)
	}
	spd, err := strconv.Atoi(strings.TrimSpace(ss))
	if err != nil {
		return Wind{}, fmt.Errorf("%q: invalid speed: %w", s, err)
	}

	w := Wind{Direction: float32(dir), Speed: float32(spd)}
	if err := w.Validate(); err != nil {
		return Wind{}, err
	}
	return w, nil
}
