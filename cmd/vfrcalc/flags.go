// cmd/vfrcalc/flags.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfrkit/vfrkit/util"
	"github.com/vfrkit/vfrkit/wx"
)

// optFloat is a float flag that records whether it was given.
type optFloat struct {
	v *float32
}

func (o *optFloat) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.FormatFloat(float64(*o.v), 'f', -1, 32)
}

func (o *optFloat) Set(s string) error {
	f, err := util.Atof(s)
	if err != nil {
		return err
	}
	o.v = util.Ptr(float32(f))
	return nil
}

// optWind is a wind flag ("ddd/ss") that records whether it was given.
type optWind struct {
	w *wx.Wind
}

func (o *optWind) String() string {
	if o == nil || o.w == nil {
		return ""
	}
	return o.w.String()
}

func (o *optWind) Set(s string) error {
	w, err := wx.ParseWind(s)
	if err != nil {
		return err
	}
	o.w = &w
	return nil
}

// optTime is a time of day flag ("HH:MM").
type optTime struct {
	t *util.TimeOfDay
}

func (o *optTime) String() string {
	if o == nil || o.t == nil {
		return ""
	}
	return o.t.String()
}

func (o *optTime) Set(s string) error {
	t, err := util.ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	o.t = &t
	return nil
}

// parseFloats parses n comma-separated numbers.
func parseFloats(s string, n int) ([]float32, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("%q: expected %d comma-separated values", s, n)
	}
	return parseFloatList(s)
}

func parseFloatList(s string) ([]float32, error) {
	var v []float32
	for _, f := range strings.Split(s, ",") {
		x, err := util.Atof(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", f, err)
		}
		v = append(v, float32(x))
	}
	return v, nil
}

// parseHours accepts either decimal hours or "H:MM".
func parseHours(s string) (float32, error) {
	if h, m, ok := strings.Cut(s, ":"); ok {
		hv, err := strconv.Atoi(h)
		if err != nil || hv < 0 {
			return 0, fmt.Errorf("%q: invalid hours", s)
		}
		mv, err := strconv.Atoi(m)
		if err != nil || mv < 0 || mv > 59 {
			return 0, fmt.Errorf("%q: invalid minutes", s)
		}
		return float32(hv) + float32(mv)/60, nil
	}
	f, err := util.Atof(s)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}
