// util/time.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	gomath "math"
	"strconv"
	"strings"
)

// TimeOfDay is a clock time expressed in hours since midnight, always in
// [0,24). Flight-planning ETAs wrap around midnight rather than carrying
// a date.
type TimeOfDay float32

// MakeTimeOfDay returns the time of day for the given hours since
// midnight, wrapping modulo 24h.
func MakeTimeOfDay(hours float32) TimeOfDay {
	h := gomath.Mod(float64(hours), 24)
	if h < 0 {
		h += 24
	}
	if h >= 24 {
		h = 0
	}
	return TimeOfDay(h)
}

// Add returns the time of day the given number of hours later.
func (t TimeOfDay) Add(hours float32) TimeOfDay {
	return MakeTimeOfDay(float32(t) + hours)
}

func (t TimeOfDay) Hours() float32 { return float32(t) }

// Minutes returns the time of day as whole minutes since midnight,
// rounded to the nearest minute (so 23:59:45 gives 0).
func (t TimeOfDay) Minutes() int {
	return int(gomath.Round(float64(t)*60)) % (24 * 60)
}

func (t TimeOfDay) String() string {
	m := t.Minutes()
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	tod, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = tod
	return nil
}

// ParseTimeOfDay parses "HH:MM", "HHMM" or "H:MM" 24-hour clock times.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	var hs, ms string
	if h, m, ok := strings.Cut(s, ":"); ok {
		hs, ms = h, m
	} else if len(s) == 4 {
		hs, ms = s[:2], s[2:]
	} else {
		return 0, fmt.Errorf("%q: expected HH:MM", s)
	}

	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%q: invalid hour", s)
	}
	m, err := strconv.Atoi(ms)
	if err != nil || len(ms) != 2 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%q: invalid minute", s)
	}
	return TimeOfDay(float32(h) + float32(m)/60), nil
}

// FormatDuration formats a duration given in hours as "H:MM".
func FormatDuration(hours float32) string {
	m := int(gomath.Round(float64(hours) * 60))
	sign := ""
	if m < 0 {
		sign, m = "-", -m
	}
	return fmt.Sprintf("%s%d:%02d", sign, m/60, m%60)
}
