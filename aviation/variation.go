// aviation/variation.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vfrkit/vfrkit/math"

	"github.com/westphae/geomag/pkg/egm96"
	"github.com/westphae/geomag/pkg/wmm"
)

// Magnetic variation throughout follows the World Magnetic Model
// convention: east variation is positive, west is negative, and
// magnetic = true - variation ("east is least"). Inputs in the legacy
// convention, where east was negative, must be converted at the edge
// with VariationFromLegacy.

// MagneticFromTrue converts a true heading or course to magnetic.
func MagneticFromTrue(trueHeading, variation float32) float32 {
	return math.NormalizeHeading(trueHeading - variation)
}

// TrueFromMagnetic converts a magnetic heading or course to true.
func TrueFromMagnetic(magneticHeading, variation float32) float32 {
	return math.NormalizeHeading(magneticHeading + variation)
}

// VariationFromLegacy converts a variation given with east negative to
// the east-positive convention.
func VariationFromLegacy(v float32) float32 {
	return -v
}

// ParseVariation parses a magnetic variation given as a signed number
// of degrees (east positive) or with an E/W suffix or prefix, e.g. "3E",
// "W4.5", "-2".
func ParseVariation(s string) (float32, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalidVariation
	}

	sign := float32(1)
	switch {
	case strings.HasSuffix(s, "E"):
		s = strings.TrimSuffix(s, "E")
	case strings.HasPrefix(s, "E"):
		s = strings.TrimPrefix(s, "E")
	case strings.HasSuffix(s, "W"):
		s, sign = strings.TrimSuffix(s, "W"), -1
	case strings.HasPrefix(s, "W"):
		s, sign = strings.TrimPrefix(s, "W"), -1
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidVariation, err)
	}
	if sign < 0 && v < 0 {
		return 0, fmt.Errorf("%w: %q has both a sign and a W", ErrInvalidVariation, s)
	}
	if v < -180 || v > 180 {
		return 0, fmt.Errorf("%w: %.1f out of range", ErrInvalidVariation, v)
	}
	return sign * float32(v), nil
}

// FormatVariation returns the variation in the "3.0E" / "4.5W" style.
func FormatVariation(v float32) string {
	if v < 0 {
		return fmt.Sprintf("%.1fW", -v)
	}
	return fmt.Sprintf("%.1fE", v)
}

// MagneticVariationAt returns the World Magnetic Model declination (east
// positive, degrees) at the given location and date.
func MagneticVariationAt(p LatLong, elevation float32, date time.Time) (float32, error) {
	loc := egm96.NewLocationGeodetic(float64(p.Latitude), float64(p.Longitude), float64(elevation)*0.3048)
	mag, err := wmm.CalculateWMMMagneticField(loc, date)
	if err != nil {
		return 0, err
	}
	return float32(mag.D()), nil
}
