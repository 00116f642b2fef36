// wx/atmos.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"fmt"

	"github.com/vfrkit/vfrkit/math"
)

// ISA troposphere constants.
const (
	StandardPressure     = 1013.25 // hPa
	StandardTemperatureC = 15.0
	seaLevelTempK        = 288.15
	lapseRateKPerFoot    = 0.0019812 // 6.5K/km
	// g*M/(R*L) for the standard atmosphere; pressure goes as the
	// temperature ratio to this power and density as this power minus one.
	barometricExponent = 5.25588
	// Common rule of thumb: density altitude rises 120' for every degree
	// Celsius above ISA.
	densityAltitudePerDegree = 120
	// 2 degrees C per 1000'.
	isaLapsePerFoot = 0.002
)

// ISATemperature returns the standard temperature in Celsius at the given
// pressure altitude (feet).
func ISATemperature(pressureAltitude float32) float32 {
	return StandardTemperatureC - isaLapsePerFoot*pressureAltitude
}

// PressureAltitudeForPressure converts pressure in millibars/hPa to pressure
// altitude in feet using the troposphere barometric formula.
func PressureAltitudeForPressure(mb float32) float32 {
	return 145366.45 * (1 - math.Pow(mb/StandardPressure, 0.190284))
}

// PressureAltitudeFromQNH returns the pressure altitude of a field at the
// given elevation (feet) with the altimeter setting qnh (hPa).
func PressureAltitudeFromQNH(elevation, qnh float32) float32 {
	return elevation + PressureAltitudeForPressure(qnh)
}

// DensityAltitude returns the density altitude for the given pressure
// altitude and outside air temperature in Celsius.
func DensityAltitude(pressureAltitude, oat float32) float32 {
	return pressureAltitude + densityAltitudePerDegree*(oat-ISATemperature(pressureAltitude))
}

// PressureAltitudeFromDensity inverts DensityAltitude for a known OAT.
func PressureAltitudeFromDensity(densityAltitude, oat float32) float32 {
	// DA = PA + 120*(OAT - 15 + 0.002*PA)
	return (densityAltitude - densityAltitudePerDegree*(oat-StandardTemperatureC)) /
		(1 + densityAltitudePerDegree*isaLapsePerFoot)
}

// DensityRatioAtAltitude returns the ratio of air density at the given
// density altitude (in feet) to the air density at sea level in the
// standard atmosphere.
func DensityRatioAtAltitude(alt float32) float32 {
	tempRatio := (seaLevelTempK - lapseRateKPerFoot*alt) / seaLevelTempK
	return math.Pow(tempRatio, barometricExponent-1)
}

// IASToTAS converts indicated to true airspeed at the given density
// altitude, ignoring instrument and compressibility errors.
func IASToTAS(ias, densityAltitude float32) float32 {
	return ias / math.Sqrt(DensityRatioAtAltitude(densityAltitude))
}

func TASToIAS(tas, densityAltitude float32) float32 {
	return tas * math.Sqrt(DensityRatioAtAltitude(densityAltitude))
}

// Atmosphere summarizes the air at the takeoff field.
type Atmosphere struct {
	PressureAltitude float32 // feet
	DensityAltitude  float32 // feet
	OAT              float32 // Celsius
	ISADeviation     float32 // Celsius
	DensityRatio     float32
}

// MakeAtmosphere derives the density altitude and density ratio from a
// pressure altitude and OAT.
func MakeAtmosphere(pressureAltitude, oat float32) Atmosphere {
	da := DensityAltitude(pressureAltitude, oat)
	return Atmosphere{
		PressureAltitude: pressureAltitude,
		DensityAltitude:  da,
		OAT:              oat,
		ISADeviation:     oat - ISATemperature(pressureAltitude),
		DensityRatio:     DensityRatioAtAltitude(da),
	}
}

func (a Atmosphere) String() string {
	return fmt.Sprintf("PA %.0f', DA %.0f', OAT %.1fC (ISA%+.1f), sigma %.3f",
		a.PressureAltitude, a.DensityAltitude, a.OAT, a.ISADeviation, a.DensityRatio)
}
