// Package moon estimates lunar phase and illumination from the calendar
// date alone. Its lux contribution anchors the deep-night end of the
// illuminance curve so nighttime brightness tracks the real moon.
package moon

import (
	"math"
	"time"
)

// SynodicMonth is the mean length of a lunar cycle in days
const SynodicMonth = 29.53058867

// newMoonJD is the Julian date of the reference new moon
// (2000-01-06 18:14 UTC)
const newMoonJD = 2451549.5

// Lux contribution bounds: overcast-free clear-sky ambient levels for a
// new moon floor and a full moon at high altitude.
const (
	NewMoonLux  = 0.001
	FullMoonLux = 0.27
)

// Sample is the moon state for a calendar date
type Sample struct {
	Phase        float64 `json:"phase"`        // [0,1): 0 new, 0.5 full
	Illumination float64 `json:"illumination"` // [0,100] percent
	Lux          float64 `json:"lux"`          // nighttime lux contribution
	Name         string  `json:"name"`         // named phase bucket
}

// At computes the full moon sample for a date
func At(date time.Time) Sample {
	p := Phase(date)
	ill := illuminationFromPhase(p)
	return Sample{
		Phase:        p,
		Illumination: ill,
		Lux:          luxFromIllumination(ill),
		Name:         PhaseName(p),
	}
}

// JulianDay converts a date to a Julian date using the standard
// Gregorian civil-calendar algorithm.
func JulianDay(date time.Time) float64 {
	t := date.UTC()
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	m := int(month)
	if m <= 2 {
		year--
		m += 12
	}

	a := year / 100
	b := 2 - a + a/4
	jdn := int(365.25*float64(year+4716)) + int(30.6001*float64(m+1)) + day + b - 1524

	fracDay := (float64(hour) + float64(minute)/60 + float64(sec)/3600) / 24

	return float64(jdn) - 0.5 + fracDay
}

// DaysSinceNewMoon returns the days elapsed since the nearest preceding
// new moon, in [0, SynodicMonth).
func DaysSinceNewMoon(date time.Time) float64 {
	days := math.Mod(JulianDay(date)-newMoonJD, SynodicMonth)
	if days < 0 {
		days += SynodicMonth
	}
	return days
}

// Phase returns the lunar phase fraction in [0,1)
func Phase(date time.Time) float64 {
	return DaysSinceNewMoon(date) / SynodicMonth
}

// Illumination returns the illuminated percentage for a date
func Illumination(date time.Time) float64 {
	return illuminationFromPhase(Phase(date))
}

// Lux returns the moonlight lux contribution for a date
func Lux(date time.Time) float64 {
	return luxFromIllumination(Illumination(date))
}

// illuminationFromPhase is a triangular ramp: 0 at new moon, 100 at
// full, back to 0. Exact at the endpoints by construction.
func illuminationFromPhase(phase float64) float64 {
	if phase <= 0.5 {
		return 200 * phase
	}
	return 200 * (1 - phase)
}

func luxFromIllumination(illumination float64) float64 {
	return NewMoonLux + (FullMoonLux-NewMoonLux)*illumination/100
}

// phaseNameThreshold is the half-width of the principal phase buckets
const phaseNameThreshold = 0.04

// PhaseName maps a phase fraction to its display bucket
func PhaseName(phase float64) string {
	switch {
	case phase < phaseNameThreshold || phase > 1-phaseNameThreshold:
		return "New Moon"
	case math.Abs(phase-0.25) <= phaseNameThreshold:
		return "First Quarter"
	case math.Abs(phase-0.5) <= phaseNameThreshold:
		return "Full Moon"
	case math.Abs(phase-0.75) <= phaseNameThreshold:
		return "Last Quarter"
	case phase < 0.25:
		return "Waxing Crescent"
	case phase < 0.5:
		return "Waxing Gibbous"
	case phase < 0.75:
		return "Waning Gibbous"
	default:
		return "Waning Crescent"
	}
}
