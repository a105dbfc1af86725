package sky

import (
	"github.com/nosthrillz/follow-the-sun/internal/schedule"
)

// Reference lux anchors for the piecewise illuminance curve. Values are
// clear-sky approximations for each twilight boundary; the deep-night
// anchor is the live moon lux, not a constant.
const (
	LuxFloor   = 0.001
	LuxCeiling = 500000

	luxAstroTwilight    = 0.1
	luxNauticalTwilight = 1
	luxCivilTwilight    = 10
	luxSunrise          = 100
	luxEarlyMorning     = 1000
	luxNoon             = 100000
	luxAfternoonDip     = 95000

	// Minutes of smooth-step joining the twilight curve to the moon
	// floor on either side of the night segment
	nightTransitionMinutes = 30

	// Fraction of sunrise→noon spent climbing to the early-morning
	// anchor before the long ease-out to the noon plateau
	morningRampFraction = 0.2
)

// Illuminance estimates ambient lux for a time of day. moonLux anchors
// the deep-night floor so nighttime brightness follows the moon phase.
// With a nil schedule the model cannot place the time on the cycle and
// reports 0, matching the documented fallback appearance.
func Illuminance(minutes float64, sched *schedule.DaySchedule, moonLux float64) float64 {
	if sched == nil {
		return 0
	}

	pos := sched.Locate(minutes)

	var lux float64
	switch pos.Segment {
	case schedule.SegmentNight:
		lux = nightLux(pos, moonLux)
	case schedule.SegmentAstroDawn:
		lux = lerp(luxAstroTwilight, luxNauticalTwilight, smoothStep(pos.Progress))
	case schedule.SegmentNauticalDawn:
		lux = lerp(luxNauticalTwilight, luxCivilTwilight, smoothStep(pos.Progress))
	case schedule.SegmentCivilDawn:
		lux = lerp(luxCivilTwilight, luxSunrise, easeInQuad(pos.Progress))
	case schedule.SegmentMorning:
		lux = morningLux(pos.Progress)
	case schedule.SegmentAfternoon:
		lux = afternoonLux(pos.Progress)
	case schedule.SegmentCivilDusk:
		lux = lerp(luxSunrise, luxCivilTwilight, easeInQuad(pos.Progress))
	case schedule.SegmentNauticalDusk:
		lux = lerp(luxCivilTwilight, luxNauticalTwilight, smoothStep(pos.Progress))
	case schedule.SegmentAstroDusk:
		lux = lerp(luxNauticalTwilight, luxAstroTwilight, smoothStep(pos.Progress))
	default:
		lux = moonLux
	}

	return clamp(lux, LuxFloor, LuxCeiling)
}

// nightLux holds the moon floor through deep night, with a short
// smooth-step window on each side joining it to the 0.1 lux twilight
// anchor. Nights shorter than two windows split down the middle.
func nightLux(pos schedule.Position, moonLux float64) float64 {
	window := float64(nightTransitionMinutes)
	if pos.Length < 2*nightTransitionMinutes {
		window = pos.Length / 2
	}
	if window <= 0 {
		return luxAstroTwilight
	}

	elapsed := pos.Progress * pos.Length
	remaining := pos.Length - elapsed

	switch {
	case elapsed < window:
		return lerp(luxAstroTwilight, moonLux, smoothStep(elapsed/window))
	case remaining < window:
		return lerp(moonLux, luxAstroTwilight, smoothStep(1-remaining/window))
	default:
		return moonLux
	}
}

// morningLux climbs quickly off the sunrise anchor, then eases out into
// the noon plateau over the rest of the morning.
func morningLux(p float64) float64 {
	if p < morningRampFraction {
		return lerp(luxSunrise, luxEarlyMorning, smoothStep(p/morningRampFraction))
	}
	return lerp(luxEarlyMorning, luxNoon, easeOutQuad((p-morningRampFraction)/(1-morningRampFraction)))
}

// afternoonLux stays on the noon plateau with a shallow dip through the
// first half, then falls back to the sunset anchor.
func afternoonLux(p float64) float64 {
	if p < 0.5 {
		return lerp(luxNoon, luxAfternoonDip, smoothStep(p/0.5))
	}
	return lerp(luxAfternoonDip, luxSunrise, smoothStep((p-0.5)/0.5))
}
