package sky

import (
	"math"

	"github.com/nosthrillz/follow-the-sun/internal/schedule"
)

// Boundary hue anchors, degrees. Deep night sits in blue, twilight
// steps down through the blue hour, sunrise and sunset pass through
// golden-hour warmth, and full daylight rests on a pale sky blue. The
// descent mirrors the ascent.
const (
	hueNight        = 240
	hueNauticalDawn = 230
	hueCivilDawn    = 220 // blue hour
	hueSunrise      = 25  // golden hour
	hueNoon         = 208 // daylight sky
	hueSunset       = 20
	hueCivilDusk    = 218
	hueNauticalDusk = 230
	hueAstroDusk    = 240
	hueFallback     = 240
)

// LerpHue interpolates between two hues along the shorter arc of the
// color circle, wrapping correctly through 0°/360°.
func LerpHue(h1, h2, t float64) float64 {
	delta := math.Mod(h2-h1+540, 360) - 180
	return normalizeHue(h1 + delta*t)
}

// lerpHueAscending interpolates along the ascending (clockwise) arc
// regardless of which direction is shorter. Used where the short arc
// would drag the sky through the green band.
func lerpHueAscending(h1, h2, t float64) float64 {
	delta := math.Mod(h2-h1, 360)
	if delta < 0 {
		delta += 360
	}
	return normalizeHue(h1 + delta*t)
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Hue computes the ambient sky hue for a time of day. Every segment
// interpolates between its boundary anchors; all paths stay in the
// blue/violet/red range. The civil-dawn segment is the one place the
// shorter arc (220°→25° falling through green) is wrong, so it ascends
// through violet and magenta instead. The descending segments' short
// arcs already pass through red/violet, no override needed.
func Hue(minutes float64, sched *schedule.DaySchedule) float64 {
	if sched == nil {
		return hueFallback
	}

	pos := sched.Locate(minutes)

	switch pos.Segment {
	case schedule.SegmentNight:
		return hueNight
	case schedule.SegmentAstroDawn:
		return LerpHue(hueNight, hueNauticalDawn, pos.Progress)
	case schedule.SegmentNauticalDawn:
		return LerpHue(hueNauticalDawn, hueCivilDawn, pos.Progress)
	case schedule.SegmentCivilDawn:
		return lerpHueAscending(hueCivilDawn, hueSunrise, pos.Progress)
	case schedule.SegmentMorning:
		return LerpHue(hueSunrise, hueNoon, pos.Progress)
	case schedule.SegmentAfternoon:
		return LerpHue(hueNoon, hueSunset, pos.Progress)
	case schedule.SegmentCivilDusk:
		return LerpHue(hueSunset, hueCivilDusk, pos.Progress)
	case schedule.SegmentNauticalDusk:
		return LerpHue(hueCivilDusk, hueNauticalDusk, pos.Progress)
	case schedule.SegmentAstroDusk:
		return LerpHue(hueNauticalDusk, hueAstroDusk, pos.Progress)
	default:
		return hueFallback
	}
}

// ComplementaryHue returns the hue directly across the color circle
func ComplementaryHue(h float64) float64 {
	return normalizeHue(h + 180)
}
