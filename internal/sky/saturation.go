package sky

import (
	"math"

	"github.com/nosthrillz/follow-the-sun/internal/schedule"
)

// Boundary saturation anchors, percent. The sky is nearly gray at solar
// noon, gains a little color through twilight, and keeps a faint cast
// at night. The whole curve stays inside [8,20].
const (
	SaturationMin = 8
	SaturationMax = 20

	satAstroTwilight    = 12
	satNauticalTwilight = 13
	satCivilTwilight    = 14
	satGoldenHour       = 15
	satNoon             = 8
	satFallback         = 10

	// Depth of the mid-night dip below the astro-twilight anchor
	satNightDip = 1.5
)

// Saturation computes ambient sky saturation for a time of day. Day
// segments interpolate linearly between boundary anchors; the night
// segment dips smoothly below the astro-twilight anchor and back, a
// sine bump pinned to the anchor value at both segment ends so the
// curve stays continuous across the wrap.
func Saturation(minutes float64, sched *schedule.DaySchedule) float64 {
	if sched == nil {
		return satFallback
	}

	pos := sched.Locate(minutes)

	var sat float64
	switch pos.Segment {
	case schedule.SegmentNight:
		sat = satAstroTwilight - satNightDip*math.Sin(math.Pi*pos.Progress)
	case schedule.SegmentAstroDawn:
		sat = lerp(satAstroTwilight, satNauticalTwilight, pos.Progress)
	case schedule.SegmentNauticalDawn:
		sat = lerp(satNauticalTwilight, satCivilTwilight, pos.Progress)
	case schedule.SegmentCivilDawn:
		sat = lerp(satCivilTwilight, satGoldenHour, pos.Progress)
	case schedule.SegmentMorning:
		sat = lerp(satGoldenHour, satNoon, smoothStep(pos.Progress))
	case schedule.SegmentAfternoon:
		sat = lerp(satNoon, satGoldenHour, smoothStep(pos.Progress))
	case schedule.SegmentCivilDusk:
		sat = lerp(satGoldenHour, satCivilTwilight, pos.Progress)
	case schedule.SegmentNauticalDusk:
		sat = lerp(satCivilTwilight, satNauticalTwilight, pos.Progress)
	case schedule.SegmentAstroDusk:
		sat = lerp(satNauticalTwilight, satAstroTwilight, pos.Progress)
	default:
		sat = satFallback
	}

	return clamp(sat, SaturationMin, SaturationMax)
}
