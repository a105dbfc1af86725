// Package sky maps time-of-day onto the ambient display appearance:
// estimated illuminance, perceptual darkness, and the hue/saturation/
// lightness of the sky color. Everything is a pure function of the
// current time, the day schedule, and the moon sample, recomputed per
// query; continuity across segment boundaries and the midnight wrap is
// a design invariant of every curve here.
package sky

import (
	"github.com/nosthrillz/follow-the-sun/internal/moon"
	"github.com/nosthrillz/follow-the-sun/internal/schedule"
)

// Fallback appearance when no schedule is available. The display must
// always render something, so a missing schedule degrades to a neutral
// dusk blue instead of failing.
const (
	fallbackDarkness = 50
	fallbackLux      = 0
)

// darkerOffset derives the second gradient stop from the base lightness
const darkerOffset = 10

// ColorSample describes a sky color in HSL terms plus the precomputed
// darker lightness used for the background gradient stop.
type ColorSample struct {
	Hue             float64 `json:"hue"`        // [0,360)
	Saturation      float64 `json:"saturation"` // [0,100]
	Lightness       float64 `json:"lightness"`  // [0,100]
	DarkerLightness float64 `json:"darker_lightness"`
}

func newColorSample(h, s, l float64) ColorSample {
	return ColorSample{
		Hue:             h,
		Saturation:      s,
		Lightness:       l,
		DarkerLightness: clamp(l-darkerOffset, 0, 100),
	}
}

// Appearance is the full computed display state for one moment
type Appearance struct {
	Background ColorSample `json:"background"`
	Text       ColorSample `json:"text"`
	Darkness   float64     `json:"darkness"`
	Lux        float64     `json:"lux"`
	Segment    string      `json:"segment"`
}

// Evaluate computes the complete appearance for a time of day. The moon
// sample anchors the nighttime lux floor. A nil schedule yields the
// documented fallback appearance.
func Evaluate(minutes float64, sched *schedule.DaySchedule, m moon.Sample) Appearance {
	if sched == nil {
		bg := newColorSample(hueFallback, satFallback, Lightness(fallbackDarkness))
		return Appearance{
			Background: bg,
			Text:       TextColor(bg),
			Darkness:   fallbackDarkness,
			Lux:        fallbackLux,
			Segment:    "unknown",
		}
	}

	lux := Illuminance(minutes, sched, m.Lux)
	darkness := Darkness(lux)

	bg := newColorSample(
		Hue(minutes, sched),
		Saturation(minutes, sched),
		Lightness(darkness),
	)

	return Appearance{
		Background: bg,
		Text:       TextColor(bg),
		Darkness:   darkness,
		Lux:        lux,
		Segment:    sched.Locate(minutes).Segment.String(),
	}
}
