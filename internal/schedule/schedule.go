package schedule

import (
	"errors"
	"fmt"

	"github.com/nosthrillz/follow-the-sun/internal/clock"
)

// ErrScheduleInvalid is returned when the nine boundaries are out of
// order or incomplete. Callers keep the previous valid schedule instead
// of accepting a broken one.
var ErrScheduleInvalid = errors.New("invalid day schedule")

// DaySchedule holds the nine twilight/sun boundaries of one nominal day
// as minutes since midnight. Together with the implicit night wrap
// (AstroTwilightEnd to the next day's AstroTwilightBegin) they partition
// the full 24h circle. A schedule is immutable once constructed; a fresh
// provider fetch replaces it wholesale.
type DaySchedule struct {
	AstroTwilightBegin    float64 `json:"astro_twilight_begin"`
	NauticalTwilightBegin float64 `json:"nautical_twilight_begin"`
	CivilTwilightBegin    float64 `json:"civil_twilight_begin"`
	Sunrise               float64 `json:"sunrise"`
	SolarNoon             float64 `json:"solar_noon"`
	Sunset                float64 `json:"sunset"`
	CivilTwilightEnd      float64 `json:"civil_twilight_end"`
	NauticalTwilightEnd   float64 `json:"nautical_twilight_end"`
	AstroTwilightEnd      float64 `json:"astro_twilight_end"`
}

// Timestamps carries the nine boundary timestamps as ISO-8601 strings,
// the form in which a sun-events provider delivers them.
type Timestamps struct {
	AstroTwilightBegin    string
	NauticalTwilightBegin string
	CivilTwilightBegin    string
	Sunrise               string
	SolarNoon             string
	Sunset                string
	CivilTwilightEnd      string
	NauticalTwilightEnd   string
	AstroTwilightEnd      string
}

// boundaryNames is indexed in schedule order, used for error messages
var boundaryNames = [9]string{
	"astro_twilight_begin",
	"nautical_twilight_begin",
	"civil_twilight_begin",
	"sunrise",
	"solar_noon",
	"sunset",
	"civil_twilight_end",
	"nautical_twilight_end",
	"astro_twilight_end",
}

// New validates boundary ordering and returns an immutable schedule.
// Coincident boundaries (a zero-length segment) are permitted; an
// inversion is not.
func New(s DaySchedule) (*DaySchedule, error) {
	b := s.boundaries()
	for i := range b {
		if b[i] < 0 || b[i] >= clock.MinutesPerDay {
			return nil, fmt.Errorf("%w: %s out of range: %.2f", ErrScheduleInvalid, boundaryNames[i], b[i])
		}
		if i > 0 && b[i] < b[i-1] {
			return nil, fmt.Errorf("%w: %s (%.2f) precedes %s (%.2f)",
				ErrScheduleInvalid, boundaryNames[i], b[i], boundaryNames[i-1], b[i-1])
		}
	}
	out := s
	return &out, nil
}

// FromTimestamps parses the nine provider timestamps and constructs a
// validated schedule. Parse failures surface as clock.ErrParse.
func FromTimestamps(ts Timestamps) (*DaySchedule, error) {
	fields := [9]string{
		ts.AstroTwilightBegin,
		ts.NauticalTwilightBegin,
		ts.CivilTwilightBegin,
		ts.Sunrise,
		ts.SolarNoon,
		ts.Sunset,
		ts.CivilTwilightEnd,
		ts.NauticalTwilightEnd,
		ts.AstroTwilightEnd,
	}

	var b [9]float64
	for i, field := range fields {
		m, err := clock.TimeToMinutes(field)
		if err != nil {
			return nil, fmt.Errorf("boundary %s: %w", boundaryNames[i], err)
		}
		b[i] = m
	}

	return New(DaySchedule{
		AstroTwilightBegin:    b[0],
		NauticalTwilightBegin: b[1],
		CivilTwilightBegin:    b[2],
		Sunrise:               b[3],
		SolarNoon:             b[4],
		Sunset:                b[5],
		CivilTwilightEnd:      b[6],
		NauticalTwilightEnd:   b[7],
		AstroTwilightEnd:      b[8],
	})
}

func (s *DaySchedule) boundaries() [9]float64 {
	return [9]float64{
		s.AstroTwilightBegin,
		s.NauticalTwilightBegin,
		s.CivilTwilightBegin,
		s.Sunrise,
		s.SolarNoon,
		s.Sunset,
		s.CivilTwilightEnd,
		s.NauticalTwilightEnd,
		s.AstroTwilightEnd,
	}
}

// Segment identifies one arc of the daily cycle
type Segment int

const (
	SegmentNight Segment = iota
	SegmentAstroDawn
	SegmentNauticalDawn
	SegmentCivilDawn
	SegmentMorning
	SegmentAfternoon
	SegmentCivilDusk
	SegmentNauticalDusk
	SegmentAstroDusk
)

// String returns the segment name for logging and published context
func (s Segment) String() string {
	switch s {
	case SegmentNight:
		return "night"
	case SegmentAstroDawn:
		return "astro_dawn"
	case SegmentNauticalDawn:
		return "nautical_dawn"
	case SegmentCivilDawn:
		return "civil_dawn"
	case SegmentMorning:
		return "morning"
	case SegmentAfternoon:
		return "afternoon"
	case SegmentCivilDusk:
		return "civil_dusk"
	case SegmentNauticalDusk:
		return "nautical_dusk"
	case SegmentAstroDusk:
		return "astro_dusk"
	default:
		return "unknown"
	}
}

// Position describes where a time falls on the daily cycle
type Position struct {
	Segment  Segment
	Progress float64 // 0 at segment start, 1 at segment end
	Length   float64 // segment length in minutes
}

// Locate maps a time to its segment and eased-interpolation progress.
// Zero-length segments report Progress 1 so interpolators step straight
// to the end value instead of dividing by zero.
func (s *DaySchedule) Locate(minutes float64) Position {
	m := clock.Normalize(minutes)
	b := s.boundaries()

	// Night wraps across midnight: [astro end, next astro begin)
	if m < b[0] || m >= b[8] {
		length := clock.MinutesPerDay - b[8] + b[0]
		elapsed := m - b[8]
		if elapsed < 0 {
			elapsed += clock.MinutesPerDay
		}
		return Position{Segment: SegmentNight, Progress: progress(elapsed, length), Length: length}
	}

	for i := 1; i < len(b); i++ {
		if m < b[i] {
			length := b[i] - b[i-1]
			return Position{
				Segment:  Segment(i), // Segment(1) == SegmentAstroDawn
				Progress: progress(m-b[i-1], length),
				Length:   length,
			}
		}
	}

	// Unreachable: m < b[8] is guaranteed above
	return Position{Segment: SegmentNight, Progress: 1, Length: 0}
}

func progress(elapsed, length float64) float64 {
	if length <= 0 {
		return 1
	}
	p := elapsed / length
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
