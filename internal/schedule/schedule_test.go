package schedule

import (
	"errors"
	"math"
	"testing"

	"github.com/nosthrillz/follow-the-sun/internal/clock"
)

// testSchedule is the documented reference day: civil twilight 05:30,
// sunrise 06:00, noon 12:00, sunset 18:00, civil twilight end 18:30,
// remaining boundaries spaced symmetrically.
func testSchedule(t *testing.T) *DaySchedule {
	t.Helper()
	s, err := New(DaySchedule{
		AstroTwilightBegin:    270,  // 04:30
		NauticalTwilightBegin: 300,  // 05:00
		CivilTwilightBegin:    330,  // 05:30
		Sunrise:               360,  // 06:00
		SolarNoon:             720,  // 12:00
		Sunset:                1080, // 18:00
		CivilTwilightEnd:      1110, // 18:30
		NauticalTwilightEnd:   1140, // 19:00
		AstroTwilightEnd:      1170, // 19:30
	})
	if err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}
	return s
}

func TestNewRejectsInversions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DaySchedule)
	}{
		{"sunrise after noon", func(s *DaySchedule) { s.Sunrise = 800 }},
		{"sunset before noon", func(s *DaySchedule) { s.Sunset = 700 }},
		{"civil begin after sunrise", func(s *DaySchedule) { s.CivilTwilightBegin = 400 }},
		{"astro end before nautical end", func(s *DaySchedule) { s.AstroTwilightEnd = 1100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := *testSchedule(t)
			tt.mutate(&s)
			_, err := New(s)
			if !errors.Is(err, ErrScheduleInvalid) {
				t.Errorf("New() error = %v, want ErrScheduleInvalid", err)
			}
		})
	}
}

func TestNewRejectsOutOfRange(t *testing.T) {
	s := *testSchedule(t)
	s.AstroTwilightBegin = -5
	if _, err := New(s); !errors.Is(err, ErrScheduleInvalid) {
		t.Errorf("negative boundary: error = %v, want ErrScheduleInvalid", err)
	}

	s = *testSchedule(t)
	s.AstroTwilightEnd = 1500
	if _, err := New(s); !errors.Is(err, ErrScheduleInvalid) {
		t.Errorf("boundary past midnight: error = %v, want ErrScheduleInvalid", err)
	}
}

func TestNewPermitsCoincidentBoundaries(t *testing.T) {
	s := *testSchedule(t)
	s.NauticalTwilightEnd = s.CivilTwilightEnd

	sched, err := New(s)
	if err != nil {
		t.Fatalf("coincident boundaries rejected: %v", err)
	}

	// The zero-length segment reports Progress 1: an instantaneous
	// step to the end value, never a divide-by-zero.
	pos := sched.Locate(s.CivilTwilightEnd)
	if pos.Segment != SegmentNauticalDusk {
		t.Fatalf("Locate at coincident boundary = %s", pos.Segment)
	}
	if pos.Progress != 1 {
		t.Errorf("zero-length segment progress = %.4f, want 1", pos.Progress)
	}
}

func TestFromTimestamps(t *testing.T) {
	ts := Timestamps{
		AstroTwilightBegin:    "2024-06-15T04:30:00+03:00",
		NauticalTwilightBegin: "2024-06-15T05:00:00+03:00",
		CivilTwilightBegin:    "2024-06-15T05:30:00+03:00",
		Sunrise:               "2024-06-15T06:00:00+03:00",
		SolarNoon:             "2024-06-15T12:00:00+03:00",
		Sunset:                "2024-06-15T18:00:00+03:00",
		CivilTwilightEnd:      "2024-06-15T18:30:00+03:00",
		NauticalTwilightEnd:   "2024-06-15T19:00:00+03:00",
		AstroTwilightEnd:      "2024-06-15T19:30:00+03:00",
	}

	sched, err := FromTimestamps(ts)
	if err != nil {
		t.Fatalf("FromTimestamps() error: %v", err)
	}
	if sched.Sunrise != 360 || sched.SolarNoon != 720 || sched.Sunset != 1080 {
		t.Errorf("parsed boundaries = %.1f/%.1f/%.1f, want 360/720/1080",
			sched.Sunrise, sched.SolarNoon, sched.Sunset)
	}
}

func TestFromTimestampsParseError(t *testing.T) {
	ts := Timestamps{
		AstroTwilightBegin: "yesterday-ish",
	}
	_, err := FromTimestamps(ts)
	if !errors.Is(err, clock.ErrParse) {
		t.Errorf("FromTimestamps() error = %v, want clock.ErrParse", err)
	}
}

func TestLocate(t *testing.T) {
	s := testSchedule(t)

	tests := []struct {
		name     string
		minutes  float64
		segment  Segment
		progress float64
	}{
		{"midnight deep night", 0, SegmentNight, 270.0 / 540},
		{"just before astro dawn", 269.9, SegmentNight, (270 + 269.9) / 540},
		{"astro dawn start", 270, SegmentAstroDawn, 0},
		{"nautical dawn start", 300, SegmentNauticalDawn, 0},
		{"mid civil dawn", 345, SegmentCivilDawn, 0.5},
		{"sunrise", 360, SegmentMorning, 0},
		{"mid morning", 540, SegmentMorning, 0.5},
		{"solar noon", 720, SegmentAfternoon, 0},
		{"sunset", 1080, SegmentCivilDusk, 0},
		{"mid nautical dusk", 1125, SegmentNauticalDusk, 0.5},
		{"astro dusk end", 1170, SegmentNight, 0},
		{"late evening", 1200, SegmentNight, 30.0 / 540},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := s.Locate(tt.minutes)
			if pos.Segment != tt.segment {
				t.Fatalf("Locate(%.1f).Segment = %s, want %s", tt.minutes, pos.Segment, tt.segment)
			}
			if math.Abs(pos.Progress-tt.progress) > 1e-9 {
				t.Errorf("Locate(%.1f).Progress = %.6f, want %.6f", tt.minutes, pos.Progress, tt.progress)
			}
		})
	}
}

func TestLocateWrapsAcrossMidnight(t *testing.T) {
	s := testSchedule(t)

	// Night runs 19:30 -> next 04:30, length 540 minutes
	pos := s.Locate(1170)
	if pos.Segment != SegmentNight || math.Abs(pos.Length-540) > 1e-9 {
		t.Fatalf("Locate(1170) = %s length %.1f, want night length 540", pos.Segment, pos.Length)
	}

	before := s.Locate(1439.9)
	after := s.Locate(0.1)
	if before.Segment != SegmentNight || after.Segment != SegmentNight {
		t.Fatal("midnight neighborhood not in night segment")
	}
	if after.Progress <= before.Progress {
		t.Errorf("night progress not monotonic across midnight: %.6f -> %.6f",
			before.Progress, after.Progress)
	}
}
