package clock

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// MinutesPerDay is the length of the circular time domain; minute 1440
// is identical to minute 0.
const MinutesPerDay = 1440.0

// ErrParse is returned when a timestamp cannot be parsed
var ErrParse = errors.New("unparsable timestamp")

// TimeToMinutes parses an absolute ISO-8601 timestamp carrying the
// observer's local offset and returns minutes since midnight with
// sub-minute precision. The wall clock of the timestamp's own zone is
// used as-is. Callers must supply validated timestamps; a parse failure
// surfaces as ErrParse and is not recovered here.
func TimeToMinutes(timestamp string) (float64, error) {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return FromTime(t), nil
}

// FromTime converts a wall-clock time to minutes since midnight
func FromTime(t time.Time) float64 {
	return float64(t.Hour())*60 + float64(t.Minute()) + float64(t.Second())/60
}

// Normalize wraps any minute value into the canonical [0, 1440) domain
func Normalize(minutes float64) float64 {
	m := math.Mod(minutes, MinutesPerDay)
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}

// MinutesToAngle maps [0, 1440) onto [-π/2, 3π/2) so that minute 0 sits
// at the top of the dial and the angle grows clockwise over the full
// circle.
func MinutesToAngle(minutes float64) float64 {
	m := Normalize(minutes)
	return -math.Pi/2 + (m/MinutesPerDay)*2*math.Pi
}

// AngleToMinutes is the exact inverse of MinutesToAngle; any input angle
// is first normalized into the canonical [-π/2, 3π/2) domain.
func AngleToMinutes(angle float64) float64 {
	a := math.Mod(angle+math.Pi/2, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return (a / (2 * math.Pi)) * MinutesPerDay
}
