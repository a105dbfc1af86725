package clock

import (
	"fmt"
	"math"
)

// NegativeDuration is the sentinel returned by FormatDuration for
// negative input.
const NegativeDuration = "--"

// FormatTime renders minutes since midnight as "HH:MM:SS", wrapping
// values outside the canonical day.
func FormatTime(minutes float64) string {
	totalSeconds := int(math.Round(Normalize(minutes) * 60))
	totalSeconds %= 24 * 60 * 60

	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatDuration renders a duration in minutes as "Xh Ym Zs". Negative
// durations have no meaning on the dial and render as the sentinel.
func FormatDuration(minutes float64) string {
	if minutes < 0 {
		return NegativeDuration
	}

	totalSeconds := int(math.Round(minutes * 60))
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
