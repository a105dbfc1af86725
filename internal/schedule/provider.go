package schedule

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/nosthrillz/follow-the-sun/pkg/config"
)

// Provider computes the nine boundary timestamps for the configured
// observer location and builds a validated schedule from them. It goes
// through the same ISO-8601 timestamp path an external HTTP provider
// would use, so schedule construction is exercised end to end.
type Provider struct {
	latitude  float64
	longitude float64
	logger    *slog.Logger
}

// NewProvider creates a schedule provider for the configured location
func NewProvider(cfg *config.Config, logger *slog.Logger) *Provider {
	return &Provider{
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
		logger:    logger,
	}
}

// Fetch computes the schedule for the given calendar date. Dates where
// some twilight boundaries never occur (polar day/night) are rejected
// with ErrScheduleInvalid rather than degenerated into a partial
// partition; the caller keeps its previous schedule.
func (p *Provider) Fetch(date time.Time) (*DaySchedule, error) {
	times := suncalc.GetTimes(date, p.latitude, p.longitude)

	ts := Timestamps{
		AstroTwilightBegin:    formatBoundary(times, suncalc.NightEnd),
		NauticalTwilightBegin: formatBoundary(times, suncalc.NauticalDawn),
		CivilTwilightBegin:    formatBoundary(times, suncalc.Dawn),
		Sunrise:               formatBoundary(times, suncalc.Sunrise),
		SolarNoon:             formatBoundary(times, suncalc.SolarNoon),
		Sunset:                formatBoundary(times, suncalc.Sunset),
		CivilTwilightEnd:      formatBoundary(times, suncalc.Dusk),
		NauticalTwilightEnd:   formatBoundary(times, suncalc.NauticalDusk),
		AstroTwilightEnd:      formatBoundary(times, suncalc.Night),
	}

	missing := missingBoundaries(ts)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: boundaries missing for %s at lat %.4f (polar day/night?): %v",
			ErrScheduleInvalid, date.Format("2006-01-02"), p.latitude, missing)
	}

	sched, err := FromTimestamps(ts)
	if err != nil {
		return nil, fmt.Errorf("schedule for %s: %w", date.Format("2006-01-02"), err)
	}

	p.logger.Debug("Computed day schedule",
		"date", date.Format("2006-01-02"),
		"sunrise", sched.Sunrise,
		"solar_noon", sched.SolarNoon,
		"sunset", sched.Sunset)

	return sched, nil
}

// formatBoundary renders a computed sun time as the ISO-8601 string a
// remote provider would deliver; an absent event becomes the empty
// string.
func formatBoundary(times map[suncalc.DayTimeName]suncalc.DayTime, name suncalc.DayTimeName) string {
	dt, ok := times[name]
	if !ok || dt.Value.IsZero() {
		return ""
	}
	return dt.Value.Local().Format(time.RFC3339)
}

func missingBoundaries(ts Timestamps) []string {
	fields := map[string]string{
		"astro_twilight_begin":    ts.AstroTwilightBegin,
		"nautical_twilight_begin": ts.NauticalTwilightBegin,
		"civil_twilight_begin":    ts.CivilTwilightBegin,
		"sunrise":                 ts.Sunrise,
		"solar_noon":              ts.SolarNoon,
		"sunset":                  ts.Sunset,
		"civil_twilight_end":      ts.CivilTwilightEnd,
		"nautical_twilight_end":   ts.NauticalTwilightEnd,
		"astro_twilight_end":      ts.AstroTwilightEnd,
	}

	var missing []string
	for _, name := range boundaryNames {
		if fields[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
