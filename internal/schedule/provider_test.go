package schedule

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nosthrillz/follow-the-sun/pkg/config"
)

// equatorialConfig places the observer on the equator at the longitude
// matching the host timezone offset, so solar noon lands near 12:00 wall
// time and all nine boundaries fall inside one calendar day wherever the
// test runs.
func equatorialConfig() *config.Config {
	cfg := config.NewConfig()
	_, offset := time.Now().Zone()
	cfg.Latitude = 0
	cfg.Longitude = float64(offset) / 3600 * 15
	return cfg
}

func TestProviderFetch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewProvider(equatorialConfig(), logger)

	date := time.Date(2026, 3, 20, 12, 0, 0, 0, time.Local)
	sched, err := p.Fetch(date)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// Solar noon within the equation-of-time window around 12:00
	if sched.SolarNoon < 11*60+30 || sched.SolarNoon > 12*60+30 {
		t.Errorf("solar noon = %.1f minutes, expected near 720", sched.SolarNoon)
	}

	// Equatorial day length is close to 12h07m year round
	daylight := sched.Sunset - sched.Sunrise
	if daylight < 11.5*60 || daylight > 12.7*60 {
		t.Errorf("daylight = %.1f minutes, expected about 727", daylight)
	}

	// Twilight phases nest outward from sunrise in order
	if !(sched.AstroTwilightBegin < sched.NauticalTwilightBegin &&
		sched.NauticalTwilightBegin < sched.CivilTwilightBegin &&
		sched.CivilTwilightBegin < sched.Sunrise) {
		t.Errorf("dawn boundaries not nested: %+v", sched)
	}
	if !(sched.Sunset < sched.CivilTwilightEnd &&
		sched.CivilTwilightEnd < sched.NauticalTwilightEnd &&
		sched.NauticalTwilightEnd < sched.AstroTwilightEnd) {
		t.Errorf("dusk boundaries not nested: %+v", sched)
	}
}

func TestProviderFetchStableAcrossDay(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewProvider(equatorialConfig(), logger)

	// The schedule depends on the calendar date, not the query hour
	morning := time.Date(2026, 6, 10, 8, 0, 0, 0, time.Local)
	evening := time.Date(2026, 6, 10, 21, 0, 0, 0, time.Local)

	a, err := p.Fetch(morning)
	if err != nil {
		t.Fatalf("morning fetch failed: %v", err)
	}
	b, err := p.Fetch(evening)
	if err != nil {
		t.Fatalf("evening fetch failed: %v", err)
	}

	if diff := a.Sunrise - b.Sunrise; diff > 0.1 || diff < -0.1 {
		t.Errorf("sunrise differs within one date: %.4f vs %.4f", a.Sunrise, b.Sunrise)
	}
}

func TestMissingBoundaries(t *testing.T) {
	ts := Timestamps{
		AstroTwilightBegin: "2026-03-20T04:40:00Z",
		Sunrise:            "2026-03-20T06:00:00Z",
		SolarNoon:          "2026-03-20T12:05:00Z",
	}

	missing := missingBoundaries(ts)
	if len(missing) != 6 {
		t.Fatalf("missing = %v, want 6 entries", missing)
	}

	// Reported in schedule order
	if missing[0] != "nautical_twilight_begin" || missing[len(missing)-1] != "astro_twilight_end" {
		t.Errorf("missing order unexpected: %v", missing)
	}
}
