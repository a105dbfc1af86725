package moon

import (
	"math"
	"testing"
	"time"
)

// referenceNewMoon is the epoch the phase calculation is anchored to
var referenceNewMoon = time.Date(2000, 1, 6, 0, 0, 0, 0, time.UTC)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"reference new moon", referenceNewMoon, 2451549.5},
		{"leap day", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 2460369.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JulianDay(tt.date); math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("JulianDay() = %.6f, want %.6f", got, tt.expected)
			}
		})
	}
}

func TestPhaseAtReferenceEpoch(t *testing.T) {
	if got := Phase(referenceNewMoon); got > 1e-9 {
		t.Errorf("Phase(reference) = %.9f, want 0", got)
	}
}

func TestSynodicPeriodicity(t *testing.T) {
	month := time.Duration(SynodicMonth * 24 * float64(time.Hour))

	dates := []time.Time{
		referenceNewMoon,
		time.Date(2024, 6, 15, 13, 30, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, d := range dates {
		p1 := Phase(d)
		p2 := Phase(d.Add(month))
		diff := math.Abs(p1 - p2)
		if diff > 0.5 {
			diff = 1 - diff
		}
		if diff > 1e-6 {
			t.Errorf("Phase(%s) = %.9f but one synodic month later = %.9f", d, p1, p2)
		}
	}
}

func TestIlluminationTriangle(t *testing.T) {
	tests := []struct {
		phase    float64
		expected float64
	}{
		{0, 0},
		{0.25, 50},
		{0.5, 100},
		{0.75, 50},
		{0.999, 0.2},
	}

	for _, tt := range tests {
		if got := illuminationFromPhase(tt.phase); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("illumination at phase %.3f = %.4f, want %.4f", tt.phase, got, tt.expected)
		}
	}
}

func TestLuxBounds(t *testing.T) {
	if got := luxFromIllumination(0); got != NewMoonLux {
		t.Errorf("new moon lux = %.4f, want %.4f", got, NewMoonLux)
	}
	if got := luxFromIllumination(100); math.Abs(got-FullMoonLux) > 1e-9 {
		t.Errorf("full moon lux = %.4f, want %.4f", got, FullMoonLux)
	}

	// Lux stays inside its documented band across the whole cycle
	for p := 0.0; p < 1; p += 0.01 {
		lux := luxFromIllumination(illuminationFromPhase(p))
		if lux < NewMoonLux || lux > FullMoonLux {
			t.Fatalf("lux at phase %.2f = %.4f out of [%.3f, %.3f]", p, lux, NewMoonLux, FullMoonLux)
		}
	}
}

func TestPhaseName(t *testing.T) {
	tests := []struct {
		phase    float64
		expected string
	}{
		{0, "New Moon"},
		{0.02, "New Moon"},
		{0.98, "New Moon"},
		{0.1, "Waxing Crescent"},
		{0.25, "First Quarter"},
		{0.28, "First Quarter"},
		{0.35, "Waxing Gibbous"},
		{0.5, "Full Moon"},
		{0.53, "Full Moon"},
		{0.6, "Waning Gibbous"},
		{0.75, "Last Quarter"},
		{0.9, "Waning Crescent"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := PhaseName(tt.phase); got != tt.expected {
				t.Errorf("PhaseName(%.2f) = %s, want %s", tt.phase, got, tt.expected)
			}
		})
	}
}

func TestAt(t *testing.T) {
	halfMonth := time.Duration(SynodicMonth / 2 * 24 * float64(time.Hour))
	full := referenceNewMoon.Add(halfMonth)

	sample := At(full)
	if math.Abs(sample.Phase-0.5) > 1e-6 {
		t.Errorf("phase at full moon = %.6f, want 0.5", sample.Phase)
	}
	if math.Abs(sample.Illumination-100) > 1e-3 {
		t.Errorf("illumination at full moon = %.4f, want 100", sample.Illumination)
	}
	if math.Abs(sample.Lux-FullMoonLux) > 1e-4 {
		t.Errorf("lux at full moon = %.4f, want %.2f", sample.Lux, FullMoonLux)
	}
	if sample.Name != "Full Moon" {
		t.Errorf("name at full moon = %s", sample.Name)
	}
}
