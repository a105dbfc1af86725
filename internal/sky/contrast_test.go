package sky

import (
	"math"
	"testing"
)

func TestTextColor(t *testing.T) {
	tests := []struct {
		name              string
		bg                ColorSample
		expectedHue       float64
		expectedSat       float64
		expectedLightness float64
	}{
		{
			name:              "deep night background",
			bg:                newColorSample(240, 12, 5),
			expectedHue:       60,
			expectedSat:       18,
			expectedLightness: 95, // inverted 95 + 20, clamped to the band top
		},
		{
			name:              "dark background near crossover",
			bg:                newColorSample(240, 12, 49),
			expectedHue:       60,
			expectedSat:       18,
			expectedLightness: 85, // inverted 51 + 20, clamped to the band bottom
		},
		{
			name:              "light background at crossover",
			bg:                newColorSample(208, 8, 50),
			expectedHue:       28,
			expectedSat:       12,
			expectedLightness: 15, // inverted 50 - 20, clamped to the band top
		},
		{
			name:              "noon background",
			bg:                newColorSample(208, 8, 95),
			expectedHue:       28,
			expectedSat:       12,
			expectedLightness: 5, // inverted 5 - 20, clamped to the band bottom
		},
		{
			name:              "saturation capped",
			bg:                newColorSample(20, 18, 30),
			expectedHue:       200,
			expectedSat:       20,
			expectedLightness: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextColor(tt.bg)
			if math.Abs(got.Hue-tt.expectedHue) > 1e-9 {
				t.Errorf("hue = %.4f, want %.1f", got.Hue, tt.expectedHue)
			}
			if math.Abs(got.Saturation-tt.expectedSat) > 1e-9 {
				t.Errorf("saturation = %.4f, want %.1f", got.Saturation, tt.expectedSat)
			}
			if math.Abs(got.Lightness-tt.expectedLightness) > 1e-9 {
				t.Errorf("lightness = %.4f, want %.1f", got.Lightness, tt.expectedLightness)
			}
		})
	}
}

func TestTextColorAlwaysContrasts(t *testing.T) {
	s := referenceSchedule(t)

	// Whatever the background does over the day, text lightness stays at
	// least 35 points away from it.
	for m := 0.0; m < 1440; m += 1 {
		app := Evaluate(m, s, testMoonSample(0.001))
		gap := math.Abs(app.Text.Lightness - app.Background.Lightness)
		if gap < 35 {
			t.Fatalf("contrast gap at minute %.0f = %.2f (bg %.2f, text %.2f)",
				m, gap, app.Background.Lightness, app.Text.Lightness)
		}
	}
}

func TestSmootherAdoptsFirstTarget(t *testing.T) {
	sm := NewSmoother(0.25)
	if got := sm.Apply(80); got != 80 {
		t.Errorf("first Apply = %.4f, want 80", got)
	}
}

func TestSmootherConverges(t *testing.T) {
	sm := NewSmoother(0.25)
	sm.Apply(80)

	if got := sm.Apply(0); math.Abs(got-60) > 1e-9 {
		t.Errorf("second Apply = %.4f, want 60", got)
	}
	if got := sm.Apply(0); math.Abs(got-45) > 1e-9 {
		t.Errorf("third Apply = %.4f, want 45", got)
	}

	// Monotonic approach to a held target
	prev := sm.Apply(0)
	for i := 0; i < 50; i++ {
		cur := sm.Apply(0)
		if cur >= prev && prev != 0 {
			t.Fatalf("smoother not converging: %.6f -> %.6f", prev, cur)
		}
		prev = cur
	}
	if prev > 0.01 {
		t.Errorf("smoother far from target after 50 steps: %.4f", prev)
	}
}

func TestSmootherReset(t *testing.T) {
	sm := NewSmoother(0.25)
	sm.Apply(80)
	sm.Reset()

	if got := sm.Apply(10); got != 10 {
		t.Errorf("Apply after Reset = %.4f, want 10 (target adopted directly)", got)
	}
}

func TestSmootherAlphaOneIsPassthrough(t *testing.T) {
	sm := NewSmoother(1)
	sm.Apply(80)
	if got := sm.Apply(10); got != 10 {
		t.Errorf("alpha=1 Apply = %.4f, want 10", got)
	}
}
