package sky

import "math"

// Text color derivation: complementary hue, saturation held low, and
// lightness pushed into a band opposite the background so contrast is
// guaranteed regardless of background extremity.
const (
	textSaturationCap = 20
	contrastOffset    = 20

	textLightnessDarkMin  = 85
	textLightnessDarkMax  = 95
	textLightnessLightMin = 5
	textLightnessLightMax = 15
)

// TextColor derives a readable foreground color from a background
// sample. Backgrounds below 50% lightness get text in the [85,95] band,
// brighter backgrounds get [5,15], each computed from the inverted
// background lightness shifted by a fixed offset.
func TextColor(bg ColorSample) ColorSample {
	hue := ComplementaryHue(bg.Hue)
	saturation := math.Min(textSaturationCap, bg.Saturation*1.5)

	inverted := 100 - bg.Lightness
	var lightness float64
	if bg.Lightness < 50 {
		lightness = clamp(inverted+contrastOffset, textLightnessDarkMin, textLightnessDarkMax)
	} else {
		lightness = clamp(inverted-contrastOffset, textLightnessLightMin, textLightnessLightMax)
	}

	return newColorSample(hue, saturation, lightness)
}

// Smoother is the caller-owned exponential smoothing accumulator that
// stabilises text lightness around the 50% background crossover. It is
// the only mutable state in the model; the tick loop owns it and
// threads it forward between evaluations, so no locking is needed as
// long as a single writer applies it.
type Smoother struct {
	alpha  float64
	value  float64
	primed bool
}

// NewSmoother creates a smoother with the given factor in (0,1]; 1
// disables smoothing.
func NewSmoother(alpha float64) *Smoother {
	return &Smoother{alpha: alpha}
}

// Apply folds a new target into the accumulator and returns the
// smoothed value. The first application adopts the target directly.
func (s *Smoother) Apply(target float64) float64 {
	if !s.primed {
		s.value = target
		s.primed = true
		return s.value
	}
	s.value += s.alpha * (target - s.value)
	return s.value
}

// Reset discards the accumulated value, e.g. after a manual time jump
// where carrying the old lightness across would look like lag.
func (s *Smoother) Reset() {
	s.primed = false
	s.value = 0
}
