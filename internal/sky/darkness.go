package sky

import "math"

// Darkness bounds: the log rescale spans moonless night (0.001 lux) to
// full daylight (100000 lux), about eight orders of magnitude.
const (
	darknessLuxMin = 0.001
	darknessLuxMax = 100000

	// Lightness clamp keeps the background off pure black/white
	LightnessMin = 5
	LightnessMax = 95
)

// Darkness maps lux onto a perceptual 0–100 darkness percentage:
// log10-rescaled so 0.001 lux reads 100 and 100000 lux reads 0, with a
// symmetric cubic easing on the normalized value. Strictly decreasing
// in lux across the whole clamp range.
func Darkness(lux float64) float64 {
	l := clamp(lux, darknessLuxMin, darknessLuxMax)

	logMin := math.Log10(darknessLuxMin)
	logMax := math.Log10(darknessLuxMax)

	// 1 at the dark end, 0 at the bright end
	normalized := (logMax - math.Log10(l)) / (logMax - logMin)

	return easeInOutCubic(normalized) * 100
}

// Lightness converts darkness to the background lightness used by the
// color model.
func Lightness(darkness float64) float64 {
	return clamp(100-darkness, LightnessMin, LightnessMax)
}
