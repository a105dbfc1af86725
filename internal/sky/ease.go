package sky

// Easing curves used by the piecewise appearance model. Progress values
// are clamped to [0,1] before easing to tolerate floating error at
// segment boundaries.

// clamp01 bounds a progress fraction to [0,1]
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// smoothStep is the cubic 3t²−2t³: zero derivative at both ends, so
// adjacent segments join without a visible kink.
func smoothStep(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// easeInQuad accelerates from a standstill
func easeInQuad(t float64) float64 {
	t = clamp01(t)
	return t * t
}

// easeOutQuad decelerates to a standstill
func easeOutQuad(t float64) float64 {
	t = clamp01(t)
	return t * (2 - t)
}

// easeInOutCubic is the symmetric 4t³ cubic mirrored about t=0.5
func easeInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 1 - t
	return 1 - 4*u*u*u
}

// lerp interpolates linearly between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
