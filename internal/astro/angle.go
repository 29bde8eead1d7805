package astro

import "math"

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// -tiny + 360 rounds to exactly 360
	if d >= 360 {
		d -= 360
	}
	return d
}

func radians(deg float64) float64 {
	return NormalizeDegrees(deg) * math.Pi / 180
}
