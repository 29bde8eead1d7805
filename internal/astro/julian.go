package astro

import (
	"math"
	"time"
)

const (
	// UnixEpochJD is the Julian Day of 1970-01-01T00:00:00Z.
	UnixEpochJD = 2440587.5

	// J2000 is the Julian Day of the standard epoch 2000-01-01T12:00:00.
	J2000 = 2451545.0

	secondsPerDay  = 86400.0
	daysPerCentury = 36525.0
	daysPerYear    = 365.25
)

// JulianDay converts an instant to a continuous Julian Day number.
func JulianDay(t time.Time) float64 {
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return secs/secondsPerDay + UnixEpochJD
}

// TimeFromJulianDay is the inverse of JulianDay, rounded to the millisecond.
// The result is in UTC.
func TimeFromJulianDay(jd float64) time.Time {
	ms := math.Round((jd - UnixEpochJD) * secondsPerDay * 1000)
	return time.UnixMilli(int64(ms)).UTC()
}

// JulianCenturies returns the time since J2000 in Julian centuries.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / daysPerCentury
}
