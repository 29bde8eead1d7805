package panchang

import "time"

const (
	// ReferenceMeridian is the longitude of IST, 82.5°E.
	ReferenceMeridian = 82.5

	// MaxLocalShift clamps the longitude correction of sunrise and noon.
	MaxLocalShift = 60 * time.Minute

	minutesPerDegree = 4
)

// LocalShift is the correction from IST clock time to local solar time at
// the given longitude: four minutes per degree west of the reference
// meridian, clamped to ±MaxLocalShift.
func LocalShift(longitude float64) time.Duration {
	shift := time.Duration((ReferenceMeridian - longitude) * minutesPerDegree * float64(time.Minute))
	return max(-MaxLocalShift, min(MaxLocalShift, shift))
}

// Sunrise returns the approximate local sunrise of date: 06:00 IST plus the
// longitude shift.
func Sunrise(date time.Time, c Coordinates) time.Time {
	d := civil(date)
	return d.Add(6*time.Hour + LocalShift(c.Longitude))
}

// LocalNoon returns 12:00 IST plus the longitude shift.
func LocalNoon(date time.Time, c Coordinates) time.Time {
	d := civil(date)
	return d.Add(12*time.Hour + LocalShift(c.Longitude))
}
