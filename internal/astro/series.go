package astro

import "math"

// SunLongitude evaluates the geometric (tropical) longitude of the Sun in
// degrees at the given Julian Day.
func (ds *Dataset) SunLongitude(jd float64) float64 {
	t := JulianCenturies(jd)
	m := radians(ds.Sun.MeanAnomaly.At(t))

	lon := ds.Sun.MeanLongitude.At(t)
	for k, c := range ds.Sun.Center {
		lon += c.At(t) * math.Sin(float64(k+1)*m)
	}
	return NormalizeDegrees(lon)
}

// MoonLongitude evaluates the geocentric (tropical) longitude of the Moon in
// degrees at the given Julian Day.
func (ds *Dataset) MoonLongitude(jd float64) float64 {
	t := JulianCenturies(jd)
	s := &ds.Moon

	d := radians(s.Elongation.At(t))
	m := radians(s.SunAnomaly.At(t))
	mp := radians(s.MoonAnomaly.At(t))
	f := radians(s.LatitudeArgument.At(t))
	e := s.Eccentricity.At(t)

	var sum float64
	for _, term := range s.Terms {
		arg := float64(term.D)*d + float64(term.M)*m + float64(term.MPrime)*mp + float64(term.F)*f
		v := term.Coefficient * math.Sin(arg)
		switch term.M {
		case 1, -1:
			v *= e
		case 2, -2:
			v *= e * e
		}
		sum += v
	}
	return NormalizeDegrees(s.MeanLongitude.At(t) + sum)
}
