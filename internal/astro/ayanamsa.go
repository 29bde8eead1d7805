package astro

// Linear Lahiri model anchored at J2000. The drift of 1.396°/century is
// 50.26"/year of precession.
const (
	AyanamsaJ2000      = 23.857
	AyanamsaPerCentury = 1.396
)

// Ayanamsa returns the sidereal offset in degrees for the given Julian Day.
func Ayanamsa(jd float64) float64 {
	return AyanamsaJ2000 + AyanamsaPerCentury*JulianCenturies(jd)
}

// Sidereal converts a tropical longitude at jd to a sidereal longitude.
func Sidereal(tropical, jd float64) float64 {
	return NormalizeDegrees(tropical - Ayanamsa(jd))
}
