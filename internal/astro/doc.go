// Package astro computes geocentric ecliptic longitudes of the Sun and Moon.
//
// Positions are evaluated from a coefficient dataset for the closed-form
// series of Meeus' Astronomical Algorithms: the equation of center for the
// Sun and the largest periodic terms of the lunar theory for the Moon. The
// truncated series stay within roughly 0.02° of the full theory between
// 1900 and 2050, which is far below the 13°20' width of a nakshatra.
//
// DATASET LIFECYCLE:
//
// A Provider loads its dataset exactly once, on first use. The embedded
// default dataset is used when no path is configured; otherwise the file is
// read as YAML or SQLite depending on its extension, and validated against
// a CUE schema. A failed load is remembered and reported on every later
// call as ErrEphemerisUnavailable; it is never retried.
//
// Default returns the process-wide provider for the embedded dataset.
//
// Time scale: Julian Days here are UT based. The ~70 s difference to
// dynamical time moves the Moon by less than 0.01°.
package astro
