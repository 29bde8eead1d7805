// Package panchang implements the Malayalam almanac calculations: the
// nakshatra (lunar mansion) of a day, the Kollam era solar date, the reverse
// mapping to Gregorian dates, and the timeline of nakshatra transitions
// within a day.
//
// CONVENTIONS:
//
// Dates are civil dates in Indian Standard Time (UTC+5:30). Only the year,
// month and day of a time.Time argument are used.
//
// Star of the day: the nakshatra occupied by the Moon at local sunrise,
// approximated as 06:00 IST shifted by four minutes per degree of longitude
// west of the 82.5°E reference meridian, clamped to ±60 minutes. No sunrise
// equation is solved; boundary days depend on this approximation.
//
// Solar month: the 30° sidereal sector occupied by the Sun at local noon
// (12:00 IST with the same shift). The day of the month counts back to the
// last day the Sun was in the previous sector at local noon.
//
// BOUNDED SEARCHES:
//
// Every scan has an explicit cap (see Limits). The caps come from the
// length of a solar month (at most 32 days) and the sidereal lunar period
// (about 27.3 days); they are pragmatic bounds, not derived guarantees.
//
// Thread-safety: an Engine is safe for concurrent use. Name tables are
// immutable; the ephemeris and the cache synchronize internally.
package panchang
