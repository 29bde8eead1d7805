package panchang

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/roach88/panchangam/internal/astro"
)

// Kollam era offsets: the era year starts at Chingam 1 (mid August), so a
// Gregorian year straddles two era years.
const (
	eraOffsetFromChingam   = 824
	eraOffsetBeforeChingam = 825
)

// MaxMonthDay is the longest possible solar month.
const MaxMonthDay = 32

// MalayalamDate is a date of the Kollam era solar calendar. Day counts from
// 1 on the first day the Sun is in Month at local noon.
type MalayalamDate struct {
	Year  int   `json:"year"`
	Month Month `json:"month"`
	Day   int   `json:"day"`
}

// String formats the date as "<day> <Malayalam month> <year>".
func (d MalayalamDate) String() string {
	return fmt.Sprintf("%d %s %d", d.Day, d.Month.Name().Malayalam, d.Year)
}

// EnglishString formats the date with the transliterated month name.
func (d MalayalamDate) EnglishString() string {
	return fmt.Sprintf("%d %s %d", d.Day, d.Month.Name().English, d.Year)
}

// monthAt returns the solar month at local noon of date.
func (e *Engine) monthAt(date time.Time, c Coordinates) (Month, error) {
	lon, err := e.sidereal(astro.Sun, LocalNoon(date, c))
	if err != nil {
		return 0, err
	}
	i := int(math.Floor(lon / 30))
	return Month(max(0, min(MonthCount-1, i))), nil
}

// EraYear returns the Kollam year for a Gregorian date in the given month.
// Chingam through Dhanu belong to the era year that began in August of the
// same Gregorian year, except for the part of Dhanu that falls in January.
func EraYear(date time.Time, month Month) int {
	if month >= Chingam && month <= Dhanu && date.Month() >= time.August {
		return date.Year() - eraOffsetFromChingam
	}
	return date.Year() - eraOffsetBeforeChingam
}

// ToMalayalam converts a Gregorian date to the Malayalam solar calendar.
func (e *Engine) ToMalayalam(date time.Time, c Coordinates) (MalayalamDate, error) {
	if err := c.Validate(); err != nil {
		return MalayalamDate{}, err
	}
	return memoize(e, "malayalam", date, c, "", func() (MalayalamDate, error) {
		return e.toMalayalam(civil(date), c)
	})
}

func (e *Engine) toMalayalam(date time.Time, c Coordinates) (MalayalamDate, error) {
	month, err := e.monthAt(date, c)
	if err != nil {
		return MalayalamDate{}, err
	}

	day := 1
	for back := 1; ; back++ {
		if back > e.limits.MonthWalkDays {
			return MalayalamDate{}, fmt.Errorf("%w: no transition into %v within %d days of %s",
				ErrInternal, month, e.limits.MonthWalkDays, date.Format(time.DateOnly))
		}
		prev, err := e.monthAt(date.AddDate(0, 0, -back), c)
		if err != nil {
			return MalayalamDate{}, err
		}
		if prev != month {
			break
		}
		day++
	}

	return MalayalamDate{Year: EraYear(date, month), Month: month, Day: day}, nil
}

// monthStart is the approximate Gregorian date a solar month begins,
// relative to the Gregorian year in which its era year started.
type monthStart struct {
	yearOffset int
	month      time.Month
	day        int
}

var monthStarts = [MonthCount]monthStart{
	Chingam:    {0, time.August, 17},
	Kanni:      {0, time.September, 17},
	Thulam:     {0, time.October, 17},
	Vrischikam: {0, time.November, 16},
	Dhanu:      {0, time.December, 16},
	Makaram:    {1, time.January, 14},
	Kumbham:    {1, time.February, 13},
	Meenam:     {1, time.March, 14},
	Medam:      {1, time.April, 14},
	Edavam:     {1, time.May, 15},
	Midhunam:   {1, time.June, 15},
	Karkidakam: {1, time.July, 17},
}

// ToGregorian finds the Gregorian date of a Malayalam date. It estimates the
// date from a table of typical month starts, backs off SeedBackoffDays and
// scans forward at most GregorianScanDays days. ErrNotFound means no day in
// the window converts back to exactly (year, month, day), e.g. day 32 of a
// 31 day month.
func (e *Engine) ToGregorian(year int, month Month, day int, c Coordinates) (time.Time, error) {
	if !month.Valid() {
		return time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidInput, int(month))
	}
	if day < 1 || day > MaxMonthDay {
		return time.Time{}, fmt.Errorf("%w: day %d", ErrInvalidInput, day)
	}
	if err := c.Validate(); err != nil {
		return time.Time{}, err
	}

	target := MalayalamDate{Year: year, Month: month, Day: day}
	// keyed by the era year start so distinct targets never collide
	anchor := Date(year+eraOffsetFromChingam, time.August, 1)
	extra := strconv.Itoa(int(month)) + "/" + strconv.Itoa(day)
	return memoize(e, "gregorian", anchor, c, extra, func() (time.Time, error) {
		return e.toGregorian(target, c)
	})
}

func (e *Engine) toGregorian(target MalayalamDate, c Coordinates) (time.Time, error) {
	start := monthStarts[target.Month]
	seed := Date(target.Year+eraOffsetFromChingam+start.yearOffset, start.month, start.day).
		AddDate(0, 0, target.Day-1-e.limits.SeedBackoffDays)

	for i := 0; i < e.limits.GregorianScanDays; i++ {
		candidate := seed.AddDate(0, 0, i)
		got, err := e.toMalayalam(candidate, c)
		if err != nil {
			return time.Time{}, err
		}
		if got == target {
			return candidate, nil
		}
	}

	e.logger.Debug("gregorian search exhausted",
		"target", target.EnglishString(),
		"seed", seed.Format(time.DateOnly),
		"window_days", e.limits.GregorianScanDays)
	return time.Time{}, fmt.Errorf("%w: %s within %d days of %s",
		ErrNotFound, target.EnglishString(), e.limits.GregorianScanDays, seed.Format(time.DateOnly))
}
