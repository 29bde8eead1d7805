package panchang

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/roach88/panchangam/internal/astro"
)

// NakshatraSpan is the width of one nakshatra, 13°20'.
const NakshatraSpan = 360.0 / NakshatraCount

// nakshatraAt maps a sidereal longitude to its sector, clamped for
// floating-point edge cases.
func nakshatraAt(sidereal float64) Nakshatra {
	i := int(math.Floor(sidereal / NakshatraSpan))
	return Nakshatra(max(0, min(NakshatraCount-1, i)))
}

// NakshatraOfDay returns the star of the day: the nakshatra of the Moon at
// local sunrise.
func (e *Engine) NakshatraOfDay(date time.Time, c Coordinates) (Nakshatra, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return memoize(e, "nakshatra", date, c, "", func() (Nakshatra, error) {
		return e.nakshatraOfDay(date, c)
	})
}

func (e *Engine) nakshatraOfDay(date time.Time, c Coordinates) (Nakshatra, error) {
	lon, err := e.sidereal(astro.Moon, Sunrise(date, c))
	if err != nil {
		return 0, err
	}
	return nakshatraAt(lon), nil
}

// NextOptions bounds a NextOccurrences search. With Months > 0 the scan
// covers Months*DaysPerMonth days and returns every occurrence; otherwise
// it covers ScanDays and stops after Count occurrences.
type NextOptions struct {
	Count  int
	Months int
}

// Occurrence is a day whose star matched.
type Occurrence struct {
	Date      time.Time     `json:"date"`
	Star      Nakshatra     `json:"star"`
	Malayalam MalayalamDate `json:"malayalam"`
}

// NextOccurrences lists the days from start onward whose star of the day is
// target. After each match SkipDays are skipped, which also drops the
// second of two consecutive days with the same star.
func (e *Engine) NextOccurrences(target Nakshatra, start time.Time, c Coordinates, opts NextOptions) ([]Occurrence, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: index %d", ErrInvalidNakshatra, int(target))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if opts.Count < 0 || opts.Months < 0 {
		return nil, fmt.Errorf("%w: negative count or months", ErrInvalidInput)
	}

	extra := strconv.Itoa(int(target)) + "/" + strconv.Itoa(opts.Count) + "/" + strconv.Itoa(opts.Months)
	found, err := memoize(e, "next", start, c, extra, func() ([]Occurrence, error) {
		return e.nextOccurrences(target, civil(start), c, opts)
	})
	// the cached slice is shared
	return slices.Clone(found), err
}

func (e *Engine) nextOccurrences(target Nakshatra, start time.Time, c Coordinates, opts NextOptions) ([]Occurrence, error) {
	days := e.limits.ScanDays
	limit := opts.Count
	if limit == 0 {
		limit = e.limits.DefaultCount
	}
	if opts.Months > 0 {
		days = opts.Months * e.limits.DaysPerMonth
		limit = 0
	}

	var found []Occurrence
	for offset := 0; offset < days; {
		day := start.AddDate(0, 0, offset)
		star, err := e.nakshatraOfDay(day, c)
		if err != nil {
			return nil, err
		}
		if star != target {
			offset++
			continue
		}

		mal, err := e.toMalayalam(day, c)
		if err != nil {
			return nil, err
		}
		found = append(found, Occurrence{Date: day, Star: star, Malayalam: mal})
		if limit > 0 && len(found) >= limit {
			break
		}
		offset += e.limits.SkipDays
	}

	e.logger.Debug("next occurrences",
		"star", target.String(),
		"start", start.Format(time.DateOnly),
		"window_days", days,
		"found", len(found))
	return found, nil
}
