package panchang

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/roach88/panchangam/internal/astro"
)

// Timeline sampling resolution.
const (
	CoarseStep = 30 * time.Minute
	FineStep   = time.Minute
)

// Transition is the first minute at which the Moon is in a new nakshatra.
type Transition struct {
	At   time.Time `json:"at"`
	From Nakshatra `json:"from"`
	To   Nakshatra `json:"to"`
}

// Segment is a stretch of one nakshatra within a day. A nil Start means the
// nakshatra was already running at 00:00; a nil End means it continues past
// the end of the day.
type Segment struct {
	Star  Nakshatra  `json:"star"`
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Timeline returns the contiguous nakshatra segments covering the local day.
func (e *Engine) Timeline(date time.Time, c Coordinates) ([]Segment, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	segs, err := memoize(e, "timeline", date, c, "", func() ([]Segment, error) {
		return e.timeline(civil(date), c)
	})
	return slices.Clone(segs), err
}

// Transitions returns every nakshatra change within the local day.
func (e *Engine) Transitions(date time.Time, c Coordinates) ([]Transition, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	day := civil(date)
	trs, err := memoize(e, "transitions", day, c, "", func() (trs []Transition, err error) {
		defer recoverInternal("transitions", &err)
		_, trs, err = e.scanTransitions(day, day.AddDate(0, 0, 1))
		return trs, err
	})
	return slices.Clone(trs), err
}

// recoverInternal converts a panic in the numeric code into ErrInternal.
func recoverInternal(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", ErrInternal, op, r)
	}
}

func (e *Engine) timeline(day time.Time, c Coordinates) (segs []Segment, err error) {
	defer recoverInternal("timeline", &err)

	dayEnd := day.AddDate(0, 0, 1)
	// one day of margin each side so the boundary segments are complete
	winStart := day.AddDate(0, 0, -1)
	winEnd := day.AddDate(0, 0, 2)

	first, transitions, err := e.scanTransitions(winStart, winEnd)
	if err != nil {
		return nil, err
	}

	type span struct {
		star       Nakshatra
		start, end time.Time
	}
	spans := make([]span, 0, len(transitions)+1)
	star, start := first, winStart
	for _, tr := range transitions {
		spans = append(spans, span{star, start, tr.At})
		star, start = tr.To, tr.At
	}
	spans = append(spans, span{star, start, winEnd})

	for _, sp := range spans {
		if !sp.end.After(day) || !sp.start.Before(dayEnd) {
			continue
		}
		seg := Segment{Star: sp.star}
		if !sp.start.Before(day) {
			s := sp.start
			seg.Start = &s
		}
		if sp.end.Before(dayEnd) {
			end := sp.end
			seg.End = &end
		}
		segs = append(segs, seg)
	}

	e.logger.Debug("timeline",
		"date", day.Format(time.DateOnly),
		"transitions", len(transitions),
		"segments", len(segs))
	return segs, nil
}

// position is the real-valued nakshatra position of the Moon at t:
// sidereal longitude in units of NakshatraSpan, in [0, 27).
func (e *Engine) position(t time.Time) (float64, error) {
	lon, err := e.sidereal(astro.Moon, t)
	if err != nil {
		return 0, err
	}
	return lon / NakshatraSpan, nil
}

func (e *Engine) bandAt(t time.Time) (Nakshatra, error) {
	p, err := e.position(t)
	if err != nil {
		return 0, err
	}
	return Nakshatra(int(math.Floor(p)) % NakshatraCount), nil
}

// scanTransitions samples [from, to] every CoarseStep and refines each band
// change to FineStep. It returns the nakshatra at from and the transitions
// in time order.
func (e *Engine) scanTransitions(from, to time.Time) (Nakshatra, []Transition, error) {
	first, err := e.bandAt(from)
	if err != nil {
		return 0, nil, err
	}

	var transitions []Transition
	cur := first
	for t := from; t.Before(to); {
		next := t.Add(CoarseStep)
		if next.After(to) {
			next = to
		}
		band, err := e.bandAt(next)
		if err != nil {
			return 0, nil, err
		}
		if band != cur {
			tr, err := e.refine(t, next, cur)
			if err != nil {
				return 0, nil, err
			}
			transitions = append(transitions, tr)
			cur = band
		}
		t = next
	}
	return first, transitions, nil
}

// refine steps (lo, hi] by FineStep until the band differs from from.
func (e *Engine) refine(lo, hi time.Time, from Nakshatra) (Transition, error) {
	for u := lo.Add(FineStep); !u.After(hi); u = u.Add(FineStep) {
		band, err := e.bandAt(u)
		if err != nil {
			return Transition{}, err
		}
		if band != from {
			return Transition{At: u, From: from, To: band}, nil
		}
	}
	return Transition{}, fmt.Errorf("%w: band change between %s and %s not bracketed",
		ErrInternal, lo.Format(time.RFC3339), hi.Format(time.RFC3339))
}
