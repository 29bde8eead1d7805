package panchang

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/roach88/panchangam/internal/astro"
	"github.com/roach88/panchangam/internal/memo"
)

// IST is Indian Standard Time, the civil time zone of every date here.
var IST = time.FixedZone("IST", 5*3600+30*60)

// Coordinates is a geographic position in decimal degrees, east positive.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultCoordinates (Thrissur, Kerala) is the fallback when the host
// configuration has none.
var DefaultCoordinates = Coordinates{Latitude: 10.5276, Longitude: 76.2144}

// Validate rejects coordinates outside the valid ranges.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidInput, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidInput, c.Longitude)
	}
	return nil
}

func (c Coordinates) key() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// Date returns midnight IST of the given civil date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, IST)
}

// civil drops the time of day, keeping t's own calendar date.
func civil(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Limits are the iteration caps of the bounded searches.
type Limits struct {
	// ScanDays is the NextOccurrences window when no month count is given.
	ScanDays int
	// SkipDays is skipped after each occurrence; shorter than the 27.3 day
	// sidereal month so the next occurrence is never overshot.
	SkipDays int
	// DaysPerMonth converts a month count into a scan window.
	DaysPerMonth int
	// DefaultCount is the number of occurrences returned when none is asked.
	DefaultCount int
	// MonthWalkDays bounds the backward walk to the last month transition.
	MonthWalkDays int
	// SeedBackoffDays is subtracted from the estimated Gregorian date.
	SeedBackoffDays int
	// GregorianScanDays bounds the forward scan of ToGregorian.
	GregorianScanDays int
}

// DefaultLimits returns the standard caps.
func DefaultLimits() Limits {
	return Limits{
		ScanDays:          150,
		SkipDays:          25,
		DaysPerMonth:      32,
		DefaultCount:      5,
		MonthWalkDays:     35,
		SeedBackoffDays:   5,
		GregorianScanDays: 15,
	}
}

// Engine evaluates almanac quantities against an ephemeris.
type Engine struct {
	eph    astro.Ephemeris
	cache  *memo.Cache
	limits Limits
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache replaces the result cache. Pass nil to disable memoization.
func WithCache(c *memo.Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLimits overrides the search caps. Zero fields keep their defaults.
func WithLimits(l Limits) Option {
	return func(e *Engine) {
		d := &e.limits
		setIfPositive(&d.ScanDays, l.ScanDays)
		setIfPositive(&d.SkipDays, l.SkipDays)
		setIfPositive(&d.DaysPerMonth, l.DaysPerMonth)
		setIfPositive(&d.DefaultCount, l.DefaultCount)
		setIfPositive(&d.MonthWalkDays, l.MonthWalkDays)
		setIfPositive(&d.SeedBackoffDays, l.SeedBackoffDays)
		setIfPositive(&d.GregorianScanDays, l.GregorianScanDays)
	}
}

// WithLogger sets the logger for debug diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func setIfPositive(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// New creates an Engine over eph. A nil eph selects astro.Default().
func New(eph astro.Ephemeris, opts ...Option) *Engine {
	if eph == nil {
		eph = astro.Default()
	}
	e := &Engine{
		eph:    eph,
		cache:  memo.New(memo.DefaultCapacity),
		limits: DefaultLimits(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Limits returns the effective search caps.
func (e *Engine) Limits() Limits {
	return e.limits
}

// CacheStats reports the result cache counters; zero when disabled.
func (e *Engine) CacheStats() memo.Stats {
	if e.cache == nil {
		return memo.Stats{}
	}
	return e.cache.Stats()
}

// memoize runs fn through the cache under a key built from the operation,
// date, coordinates and any extra arguments.
func memoize[V any](e *Engine, op string, date time.Time, c Coordinates, extra string, fn func() (V, error)) (V, error) {
	if e.cache == nil {
		return fn()
	}
	key := op + "|" + date.Format(time.DateOnly) + "|" + c.key() + "|" + extra
	return memo.Typed(e.cache, key, fn)
}

// sidereal returns the sidereal longitude of body at t.
func (e *Engine) sidereal(body astro.Body, t time.Time) (float64, error) {
	jd := astro.JulianDay(t)
	lon, err := e.eph.Longitude(body, jd)
	if err != nil {
		if errors.Is(err, astro.ErrEphemerisUnavailable) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, fmt.Errorf("%w: non-finite %v longitude at %s", ErrInternal, body, t.Format(time.RFC3339))
	}
	return astro.Sidereal(lon, jd), nil
}
