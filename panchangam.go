// Package panchangam is the library surface of the Malayalam almanac engine:
// the star of the day, Kollam era dates in both directions, upcoming
// occurrences of a star and the nakshatra timeline of a day.
//
// Every Service method returns a tagged result and never panics. Caller
// mistakes (bad dates, unknown stars, impossible calendar dates) carry a
// descriptive message. Internal failures carry a generic message and an
// incident id; the details go to the service logger under the same id.
package panchangam

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/panchangam/internal/astro"
	"github.com/roach88/panchangam/internal/config"
	"github.com/roach88/panchangam/internal/memo"
	"github.com/roach88/panchangam/internal/panchang"
)

// Status tags the outcome of a Service call.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
	StatusNotFound Status = "not_found"
)

// InternalErrorMessage is the only text an internal failure exposes.
const InternalErrorMessage = "An internal error has occurred."

// DateLayout is the accepted date format, interpreted in IST.
const DateLayout = time.DateOnly

// Coordinates is a geographic position in decimal degrees, east positive.
type Coordinates = panchang.Coordinates

// IDGenerator creates incident references.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator creates time-sortable UUIDv7 incident references.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Result is the envelope shared by every response.
type Result struct {
	Status   Status `json:"status"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
	Incident string `json:"incident,omitempty"`
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// NakshatraInfo is the star of a day.
type NakshatraInfo struct {
	Date          string `json:"date"`
	Index         int    `json:"index"`
	MalayalamName string `json:"malayalam_name"`
	EnglishName   string `json:"english_name"`
	MalayalamDate string `json:"malayalam_date"`
}

// NakshatraResult is returned by GetNakshatra. NakshatraInfo is nil unless
// the call succeeded.
type NakshatraResult struct {
	Result
	*NakshatraInfo
}

// MalayalamDateInfo is a Kollam era date.
type MalayalamDateInfo struct {
	Date           string `json:"date"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	MonthMalayalam string `json:"month_malayalam"`
	MonthEnglish   string `json:"month_english"`
	Day            int    `json:"day"`
	Formatted      string `json:"formatted"`
}

// MalayalamDateResult is returned by GetMalayalamDate.
type MalayalamDateResult struct {
	Result
	*MalayalamDateInfo
}

// GregorianInfo is the Gregorian date of a Kollam era date.
type GregorianInfo struct {
	Date string `json:"date"`
}

// GregorianResult is returned by GetGregorianDate.
type GregorianResult struct {
	Result
	*GregorianInfo
}

// OccurrenceInfo is one day whose star matched.
type OccurrenceInfo struct {
	Date          string `json:"date"`
	MalayalamDate string `json:"malayalam_date"`
}

// OccurrencesInfo lists upcoming days of a star.
type OccurrencesInfo struct {
	StarIndex int              `json:"star_index"`
	StarName  string           `json:"star_name"`
	Dates     []OccurrenceInfo `json:"dates"`
}

// OccurrencesResult is returned by GetNextOccurrences.
type OccurrencesResult struct {
	Result
	*OccurrencesInfo
}

// SegmentInfo is a stretch of one nakshatra within a day. Start and End are
// RFC 3339 instants in IST; nil means the segment runs past that edge of
// the day.
type SegmentInfo struct {
	Index         int     `json:"index"`
	MalayalamName string  `json:"malayalam_name"`
	EnglishName   string  `json:"english_name"`
	Start         *string `json:"start"`
	End           *string `json:"end"`
}

// TimelineInfo is the nakshatra timeline of a day.
type TimelineInfo struct {
	Date     string        `json:"date"`
	Timeline []SegmentInfo `json:"timeline"`
}

// TimelineResult is returned by GetDayTimeline.
type TimelineResult struct {
	Result
	*TimelineInfo
}

// Service answers almanac queries for a configured default location.
//
// Thread-safety: all methods are safe for concurrent use.
type Service struct {
	engine *panchang.Engine
	eph    astro.Ephemeris
	coords Coordinates
	logger *slog.Logger
	ids    IDGenerator
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEphemeris replaces the dataset-backed ephemeris.
func WithEphemeris(eph astro.Ephemeris) Option {
	return func(s *Service) {
		s.eph = eph
	}
}

// WithLogger sets the logger for incidents and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the UUIDv7 incident references.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithClock sets the source of "today" for an empty start date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service from cfg. The ephemeris dataset is not read until
// the first query; a missing or corrupt dataset surfaces as an
// EPHEMERIS_UNAVAILABLE result on every call.
func New(cfg config.Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		coords: Coordinates{Latitude: cfg.Latitude, Longitude: cfg.Longitude},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:    UUIDv7Generator{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.eph == nil {
		if cfg.DatasetPath == "" {
			s.eph = astro.Default()
		} else {
			s.eph = astro.NewProvider(cfg.DatasetPath)
		}
	}

	var cache *memo.Cache
	if cfg.CacheSize > 0 {
		cache = memo.New(cfg.CacheSize)
	}

	s.engine = panchang.New(s.eph,
		panchang.WithCache(cache),
		panchang.WithLogger(s.logger),
		panchang.WithLimits(panchang.Limits{
			ScanDays:     cfg.Scan.DefaultDays,
			SkipDays:     cfg.Scan.SkipDays,
			DaysPerMonth: cfg.Scan.DaysPerMonth,
		}),
	)
	return s, nil
}

// Coordinates returns the configured default location.
func (s *Service) Coordinates() Coordinates {
	return s.coords
}

// CacheStats reports the result cache counters.
func (s *Service) CacheStats() memo.Stats {
	return s.engine.CacheStats()
}

// GetNakshatra returns the star of the day at date (YYYY-MM-DD). A nil
// coords selects the configured default.
func (s *Service) GetNakshatra(date string, coords *Coordinates) NakshatraResult {
	c := s.resolve(coords)
	info, res := call(s, "get_nakshatra", []any{"date", date, "coords", c}, func() (*NakshatraInfo, error) {
		day, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		star, err := s.engine.NakshatraOfDay(day, c)
		if err != nil {
			return nil, err
		}
		mal, err := s.engine.ToMalayalam(day, c)
		if err != nil {
			return nil, err
		}
		name := star.Name()
		return &NakshatraInfo{
			Date:          day.Format(DateLayout),
			Index:         int(star),
			MalayalamName: name.Malayalam,
			EnglishName:   name.English,
			MalayalamDate: mal.String(),
		}, nil
	})
	return NakshatraResult{Result: res, NakshatraInfo: info}
}

// GetMalayalamDate converts date (YYYY-MM-DD) to the Kollam era calendar.
func (s *Service) GetMalayalamDate(date string, coords *Coordinates) MalayalamDateResult {
	c := s.resolve(coords)
	info, res := call(s, "get_malayalam_date", []any{"date", date, "coords", c}, func() (*MalayalamDateInfo, error) {
		day, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		mal, err := s.engine.ToMalayalam(day, c)
		if err != nil {
			return nil, err
		}
		return malayalamInfo(day, mal), nil
	})
	return MalayalamDateResult{Result: res, MalayalamDateInfo: info}
}

func malayalamInfo(day time.Time, mal panchang.MalayalamDate) *MalayalamDateInfo {
	name := mal.Month.Name()
	return &MalayalamDateInfo{
		Date:           day.Format(DateLayout),
		Year:           mal.Year,
		Month:          int(mal.Month),
		MonthMalayalam: name.Malayalam,
		MonthEnglish:   name.English,
		Day:            mal.Day,
		Formatted:      mal.String(),
	}
}

// GetGregorianDate finds the Gregorian date of day month year in the Kollam
// era. month is an English or Malayalam month name or its index (0 = Medam).
// An impossible date such as day 32 of a 31 day month is StatusNotFound.
func (s *Service) GetGregorianDate(year int, month string, day int) GregorianResult {
	c := s.coords
	info, res := call(s, "get_gregorian_date", []any{"year", year, "month", month, "day", day}, func() (*GregorianInfo, error) {
		m, err := panchang.ParseMonth(month)
		if err != nil {
			return nil, err
		}
		date, err := s.engine.ToGregorian(year, m, day, c)
		if err != nil {
			return nil, err
		}
		return &GregorianInfo{Date: date.Format(DateLayout)}, nil
	})
	return GregorianResult{Result: res, GregorianInfo: info}
}

// GetNextOccurrences lists upcoming days whose star is star (a name or
// index). An empty start means today in IST. With months > 0 the search
// covers that many months and returns every match; otherwise it returns
// at most count matches (0 selects the default).
func (s *Service) GetNextOccurrences(star, start string, coords *Coordinates, count, months int) OccurrencesResult {
	c := s.resolve(coords)
	attrs := []any{"star", star, "start", start, "coords", c, "count", count, "months", months}
	info, res := call(s, "get_next_occurrences", attrs, func() (*OccurrencesInfo, error) {
		target, err := panchang.ParseNakshatra(star)
		if err != nil {
			return nil, err
		}
		from, err := s.startDate(start)
		if err != nil {
			return nil, err
		}
		found, err := s.engine.NextOccurrences(target, from, c, panchang.NextOptions{Count: count, Months: months})
		if err != nil {
			return nil, err
		}

		info := &OccurrencesInfo{
			StarIndex: int(target),
			StarName:  target.Name().English,
			Dates:     make([]OccurrenceInfo, 0, len(found)),
		}
		for _, occ := range found {
			info.Dates = append(info.Dates, OccurrenceInfo{
				Date:          occ.Date.Format(DateLayout),
				MalayalamDate: occ.Malayalam.String(),
			})
		}
		return info, nil
	})
	return OccurrencesResult{Result: res, OccurrencesInfo: info}
}

// GetDayTimeline returns the nakshatra segments covering date (YYYY-MM-DD).
func (s *Service) GetDayTimeline(date string, coords *Coordinates) TimelineResult {
	c := s.resolve(coords)
	info, res := call(s, "get_day_timeline", []any{"date", date, "coords", c}, func() (*TimelineInfo, error) {
		day, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		segs, err := s.engine.Timeline(day, c)
		if err != nil {
			return nil, err
		}

		info := &TimelineInfo{Date: day.Format(DateLayout), Timeline: make([]SegmentInfo, 0, len(segs))}
		for _, seg := range segs {
			name := seg.Star.Name()
			info.Timeline = append(info.Timeline, SegmentInfo{
				Index:         int(seg.Star),
				MalayalamName: name.Malayalam,
				EnglishName:   name.English,
				Start:         formatInstant(seg.Start),
				End:           formatInstant(seg.End),
			})
		}
		return info, nil
	})
	return TimelineResult{Result: res, TimelineInfo: info}
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(panchang.IST).Format(time.RFC3339)
	return &s
}

func (s *Service) resolve(coords *Coordinates) Coordinates {
	if coords == nil {
		return s.coords
	}
	return *coords
}

func (s *Service) startDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		now := s.now().In(panchang.IST)
		return panchang.Date(now.Year(), now.Month(), now.Day()), nil
	}
	return parseDate(value)
}

// parseDate reads a YYYY-MM-DD date as midnight IST.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", panchang.ErrInvalidInput)
	}
	t, err := time.ParseInLocation(DateLayout, value, panchang.IST)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", panchang.ErrInvalidInput, value)
	}
	return t, nil
}

// call runs fn and turns its error, or a panic, into a tagged Result.
func call[T any](s *Service, op string, attrs []any, fn func() (T, error)) (v T, res Result) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v = zero
			res = s.fail(op, fmt.Errorf("%w: panic: %v", panchang.ErrInternal, r), attrs)
		}
	}()

	v, err := fn()
	if err != nil {
		var zero T
		return zero, s.fail(op, err, attrs)
	}
	return v, Result{Status: StatusSuccess}
}

// fail classifies err. Recoverable errors keep their message; everything
// else is logged under a fresh incident id and reported generically.
func (s *Service) fail(op string, err error, attrs []any) Result {
	code := panchang.CodeOf(err)
	if panchang.IsRecoverable(err) {
		status := StatusError
		if code == panchang.CodeNotFound {
			status = StatusNotFound
		}
		s.logger.Debug("request rejected", append([]any{"op", op, "code", code, "error", err}, attrs...)...)
		return Result{Status: status, Code: string(code), Message: err.Error()}
	}

	incident := s.ids.Generate()
	s.logger.Error("request failed",
		append([]any{"op", op, "incident", incident, "code", code, "error", err}, attrs...)...)
	return Result{
		Status:   StatusError,
		Code:     string(code),
		Message:  InternalErrorMessage,
		Incident: incident,
	}
}
