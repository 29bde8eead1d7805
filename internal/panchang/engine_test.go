package panchang

import (
	"testing"

	"github.com/roach88/panchangam/internal/astro"
	"github.com/roach88/panchangam/internal/memo"
	"github.com/roach88/panchangam/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// newUncachedEngine evaluates every call against the embedded dataset.
func newUncachedEngine() *Engine {
	return New(astro.Default(), WithCache(nil))
}

func TestNew_Defaults(t *testing.T) {
	e := New(nil)
	assert.Equal(t, DefaultLimits(), e.Limits())
	assert.Equal(t, memo.DefaultCapacity, e.CacheStats().Capacity)
}

func TestWithLimits_KeepsDefaultsForZeroFields(t *testing.T) {
	e := New(nil, WithLimits(Limits{ScanDays: 400, SkipDays: 20}))

	l := e.Limits()
	assert.Equal(t, 400, l.ScanDays)
	assert.Equal(t, 20, l.SkipDays)
	assert.Equal(t, DefaultLimits().MonthWalkDays, l.MonthWalkDays)
	assert.Equal(t, DefaultLimits().GregorianScanDays, l.GregorianScanDays)
}

func TestCacheTransparency_AllOperations(t *testing.T) {
	eph := testutil.NewCountingEphemeris(nil)
	e := New(eph, WithCache(memo.New(64)))
	date := Date(2024, 8, 17)
	c := DefaultCoordinates

	calls := []func() (any, error){
		func() (any, error) { return e.NakshatraOfDay(date, c) },
		func() (any, error) { return e.ToMalayalam(date, c) },
		func() (any, error) { return e.ToGregorian(1200, Chingam, 1, c) },
		func() (any, error) { return e.Timeline(date, c) },
		func() (any, error) { return e.Transitions(date, c) },
		func() (any, error) { return e.NextOccurrences(Revathi, date, c, NextOptions{Count: 2}) },
	}

	for i, call := range calls {
		first, err := call()
		assert.NoError(t, err, "call %d", i)
		before := eph.Calls()

		second, err := call()
		assert.NoError(t, err, "call %d", i)
		assert.Equal(t, first, second, "call %d", i)
		assert.Equal(t, before, eph.Calls(), "call %d re-invoked the ephemeris", i)
	}
}

func TestNoCache_AlwaysEvaluates(t *testing.T) {
	eph := testutil.NewCountingEphemeris(nil)
	e := New(eph, WithCache(nil))

	_, err := e.NakshatraOfDay(Date(2024, 8, 17), DefaultCoordinates)
	assert.NoError(t, err)
	_, err = e.NakshatraOfDay(Date(2024, 8, 17), DefaultCoordinates)
	assert.NoError(t, err)

	assert.Equal(t, int64(2), eph.Calls())
	assert.Equal(t, memo.Stats{}, e.CacheStats())
}
