package testutil

import (
	"sync/atomic"

	"github.com/roach88/panchangam/internal/astro"
)

// CountingEphemeris wraps an ephemeris and counts position requests.
//
// Used to observe memoization: a cached call must not reach the ephemeris.
//
// Thread-safety: safe for concurrent use if the wrapped ephemeris is.
type CountingEphemeris struct {
	inner astro.Ephemeris
	calls atomic.Int64
}

// NewCountingEphemeris wraps inner. A nil inner wraps astro.Default().
func NewCountingEphemeris(inner astro.Ephemeris) *CountingEphemeris {
	if inner == nil {
		inner = astro.Default()
	}
	return &CountingEphemeris{inner: inner}
}

// Longitude counts the call and delegates.
func (c *CountingEphemeris) Longitude(body astro.Body, jd float64) (float64, error) {
	c.calls.Add(1)
	return c.inner.Longitude(body, jd)
}

// Calls returns the number of requests so far.
func (c *CountingEphemeris) Calls() int64 {
	return c.calls.Load()
}

// Reset sets the counter back to 0.
func (c *CountingEphemeris) Reset() {
	c.calls.Store(0)
}

// FuncEphemeris adapts a function to astro.Ephemeris, for injecting faults
// such as NaN results or panics.
type FuncEphemeris func(body astro.Body, jd float64) (float64, error)

// Longitude calls f.
func (f FuncEphemeris) Longitude(body astro.Body, jd float64) (float64, error) {
	return f(body, jd)
}
