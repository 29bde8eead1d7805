package panchang

import (
	"errors"

	"github.com/roach88/panchangam/internal/astro"
)

// Error taxonomy. Operations wrap these with fmt.Errorf("%w"), so callers
// match with errors.Is.
var (
	// ErrEphemerisUnavailable means the ephemeris dataset could not be
	// loaded. It is fatal for every position-dependent operation.
	ErrEphemerisUnavailable = astro.ErrEphemerisUnavailable

	// ErrInvalidNakshatra means a star name or index was not recognized.
	ErrInvalidNakshatra = errors.New("invalid nakshatra")

	// ErrInvalidInput covers malformed dates, months, days and coordinates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means a bounded reverse search found no matching date.
	ErrNotFound = errors.New("no matching date")

	// ErrInternal is an unexpected numeric condition (NaN, missing
	// transition, recovered panic).
	ErrInternal = errors.New("internal computation error")
)

// Code is a stable identifier for an error class.
type Code string

const (
	CodeOK                   Code = ""
	CodeEphemerisUnavailable Code = "EPHEMERIS_UNAVAILABLE"
	CodeInvalidNakshatra     Code = "INVALID_NAKSHATRA"
	CodeInvalidInput         Code = "INVALID_DATE"
	CodeNotFound             Code = "NOT_FOUND"
	CodeInternal             Code = "INTERNAL"
)

// CodeOf classifies err. Unrecognized errors are CodeInternal.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrEphemerisUnavailable):
		return CodeEphemerisUnavailable
	case errors.Is(err, ErrInvalidNakshatra):
		return CodeInvalidNakshatra
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// IsRecoverable reports whether err is the caller's fault (bad input or an
// exhausted search) rather than an internal failure.
func IsRecoverable(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidNakshatra, CodeInvalidInput, CodeNotFound:
		return true
	default:
		return false
	}
}
