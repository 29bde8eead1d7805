package astro

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// ErrEphemerisUnavailable is returned for every position request once the
// dataset failed to load.
var ErrEphemerisUnavailable = errors.New("ephemeris unavailable")

// Body selects the Sun or the Moon.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return fmt.Sprintf("body(%d)", int(b))
	}
}

// Ephemeris returns geocentric tropical ecliptic longitudes in [0, 360).
type Ephemeris interface {
	Longitude(body Body, jd float64) (float64, error)
}

// Provider is an Ephemeris backed by a Dataset that is loaded on first use.
//
// Thread-safety: all methods are safe for concurrent use. The dataset is
// loaded exactly once and never mutated afterwards.
type Provider struct {
	path string

	once sync.Once
	ds   *Dataset
	err  error
}

// NewProvider creates a provider for the dataset at path. An empty path
// selects the embedded dataset. Nothing is read until the first call.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// NewProviderFromDataset creates a provider around an already loaded dataset.
func NewProviderFromDataset(ds *Dataset) *Provider {
	p := &Provider{ds: ds}
	p.once.Do(func() {})
	return p
}

var defaultProvider = sync.OnceValue(func() *Provider {
	return NewProvider("")
})

// Default returns the process-wide provider for the embedded dataset.
func Default() *Provider {
	return defaultProvider()
}

// Load forces the dataset to load and reports the (memoized) outcome.
func (p *Provider) Load() error {
	p.once.Do(func() {
		ds, err := LoadDataset(p.path)
		if err != nil {
			p.err = fmt.Errorf("%w: %w", ErrEphemerisUnavailable, err)
			return
		}
		p.ds = ds
	})
	return p.err
}

// Dataset returns the loaded dataset.
func (p *Provider) Dataset() (*Dataset, error) {
	if err := p.Load(); err != nil {
		return nil, err
	}
	return p.ds, nil
}

// Longitude implements Ephemeris.
func (p *Provider) Longitude(body Body, jd float64) (float64, error) {
	ds, err := p.Dataset()
	if err != nil {
		return 0, err
	}

	var lon float64
	switch body {
	case Sun:
		lon = ds.SunLongitude(jd)
	case Moon:
		lon = ds.MoonLongitude(jd)
	default:
		return 0, fmt.Errorf("unknown body %v", body)
	}

	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, fmt.Errorf("non-finite %v longitude at JD %f", body, jd)
	}
	return lon, nil
}
