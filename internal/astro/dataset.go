package astro

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/meeus.yaml
var embeddedDataset []byte

// Polynomial holds coefficients c0 + c1*T + c2*T^2 + ... in Julian centuries.
type Polynomial []float64

// At evaluates the polynomial at t using Horner's scheme.
func (p Polynomial) At(t float64) float64 {
	var v float64
	for i := len(p) - 1; i >= 0; i-- {
		v = v*t + p[i]
	}
	return v
}

// MoonTerm is one periodic term of the lunar longitude:
// Coefficient * sin(D*elongation + M*sunAnomaly + MPrime*moonAnomaly + F*latitudeArgument).
type MoonTerm struct {
	D           int     `yaml:"d" json:"d"`
	M           int     `yaml:"m" json:"m"`
	MPrime      int     `yaml:"mp" json:"mp"`
	F           int     `yaml:"f" json:"f"`
	Coefficient float64 `yaml:"coefficient" json:"coefficient"`
}

// SunSeries describes the solar longitude: mean longitude plus the
// equation of center, where Center[k] multiplies sin((k+1)*M).
type SunSeries struct {
	MeanLongitude Polynomial   `yaml:"mean_longitude" json:"mean_longitude"`
	MeanAnomaly   Polynomial   `yaml:"mean_anomaly" json:"mean_anomaly"`
	Center        []Polynomial `yaml:"center" json:"center"`
}

// MoonSeries describes the lunar longitude: mean longitude plus periodic
// terms over the four fundamental arguments. Terms involving the solar
// anomaly are scaled by Eccentricity (once per unit of |M|).
type MoonSeries struct {
	MeanLongitude    Polynomial `yaml:"mean_longitude" json:"mean_longitude"`
	Elongation       Polynomial `yaml:"elongation" json:"elongation"`
	SunAnomaly       Polynomial `yaml:"sun_anomaly" json:"sun_anomaly"`
	MoonAnomaly      Polynomial `yaml:"moon_anomaly" json:"moon_anomaly"`
	LatitudeArgument Polynomial `yaml:"latitude_argument" json:"latitude_argument"`
	Eccentricity     Polynomial `yaml:"eccentricity" json:"eccentricity"`
	Terms            []MoonTerm `yaml:"terms" json:"terms"`
}

// Dataset is a complete set of series coefficients. ValidFrom and ValidTo
// bound the Gregorian years the series are trusted for.
type Dataset struct {
	Name      string     `yaml:"name" json:"name"`
	ValidFrom int        `yaml:"valid_from" json:"valid_from"`
	ValidTo   int        `yaml:"valid_to" json:"valid_to"`
	Sun       SunSeries  `yaml:"sun" json:"sun"`
	Moon      MoonSeries `yaml:"moon" json:"moon"`
}

// DefaultDataset decodes the dataset embedded in the binary.
func DefaultDataset() (*Dataset, error) {
	return DecodeDataset(embeddedDataset)
}

// LoadDataset reads and validates a dataset. An empty path selects the
// embedded default. Files ending in .db, .sqlite or .sqlite3 are read as
// SQLite; anything else is parsed as YAML.
func LoadDataset(path string) (*Dataset, error) {
	if path == "" {
		return DefaultDataset()
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("dataset not found: %s", path)
		}
		return nil, fmt.Errorf("accessing dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		ds, err := ReadSQLiteDataset(path)
		if err != nil {
			return nil, err
		}
		if err := ValidateDataset(ds); err != nil {
			return nil, err
		}
		return ds, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset file: %w", err)
		}
		return DecodeDataset(data)
	}
}

// DecodeDataset parses YAML with strict field checking and validates the
// result against the dataset schema.
func DecodeDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset YAML: %w", err)
	}

	if err := ValidateDataset(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}
