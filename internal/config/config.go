package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PANCHANGAM_SCAN_SKIP_DAYS.
const EnvPrefix = "PANCHANGAM"

// ScanConfig holds the caps of the day-by-day searches.
type ScanConfig struct {
	DefaultDays  int `mapstructure:"default_days"`
	SkipDays     int `mapstructure:"skip_days"`
	DaysPerMonth int `mapstructure:"days_per_month"`
}

// Config holds all runtime configuration for the almanac engine.
// Values are populated from .panchangam.yaml, PANCHANGAM_* env vars, and CLI flags.
type Config struct {
	Latitude    float64    `mapstructure:"latitude"`
	Longitude   float64    `mapstructure:"longitude"`
	DatasetPath string     `mapstructure:"dataset_path"`
	CacheSize   int        `mapstructure:"cache_size"`
	Verbose     bool       `mapstructure:"verbose"`
	Scan        ScanConfig `mapstructure:"scan"`
}

// Built-in defaults. The coordinates are Thrissur, Kerala.
const (
	DefaultLatitude     = 10.5276
	DefaultLongitude    = 76.2144
	DefaultCacheSize    = 512
	DefaultScanDays     = 150
	DefaultSkipDays     = 25
	DefaultDaysPerMonth = 32
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Latitude:  DefaultLatitude,
		Longitude: DefaultLongitude,
		CacheSize: DefaultCacheSize,
		Scan: ScanConfig{
			DefaultDays:  DefaultScanDays,
			SkipDays:     DefaultSkipDays,
			DaysPerMonth: DefaultDaysPerMonth,
		},
	}
}

// Init points viper at cfgFile, or at .panchangam.yaml in the working or
// home directory, and enables environment overrides. A missing default
// config file is fine; an explicit one must be readable.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".panchangam")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	BindEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// BindEnv enables PANCHANGAM_* overrides. Nested keys use underscores.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. The result is
// validated.
func Load() (Config, error) {
	viper.SetDefault("latitude", DefaultLatitude)
	viper.SetDefault("longitude", DefaultLongitude)
	viper.SetDefault("dataset_path", "")
	viper.SetDefault("cache_size", DefaultCacheSize)
	viper.SetDefault("verbose", false)
	viper.SetDefault("scan.default_days", DefaultScanDays)
	viper.SetDefault("scan.skip_days", DefaultSkipDays)
	viper.SetDefault("scan.days_per_month", DefaultDaysPerMonth)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects out-of-range values. All problems are reported together.
func (c Config) Validate() error {
	var errs []error
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		errs = append(errs, fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude))
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		errs = append(errs, fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize))
	}
	if c.Scan.DefaultDays < 1 {
		errs = append(errs, fmt.Errorf("scan.default_days must be positive, got %d", c.Scan.DefaultDays))
	}
	// skipping a full sidereal month would miss occurrences
	if c.Scan.SkipDays < 1 || c.Scan.SkipDays > 27 {
		errs = append(errs, fmt.Errorf("scan.skip_days must be within [1, 27], got %d", c.Scan.SkipDays))
	}
	if c.Scan.DaysPerMonth < 28 {
		errs = append(errs, fmt.Errorf("scan.days_per_month must be at least 28, got %d", c.Scan.DaysPerMonth))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
