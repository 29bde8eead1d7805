package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "latitude",
			envKey: "PANCHANGAM_LATITUDE",
			envVal: "8.5241",
			field:  func(c Config) any { return c.Latitude },
			want:   8.5241,
		},
		{
			name:   "longitude",
			envKey: "PANCHANGAM_LONGITUDE",
			envVal: "76.9366",
			field:  func(c Config) any { return c.Longitude },
			want:   76.9366,
		},
		{
			name:   "dataset_path",
			envKey: "PANCHANGAM_DATASET_PATH",
			envVal: "/opt/ephemeris.db",
			field:  func(c Config) any { return c.DatasetPath },
			want:   "/opt/ephemeris.db",
		},
		{
			name:   "cache_size",
			envKey: "PANCHANGAM_CACHE_SIZE",
			envVal: "64",
			field:  func(c Config) any { return c.CacheSize },
			want:   64,
		},
		{
			name:   "scan.skip_days",
			envKey: "PANCHANGAM_SCAN_SKIP_DAYS",
			envVal: "20",
			field:  func(c Config) any { return c.Scan.SkipDays },
			want:   20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv(tt.envKey, tt.envVal)
			BindEnv()

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), ".panchangam.yaml")
	content := "latitude: 9.9312\nlongitude: 76.2673\nscan:\n  default_days: 300\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, Init(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9.9312, cfg.Latitude)
	assert.Equal(t, 76.2673, cfg.Longitude)
	assert.Equal(t, 300, cfg.Scan.DefaultDays)
	assert.Equal(t, DefaultSkipDays, cfg.Scan.SkipDays)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	resetViper(t)
	viper.Set("latitude", 95.0)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"southern hemisphere", func(c *Config) { c.Latitude = -33.9 }, ""},
		{"latitude", func(c *Config) { c.Latitude = -91 }, "latitude"},
		{"longitude", func(c *Config) { c.Longitude = 181 }, "longitude"},
		{"cache size", func(c *Config) { c.CacheSize = -1 }, "cache_size"},
		{"zero cache disables", func(c *Config) { c.CacheSize = 0 }, ""},
		{"scan days", func(c *Config) { c.Scan.DefaultDays = 0 }, "scan.default_days"},
		{"skip days", func(c *Config) { c.Scan.SkipDays = 28 }, "scan.skip_days"},
		{"days per month", func(c *Config) { c.Scan.DaysPerMonth = 20 }, "scan.days_per_month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Latitude = 100
	cfg.Longitude = -200

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
	assert.Contains(t, err.Error(), "longitude")
}

func TestInit_MissingExplicitFile(t *testing.T) {
	resetViper(t)

	err := Init(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInit_NoDefaultFile(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	assert.NoError(t, Init(""))
}
