package panchang

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEraYear(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		month Month
		want  int
	}{
		{"chingam in august", Date(2024, 8, 17), Chingam, 1200},
		{"karkidakam in august", Date(2024, 8, 16), Karkidakam, 1199},
		{"dhanu in december", Date(2024, 12, 20), Dhanu, 1200},
		{"dhanu in january", Date(2025, 1, 5), Dhanu, 1200},
		{"makaram in january", Date(2025, 1, 20), Makaram, 1200},
		{"medam in april", Date(2025, 4, 14), Medam, 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EraYear(tt.date, tt.month))
		})
	}
}

func TestToMalayalam_KnownDates(t *testing.T) {
	e := newUncachedEngine()

	tests := []struct {
		date time.Time
		want MalayalamDate
	}{
		{Date(2024, 8, 17), MalayalamDate{1200, Chingam, 1}},
		{Date(2024, 8, 16), MalayalamDate{1199, Karkidakam, 32}},
		{Date(2025, 1, 5), MalayalamDate{1200, Dhanu, 21}},
		{Date(2025, 4, 14), MalayalamDate{1200, Medam, 1}},
		{Date(2025, 8, 17), MalayalamDate{1201, Chingam, 1}},
		{Date(2024, 1, 17), MalayalamDate{1199, Makaram, 3}},
		{Date(2000, 1, 1), MalayalamDate{1175, Dhanu, 17}},
		{Date(1900, 1, 1), MalayalamDate{1075, Dhanu, 18}},
		{Date(2050, 12, 31), MalayalamDate{1226, Dhanu, 15}},
	}
	for _, tt := range tests {
		t.Run(tt.date.Format(time.DateOnly), func(t *testing.T) {
			got, err := e.ToMalayalam(tt.date, DefaultCoordinates)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMalayalamDate_String(t *testing.T) {
	d := MalayalamDate{Year: 1200, Month: Chingam, Day: 1}
	assert.Equal(t, "1 ചിങ്ങം 1200", d.String())
	assert.Equal(t, "1 Chingam 1200", d.EnglishString())
}

func TestToMalayalam_DayCountsUp(t *testing.T) {
	e := newUncachedEngine()

	prev, err := e.ToMalayalam(Date(2024, 8, 1), DefaultCoordinates)
	require.NoError(t, err)
	for d := Date(2024, 8, 2); d.Before(Date(2025, 8, 31)); d = d.AddDate(0, 0, 1) {
		got, err := e.ToMalayalam(d, DefaultCoordinates)
		require.NoError(t, err)

		if got.Month == prev.Month {
			assert.Equal(t, prev.Day+1, got.Day, "%s", d.Format(time.DateOnly))
		} else {
			assert.Equal(t, 1, got.Day, "%s", d.Format(time.DateOnly))
			assert.Equal(t, (prev.Month+1)%MonthCount, got.Month, "%s", d.Format(time.DateOnly))
		}
		assert.GreaterOrEqual(t, got.Year, prev.Year)
		assert.LessOrEqual(t, got.Day, MaxMonthDay)
		prev = got
	}
}

func TestToGregorian_Chingam1(t *testing.T) {
	e := newUncachedEngine()

	got, err := e.ToGregorian(1200, Chingam, 1, DefaultCoordinates)
	require.NoError(t, err)
	assert.True(t, Date(2024, 8, 17).Equal(got), "got %s", got.Format(time.DateOnly))
}

func TestToGregorian_RoundTrip(t *testing.T) {
	e := New(nil)

	for d := Date(2024, 1, 1); d.Before(Date(2026, 1, 1)); d = d.AddDate(0, 0, 1) {
		mal, err := e.ToMalayalam(d, DefaultCoordinates)
		require.NoError(t, err)

		back, err := e.ToGregorian(mal.Year, mal.Month, mal.Day, DefaultCoordinates)
		require.NoError(t, err, "%s -> %s", d.Format(time.DateOnly), mal.EnglishString())
		assert.True(t, d.Equal(back), "%s -> %s -> %s",
			d.Format(time.DateOnly), mal.EnglishString(), back.Format(time.DateOnly))
	}
}

func TestToGregorian_RoundTripAcrossRange(t *testing.T) {
	if testing.Short() {
		t.Skip("samples 1900-2050")
	}
	e := newUncachedEngine()

	for d := Date(1900, 1, 1); d.Year() <= 2050; d = d.AddDate(0, 0, 97) {
		mal, err := e.ToMalayalam(d, DefaultCoordinates)
		require.NoError(t, err)

		back, err := e.ToGregorian(mal.Year, mal.Month, mal.Day, DefaultCoordinates)
		require.NoError(t, err, "%s -> %s", d.Format(time.DateOnly), mal.EnglishString())
		assert.True(t, d.Equal(back), "%s -> %s", d.Format(time.DateOnly), back.Format(time.DateOnly))
	}
}

func TestToGregorian_NotFound(t *testing.T) {
	e := newUncachedEngine()

	// Dhanu 1200 has 29 days.
	_, err := e.ToGregorian(1200, Dhanu, 30, DefaultCoordinates)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestToGregorian_InvalidInput(t *testing.T) {
	e := newUncachedEngine()

	tests := []struct {
		name  string
		month Month
		day   int
	}{
		{"day zero", Chingam, 0},
		{"day too large", Chingam, 33},
		{"month out of range", Month(12), 1},
		{"negative month", Month(-1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.ToGregorian(1200, tt.month, tt.day, DefaultCoordinates)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
