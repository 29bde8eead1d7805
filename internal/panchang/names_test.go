package panchang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestNakshatra_Names(t *testing.T) {
	assert.Equal(t, "Aswathi", Nakshatra(0).String())
	assert.Equal(t, Name{"രേവതി", "Revathi"}, Revathi.Name())
	assert.Equal(t, "Nakshatra(27)", Nakshatra(27).String())
	assert.Equal(t, Name{}, Nakshatra(-1).Name())
	assert.False(t, Nakshatra(27).Valid())
}

func TestMonth_Names(t *testing.T) {
	assert.Equal(t, "Medam", Medam.String())
	assert.Equal(t, "Chingam", Chingam.String())
	assert.Equal(t, Name{"മീനം", "Meenam"}, Meenam.Name())
	assert.Equal(t, "Month(12)", Month(12).String())
}

func TestNameTables_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < NakshatraCount; i++ {
		n := Nakshatra(i).Name()
		require.NotEmpty(t, n.English)
		require.NotEmpty(t, n.Malayalam)
		assert.False(t, seen[n.English], "duplicate %s", n.English)
		seen[n.English] = true
	}
	assert.Len(t, seen, NakshatraCount)
}

func TestParseNakshatra(t *testing.T) {
	tests := []struct {
		in   string
		want Nakshatra
	}{
		{"Revathi", Revathi},
		{"revathi", Revathi},
		{"  REVATHI ", Revathi},
		{"രേവതി", Revathi},
		{"aswathi", 0},
		{"Thiruvonam", 21},
		{"26", Revathi},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := ParseNakshatra(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseNakshatra_DecomposedMalayalam(t *testing.T) {
	decomposed := norm.NFD.String("ആയില്യം")
	got, err := ParseNakshatra(decomposed)
	require.NoError(t, err)
	assert.Equal(t, Nakshatra(8), got)
}

func TestParseNakshatra_Invalid(t *testing.T) {
	for _, in := range []string{"", "Pluto", "27", "-1", "Revati"} {
		_, err := ParseNakshatra(in)
		assert.ErrorIs(t, err, ErrInvalidNakshatra, "input %q", in)
		assert.Equal(t, CodeInvalidNakshatra, CodeOf(err))
	}
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("chingam")
	require.NoError(t, err)
	assert.Equal(t, Chingam, got)

	got, err = ParseMonth("ധനു")
	require.NoError(t, err)
	assert.Equal(t, Dhanu, got)

	got, err = ParseMonth("11")
	require.NoError(t, err)
	assert.Equal(t, Meenam, got)

	_, err = ParseMonth("January")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
