package testutil

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGoldenJSON marshals v as indented JSON and compares it with
// testdata/golden/<name>.golden relative to the calling test's package.
//
// Regenerate golden files with: go test ./... -update
func AssertGoldenJSON(t *testing.T, name string, v any) {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden value: %v", err)
	}
	data = append(data, '\n')

	AssertGolden(t, name, data)
}

// AssertGolden compares raw bytes with testdata/golden/<name>.golden.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
