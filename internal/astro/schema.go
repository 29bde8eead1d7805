package astro

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed data/dataset.cue
var datasetSchema string

// ValidateDataset checks a decoded dataset against the CUE schema in
// data/dataset.cue. Missing series, empty term tables and a validity range
// not covering 1900..2050 are rejected.
func ValidateDataset(ds *Dataset) error {
	if ds == nil {
		return fmt.Errorf("dataset is nil")
	}

	// cue.Context is not safe for concurrent use; validation is rare enough
	// to build one per call.
	ctx := cuecontext.New()
	schema := ctx.CompileString(datasetSchema, cue.Filename("dataset.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling dataset schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Dataset"))
	if !def.Exists() {
		return fmt.Errorf("dataset schema has no #Dataset definition")
	}

	value := ctx.Encode(ds)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}

	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid dataset %q: %w", ds.Name, err)
	}
	return nil
}
