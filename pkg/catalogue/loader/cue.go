package loader

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/cockroachdb/errors"
)

// documentSchema constrains CUE catalogues. Definitions are closed, so
// misspelled fields are rejected before decoding.
const documentSchema = `
#Rule: {...}

#Property: {
	name:         string
	type:         #Rule
	read_only?:   bool
	default?:     string | {format: string, types?: [...string]}
	no_default?:  bool
	description?: string
}

#Configuration: {
	name?:                   string
	target:                  string
	parent?:                 string
	type_params?:            [...string]
	abstract?:               bool
	parameterized_by_model?: bool
	config_only?:            bool
	model?: {
		kind?:     "exact" | "unbounded"
		target?:   #Rule
		nullable?: bool
		generic?:  #Rule
	}
	tag?: {
		name:   string
		attrs?: [string]: string
	}
	properties?: [...#Property]
}

configurations: [...#Configuration]
`

// parseCUE evaluates a CUE catalogue against documentSchema and decodes
// the concrete result.
func parseCUE(name string, data []byte) (*Document, error) {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(documentSchema, cue.Filename("catalogue.schema.cue"))
	if err := schemaVal.Err(); err != nil {
		return nil, errors.Wrap(err, "compile catalogue schema")
	}

	val := ctx.CompileBytes(data, cue.Filename(name))
	if err := val.Err(); err != nil {
		return nil, cueError(err)
	}

	val = schemaVal.Unify(val)
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(err)
	}

	js, err := val.MarshalJSON()
	if err != nil {
		return nil, cueError(err)
	}
	return decodeJSON(js)
}

// cueError keeps the positions CUE reports for every error.
func cueError(err error) error {
	return errors.Newf("%s", cueerrors.Details(err, nil))
}
