// Package yaml renders declarations as YAML documents, one per package. The
// dump is meant for reviewing what the engine derived without reading
// generated source.
package yaml

import (
	"github.com/cockroachdb/errors"
	k8syaml "sigs.k8s.io/yaml"

	"github.com/pthm/kwicketgen/internal/decl"
	"github.com/pthm/kwicketgen/internal/emit"
)

func init() {
	emit.Register(&Renderer{})
}

// Renderer implements emit.Renderer for YAML.
type Renderer struct{}

// Name returns "yaml".
func (r *Renderer) Name() string { return "yaml" }

// Ext returns ".yaml".
func (r *Renderer) Ext() string { return ".yaml" }

type document struct {
	Package string      `json:"package"`
	Types   []decl.Type `json:"types,omitempty"`
	Funcs   []decl.Func `json:"functions,omitempty"`
}

// Render marshals f.
func (r *Renderer) Render(f *emit.File) ([]byte, error) {
	data, err := k8syaml.Marshal(document{Package: f.Package, Types: f.Types, Funcs: f.Funcs})
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s", f.Package)
	}
	return append([]byte("# Code generated by kwicketgen. DO NOT EDIT.\n"), data...), nil
}
