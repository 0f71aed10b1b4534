// Package loader reads component configurations from catalogue files.
//
// A catalogue file is a YAML (.yaml, .yml), JSON (.json) or CUE (.cue)
// document with a top level "configurations" list:
//
//	configurations:
//	  - target: com.example.ui.Badge
//	    parent: Label
//	    tag: {name: span, attrs: {class: badge}}
//	    properties:
//	      - name: level
//	        type: {kind: fixed, type: "kotlin.Int?"}
//	        description: severity shown by the badge
//
// Parents are named by basename and resolved against the configurations
// passed as base and every file being loaded, in any order. Types use the
// notation read by typeref.Parse and rules use the schema.TypeRule fields.
package loader

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	k8syaml "sigs.k8s.io/yaml"

	"github.com/pthm/kwicketgen/pkg/catalogue"
	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

var (
	// ErrUnknownParent is returned when a parent basename matches no
	// configuration.
	ErrUnknownParent = errors.New("loader: unknown parent")

	// ErrDuplicate is returned when two configurations share a basename.
	ErrDuplicate = errors.New("loader: duplicate configuration")

	// ErrDecode is returned when a file cannot be decoded.
	ErrDecode = errors.New("loader: cannot decode file")
)

// decodeError is a file that could not be decoded. It matches ErrDecode and
// unwraps to the decoder's error.
type decodeError struct {
	name string
	err  error
}

func (e *decodeError) Error() string { return "decode " + e.name + ": " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func (e *decodeError) Is(target error) bool {
	return target == ErrDecode
}

// IsUnknownParentErr returns true if err is or wraps ErrUnknownParent.
func IsUnknownParentErr(err error) bool {
	return errors.Is(err, ErrUnknownParent)
}

// IsDuplicateErr returns true if err is or wraps ErrDuplicate.
func IsDuplicateErr(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsDecodeErr returns true if err is or wraps ErrDecode.
func IsDecodeErr(err error) bool {
	return errors.Is(err, ErrDecode)
}

// Document is the decoded content of one catalogue file.
type Document struct {
	// Source names the file the document was read from.
	Source string `json:"-"`

	Configurations []ConfigDoc `json:"configurations"`
}

// ConfigDoc is the file form of a schema.Configuration.
type ConfigDoc struct {
	Name   string `json:"name,omitempty"`
	Target string `json:"target"`
	Parent string `json:"parent,omitempty"`

	TypeParams           []string `json:"type_params,omitempty"`
	Abstract             bool     `json:"abstract,omitempty"`
	ParameterizedByModel *bool    `json:"parameterized_by_model,omitempty"`
	ConfigOnly           *bool    `json:"config_only,omitempty"`

	Model      *ModelDoc     `json:"model,omitempty"`
	Tag        *TagDoc       `json:"tag,omitempty"`
	Properties []PropertyDoc `json:"properties,omitempty"`
}

// ModelDoc is the file form of a schema.Model.
type ModelDoc struct {
	Kind     schema.ModelKind `json:"kind,omitempty"`
	Target   *schema.TypeRule `json:"target,omitempty"`
	Nullable bool             `json:"nullable,omitempty"`
	Generic  *schema.TypeRule `json:"generic,omitempty"`
}

// TagDoc is the file form of a schema.TagInfo.
type TagDoc struct {
	Name  string            `json:"name"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// PropertyDoc is the file form of a schema.Property.
type PropertyDoc struct {
	Name        string           `json:"name"`
	Type        *schema.TypeRule `json:"type"`
	ReadOnly    bool             `json:"read_only,omitempty"`
	Default     *typeref.Code    `json:"default,omitempty"`
	NoDefault   bool             `json:"no_default,omitempty"`
	Description string           `json:"description,omitempty"`
}

// basename returns the name the configuration is known by.
func (c *ConfigDoc) basename() string {
	if c.Name != "" {
		return c.Name
	}
	t, err := typeref.Parse(c.Target)
	if err != nil {
		return c.Target
	}
	return t.SimpleName()
}

// ReadFile decodes the catalogue file at path, choosing the format by
// extension.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalogue %s", path)
	}
	return Parse(path, data)
}

// Parse decodes data read from name, choosing the format by the extension
// of name.
func Parse(name string, data []byte) (*Document, error) {
	var doc *Document
	var err error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml", ".json":
		doc, err = parseYAML(data)
	case ".cue":
		doc, err = parseCUE(name, data)
	default:
		return nil, errors.WithHint(
			errors.Wrapf(ErrDecode, "%s: unsupported catalogue format %q", name, ext),
			"use a .yaml, .yml, .json or .cue file",
		)
	}
	if err != nil {
		return nil, &decodeError{name: name, err: err}
	}
	doc.Source = name
	return doc, nil
}

func parseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := k8syaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func decodeJSON(data []byte) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFiles reads every file and resolves the documents against base.
func LoadFiles(paths []string, base []*schema.Configuration) ([]*schema.Configuration, error) {
	docs := make([]*Document, 0, len(paths))
	for _, p := range paths {
		doc, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return Resolve(docs, base)
}

// Resolve turns documents into configurations. Parents are looked up by
// basename among base and the documents. The result holds only the new
// configurations, each after its parent when both are new. Every unknown
// parent is reported in one error.
func Resolve(docs []*Document, base []*schema.Configuration) ([]*schema.Configuration, error) {
	known := catalogue.Index(base)

	type pending struct {
		doc    *ConfigDoc
		source string
	}
	byName := map[string]pending{}
	var order []string
	for _, d := range docs {
		for i := range d.Configurations {
			c := &d.Configurations[i]
			name := c.basename()
			if _, ok := known[name]; ok {
				return nil, errors.Wrapf(ErrDuplicate, "%s: %q already exists in the catalogue", d.Source, name)
			}
			if prev, ok := byName[name]; ok {
				return nil, errors.Wrapf(ErrDuplicate, "%s: %q already declared in %s", d.Source, name, prev.source)
			}
			byName[name] = pending{doc: c, source: d.Source}
			order = append(order, name)
		}
	}

	var missing []string
	for _, name := range order {
		p := byName[name].doc.Parent
		if p == "" {
			continue
		}
		if _, ok := known[p]; ok {
			continue
		}
		if _, ok := byName[p]; ok {
			continue
		}
		missing = append(missing, name+" -> "+p)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, errors.WithHint(
			errors.Wrapf(ErrUnknownParent, "%s", strings.Join(missing, ", ")),
			"parents are named by basename; run 'kwicketgen catalogue list' to see the builtin names",
		)
	}

	var out []*schema.Configuration
	building := map[string]bool{}
	var build func(name string) (*schema.Configuration, error)
	build = func(name string) (*schema.Configuration, error) {
		if cfg, ok := known[name]; ok {
			return cfg, nil
		}
		if building[name] {
			return nil, errors.Newf("configuration %q inherits from itself", name)
		}
		building[name] = true
		defer delete(building, name)

		p := byName[name]
		var parent *schema.Configuration
		if p.doc.Parent != "" {
			var err error
			if parent, err = build(p.doc.Parent); err != nil {
				return nil, err
			}
		}
		cfg, err := p.doc.configuration(parent)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: %s", p.source, name)
		}
		known[name] = cfg
		out = append(out, cfg)
		return cfg, nil
	}
	for _, name := range order {
		if _, err := build(name); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *ConfigDoc) configuration(parent *schema.Configuration) (*schema.Configuration, error) {
	if c.Target == "" {
		return nil, errors.New("target is required")
	}
	target, err := typeref.Parse(c.Target)
	if err != nil {
		return nil, errors.Wrap(err, "target")
	}

	cfg := &schema.Configuration{
		Component: schema.Component{
			Target:               target,
			TypeParams:           c.TypeParams,
			Abstract:             c.Abstract,
			ParameterizedByModel: c.ParameterizedByModel,
		},
		ConfigOnly: c.ConfigOnly,
		Basename:   c.Name,
		Parent:     parent,
	}
	if c.Model != nil {
		cfg.Model = &schema.Model{
			Kind:     c.Model.Kind,
			Target:   c.Model.Target,
			Nullable: c.Model.Nullable,
			Generic:  c.Model.Generic,
		}
		if cfg.Model.Target == nil {
			cfg.Model.Target = schema.DefaultModel().Target
		}
	}
	if c.Tag != nil {
		cfg.Tag = &schema.TagInfo{Name: c.Tag.Name, Attrs: c.Tag.Attrs}
	}
	for _, p := range c.Properties {
		if p.Name == "" {
			return nil, errors.New("property without a name")
		}
		if p.Type == nil {
			return nil, errors.Newf("property %q has no type", p.Name)
		}
		prop := &schema.Property{
			Name:        p.Name,
			Type:        p.Type,
			ReadOnly:    p.ReadOnly,
			Description: p.Description,
		}
		switch {
		case p.NoDefault:
			prop.Default = schema.NoDefault
		case p.Default != nil:
			prop.Default = schema.DefaultCode(*p.Default)
		}
		cfg.Properties = append(cfg.Properties, prop)
	}
	return cfg, nil
}
