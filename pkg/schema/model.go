// Package schema defines the metadata that drives generation: component
// configurations, their models and properties, the naming strategy and the
// type rules that derive property types in a generation context.
//
// Configurations are plain values built by a catalogue. They form
// single-parent chains that mirror the component class hierarchy; Validate
// checks a catalogue before any artifact is generated.
package schema

import (
	"maps"

	"github.com/cockroachdb/errors"

	"github.com/pthm/kwicketgen/pkg/typeref"
)

// Component describes the UI component class a configuration creates.
type Component struct {
	// Target is the component class.
	Target *typeref.TypeRef

	// TypeParams names the type parameters the target class declares.
	TypeParams []string

	// Abstract marks target classes that cannot be instantiated.
	Abstract bool

	// ParameterizedByModel overrides the derivation from TypeParams.
	ParameterizedByModel *bool
}

// IsTargetParameterizedByModel reports whether the target class takes the
// model type as its type argument. Unless overridden this is true when the
// target declares type parameters.
func (c Component) IsTargetParameterizedByModel() bool {
	if c.ParameterizedByModel != nil {
		return *c.ParameterizedByModel
	}
	return len(c.TypeParams) > 0
}

// ModelKind says whether a model type is fixed or left to the caller.
type ModelKind int

const (
	// Unbounded models are typed by a caller supplied type parameter.
	Unbounded ModelKind = iota
	// Exact models have a fixed type.
	Exact
)

func (k ModelKind) String() string {
	if k == Exact {
		return "exact"
	}
	return "unbounded"
}

// MarshalText implements encoding.TextMarshaler.
func (k ModelKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ModelKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "exact":
		*k = Exact
	case "unbounded", "":
		*k = Unbounded
	default:
		return errors.Newf("unknown model kind %q", text)
	}
	return nil
}

// Model describes the model a component is bound to.
type Model struct {
	Kind ModelKind

	// Target is the model type. For Exact models it is the fixed type; for
	// models with a Generic it describes the type in terms of the type
	// parameter, for example a list of T.
	Target *TypeRule

	// Nullable marks models whose value may be null.
	Nullable bool

	// Generic, when set, bounds the model type parameter.
	Generic *TypeRule
}

// DefaultModel is used for configurations without an explicit model: an
// unbounded, nullable model of Any?.
func DefaultModel() *Model {
	return &Model{
		Kind:     Unbounded,
		Target:   Fixed(typeref.Any.AsNullable()),
		Nullable: true,
	}
}

// UsesTypeVar reports whether the model is typed by a type variable.
func (m *Model) UsesTypeVar() bool {
	return m.Kind == Unbounded || m.Nullable
}

// ExactlyOneType reports whether the model has a single, non-null type.
func (m *Model) ExactlyOneType() bool {
	return m.Kind == Exact && !m.Nullable
}

// Parameterized reports whether artifacts declare a model type parameter.
func (m *Model) Parameterized() bool {
	return m.UsesTypeVar() || m.Generic != nil
}

// TagInfo is the HTML tag a component renders to by default.
type TagInfo struct {
	Name  string
	Attrs map[string]string
}

// DefaultTagName is used when no configuration in a chain names a tag.
const DefaultTagName = "div"

// Property is a configurable property of a component.
type Property struct {
	Name string

	// Type derives the property type in a generation context.
	Type *TypeRule

	// ReadOnly properties are declared with val instead of var.
	ReadOnly bool

	// Default derives the default value. Nil means the null literal when
	// the resolved type is nullable and no default otherwise.
	Default DefaultFunc

	Description string
}

// DefaultFunc derives a property default from the resolved property type.
// It returns nil when the parameter has no default.
type DefaultFunc func(cfg *Configuration, resolved *typeref.TypeRef) *typeref.Code

// DefaultCode returns a DefaultFunc that always yields code.
func DefaultCode(code typeref.Code) DefaultFunc {
	return func(*Configuration, *typeref.TypeRef) *typeref.Code {
		return &code
	}
}

// NoDefault disables the implicit null default.
func NoDefault(*Configuration, *typeref.TypeRef) *typeref.Code {
	return nil
}

// DefaultValue returns the default for the property given its resolved
// type, or nil.
func (p *Property) DefaultValue(cfg *Configuration, resolved *typeref.TypeRef) *typeref.Code {
	if p.Default != nil {
		return p.Default(cfg, resolved)
	}
	if resolved != nil && resolved.Nullable {
		null := typeref.Null
		return &null
	}
	return nil
}

// Describe returns the property description used in generated docs.
func (p *Property) Describe() string {
	if p.Description != "" {
		return p.Description
	}
	return p.Name
}

// Configuration is the generation input for one component.
type Configuration struct {
	Component Component

	// Model defaults to DefaultModel when nil.
	Model *Model

	// ConfigOnly configurations only get a config interface and class, and
	// their interface is generic in the component type. Defaults to
	// Component.Abstract.
	ConfigOnly *bool

	// Basename defaults to the simple name of the target class.
	Basename string

	Parent     *Configuration
	Properties []*Property

	// Tag is the default tag. Nil inherits from the parent chain.
	Tag *TagInfo

	Docs Docs
}

// Bool returns a pointer to b, for the optional boolean fields.
func Bool(b bool) *bool {
	return &b
}

// ModelInfo returns the model, applying the default.
func (c *Configuration) ModelInfo() *Model {
	if c.Model == nil {
		return DefaultModel()
	}
	return c.Model
}

// IsConfigOnly reports whether only configuration artifacts are generated.
func (c *Configuration) IsConfigOnly() bool {
	if c.ConfigOnly != nil {
		return *c.ConfigOnly
	}
	return c.Component.Abstract
}

// Name returns the basename, defaulting to the target's simple name.
func (c *Configuration) Name() string {
	if c.Basename != "" {
		return c.Basename
	}
	if c.Component.Target == nil {
		return ""
	}
	return c.Component.Target.SimpleName()
}

// Ancestors returns the parent chain from the direct parent to the root.
// It stops at the first repeated configuration so it terminates on
// cyclic chains; Validate reports those.
func (c *Configuration) Ancestors() []*Configuration {
	var out []*Configuration
	seen := map[*Configuration]bool{c: true}
	for p := c.Parent; p != nil && !seen[p]; p = p.Parent {
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// AllParentProperties returns the properties of every ancestor ordered from
// the root of the chain down to the direct parent.
func (c *Configuration) AllParentProperties() []*Property {
	ancestors := c.Ancestors()
	var out []*Property
	for i := len(ancestors) - 1; i >= 0; i-- {
		out = append(out, ancestors[i].Properties...)
	}
	return out
}

// AllProperties returns the own properties followed by AllParentProperties.
func (c *Configuration) AllProperties() []*Property {
	out := append([]*Property(nil), c.Properties...)
	return append(out, c.AllParentProperties()...)
}

// DefaultTagName returns the tag name of the nearest configuration in the
// chain that names one.
func (c *Configuration) DefaultTagName() string {
	for _, cfg := range c.chain() {
		if cfg.Tag != nil && cfg.Tag.Name != "" {
			return cfg.Tag.Name
		}
	}
	return DefaultTagName
}

// DefaultTagAttrs returns a copy of the attributes of the nearest
// configuration in the chain that sets them.
func (c *Configuration) DefaultTagAttrs() map[string]string {
	for _, cfg := range c.chain() {
		if cfg.Tag != nil && cfg.Tag.Attrs != nil {
			return maps.Clone(cfg.Tag.Attrs)
		}
	}
	return map[string]string{}
}

func (c *Configuration) chain() []*Configuration {
	return append([]*Configuration{c}, c.Ancestors()...)
}
