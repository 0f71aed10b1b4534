// Package declgen is the synthesis engine. It turns one component
// configuration into coordinated declarations: a config interface, a config
// class, a tag class, tag methods and include methods.
//
// Every operation builds a fresh schema.Context for its artifact and threads
// it through all type derivations, so the same configuration always yields
// structurally identical declarations. A failed derivation aborts the whole
// operation; no partial declaration is returned.
package declgen

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pthm/kwicketgen/internal/decl"
	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

// Names of the fixed parameters of generated tag and include code.
const (
	paramID                = "id"
	paramTagName           = "tagName"
	paramInitialAttributes = "initialAttributes"
	paramConsumer          = "consumer"
	paramConfig            = "config"
	paramFactory           = "factory"
	paramBlock             = "block"

	modelProperty = "model"
)

// Builder synthesizes declarations using a naming strategy.
type Builder struct {
	naming *schema.Naming
}

// NewBuilder returns a Builder for the naming strategy n.
func NewBuilder(n *schema.Naming) *Builder {
	return &Builder{naming: n}
}

// Naming returns the naming strategy of b.
func (b *Builder) Naming() *schema.Naming {
	return b.naming
}

// ConfigInterface declares the configuration interface of cfg: one property
// per own property, extending the parent's interface.
func (b *Builder) ConfigInterface(cfg *schema.Configuration) (decl.Type, error) {
	n := b.naming
	ctx := schema.NewContext(n, schema.ArtifactConfigInterface, true)

	t := decl.Type{
		Kind:    decl.Interface,
		Package: n.ConfigInterface.Package(cfg),
		Name:    n.ConfigInterface.Name(cfg),
		Doc:     cfg.Doc(schema.ArtifactConfigInterface, n),
	}

	var err error
	if t.TypeParams, err = b.typeParams(cfg, ctx); err != nil {
		return decl.Type{}, err
	}

	for _, p := range cfg.Properties {
		typ, err := b.propertyType(p, cfg, ctx)
		if err != nil {
			return decl.Type{}, err
		}
		t.Properties = append(t.Properties, decl.Property{
			Name:    p.Name,
			Type:    typ,
			Mutable: !p.ReadOnly,
			Doc:     p.Describe(),
		})
	}

	if cfg.Parent != nil {
		parent, err := b.parentRef(cfg, ctx, n.ConfigInterface)
		if err != nil {
			return decl.Type{}, err
		}
		t.Supertypes = append(t.Supertypes, decl.Supertype{Type: parent})
	}
	return t, nil
}

// ConfigClass declares the implementation of the config interface. Its
// constructor takes every inherited property followed by the own
// properties; inherited ones are forwarded to the parent config class.
func (b *Builder) ConfigClass(cfg *schema.Configuration) (decl.Type, error) {
	n := b.naming
	ctx := schema.NewContext(n, schema.ArtifactConfigClass, true)

	t := decl.Type{
		Kind:    decl.Class,
		Package: n.ConfigClass.Package(cfg),
		Name:    n.ConfigClass.Name(cfg),
		Doc:     cfg.Doc(schema.ArtifactConfigClass, n),
	}
	if cfg.IsConfigOnly() {
		t.Modifiers = append(t.Modifiers, decl.Open)
	}

	var err error
	if t.TypeParams, err = b.typeParams(cfg, ctx); err != nil {
		return decl.Type{}, err
	}

	if t.Constructor, err = b.constructorParams(cfg, ctx); err != nil {
		return decl.Type{}, err
	}

	vars := make([]*typeref.TypeRef, len(t.TypeParams))
	for i, tp := range t.TypeParams {
		vars[i] = tp.Var()
	}
	t.Supertypes = append(t.Supertypes, decl.Supertype{
		Type: typeref.ParameterizedBy(n.ConfigInterface.Ref(cfg), vars...),
	})

	for _, p := range cfg.Properties {
		typ, err := b.propertyType(p, cfg, ctx)
		if err != nil {
			return decl.Type{}, err
		}
		init := typeref.Lit(p.Name)
		t.Properties = append(t.Properties, decl.Property{
			Name:        p.Name,
			Type:        typ,
			Mutable:     !p.ReadOnly,
			Override:    true,
			Initializer: &init,
		})
	}

	if cfg.Parent != nil {
		if t.Superclass, err = b.parentRef(cfg, ctx, n.ConfigClass); err != nil {
			return decl.Type{}, err
		}
		for _, p := range cfg.AllParentProperties() {
			t.SuperclassArgs = append(t.SuperclassArgs, decl.Forward(p.Name))
		}
	}
	return t, nil
}

// TagClass declares the markup tag of cfg. It delegates the config
// interface to its config parameter and extends the base tag class.
func (b *Builder) TagClass(cfg *schema.Configuration) (decl.Type, error) {
	n := b.naming
	ctx := schema.NewContext(n, schema.ArtifactTagClass, true)

	t := decl.Type{
		Kind:    decl.Class,
		Package: n.TagClass.Package(cfg),
		Name:    n.TagClass.Name(cfg),
		Doc:     cfg.Doc(schema.ArtifactTagClass, n),
	}

	var err error
	if t.TypeParams, err = b.typeParams(cfg, ctx); err != nil {
		return decl.Type{}, err
	}

	iface, err := b.ownRef(cfg, ctx, n.ConfigInterface)
	if err != nil {
		return decl.Type{}, err
	}
	modelType, err := schema.ModelTypeOf(cfg, ctx)
	if err != nil {
		return decl.Type{}, err
	}
	component, err := schema.ComponentArg(cfg, ctx)
	if err != nil {
		return decl.Type{}, err
	}
	target, err := schema.TargetOf(cfg, ctx)
	if err != nil {
		return decl.Type{}, err
	}

	t.Supertypes = []decl.Supertype{
		{Type: n.BlockTag},
		{Type: iface, Delegate: paramConfig},
	}
	t.Superclass = typeref.ParameterizedBy(n.BaseTagClass.Ref(cfg), modelType, component, iface)

	factoryDefault := typeref.Codef("{ cid, c -> c.%T(cid) }", n.FactoryMethod.Ref(cfg))
	t.Constructor = []decl.Param{
		b.idParam(true),
		b.tagNameParam(cfg),
		b.initialAttributesParam(cfg),
		{
			Name: paramConsumer,
			Type: typeref.ParameterizedBy(n.TagConsumer, typeref.Star()),
			Doc:  "consumer the tag is rendered to",
		},
		{
			Name: paramConfig,
			Type: iface,
			Doc:  "configuration of the component",
		},
		{
			Name:    paramFactory,
			Type:    typeref.Func(nil, target, typeref.String, iface),
			Default: &factoryDefault,
			Doc:     "creates the component from its id and configuration",
		},
	}
	for _, p := range t.Constructor {
		t.SuperclassArgs = append(t.SuperclassArgs, decl.Forward(p.Name))
	}
	return t, nil
}

// TagMethod declares the function that places the tag of cfg within a
// markup tag. With named false the model type is erased: the function
// declares no model type parameter and has no model parameter.
func (b *Builder) TagMethod(cfg *schema.Configuration, named bool) (decl.Func, error) {
	n := b.naming
	ctx := schema.NewContext(n, schema.ArtifactTagMethod, named)

	f := decl.Func{
		Package:  n.TagMethod.Package(cfg),
		Name:     n.TagMethod.Name(cfg),
		Doc:      cfg.Doc(schema.ArtifactTagMethod, n),
		Receiver: n.TagReceiver,
	}

	var err error
	if f.TypeParams, err = b.methodTypeParams(cfg, ctx); err != nil {
		return decl.Func{}, err
	}

	props := methodProperties(cfg, named)
	if f.Params, err = b.params(props, cfg, ctx); err != nil {
		return decl.Func{}, err
	}

	tagClass := n.TagClass.Ref(cfg)
	tagType, err := b.ownRef(cfg, ctx, n.TagClass)
	if err != nil {
		return decl.Func{}, err
	}
	block := typeref.Lit("{}")
	f.Params = append(f.Params,
		b.idParam(true),
		b.tagNameParam(cfg),
		b.initialAttributesParam(cfg),
		decl.Param{
			Name:    paramBlock,
			Type:    typeref.Func(tagType, typeref.Unit),
			Default: &block,
			Doc:     "Tag configuration block",
		},
	)

	f.Body = typeref.Codef(
		"%T(id = id, tagName = tagName, initialAttributes = initialAttributes, consumer = consumer, config = %L).%T(block)",
		tagClass, b.configInstance(cfg, props), n.Visit,
	)
	return f, nil
}

// IncludeMethod declares the function that creates the component of cfg
// and queues it for inclusion in a container.
func (b *Builder) IncludeMethod(cfg *schema.Configuration, named bool) (decl.Func, error) {
	n := b.naming
	ctx := schema.NewContext(n, schema.ArtifactIncludeMethod, named)

	f := decl.Func{
		Package:  n.IncludeMethod.Package(cfg),
		Name:     n.IncludeMethod.Name(cfg),
		Doc:      cfg.Doc(schema.ArtifactIncludeMethod, n),
		Receiver: n.IncludeReceiver,
	}

	var err error
	if f.TypeParams, err = b.methodTypeParams(cfg, ctx); err != nil {
		return decl.Func{}, err
	}
	if f.Returns, err = schema.TargetOf(cfg, ctx); err != nil {
		return decl.Func{}, err
	}

	props := methodProperties(cfg, named)
	params, err := b.params(props, cfg, ctx)
	if err != nil {
		return decl.Func{}, err
	}

	iface, err := b.ownRef(cfg, ctx, n.ConfigInterface)
	if err != nil {
		return decl.Func{}, err
	}
	null := typeref.Null
	f.Params = append([]decl.Param{b.idParam(false)}, params...)
	f.Params = append(f.Params, decl.Param{
		Name:    paramBlock,
		Type:    typeref.Func(iface, typeref.Unit).AsNullable(),
		Default: &null,
		Doc:     "optional block to execute to configure the component",
	})

	f.Body = typeref.Codef(
		"return %T(id = id, block = block, factory = { cid, config -> config.%T(cid) }, config = %L)",
		n.IncludeFactory.Ref(cfg), n.FactoryMethod.Ref(cfg), b.configInstance(cfg, props),
	)
	return f, nil
}

// Overloads returns the model parameter modes methods are generated for:
// named only for exact models, named and erased otherwise.
func (b *Builder) Overloads(cfg *schema.Configuration) []bool {
	if cfg.ModelInfo().Kind == schema.Exact {
		return []bool{true}
	}
	return []bool{true, false}
}

// typeParams declares C for config-only configurations and T for
// parameterized models, in that order.
func (b *Builder) typeParams(cfg *schema.Configuration, ctx schema.Context) ([]decl.TypeParam, error) {
	var tps []decl.TypeParam
	c, err := schema.ComponentTypeParam(cfg, ctx)
	if err != nil {
		return nil, err
	}
	if c != nil {
		tps = append(tps, decl.TypeParamOf(c, b.naming.ComponentParam.Doc))
	}
	m, err := schema.ModelTypeParam(cfg, ctx)
	if err != nil {
		return nil, err
	}
	if m != nil {
		tps = append(tps, decl.TypeParamOf(m, b.naming.ModelParam.Doc))
	}
	return tps, nil
}

// methodTypeParams is typeParams without T when the model is erased. C is
// declared in both overloads.
func (b *Builder) methodTypeParams(cfg *schema.Configuration, ctx schema.Context) ([]decl.TypeParam, error) {
	if ctx.ModelParamNamed {
		return b.typeParams(cfg, ctx)
	}
	c, err := schema.ComponentTypeParam(cfg, ctx)
	if err != nil || c == nil {
		return nil, err
	}
	return []decl.TypeParam{decl.TypeParamOf(c, b.naming.ComponentParam.Doc)}, nil
}

// ownRef references the declaration of cfg named by ci with the arguments
// typeParams declares: the component argument when cfg is config-only,
// then the model argument.
func (b *Builder) ownRef(cfg *schema.Configuration, ctx schema.Context, ci schema.ClassInfo) (*typeref.TypeRef, error) {
	var component *typeref.TypeRef
	if cfg.IsConfigOnly() {
		var err error
		if component, err = schema.ComponentArg(cfg, ctx); err != nil {
			return nil, err
		}
	}
	return typeref.ParameterizedBy(ci.Ref(cfg), component, schema.ModelArg(cfg, ctx)), nil
}

// parentRef references the parent's declaration named by ci with the super
// arguments of cfg: the component argument when the parent is config-only
// and the model type of cfg when the parent's model is parameterized.
func (b *Builder) parentRef(cfg *schema.Configuration, ctx schema.Context, ci schema.ClassInfo) (*typeref.TypeRef, error) {
	parent := cfg.Parent
	var component, model *typeref.TypeRef
	var err error
	if parent.IsConfigOnly() {
		if component, err = schema.ComponentArg(cfg, ctx); err != nil {
			return nil, err
		}
	}
	if parent.ModelInfo().Parameterized() {
		if model, err = schema.ModelTypeOf(cfg, ctx); err != nil {
			return nil, err
		}
	}
	return typeref.ParameterizedBy(ci.Ref(parent), component, model), nil
}

func (b *Builder) propertyType(p *schema.Property, cfg *schema.Configuration, ctx schema.Context) (*typeref.TypeRef, error) {
	typ, err := schema.Resolve(p.Type, cfg, ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "property %q", p.Name)
	}
	if typ == nil {
		return nil, errors.Wrapf(schema.ErrUnresolvable, "%s %s: property %q resolves to no type", cfg.Name(), ctx.Artifact, p.Name)
	}
	return typ, nil
}

func (b *Builder) params(props []*schema.Property, cfg *schema.Configuration, ctx schema.Context) ([]decl.Param, error) {
	params := make([]decl.Param, 0, len(props))
	for _, p := range props {
		typ, err := b.propertyType(p, cfg, ctx)
		if err != nil {
			return nil, err
		}
		params = append(params, decl.Param{
			Name:    p.Name,
			Type:    typ,
			Default: p.DefaultValue(cfg, typ),
			Doc:     p.Describe(),
		})
	}
	return params, nil
}

func (b *Builder) constructorParams(cfg *schema.Configuration, ctx schema.Context) ([]decl.Param, error) {
	return b.params(constructorProperties(cfg), cfg, ctx)
}

// configInstance constructs the config class with the given properties as
// named arguments in constructor order.
func (b *Builder) configInstance(cfg *schema.Configuration, props []*schema.Property) typeref.Code {
	include := make(map[string]bool, len(props))
	for _, p := range props {
		include[p.Name] = true
	}
	var args []string
	for _, p := range constructorProperties(cfg) {
		if include[p.Name] {
			args = append(args, p.Name+" = "+p.Name)
		}
	}
	return typeref.Codef("%T(%L)", b.naming.ConfigClass.Ref(cfg), strings.Join(args, ", "))
}

func (b *Builder) idParam(nullable bool) decl.Param {
	p := decl.Param{Name: paramID, Type: typeref.String, Doc: "Wicket component id"}
	if nullable {
		null := typeref.Null
		p.Type = typeref.String.AsNullable()
		p.Default = &null
	}
	return p
}

func (b *Builder) tagNameParam(cfg *schema.Configuration) decl.Param {
	def := typeref.Lit(typeref.Quote(cfg.DefaultTagName()))
	return decl.Param{Name: paramTagName, Type: typeref.String, Default: &def, Doc: "Name of the HTML tag"}
}

func (b *Builder) initialAttributesParam(cfg *schema.Configuration) decl.Param {
	def := typeref.LiteralMap(cfg.DefaultTagAttrs())
	return decl.Param{
		Name:    paramInitialAttributes,
		Type:    typeref.ParameterizedBy(typeref.Map, typeref.String, typeref.String),
		Default: &def,
		Doc:     "Tag attributes",
	}
}

// constructorProperties is the config class constructor order.
func constructorProperties(cfg *schema.Configuration) []*schema.Property {
	return append(cfg.AllParentProperties(), cfg.Properties...)
}

// methodProperties returns AllProperties, without the model when it is
// erased.
func methodProperties(cfg *schema.Configuration, named bool) []*schema.Property {
	var out []*schema.Property
	for _, p := range cfg.AllProperties() {
		if !named && p.Name == modelProperty {
			continue
		}
		out = append(out, p)
	}
	return out
}
