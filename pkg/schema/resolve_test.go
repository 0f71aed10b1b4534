package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/kwicketgen/pkg/typeref"
)

func resolveString(t *testing.T, rule *TypeRule, cfg *Configuration, ctx Context) string {
	t.Helper()
	got, err := Resolve(rule, cfg, ctx)
	require.NoError(t, err)
	if got == nil {
		return "<omitted>"
	}
	return got.String()
}

func TestResolveModelRules(t *testing.T) {
	n := testNaming()
	named := NewContext(n, ArtifactConfigInterface, true)
	erasedMethod := NewContext(n, ArtifactTagMethod, false)
	namedMethod := NewContext(n, ArtifactTagMethod, true)

	label := &Configuration{Component: Component{Target: wicketLabel}}
	checkBox := &Configuration{
		Component: Component{Target: wicketCheckBox},
		Model:     &Model{Kind: Exact, Target: Fixed(typeref.Boolean)},
	}
	listView := &Configuration{
		Component: Component{Target: wicketListView, TypeParams: []string{"T"}},
		Model: &Model{
			Kind:     Unbounded,
			Target:   Generic(typeref.List, ModelParam()),
			Nullable: true,
			Generic:  Fixed(typeref.Any.AsNullable()),
		},
	}
	password := &Configuration{
		Component: Component{Target: wicketPassword},
		Model:     &Model{Kind: Exact, Target: Fixed(typeref.String), Nullable: true},
	}

	modelProp := Generic(imodel, ModelType()).OrNullWithModel()

	tests := []struct {
		name   string
		rule   *TypeRule
		cfg    *Configuration
		ctx    Context
		expect string
	}{
		{"unbounded model named", modelProp, label, named, "org.apache.wicket.model.IModel<T>?"},
		{"unbounded model in method is non-null", modelProp, label, namedMethod, "org.apache.wicket.model.IModel<T>"},
		{"unbounded model erased", modelProp, label, erasedMethod, "org.apache.wicket.model.IModel<*>"},
		{"exact model uses target", modelProp, checkBox, named, "org.apache.wicket.model.IModel<kotlin.Boolean>"},
		{"exact nullable model uses variable", modelProp, password, named, "org.apache.wicket.model.IModel<T>?"},
		{"generic model uses target in context", modelProp, listView, named, "org.apache.wicket.model.IModel<kotlin.collections.List<T>>?"},
		{"generic model erased", modelProp, listView, erasedMethod, "org.apache.wicket.model.IModel<kotlin.collections.List<*>>"},
		{"model param omitted when not parameterized", Generic(typeref.List, ModelParam()), checkBox, named, "kotlin.collections.List"},
		{"model param erased override", Generic(typeref.List, ModelParam().ErasedTo(Fixed(typeref.Any.AsNullable()))), label, erasedMethod, "kotlin.collections.List<kotlin.Any?>"},
		{"model param erased override ignored when named", Generic(typeref.List, ModelParam().ErasedTo(Fixed(typeref.Any))), label, namedMethod, "kotlin.collections.List<T>"},
		{"model type erased override", Generic(typeref.List, ModelType().ErasedTo(Fixed(typeref.Any.AsNullable()))), label, erasedMethod, "kotlin.collections.List<kotlin.Any?>"},
		{"bare model param omitted", ModelParam(), checkBox, named, "<omitted>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, resolveString(t, tt.rule, tt.cfg, tt.ctx))
		})
	}
}

func TestResolveComponentRules(t *testing.T) {
	n := testNaming()
	ctx := NewContext(n, ArtifactConfigInterface, true)
	erased := NewContext(n, ArtifactIncludeMethod, false)

	component := componentConfig()
	label := &Configuration{Component: Component{Target: wicketLabel}, Parent: component}
	listView := &Configuration{Component: Component{Target: wicketListView, TypeParams: []string{"T"}}}

	assert.Equal(t, "C", resolveString(t, ComponentType(), component, ctx))
	assert.Equal(t, "org.apache.wicket.markup.html.basic.Label", resolveString(t, ComponentType(), label, ctx))
	assert.Equal(t, "org.apache.wicket.markup.html.list.ListView<T>", resolveString(t, ComponentType(), listView, ctx))
	assert.Equal(t, "org.apache.wicket.markup.html.list.ListView<*>", resolveString(t, TargetType(), listView, erased))
	assert.Equal(t, "org.apache.wicket.Component", resolveString(t, TargetType(), component, ctx))

	onConfig := Lambda(ComponentType(), nil).OrNull()
	assert.Equal(t, "(C.() -> kotlin.Unit)?", resolveString(t, onConfig, component, ctx))
	assert.Equal(t, "(org.apache.wicket.markup.html.basic.Label.() -> kotlin.Unit)?", resolveString(t, onConfig, label, ctx))
}

func TestResolveProjectionsAndLambdas(t *testing.T) {
	n := testNaming()
	ctx := NewContext(n, ArtifactConfigClass, true)
	label := &Configuration{Component: Component{Target: wicketLabel}}
	checkBox := &Configuration{
		Component: Component{Target: wicketCheckBox},
		Model:     &Model{Kind: Exact, Target: Fixed(typeref.Boolean)},
	}
	choices := Generic(imodel, Out(Generic(typeref.List, ModelParam().ErasedTo(Star())))).OrNull()
	assert.Equal(t, "org.apache.wicket.model.IModel<out kotlin.collections.List<T>>?", resolveString(t, choices, label, ctx))

	renderer := Generic(typeref.Class("org.apache.wicket.markup.html.form", "IChoiceRenderer"), In(ModelParam())).OrNull()
	assert.Equal(t, "org.apache.wicket.markup.html.form.IChoiceRenderer?", resolveString(t, renderer, checkBox, ctx))

	ajax := typeref.Class("org.apache.wicket.ajax", "AjaxRequestTarget")
	onClick := Lambda(TargetType(), Fixed(typeref.Unit), Fixed(ajax)).OrNull()
	assert.Equal(t, "(org.apache.wicket.markup.html.basic.Label.(org.apache.wicket.ajax.AjaxRequestTarget) -> kotlin.Unit)?", resolveString(t, onClick, label, ctx))
	assert.Equal(t, "*", resolveString(t, Star().OrNull(), label, ctx))
}

func TestResolveErrors(t *testing.T) {
	n := testNaming()
	ctx := NewContext(n, ArtifactTagClass, true)
	label := &Configuration{Component: Component{Target: wicketLabel}}

	tests := []struct {
		name string
		rule *TypeRule
		cfg  *Configuration
	}{
		{"nil rule", nil, label},
		{"unknown kind", &TypeRule{Kind: "mystery"}, label},
		{"fixed without type", &TypeRule{Kind: RuleFixed}, label},
		{"generic without base", &TypeRule{Kind: RuleGeneric}, label},
		{"nested failure", Generic(typeref.List, &TypeRule{Kind: "mystery"}), label},
		{"lambda param omitted", Lambda(nil, nil, ModelParam()), &Configuration{
			Component: Component{Target: wicketCheckBox},
			Model:     &Model{Kind: Exact, Target: Fixed(typeref.Boolean)},
		}},
		{"missing target", TargetType(), &Configuration{Basename: "Ghost"}},
		{"self referencing model", ModelType(), &Configuration{
			Component: Component{Target: wicketLabel},
			Model:     &Model{Kind: Exact, Target: ModelType()},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.rule, tt.cfg, ctx)
			require.Error(t, err)
			assert.True(t, IsUnresolvableErr(err))
			assert.Contains(t, err.Error(), tt.cfg.Name())
			assert.Contains(t, err.Error(), "tag class")
		})
	}
}

func TestTypeParams(t *testing.T) {
	n := testNaming()
	ctx := NewContext(n, ArtifactConfigInterface, true)

	component := componentConfig()
	c, err := ComponentTypeParam(component, ctx)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "C", c.Name)
	require.Len(t, c.Bounds, 1)
	assert.Equal(t, "org.apache.wicket.Component", c.Bounds[0].String())

	m, err := ModelTypeParam(component, ctx)
	require.NoError(t, err)
	assert.Equal(t, "T", m.Name)
	assert.Empty(t, m.Bounds)

	password := &Configuration{
		Component: Component{Target: wicketPassword},
		Model:     &Model{Kind: Exact, Target: Fixed(typeref.String), Nullable: true},
	}
	m, err = ModelTypeParam(password, ctx)
	require.NoError(t, err)
	require.Len(t, m.Bounds, 1)
	assert.Equal(t, "kotlin.String?", m.Bounds[0].String())

	tabs := &Configuration{
		Component: Component{Target: typeref.Class("org.apache.wicket.extensions.ajax.markup.html.tabs", "AjaxTabbedPanel"), TypeParams: []string{"T"}},
		Model: &Model{
			Kind:    Exact,
			Target:  Fixed(typeref.Int),
			Generic: Fixed(typeref.Class("org.apache.wicket.extensions.markup.html.tabs", "ITab")),
		},
	}
	m, err = ModelTypeParam(tabs, ctx)
	require.NoError(t, err)
	assert.Equal(t, "org.apache.wicket.extensions.markup.html.tabs.ITab", m.Bounds[0].String())
	mt, err := ModelTypeOf(tabs, ctx)
	require.NoError(t, err)
	assert.Equal(t, "kotlin.Int", mt.String())

	checkBox := &Configuration{
		Component: Component{Target: wicketCheckBox},
		Model:     &Model{Kind: Exact, Target: Fixed(typeref.Boolean)},
	}
	m, err = ModelTypeParam(checkBox, ctx)
	require.NoError(t, err)
	assert.Nil(t, m)
	c, err = ComponentTypeParam(checkBox, ctx)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Nil(t, ModelArg(checkBox, ctx))
}

func TestResolveIsDeterministic(t *testing.T) {
	n := testNaming()
	ctx := NewContext(n, ArtifactConfigClass, true)
	cfg := componentConfig()
	for _, p := range cfg.Properties {
		a, err := Resolve(p.Type, cfg, ctx)
		require.NoError(t, err)
		b, err := Resolve(p.Type, cfg, ctx)
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	}
}
