package typeref

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	imodel   = Class("org.apache.wicket.model", "IModel")
	listItem = Class("org.apache.wicket.markup.html.list", "ListItem")
	cors     = Class("org.apache.wicket.markup.html.image", "Image.Cors")
)

func TestParameterizedBy(t *testing.T) {
	tests := []struct {
		name   string
		got    *TypeRef
		expect string
	}{
		{"single arg", ParameterizedBy(imodel, Var("T")), "org.apache.wicket.model.IModel<T>"},
		{"nil args dropped", ParameterizedBy(List, nil, Var("T"), nil), "kotlin.collections.List<T>"},
		{"all nil degenerates", ParameterizedBy(imodel, nil), "org.apache.wicket.model.IModel"},
		{"star", ParameterizedBy(imodel, Star()), "org.apache.wicket.model.IModel<*>"},
		{"out projection", ParameterizedBy(imodel, Out(ParameterizedBy(List, Var("T")))), "org.apache.wicket.model.IModel<out kotlin.collections.List<T>>"},
		{"in projection nullable", ParameterizedBy(imodel, In(Any.AsNullable())), "org.apache.wicket.model.IModel<in kotlin.Any?>"},
		{"nullable keeps args", ParameterizedBy(imodel, Var("T")).AsNullable(), "org.apache.wicket.model.IModel<T>?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.got.String())
		})
	}
}

func TestParameterizedByDoesNotMutateBase(t *testing.T) {
	_ = ParameterizedBy(List, String)
	assert.False(t, List.IsParameterized())

	n := String.AsNullable()
	assert.True(t, n.Nullable)
	assert.False(t, String.Nullable)
}

func TestLambdaString(t *testing.T) {
	tests := []struct {
		name   string
		got    *TypeRef
		expect string
	}{
		{
			name:   "receiver no params",
			got:    Func(ParameterizedBy(listItem, Var("T")), Unit),
			expect: "org.apache.wicket.markup.html.list.ListItem<T>.() -> kotlin.Unit",
		},
		{
			name:   "nullable with params",
			got:    Func(nil, Unit, Class("org.apache.wicket.ajax", "AjaxRequestTarget")).AsNullable(),
			expect: "((org.apache.wicket.ajax.AjaxRequestTarget) -> kotlin.Unit)?",
		},
		{
			name:   "nullable receiver",
			got:    Func(Var("C").AsNullable(), Unit, String.AsNullable()),
			expect: "C?.(kotlin.String?) -> kotlin.Unit",
		},
		{
			name:   "missing return is unit",
			got:    Func(nil, nil),
			expect: "() -> kotlin.Unit",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.got.String())
		})
	}
}

func TestProjectionsAreNeverNullable(t *testing.T) {
	assert.Equal(t, "*", Star().AsNullable().String())
	assert.Equal(t, "out T", Out(Var("T")).AsNullable().String())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Cors", cors.SimpleName())
	assert.Equal(t, "org.apache.wicket.markup.html.image.Image", cors.TopLevel().QualifiedName())
	assert.Equal(t, "org.apache.wicket.markup.html.image.Image.Cors", cors.QualifiedName())
}

func TestFormatQualifier(t *testing.T) {
	ref := ParameterizedBy(imodel, Out(ParameterizedBy(List, Var("T")))).AsNullable()
	got := ref.Format(func(c *TypeRef) string { return c.SimpleName() })
	assert.Equal(t, "IModel<out List<T>>?", got)
}

func TestWalk(t *testing.T) {
	ref := Func(ParameterizedBy(listItem, Var("T")), Unit, ParameterizedBy(List, Out(String)))
	var names []string
	ref.Walk(func(r *TypeRef) {
		if r.Kind == KindClass {
			names = append(names, r.SimpleName())
		}
	})
	assert.Equal(t, []string{"ListItem", "List", "String", "Unit"}, names)
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"kotlin.String",
		"T",
		"kotlin.collections.List<out T>?",
		"org.apache.wicket.model.IModel<*>",
		"org.apache.wicket.markup.html.form.IChoiceRenderer<in kotlin.Any?>?",
		"org.apache.wicket.markup.html.image.Image.Cors?",
		"org.apache.wicket.markup.html.list.ListItem<T>.() -> kotlin.Unit",
		"((org.apache.wicket.ajax.AjaxRequestTarget?) -> kotlin.Unit)?",
		"(org.apache.wicket.extensions.ajax.markup.html.autocomplete.AutoCompleteTextField<T>?.(kotlin.String?) -> kotlin.sequences.Sequence<T>?)?",
		"kotlin.collections.Map<kotlin.String, kotlin.collections.List<(kotlin.Int) -> kotlin.Unit>>",
		"() -> (kotlin.String) -> kotlin.Unit",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			ref, err := Parse(in)
			require.NoError(t, err)
			assert.Equal(t, in, ref.String())
		})
	}
}

func TestParseStructure(t *testing.T) {
	ref, err := Parse("org.apache.wicket.markup.html.list.ListItem<T>?.(kotlin.Int) -> kotlin.Unit")
	require.NoError(t, err)
	require.Equal(t, KindLambda, ref.Kind)
	require.NotNil(t, ref.Receiver)
	assert.True(t, ref.Receiver.Nullable)
	assert.Equal(t, "org.apache.wicket.markup.html.list", ref.Receiver.Package)
	assert.Equal(t, "ListItem", ref.Receiver.Name)
	require.Len(t, ref.Params, 1)
	assert.True(t, Int.Equal(ref.Params[0]))

	member, err := Parse("kotlinx.html.visit")
	require.NoError(t, err)
	assert.Equal(t, "kotlinx.html", member.Package)
	assert.Equal(t, "visit", member.Name)
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "kotlin.List<", "kotlin.List<>", "(A, B)", "kotlin.String extra", "A.() kotlin.Unit"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))
		})
	}
}

func TestTextMarshaling(t *testing.T) {
	type doc struct {
		Type *TypeRef `json:"type"`
	}
	data, err := json.Marshal(doc{Type: ParameterizedBy(List, Var("T")).AsNullable()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"kotlin.collections.List<T>?"}`, string(data))

	var back doc
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Type.Nullable)
	assert.Equal(t, "List", back.Type.Name)
}
