package yaml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	k8syaml "sigs.k8s.io/yaml"

	"github.com/pthm/kwicketgen/internal/decl"
	"github.com/pthm/kwicketgen/internal/emit"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

func TestRender(t *testing.T) {
	imodel := typeref.Class("org.apache.wicket.model", "IModel")
	f := &emit.File{
		Package: "a.config",
		Types: []decl.Type{{
			Kind:       decl.Interface,
			Package:    "a.config",
			Name:       "ILabelConfig",
			TypeParams: []decl.TypeParam{{Name: "T"}},
			Properties: []decl.Property{{
				Name:    "model",
				Type:    typeref.ParameterizedBy(imodel, typeref.Var("T")).AsNullable(),
				Mutable: true,
			}},
		}},
		Funcs: []decl.Func{{
			Package: "a.config",
			Name:    "label",
			Body:    typeref.Codef("return %T()", typeref.Class("a.config", "Label")),
		}},
	}

	out, err := (&Renderer{}).Render(f)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "# Code generated by kwicketgen. DO NOT EDIT.\n"))

	var doc map[string]any
	require.NoError(t, k8syaml.Unmarshal(out, &doc))
	assert.Equal(t, "a.config", doc["package"])

	types := doc["types"].([]any)
	require.Len(t, types, 1)
	iface := types[0].(map[string]any)
	assert.Equal(t, "interface", iface["kind"])
	prop := iface["properties"].([]any)[0].(map[string]any)
	assert.Equal(t, "org.apache.wicket.model.IModel<T>?", prop["type"])

	funcs := doc["functions"].([]any)
	require.Len(t, funcs, 1)
	assert.Equal(t, "label", funcs[0].(map[string]any)["name"])
}

func TestRegistered(t *testing.T) {
	assert.True(t, emit.Registered("yaml"))
	assert.Equal(t, ".yaml", emit.Get("yaml").Ext())
}
