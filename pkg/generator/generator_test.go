package generator

import (
	"bytes"
	"context"
	"sort"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/pthm/kwicketgen/internal/decl"
	"github.com/pthm/kwicketgen/internal/emit"
	"github.com/pthm/kwicketgen/pkg/catalogue"
	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

type recorder struct {
	names []string
}

func (r *recorder) AddType(t decl.Type) { r.names = append(r.names, "type "+t.Name) }
func (r *recorder) AddFunc(f decl.Func) { r.names = append(r.names, "func "+f.Name) }

// brokenConfig passes validation but its property cannot be resolved: the
// exact, non-null model has no type parameter.
func brokenConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: schema.Component{Target: typeref.Class("com.example", "Broken")},
		Parent:    parent,
		Model:     &schema.Model{Kind: schema.Exact, Target: schema.Fixed(typeref.Boolean)},
		Properties: []*schema.Property{
			{Name: "nothing", Type: schema.ModelParam()},
		},
	}
}

func TestGenerateAll(t *testing.T) {
	configs := catalogue.All()
	rec := &recorder{}
	report, err := Generate(context.Background(), Request{Configs: configs, Sink: rec, Parallelism: 4})
	require.NoError(t, err)

	assert.Len(t, report.Generated, len(configs))
	assert.Empty(t, report.Failures)
	assert.Equal(t, len(rec.names), report.Declarations())
	assert.Equal(t, catalogue.Names(configs), sortedCopy(report.Generated))
	assert.Equal(t, "type IComponentConfig", rec.names[0])
}

func TestGenerateIsDeterministic(t *testing.T) {
	var runs [][]string
	for _, p := range []int{1, 8} {
		rec := &recorder{}
		_, err := Generate(context.Background(), Request{Configs: catalogue.All(), Sink: rec, Parallelism: p})
		require.NoError(t, err)
		runs = append(runs, rec.names)
	}
	assert.Equal(t, runs[0], runs[1])
}

func TestGenerateOnly(t *testing.T) {
	rec := &recorder{}
	report, err := Generate(context.Background(), Request{
		Configs: catalogue.All(),
		Only:    []string{"Label", "CheckBox"},
		Sink:    rec,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Label", "CheckBox"}, report.Generated)
	assert.Contains(t, rec.names, "type LabelTag")
	assert.Contains(t, rec.names, "func checkBox")
	assert.NotContains(t, rec.names, "type IComponentConfig")
}

func TestGenerateOnlyUnknown(t *testing.T) {
	rec := &recorder{}
	_, err := Generate(context.Background(), Request{
		Configs: catalogue.All(),
		Only:    []string{"Label", "Nope"},
		Sink:    rec,
	})
	require.Error(t, err)
	assert.True(t, IsUnknownConfigurationErr(err))
	assert.ErrorIs(t, err, ErrUnknownConfiguration)
	assert.Contains(t, err.Error(), "Nope")
	assert.Empty(t, rec.names)
}

func TestGenerateInvalidCatalogue(t *testing.T) {
	configs := catalogue.All()
	orphan := brokenConfig(&schema.Configuration{Component: schema.Component{Target: typeref.Class("x", "Gone")}})
	rec := &recorder{}
	_, err := Generate(context.Background(), Request{Configs: append(configs, orphan), Sink: rec})
	require.Error(t, err)
	assert.True(t, schema.IsInvalidCatalogueErr(err))
	assert.ErrorIs(t, err, schema.ErrInvalidCatalogue)
	var verr *schema.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, rec.names)
}

func TestGenerateStopsOnFailure(t *testing.T) {
	configs := catalogue.All()
	configs = append(configs, brokenConfig(configs[0]))
	rec := &recorder{}
	report, err := Generate(context.Background(), Request{Configs: configs, Sink: rec})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, IsGenerationErr(err))
	assert.True(t, schema.IsUnresolvableErr(err))
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, schema.ErrUnresolvable)
	assert.Empty(t, rec.names)
}

func TestGenerateKeepGoing(t *testing.T) {
	configs := catalogue.All()
	configs = append(configs, brokenConfig(configs[0]))
	rec := &recorder{}
	report, err := Generate(context.Background(), Request{Configs: configs, Sink: rec, KeepGoing: true})
	require.Error(t, err)
	require.NotNil(t, report)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "Broken", report.Failures[0].Basename)
	assert.Len(t, report.Generated, len(configs)-1)
	assert.NotContains(t, rec.names, "type IBrokenConfig")
	assert.True(t, IsGenerationErr(err))
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, report.Failures[0].Err, schema.ErrUnresolvable)
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &recorder{}
	_, err := Generate(ctx, Request{Configs: catalogue.All(), Sink: rec})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.names)
}

func TestGenerateRequiresSink(t *testing.T) {
	_, err := Generate(context.Background(), Request{Configs: catalogue.All()})
	assert.Error(t, err)
}

func TestNewUnit(t *testing.T) {
	assert.Contains(t, Formats(), "kotlin")
	assert.Contains(t, Formats(), "yaml")

	_, err := NewUnit("cobol", "X", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), `"cobol"`)
	assert.Contains(t, errors.FlattenHints(err), "kotlin")

	unit, err := NewUnit("kotlin", "Components", nil)
	require.NoError(t, err)
	_, err = Generate(context.Background(), Request{Configs: catalogue.All(), Only: []string{"Label"}, Sink: unit})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, unit.WriteTo(context.Background(), emit.Stream(&buf)))
	ar := txtar.Parse(buf.Bytes())
	var names []string
	for _, f := range ar.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"org/kwicket/builder/config/Components.kt",
		"org/kwicket/builder/include/dsl/Components.kt",
		"org/kwicket/builder/tag/dsl/Components.kt",
	}, names)
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
