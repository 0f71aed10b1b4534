package schema

import (
	"github.com/pthm/kwicketgen/pkg/typeref"
)

// maxRuleDepth bounds rule nesting. Only a model target that refers to the
// model type itself can exceed it.
const maxRuleDepth = 32

// Resolve derives the type rule describes for cfg in ctx. A nil type with a
// nil error means the rule resolves to nothing and the type argument it
// stands for is omitted.
func Resolve(rule *TypeRule, cfg *Configuration, ctx Context) (*typeref.TypeRef, error) {
	r := resolver{cfg: cfg, ctx: ctx}
	return r.resolve(rule, 0)
}

// ModelArg is the model type argument: the model variable when named, the
// star projection when erased, nil when the model is not parameterized.
func ModelArg(cfg *Configuration, ctx Context) *typeref.TypeRef {
	r := resolver{cfg: cfg, ctx: ctx}
	t, _ := r.modelParam(nil, 0)
	return t
}

// ModelTypeOf resolves the model type of cfg.
func ModelTypeOf(cfg *Configuration, ctx Context) (*typeref.TypeRef, error) {
	return Resolve(ModelType(), cfg, ctx)
}

// ComponentArg resolves the component type of cfg.
func ComponentArg(cfg *Configuration, ctx Context) (*typeref.TypeRef, error) {
	return Resolve(ComponentType(), cfg, ctx)
}

// TargetOf resolves the target class of cfg parameterized by the model
// argument.
func TargetOf(cfg *Configuration, ctx Context) (*typeref.TypeRef, error) {
	return Resolve(TargetType(), cfg, ctx)
}

// ModelTypeParam returns the declaration of the model type variable, or nil
// when the model is not parameterized. The variable is bounded by the
// generic type when there is one, and by the exact model type otherwise.
func ModelTypeParam(cfg *Configuration, ctx Context) (*typeref.TypeRef, error) {
	m := cfg.ModelInfo()
	if !m.Parameterized() {
		return nil, nil
	}
	r := resolver{cfg: cfg, ctx: ctx}
	v := ctx.Naming.ModelVar()
	switch {
	case m.Generic != nil:
		bound, err := r.resolve(m.Generic, 1)
		if err != nil {
			return nil, err
		}
		return v.WithBounds(bound), nil
	case m.Kind == Exact:
		bound, err := r.resolve(m.Target, 1)
		if err != nil {
			return nil, err
		}
		if bound == nil {
			return v, nil
		}
		return v.WithBounds(bound.WithNullable(bound.Nullable || m.Nullable)), nil
	}
	return v, nil
}

// ComponentTypeParam returns the declaration of the component type
// variable bounded by the target class, or nil when cfg is not config-only.
func ComponentTypeParam(cfg *Configuration, ctx Context) (*typeref.TypeRef, error) {
	if !cfg.IsConfigOnly() {
		return nil, nil
	}
	r := resolver{cfg: cfg, ctx: ctx}
	bound, err := r.target(0)
	if err != nil {
		return nil, err
	}
	return ctx.Naming.ComponentVar().WithBounds(bound), nil
}

type resolver struct {
	cfg *Configuration
	ctx Context
}

func (r resolver) resolve(rule *TypeRule, depth int) (*typeref.TypeRef, error) {
	if rule == nil {
		return nil, unresolvable(r.cfg, r.ctx, "missing type rule")
	}
	if depth > maxRuleDepth {
		return nil, unresolvable(r.cfg, r.ctx, "type rules nested deeper than %d; does the model target refer to the model type?", maxRuleDepth)
	}

	var t *typeref.TypeRef
	var err error
	switch rule.Kind {
	case RuleFixed:
		if rule.Type == nil {
			return nil, unresolvable(r.cfg, r.ctx, "fixed rule without type")
		}
		t = rule.Type
	case RuleModelParam:
		t, err = r.modelParam(rule, depth)
	case RuleModelType:
		t, err = r.modelType(rule, depth)
	case RuleComponent:
		t, err = r.component(depth)
	case RuleTarget:
		t, err = r.target(depth)
	case RuleGeneric:
		t, err = r.generic(rule, depth)
	case RuleLambda:
		t, err = r.lambda(rule, depth)
	case RuleOut, RuleIn:
		var elem *typeref.TypeRef
		elem, err = r.resolve(rule.Elem, depth+1)
		if elem != nil {
			if rule.Kind == RuleOut {
				t = typeref.Out(elem)
			} else {
				t = typeref.In(elem)
			}
		}
	case RuleStar:
		t = typeref.Star()
	default:
		return nil, unresolvable(r.cfg, r.ctx, "unknown rule kind %q", rule.Kind)
	}
	if err != nil || t == nil {
		return nil, err
	}

	if rule.Nullable || (rule.NullableModel && r.cfg.ModelInfo().Nullable && !r.ctx.Artifact.IsMethod()) {
		t = t.AsNullable()
	}
	return t, nil
}

func (r resolver) modelParam(rule *TypeRule, depth int) (*typeref.TypeRef, error) {
	if !r.cfg.ModelInfo().Parameterized() {
		return nil, nil
	}
	if r.ctx.ModelParamNamed {
		return r.ctx.Naming.ModelVar(), nil
	}
	if rule != nil && rule.Erased != nil {
		return r.resolve(rule.Erased, depth+1)
	}
	return r.ctx.ModelParam, nil
}

func (r resolver) modelType(rule *TypeRule, depth int) (*typeref.TypeRef, error) {
	m := r.cfg.ModelInfo()
	if m.Generic != nil || m.ExactlyOneType() {
		if m.Target == nil {
			return nil, unresolvable(r.cfg, r.ctx, "model has no target type")
		}
		return r.resolve(m.Target, depth+1)
	}
	return r.modelParam(rule, depth)
}

func (r resolver) component(depth int) (*typeref.TypeRef, error) {
	if r.cfg.IsConfigOnly() {
		return r.ctx.Naming.ComponentVar(), nil
	}
	return r.target(depth)
}

func (r resolver) target(depth int) (*typeref.TypeRef, error) {
	target := r.cfg.Component.Target
	if target == nil {
		return nil, unresolvable(r.cfg, r.ctx, "component has no target class")
	}
	if !r.cfg.Component.IsTargetParameterizedByModel() {
		return target, nil
	}
	arg, err := r.modelParam(nil, depth)
	if err != nil {
		return nil, err
	}
	return typeref.ParameterizedBy(target, arg), nil
}

func (r resolver) generic(rule *TypeRule, depth int) (*typeref.TypeRef, error) {
	if rule.Type == nil {
		return nil, unresolvable(r.cfg, r.ctx, "generic rule without base type")
	}
	args := make([]*typeref.TypeRef, 0, len(rule.Args))
	for _, a := range rule.Args {
		t, err := r.resolve(a, depth+1)
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
	return typeref.ParameterizedBy(rule.Type, args...), nil
}

func (r resolver) lambda(rule *TypeRule, depth int) (*typeref.TypeRef, error) {
	var receiver *typeref.TypeRef
	if rule.Receiver != nil {
		var err error
		if receiver, err = r.resolve(rule.Receiver, depth+1); err != nil {
			return nil, err
		}
	}
	params := make([]*typeref.TypeRef, 0, len(rule.Params))
	for i, p := range rule.Params {
		t, err := r.resolve(p, depth+1)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, unresolvable(r.cfg, r.ctx, "lambda parameter %d resolves to nothing", i)
		}
		params = append(params, t)
	}
	returns := typeref.Unit
	if rule.Returns != nil {
		t, err := r.resolve(rule.Returns, depth+1)
		if err != nil {
			return nil, err
		}
		if t != nil {
			returns = t
		}
	}
	return typeref.Func(receiver, returns, params...), nil
}
