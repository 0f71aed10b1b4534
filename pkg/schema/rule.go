package schema

import (
	"github.com/cockroachdb/errors"

	"github.com/pthm/kwicketgen/pkg/typeref"
)

// RuleKind discriminates the variants of a TypeRule.
type RuleKind string

const (
	// RuleFixed is a fixed type.
	RuleFixed RuleKind = "fixed"
	// RuleModelParam is the caller's model type parameter: T when named, the
	// star projection (or the Erased rule) when erased, and omitted when the
	// model is not parameterized.
	RuleModelParam RuleKind = "model_param"
	// RuleModelType is the model type: the model target when it is a single
	// type or described through a generic, otherwise the model parameter.
	RuleModelType RuleKind = "model_type"
	// RuleComponent is the component type: the C variable for config-only
	// configurations, otherwise the concrete target.
	RuleComponent RuleKind = "component"
	// RuleTarget is the target class parameterized by the model parameter.
	RuleTarget RuleKind = "target"
	// RuleGeneric is a class applied to type arguments given as rules.
	RuleGeneric RuleKind = "generic"
	// RuleLambda is a function type.
	RuleLambda RuleKind = "lambda"
	// RuleOut and RuleIn are use-site projections.
	RuleOut RuleKind = "out"
	RuleIn  RuleKind = "in"
	// RuleStar is the star projection.
	RuleStar RuleKind = "star"
)

// TypeRule derives a type from a configuration and a generation context.
// It is an explicit tagged union resolved by Resolve so that rules can be
// inspected, validated and loaded from files.
type TypeRule struct {
	Kind RuleKind `json:"kind"`

	// Type is the fixed type, or the base class of a generic rule.
	Type *typeref.TypeRef `json:"type,omitempty"`

	// Args are the type arguments of a generic rule. Arguments that resolve
	// to nothing are dropped.
	Args []*TypeRule `json:"args,omitempty"`

	// Elem is the projected rule of out and in.
	Elem *TypeRule `json:"elem,omitempty"`

	Receiver *TypeRule   `json:"receiver,omitempty"`
	Params   []*TypeRule `json:"params,omitempty"`
	Returns  *TypeRule   `json:"returns,omitempty"`

	// Erased replaces a model_param rule when the model parameter is erased.
	Erased *TypeRule `json:"erased,omitempty"`

	// Nullable makes the resolved type nullable.
	Nullable bool `json:"nullable,omitempty"`

	// NullableModel makes the resolved type nullable when the model is
	// nullable and the artifact is not a method.
	NullableModel bool `json:"nullable_model,omitempty"`
}

// Fixed returns a rule for the fixed type t.
func Fixed(t *typeref.TypeRef) *TypeRule {
	return &TypeRule{Kind: RuleFixed, Type: t}
}

// ModelParam returns a rule for the caller's model type parameter.
func ModelParam() *TypeRule {
	return &TypeRule{Kind: RuleModelParam}
}

// ModelType returns a rule for the model type.
func ModelType() *TypeRule {
	return &TypeRule{Kind: RuleModelType}
}

// ComponentType returns a rule for the component type.
func ComponentType() *TypeRule {
	return &TypeRule{Kind: RuleComponent}
}

// TargetType returns a rule for the target class parameterized by the
// model parameter.
func TargetType() *TypeRule {
	return &TypeRule{Kind: RuleTarget}
}

// Generic returns a rule applying base to args.
func Generic(base *typeref.TypeRef, args ...*TypeRule) *TypeRule {
	return &TypeRule{Kind: RuleGeneric, Type: base, Args: args}
}

// Lambda returns a function type rule. receiver and returns may be nil;
// a nil return is Unit.
func Lambda(receiver, returns *TypeRule, params ...*TypeRule) *TypeRule {
	return &TypeRule{Kind: RuleLambda, Receiver: receiver, Returns: returns, Params: params}
}

// Out returns the producer projection of r.
func Out(r *TypeRule) *TypeRule {
	return &TypeRule{Kind: RuleOut, Elem: r}
}

// In returns the consumer projection of r.
func In(r *TypeRule) *TypeRule {
	return &TypeRule{Kind: RuleIn, Elem: r}
}

// Star returns the star projection rule.
func Star() *TypeRule {
	return &TypeRule{Kind: RuleStar}
}

// OrNull returns a copy of r that resolves to a nullable type.
func (r *TypeRule) OrNull() *TypeRule {
	c := *r
	c.Nullable = true
	return &c
}

// OrNullWithModel returns a copy of r that is nullable when the model is
// nullable, except in methods.
func (r *TypeRule) OrNullWithModel() *TypeRule {
	c := *r
	c.NullableModel = true
	return &c
}

// ErasedTo returns a copy of r that resolves to erased when the model
// parameter is erased.
func (r *TypeRule) ErasedTo(erased *TypeRule) *TypeRule {
	c := *r
	c.Erased = erased
	return &c
}

// Check reports structural problems of r and its nested rules.
func (r *TypeRule) Check() error {
	if r == nil {
		return errors.Wrap(ErrInvalidRule, "missing rule")
	}
	switch r.Kind {
	case RuleFixed:
		if r.Type == nil {
			return errors.Wrap(ErrInvalidRule, "fixed rule without type")
		}
	case RuleGeneric:
		if r.Type == nil {
			return errors.Wrap(ErrInvalidRule, "generic rule without base type")
		}
		if r.Type.Kind != typeref.KindClass {
			return errors.Wrapf(ErrInvalidRule, "generic base %s is not a class", r.Type)
		}
		for _, a := range r.Args {
			if err := a.Check(); err != nil {
				return err
			}
		}
	case RuleLambda:
		for _, p := range r.Params {
			if err := p.Check(); err != nil {
				return err
			}
		}
		for _, sub := range []*TypeRule{r.Receiver, r.Returns} {
			if sub == nil {
				continue
			}
			if err := sub.Check(); err != nil {
				return err
			}
		}
	case RuleOut, RuleIn:
		if r.Elem == nil {
			return errors.Wrapf(ErrInvalidRule, "%s rule without element", r.Kind)
		}
		return r.Elem.Check()
	case RuleModelParam:
		if r.Erased != nil {
			return r.Erased.Check()
		}
	case RuleModelType, RuleComponent, RuleTarget, RuleStar:
	default:
		return errors.Wrapf(ErrInvalidRule, "unknown rule kind %q", r.Kind)
	}
	return nil
}
