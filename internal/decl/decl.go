// Package decl is the abstract declaration model handed to emission
// backends. Declarations are plain values: the synthesis engine builds them
// and backends only read them.
package decl

import (
	"github.com/pthm/kwicketgen/pkg/typeref"
)

// Kind is the kind of a type declaration.
type Kind string

const (
	Interface Kind = "interface"
	Class     Kind = "class"
)

// Modifier is a declaration modifier.
type Modifier string

const (
	Open     Modifier = "open"
	Override Modifier = "override"
)

// TypeParam declares a type parameter.
type TypeParam struct {
	Name   string             `json:"name"`
	Bounds []*typeref.TypeRef `json:"bounds,omitempty"`
	Doc    string             `json:"doc,omitempty"`
}

// TypeParamOf declares the type variable v.
func TypeParamOf(v *typeref.TypeRef, doc string) TypeParam {
	return TypeParam{Name: v.Name, Bounds: v.Bounds, Doc: doc}
}

// Var returns the use-site reference to the parameter.
func (p TypeParam) Var() *typeref.TypeRef {
	return typeref.Var(p.Name)
}

// Supertype is an implemented interface, optionally delegated to a
// constructor parameter.
type Supertype struct {
	Type     *typeref.TypeRef `json:"type"`
	Delegate string           `json:"delegate,omitempty"`
}

// Arg is a named argument in a call.
type Arg struct {
	Name  string       `json:"name"`
	Value typeref.Code `json:"value"`
}

// Forward passes the parameter called name on under the same name.
func Forward(name string) Arg {
	return Arg{Name: name, Value: typeref.Lit(name)}
}

// Param is a function or constructor parameter.
type Param struct {
	Name    string           `json:"name"`
	Type    *typeref.TypeRef `json:"type"`
	Default *typeref.Code    `json:"default,omitempty"`
	Doc     string           `json:"doc,omitempty"`
}

// Property is a property declared in a type body.
type Property struct {
	Name        string           `json:"name"`
	Type        *typeref.TypeRef `json:"type"`
	Mutable     bool             `json:"mutable,omitempty"`
	Override    bool             `json:"override,omitempty"`
	Initializer *typeref.Code    `json:"initializer,omitempty"`
	Doc         string           `json:"doc,omitempty"`
}

// Type is an interface or class declaration.
type Type struct {
	Kind       Kind        `json:"kind"`
	Package    string      `json:"package"`
	Name       string      `json:"name"`
	Doc        string      `json:"doc,omitempty"`
	Modifiers  []Modifier  `json:"modifiers,omitempty"`
	TypeParams []TypeParam `json:"type_params,omitempty"`

	// Constructor is the primary constructor of a class.
	Constructor []Param `json:"constructor,omitempty"`

	Superclass     *typeref.TypeRef `json:"superclass,omitempty"`
	SuperclassArgs []Arg            `json:"superclass_args,omitempty"`
	Supertypes     []Supertype      `json:"supertypes,omitempty"`

	Properties []Property `json:"properties,omitempty"`
}

// ClassName returns the unparameterized reference to the declared type.
func (t *Type) ClassName() *typeref.TypeRef {
	return typeref.Class(t.Package, t.Name)
}

// HasModifier reports whether t is declared with m.
func (t *Type) HasModifier(m Modifier) bool {
	for _, have := range t.Modifiers {
		if have == m {
			return true
		}
	}
	return false
}

// Refs returns every type referenced by t, in declaration order.
func (t *Type) Refs() []*typeref.TypeRef {
	var c collector
	c.typeParams(t.TypeParams)
	c.params(t.Constructor)
	c.add(t.Superclass)
	for _, a := range t.SuperclassArgs {
		c.code(&a.Value)
	}
	for _, s := range t.Supertypes {
		c.add(s.Type)
	}
	for _, p := range t.Properties {
		c.add(p.Type)
		c.code(p.Initializer)
	}
	return c.refs
}

// Func is a top-level function declaration, usually an extension function.
type Func struct {
	Package    string           `json:"package"`
	Name       string           `json:"name"`
	Doc        string           `json:"doc,omitempty"`
	TypeParams []TypeParam      `json:"type_params,omitempty"`
	Receiver   *typeref.TypeRef `json:"receiver,omitempty"`
	Params     []Param          `json:"params,omitempty"`
	Returns    *typeref.TypeRef `json:"returns,omitempty"`
	Body       typeref.Code     `json:"body"`
}

// Refs returns every type referenced by f, in declaration order.
func (f *Func) Refs() []*typeref.TypeRef {
	var c collector
	c.typeParams(f.TypeParams)
	c.add(f.Receiver)
	c.params(f.Params)
	c.add(f.Returns)
	c.code(&f.Body)
	return c.refs
}

// Param returns the parameter called name, or nil.
func (f *Func) Param(name string) *Param {
	for i := range f.Params {
		if f.Params[i].Name == name {
			return &f.Params[i]
		}
	}
	return nil
}

type collector struct {
	refs []*typeref.TypeRef
}

func (c *collector) add(t *typeref.TypeRef) {
	if t == nil {
		return
	}
	t.Walk(func(r *typeref.TypeRef) {
		if r.Kind == typeref.KindClass {
			c.refs = append(c.refs, r)
		}
	})
}

func (c *collector) code(code *typeref.Code) {
	if code == nil {
		return
	}
	for _, r := range code.Refs() {
		c.add(r)
	}
}

func (c *collector) typeParams(tps []TypeParam) {
	for _, tp := range tps {
		for _, b := range tp.Bounds {
			c.add(b)
		}
	}
}

func (c *collector) params(ps []Param) {
	for _, p := range ps {
		c.add(p.Type)
		c.code(p.Default)
	}
}
