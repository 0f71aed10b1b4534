// Package typeref describes types and code fragments of the generated Kotlin
// sources independently of any emission backend.
//
// A TypeRef is an immutable tagged value. Constructors return fresh values and
// every transformation (nullability, parameterization) returns a copy, so a
// TypeRef can be shared freely between declarations and goroutines.
package typeref

import (
	"strings"
)

// Kind discriminates the variants of a TypeRef.
type Kind int

const (
	// KindClass is a named class, interface or top-level member reference.
	KindClass Kind = iota
	// KindVariable is a type variable such as T. Bounds are only meaningful
	// where the variable is declared.
	KindVariable
	// KindStar is the star projection `*`.
	KindStar
	// KindProducer is a use-site `out` projection.
	KindProducer
	// KindConsumer is a use-site `in` projection.
	KindConsumer
	// KindLambda is a function type with optional receiver.
	KindLambda
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindVariable:
		return "variable"
	case KindStar:
		return "star"
	case KindProducer:
		return "out"
	case KindConsumer:
		return "in"
	case KindLambda:
		return "lambda"
	}
	return "unknown"
}

// TypeRef is a reference to a type in the generated code.
type TypeRef struct {
	Kind Kind

	// Package and Name identify a class. Nested classes keep their outer
	// name in Name ("Image.Cors"). For variables only Name is set.
	Package string
	Name    string

	// Args are the type arguments of a class.
	Args []*TypeRef

	// Bounds are the upper bounds of a variable.
	Bounds []*TypeRef

	// Elem is the projected type of a producer or consumer.
	Elem *TypeRef

	// Receiver, Params and Returns describe a lambda.
	Receiver *TypeRef
	Params   []*TypeRef
	Returns  *TypeRef

	Nullable bool
}

// Class returns a reference to the class name in package pkg.
func Class(pkg, name string) *TypeRef {
	return &TypeRef{Kind: KindClass, Package: pkg, Name: name}
}

// Var returns a type variable with optional upper bounds.
func Var(name string, bounds ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: KindVariable, Name: name, Bounds: compact(bounds)}
}

// Star returns the star projection.
func Star() *TypeRef {
	return &TypeRef{Kind: KindStar}
}

// Out returns the producer projection `out t`.
func Out(t *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindProducer, Elem: t}
}

// In returns the consumer projection `in t`.
func In(t *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindConsumer, Elem: t}
}

// Func returns a lambda type. receiver may be nil.
func Func(receiver, returns *TypeRef, params ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: KindLambda, Receiver: receiver, Returns: returns, Params: compact(params)}
}

// ParameterizedBy returns base with the non-nil args as type arguments.
// When every argument is nil the unparameterized base is returned.
func ParameterizedBy(base *TypeRef, args ...*TypeRef) *TypeRef {
	c := base.clone()
	c.Args = compact(args)
	return c
}

// AsNullable returns a nullable copy of t.
func (t *TypeRef) AsNullable() *TypeRef {
	return t.WithNullable(true)
}

// AsNonNull returns a non-null copy of t.
func (t *TypeRef) AsNonNull() *TypeRef {
	return t.WithNullable(false)
}

// WithNullable returns a copy of t with the given nullability. Projections
// are never nullable.
func (t *TypeRef) WithNullable(nullable bool) *TypeRef {
	c := t.clone()
	switch c.Kind {
	case KindStar, KindProducer, KindConsumer:
		c.Nullable = false
	default:
		c.Nullable = nullable
	}
	return c
}

// WithBounds returns a copy of the variable t with the given bounds.
func (t *TypeRef) WithBounds(bounds ...*TypeRef) *TypeRef {
	c := t.clone()
	c.Bounds = compact(bounds)
	return c
}

// QualifiedName returns the dotted package and name of a class.
func (t *TypeRef) QualifiedName() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// SimpleName returns the innermost name of a class ("Cors" for "Image.Cors").
func (t *TypeRef) SimpleName() string {
	if i := strings.LastIndexByte(t.Name, '.'); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// TopLevel returns the outermost class of a possibly nested class name.
// This is the name an import statement refers to.
func (t *TypeRef) TopLevel() *TypeRef {
	name := t.Name
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return Class(t.Package, name)
}

// IsParameterized reports whether t carries type arguments.
func (t *TypeRef) IsParameterized() bool {
	return len(t.Args) > 0
}

// Equal reports whether t and o denote the same type.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.String() == o.String()
}

// Walk calls fn for t and every type nested in it, depth first.
func (t *TypeRef) Walk(fn func(*TypeRef)) {
	if t == nil {
		return
	}
	fn(t)
	for _, a := range t.Args {
		a.Walk(fn)
	}
	for _, b := range t.Bounds {
		b.Walk(fn)
	}
	t.Elem.Walk(fn)
	t.Receiver.Walk(fn)
	for _, p := range t.Params {
		p.Walk(fn)
	}
	t.Returns.Walk(fn)
}

// String renders the canonical, fully qualified notation read by Parse.
func (t *TypeRef) String() string {
	return t.Format(func(c *TypeRef) string { return c.QualifiedName() })
}

// Format renders t using qualify to spell class names. Emission backends
// use it to print imported classes by their simple name.
func (t *TypeRef) Format(qualify func(*TypeRef) string) string {
	var b strings.Builder
	t.format(&b, qualify)
	return b.String()
}

func (t *TypeRef) format(b *strings.Builder, qualify func(*TypeRef) string) {
	if t == nil {
		return
	}
	switch t.Kind {
	case KindStar:
		b.WriteString("*")
		return
	case KindProducer:
		b.WriteString("out ")
		t.Elem.format(b, qualify)
		return
	case KindConsumer:
		b.WriteString("in ")
		t.Elem.format(b, qualify)
		return
	case KindVariable:
		b.WriteString(t.Name)
	case KindLambda:
		if t.Nullable {
			b.WriteString("(")
		}
		if t.Receiver != nil {
			if t.Receiver.Kind == KindLambda {
				b.WriteString("(")
				t.Receiver.format(b, qualify)
				b.WriteString(")")
			} else {
				t.Receiver.format(b, qualify)
			}
			b.WriteString(".")
		}
		b.WriteString("(")
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			p.format(b, qualify)
		}
		b.WriteString(") -> ")
		if t.Returns == nil {
			Unit.format(b, qualify)
		} else {
			t.Returns.format(b, qualify)
		}
		if t.Nullable {
			b.WriteString(")?")
		}
		return
	default:
		b.WriteString(qualify(t))
		if len(t.Args) > 0 {
			b.WriteString("<")
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				a.format(b, qualify)
			}
			b.WriteString(">")
		}
	}
	if t.Nullable {
		b.WriteString("?")
	}
}

// MarshalText implements encoding.TextMarshaler. Variable bounds are not
// part of the text form.
func (t *TypeRef) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TypeRef) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

func (t *TypeRef) clone() *TypeRef {
	c := *t
	c.Args = append([]*TypeRef(nil), t.Args...)
	c.Bounds = append([]*TypeRef(nil), t.Bounds...)
	c.Params = append([]*TypeRef(nil), t.Params...)
	if len(c.Args) == 0 {
		c.Args = nil
	}
	if len(c.Bounds) == 0 {
		c.Bounds = nil
	}
	if len(c.Params) == 0 {
		c.Params = nil
	}
	return &c
}

func compact(refs []*TypeRef) []*TypeRef {
	var out []*TypeRef
	for _, r := range refs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
