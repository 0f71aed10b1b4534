package typeref

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Code is an opaque code expression. Type references inside it are kept
// apart from the text so a backend can import and shorten them.
type Code struct {
	Parts []Part
}

// Part is either literal text or a reference to a type or member.
type Part struct {
	Text string
	Ref  *TypeRef
}

// Lit returns literal code text.
func Lit(text string) Code {
	if text == "" {
		return Code{}
	}
	return Code{Parts: []Part{{Text: text}}}
}

// Null is the null literal.
var Null = Lit("null")

// Codef builds code from a format string. Supported verbs:
//
//	%T  a *TypeRef, imported by the backend
//	%L  a Code (spliced), or any value printed with %v
//	%N  a name, printed as is
//	%S  a string, printed as a quoted Kotlin string literal
//	%%  a literal percent sign
func Codef(format string, args ...any) Code {
	var c Code
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			c.Parts = append(c.Parts, Part{Text: text.String()})
			text.Reset()
		}
	}

	next := 0
	arg := func() any {
		if next >= len(args) {
			return "%!(MISSING)"
		}
		a := args[next]
		next++
		return a
	}

	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' || i+1 == len(format) {
			text.WriteByte(ch)
			continue
		}
		i++
		switch format[i] {
		case '%':
			text.WriteByte('%')
		case 'T':
			switch v := arg().(type) {
			case *TypeRef:
				flush()
				c.Parts = append(c.Parts, Part{Ref: v})
			default:
				fmt.Fprintf(&text, "%v", v)
			}
		case 'L':
			switch v := arg().(type) {
			case Code:
				flush()
				c.Parts = append(c.Parts, v.Parts...)
			default:
				fmt.Fprintf(&text, "%v", v)
			}
		case 'N':
			fmt.Fprintf(&text, "%v", arg())
		case 'S':
			text.WriteString(Quote(fmt.Sprint(arg())))
		default:
			text.WriteByte('%')
			text.WriteByte(format[i])
		}
	}
	flush()
	return c
}

// IsZero reports whether c holds no code.
func (c Code) IsZero() bool {
	return len(c.Parts) == 0
}

// Refs returns the type references used by c.
func (c Code) Refs() []*TypeRef {
	var refs []*TypeRef
	for _, p := range c.Parts {
		if p.Ref != nil {
			refs = append(refs, p.Ref)
		}
	}
	return refs
}

// String renders c with fully qualified references.
func (c Code) String() string {
	return c.Format(func(t *TypeRef) string { return t.QualifiedName() })
}

// Format renders c using qualify to spell class names.
func (c Code) Format(qualify func(*TypeRef) string) string {
	var b strings.Builder
	for _, p := range c.Parts {
		if p.Ref != nil {
			b.WriteString(p.Ref.Format(qualify))
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// Template returns the %T format string of c and its references, the
// inverse of Codef for the %T verb.
func (c Code) Template() (string, []*TypeRef) {
	var b strings.Builder
	var refs []*TypeRef
	for _, p := range c.Parts {
		if p.Ref != nil {
			b.WriteString("%T")
			refs = append(refs, p.Ref)
			continue
		}
		b.WriteString(strings.ReplaceAll(p.Text, "%", "%%"))
	}
	return b.String(), refs
}

type codeJSON struct {
	Format string     `json:"format"`
	Types  []*TypeRef `json:"types,omitempty"`
}

// MarshalJSON encodes c as {"format": "...", "types": [...]}, or as a plain
// string when c has no references.
func (c Code) MarshalJSON() ([]byte, error) {
	format, refs := c.Template()
	if len(refs) == 0 {
		return json.Marshal(c.String())
	}
	return json.Marshal(codeJSON{Format: format, Types: refs})
}

// UnmarshalJSON accepts either form written by MarshalJSON.
func (c *Code) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = Lit(text)
		return nil
	}
	var v codeJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "decoding code literal")
	}
	if n := strings.Count(strings.ReplaceAll(v.Format, "%%", ""), "%T"); n != len(v.Types) {
		return errors.Newf("code literal %q has %d type placeholders but %d types", v.Format, n, len(v.Types))
	}
	args := make([]any, len(v.Types))
	for i, t := range v.Types {
		args[i] = t
	}
	*c = Codef(v.Format, args...)
	return nil
}

// LiteralMap renders a string map as a Kotlin map construction expression
// with keys in sorted order. An empty or nil map renders as emptyMap().
func LiteralMap(m map[string]string) Code {
	if len(m) == 0 {
		return Lit("emptyMap()")
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, len(keys))
	for i, k := range keys {
		entries[i] = Quote(k) + " to " + Quote(m[k])
	}
	return Lit("mapOf(" + strings.Join(entries, ", ") + ")")
}

// Quote returns s as a Kotlin string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '$':
			b.WriteString(`\$`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
