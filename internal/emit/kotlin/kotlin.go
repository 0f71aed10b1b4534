// Package kotlin renders declarations as Kotlin source files.
package kotlin

import (
	"strings"

	"github.com/pthm/kwicketgen/internal/decl"
	"github.com/pthm/kwicketgen/internal/emit"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

func init() {
	emit.Register(&Renderer{})
}

// Renderer implements emit.Renderer for Kotlin.
type Renderer struct{}

// Name returns "kotlin".
func (r *Renderer) Name() string { return "kotlin" }

// Ext returns ".kt".
func (r *Renderer) Ext() string { return ".kt" }

const indent = "    "

// hardKeywords cannot be used as identifiers without backticks.
var hardKeywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true,
	"else": true, "false": true, "for": true, "fun": true, "if": true,
	"in": true, "interface": true, "is": true, "null": true, "object": true,
	"package": true, "return": true, "super": true, "this": true, "throw": true,
	"true": true, "try": true, "typealias": true, "typeof": true, "val": true,
	"var": true, "when": true, "while": true,
}

func ident(name string) string {
	if hardKeywords[name] {
		return "`" + name + "`"
	}
	return name
}

// Render renders f. Types come first, then functions, each in the order
// they were added.
func (r *Renderer) Render(f *emit.File) ([]byte, error) {
	p := &printer{imports: newImportSet(f)}

	p.line(emit.Header)
	p.line("")
	if f.Package != "" {
		p.line("package " + f.Package)
		p.line("")
	}
	if imports := p.imports.sorted(); len(imports) > 0 {
		for _, imp := range imports {
			p.line("import " + imp)
		}
		p.line("")
	}

	first := true
	for i := range f.Types {
		if !first {
			p.line("")
		}
		first = false
		p.typeDecl(&f.Types[i])
	}
	for i := range f.Funcs {
		if !first {
			p.line("")
		}
		first = false
		p.funcDecl(&f.Funcs[i])
	}
	return []byte(p.b.String()), nil
}

type printer struct {
	b       strings.Builder
	imports *importSet
}

func (p *printer) line(s string) {
	p.b.WriteString(s)
	p.b.WriteByte('\n')
}

func (p *printer) typ(t *typeref.TypeRef) string {
	return t.Format(p.imports.name)
}

func (p *printer) code(c typeref.Code) string {
	return c.Format(p.imports.name)
}

// kdoc writes a KDoc block: the summary followed by tagged entries.
func (p *printer) kdoc(prefix, summary string, tags []string) {
	if summary == "" && len(tags) == 0 {
		return
	}
	p.line(prefix + "/**")
	if summary != "" {
		for _, l := range strings.Split(summary, "\n") {
			p.line(strings.TrimRight(prefix+" * "+l, " "))
		}
	}
	if summary != "" && len(tags) > 0 {
		p.line(prefix + " *")
	}
	for _, t := range tags {
		p.line(prefix + " * " + t)
	}
	p.line(prefix + " */")
}

func typeParamTags(tps []decl.TypeParam) []string {
	var tags []string
	for _, tp := range tps {
		if tp.Doc != "" {
			tags = append(tags, "@param "+tp.Name+" "+tp.Doc)
		}
	}
	return tags
}

func paramTags(ps []decl.Param) []string {
	var tags []string
	for _, pa := range ps {
		if pa.Doc != "" {
			tags = append(tags, "@param "+pa.Name+" "+pa.Doc)
		}
	}
	return tags
}

// typeParams renders the declaration list and the where clause. A single
// bound is written inline; several bounds move to the where clause.
func (p *printer) typeParams(tps []decl.TypeParam) (string, string) {
	if len(tps) == 0 {
		return "", ""
	}
	var decls, where []string
	for _, tp := range tps {
		switch len(tp.Bounds) {
		case 0:
			decls = append(decls, tp.Name)
		case 1:
			decls = append(decls, tp.Name+" : "+p.typ(tp.Bounds[0]))
		default:
			decls = append(decls, tp.Name)
			for _, b := range tp.Bounds {
				where = append(where, tp.Name+" : "+p.typ(b))
			}
		}
	}
	list := "<" + strings.Join(decls, ", ") + ">"
	if len(where) == 0 {
		return list, ""
	}
	return list, " where " + strings.Join(where, ", ")
}

func (p *printer) param(pa decl.Param) string {
	s := ident(pa.Name) + ": " + p.typ(pa.Type)
	if pa.Default != nil {
		s += " = " + p.code(*pa.Default)
	}
	return s
}

// params writes a parenthesized parameter list, one parameter per line.
func (p *printer) params(ps []decl.Param) string {
	if len(ps) == 0 {
		return "()"
	}
	parts := make([]string, len(ps))
	for i, pa := range ps {
		parts[i] = indent + p.param(pa)
	}
	return "(\n" + strings.Join(parts, ",\n") + "\n)"
}

func (p *printer) args(args []decl.Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = ident(a.Name) + " = " + p.code(a.Value)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *printer) typeDecl(t *decl.Type) {
	tags := typeParamTags(t.TypeParams)
	if t.Kind == decl.Class {
		tags = append(tags, paramTags(t.Constructor)...)
	}
	p.kdoc("", t.Doc, tags)

	var head strings.Builder
	for _, m := range t.Modifiers {
		head.WriteString(string(m) + " ")
	}
	head.WriteString(string(t.Kind) + " " + ident(t.Name))
	list, where := p.typeParams(t.TypeParams)
	head.WriteString(list)
	if t.Kind == decl.Class {
		head.WriteString(p.params(t.Constructor))
	}

	var supers []string
	if t.Superclass != nil {
		supers = append(supers, p.typ(t.Superclass)+p.args(t.SuperclassArgs))
	}
	for _, s := range t.Supertypes {
		st := p.typ(s.Type)
		if s.Delegate != "" {
			st += " by " + ident(s.Delegate)
		}
		supers = append(supers, st)
	}
	if len(supers) > 0 {
		head.WriteString(" : " + strings.Join(supers, ", "))
	}
	head.WriteString(where)

	if len(t.Properties) == 0 {
		p.line(head.String())
		return
	}
	p.line(head.String() + " {")
	for i, prop := range t.Properties {
		if i > 0 {
			p.line("")
		}
		p.property(prop)
	}
	p.line("}")
}

func (p *printer) property(prop decl.Property) {
	if !prop.Override {
		p.kdoc(indent, prop.Doc, nil)
	}
	var s strings.Builder
	s.WriteString(indent)
	if prop.Override {
		s.WriteString("override ")
	}
	if prop.Mutable {
		s.WriteString("var ")
	} else {
		s.WriteString("val ")
	}
	s.WriteString(ident(prop.Name) + ": " + p.typ(prop.Type))
	if prop.Initializer != nil {
		s.WriteString(" = " + p.code(*prop.Initializer))
	}
	p.line(s.String())
}

func (p *printer) funcDecl(f *decl.Func) {
	p.kdoc("", f.Doc, append(typeParamTags(f.TypeParams), paramTags(f.Params)...))

	var head strings.Builder
	head.WriteString("fun ")
	list, where := p.typeParams(f.TypeParams)
	if list != "" {
		head.WriteString(list + " ")
	}
	if f.Receiver != nil {
		recv := p.typ(f.Receiver)
		if f.Receiver.Kind == typeref.KindLambda {
			recv = "(" + recv + ")"
		}
		head.WriteString(recv + ".")
	}
	head.WriteString(ident(f.Name))
	head.WriteString(p.params(f.Params))
	if f.Returns != nil {
		head.WriteString(": " + p.typ(f.Returns))
	}
	head.WriteString(where)

	p.line(head.String() + " {")
	for _, l := range strings.Split(p.code(f.Body), "\n") {
		if l == "" {
			p.line("")
			continue
		}
		p.line(indent + l)
	}
	p.line("}")
}
