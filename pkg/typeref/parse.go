package typeref

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// ErrSyntax is returned by Parse for malformed type notation.
var ErrSyntax = errors.New("typeref: invalid type notation")

// Parse reads the notation produced by TypeRef.String.
//
// Dotted names are split at the first segment that starts with an upper-case
// letter: "org.apache.wicket.markup.html.image.Image.Cors" is the nested
// class Image.Cors in package org.apache.wicket.markup.html.image. A single
// bare identifier is a type variable. Examples:
//
//	kotlin.collections.List<out T>?
//	org.apache.wicket.markup.html.list.ListItem<*>.() -> kotlin.Unit
//	((kotlin.String?) -> kotlin.sequences.Sequence<T>?)?
func Parse(s string) (*TypeRef, error) {
	p := &parser{src: s}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

// MustParse is like Parse but panics on error. It is intended for static
// catalogue definitions.
func MustParse(s string) *TypeRef {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.Wrapf(ErrSyntax, "%q at offset %d: "+format, append([]any{p.src, p.pos}, args...)...)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) skipSpace() {
	for !p.eof() && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek(tok string) bool {
	p.skipSpace()
	return strings.HasPrefix(p.src[p.pos:], tok)
}

func (p *parser) accept(tok string) bool {
	if p.peek(tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *parser) expect(tok string) error {
	if !p.accept(tok) {
		return p.errorf("expected %q", tok)
	}
	return nil
}

func (p *parser) keyword(kw string) bool {
	p.skipSpace()
	rest := p.src[p.pos:]
	if strings.HasPrefix(rest, kw+" ") {
		p.pos += len(kw) + 1
		return true
	}
	return false
}

func (p *parser) parseType() (*TypeRef, error) {
	switch {
	case p.accept("*"):
		return Star(), nil
	case p.keyword("out"):
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return Out(elem), nil
	case p.keyword("in"):
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return In(elem), nil
	}

	if p.peek("(") {
		return p.parseParenthesized()
	}

	t, err := p.parseNamed()
	if err != nil {
		return nil, err
	}
	if p.accept("?") {
		t = t.AsNullable()
	}
	if p.accept(".(") {
		return p.parseLambdaRest(t)
	}
	return t, nil
}

// parseParenthesized handles both a lambda without receiver and a grouped
// type, typically a nullable lambda.
func (p *parser) parseParenthesized() (*TypeRef, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	list, err := p.parseList(")")
	if err != nil {
		return nil, err
	}
	if p.accept("->") {
		returns, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return Func(nil, returns, list...), nil
	}
	if len(list) != 1 {
		return nil, p.errorf("expected \"->\" after parameter list")
	}
	t := list[0]
	if p.accept("?") {
		t = t.AsNullable()
	}
	if p.accept(".(") {
		return p.parseLambdaRest(t)
	}
	return t, nil
}

// parseLambdaRest parses the parameter list and return type following
// "receiver.(".
func (p *parser) parseLambdaRest(receiver *TypeRef) (*TypeRef, error) {
	params, err := p.parseList(")")
	if err != nil {
		return nil, err
	}
	if err := p.expect("->"); err != nil {
		return nil, err
	}
	returns, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return Func(receiver, returns, params...), nil
}

// parseList parses comma separated types up to and including end.
func (p *parser) parseList(end string) ([]*TypeRef, error) {
	var list []*TypeRef
	if p.accept(end) {
		return list, nil
	}
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		list = append(list, t)
		if p.accept(end) {
			return list, nil
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseNamed() (*TypeRef, error) {
	var segments []string
	for {
		id := p.ident()
		if id == "" {
			return nil, p.errorf("expected identifier")
		}
		segments = append(segments, id)
		// Stop before ".(" which starts a lambda with this receiver.
		if strings.HasPrefix(p.src[p.pos:], ".") && !strings.HasPrefix(p.src[p.pos:], ".(") {
			p.pos++
			continue
		}
		break
	}

	t := named(segments)
	if p.accept("<") {
		args, err := p.parseList(">")
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return nil, p.errorf("empty type argument list")
		}
		t = ParameterizedBy(t, args...)
	}
	return t, nil
}

func (p *parser) ident() string {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		r := rune(p.src[p.pos])
		if r == '_' || unicode.IsLetter(r) || (p.pos > start && unicode.IsDigit(r)) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func named(segments []string) *TypeRef {
	if len(segments) == 1 {
		return Var(segments[0])
	}
	for i, s := range segments {
		if unicode.IsUpper(rune(s[0])) {
			return Class(strings.Join(segments[:i], "."), strings.Join(segments[i:], "."))
		}
	}
	// Lower-case member reference such as kotlinx.html.visit.
	last := len(segments) - 1
	return Class(strings.Join(segments[:last], "."), segments[last])
}
