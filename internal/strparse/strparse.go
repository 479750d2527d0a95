// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package strparse provides facilities for parsing strings, intended for use in
// tests and debug input.
package strparse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// ValueSeparators are the separators used when parsing values with Value.
const ValueSeparators = "[]{}=,@"

// Parser is a helper used to implement parsing of strings, like the value
// literals used by the describe datadriven tests.
//
// It takes a string and splits it into tokens. Tokens are separated by
// whitespace; in addition user-specified separators are also always separate
// tokens. For example, when passed the separators `[],` the string
// `[1,  [2]]` results in tokens `[`, `1`, `,`, `[`, `2`, `]`, `]`.
//
// All Parser methods throw panics instead of returning errors. The code
// that uses a Parser can recover them and convert them to errors.
type Parser struct {
	original  string
	tokens    []token
	lastToken token
}

type token struct {
	tok    string
	offset int
}

// MakeParser constructs a new Parser that converts any instance of the runes
// contained in [separators] into separate tokens, and consumes the provided
// input string.
func MakeParser(separators string, input string) Parser {
	p := Parser{original: input}

	s := input
	off := 0
	for len(s) > 0 {
		nonWhiteSpacePos := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
		switch nonWhiteSpacePos {
		case -1:
			// Only whitespace.
			off += len(s)
			s = s[len(s):]
		case 0:
			// s is the beginning of a non-whitespace token.
			// It might be a separator, or it might be an arbitrary token
			wsPos := strings.IndexFunc(s, unicode.IsSpace)
			switch pos := strings.IndexAny(s, separators); pos {
			case -1:
				if wsPos == -1 {
					wsPos = len(s)
				}
				p.tokens = append(p.tokens, token{tok: s[:wsPos], offset: off})
				off += wsPos
				s = s[wsPos:]
			case 0:
				p.tokens = append(p.tokens, token{tok: s[:1], offset: off})
				off += 1
				s = s[1:]
			default:
				if wsPos != -1 && wsPos < pos {
					pos = wsPos
				}
				p.tokens = append(p.tokens, token{tok: s[:pos], offset: off})
				off += pos
				s = s[pos:]
			}
		default:
			// Whitespace.
			off += nonWhiteSpacePos
			s = s[nonWhiteSpacePos:]
		}
	}
	return p
}

// Done returns true if there are no more tokens.
func (p *Parser) Done() bool {
	return len(p.tokens) == 0
}

// Offset returns the offset of the next token.
func (p *Parser) Offset() int {
	if p.Done() {
		return len(p.original)
	}
	return p.tokens[0].offset
}

// Peek returns the next token, without consuming the token. Returns "" if there
// are no more tokens.
func (p *Parser) Peek() string {
	if p.Done() {
		p.lastToken = token{}
		return ""
	}
	p.lastToken = p.tokens[0]
	return p.tokens[0].tok
}

// Next returns the next token, or "" if there are no more tokens.
func (p *Parser) Next() string {
	res := p.Peek()
	if res != "" {
		p.tokens = p.tokens[1:]
	}
	return res
}

// Remaining returns all the remaining tokens, separated by spaces.
func (p *Parser) Remaining() string {
	var buf strings.Builder
	for _, tok := range p.tokens {
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(tok.tok)
	}
	p.tokens = nil
	return buf.String()
}

// Expect consumes the next tokens, verifying that they exactly match the
// arguments.
func (p *Parser) Expect(tokens ...string) {
	for _, tok := range tokens {
		if res := p.Next(); res != tok {
			p.Errf("expected %q, got %q", tok, res)
		}
	}
}

// Int parses the next token as an integer.
func (p *Parser) Int() int {
	x, err := strconv.Atoi(p.Next())
	if err != nil {
		p.Errf("cannot parse number: %v", err)
	}
	return x
}

// selfRef stands in for a "@" token until the enclosing container exists.
type selfRef struct{}

// Value parses the next value literal. The parser must have been constructed
// with ValueSeparators. The grammar is:
//
//	value := nil | true | false | <int> | <float> | <quoted string>
//	       | '[' [value {',' value}] ']'
//	       | '{' [value '=' value {',' value '=' value}] '}'
//	       | '@'
//
// Lists produce []any and maps produce map[any]any. The '@' token refers to
// the innermost enclosing list or map, which makes it possible to express
// self-referential values such as `[1, @]`.
func (p *Parser) Value() any {
	v := p.value()
	if _, ok := v.(selfRef); ok {
		p.Errf("'@' outside of a list or map")
	}
	return v
}

func (p *Parser) value() any {
	tok := p.Next()
	switch {
	case tok == "":
		p.Errf("expected value, but no tokens found")
	case tok == "@":
		return selfRef{}
	case tok == "[":
		return p.list()
	case tok == "{":
		return p.mapLiteral()
	case tok == "nil":
		return nil
	case tok == "true":
		return true
	case tok == "false":
		return false
	case strings.HasPrefix(tok, `"`):
		s, err := strconv.Unquote(tok)
		if err != nil {
			p.Errf("cannot unquote %s: %v", tok, err)
		}
		return s
	}
	if i, err := strconv.Atoi(tok); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f
	}
	p.Errf("unexpected token %q", tok)
	return nil
}

func (p *Parser) list() any {
	var elems []any
	for p.Peek() != "]" {
		if len(elems) > 0 {
			p.Expect(",")
		}
		elems = append(elems, p.value())
	}
	p.Expect("]")
	res := make([]any, len(elems))
	copy(res, elems)
	for i := range res {
		if _, ok := res[i].(selfRef); ok {
			res[i] = res
		}
	}
	return res
}

func (p *Parser) mapLiteral() any {
	res := make(map[any]any)
	type pending struct{ k, v any }
	var entries []pending
	for p.Peek() != "}" {
		if len(entries) > 0 {
			p.Expect(",")
		}
		k := p.value()
		p.Expect("=")
		entries = append(entries, pending{k: k, v: p.value()})
	}
	p.Expect("}")
	for _, e := range entries {
		if _, ok := e.k.(selfRef); ok {
			p.Errf("'@' cannot be used as a map key")
		}
		if _, ok := e.v.(selfRef); ok {
			e.v = res
		}
		res[e.k] = e.v
	}
	return res
}

// ParseValue parses a complete value literal, returning an error if the input
// is malformed or contains trailing tokens.
func ParseValue(input string) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			err, ok = r.(error)
			if !ok {
				panic(r)
			}
		}
	}()
	p := MakeParser(ValueSeparators, input)
	v = p.Value()
	if !p.Done() {
		p.Errf("unexpected trailing tokens %q", p.Remaining())
	}
	return v, nil
}

// Errf panics with an error which includes the original string and the last
// token.
func (p *Parser) Errf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(errors.Errorf("error parsing %q at token %q: %s", p.original, p.lastToken.tok, msg))
}
