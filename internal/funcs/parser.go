// Package funcs implements the compound-variable / function expression
// language of spec.md §4.2: "${name}" simple variable references and
// "${__funcName(arg1,arg2,...)}" function calls, with nested placeholders
// inside arguments. Grounded on pymeter/engine/replacer.py's character-by-
// character scanner (ValueReplacer), reworked as an explicit piece parser
// producing an evaluable CompoundVariable rather than doing substitution
// inline.
package funcs

import (
	"fmt"
	"strings"

	"github.com/blackcoderx/surge/internal/errs"
)

// Piece is one element of a parsed compound variable: a literal run of
// text, a simple "${name}" reference, or a "${__name(args...)}" call.
type Piece interface {
	isPiece()
}

// Literal is a run of text with no placeholders.
type Literal string

func (Literal) isPiece() {}

// SimpleVariableRef resolves first against the evaluation Context's
// variables, then its properties; falls back to the literal "${name}" text.
type SimpleVariableRef struct {
	Name string
}

func (SimpleVariableRef) isPiece() {}

// FunctionCall is a "${__name(arg1,arg2,...)}" invocation. Arguments are
// themselves compound variables so nesting is supported.
type FunctionCall struct {
	Name string
	Args []*CompoundVariable
}

func (FunctionCall) isPiece() {}

// Parse compiles raw source text into an ordered list of pieces. It never
// fails on unknown function names (they decay to a SimpleVariableRef when
// Compile binds them, per spec.md §4.2) but does fail on unterminated function
// calls and unbalanced nested placeholders.
func Parse(raw string) ([]Piece, error) {
	p := &parser{src: raw}
	return p.parsePieces(false)
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

// parsePieces scans literal/placeholder pieces until EOF (top level) or
// until a top-level ',' or ')' is seen (inside an argument list, when
// insideArgs is true). The caller consumes the terminator.
func (p *parser) parsePieces(insideArgs bool) ([]Piece, error) {
	var pieces []Piece
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			pieces = append(pieces, Literal(lit.String()))
			lit.Reset()
		}
	}

	for !p.eof() {
		c := p.src[p.pos]

		if insideArgs && (c == ',' || c == ')') {
			break
		}

		if c == '\\' && p.pos+1 < len(p.src) {
			next := p.src[p.pos+1]
			switch next {
			case '$', ',', '\\':
				lit.WriteByte(next)
				p.pos += 2
				continue
			}
		}

		if c == '$' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '{' {
			flush()
			piece, err := p.parsePlaceholder()
			if err != nil {
				return nil, err
			}
			pieces = append(pieces, piece)
			continue
		}

		lit.WriteByte(c)
		p.pos++
	}

	flush()
	return pieces, nil
}

// parsePlaceholder consumes "${...}" starting at '$'.
func (p *parser) parsePlaceholder() (Piece, error) {
	start := p.pos
	p.pos += 2 // skip "${"

	// Scan the name up to the first "(" or "}".
	nameStart := p.pos
	for !p.eof() && p.peek() != '(' && p.peek() != '}' {
		p.pos++
	}
	name := p.src[nameStart:p.pos]

	if p.eof() {
		return nil, fmt.Errorf("%w: unterminated placeholder starting at %d", errs.ErrInvalidVariable, start)
	}

	if p.peek() == '}' {
		p.pos++ // consume '}'
		return SimpleVariableRef{Name: name}, nil
	}

	// Function call: name(args...)
	p.pos++ // consume '('
	var args []*CompoundVariable
	for {
		argPieces, err := p.parsePieces(true)
		if err != nil {
			return nil, err
		}
		args = append(args, &CompoundVariable{pieces: argPieces, raw: renderPieces(argPieces)})

		if p.eof() {
			return nil, fmt.Errorf("%w: unterminated function call %q starting at %d", errs.ErrInvalidVariable, name, start)
		}
		if p.peek() == ',' {
			p.pos++
			continue
		}
		if p.peek() == ')' {
			p.pos++
			break
		}
	}

	if p.eof() {
		return nil, fmt.Errorf("%w: unterminated function call %q starting at %d", errs.ErrInvalidVariable, name, start)
	}
	if p.peek() != '}' {
		return nil, fmt.Errorf("%w: expected '}' closing function call %q", errs.ErrInvalidVariable, name)
	}
	p.pos++ // consume '}'

	// Single empty argument means zero arguments were supplied.
	if len(args) == 1 && len(args[0].pieces) == 0 {
		args = nil
	}

	return FunctionCall{Name: name, Args: args}, nil
}

func renderPieces(pieces []Piece) string {
	var sb strings.Builder
	for _, pc := range pieces {
		switch v := pc.(type) {
		case Literal:
			sb.WriteString(string(v))
		case SimpleVariableRef:
			sb.WriteString("${" + v.Name + "}")
		case FunctionCall:
			sb.WriteString("${" + v.Name + "(")
			for i, a := range v.Args {
				if i > 0 {
					sb.WriteString(",")
				}
				sb.WriteString(a.raw)
			}
			sb.WriteString(")}")
		}
	}
	return sb.String()
}
