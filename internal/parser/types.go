package parser

import (
	"elide/internal/ast"
	"elide/internal/diag"
	"elide/internal/source"
	"elide/internal/token"
)

// parseType parses a type expression into the arena. The grammar is the full
// Rust type surface, but only references, slices, arrays, tuples and paths
// are modeled in depth; fn pointers, raw pointers, dyn/impl and inferred
// types are recognized and consumed without structure.
func (p *Parser) parseType() (ast.TypeID, bool) {
	switch p.lx.Peek().Kind {
	case token.Amp:
		ampTok := p.advance()
		return p.parseRefTail(ampTok.Span)

	case token.AndAnd:
		// && lexes as one token; in type position it is two nested refs.
		tok := p.advance()
		outerAmp := source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + 1}
		innerAmp := source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End}
		inner, ok := p.parseRefTail(innerAmp)
		if !ok {
			return ast.NoTypeID, false
		}
		span := outerAmp.Cover(p.arenas.Types.Get(inner).Span)
		return p.arenas.Types.NewRef(span, ast.RefType{
			AmpSpan: outerAmp,
			Inner:   inner,
		}), true

	case token.LBracket:
		return p.parseSliceOrArray()

	case token.LParen:
		return p.parseTupleOrParen()

	case token.Star:
		// *const T / *mut T: consumed, not modeled
		starTok := p.advance()
		if !p.eat(token.KwConst) {
			p.eat(token.KwMut)
		}
		if _, ok := p.parseType(); !ok {
			return ast.NoTypeID, false
		}
		span := starTok.Span.Cover(p.lastSpan)
		return p.arenas.Types.New(ast.TypeRawPtr, span, ast.NoPayloadID), true

	case token.KwFn:
		return p.parseFnPointer(p.lx.Peek().Span)

	case token.KwUnsafe, token.KwExtern:
		// unsafe [extern "ABI"] fn(...) -> R
		start := p.lx.Peek().Span
		for p.at_or(token.KwUnsafe, token.KwExtern, token.StringLit) {
			p.advance()
		}
		if p.at(token.KwFn) {
			return p.parseFnPointer(start)
		}
		p.err(diag.SynExpectType, "expected 'fn' in function pointer type")
		return ast.NoTypeID, false

	case token.KwFor:
		// for<'a> binder: consume and parse the bound type as written
		p.advance()
		if p.at(token.Lt) {
			p.skipBalancedGroup()
		}
		return p.parseType()

	case token.KwDyn, token.KwImpl:
		return p.parseOpaqueBounds()

	case token.Underscore, token.Bang:
		tok := p.advance()
		return p.arenas.Types.New(ast.TypeOther, tok.Span, ast.NoPayloadID), true

	case token.Ident, token.ColonColon, token.Lt:
		return p.parsePathType()

	default:
		p.err(diag.SynExpectType, "expected type, got \""+p.lx.Peek().Text+"\"")
		return ast.NoTypeID, false
	}
}

// parseRefTail parses what follows '&': optional lifetime, optional mut, then
// the referent type.
func (p *Parser) parseRefTail(ampSpan source.Span) (ast.TypeID, bool) {
	payload := ast.RefType{AmpSpan: ampSpan}

	if p.at(token.Lifetime) {
		lifeTok := p.advance()
		payload.Lifetime = ast.Lifetime{
			Name: p.arenas.StringsInterner.Intern(lifeTok.Text),
			Span: lifeTok.Span,
		}
		payload.HasLifetime = true
	}
	if p.at(token.KwMut) {
		mutTok := p.advance()
		payload.Mut = true
		payload.MutSpan = mutTok.Span
	}

	inner, ok := p.parseType()
	if !ok {
		return ast.NoTypeID, false
	}
	payload.Inner = inner

	span := ampSpan.Cover(p.arenas.Types.Get(inner).Span)
	return p.arenas.Types.NewRef(span, payload), true
}

// parseSliceOrArray parses [T] and [T; LEN]. The length expression is skipped
// balanced; only its span survives.
func (p *Parser) parseSliceOrArray() (ast.TypeID, bool) {
	openTok := p.advance() // '['

	elem, ok := p.parseType()
	if !ok {
		return ast.NoTypeID, false
	}

	if p.at(token.Semicolon) {
		p.advance()
		lenSpan := p.skipArrayLen()
		closeTok, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' after array length")
		if !ok {
			return ast.NoTypeID, false
		}
		span := openTok.Span.Cover(closeTok.Span)
		return p.arenas.Types.NewArray(span, elem, lenSpan), true
	}

	closeTok, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' after slice element type")
	if !ok {
		return ast.NoTypeID, false
	}
	span := openTok.Span.Cover(closeTok.Span)
	return p.arenas.Types.NewSlice(span, elem), true
}

// skipArrayLen consumes the length expression up to the closing ']' at depth
// zero and returns its span.
func (p *Parser) skipArrayLen() source.Span {
	start := p.lx.Peek().Span
	covered := source.Span{File: start.File, Start: start.Start, End: start.Start}
	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF, tok.Kind == token.RBracket:
			return covered
		case tok.OpensDelim():
			p.skipBalancedGroup()
			covered = start.Cover(p.lastSpan)
		default:
			p.advance()
			covered = start.Cover(p.lastSpan)
		}
	}
}

// parseTupleOrParen parses (T, U, ...) tuples, the unit type (), and the
// parenthesized form (T). The grouping form stays an opaque shape of its own:
// its span must keep the parentheses, and rewrites that reach through them
// could not preserve the source faithfully.
func (p *Parser) parseTupleOrParen() (ast.TypeID, bool) {
	openTok := p.advance() // '('

	if p.at(token.RParen) {
		closeTok := p.advance()
		span := openTok.Span.Cover(closeTok.Span)
		return p.arenas.Types.NewTuple(span, nil), true
	}

	var elems []ast.TypeID
	sawComma := false
	for {
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		elems = append(elems, elem)

		if p.at(token.Comma) {
			sawComma = true
			p.advance()
			if p.at(token.RParen) {
				break
			}
			continue
		}
		break
	}

	closeTok, ok := p.expect(token.RParen, diag.SynExpectRightParen, "expected ')' in tuple type")
	if !ok {
		return ast.NoTypeID, false
	}
	span := openTok.Span.Cover(closeTok.Span)

	if !sawComma && len(elems) == 1 {
		// (T) is grouping, not a one-element tuple
		return p.arenas.Types.New(ast.TypeOther, span, ast.NoPayloadID), true
	}
	return p.arenas.Types.NewTuple(span, elems), true
}

// parseFnPointer consumes fn(PARAMS) [-> RET]. Parameters and the return
// type are not modeled.
func (p *Parser) parseFnPointer(start source.Span) (ast.TypeID, bool) {
	p.advance() // 'fn'
	if p.at(token.LParen) {
		p.skipBalancedGroup()
	}
	if p.at(token.Arrow) {
		p.advance()
		if _, ok := p.parseType(); !ok {
			return ast.NoTypeID, false
		}
	}
	span := start.Cover(p.lastSpan)
	return p.arenas.Types.New(ast.TypeFn, span, ast.NoPayloadID), true
}

// parseOpaqueBounds consumes `dyn Bounds` / `impl Bounds` up to a boundary
// token. Bounds can nest arbitrary generics and parenthesized lists.
func (p *Parser) parseOpaqueBounds() (ast.TypeID, bool) {
	start := p.advance().Span // dyn | impl
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF, token.Assign, token.Semicolon, token.Comma,
			token.RParen, token.RBracket, token.RBrace, token.Gt, token.Shr,
			token.LBrace, token.KwWhere:
			span := start.Cover(p.lastSpan)
			return p.arenas.Types.New(ast.TypeOther, span, ast.NoPayloadID), true
		case token.Lt, token.LParen, token.LBracket:
			p.skipBalancedGroup()
		default:
			p.advance()
		}
	}
}

// parsePathType parses a possibly qualified path with optional generic
// arguments: str, Foo, ::std::borrow::Cow<'a, str>, <T as Trait>::Out.
// Generic arguments are consumed balanced; only their covering span is kept.
func (p *Parser) parsePathType() (ast.TypeID, bool) {
	startTok := p.lx.Peek()

	if startTok.Kind == token.Lt {
		// qualified path <T as Trait>::Assoc: a path like any other, the
		// qualifier only pins down which Assoc is meant
		p.skipBalancedGroup()
		for p.at(token.ColonColon) {
			p.advance()
			if _, _, ok := p.parseIdent(); !ok {
				return ast.NoTypeID, false
			}
		}
		span := startTok.Span.Cover(p.lastSpan)
		payload := ast.PathType{
			Name:     p.arenas.StringsInterner.Intern(p.fs.Text(span)),
			NameSpan: span,
		}
		return p.arenas.Types.NewPath(span, payload), true
	}

	p.eat(token.ColonColon) // leading ::

	nameStart := p.lx.Peek().Span
	if _, _, ok := p.parseIdent(); !ok {
		return ast.NoTypeID, false
	}
	for p.at(token.ColonColon) {
		p.advance()
		if _, _, ok := p.parseIdent(); !ok {
			return ast.NoTypeID, false
		}
	}
	nameSpan := nameStart.Cover(p.lastSpan)

	payload := ast.PathType{
		Name:     p.arenas.StringsInterner.Intern(p.fs.Text(nameSpan)),
		NameSpan: nameSpan,
	}

	span := startTok.Span.Cover(nameSpan)
	if p.at(token.Lt) {
		genStart := p.lx.Peek().Span
		p.skipBalancedGroup()
		payload.HasGenerics = true
		payload.GenericsSpan = genStart.Cover(p.lastSpan)
		span = span.Cover(payload.GenericsSpan)
	}

	return p.arenas.Types.NewPath(span, payload), true
}
