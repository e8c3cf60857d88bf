package parser

import (
	"elide/internal/ast"
	"elide/internal/diag"
	"elide/internal/fix"
	"elide/internal/source"
	"elide/internal/token"
)

// parseConstItem parses `const NAME: TYPE = EXPR;` and
// `static [mut] NAME: TYPE = EXPR;`, including the initializer-less forms a
// trait const or extern static uses. `const fn` is a function, not an item we
// model, so it falls back to the structural skip.
func (p *Parser) parseConstItem(ctx itemContext, vis ast.Visibility, attrs []ast.Attr) (ast.ItemID, bool) {
	kwTok := p.advance() // const | static

	kind := ast.ItemConst
	if kwTok.Kind == token.KwStatic {
		kind = ast.ItemStatic
	}

	if kind == ast.ItemConst && (p.at(token.KwFn) || p.at(token.KwUnsafe) || p.at(token.KwExtern)) {
		// const fn, const unsafe fn, const extern "C" fn
		p.skipItem()
		return ast.NoItemID, false
	}

	mutable := false
	if kind == ast.ItemStatic && p.at(token.KwMut) {
		mutable = true
		p.advance()
	}

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		p.skipItem()
		return ast.NoItemID, false
	}

	colonTok, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after name")
	if !ok {
		p.skipItem()
		return ast.NoItemID, false
	}

	typeID, ok := p.parseType()
	if !ok {
		p.skipItem()
		return ast.NoItemID, false
	}

	var equalsSpan, valueSpan source.Span
	if p.at(token.Assign) {
		equalsSpan = p.advance().Span
		valueSpan = p.skipToSemicolon()
	}

	var semiTok token.Token
	if p.at(token.Semicolon) {
		semiTok = p.advance()
	} else {
		sp := p.getDiagnosticSpan()
		insertAt := source.Span{File: sp.File, Start: sp.Start, End: sp.Start}
		insert := fix.InsertText("insert ';'", insertAt, ";", "",
			fix.WithID(fix.MakeFixID(diag.SynExpectSemicolon, sp)))
		p.reportWithFix(diag.SynExpectSemicolon, diag.SevError, sp, "expected ';' after declaration", insert)
		semiTok = token.Token{Kind: token.Invalid, Span: sp, Text: p.lx.Peek().Text}
	}

	span := kwTok.Span.Cover(semiTok.Span)
	if !attrsEmpty(attrs) {
		span = attrs[0].Span.Cover(span)
	}

	itemID := p.arenas.Items.NewConst(kind, ast.ConstItem{
		Name:          name,
		Type:          typeID,
		Visibility:    vis,
		Mutable:       mutable,
		Assoc:         ctx.assoc,
		FromExpansion: ctx.expansion,
		KwSpan:        kwTok.Span,
		NameSpan:      nameSpan,
		ColonSpan:     colonTok.Span,
		EqualsSpan:    equalsSpan,
		ValueSpan:     valueSpan,
		SemicolonSpan: semiTok.Span,
		Span:          span,
	}, attrs)
	return itemID, true
}

func attrsEmpty(attrs []ast.Attr) bool {
	return len(attrs) == 0
}
