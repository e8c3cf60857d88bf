package parser

import (
	"slices"

	"elide/internal/ast"
	"elide/internal/diag"
	"elide/internal/lexer"
	"elide/internal/source"
	"elide/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// itemContext tracks where in the file the scanner currently is. Both flags
// propagate into the const/static payloads so the lint pass can skip
// associated consts and macro-generated declarations.
type itemContext struct {
	// assoc: inside an impl or trait block
	assoc bool
	// expansion: inside a macro_rules! body
	expansion bool
}

// Parser is per-file parse state. It models const and static declarations
// precisely and skips every other construct structurally (balanced
// delimiters), so arbitrary Rust files pass through without noise.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span
}

// ParseFile is the entry point for one file. Requires an already constructed
// lexer (built on a source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	startSpan := p.lx.Peek().Span
	p.parseItems(itemContext{}, token.EOF)
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems scans declarations until the stop token (EOF at top level,
// RBrace inside a block). Only const/static produce AST items; everything
// else is consumed structurally.
func (p *Parser) parseItems(ctx itemContext, stop token.Kind) {
	for !p.at(token.EOF) && !p.at(stop) {
		attrs := p.skipAttrs()
		vis := p.parseVisibility()

		switch p.lx.Peek().Kind {
		case token.KwConst, token.KwStatic:
			if itemID, ok := p.parseConstItem(ctx, vis, attrs); ok {
				p.arenas.PushItem(p.file, itemID)
			}
		case token.KwImpl, token.KwTrait:
			p.skipToBlock()
			if p.at(token.LBrace) {
				p.advance()
				inner := ctx
				inner.assoc = true
				p.parseItems(inner, token.RBrace)
				p.eat(token.RBrace)
			}
		case token.KwMod:
			p.advance()
			p.skipToBlockOrSemicolon()
			if p.at(token.LBrace) {
				p.advance()
				p.parseItems(ctx, token.RBrace)
				p.eat(token.RBrace)
			} else {
				p.eat(token.Semicolon)
			}
		case token.KwMacroRules:
			p.advance()
			p.eat(token.Bang)
			p.eat(token.Ident)
			if p.at(token.LBrace) {
				p.advance()
				inner := ctx
				inner.expansion = true
				p.parseItems(inner, token.RBrace)
				p.eat(token.RBrace)
			} else {
				p.skipBalancedGroup()
				p.eat(token.Semicolon)
			}
		case token.KwExtern:
			// extern "C" { ... } blocks keep the current context; extern
			// crate lines end at ';'
			p.advance()
			p.skipToBlockOrSemicolon()
			if p.at(token.LBrace) {
				p.advance()
				p.parseItems(ctx, token.RBrace)
				p.eat(token.RBrace)
			} else {
				p.eat(token.Semicolon)
			}
		case token.KwFn, token.KwUnsafe, token.KwStruct, token.KwEnum,
			token.KwUnion, token.KwType, token.KwUse, token.KwWhere:
			p.skipItem()
		default:
			tok := p.lx.Peek()
			switch {
			case tok.Kind == token.LBrace && ctx.expansion:
				// macro arm body: declarations inside still count as
				// macro-generated, so descend instead of skipping
				p.advance()
				p.parseItems(ctx, token.RBrace)
				p.eat(token.RBrace)
			case tok.OpensDelim():
				p.skipBalancedGroup()
			default:
				// unknown construct: swallow one token and keep scanning
				p.advance()
			}
		}
	}
}

// skipItem consumes a construct we do not model: everything up to a
// semicolon or a braced body at nesting depth zero.
func (p *Parser) skipItem() {
	p.skipToBlockOrSemicolon()
	if p.at(token.LBrace) {
		p.skipBalancedGroup()
		return
	}
	p.eat(token.Semicolon)
}

// parseVisibility consumes pub / pub(crate) / pub(super) / pub(in path).
func (p *Parser) parseVisibility() ast.Visibility {
	if !p.at(token.KwPub) {
		return ast.VisPrivate
	}
	p.advance()
	if p.at(token.LParen) {
		p.skipBalancedGroup()
	}
	return ast.VisPub
}

// skipAttrs consumes leading #[...] and #![...] attributes.
func (p *Parser) skipAttrs() []ast.Attr {
	var attrs []ast.Attr
	for p.at(token.Pound) {
		start := p.lx.Peek().Span
		p.advance()
		inner := false
		if p.at(token.Bang) {
			inner = true
			p.advance()
		}
		if !p.at(token.LBracket) {
			break
		}
		p.skipBalancedGroup()
		attrs = append(attrs, ast.Attr{
			Span:  start.Cover(p.lastSpan),
			Inner: inner,
		})
	}
	return attrs
}
