package parser

import (
	"elide/internal/diag"
	"elide/internal/source"
	"elide/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat consumes the next token if it matches; no diagnostic either way.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// getDiagnosticSpan returns the best span for a diagnostic. When the current
// token is EOF or a zero-length Invalid, the position right after lastSpan
// reads better.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if (peek.Kind == token.EOF || peek.Kind == token.Invalid) && peek.Span.Start == peek.Span.End {
		if p.lastSpan.End > 0 {
			return source.Span{
				File:  p.lastSpan.File,
				Start: p.lastSpan.End,
				End:   p.lastSpan.End,
			}
		}
	}
	return peek.Span
}

// expect requires a specific token; on mismatch reports and returns
// (invalid, false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// reportWithFix reports a diagnostic that carries a suggested fix.
func (p *Parser) reportWithFix(code diag.Code, sev diag.Severity, sp source.Span, msg string, f diag.Fix) bool {
	if p.opts.Reporter != nil {
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil, []diag.Fix{f})
			return true
		}
	}
	return false
}

// err reports an error at the current position.
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter != nil {
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
			return true
		}
		return false
	}
	return false
}

// parseIdent expects an identifier (or _) and interns it.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at_or(token.Ident, token.Underscore) {
		tok := p.advance()
		id := p.arenas.StringsInterner.Intern(tok.Text)
		return id, tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return source.NoStringID, p.getDiagnosticSpan(), false
}

// skipBalancedGroup consumes an opening delimiter and everything up to its
// matching closer. Shr counts as two angle closers but never participates in
// (), [], {} balance, so it is ignored here. Unbalanced input is reported
// once and the scan stops at EOF.
func (p *Parser) skipBalancedGroup() {
	if !p.lx.Peek().OpensDelim() && !p.at(token.Lt) {
		return
	}
	openTok := p.advance()
	depth := 1
	angle := 0
	if openTok.Kind == token.Lt {
		angle = 1
		depth = 0
	}
	for depth > 0 || angle > 0 {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, openTok.Span, "unclosed delimiter")
			return
		case tok.OpensDelim():
			depth++
		case tok.ClosesDelim():
			depth--
		case tok.Kind == token.Lt && depth == 0:
			angle++
		case tok.Kind == token.Gt && depth == 0:
			angle--
		case tok.Kind == token.Shr && depth == 0:
			angle -= 2
		}
		p.advance()
	}
}

// skipToBlock consumes tokens until an LBrace at depth zero (or EOF). Generic
// angle brackets on the way are skipped balanced so `impl<T: Into<U>>` does
// not confuse the scan.
func (p *Parser) skipToBlock() {
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF, token.LBrace:
			return
		case token.Lt, token.LParen, token.LBracket:
			p.skipBalancedGroup()
		default:
			p.advance()
		}
	}
}

// skipToBlockOrSemicolon stops at LBrace, Semicolon or EOF at depth zero.
func (p *Parser) skipToBlockOrSemicolon() {
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF, token.LBrace, token.Semicolon:
			return
		case token.Lt, token.LParen, token.LBracket:
			p.skipBalancedGroup()
		default:
			p.advance()
		}
	}
}

// skipToSemicolon consumes an expression up to the terminating ';' at depth
// zero, honoring (), [], {} nesting. Returns the span covered. A stray RBrace
// also stops the scan so a missing semicolon cannot eat the enclosing block.
func (p *Parser) skipToSemicolon() source.Span {
	start := p.lx.Peek().Span
	covered := start
	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF, tok.Kind == token.Semicolon, tok.Kind == token.RBrace:
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
