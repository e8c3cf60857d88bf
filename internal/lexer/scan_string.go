package lexer

import (
	"elide/internal/token"
)

// scanString scans "..." with escapes eaten shallowly (\" \\ \n \xNN \u{...});
// deep escape validation is not this layer's job. Rust string literals may
// span lines, so a newline inside is not an error.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(ReportUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanLifetimeOrChar disambiguates the single quote:
//   - 'x' '\n' '0' → CharLit
//   - 'static 'a '_ → Lifetime (quote + ident, no closing quote)
//
// The rule mirrors rustc: after 'ident, a closing quote one char in means a
// char literal, otherwise it is a lifetime.
func (lx *Lexer) scanLifetimeOrChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''

	b := lx.cursor.Peek()

	// escape sequence is always a char literal
	if b == '\\' {
		return lx.finishCharLit(start)
	}

	if isIdentStartByte(b) || b >= utf8RuneSelf {
		// 'a' → char; 'a2, 'abc, 'a → lifetime
		_, sz := lx.peekRune()
		if after := lx.cursor.Off + uint32(sz); after < lx.cursor.limit() && lx.file.Content[after] == '\'' {
			return lx.finishCharLit(start)
		}
		// consume the lifetime name
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Lifetime, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// '0', '%', etc. — everything else is a char literal
	return lx.finishCharLit(start)
}

// finishCharLit consumes the char body and the closing quote. The opening
// quote is already consumed.
func (lx *Lexer) finishCharLit(start Mark) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\'' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.CharLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(ReportUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// isRawOrByteLiteralStart reports whether the cursor sits on a raw string
// (r"...", r#"..."#), a byte string (b"...", br"...", br#"..."#), or a byte
// char (b'x'). r#ident is a raw identifier, not a raw string.
func isRawOrByteLiteralStart(lx *Lexer) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok {
		return false
	}
	switch b0 {
	case 'r':
		if b1 == '"' {
			return true
		}
		if b1 == '#' {
			// r#" or r##... → raw string; r#ident → raw identifier
			if _, _, b2, ok3 := lx.cursor.Peek3(); ok3 {
				return b2 == '"' || b2 == '#'
			}
		}
	case 'b':
		if b1 == '"' || b1 == '\'' {
			return true
		}
		if b1 == 'r' {
			if _, _, b2, ok3 := lx.cursor.Peek3(); ok3 {
				return b2 == '"' || b2 == '#'
			}
		}
	}
	return false
}

// scanRawOrByteLiteral handles r"...", r#"..."#, b"...", b'x', br"..." and
// friends. All string forms lex as StringLit, b'x' as CharLit; Text keeps the
// full source slice including prefixes and hashes.
func (lx *Lexer) scanRawOrByteLiteral() token.Token {
	start := lx.cursor.Mark()

	raw := false
	if lx.cursor.Peek() == 'b' {
		lx.cursor.Bump()
		if lx.cursor.Peek() == '\'' {
			lx.cursor.Bump()
			return lx.finishCharLit(start)
		}
		raw = lx.cursor.Eat('r')
	} else {
		lx.cursor.Bump() // 'r'
		raw = true
	}

	if !raw {
		// b"...": same shape as a plain string
		return lx.finishPlainString(start)
	}

	// count hashes, then require the opening quote
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	if !lx.cursor.Eat('"') {
		sp := lx.cursor.SpanFrom(start)
		lx.report(ReportUnterminatedRawString, sp, "expected '\"' in raw string literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// body runs to '"' followed by the same number of hashes; no escapes in raw strings
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		end := lx.cursor.Mark()
		matched := true
		for i := 0; i < hashes; i++ {
			if !lx.cursor.Eat('#') {
				matched = false
				break
			}
		}
		if matched {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Reset(end)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(ReportUnterminatedRawString, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// finishPlainString consumes a "..." body after the prefix; the opening quote
// has not been consumed yet.
func (lx *Lexer) finishPlainString(start Mark) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(ReportUnterminatedString, sp, "unterminated byte string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
