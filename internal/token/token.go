package token

import (
	"elide/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string, or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a keyword of the recognized subset.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwConst, KwStatic, KwMut, KwFn, KwImpl, KwTrait, KwPub, KwUse, KwMod,
		KwStruct, KwEnum, KwUnion, KwType, KwUnsafe, KwExtern, KwDyn, KwWhere,
		KwFor, KwAs, KwMacroRules:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// OpensDelim reports whether the token opens a bracket pair.
func (t Token) OpensDelim() bool {
	switch t.Kind {
	case LParen, LBrace, LBracket:
		return true
	default:
		return false
	}
}

// ClosesDelim reports whether the token closes a bracket pair.
func (t Token) ClosesDelim() bool {
	switch t.Kind {
	case RParen, RBrace, RBracket:
		return true
	default:
		return false
	}
}
