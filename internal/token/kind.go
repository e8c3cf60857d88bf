package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Lifetime represents a lifetime token such as 'static or 'a.
	Lifetime

	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwUse represents the 'use' keyword.
	KwUse // use
	// KwMod represents the 'mod' keyword.
	KwMod // mod
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwUnion represents the 'union' keyword (contextual in Rust, reserved here).
	KwUnion // union
	// KwType represents the 'type' keyword.
	KwType // type
	// KwUnsafe represents the 'unsafe' keyword.
	KwUnsafe // unsafe
	// KwExtern represents the 'extern' keyword.
	KwExtern // extern
	// KwDyn represents the 'dyn' keyword.
	KwDyn // dyn
	// KwWhere represents the 'where' keyword.
	KwWhere // where
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwMacroRules represents the 'macro_rules' identifier-keyword.
	KwMacroRules // macro_rules

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token (including raw and byte forms).
	StringLit
	// CharLit represents a char or byte literal token.
	CharLit

	// Amp represents the '&' token.
	Amp // &
	// AndAnd represents the '&&' token.
	AndAnd // &&
	// Star represents the '*' token.
	Star // *
	// Colon represents the ':' token.
	Colon // :
	// ColonColon represents the '::' token.
	ColonColon // ::
	// Semicolon represents the ';' token.
	Semicolon // ;
	// Comma represents the ',' token.
	Comma // ,
	// Dot represents the '.' token.
	Dot // .
	// Assign represents the '=' token.
	Assign // =
	// Arrow represents the '->' token.
	Arrow // ->
	// FatArrow represents the '=>' token.
	FatArrow // =>
	// Lt represents the '<' token.
	Lt // <
	// Gt represents the '>' token.
	Gt // >
	// Shr represents the '>>' token.
	Shr // >>
	// LParen represents the '(' token.
	LParen // (
	// RParen represents the ')' token.
	RParen // )
	// LBrace represents the '{' token.
	LBrace // {
	// RBrace represents the '}' token.
	RBrace // }
	// LBracket represents the '[' token.
	LBracket // [
	// RBracket represents the ']' token.
	RBracket // ]
	// Pound represents the '#' token (attributes).
	Pound // #
	// Bang represents the '!' token.
	Bang // !
	// Question represents the '?' token.
	Question // ?
	// Plus represents the '+' token.
	Plus // +
	// Minus represents the '-' token.
	Minus // -
	// Slash represents the '/' token.
	Slash // /
	// Percent represents the '%' token.
	Percent // %
	// Pipe represents the '|' token.
	Pipe // |
	// Caret represents the '^' token.
	Caret // ^
	// At represents the '@' token.
	At // @
	// Underscore represents a lone '_' token.
	Underscore // _
	// DotDot represents the '..' token.
	DotDot // ..
	// DotDotEq represents the '..=' token.
	DotDotEq // ..=
	// DotDotDot represents the '...' token.
	DotDotDot // ...
	// Dollar represents the '$' token (macro fragments).
	Dollar // $
)

var kindNames = map[Kind]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	Lifetime:     "Lifetime",
	KwConst:      "const",
	KwStatic:     "static",
	KwMut:        "mut",
	KwFn:         "fn",
	KwImpl:       "impl",
	KwTrait:      "trait",
	KwPub:        "pub",
	KwUse:        "use",
	KwMod:        "mod",
	KwStruct:     "struct",
	KwEnum:       "enum",
	KwUnion:      "union",
	KwType:       "type",
	KwUnsafe:     "unsafe",
	KwExtern:     "extern",
	KwDyn:        "dyn",
	KwWhere:      "where",
	KwFor:        "for",
	KwAs:         "as",
	KwMacroRules: "macro_rules",
	IntLit:       "IntLit",
	FloatLit:     "FloatLit",
	StringLit:    "StringLit",
	CharLit:      "CharLit",
	Amp:          "&",
	AndAnd:       "&&",
	Star:         "*",
	Colon:        ":",
	ColonColon:   "::",
	Semicolon:    ";",
	Comma:        ",",
	Dot:          ".",
	Assign:       "=",
	Arrow:        "->",
	FatArrow:     "=>",
	Lt:           "<",
	Gt:           ">",
	Shr:          ">>",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	LBracket:     "[",
	RBracket:     "]",
	Pound:        "#",
	Bang:         "!",
	Question:     "?",
	Plus:         "+",
	Minus:        "-",
	Slash:        "/",
	Percent:      "%",
	Pipe:         "|",
	Caret:        "^",
	At:           "@",
	Underscore:   "_",
	DotDot:       "..",
	DotDotEq:     "..=",
	DotDotDot:    "...",
	Dollar:       "$",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
