package token

var keywords = map[string]Kind{
	"const":       KwConst,
	"static":      KwStatic,
	"mut":         KwMut,
	"fn":          KwFn,
	"impl":        KwImpl,
	"trait":       KwTrait,
	"pub":         KwPub,
	"use":         KwUse,
	"mod":         KwMod,
	"struct":      KwStruct,
	"enum":        KwEnum,
	"union":       KwUnion,
	"type":        KwType,
	"unsafe":      KwUnsafe,
	"extern":      KwExtern,
	"dyn":         KwDyn,
	"where":       KwWhere,
	"for":         KwFor,
	"as":          KwAs,
	"macro_rules": KwMacroRules,
}

// LookupKeyword returns the kind for a keyword and whether the identifier is
// one. Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
