package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the fallback for uncategorized diagnostics.
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexUnterminatedRawString    Code = 1006

	// Syntactic
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectSemicolon    Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectColon        Code = 2005
	SynExpectType         Code = 2006
	SynExpectRightBracket Code = 2007
	SynExpectRightParen   Code = 2008
	SynExpectInitializer  Code = 2009

	// Lint findings
	LntInfo                  Code = 3000
	LntRedundantStaticConst  Code = 3001
	LntRedundantStaticStatic Code = 3002

	// IO
	IOLoadFileError Code = 4001

	// Project / manifest
	ProjInfo            Code = 5000
	ProjInvalidManifest Code = 5001
	ProjUnknownKey      Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown diagnostic",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexUnterminatedRawString:    "Unterminated raw string literal",
	SynInfo:                     "Syntactic information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectColon:              "Expected ':'",
	SynExpectType:               "Expected type",
	SynExpectRightBracket:       "Expected ']'",
	SynExpectRightParen:         "Expected ')'",
	SynExpectInitializer:        "Expected initializer expression",
	LntInfo:                     "Lint information",
	LntRedundantStaticConst:     "Redundant 'static lifetime on constant",
	LntRedundantStaticStatic:    "Redundant 'static lifetime on static",
	IOLoadFileError:             "I/O load file error",
	ProjInfo:                    "Project information",
	ProjInvalidManifest:         "Invalid manifest",
	ProjUnknownKey:              "Unknown manifest key",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
