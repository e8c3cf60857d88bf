package parser

import (
	"elide/internal/diag"
	"elide/internal/lexer"
	"elide/internal/source"
)

// LexReporter adapts a diag.Reporter to the lexer's thin reporting interface,
// mapping report kinds onto diagnostic codes. The lexer itself stays free of
// the diag dependency.
type LexReporter struct {
	R diag.Reporter
}

func (r LexReporter) Report(kind string, span source.Span, msg string) {
	if r.R == nil {
		return
	}
	code := diag.LexInfo
	switch kind {
	case lexer.ReportUnknownChar:
		code = diag.LexUnknownChar
	case lexer.ReportUnterminatedString:
		code = diag.LexUnterminatedString
	case lexer.ReportUnterminatedBlockComment:
		code = diag.LexUnterminatedBlockComment
	case lexer.ReportBadNumber:
		code = diag.LexBadNumber
	case lexer.ReportUnterminatedChar:
		code = diag.LexUnterminatedChar
	case lexer.ReportUnterminatedRawString:
		code = diag.LexUnterminatedRawString
	}
	r.R.Report(code, diag.SevError, span, msg, nil, nil)
}
