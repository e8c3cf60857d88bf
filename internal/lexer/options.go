package lexer

import (
	"elide/internal/source"
)

// Reporter is a thin interface so the lexer does not depend on diag.
// The lexer only calls it with raw parameters; the outer layer decides how
// to turn them into diagnostics.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Report kinds passed to Reporter.Report.
const (
	ReportUnterminatedBlockComment = "UnterminatedBlockComment"
	ReportUnterminatedString       = "UnterminatedString"
	ReportUnterminatedChar         = "UnterminatedChar"
	ReportUnterminatedRawString    = "UnterminatedRawString"
	ReportBadNumber                = "BadNumber"
	ReportUnknownChar              = "UnknownChar"
)

type Options struct {
	Reporter Reporter // may be nil; errors are dropped but lexing continues
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
