package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"elide/internal/diag"
	"elide/internal/source"
)

// palette holds the per-severity colorizers. Disabled palettes return the
// input unchanged so the printer has a single code path.
type palette struct {
	severity func(diag.Severity) func(a ...interface{}) string
	code     func(a ...interface{}) string
	gutter   func(a ...interface{}) string
	caret    func(a ...interface{}) string
	help     func(a ...interface{}) string
}

func plain(a ...interface{}) string { return fmt.Sprint(a...) }

func newPalette(enabled bool) palette {
	if !enabled {
		sev := func(diag.Severity) func(a ...interface{}) string { return plain }
		return palette{severity: sev, code: plain, gutter: plain, caret: plain, help: plain}
	}
	errColor := color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor := color.New(color.FgYellow, color.Bold).SprintFunc()
	infoColor := color.New(color.FgCyan, color.Bold).SprintFunc()
	return palette{
		severity: func(s diag.Severity) func(a ...interface{}) string {
			switch s {
			case diag.SevError:
				return errColor
			case diag.SevWarning:
				return warnColor
			default:
				return infoColor
			}
		},
		code:   color.New(color.Bold).SprintFunc(),
		gutter: color.New(color.FgBlue).SprintFunc(),
		caret:  color.New(color.FgGreen, color.Bold).SprintFunc(),
		help:   color.New(color.FgCyan).SprintFunc(),
	}
}

// Pretty formats diagnostics for humans. Walks bag.Items() in order (the
// caller is expected to bag.Sort() beforehand). Each diagnostic prints
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline covering the span,
// optional surrounding context lines, then notes and fix suggestions.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		printDiagnostic(w, fs, d, opts, pal)
	}
}

func printDiagnostic(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts, pal palette) {
	path := formatPath(fs, d.Primary.File, opts.PathMode)
	startPos, endPos := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, startPos.Line, startPos.Col,
		pal.severity(d.Severity)(d.Severity.String()),
		pal.code(d.Code.ID()),
		d.Message,
	)

	printContext(w, fs, d.Primary, startPos, endPos, opts, pal)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			notePos, _ := fs.Resolve(note.Span)
			notePath := formatPath(fs, note.Span.File, opts.PathMode)
			fmt.Fprintf(w, "  %s %s at %s:%d:%d\n",
				pal.help("note:"), note.Msg, notePath, notePos.Line, notePos.Col)
		}
	}

	if opts.ShowFixes && len(d.Fixes) > 0 {
		printFixes(w, fs, d.Fixes, opts, pal)
	}
}

// printContext renders the primary line plus up to opts.Context lines on
// each side, with the underline directly below the span's first line.
func printContext(w io.Writer, fs *source.FileSet, span source.Span, startPos, endPos source.LineCol, opts PrettyOpts, pal palette) {
	file := fs.Get(span.File)
	if file == nil {
		return
	}

	context := int(opts.Context)
	if context < 0 {
		context = 0
	}
	firstLine := int(startPos.Line) - context
	if firstLine < 1 {
		firstLine = 1
	}
	lastLine := int(startPos.Line) + context

	for lineNum := firstLine; lineNum <= lastLine; lineNum++ {
		line := file.GetLine(uint32(lineNum))
		if line == "" && lineNum > int(startPos.Line) {
			break
		}
		rendered := clipLine(line, opts.Width)
		fmt.Fprintf(w, "  %s %s\n", pal.gutter(fmt.Sprintf("%4d |", lineNum)), rendered)
		if lineNum == int(startPos.Line) {
			fmt.Fprintf(w, "  %s %s\n", pal.gutter("     |"), pal.caret(underline(line, startPos, endPos)))
		}
	}
}

// underline builds the ^~~~ marker for the span's first line. Column math is
// display-width aware so the caret lands under wide runes too.
func underline(line string, startPos, endPos source.LineCol) string {
	startCol := int(startPos.Col)
	if startCol < 1 {
		startCol = 1
	}
	endCol := int(endPos.Col)
	if endPos.Line != startPos.Line || endCol <= startCol {
		endCol = startCol + 1
	}

	runes := []rune(line)
	pad := 0
	for i := 0; i < startCol-1 && i < len(runes); i++ {
		if runes[i] == '\t' {
			pad += 4
			continue
		}
		pad += runewidth.RuneWidth(runes[i])
	}
	width := 0
	for i := startCol - 1; i < endCol-1 && i < len(runes); i++ {
		width += runewidth.RuneWidth(runes[i])
	}
	if width < 1 {
		width = 1
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}

func clipLine(line string, width uint8) string {
	if width == 0 {
		return expandTabs(line)
	}
	return runewidth.Truncate(expandTabs(line), int(width), "…")
}

func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", "    ")
}

func printFixes(w io.Writer, fs *source.FileSet, fixes []diag.Fix, opts PrettyOpts, pal palette) {
	ctx := diag.FixBuildContext{FileSet: fs}
	for _, f := range fixes {
		resolved, err := f.Resolve(ctx)
		if err != nil {
			fmt.Fprintf(w, "  %s %s (unavailable: %v)\n", pal.help("help:"), f.Title, err)
			continue
		}
		suffix := ""
		if resolved.Applicability == diag.FixApplicabilityAlwaysSafe {
			suffix = " (auto-applicable)"
		}
		fmt.Fprintf(w, "  %s %s%s\n", pal.help("help:"), resolved.Title, suffix)
		if !opts.ShowPreview {
			continue
		}
		for _, edit := range resolved.Edits {
			preview, previewErr := buildFixEditPreview(fs, edit)
			if previewErr != nil {
				continue
			}
			for _, l := range preview.before {
				fmt.Fprintf(w, "    - %s\n", clipLine(l, opts.Width))
			}
			for _, l := range preview.after {
				fmt.Fprintf(w, "    + %s\n", clipLine(l, opts.Width))
			}
		}
	}
}

func formatPath(fs *source.FileSet, fileID source.FileID, mode PathMode) string {
	f := fs.Get(fileID)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
