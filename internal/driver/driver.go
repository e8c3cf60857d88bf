// Package driver wires the lexer, parser and lint checker into file and
// directory pipelines, with an optional on-disk result cache.
package driver

import (
	"fmt"
	"time"

	"elide/internal/ast"
	"elide/internal/diag"
	"elide/internal/lexer"
	"elide/internal/lint"
	"elide/internal/parser"
	"elide/internal/source"
)

// Options configures a lint run.
type Options struct {
	// MaxDiagnostics caps every per-file Bag.
	MaxDiagnostics int
	// Jobs limits directory-walk parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Exclude lists directory names skipped during the walk.
	Exclude []string
	// Cache, when set, short-circuits files whose content hash is cached.
	Cache *DiskCache
	// Timings attaches a phase-timing diagnostic to every result.
	Timings bool
	// Progress, when set, receives one event per processed file.
	Progress ProgressFunc
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Builder   *ast.Builder
	ASTFile   ast.FileID
	Bag       *diag.Bag
	FromCache bool
}

// LintFile runs the full pipeline on an already loaded file.
func LintFile(fs *source.FileSet, fileID source.FileID, opts Options) FileResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	file := fs.Get(fileID)

	parseStart := time.Now()
	lx := lexer.New(file, lexer.Options{Reporter: parser.LexReporter{R: reporter}})
	builder := ast.NewBuilder(ast.Hints{})
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: uint(max(opts.MaxDiagnostics, 0)),
	})
	parseElapsed := time.Since(parseStart)

	lintStart := time.Now()
	checker := lint.NewChecker(fs, builder, reporter)
	checker.CheckFile(parsed.File)
	lintElapsed := time.Since(lintStart)

	if opts.Timings {
		bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{File: fileID}, "phase timings").
			WithNote(source.Span{File: fileID}, fmt.Sprintf("parse: %s", parseElapsed)).
			WithNote(source.Span{File: fileID}, fmt.Sprintf("lint: %s", lintElapsed)))
	}

	return FileResult{
		Path:    file.Path,
		FileID:  fileID,
		Builder: builder,
		ASTFile: parsed.File,
		Bag:     bag,
	}
}

// LintPath loads a single file from disk and lints it. The FileSet base
// directory is the file's parent so relative paths stay short.
func LintPath(path string, opts Options) (*source.FileSet, FileResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return fs, FileResult{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return fs, lintWithCache(fs, fileID, opts), nil
}

// lintWithCache consults the disk cache by content hash before running the
// pipeline, and stores fresh results back.
func lintWithCache(fs *source.FileSet, fileID source.FileID, opts Options) FileResult {
	file := fs.Get(fileID)
	if opts.Cache != nil {
		var payload DiskPayload
		if found, err := opts.Cache.Get(file.Hash, &payload); err == nil && found {
			if bag, ok := bagFromPayload(&payload, fileID, opts.MaxDiagnostics); ok {
				return FileResult{
					Path:      file.Path,
					FileID:    fileID,
					Bag:       bag,
					FromCache: true,
				}
			}
		}
	}

	result := LintFile(fs, fileID, opts)

	if opts.Cache != nil {
		// Best effort; a failed write only costs a re-lint next run.
		_ = opts.Cache.Put(file.Hash, bagToPayload(result.Bag))
	}
	return result
}
