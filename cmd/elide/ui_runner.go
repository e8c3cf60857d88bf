package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"elide/internal/driver"
	"elide/internal/source"
	"elide/internal/ui"
)

type lintOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runLintDirWithUI runs LintDir with a Bubble Tea progress view. Lint output
// printing is left to the caller; the view only tracks per-file completion.
func runLintDirWithUI(ctx context.Context, title, dir string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListRustFiles(dir, opts.Exclude)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(ev driver.ProgressEvent) { events <- ev }
		fs, results, lintErr := driver.LintDir(ctx, dir, optsCopy)
		outcomeCh <- lintOutcome{fileSet: fs, results: results, err: lintErr}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
