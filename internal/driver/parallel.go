package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"elide/internal/diag"
	"elide/internal/source"
)

// ProgressStage identifies what a progress event reports.
type ProgressStage uint8

const (
	// StageFileDone fires after a file finished the pipeline.
	StageFileDone ProgressStage = iota
	// StageFileCached fires when a file was served from the disk cache.
	StageFileCached
	// StageFileFailed fires when a file could not be loaded.
	StageFileFailed
)

// ProgressEvent describes one processed file out of the total.
type ProgressEvent struct {
	Stage ProgressStage
	Path  string
	Index int
	Total int
}

// ProgressFunc receives events from LintDir. Called from worker goroutines;
// implementations must be safe for concurrent use.
type ProgressFunc func(ProgressEvent)

// ListRustFiles returns a sorted list of all *.rs files under dir, skipping
// excluded directory names. LintDir processes exactly this list, in this
// order.
func ListRustFiles(dir string, exclude []string) ([]string, error) {
	return listRustFiles(dir, exclude)
}

func listRustFiles(dir string, exclude []string) ([]string, error) {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && excluded[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".rs") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// deterministic order
	sort.Strings(files)
	return files, nil
}

// LintDir lints every *.rs file under dir in parallel. Results come back in
// the sorted file order regardless of scheduling.
func LintDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := listRustFiles(dir, opts.Exclude)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload sequentially: the FileSet is not safe for concurrent mutation.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			// register an empty stand-in so the error diagnostic points at
			// the failing path and renderers can resolve its span
			fileIDs[path] = fileSet.AddVirtual(path, nil)
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes its own index, no mutex needed.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.New(
					diag.SevError,
					diag.IOLoadFileError,
					source.Span{File: fileIDs[path]},
					"failed to load file: "+loadErr.Error(),
				))
				results[i] = FileResult{Path: path, FileID: fileIDs[path], Bag: bag}
				emitProgress(opts.Progress, StageFileFailed, path, i, len(files))
				return nil
			}

			results[i] = lintWithCache(fileSet, fileIDs[path], opts)
			results[i].Path = path

			stage := StageFileDone
			if results[i].FromCache {
				stage = StageFileCached
			}
			emitProgress(opts.Progress, stage, path, i, len(files))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func emitProgress(fn ProgressFunc, stage ProgressStage, path string, index, total int) {
	if fn == nil {
		return
	}
	fn(ProgressEvent{Stage: stage, Path: path, Index: index, Total: total})
}
