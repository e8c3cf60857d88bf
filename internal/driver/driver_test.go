package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"elide/internal/diag"
	"elide/internal/diagfmt"
	"elide/internal/token"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func countLintWarnings(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == diag.LntRedundantStaticConst || d.Code == diag.LntRedundantStaticStatic {
			n++
		}
	}
	return n
}

func TestLintPathSingleFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib.rs": "const FOO: &'static str = \"foo\";\n",
	})

	_, result, err := LintPath(filepath.Join(root, "lib.rs"), Options{MaxDiagnostics: 16})
	if err != nil {
		t.Fatalf("LintPath: %v", err)
	}
	if got := countLintWarnings(result.Bag); got != 1 {
		t.Errorf("warnings = %d, want 1", got)
	}
	if result.FromCache {
		t.Error("uncached run must not report FromCache")
	}
}

func TestLintDirWalksAndSorts(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.rs":        "const B: &'static str = \"b\";\n",
		"a.rs":        "const A: u8 = 1;\n",
		"sub/c.rs":    "static C: &'static [u8] = b\"c\";\n",
		"README.md":   "not rust\n",
		"target/d.rs": "const D: &'static str = \"d\";\n",
	})

	_, results, err := LintDir(context.Background(), root, Options{
		MaxDiagnostics: 16,
		Exclude:        []string{"target"},
	})
	if err != nil {
		t.Fatalf("LintDir: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("results = %d, want 3 (target excluded, README skipped)", len(results))
	}
	// sorted order: a.rs, b.rs, sub/c.rs
	if filepath.Base(results[0].Path) != "a.rs" || filepath.Base(results[1].Path) != "b.rs" {
		t.Errorf("order = %q, %q", results[0].Path, results[1].Path)
	}

	total := 0
	for _, r := range results {
		total += countLintWarnings(r.Bag)
	}
	if total != 2 {
		t.Errorf("total warnings = %d, want 2", total)
	}
}

func TestLintDirEmpty(t *testing.T) {
	root := t.TempDir()
	_, results, err := LintDir(context.Background(), root, Options{MaxDiagnostics: 4})
	if err != nil {
		t.Fatalf("LintDir: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestLintDirProgressEvents(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.rs": "const A: u8 = 1;\n",
		"b.rs": "const B: u8 = 2;\n",
	})

	var mu sync.Mutex
	var events []ProgressEvent
	_, _, err := LintDir(context.Background(), root, Options{
		MaxDiagnostics: 4,
		Progress: func(ev ProgressEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("LintDir: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Total != 2 {
			t.Errorf("total = %d, want 2", ev.Total)
		}
		if ev.Stage != StageFileDone {
			t.Errorf("stage = %v, want StageFileDone", ev.Stage)
		}
	}
}

func TestLintDirCanceledContext(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.rs": "const A: u8 = 1;\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := LintDir(ctx, root, Options{MaxDiagnostics: 4})
	if err == nil {
		t.Error("expected context error")
	}
}

func TestLintDirLoadErrorHasRealFile(t *testing.T) {
	root := t.TempDir()
	if err := os.Symlink(filepath.Join(root, "missing.rs"), filepath.Join(root, "broken.rs")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	fs, results, err := LintDir(context.Background(), root, Options{MaxDiagnostics: 16})
	if err != nil {
		t.Fatalf("LintDir: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	bag := results[0].Bag
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.IOLoadFileError {
		t.Fatalf("code = %v, want IOLoadFileError", d.Code)
	}
	file := fs.Get(d.Primary.File)
	if filepath.Base(file.Path) != "broken.rs" {
		t.Errorf("diagnostic file = %q, want broken.rs", file.Path)
	}

	// rendering must resolve the span of the stand-in file
	var out bytes.Buffer
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename})
	if !strings.Contains(out.String(), "broken.rs:1:1") {
		t.Errorf("rendered output %q should anchor at broken.rs:1:1", out.String())
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")
	cache, err := OpenDiskCacheAt(cacheDir)
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	root := writeTree(t, map[string]string{
		"lib.rs": "const FOO: &'static str = \"foo\";\n",
	})
	opts := Options{MaxDiagnostics: 16, Cache: cache}

	_, first, err := LintPath(filepath.Join(root, "lib.rs"), opts)
	if err != nil {
		t.Fatalf("first LintPath: %v", err)
	}
	if first.FromCache {
		t.Fatal("first run must miss the cache")
	}

	_, second, err := LintPath(filepath.Join(root, "lib.rs"), opts)
	if err != nil {
		t.Fatalf("second LintPath: %v", err)
	}
	if !second.FromCache {
		t.Fatal("second run must hit the cache")
	}

	if countLintWarnings(first.Bag) != countLintWarnings(second.Bag) {
		t.Error("cached diagnostics must match the fresh run")
	}

	firstItems := first.Bag.Items()
	secondItems := second.Bag.Items()
	if len(firstItems) != len(secondItems) {
		t.Fatalf("item counts differ: %d vs %d", len(firstItems), len(secondItems))
	}
	for i := range firstItems {
		f, s := firstItems[i], secondItems[i]
		if f.Code != s.Code || f.Message != s.Message ||
			f.Primary.Start != s.Primary.Start || f.Primary.End != s.Primary.End {
			t.Errorf("item %d differs: %+v vs %+v", i, f, s)
		}
		if len(f.Fixes) != len(s.Fixes) {
			t.Errorf("item %d fix counts differ", i)
		}
	}
}

func TestDiskCacheInvalidatedByContentChange(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")
	cache, err := OpenDiskCacheAt(cacheDir)
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	root := writeTree(t, map[string]string{
		"lib.rs": "const FOO: &'static str = \"foo\";\n",
	})
	path := filepath.Join(root, "lib.rs")
	opts := Options{MaxDiagnostics: 16, Cache: cache}

	if _, _, err := LintPath(path, opts); err != nil {
		t.Fatalf("LintPath: %v", err)
	}

	if err := os.WriteFile(path, []byte("const FOO: &str = \"foo\";\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	_, result, err := LintPath(path, opts)
	if err != nil {
		t.Fatalf("LintPath after edit: %v", err)
	}
	if result.FromCache {
		t.Error("changed content must miss the cache")
	}
	if got := countLintWarnings(result.Bag); got != 0 {
		t.Errorf("warnings = %d, want 0 after fix", got)
	}
}

func TestDiskCacheSchemaMismatchIgnored(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := [32]byte{1, 2, 3}
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var payload DiskPayload
	found, err := cache.Get(key, &payload)
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if _, ok := bagFromPayload(&payload, 1, 4); ok {
		t.Error("mismatched schema must be rejected")
	}
}

func TestTimingsDiagnosticAttached(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib.rs": "const A: u8 = 1;\n",
	})

	_, result, err := LintPath(filepath.Join(root, "lib.rs"), Options{MaxDiagnostics: 16, Timings: true})
	if err != nil {
		t.Fatalf("LintPath: %v", err)
	}

	found := false
	for _, d := range result.Bag.Items() {
		if d.Code == diag.ObsTimings {
			found = true
			if len(d.Notes) != 2 {
				t.Errorf("timing notes = %d, want 2", len(d.Notes))
			}
		}
	}
	if !found {
		t.Error("expected an ObsTimings diagnostic")
	}
}

func TestTokenizeFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib.rs": "const A: u8 = 1;\n",
	})

	result, err := TokenizeFile(filepath.Join(root, "lib.rs"), 4)
	if err != nil {
		t.Fatalf("TokenizeFile: %v", err)
	}
	if len(result.Tokens) == 0 {
		t.Fatal("no tokens")
	}
	if result.Tokens[0].Kind != token.KwConst {
		t.Errorf("first token = %v", result.Tokens[0].Kind)
	}
	if result.Tokens[len(result.Tokens)-1].Kind != token.EOF {
		t.Error("stream must end with EOF")
	}
}
