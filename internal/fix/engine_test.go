package fix

import (
	"os"
	"path/filepath"
	"testing"

	"elide/internal/diag"
	"elide/internal/source"
)

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(""))
	span := source.Span{File: fileID, Start: 0, End: 0}

	diagnostics := []diag.Diagnostic{{
		Code:    diag.LntRedundantStaticConst,
		Message: "redundant lifetime",
		Primary: span,
		Fixes: []diag.Fix{
			{
				ID:    "fix-duplicate",
				Title: "remove lifetime",
				Edits: []diag.TextEdit{{Span: span, NewText: "&"}},
			},
			{
				ID:    "fix-duplicate",
				Title: "remove lifetime again",
				Edits: []diag.TextEdit{{Span: span, NewText: "&"}},
			},
		},
	}}

	ctx := diag.FixBuildContext{FileSet: fs}
	candidates, skips := gatherCandidates(ctx, diagnostics)

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 1 {
		t.Fatalf("expected 1 skipped fix, got %d", len(skips))
	}
	skip := skips[0]
	if skip.ID != "fix-duplicate" {
		t.Fatalf("expected skipped fix id 'fix-duplicate', got %q", skip.ID)
	}
	if skip.Reason != "duplicate fix id" {
		t.Fatalf("expected duplicate fix reason, got %q", skip.Reason)
	}
}

func writeTempSource(t *testing.T, content string) (*source.FileSet, source.FileID, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	fs := source.NewFileSetWithBase(dir)
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load temp file: %v", err)
	}
	return fs, fileID, path
}

func TestApplyAllRewritesFile(t *testing.T) {
	content := `const FOO: &'static str = "foo";` + "\n"
	fs, fileID, path := writeTempSource(t, content)

	refSpan := source.Span{File: fileID, Start: 11, End: 23} // &'static str
	d := diag.NewWarning(diag.LntRedundantStaticConst, source.Span{File: fileID, Start: 12, End: 19}, "redundant lifetime")
	d.Fixes = []diag.Fix{ReplaceSpan("remove 'static", refSpan, "&str", "&'static str", WithID("f1"))}

	result, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(result.Applied))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := `const FOO: &str = "foo";` + "\n"
	if string(got) != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
}

func TestApplySkipsGuardMismatch(t *testing.T) {
	content := `const FOO: &'static str = "foo";` + "\n"
	fs, fileID, path := writeTempSource(t, content)

	refSpan := source.Span{File: fileID, Start: 11, End: 23}
	d := diag.NewWarning(diag.LntRedundantStaticConst, refSpan, "redundant lifetime")
	d.Fixes = []diag.Fix{ReplaceSpan("remove 'static", refSpan, "&str", "&'a str", WithID("f1"))}

	result, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if err == nil {
		t.Fatal("expected ErrNoFixes when the guard mismatches")
	}
	if len(result.Skipped) == 0 {
		t.Fatal("expected a skipped fix")
	}
	got, _ := os.ReadFile(path)
	if string(got) != content {
		t.Error("file should be untouched on guard mismatch")
	}
}

func TestApplySkipsConflictingFixes(t *testing.T) {
	content := `static A: &'static [u8] = b"a";` + "\n"
	fs, fileID, _ := writeTempSource(t, content)

	refSpan := source.Span{File: fileID, Start: 10, End: 23} // &'static [u8]
	d1 := diag.NewWarning(diag.LntRedundantStaticStatic, refSpan, "first")
	d1.Fixes = []diag.Fix{ReplaceSpan("fix one", refSpan, "&[u8]", "&'static [u8]", WithID("f1"))}
	d2 := diag.NewWarning(diag.LntRedundantStaticStatic, refSpan, "second")
	d2.Fixes = []diag.Fix{ReplaceSpan("fix two", refSpan, "&[u8]", "&'static [u8]", WithID("f2"))}

	result, err := Apply(fs, []diag.Diagnostic{d1, d2}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("applied = %d, want 1 (second conflicts)", len(result.Applied))
	}
	foundConflict := false
	for _, s := range result.Skipped {
		if s.ID == "f2" {
			foundConflict = true
		}
	}
	if !foundConflict {
		t.Error("expected the overlapping fix to be skipped")
	}
}

func TestApplyDeleteSpanEdit(t *testing.T) {
	content := `const A: &'static str = "a";` + "\n"
	fs, fileID, path := writeTempSource(t, content)

	span := source.Span{File: fileID, Start: 10, End: 18} // 'static plus the space
	d := diag.NewWarning(diag.LntRedundantStaticConst, span, "redundant lifetime")
	d.Fixes = []diag.Fix{DeleteSpan("drop 'static", span, "'static ", WithID("f1"))}

	result, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(result.Applied))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := `const A: &str = "a";` + "\n"
	if string(got) != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
}

func TestApplyWrapWithEdits(t *testing.T) {
	content := `const A: u8 = 1 + 2;` + "\n"
	fs, fileID, path := writeTempSource(t, content)

	span := source.Span{File: fileID, Start: 14, End: 19} // 1 + 2
	d := diag.NewWarning(diag.SynExpectSemicolon, span, "group the initializer")
	// WrapWith defaults to heuristics-only, which --all refuses to apply
	d.Fixes = []diag.Fix{WrapWith("parenthesize", span, "(", ")",
		WithID("f1"), WithApplicability(diag.FixApplicabilityAlwaysSafe))}

	result, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(result.Applied))
	}
	if result.Applied[0].EditCount != 2 {
		t.Errorf("edit count = %d, want the prefix and suffix insertions", result.Applied[0].EditCount)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := `const A: u8 = (1 + 2);` + "\n"
	if string(got) != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
}

func TestApplyModeIDSelectsOne(t *testing.T) {
	content := `const A: &'static str = "a";` + "\n" + `const B: &'static str = "b";` + "\n"
	fs, fileID, path := writeTempSource(t, content)

	spanA := source.Span{File: fileID, Start: 9, End: 21}
	spanB := source.Span{File: fileID, Start: 38, End: 50}
	dA := diag.NewWarning(diag.LntRedundantStaticConst, spanA, "a")
	dA.Fixes = []diag.Fix{ReplaceSpan("fix a", spanA, "&str", "&'static str", WithID("fix-a"))}
	dB := diag.NewWarning(diag.LntRedundantStaticConst, spanB, "b")
	dB.Fixes = []diag.Fix{ReplaceSpan("fix b", spanB, "&str", "&'static str", WithID("fix-b"))}

	result, err := Apply(fs, []diag.Diagnostic{dA, dB}, ApplyOptions{Mode: ApplyModeID, TargetID: "fix-b"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Applied) != 1 || result.Applied[0].ID != "fix-b" {
		t.Fatalf("applied = %+v, want exactly fix-b", result.Applied)
	}
	got, _ := os.ReadFile(path)
	want := `const A: &'static str = "a";` + "\n" + `const B: &str = "b";` + "\n"
	if string(got) != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
}

func TestApplyRejectsVirtualFiles(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("mem.rs", []byte(`const A: &'static str = "a";`))
	refSpan := source.Span{File: fileID, Start: 9, End: 21}
	d := diag.NewWarning(diag.LntRedundantStaticConst, refSpan, "a")
	d.Fixes = []diag.Fix{ReplaceSpan("fix a", refSpan, "&str", "&'static str", WithID("f1"))}

	result, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if err == nil {
		t.Fatal("expected ErrNoFixes for a virtual file")
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("skipped = %+v, want a virtual-file skip", result.Skipped)
	}
}
