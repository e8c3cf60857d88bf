package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"elide/internal/diag"
	"elide/internal/fix"
	"elide/internal/source"
)

func buildFixtureBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("const FOO: &'static str = \"foo\";\n")
	fileID := fs.AddVirtual("lib.rs", content)

	refSpan := source.Span{File: fileID, Start: 11, End: 23}
	d := diag.New(
		diag.SevWarning,
		diag.LntRedundantStaticConst,
		source.Span{File: fileID, Start: 12, End: 19},
		"Constants have by default a `'static` lifetime",
	).
		WithNote(source.Span{File: fileID, Start: 6, End: 9}, "declared here").
		WithFixSuggestion(fix.ReplaceSpan(
			"consider removing `'static`",
			refSpan, "&str", "&'static str",
			fix.WithID("LNT3001-1-12"),
			fix.Preferred(),
		))

	bag := diag.NewBag(4)
	bag.Add(d)
	return bag, fs
}

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, fs := buildFixtureBag(t)

	output, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})
	if err != nil {
		t.Fatalf("BuildDiagnosticsOutput: %v", err)
	}

	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", output.Count, len(output.Diagnostics))
	}
	d := output.Diagnostics[0]
	if d.Severity != "WARNING" {
		t.Errorf("severity = %q", d.Severity)
	}
	if d.Code != "LNT3001" {
		t.Errorf("code = %q", d.Code)
	}
	if d.Location.File != "lib.rs" || d.Location.StartByte != 12 || d.Location.EndByte != 19 {
		t.Errorf("location = %+v", d.Location)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 13 {
		t.Errorf("position = %d:%d", d.Location.StartLine, d.Location.StartCol)
	}

	if len(d.Notes) != 1 || d.Notes[0].Message != "declared here" {
		t.Fatalf("notes = %+v", d.Notes)
	}

	if len(d.Fixes) != 1 {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	f := d.Fixes[0]
	if f.ID != "LNT3001-1-12" || !f.IsPreferred {
		t.Errorf("fix meta = %+v", f)
	}
	if f.Applicability != "always-safe" {
		t.Errorf("applicability = %q", f.Applicability)
	}
	if len(f.Edits) != 1 {
		t.Fatalf("edits = %+v", f.Edits)
	}
	edit := f.Edits[0]
	if edit.NewText != "&str" || edit.OldText != "&'static str" {
		t.Errorf("edit = %+v", edit)
	}
	if len(edit.BeforeLines) != 1 || edit.BeforeLines[0] != "const FOO: &'static str = \"foo\";" {
		t.Errorf("before lines = %+v", edit.BeforeLines)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != "const FOO: &str = \"foo\";" {
		t.Errorf("after lines = %+v", edit.AfterLines)
	}
}

func TestJSONRoundTrips(t *testing.T) {
	bag, fs := buildFixtureBag(t)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeFixes: true})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Count != 1 {
		t.Errorf("count = %d", decoded.Count)
	}
}

func TestJSONMaxTruncatesOutputOnly(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("lib.rs", []byte("const A: u8 = 1;\nconst B: u8 = 2;\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevWarning, diag.LntRedundantStaticConst, source.Span{File: fileID, Start: 0, End: 5}, "first"))
	bag.Add(diag.New(diag.SevWarning, diag.LntRedundantStaticConst, source.Span{File: fileID, Start: 17, End: 22}, "second"))

	output, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if err != nil {
		t.Fatalf("BuildDiagnosticsOutput: %v", err)
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Errorf("truncated output = %+v", output)
	}
	if bag.Len() != 2 {
		t.Errorf("bag must not be truncated, len = %d", bag.Len())
	}
}
