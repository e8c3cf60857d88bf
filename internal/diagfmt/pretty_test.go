package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"elide/internal/diag"
	"elide/internal/fix"
	"elide/internal/source"
)

func singleDiagnosticBag(fileID source.FileID) *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevWarning,
		diag.LntRedundantStaticConst,
		source.Span{File: fileID, Start: 12, End: 19},
		"Constants have by default a `'static` lifetime",
	))
	return bag
}

func TestPrettyPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("const FOO: &'static str = \"foo\";\n")
	fileID := fs.AddVirtual("/home/user/project/src/lib.rs", content)

	bag := singleDiagnosticBag(fileID)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute path", PathModeAbsolute, "/home/user/project/src/lib.rs"},
		{"relative path", PathModeRelative, "src/lib.rs"},
		{"basename only", PathModeBasename, "lib.rs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Color: false, Context: 0, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "WARNING") {
				t.Error("expected WARNING in output")
			}
			if !strings.Contains(output, "LNT3001") {
				t.Error("expected LNT3001 code in output")
			}
			if !strings.Contains(output, "Constants have by default") {
				t.Error("expected message in output")
			}
		})
	}
}

func TestPrettyUnderlineCoversSpan(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const FOO: &'static str = \"foo\";\n")
	fileID := fs.AddVirtual("lib.rs", content)

	bag := singleDiagnosticBag(fileID)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: false, Context: 0, PathMode: PathModeBasename})
	output := buf.String()

	if !strings.Contains(output, "lib.rs:1:13: WARNING LNT3001:") {
		t.Fatalf("unexpected header:\n%s", output)
	}
	if !strings.Contains(output, "const FOO: &'static str") {
		t.Errorf("expected the source line, got:\n%s", output)
	}
	// span 12..19 is 'static: caret plus six tildes starting at column 13
	if !strings.Contains(output, "^~~~~~~") {
		t.Errorf("expected underline, got:\n%s", output)
	}
}

func TestPrettyShowsFixesAndPreview(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const FOO: &'static str = \"foo\";\n")
	fileID := fs.AddVirtual("lib.rs", content)

	refSpan := source.Span{File: fileID, Start: 11, End: 23}
	d := diag.New(
		diag.SevWarning,
		diag.LntRedundantStaticConst,
		source.Span{File: fileID, Start: 12, End: 19},
		"Constants have by default a `'static` lifetime",
	).WithFixSuggestion(fix.ReplaceSpan(
		"consider removing `'static`",
		refSpan, "&str", "&'static str",
		fix.Preferred(),
	))

	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		Color:       false,
		Context:     0,
		PathMode:    PathModeBasename,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	if !strings.Contains(output, "help: consider removing `'static` (auto-applicable)") {
		t.Errorf("expected help line, got:\n%s", output)
	}
	if !strings.Contains(output, "- const FOO: &'static str = \"foo\";") {
		t.Errorf("expected before preview, got:\n%s", output)
	}
	if !strings.Contains(output, "+ const FOO: &str = \"foo\";") {
		t.Errorf("expected after preview, got:\n%s", output)
	}
}

func TestPrettyShowsNotes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("static BAR: u8 = 1;\n")
	fileID := fs.AddVirtual("lib.rs", content)

	d := diag.New(
		diag.SevInfo,
		diag.LntInfo,
		source.Span{File: fileID, Start: 0, End: 6},
		"informational",
	).WithNote(source.Span{File: fileID, Start: 7, End: 10}, "declared here")

	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()

	if !strings.Contains(output, "note: declared here at lib.rs:1:8") {
		t.Errorf("expected note line, got:\n%s", output)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("mod a;\nconst FOO: &'static str = \"x\";\nmod b;\n")
	fileID := fs.AddVirtual("lib.rs", content)

	bag := diag.NewBag(4)
	bag.Add(diag.New(
		diag.SevWarning,
		diag.LntRedundantStaticConst,
		source.Span{File: fileID, Start: 19, End: 26},
		"Constants have by default a `'static` lifetime",
	))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	output := buf.String()

	if !strings.Contains(output, "mod a;") || !strings.Contains(output, "mod b;") {
		t.Errorf("expected surrounding lines, got:\n%s", output)
	}
}

func TestShortFormat(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const FOO: &'static str = \"foo\";\n")
	fileID := fs.AddVirtual("lib.rs", content)

	bag := singleDiagnosticBag(fileID)

	var buf bytes.Buffer
	Short(&buf, bag, fs, ShortOpts{PathMode: PathModeBasename})
	got := buf.String()
	want := "lib.rs:1:13: warning: Constants have by default a `'static` lifetime [LNT3001]\n"
	if got != want {
		t.Errorf("short output = %q, want %q", got, want)
	}
}
