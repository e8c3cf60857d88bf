package lexer_test

import (
	"fmt"
	"testing"

	"elide/internal/lexer"
	"elide/internal/source"
	"elide/internal/token"
)

// testReporter collects everything the lexer reports.
type testReporter struct {
	reports []string
}

func (r *testReporter) Report(kind string, span source.Span, msg string) {
	r.reports = append(r.reports, fmt.Sprintf("%s: %s", kind, msg))
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

// lexKinds drains the lexer and returns the kinds of all significant tokens
// before EOF.
func lexKinds(t *testing.T, input string) []token.Kind {
	t.Helper()
	lx, rep := makeTestLexer(input)
	var kinds []token.Kind
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
		if len(kinds) > 1000 {
			t.Fatalf("lexer did not terminate on %q", input)
		}
	}
	if len(rep.reports) != 0 {
		t.Fatalf("unexpected reports for %q: %v", input, rep.reports)
	}
	return kinds
}

func TestLexConstDeclaration(t *testing.T) {
	input := `const FOO: &'static str = "hello";`
	want := []token.Kind{
		token.KwConst, token.Ident, token.Colon, token.Amp, token.Lifetime,
		token.Ident, token.Assign, token.StringLit, token.Semicolon,
	}
	got := lexKinds(t, input)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexStaticDeclaration(t *testing.T) {
	input := `pub static BAR: &'static mut [u8] = &mut [0];`
	want := []token.Kind{
		token.KwPub, token.KwStatic, token.Ident, token.Colon, token.Amp,
		token.Lifetime, token.KwMut, token.LBracket, token.Ident, token.RBracket,
		token.Assign, token.Amp, token.KwMut, token.LBracket, token.IntLit,
		token.RBracket, token.Semicolon,
	}
	got := lexKinds(t, input)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLifetimeVsCharLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  token.Kind
		text  string
	}{
		{"static lifetime", "'static", token.Lifetime, "'static"},
		{"short lifetime", "'a", token.Lifetime, "'a"},
		{"anonymous lifetime", "'_", token.Lifetime, "'_"},
		{"char", "'a'", token.CharLit, "'a'"},
		{"digit char", "'0'", token.CharLit, "'0'"},
		{"escape char", `'\n'`, token.CharLit, `'\n'`},
		{"quote escape", `'\''`, token.CharLit, `'\''`},
		{"unicode escape", `'\u{1F600}'`, token.CharLit, `'\u{1F600}'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Text != tt.text {
				t.Errorf("text = %q, want %q", tok.Text, tt.text)
			}
		})
	}
}

func TestLifetimeSpan(t *testing.T) {
	// offsets:      0123456789012345678
	input := `const A: &'static str = "";`
	lx, _ := makeTestLexer(input)
	var lifetime token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.Lifetime {
			lifetime = tok
		}
	}
	if lifetime.Kind != token.Lifetime {
		t.Fatal("no lifetime token found")
	}
	if lifetime.Span.Start != 10 || lifetime.Span.End != 17 {
		t.Errorf("lifetime span = %d..%d, want 10..17", lifetime.Span.Start, lifetime.Span.End)
	}
	if lifetime.Text != "'static" {
		t.Errorf("lifetime text = %q, want %q", lifetime.Text, "'static")
	}
}

func TestStringForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  token.Kind
	}{
		{"plain", `"hello"`, token.StringLit},
		{"escaped quote", `"he\"llo"`, token.StringLit},
		{"raw", `r"no\escape"`, token.StringLit},
		{"raw hashed", `r#"has "quotes""#`, token.StringLit},
		{"raw double hashed", `r##"a"#b"##`, token.StringLit},
		{"byte string", `b"bytes"`, token.StringLit},
		{"byte raw", `br"raw bytes"`, token.StringLit},
		{"byte char", `b'x'`, token.CharLit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v (reports: %v)", tok.Kind, tt.kind, rep.reports)
			}
			if tok.Text != tt.input {
				t.Errorf("text = %q, want %q", tok.Text, tt.input)
			}
			if next := lx.Next(); next.Kind != token.EOF {
				t.Errorf("trailing token %v after literal", next.Kind)
			}
		})
	}
}

func TestRawIdentifier(t *testing.T) {
	lx, _ := makeTestLexer("r#type")
	tok := lx.Next()
	if tok.Kind != token.Ident {
		t.Fatalf("kind = %v, want Ident", tok.Kind)
	}
	if tok.Text != "r#type" {
		t.Errorf("text = %q, want %q", tok.Text, "r#type")
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	got := lexKinds(t, "const static mut fn impl trait constant Static")
	want := []token.Kind{
		token.KwConst, token.KwStatic, token.KwMut, token.KwFn, token.KwImpl,
		token.KwTrait, token.Ident, token.Ident,
	}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOperators(t *testing.T) {
	got := lexKinds(t, ":: -> => .. ..= ... && >> < > # $ @")
	want := []token.Kind{
		token.ColonColon, token.Arrow, token.FatArrow, token.DotDot,
		token.DotDotEq, token.DotDotDot, token.AndAnd, token.Shr,
		token.Lt, token.Gt, token.Pound, token.Dollar, token.At,
	}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"123_456", token.IntLit},
		{"0xFF", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o755", token.IntLit},
		{"42u8", token.IntLit},
		{"1.5", token.FloatLit},
		{"1e-3", token.FloatLit},
		{"2.5e+10", token.FloatLit},
		{"3.14f64", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Text != tt.input {
				t.Errorf("text = %q, want %q", tok.Text, tt.input)
			}
		})
	}
}

func TestLeadingTrivia(t *testing.T) {
	input := "// comment\n/// doc\n/* block /* nested */ */\nconst"
	lx, rep := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != token.KwConst {
		t.Fatalf("kind = %v, want KwConst", tok.Kind)
	}
	if len(rep.reports) != 0 {
		t.Fatalf("unexpected reports: %v", rep.reports)
	}
	var kinds []token.TriviaKind
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaLineComment, token.TriviaNewline,
		token.TriviaDocLine, token.TriviaNewline,
		token.TriviaBlockComment, token.TriviaNewline,
	}
	if len(kinds) != len(want) {
		t.Fatalf("trivia kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("trivia %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestUnterminatedReports(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"block comment", "/* never closed"},
		{"string", `"never closed`},
		{"raw string", `r#"never closed"`},
		{"char", "'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			for {
				if lx.Next().Kind == token.EOF {
					break
				}
			}
			if len(rep.reports) == 0 {
				t.Errorf("expected a report for %q", tt.input)
			}
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("static X")
	p := lx.Peek()
	n := lx.Next()
	if p.Kind != token.KwStatic || n.Kind != token.KwStatic {
		t.Fatalf("peek = %v, next = %v, want KwStatic twice", p.Kind, n.Kind)
	}
	if lx.Next().Kind != token.Ident {
		t.Fatal("expected Ident after peeked static")
	}
}
