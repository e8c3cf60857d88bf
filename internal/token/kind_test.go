package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		kind  Kind
		ok    bool
	}{
		{"const", KwConst, true},
		{"static", KwStatic, true},
		{"mut", KwMut, true},
		{"macro_rules", KwMacroRules, true},
		{"Static", Invalid, false}, // case-sensitive
		{"str", Invalid, false},    // builtin types are identifiers
		{"", Invalid, false},
	}

	for _, tt := range tests {
		k, ok := LookupKeyword(tt.ident)
		if ok != tt.ok {
			t.Errorf("LookupKeyword(%q) ok = %v, want %v", tt.ident, ok, tt.ok)
			continue
		}
		if ok && k != tt.kind {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, k, tt.kind)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := Amp.String(); got != "&" {
		t.Errorf("Amp.String() = %q", got)
	}
	if got := Lifetime.String(); got != "Lifetime" {
		t.Errorf("Lifetime.String() = %q", got)
	}
	if got := Kind(250).String(); got != "Unknown" {
		t.Errorf("unknown kind String() = %q", got)
	}
}
