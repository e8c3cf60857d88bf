package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"

[check]
format = "json"
jobs = 4
max-diagnostics = 50
warnings-as-errors = true
exclude = ["target", "vendor"]

[fix]
mode = "all"
`)

	m, unknown, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("unknown keys = %v", unknown)
	}
	if m.Package.Name != "demo" {
		t.Errorf("name = %q", m.Package.Name)
	}
	if m.Check.Format != "json" || m.Check.Jobs != 4 || m.Check.MaxDiagnostics != 50 {
		t.Errorf("check = %+v", m.Check)
	}
	if !m.Check.WarningsAsErrors {
		t.Error("warnings-as-errors should be set")
	}
	if !m.Excluded("target") || !m.Excluded("vendor") || m.Excluded("src") {
		t.Errorf("exclude = %v", m.Check.Exclude)
	}
	if m.Fix.Mode != "all" {
		t.Errorf("fix mode = %q", m.Fix.Mode)
	}
}

func TestLoadManifestUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
autor = "typo"

[checks]
format = "json"
`)

	_, unknown, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(unknown) != 2 {
		t.Fatalf("unknown = %v, want 2 entries", unknown)
	}
	found := map[string]bool{}
	for _, k := range unknown {
		found[k] = true
	}
	if !found["package.autor"] {
		t.Errorf("expected package.autor in %v", unknown)
	}
	if !found["checks.format"] {
		t.Errorf("expected checks.format in %v", unknown)
	}
}

func TestLoadManifestInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad format", "[check]\nformat = \"xml\"\n"},
		{"negative jobs", "[check]\njobs = -1\n"},
		{"bad fix mode", "[fix]\nmode = \"never\"\n"},
		{"broken toml", "[check\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeManifest(t, dir, tt.content)
			if _, _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")

	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want under %q", path, root)
	}

	projRoot, ok, err := FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: ok=%v err=%v", ok, err)
	}
	if projRoot != root {
		t.Errorf("root = %q, want %q", projRoot, root)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindManifest(dir)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if ok {
		t.Error("no manifest should be found in an empty tree")
	}
}
