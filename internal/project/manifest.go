package project

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded elide.toml. Zero values mean "not set"; the CLI
// layers its flag defaults on top.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Check   CheckSection   `toml:"check"`
	Fix     FixSection     `toml:"fix"`
}

// PackageSection is the [package] table.
type PackageSection struct {
	Name string `toml:"name"`
}

// CheckSection is the [check] table with defaults for `elide check`.
type CheckSection struct {
	Format           string   `toml:"format"`
	Jobs             int      `toml:"jobs"`
	MaxDiagnostics   int      `toml:"max-diagnostics"`
	NoWarnings       bool     `toml:"no-warnings"`
	WarningsAsErrors bool     `toml:"warnings-as-errors"`
	Exclude          []string `toml:"exclude"`
	Cache            *bool    `toml:"cache"`
}

// FixSection is the [fix] table with defaults for `elide fix`.
type FixSection struct {
	Mode string `toml:"mode"`
}

var validFormats = map[string]bool{
	"": true, "pretty": true, "json": true, "sarif": true, "short": true,
}

var validFixModes = map[string]bool{
	"": true, "once": true, "all": true,
}

// Load parses an elide.toml. Unknown keys are collected, not fatal, so the
// caller can surface them as warnings.
func Load(path string) (Manifest, []string, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	unknown := make([]string, 0, len(meta.Undecoded()))
	for _, key := range meta.Undecoded() {
		unknown = append(unknown, key.String())
	}

	if err := m.validate(path, meta); err != nil {
		return Manifest{}, unknown, err
	}
	return m, unknown, nil
}

func (m *Manifest) validate(path string, meta toml.MetaData) error {
	if !validFormats[strings.TrimSpace(m.Check.Format)] {
		return fmt.Errorf("%s: invalid [check].format %q (want pretty, json, sarif or short)", path, m.Check.Format)
	}
	if meta.IsDefined("check", "jobs") && m.Check.Jobs < 0 {
		return fmt.Errorf("%s: invalid [check].jobs %d: must be non-negative", path, m.Check.Jobs)
	}
	if meta.IsDefined("check", "max-diagnostics") && m.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: invalid [check].max-diagnostics %d: must be non-negative", path, m.Check.MaxDiagnostics)
	}
	if !validFixModes[strings.TrimSpace(m.Fix.Mode)] {
		return fmt.Errorf("%s: invalid [fix].mode %q (want once or all)", path, m.Fix.Mode)
	}
	return nil
}

// Excluded reports whether a path segment matches one of the manifest's
// exclude entries. Matching is by exact directory name.
func (m *Manifest) Excluded(name string) bool {
	for _, e := range m.Check.Exclude {
		if e == name {
			return true
		}
	}
	return false
}
