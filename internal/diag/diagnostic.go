package diag

import (
	"fmt"

	"elide/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit is a single replacement in source coordinates. OldText is an
// optional guard: when non-empty, the fix engine verifies the current content
// before applying.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixKind classifies a fix for UI grouping.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactorRewrite
	FixKindSourceAction
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactorRewrite:
		return "refactor.rewrite"
	case FixKindSourceAction:
		return "source"
	}
	return "unknown"
}

// FixApplicability is the confidence level of a fix.
type FixApplicability uint8

const (
	// FixApplicabilityAlwaysSafe fixes can be applied without review.
	FixApplicabilityAlwaysSafe FixApplicability = iota
	// FixApplicabilitySafeWithHeuristics fixes are probably right but rely on
	// heuristics.
	FixApplicabilitySafeWithHeuristics
	// FixApplicabilityManualReview fixes need a human.
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// FixBuildContext carries what a lazy fix needs to materialize its edits.
type FixBuildContext struct {
	FileSet *source.FileSet
}

// FixThunk builds edits on demand; used when edits are expensive to construct
// at report time.
type FixThunk func(ctx FixBuildContext) ([]TextEdit, error)

// Fix is a possible automated correction. Data-only: application lives in
// internal/fix.
type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	// RequiresAll marks fixes that only make sense together with every other
	// fix in the diagnostic run.
	RequiresAll bool
	Edits       []TextEdit
	Thunk       FixThunk
}

// Resolve returns the fix with Edits populated, invoking the thunk when the
// edits are lazy.
func (f Fix) Resolve(ctx FixBuildContext) (Fix, error) {
	if len(f.Edits) > 0 || f.Thunk == nil {
		return f, nil
	}
	edits, err := f.Thunk(ctx)
	if err != nil {
		return f, fmt.Errorf("resolve fix %q: %w", f.Title, err)
	}
	resolved := f
	resolved.Edits = edits
	resolved.Thunk = nil
	return resolved, nil
}

// MaterializeFixes resolves every fix in the slice deterministically.
func MaterializeFixes(ctx FixBuildContext, fixes []Fix) ([]Fix, error) {
	if len(fixes) == 0 {
		return nil, nil
	}
	out := make([]Fix, 0, len(fixes))
	for _, f := range fixes {
		resolved, err := f.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
