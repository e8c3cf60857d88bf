package lint

import (
	"elide/internal/ast"
	"elide/internal/diag"
	"elide/internal/fix"
	"elide/internal/source"
)

// Reason strings attached to findings, depending on the declaring item.
const (
	constReason  = "Constants have by default a `'static` lifetime"
	staticReason = "Statics have by default a `'static` lifetime"
)

const fixTitle = "consider removing `'static`"

// Checker walks the declared types of const and static items and reports
// every `'static` annotation the language would supply anyway.
type Checker struct {
	fs       *source.FileSet
	arenas   *ast.Builder
	reporter diag.Reporter
}

func NewChecker(fs *source.FileSet, arenas *ast.Builder, reporter diag.Reporter) *Checker {
	return &Checker{
		fs:       fs,
		arenas:   arenas,
		reporter: reporter,
	}
}

// CheckFile runs the checker over every item of a parsed file.
func (c *Checker) CheckFile(fileID ast.FileID) {
	file := c.arenas.Files.Get(fileID)
	if file == nil {
		return
	}
	for _, itemID := range file.Items {
		c.CheckItem(itemID)
	}
}

// CheckItem inspects one const or static declaration. Associated consts
// (impl/trait members) keep their annotations: elision rules differ there.
// Macro-generated declarations are skipped because the annotation lives in
// the macro, not at the report site.
func (c *Checker) CheckItem(itemID ast.ItemID) {
	item := c.arenas.Items.Get(itemID)
	if item == nil {
		return
	}
	payload, ok := c.arenas.Items.Const(itemID)
	if !ok {
		return
	}
	if payload.Assoc || payload.FromExpansion {
		return
	}
	if !payload.Type.IsValid() {
		return
	}

	code := diag.LntRedundantStaticConst
	reason := constReason
	if item.Kind == ast.ItemStatic {
		code = diag.LntRedundantStaticStatic
		reason = staticReason
	}
	c.visitType(payload.Type, code, reason)
}

// visitType recurses through the positions where an explicit `'static` is
// provably redundant: array and slice elements, tuple fields, and reference
// types themselves. Other kinds (fn pointers, raw pointers, trait objects)
// introduce their own elision rules and are left alone.
func (c *Checker) visitType(id ast.TypeID, code diag.Code, reason string) {
	node := c.arenas.Types.Get(id)
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.TypeArray:
		if payload := c.arenas.Types.Array(id); payload != nil {
			c.visitType(payload.Elem, code, reason)
		}
	case ast.TypeSlice:
		if payload := c.arenas.Types.Slice(id); payload != nil {
			c.visitType(payload.Elem, code, reason)
		}
	case ast.TypeTuple:
		if payload := c.arenas.Types.Tuple(id); payload != nil {
			for _, elem := range payload.Elems {
				c.visitType(elem, code, reason)
			}
		}
	case ast.TypeRef:
		payload := c.arenas.Types.Ref(id)
		if payload == nil {
			return
		}
		if payload.HasLifetime && c.lifetimeName(payload.Lifetime) == "'static" && c.referentEligible(payload.Inner) {
			c.reportRedundant(node, payload, code, reason)
		}
		// a nested reference may carry its own redundant annotation
		c.visitType(payload.Inner, code, reason)
	default:
	}
}

// referentEligible reports whether the borrowed type is one where dropping
// `'static` is always correct.
func (c *Checker) referentEligible(id ast.TypeID) bool {
	node := c.arenas.Types.Get(id)
	if node == nil {
		return false
	}
	switch node.Kind {
	case ast.TypePath, ast.TypeSlice, ast.TypeArray, ast.TypeTuple:
		return true
	default:
		return false
	}
}

// reportRedundant emits the finding. The primary span is the lifetime itself;
// the machine-applicable fix rewrites the whole reference type to the same
// reference without the annotation.
func (c *Checker) reportRedundant(node *ast.Type, payload *ast.RefType, code diag.Code, reason string) {
	inner := c.arenas.Types.Get(payload.Inner)
	if inner == nil {
		return
	}

	prefix := "&"
	if payload.Mut {
		prefix = "&mut "
	}
	replacement := prefix + c.fs.Text(inner.Span)
	current := c.fs.Text(node.Span)

	suggestion := fix.ReplaceSpan(
		fixTitle,
		node.Span,
		replacement,
		current,
		fix.WithID(fix.MakeFixID(code, payload.Lifetime.Span)),
		fix.Preferred(),
	)

	diag.ReportWarning(c.reporter, code, payload.Lifetime.Span, reason).
		WithFixSuggestion(suggestion).
		Emit()
}

func (c *Checker) lifetimeName(lt ast.Lifetime) string {
	if name, ok := c.arenas.StringsInterner.Lookup(lt.Name); ok {
		return name
	}
	return c.fs.Text(lt.Span)
}
