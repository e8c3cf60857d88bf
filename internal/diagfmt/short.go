package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"elide/internal/diag"
	"elide/internal/source"
)

// Short prints one line per diagnostic:
//
//	<path>:<line>:<col>: <severity>: <message> [<CODE>]
//
// Meant for editors and grep pipelines.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts ShortOpts) {
	for _, d := range bag.Items() {
		startPos, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
			formatPath(fs, d.Primary.File, opts.PathMode),
			startPos.Line, startPos.Col,
			strings.ToLower(d.Severity.String()),
			d.Message,
			d.Code.ID(),
		)
	}
}
