package driver

import (
	"fmt"

	"elide/internal/diag"
	"elide/internal/lexer"
	"elide/internal/parser"
	"elide/internal/source"
	"elide/internal/token"
)

// TokenizeResult holds the token stream of one file.
type TokenizeResult struct {
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
	FileSet *source.FileSet
}

// TokenizeFile loads and tokenizes a single file, collecting tokens up to and
// including EOF.
func TokenizeFile(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: parser.LexReporter{R: reporter}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileID:  fileID,
		Tokens:  tokens,
		Bag:     bag,
		FileSet: fs,
	}, nil
}
