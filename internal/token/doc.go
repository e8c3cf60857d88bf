// Package token defines lexical token kinds and trivia for the Rust subset
// elide understands.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Lifetime tokens include the leading quote: text of `'static` is "'static".
//   - Attributes are lexed as '#' (Kind: Pound) + delimiter tokens; no
//     per-attribute token kinds.
//   - Comments and doc comments are leading Trivia and never appear in the
//     main token stream.
//   - Built-in type names (u8, i32, str, ...) are identifiers; they carry no
//     special kind.
package token
