package bpe

import "errors"

// ErrSchemaViolation is returned when a sidecar file (alphabet, special
// tokens, merge list) breaks its line schema — e.g. an alphabet.txt or
// special_tokens.txt id that does not equal the vocabulary's length at that
// line, a duplicate symbol claiming a second id, or a merges.txt line that
// is not two space-separated symbols.
var ErrSchemaViolation = errors.New("bpe: schema violation in vocabulary input")

// ErrMissingSymbol is returned when a merge rule names a symbol that is
// not yet in the vocabulary being built (extend-mode replay hitting a
// dangling reference, or a merges.txt line referencing a pair whose
// members were never declared).
var ErrMissingSymbol = errors.New("bpe: merge references unknown symbol")
