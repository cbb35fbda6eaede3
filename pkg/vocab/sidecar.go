package vocab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ha1tch/unz/pkg/bpe"
)

// LoadSpecialTokens reads a special_tokens.txt or alphabet.txt sidecar:
// one "<symbol><SPACE><id>" entry per line, appended into vocab in file
// order. Each id must equal the vocabulary's length at the moment its line
// is read — the schema both files share — or ErrSchemaViolation is
// returned (wrapped with the offending line number).
func LoadSpecialTokens(r io.Reader, vocab *bpe.Vocabulary) error {
	return loadIDTaggedLines(r, vocab)
}

// LoadAlphabet reads an alphabet.txt sidecar. Same schema as
// LoadSpecialTokens; kept as a distinct entry point so callers name their
// intent (spec.md §6 treats the two files identically but as separate
// stages of vocabulary construction).
func LoadAlphabet(r io.Reader, vocab *bpe.Vocabulary) error {
	return loadIDTaggedLines(r, vocab)
}

func loadIDTaggedLines(r io.Reader, vocab *bpe.Vocabulary) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		idx := strings.LastIndexByte(line, ' ')
		if idx < 0 {
			return fmt.Errorf("line %d %q: %w", lineNo, line, bpe.ErrSchemaViolation)
		}
		symbol, idField := line[:idx], line[idx+1:]
		id, err := strconv.Atoi(idField)
		if err != nil {
			return fmt.Errorf("line %d %q: %w", lineNo, line, bpe.ErrSchemaViolation)
		}
		if id != vocab.Size() {
			return fmt.Errorf("line %d: id %d does not match vocabulary length %d: %w",
				lineNo, id, vocab.Size(), bpe.ErrSchemaViolation)
		}
		if _, dup := vocab.Lookup(symbol); dup {
			return fmt.Errorf("line %d: symbol %q already has an id: %w",
				lineNo, symbol, bpe.ErrSchemaViolation)
		}
		vocab.MustAppend(symbol, bpe.TokenId(id))
	}
	return scanner.Err()
}

// LoadMerges reads a merges.txt sidecar: a discarded version header line,
// then "<left><SPACE><right>" entries in replay order.
func LoadMerges(r io.Reader) ([]bpe.SymbolPair, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, scanner.Err()
	}
	// First line is a version header; its content is not interpreted.

	var merges []bpe.SymbolPair
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d %q: %w", lineNo, line, bpe.ErrSchemaViolation)
		}
		merges = append(merges, bpe.SymbolPair{Left: parts[0], Right: parts[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return merges, nil
}

// WriteMerges writes merges to w in merges.txt form: a version header
// followed by one "<left> <right>" line per entry, in order.
func WriteMerges(w io.Writer, merges []bpe.SymbolPair) error {
	if _, err := fmt.Fprintln(w, "#version: 0.2"); err != nil {
		return err
	}
	for _, m := range merges {
		if _, err := fmt.Fprintf(w, "%s %s\n", m.Left, m.Right); err != nil {
			return err
		}
	}
	return nil
}

// WriteIDTaggedLines writes vocab's symbols in id order, one
// "<symbol> <id>" line per entry — the format LoadSpecialTokens and
// LoadAlphabet both read back.
func WriteIDTaggedLines(w io.Writer, vocab *bpe.Vocabulary) error {
	for id := 0; id < vocab.Size(); id++ {
		sym, _ := vocab.Symbol(bpe.TokenId(id))
		if _, err := fmt.Fprintf(w, "%s %d\n", sym, id); err != nil {
			return err
		}
	}
	return nil
}
