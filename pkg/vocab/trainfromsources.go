package vocab

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ha1tch/unz/pkg/bpe"
)

// Sources bundles the corpus and optional sidecar readers TrainFromSources
// accepts, mirroring the process-relative files spec.md §6 names
// (special_tokens.txt, alphabet.txt, merges.txt) as in-memory inputs per
// spec.md's "legitimate quirk" note in §9: callers own how these are
// opened (an embedded fs, an archive member, a plain file), not this
// package.
type Sources struct {
	Corpus        []string // pre-tokenized or raw lines; passed to Trainer.Feed
	SpecialTokens io.Reader
	Alphabet      io.Reader
	Merges        io.Reader // presence switches to extend mode
}

// TrainFromSources runs a full training pass: builds cfg.SpecialTokens and
// cfg.InitialAlphabet from the optional sidecars (for discovery mode) or a
// seed bpe.Vocabulary (for extend mode), feeds src.Corpus, and dispatches
// to Trainer.Train or Trainer.TrainExtend depending on whether src.Merges
// is present, exactly as spec.md §6 requires.
func TrainFromSources(ctx context.Context, cfg bpe.Config, src Sources) (*bpe.Model, error) {
	if src.Merges == nil {
		specials, err := readSymbolSequence(src.SpecialTokens)
		if err != nil {
			return nil, err
		}
		alphabet, err := readSymbolSequence(src.Alphabet)
		if err != nil {
			return nil, err
		}
		cfg.SpecialTokens = append(append([]string{}, cfg.SpecialTokens...), specials...)
		for _, sym := range alphabet {
			runes := []rune(sym)
			if len(runes) == 1 {
				cfg.InitialAlphabet = append(cfg.InitialAlphabet, runes[0])
			} else {
				cfg.SpecialTokens = append(cfg.SpecialTokens, sym)
			}
		}
		tr := bpe.NewTrainer(cfg)
		if err := tr.Feed(ctx, src.Corpus); err != nil {
			return nil, err
		}
		return tr.Train(ctx)
	}

	tr := bpe.NewTrainer(cfg)
	seed := bpe.EmptyVocabulary()
	if src.SpecialTokens != nil {
		if err := LoadSpecialTokens(src.SpecialTokens, seed); err != nil {
			return nil, err
		}
	}
	if src.Alphabet != nil {
		if err := LoadAlphabet(src.Alphabet, seed); err != nil {
			return nil, err
		}
	}
	if err := tr.Feed(ctx, src.Corpus); err != nil {
		return nil, err
	}
	inherited, err := LoadMerges(src.Merges)
	if err != nil {
		return nil, err
	}
	return tr.TrainExtend(ctx, seed, inherited)
}

// readSymbolSequence parses the special_tokens.txt/alphabet.txt schema
// ("<symbol><SPACE><id>" per line, ids increasing from 0) into an ordered
// symbol list, without requiring a live Vocabulary to append into. Returns
// nil, nil for a nil reader.
func readSymbolSequence(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	scanner := bufio.NewScanner(r)
	var symbols []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		idx := strings.LastIndexByte(line, ' ')
		if idx < 0 {
			return nil, fmt.Errorf("line %d %q: %w", lineNo, line, bpe.ErrSchemaViolation)
		}
		symbol, idField := line[:idx], line[idx+1:]
		id, err := strconv.Atoi(idField)
		if err != nil {
			return nil, fmt.Errorf("line %d %q: %w", lineNo, line, bpe.ErrSchemaViolation)
		}
		if id != len(symbols) {
			return nil, fmt.Errorf("line %d: id %d does not match position %d: %w",
				lineNo, id, len(symbols), bpe.ErrSchemaViolation)
		}
		symbols = append(symbols, symbol)
	}
	return symbols, scanner.Err()
}
