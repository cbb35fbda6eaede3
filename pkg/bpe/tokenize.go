package bpe

import "unicode/utf8"

// tokenizeWords converts each distinct training word into an initial Word
// over the vocabulary's single-character alphabet, mirroring trainer.rs's
// tokenize_words: every character becomes its own symbol, decorated with
// continuingSubwordPrefix on non-initial characters and endOfWordSuffix on
// the word's final character, and registered into vocab on first sight (so
// alphabet members get their TokenIds lazily, in the order words are
// visited). A character outside alphabet is silently dropped from the
// word — it was culled by limit_alphabet and training proceeds without it,
// rather than failing the whole run.
//
// words must be the same strings alphabet was computed from.
// The returned slice is parallel to a caller-maintained word-count slice:
// index i's Word corresponds to the i-th entry of the deterministic word
// ordering the caller establishes (Trainer.Train sorts wordCounts' keys for
// this purpose, so later parallel steps can index by position instead of
// re-deriving the order from a map).
func tokenizeWords(words []string, alphabet map[rune]struct{}, vocab *Vocabulary, continuingSubwordPrefix, endOfWordSuffix string) []*Word {
	out := make([]*Word, len(words))
	for wi, word := range words {
		runes := []rune(word)
		ids := make([]TokenId, 0, len(runes))
		lens := make([]int, 0, len(runes))

		for ci, r := range runes {
			if _, ok := alphabet[r]; !ok {
				continue
			}
			sym := string(r)
			if ci > 0 && continuingSubwordPrefix != "" {
				sym = continuingSubwordPrefix + sym
			}
			if ci == len(runes)-1 && endOfWordSuffix != "" {
				sym = sym + endOfWordSuffix
			}
			id := vocab.Add(sym)
			ids = append(ids, id)
			lens = append(lens, utf8.RuneCountInString(sym))
		}

		out[wi] = NewWord(ids, lens)
	}
	return out
}
