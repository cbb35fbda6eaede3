package bpe

import (
	"context"
	"sort"
)

// SymbolPair is a merge rule as it appears in external form (a sidecar
// merges.txt line, or a caller-constructed inherited merge list): two
// symbol strings, both of which must be present in the vocabulary by the
// time TrainExtend replays the rule.
type SymbolPair struct {
	Left, Right string
}

// TrainExtend grows an existing vocabulary: it replays inheritedMerges in
// order against the accumulated word counts (so every symbol the prior
// run produced reappears with its original rank, even merges that would
// not themselves be rediscovered from this corpus alone — trainer.rs
// always emits a replayed merge's result, never skipping it for a length
// violation), then falls back to ordinary discovery for any additional
// vocabulary room, with the discovery-only filters (Ġ-group cap,
// digit-boundary guard) turned on by default for that continuation phase,
// per the Open Question resolution in DESIGN.md.
//
// Every Left/Right in inheritedMerges must name a symbol that exists when
// its rule is replayed: one in seedVocab, one of this corpus's alphabet
// characters (added to seedVocab before replay), or the result of an
// earlier inherited merge; TrainExtend returns ErrMissingSymbol otherwise. A pair with no
// occurrences in this run's corpus is still registered and its merged
// symbol still created (a phantom rewrite: the rule becomes part of the
// vocabulary's contract even though no word in this particular corpus
// needs rewriting).
//
// seedVocab is consumed and extended in place; callers that want to keep
// the original should pass a copy.
func (t *Trainer) TrainExtend(ctx context.Context, seedVocab *Vocabulary, inheritedMerges []SymbolPair) (*Model, error) {
	t.mu.Lock()
	wordCounts := make(map[string]int64, len(t.wordCounts))
	for w, c := range t.wordCounts {
		wordCounts[w] = c
	}
	t.mu.Unlock()

	log := t.cfg.logger().With("run_id", t.runID, "component", "bpe.trainer", "mode", "extend")
	log.Info("extend starting", "seed_size", seedVocab.Size(), "inherited_merges", len(inheritedMerges))

	forced := make(map[rune]struct{}, len(t.cfg.InitialAlphabet))
	for _, r := range t.cfg.InitialAlphabet {
		forced[r] = struct{}{}
	}
	alphabetRunes := buildAlphabet(wordCounts, forced, t.cfg.LimitAlphabet)
	alphabetSet := make(map[rune]struct{}, len(alphabetRunes))
	for _, r := range alphabetRunes {
		seedVocab.Add(string(r))
		alphabetSet[r] = struct{}{}
	}

	words := make([]string, 0, len(wordCounts))
	for w := range wordCounts {
		words = append(words, w)
	}
	sort.Strings(words)
	weights := make([]int64, len(words))
	for i, w := range words {
		weights[i] = wordCounts[w]
	}

	tokenizedWords := tokenizeWords(words, alphabetSet, seedVocab, t.cfg.ContinuingSubwordPrefix, t.cfg.EndOfWordSuffix)
	idx := countPairs(tokenizedWords, weights, t.cfg.workers())

	st := &trainState{
		vocab:     seedVocab,
		words:     tokenizedWords,
		weights:   weights,
		counts:    idx.counts,
		positions: idx.positions,
		h:         newCandidateHeap(idx.counts),
	}

	// Replay phase: apply every inherited merge unconditionally, in its
	// original order, regardless of current counts or MinFrequency — a
	// merge the caller already trained is part of the vocabulary's
	// contract, not a fresh discovery candidate.
	for _, sp := range inheritedMerges {
		firstID, ok := st.vocab.Lookup(sp.Left)
		if !ok {
			return nil, ErrMissingSymbol
		}
		secondID, ok := st.vocab.Lookup(sp.Right)
		if !ok {
			return nil, ErrMissingSymbol
		}
		pair := Pair{First: firstID, Second: secondID}

		newID := st.vocab.Add(sp.Left + sp.Right)
		st.merges = append(st.merges, pair)

		positions := st.positions[pair]
		affected := make([]int, 0, len(positions))
		for i := range positions {
			affected = append(affected, i)
		}
		sort.Ints(affected)
		t.applyMerge(st, pair, newID, affected)
	}
	log.Info("replay finished", "vocab_size", st.vocab.Size())

	// Discovery continuation: fill remaining VocabSize room with the same
	// merge loop Train uses, with both discovery filters on by default —
	// unless the caller explicitly set CapWordStartGroups/DigitBoundary,
	// in which case that explicit choice (even an explicit off) wins.
	filt := t.cfg.filters()
	if t.cfg.CapWordStartGroups == nil && t.cfg.WordStartMarker != "" {
		filt.capWordStartGroups = true
	}
	if t.cfg.DigitBoundary == nil {
		filt.digitBoundary = true
	}

	t.runMergeLoop(ctx, st, filt, log)

	log.Info("extend finished", "vocab_size", st.vocab.Size(), "total_merges", len(st.merges))
	return newModel(st, t.cfg.ContinuingSubwordPrefix, t.cfg.EndOfWordSuffix), nil
}
