package bpe

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// pairIndex is the result of a full pass over the training words: a global
// pair-count table and, for each pair, the set of word indices where it
// occurs at least once. The position sets let the trainer touch only the
// words affected by a merge instead of rescanning the whole corpus each
// round.
type pairIndex struct {
	counts    map[Pair]int64
	positions map[Pair]map[int]struct{}
}

// countPairs tallies adjacent-pair counts across words in parallel,
// mirroring trainer.rs's count_pairs: the word slice is chunked across a
// bounded worker pool, each worker accumulates into a private map, and the
// results are reduced into one table on the calling goroutine after all
// workers finish. wordWeights holds each word's corpus frequency (how many
// times the original training word occurred), so a pair inside a
// high-frequency word contributes that many counts, not one.
func countPairs(words []*Word, wordWeights []int64, workers int) *pairIndex {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(words) {
		workers = len(words)
	}
	if workers < 1 {
		workers = 1
	}

	partials := make([]*pairIndex, workers)
	g, _ := errgroup.WithContext(context.Background())

	chunk := (len(words) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := lo + chunk
		if lo > len(words) {
			lo = len(words)
		}
		if hi > len(words) {
			hi = len(words)
		}
		g.Go(func() error {
			local := &pairIndex{
				counts:    make(map[Pair]int64),
				positions: make(map[Pair]map[int]struct{}),
			}
			for i := lo; i < hi; i++ {
				word := words[i]
				if word == nil {
					continue
				}
				weight := wordWeights[i]
				raw := make(map[Pair]int64)
				word.CountPairs(raw, local.positions, i)
				for p, c := range raw {
					local.counts[p] += c * weight
				}
			}
			partials[w] = local
			return nil
		})
	}
	// countPairs never fails: workers only read Word state and write to
	// private maps, so the error return exists solely to satisfy
	// errgroup's Go signature.
	_ = g.Wait()

	merged := &pairIndex{
		counts:    make(map[Pair]int64),
		positions: make(map[Pair]map[int]struct{}),
	}
	for _, p := range partials {
		if p == nil {
			continue
		}
		for pair, c := range p.counts {
			merged.counts[pair] += c
		}
		for pair, set := range p.positions {
			dst, ok := merged.positions[pair]
			if !ok {
				dst = make(map[int]struct{}, len(set))
				merged.positions[pair] = dst
			}
			for idx := range set {
				dst[idx] = struct{}{}
			}
		}
	}
	return merged
}
