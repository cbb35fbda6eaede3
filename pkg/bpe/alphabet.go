package bpe

import "sort"

// charCount pairs a rune with its observed frequency, used while computing
// the initial alphabet.
type charCount struct {
	r     rune
	count int64
}

// buildAlphabet computes the initial single-character alphabet for a
// training corpus, mirroring trainer.rs's compute_alphabet: every rune is
// tallied by frequency, runes named in forced are guaranteed inclusion
// regardless of frequency, and if limit caps the alphabet below the number
// of distinct runes observed, the lowest-frequency unforced runes are
// dropped first. Surviving runes are returned sorted by code point, which
// is the order Add assigns them ids in (so the byte-identity base tokens
// like newline and space land at small, stable ids).
//
// limit <= 0 means no cap.
func buildAlphabet(wordCounts map[string]int64, forced map[rune]struct{}, limit int) []rune {
	tally := make(map[rune]int64)
	for word, count := range wordCounts {
		for _, r := range word {
			tally[r] += count
		}
	}
	for r := range forced {
		if _, ok := tally[r]; !ok {
			tally[r] = 0
		}
	}

	if limit > 0 && len(tally) > limit {
		kept := make(map[rune]int64, limit)
		for r := range forced {
			kept[r] = tally[r]
		}

		remaining := make([]charCount, 0, len(tally))
		for r, c := range tally {
			if _, isForced := forced[r]; isForced {
				continue
			}
			remaining = append(remaining, charCount{r, c})
		}
		sort.Slice(remaining, func(i, j int) bool {
			if remaining[i].count != remaining[j].count {
				return remaining[i].count > remaining[j].count
			}
			return remaining[i].r < remaining[j].r
		})

		budget := limit - len(kept)
		if budget < 0 {
			budget = 0
		}
		for i := 0; i < budget && i < len(remaining); i++ {
			kept[remaining[i].r] = remaining[i].count
		}
		tally = kept
	}

	runes := make([]rune, 0, len(tally))
	for r := range tally {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}
