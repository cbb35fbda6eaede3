package bpe

// Pair is an adjacent pair of token ids considered for merging.
type Pair struct {
	First  TokenId
	Second TokenId
}

// PairDelta records how a merge changed a pair's occurrence count within a
// single word, scaled by the word's own training-set count by the caller
// (countPairs/Trainer own that multiplication; Word only reports per-word
// deltas).
type PairDelta struct {
	Pair  Pair
	Delta int64
}

// symbol is one element of a Word's linked-list representation. Prev/Next
// index into the same Word's symbols slice; -1 marks a list end. Keeping
// merged-away symbols tombstoned in place (rather than compacting the
// slice) lets Merge walk the list and patch neighbors in a single pass
// without invalidating indices held elsewhere in the same call.
type symbol struct {
	id   TokenId
	prev int32
	next int32
	len  int // character (rune) length of the original span this symbol covers
	live bool
}

// Word is a mutable token sequence undergoing training. It starts as the
// per-character decomposition of one training word and is progressively
// coarsened in place as merges are applied.
type Word struct {
	symbols []symbol
}

// NewWord builds a Word from an initial sequence of token ids, each
// covering charLens[i] characters of the original word.
func NewWord(ids []TokenId, charLens []int) *Word {
	w := &Word{symbols: make([]symbol, len(ids))}
	for i, id := range ids {
		s := symbol{id: id, len: charLens[i], live: true}
		if i > 0 {
			s.prev = int32(i - 1)
		} else {
			s.prev = -1
		}
		if i < len(ids)-1 {
			s.next = int32(i + 1)
		} else {
			s.next = -1
		}
		w.symbols[i] = s
	}
	return w
}

// Ids returns the word's current token sequence in order.
func (w *Word) Ids() []TokenId {
	out := make([]TokenId, 0, len(w.symbols))
	for i := w.head(); i >= 0; i = int(w.symbols[i].next) {
		out = append(out, w.symbols[i].id)
	}
	return out
}

func (w *Word) head() int {
	for i := range w.symbols {
		if w.symbols[i].live && w.symbols[i].prev < 0 {
			return i
		}
	}
	return -1
}

// CountPairs tallies each live adjacent pair once into counts.
func (w *Word) CountPairs(counts map[Pair]int64, positions map[Pair]map[int]struct{}, wordIdx int) {
	for i := w.head(); i >= 0; {
		n := int(w.symbols[i].next)
		if n < 0 {
			break
		}
		p := Pair{First: w.symbols[i].id, Second: w.symbols[n].id}
		counts[p]++
		if positions != nil {
			set, ok := positions[p]
			if !ok {
				set = make(map[int]struct{})
				positions[p] = set
			}
			set[wordIdx] = struct{}{}
		}
		i = n
	}
}

// Merge rewrites every occurrence of (first, second) in the word into a
// single symbol with id newID, respecting maxLen: a candidate merge whose
// combined character length would exceed maxLen is left untouched. It returns
// the pair-count deltas this rewrite produced (negative for pairs that
// disappeared, positive for pairs that newly appeared at the merge
// boundary), so the caller can fold them into a running global tally
// without rescanning the whole corpus.
func (w *Word) Merge(first, second, newID TokenId, maxLen int) []PairDelta {
	var deltas []PairDelta

	i := w.head()
	for i >= 0 {
		cur := &w.symbols[i]
		nIdx := int(cur.next)
		if nIdx < 0 {
			break
		}
		next := &w.symbols[nIdx]

		if cur.id != first || next.id != second {
			i = nIdx
			continue
		}

		combinedLen := cur.len + next.len
		if maxLen > 0 && combinedLen > maxLen {
			i = nIdx
			continue
		}

		prevIdx := int(cur.prev)
		afterIdx := int(next.next)

		if prevIdx >= 0 {
			p := &w.symbols[prevIdx]
			deltas = append(deltas, PairDelta{Pair{p.id, cur.id}, -1})
			deltas = append(deltas, PairDelta{Pair{p.id, newID}, 1})
		}
		if afterIdx >= 0 {
			a := &w.symbols[afterIdx]
			deltas = append(deltas, PairDelta{Pair{next.id, a.id}, -1})
			deltas = append(deltas, PairDelta{Pair{newID, a.id}, 1})
		}

		cur.id = newID
		cur.len = combinedLen
		cur.next = next.next
		if afterIdx >= 0 {
			w.symbols[afterIdx].prev = int32(i)
		}
		next.live = false

		// i is left unchanged: cur.next now points past the old pair, so the
		// next loop iteration compares the merged symbol with its new right
		// neighbor before moving on. Every non-overlapping occurrence is
		// rewritten in this one left-to-right pass: under (a,a), "aaaa"
		// becomes two merged symbols, not one.
	}

	return deltas
}
