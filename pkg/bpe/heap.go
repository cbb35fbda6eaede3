package bpe

import "container/heap"

// mergeCandidate is one entry in the training priority queue: a candidate
// pair together with the count it had the last time it was pushed or
// repriced.
type mergeCandidate struct {
	pair  Pair
	count int64
}

// candidateHeap is a max-heap over mergeCandidate ordered by count
// descending, tie-broken by pair ascending (lower TokenId first, then lower
// second TokenId). This is the hard tie-break contract the trainer relies
// on for determinism: two pairs with equal count must always yield the
// same winner regardless of insertion order.
//
// The heap is lazily repriced: Trainer never mutates an entry's count in
// place. Instead it pushes a fresh mergeCandidate whenever a pair's count
// changes, and discovers stale entries when popped by comparing against the
// authoritative running count table. This avoids the decrease-key
// operation container/heap doesn't support, at the cost of occasional
// no-op pops — the same trade-off trainer.rs's BinaryHeap-based loop makes.
type candidateHeap []mergeCandidate

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count > h[j].count
	}
	if h[i].pair.First != h[j].pair.First {
		return h[i].pair.First < h[j].pair.First
	}
	return h[i].pair.Second < h[j].pair.Second
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x interface{}) {
	*h = append(*h, x.(mergeCandidate))
}

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

var _ heap.Interface = (*candidateHeap)(nil)

// newCandidateHeap builds and heapifies a candidateHeap from an initial
// count snapshot.
func newCandidateHeap(counts map[Pair]int64) *candidateHeap {
	h := make(candidateHeap, 0, len(counts))
	for p, c := range counts {
		if c > 0 {
			h = append(h, mergeCandidate{pair: p, count: c})
		}
	}
	heap.Init(&h)
	return &h
}

// push adds or refreshes a candidate.
func (h *candidateHeap) push(p Pair, count int64) {
	heap.Push(h, mergeCandidate{pair: p, count: count})
}

// popFresh pops candidates until it finds one whose heap-recorded count
// matches the authoritative count in counts. An entry whose pair has no
// positive count is dropped; a stale entry, left behind by an earlier
// reprice, is re-pushed at the current count and the search goes on. It
// returns false once the heap is exhausted of live candidates.
func (h *candidateHeap) popFresh(counts map[Pair]int64) (Pair, int64, bool) {
	for h.Len() > 0 {
		top := heap.Pop(h).(mergeCandidate)
		authoritative, ok := counts[top.pair]
		if !ok || authoritative <= 0 {
			continue
		}
		if authoritative != top.count {
			// Stale: the count moved since this entry was pushed. Re-push
			// the current truth and keep looking.
			h.push(top.pair, authoritative)
			continue
		}
		return top.pair, top.count, true
	}
	return Pair{}, 0, false
}
