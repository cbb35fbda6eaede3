package bpe

import "testing"

func charWord(s string) *Word {
	runes := []rune(s)
	ids := make([]TokenId, len(runes))
	lens := make([]int, len(runes))
	for i, r := range runes {
		ids[i] = TokenId(r)
		lens[i] = len(string(r))
	}
	return NewWord(ids, lens)
}

func TestWordMergeBasic(t *testing.T) {
	w := charWord("aab")
	// ids: a=97,a=97,b=98. Merging the leading pair (a,a) has no left
	// neighbor but does have a right neighbor 'b', so exactly one old
	// pair disappears and one new pair appears.
	deltas := w.Merge(97, 97, 1000, 0)
	if len(deltas) != 2 {
		t.Fatalf("deltas: got %d, want 2 (remove (a,b), add (merged,b))", len(deltas))
	}
	got := w.Ids()
	if len(got) != 2 || got[0] != 1000 || got[1] != 98 {
		t.Errorf("ids after merge: got %v, want [1000 98]", got)
	}
}

// TestWordMergeChain checks that applying a single merge rule (a,a)->Y to
// "aaaa" yields two adjacent Y symbols, not one — a single BPE merge
// operation is not transitive across four repeated characters; collapsing
// "aaaa" fully into one token requires a second rule merging (Y,Y).
func TestWordMergeChain(t *testing.T) {
	w := charWord("aaaa")
	w.Merge(97, 97, 1000, 0)
	got := w.Ids()
	if len(got) != 2 || got[0] != 1000 || got[1] != 1000 {
		t.Errorf("chain merge: got %v, want [1000 1000]", got)
	}
}

func TestWordMergeRespectsMaxLen(t *testing.T) {
	w := charWord("ab")
	deltas := w.Merge(TokenId('a'), TokenId('b'), 1000, 1) // combined len 2 > max 1
	if deltas != nil {
		t.Errorf("expected no deltas, merge should be blocked by maxLen: %v", deltas)
	}
	got := w.Ids()
	if len(got) != 2 {
		t.Errorf("word should be unchanged: %v", got)
	}
}

func TestWordCountPairs(t *testing.T) {
	w := charWord("aba")
	counts := make(map[Pair]int64)
	w.CountPairs(counts, nil, 0)
	if counts[Pair{TokenId('a'), TokenId('b')}] != 1 {
		t.Errorf("a-b count: got %d, want 1", counts[Pair{TokenId('a'), TokenId('b')}])
	}
	if counts[Pair{TokenId('b'), TokenId('a')}] != 1 {
		t.Errorf("b-a count: got %d, want 1", counts[Pair{TokenId('b'), TokenId('a')}])
	}
}

func TestWordIdsPreservesOrder(t *testing.T) {
	w := charWord("hello")
	ids := w.Ids()
	want := "hello"
	for i, id := range ids {
		if rune(id) != rune(want[i]) {
			t.Errorf("position %d: got %d, want %d", i, id, want[i])
		}
	}
}
