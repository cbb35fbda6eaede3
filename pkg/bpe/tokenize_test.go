package bpe

import "testing"

func TestTokenizeWordsPlain(t *testing.T) {
	alphabet := map[rune]struct{}{'a': {}, 'b': {}, 'c': {}}
	vocab := EmptyVocabulary()
	words := tokenizeWords([]string{"abc"}, alphabet, vocab, "", "")
	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}
	ids := words[0].Ids()
	if len(ids) != 3 {
		t.Fatalf("got %d symbols, want 3", len(ids))
	}
	for i, want := range []string{"a", "b", "c"} {
		sym, _ := vocab.Symbol(ids[i])
		if sym != want {
			t.Errorf("position %d: got %q, want %q", i, sym, want)
		}
	}
}

func TestTokenizeWordsDecoratesContinuingAndSuffix(t *testing.T) {
	alphabet := map[rune]struct{}{'a': {}, 'b': {}, 'c': {}}
	vocab := EmptyVocabulary()
	words := tokenizeWords([]string{"abc"}, alphabet, vocab, "##", "</w>")
	ids := words[0].Ids()
	var syms []string
	for _, id := range ids {
		s, _ := vocab.Symbol(id)
		syms = append(syms, s)
	}
	want := []string{"a", "##b", "##c</w>"}
	if len(syms) != len(want) {
		t.Fatalf("got %v, want %v", syms, want)
	}
	for i := range want {
		if syms[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, syms[i], want[i])
		}
	}
}

func TestTokenizeWordsSkipsCulledCharacters(t *testing.T) {
	// 'x' was culled from the alphabet (e.g. by limit_alphabet); it must be
	// silently dropped rather than erroring the whole word.
	alphabet := map[rune]struct{}{'a': {}, 'b': {}}
	vocab := EmptyVocabulary()
	words := tokenizeWords([]string{"axb"}, alphabet, vocab, "", "")
	ids := words[0].Ids()
	if len(ids) != 2 {
		t.Fatalf("got %d symbols, want 2 (x dropped)", len(ids))
	}
}

func TestTokenizeWordsSingleCharWord(t *testing.T) {
	alphabet := map[rune]struct{}{'a': {}}
	vocab := EmptyVocabulary()
	words := tokenizeWords([]string{"a"}, alphabet, vocab, "##", "</w>")
	ids := words[0].Ids()
	if len(ids) != 1 {
		t.Fatalf("got %d symbols, want 1", len(ids))
	}
	sym, _ := vocab.Symbol(ids[0])
	// The sole character is both first and last: suffix applies, prefix
	// does not (it is only non-initial).
	if sym != "a</w>" {
		t.Errorf("got %q, want %q", sym, "a</w>")
	}
}
