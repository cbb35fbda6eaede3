package bpe

// RankedMerge is one entry of a Model's merge table: the order the merge
// was discovered or replayed in, and the TokenId the merge produces.
type RankedMerge struct {
	Rank  uint32
	NewID TokenId
}

// Model is the output of a completed training run: a vocabulary and its
// merge rules, transferred out of the Trainer's working state once a run
// finishes. Vocab/VocabR mirror Vocabulary's bijection in the plain map
// form sidecar persistence and serialization want; Merges maps each
// trained pair to its rank and resulting id. ContinuingSubwordPrefix and
// EndOfWordSuffix are carried through from Config so a Model is
// self-describing to a downstream tokenizer without needing the Config
// that produced it.
type Model struct {
	Vocab                   map[string]TokenId
	VocabR                  map[TokenId]string
	Merges                  map[Pair]RankedMerge
	ContinuingSubwordPrefix string
	EndOfWordSuffix         string

	vocab       *Vocabulary
	orderedPair []Pair
}

// Vocabulary returns the underlying Vocabulary, ready to hand to an
// Encoder. This is the pragmatic bridge between Model's plain-map public
// shape (easy to serialize) and the rest of the package's Vocabulary-typed
// API.
func (m *Model) Vocabulary() *Vocabulary {
	return m.vocab
}

// OrderedMerges returns the trained merges in discovery/replay order — the
// same order TrainExtend needs to replay them faithfully.
func (m *Model) OrderedMerges() []Pair {
	return m.orderedPair
}

// newModel builds a Model from a finished trainState.
func newModel(st *trainState, continuingSubwordPrefix, endOfWordSuffix string) *Model {
	m := &Model{
		Vocab:                   st.vocab.AllTokensAsTokenId(),
		VocabR:                  make(map[TokenId]string, st.vocab.Size()),
		Merges:                  make(map[Pair]RankedMerge, len(st.merges)),
		ContinuingSubwordPrefix: continuingSubwordPrefix,
		EndOfWordSuffix:         endOfWordSuffix,
		vocab:                   st.vocab,
		orderedPair:             st.merges,
	}
	for id := 0; id < st.vocab.Size(); id++ {
		sym, _ := st.vocab.Symbol(TokenId(id))
		m.VocabR[TokenId(id)] = sym
	}
	for rank, pair := range st.merges {
		aStr, _ := st.vocab.Symbol(pair.First)
		bStr, _ := st.vocab.Symbol(pair.Second)
		newID, _ := st.vocab.Lookup(aStr + bStr)
		m.Merges[pair] = RankedMerge{Rank: uint32(rank), NewID: newID}
	}
	return m
}
