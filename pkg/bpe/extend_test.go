package bpe

import (
	"context"
	"testing"
)

// symbolPairsOf converts a Model's ranked merges (TokenId-keyed) into the
// string-keyed SymbolPair form TrainExtend takes, the same conversion a
// caller loading an external merges.txt sidecar performs against its own
// vocabulary file.
func symbolPairsOf(model *Model) []SymbolPair {
	vocab := model.Vocabulary()
	pairs := model.OrderedMerges()
	out := make([]SymbolPair, len(pairs))
	for i, p := range pairs {
		left, _ := vocab.Symbol(p.First)
		right, _ := vocab.Symbol(p.Second)
		out[i] = SymbolPair{Left: left, Right: right}
	}
	return out
}

// TestTrainExtendReplaysInheritedMerges checks that a seed vocabulary
// trained on one corpus, extended against a second corpus, still contains
// every merge from the first run even if the second corpus alone would
// never have discovered it (too rare there).
func TestTrainExtendReplaysInheritedMerges(t *testing.T) {
	seedCfg := DefaultConfig(12)
	seedCfg.WordStartMarker = ""
	seedTrainer := NewTrainer(seedCfg)
	if err := seedTrainer.Feed(context.Background(), []string{
		"low low low low low",
		"lower lower",
	}); err != nil {
		t.Fatalf("seed Feed: %v", err)
	}
	seedModel, err := seedTrainer.Train(context.Background())
	if err != nil {
		t.Fatalf("seed Train: %v", err)
	}
	seedMerges := symbolPairsOf(seedModel)
	if len(seedMerges) == 0 {
		t.Fatal("seed run produced no merges; test setup is wrong")
	}

	extCfg := DefaultConfig(seedModel.Vocabulary().Size()) // no room for new discovery
	extCfg.WordStartMarker = ""
	extTrainer := NewTrainer(extCfg)
	// Second corpus doesn't even contain "low"/"lower" — replay must still
	// carry the inherited merges through untouched.
	if err := extTrainer.Feed(context.Background(), []string{"cat cat dog"}); err != nil {
		t.Fatalf("ext Feed: %v", err)
	}

	finalModel, err := extTrainer.TrainExtend(context.Background(), seedModel.Vocabulary(), seedMerges)
	if err != nil {
		t.Fatalf("TrainExtend: %v", err)
	}
	finalMerges := symbolPairsOf(finalModel)

	if len(finalMerges) < len(seedMerges) {
		t.Fatalf("final merges %d shorter than seed merges %d", len(finalMerges), len(seedMerges))
	}
	for i, p := range seedMerges {
		if finalMerges[i] != p {
			t.Errorf("merge %d: got %v, want %v (replay must preserve order)", i, finalMerges[i], p)
		}
	}

	for _, want := range []string{"low", "lower"} {
		enc := NewEncoder(finalModel.Vocabulary())
		ids := enc.Encode([]byte(want))
		if string(enc.Decode(ids)) != want {
			t.Errorf("roundtrip %q failed after extend", want)
		}
	}
}

// TestTrainExtendMissingSymbolErrors checks that replaying a merge whose
// operand was never registered in the seed vocabulary is reported rather
// than silently ignored.
func TestTrainExtendMissingSymbolErrors(t *testing.T) {
	cfg := DefaultConfig(100)
	cfg.WordStartMarker = ""
	tr := NewTrainer(cfg)
	if err := tr.Feed(context.Background(), []string{"ab ab"}); err != nil {
		t.Fatalf("Feed: %v", err)
	}

	emptyVocab := EmptyVocabulary()
	bogusMerges := []SymbolPair{{Left: "nonexistent1", Right: "nonexistent2"}}

	_, err := tr.TrainExtend(context.Background(), emptyVocab, bogusMerges)
	if err != ErrMissingSymbol {
		t.Errorf("got %v, want ErrMissingSymbol", err)
	}
}
