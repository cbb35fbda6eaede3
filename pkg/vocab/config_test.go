package vocab

import (
	"strings"
	"testing"
)

func TestLoadConfigParsesFields(t *testing.T) {
	doc := `
vocab_size: 5000
min_frequency: 3
special_tokens:
  - "<pad>"
  - "<unk>"
initial_alphabet: "abc"
limit_alphabet: 1000
word_start_marker: "Ġ"
max_token_length: 16
cap_word_start_groups: true
digit_boundary: false
word_start_group_cap: 10
workers: 4
`
	cfg, err := LoadConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.VocabSize != 5000 {
		t.Errorf("VocabSize: got %d, want 5000", cfg.VocabSize)
	}
	if cfg.MinFrequency != 3 {
		t.Errorf("MinFrequency: got %d, want 3", cfg.MinFrequency)
	}
	if len(cfg.SpecialTokens) != 2 || cfg.SpecialTokens[0] != "<pad>" {
		t.Errorf("SpecialTokens: got %v", cfg.SpecialTokens)
	}
	if len(cfg.InitialAlphabet) != 3 {
		t.Errorf("InitialAlphabet: got %v", cfg.InitialAlphabet)
	}
	if cfg.CapWordStartGroups == nil || !*cfg.CapWordStartGroups {
		t.Error("CapWordStartGroups: got unset or false, want explicit true")
	}
	if cfg.DigitBoundary == nil || *cfg.DigitBoundary {
		t.Error("DigitBoundary: got unset or true, want explicit false")
	}
	if cfg.WordStartGroupCap != 10 {
		t.Errorf("WordStartGroupCap: got %d, want 10", cfg.WordStartGroupCap)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers: got %d, want 4", cfg.Workers)
	}
}

func TestLoadConfigLeavesUnsetBoolFiltersNil(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader("vocab_size: 100\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CapWordStartGroups != nil {
		t.Error("CapWordStartGroups: got non-nil, want nil (unset) when omitted from YAML")
	}
	if cfg.DigitBoundary != nil {
		t.Error("DigitBoundary: got non-nil, want nil (unset) when omitted from YAML")
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("vocab_size: [unterminated"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
