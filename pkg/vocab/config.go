package vocab

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/unz/pkg/bpe"
)

// yamlConfig mirrors the serializable subset of bpe.Config. Splitter and
// Logger are runtime hooks with no YAML representation, so a trainer.yaml
// document drives everything else and callers attach those two in code
// after LoadConfig returns.
type yamlConfig struct {
	VocabSize               int      `yaml:"vocab_size"`
	MinFrequency            int64    `yaml:"min_frequency"`
	SpecialTokens           []string `yaml:"special_tokens"`
	InitialAlphabet         string   `yaml:"initial_alphabet"`
	LimitAlphabet           int      `yaml:"limit_alphabet"`
	ContinuingSubwordPrefix string   `yaml:"continuing_subword_prefix"`
	EndOfWordSuffix         string   `yaml:"end_of_word_suffix"`
	WordStartMarker         string   `yaml:"word_start_marker"`
	MaxTokenLength          int      `yaml:"max_token_length"`
	// CapWordStartGroups and DigitBoundary are *bool, left nil when the
	// YAML document omits them, so an omitted key and an explicit `false`
	// map onto bpe.Config's own unset-vs-explicit-off distinction instead
	// of collapsing together.
	CapWordStartGroups *bool `yaml:"cap_word_start_groups"`
	DigitBoundary      *bool `yaml:"digit_boundary"`
	WordStartGroupCap  int   `yaml:"word_start_group_cap"`
	Workers            int   `yaml:"workers"`
}

// LoadConfig reads a trainer.yaml document and returns the corresponding
// bpe.Config. Unset fields keep bpe.Config's zero values, not
// DefaultConfig's: a YAML document is expected to be explicit about the
// fields it cares about (composing a partial document with DefaultConfig is
// the caller's responsibility; this package offers no helper for it).
func LoadConfig(r io.Reader) (bpe.Config, error) {
	var yc yamlConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&yc); err != nil {
		return bpe.Config{}, err
	}

	alphabet := make([]rune, 0, len(yc.InitialAlphabet))
	for _, r := range yc.InitialAlphabet {
		alphabet = append(alphabet, r)
	}

	return bpe.Config{
		VocabSize:               yc.VocabSize,
		MinFrequency:            yc.MinFrequency,
		SpecialTokens:           yc.SpecialTokens,
		InitialAlphabet:         alphabet,
		LimitAlphabet:           yc.LimitAlphabet,
		ContinuingSubwordPrefix: yc.ContinuingSubwordPrefix,
		EndOfWordSuffix:         yc.EndOfWordSuffix,
		WordStartMarker:         yc.WordStartMarker,
		MaxTokenLength:          yc.MaxTokenLength,
		CapWordStartGroups:      yc.CapWordStartGroups,
		DigitBoundary:           yc.DigitBoundary,
		WordStartGroupCap:       yc.WordStartGroupCap,
		Workers:                 yc.Workers,
	}, nil
}
