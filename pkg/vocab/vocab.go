// Package vocab provides pre-trained BPE vocabularies for compression, and
// the sidecar persistence (special_tokens.txt/alphabet.txt/merges.txt) and
// YAML configuration a standalone training run uses.
package vocab

import (
	"sync"

	"github.com/ha1tch/unz/pkg/bpe"
)

// Language represents a programming language or text type.
type Language int

const (
	LangText       Language = iota // Natural language text (default)
	LangGo                         // Go source code
	LangPython                     // Python source code
	LangJavaScript                 // JavaScript/TypeScript source code
)

func (l Language) String() string {
	switch l {
	case LangGo:
		return "Go"
	case LangPython:
		return "Python"
	case LangJavaScript:
		return "JavaScript"
	default:
		return "Text"
	}
}

// Per-vocabulary merge budgets. Code vocabularies get a larger budget than
// plain text: keyword-heavy snippets (func/return/import, def/self/class,
// const/function/require) repeat more densely, so more merges survive
// before bpe.TrainBytes runs out of pairs occurring more than once.
const (
	textMerges = 600
	codeMerges = 900
)

var (
	once         sync.Once
	defaultVocab *bpe.Vocabulary
	goVocab      *bpe.Vocabulary
	pythonVocab  *bpe.Vocabulary
	jsVocab      *bpe.Vocabulary
)

func buildAll() {
	defaultVocab = bpe.TrainBytesVocab(textCorpus, textMerges)
	goVocab = bpe.TrainBytesVocab(goCorpus, codeMerges)
	pythonVocab = bpe.TrainBytesVocab(pythonCorpus, codeMerges)
	jsVocab = bpe.TrainBytesVocab(jsCorpus, codeMerges)
}

// Default returns the default BPE vocabulary for natural language text,
// training it on first use from an embedded seed corpus via
// bpe.TrainBytesVocab (so it is byte-complete: pkg/compress's lossless
// round-trip requirement never depends on the seed corpus's character
// coverage).
func Default() *bpe.Vocabulary {
	once.Do(buildAll)
	return defaultVocab
}

// ForLanguage returns the BPE vocabulary for the specified language,
// training it on first use the same way Default does.
func ForLanguage(lang Language) *bpe.Vocabulary {
	once.Do(buildAll)
	switch lang {
	case LangGo:
		return goVocab
	case LangPython:
		return pythonVocab
	case LangJavaScript:
		return jsVocab
	default:
		return defaultVocab
	}
}

// Size returns the number of tokens in the default vocabulary.
func Size() int {
	return Default().Size()
}

// SizeForLanguage returns the number of tokens in a language vocabulary.
func SizeForLanguage(lang Language) int {
	return ForLanguage(lang).Size()
}
