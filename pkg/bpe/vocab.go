// Package bpe implements Byte Pair Encoding vocabulary training and
// tokenization.
//
// Training builds a token vocabulary and an ordered list of merge rules from
// a multiset of training words (see Trainer). Tokenization applies an
// already-trained vocabulary to raw input using a greedy longest-match trie
// (see Encoder). The two halves share the Vocabulary type but are otherwise
// independent: a Vocabulary produced by Trainer.Train can be handed straight
// to an Encoder, and a Vocabulary loaded from a tiktoken-style file can be
// grown further via Trainer.TrainExtend.
package bpe

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// TokenId identifies a vocabulary entry. Ids are dense and assigned in
// insertion order starting at 0; once assigned, an id's symbol never
// changes.
type TokenId uint32

// Token is a single vocabulary entry.
type Token struct {
	Bytes []byte // the symbol's byte representation
	Rank  int    // insertion order; equal to the TokenId that names it
}

// Vocabulary is a growable bijection between symbol strings and TokenIds.
type Vocabulary struct {
	tokens   []Token
	byteToID map[string]TokenId
	maxLen   int
}

// NewVocabulary creates a vocabulary from a map of token bytes to ranks,
// assigning TokenIds in rank order.
func NewVocabulary(tokenRanks map[string]int) *Vocabulary {
	type tokenRank struct {
		bytes []byte
		rank  int
	}
	sorted := make([]tokenRank, 0, len(tokenRanks))
	for b, r := range tokenRanks {
		sorted = append(sorted, tokenRank{[]byte(b), r})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].rank < sorted[j].rank
	})

	v := &Vocabulary{
		tokens:   make([]Token, 0, len(sorted)),
		byteToID: make(map[string]TokenId, len(sorted)),
	}
	for _, tr := range sorted {
		v.appendRaw(tr.bytes)
	}
	return v
}

// EmptyVocabulary returns a vocabulary with no entries, ready for the
// incremental Add calls a training run performs.
func EmptyVocabulary() *Vocabulary {
	return &Vocabulary{byteToID: make(map[string]TokenId)}
}

func (v *Vocabulary) appendRaw(sym []byte) TokenId {
	id := TokenId(len(v.tokens))
	v.tokens = append(v.tokens, Token{Bytes: sym, Rank: int(id)})
	v.byteToID[string(sym)] = id
	if len(sym) > v.maxLen {
		v.maxLen = len(sym)
	}
	return id
}

// Add inserts symbol if absent and returns its TokenId either way. This is
// the mutation path the trainer uses: alphabet construction, word encoding,
// and merge emission all grow the vocabulary through Add.
func (v *Vocabulary) Add(symbol string) TokenId {
	if id, ok := v.byteToID[symbol]; ok {
		return id
	}
	return v.appendRaw([]byte(symbol))
}

// MustAppend appends symbol and asserts its id equals wantID, for loaders
// that must preserve an externally-supplied sequence (alphabet.txt,
// special_tokens.txt). It panics on violation; callers at the package
// boundary (pkg/vocab) translate that into ErrSchemaViolation.
func (v *Vocabulary) MustAppend(symbol string, wantID TokenId) {
	if existing, ok := v.byteToID[symbol]; ok {
		if existing != wantID {
			panic(fmt.Sprintf("symbol %q already has id %d, cannot reassign to %d", symbol, existing, wantID))
		}
		return
	}
	got := v.appendRaw([]byte(symbol))
	if got != wantID {
		panic(fmt.Sprintf("expected id %d for %q, got %d", wantID, symbol, got))
	}
}

// Size returns the vocabulary size.
func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// MaxLen returns the maximum token length in bytes.
func (v *Vocabulary) MaxLen() int {
	return v.maxLen
}

// GetToken returns the token for a given id.
func (v *Vocabulary) GetToken(id int) (Token, bool) {
	if id < 0 || id >= len(v.tokens) {
		return Token{}, false
	}
	return v.tokens[id], true
}

// Symbol returns the string for id, or false if id is unassigned.
func (v *Vocabulary) Symbol(id TokenId) (string, bool) {
	if int(id) >= len(v.tokens) {
		return "", false
	}
	return string(v.tokens[id].Bytes), true
}

// GetID returns the id for the given token bytes.
func (v *Vocabulary) GetID(bytes []byte) (int, bool) {
	id, ok := v.byteToID[string(bytes)]
	return int(id), ok
}

// Lookup returns the TokenId for symbol, mirroring GetID for callers already
// working in TokenId (the trainer's alphabet/merge code).
func (v *Vocabulary) Lookup(symbol string) (TokenId, bool) {
	id, ok := v.byteToID[symbol]
	return id, ok
}

// Has reports whether symbol is already in the vocabulary.
func (v *Vocabulary) Has(symbol string) bool {
	_, ok := v.byteToID[symbol]
	return ok
}

// Decode converts token ids back to bytes.
func (v *Vocabulary) Decode(ids []int) []byte {
	total := 0
	for _, id := range ids {
		if id >= 0 && id < len(v.tokens) {
			total += len(v.tokens[id].Bytes)
		}
	}

	result := make([]byte, 0, total)
	for _, id := range ids {
		if id >= 0 && id < len(v.tokens) {
			result = append(result, v.tokens[id].Bytes...)
		}
	}
	return result
}

// AllTokens returns a map of token string to token id.
func (v *Vocabulary) AllTokens() map[string]int {
	result := make(map[string]int, len(v.tokens))
	for id, tok := range v.tokens {
		result[string(tok.Bytes)] = id
	}
	return result
}

// AllTokensAsTokenId is AllTokens with TokenId-typed values, for Model's
// map[string]TokenId field.
func (v *Vocabulary) AllTokensAsTokenId() map[string]TokenId {
	result := make(map[string]TokenId, len(v.tokens))
	for id, tok := range v.tokens {
		result[string(tok.Bytes)] = TokenId(id)
	}
	return result
}

// LoadTiktoken loads a vocabulary from a tiktoken-format reader: base64
// token bytes followed by a space and a rank.
func LoadTiktoken(r io.Reader) (*Vocabulary, error) {
	tokenRanks := make(map[string]int)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}

		tokenBytes, err := base64.StdEncoding.DecodeString(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid base64: %s", parts[0])
		}

		rank, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid rank: %s", parts[1])
		}

		tokenRanks[string(tokenBytes)] = rank
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewVocabulary(tokenRanks), nil
}

// CreateBasicVocab creates a basic 256-byte vocabulary (no merges).
func CreateBasicVocab() *Vocabulary {
	tokenRanks := make(map[string]int, 256)
	for i := 0; i < 256; i++ {
		tokenRanks[string([]byte{byte(i)})] = i
	}
	return NewVocabulary(tokenRanks)
}
