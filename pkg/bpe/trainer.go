package bpe

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Splitter breaks a chunk of input text into pre-tokenized training words.
// The default splitter (see defaultSplit) splits on whitespace runs and
// prefixes every word but the first in a chunk with WordStartMarker, the
// GPT-2-style convention that lets the discovery filters in filters.go
// reason about word boundaries.
type Splitter func(text string) []string

// Config controls a training run. Zero value is usable: DefaultConfig
// returns one with sane defaults filled in.
type Config struct {
	// VocabSize is the target vocabulary size (special tokens + alphabet +
	// discovered merges). Training stops once reached or once no candidate
	// pair meets MinFrequency, whichever comes first.
	VocabSize int

	// MinFrequency is the minimum pair occurrence count eligible for a
	// merge. The teacher's naive trainer used a hardcoded floor of 2; this
	// generalizes that into a configurable floor with the same default.
	MinFrequency int64

	// SpecialTokens are reserved symbols registered before the alphabet,
	// in order, each guaranteed its own low, stable TokenId.
	SpecialTokens []string

	// InitialAlphabet forces inclusion of these runes in the alphabet
	// regardless of corpus frequency.
	InitialAlphabet []rune

	// LimitAlphabet caps the alphabet size; 0 means unbounded. When the
	// cap forces a cull, InitialAlphabet runes are never dropped.
	LimitAlphabet int

	// ContinuingSubwordPrefix, when non-empty, decorates every non-initial
	// character of a word (e.g. a WordPiece-style "##" marker).
	ContinuingSubwordPrefix string

	// EndOfWordSuffix, when non-empty, decorates the final character of
	// every word.
	EndOfWordSuffix string

	// WordStartMarker decorates the first character of a word that
	// followed whitespace (the GPT-2 "Ġ" convention). Used by the default
	// Splitter and by the discovery filters.
	WordStartMarker string

	// MaxTokenLength caps the character length (not byte length) of any
	// merged token; 0 means unbounded. Enforced at merge time, never
	// retroactively.
	MaxTokenLength int

	// CapWordStartGroups and DigitBoundary independently toggle the two
	// discovery-only filters in filters.go. Both are *bool rather than
	// bool so nil ("unset, use the training mode's default") is
	// distinguishable from an explicit pointer to false ("off, even in
	// modes that would otherwise default this on") — Go's bool zero value
	// can't make that distinction. Use BoolPtr to build one inline.
	CapWordStartGroups *bool
	DigitBoundary      *bool

	// WordStartGroupCap overrides the Ġ-group filter's threshold (the
	// number of word-start groups a single candidate merge may span)
	// when CapWordStartGroups is on; 0 means the default of 20.
	WordStartGroupCap int

	// Splitter pre-tokenizes fed text into training words. Defaults to
	// defaultSplit if nil.
	Splitter Splitter

	// Workers bounds parallelism for pair indexing, merge rewriting, and
	// Feed. 0 means GOMAXPROCS.
	Workers int

	// Logger receives structured progress events. Defaults to slog's
	// default logger if nil.
	Logger *slog.Logger
}

// DefaultConfig returns a Config usable for plain-text training: no
// special tokens, unbounded alphabet, no length cap, discovery filters off
// (Open Question resolution: these only default on inside TrainExtend's
// discovery continuation, per trainer.rs).
func DefaultConfig(vocabSize int) Config {
	return Config{
		VocabSize:       vocabSize,
		MinFrequency:    2,
		WordStartMarker: "Ġ",
	}
}

func (c Config) splitter() Splitter {
	if c.Splitter != nil {
		return c.Splitter
	}
	marker := c.WordStartMarker
	return func(text string) []string {
		return defaultSplit(text, marker)
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c Config) filters() discoveryFilters {
	return discoveryFilters{
		capWordStartGroups: c.CapWordStartGroups != nil && *c.CapWordStartGroups,
		marker:             c.WordStartMarker,
		wordStartGroupCap:  c.WordStartGroupCap,
		digitBoundary:      c.DigitBoundary != nil && *c.DigitBoundary,
	}
}

// BoolPtr returns a pointer to b, for populating Config.CapWordStartGroups
// and Config.DigitBoundary, where nil and &false carry different meaning.
func BoolPtr(b bool) *bool { return &b }

// defaultSplit splits text on whitespace runs, marking every word after
// the first whitespace run with marker.
func defaultSplit(text string, marker string) []string {
	fields := strings.Fields(text)
	if marker == "" || len(fields) == 0 {
		return fields
	}
	out := make([]string, len(fields))
	for i, w := range fields {
		if i == 0 && !leadingWhitespace(text) {
			out[i] = w
			continue
		}
		out[i] = marker + w
	}
	return out
}

func leadingWhitespace(text string) bool {
	for _, r := range text {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}
	return false
}

// Trainer accumulates word frequencies via Feed and runs the discovery loop
// via Train or TrainExtend. A Trainer is not safe for concurrent Feed and
// Train calls; Feed itself parallelizes internally.
type Trainer struct {
	cfg        Config
	mu         sync.Mutex
	wordCounts map[string]int64
	runID      string
}

// NewTrainer creates a Trainer with the given configuration.
func NewTrainer(cfg Config) *Trainer {
	return &Trainer{
		cfg:        cfg,
		wordCounts: make(map[string]int64),
		runID:      uuid.NewString(),
	}
}

// Feed splits each text in texts via the configured Splitter and
// accumulates word counts, in parallel across a bounded worker pool,
// mirroring trainer.rs's feed. Safe to call multiple times (e.g. once per
// file of a multi-file corpus); counts accumulate across calls.
func (t *Trainer) Feed(ctx context.Context, texts []string) error {
	workers := t.cfg.workers()
	if workers > len(texts) {
		workers = len(texts)
	}
	if workers < 1 {
		workers = 1
	}
	split := t.cfg.splitter()

	partials := make([]map[string]int64, workers)
	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(texts) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := lo + chunk
		if lo > len(texts) {
			lo = len(texts)
		}
		if hi > len(texts) {
			hi = len(texts)
		}
		g.Go(func() error {
			local := make(map[string]int64)
			for i := lo; i < hi; i++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				for _, word := range split(texts[i]) {
					local[word]++
				}
			}
			partials[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, local := range partials {
		for word, count := range local {
			t.wordCounts[word] += count
		}
	}
	return nil
}

// WordCount returns the current accumulated count for word, for tests and
// diagnostics.
func (t *Trainer) WordCount(word string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wordCounts[word]
}

// trainState is the shared mutable state of a discovery run, threaded
// through runMergeLoop so Train and TrainExtend (extend.go) can share the
// same core loop.
type trainState struct {
	vocab     *Vocabulary
	words     []*Word
	weights   []int64
	counts    map[Pair]int64
	positions map[Pair]map[int]struct{}
	h         *candidateHeap
	merges    []Pair
}

// Train runs full discovery from scratch: build special tokens, compute
// the alphabet, tokenize every accumulated word, index pairs, then
// repeatedly pop the highest-count pair (count desc, pair asc tie-break)
// and merge it everywhere it occurs until VocabSize is reached or no
// candidate meets MinFrequency. Mirrors trainer.rs's do_train_original.
func (t *Trainer) Train(ctx context.Context) (*Model, error) {
	t.mu.Lock()
	wordCounts := make(map[string]int64, len(t.wordCounts))
	for w, c := range t.wordCounts {
		wordCounts[w] = c
	}
	t.mu.Unlock()

	log := t.cfg.logger().With("run_id", t.runID, "component", "bpe.trainer")
	log.Info("train starting", "distinct_words", len(wordCounts), "target_vocab_size", t.cfg.VocabSize)

	vocab := EmptyVocabulary()
	for _, tok := range t.cfg.SpecialTokens {
		vocab.Add(tok)
	}

	forced := make(map[rune]struct{}, len(t.cfg.InitialAlphabet))
	for _, r := range t.cfg.InitialAlphabet {
		forced[r] = struct{}{}
	}
	alphabetRunes := buildAlphabet(wordCounts, forced, t.cfg.LimitAlphabet)
	alphabetSet := make(map[rune]struct{}, len(alphabetRunes))
	for _, r := range alphabetRunes {
		vocab.Add(string(r))
		alphabetSet[r] = struct{}{}
	}
	log.Info("alphabet built", "size", len(alphabetRunes))

	words := make([]string, 0, len(wordCounts))
	for w := range wordCounts {
		words = append(words, w)
	}
	sort.Strings(words)
	weights := make([]int64, len(words))
	for i, w := range words {
		weights[i] = wordCounts[w]
	}

	tokenizedWords := tokenizeWords(words, alphabetSet, vocab, t.cfg.ContinuingSubwordPrefix, t.cfg.EndOfWordSuffix)

	idx := countPairs(tokenizedWords, weights, t.cfg.workers())

	st := &trainState{
		vocab:     vocab,
		words:     tokenizedWords,
		weights:   weights,
		counts:    idx.counts,
		positions: idx.positions,
		h:         newCandidateHeap(idx.counts),
	}

	t.runMergeLoop(ctx, st, t.cfg.filters(), log)

	log.Info("train finished", "vocab_size", st.vocab.Size(), "merges", len(st.merges))
	return newModel(st, t.cfg.ContinuingSubwordPrefix, t.cfg.EndOfWordSuffix), nil
}

// runMergeLoop is the shared discovery core used by Train and (via
// extend.go) TrainExtend's post-replay continuation.
func (t *Trainer) runMergeLoop(ctx context.Context, st *trainState, filt discoveryFilters, log *slog.Logger) {
	for st.vocab.Size() < t.cfg.VocabSize {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pair, count, ok := st.h.popFresh(st.counts)
		if !ok || count < t.cfg.MinFrequency {
			break
		}

		aStr, aOK := st.vocab.Symbol(pair.First)
		bStr, bOK := st.vocab.Symbol(pair.Second)
		if !aOK || !bOK {
			continue
		}
		if !filt.allow(aStr, bStr) {
			// Discard permanently: the pair stays banned for the rest of
			// discovery (trainer.rs applies these filters the same way,
			// never retrying a rejected candidate).
			continue
		}
		newSymbol := aStr + bStr
		if t.cfg.MaxTokenLength > 0 && utf8.RuneCountInString(newSymbol) > t.cfg.MaxTokenLength {
			// Unlike extend-mode replay (which always emits an inherited
			// merge regardless of length), a fresh discovery candidate
			// that would itself exceed the cap is simply never chosen.
			continue
		}
		newID := st.vocab.Add(newSymbol)
		st.merges = append(st.merges, pair)

		positions := st.positions[pair]
		affected := make([]int, 0, len(positions))
		for i := range positions {
			affected = append(affected, i)
		}
		sort.Ints(affected)

		t.applyMerge(st, pair, newID, affected)

		if log != nil {
			log.Debug("merge applied", "first", pair.First, "second", pair.Second, "new_id", newID, "count", count, "vocab_size", st.vocab.Size())
		}
	}
}

// applyMerge rewrites pair into newID across the affected words (in
// parallel: affected is split into at most Workers contiguous chunks, one
// goroutine per chunk — each word's symbol slice is disjoint
// storage, so no aliasing between workers is possible) and folds the
// resulting per-word pair-count deltas into the run's global counts table,
// pushing each touched pair back onto the heap with its fresh count.
func (t *Trainer) applyMerge(st *trainState, pair Pair, newID TokenId, affected []int) {
	type wordDeltas struct {
		idx    int
		deltas []PairDelta
	}
	results := make([]wordDeltas, len(affected))

	workers := t.cfg.workers()
	if workers > len(affected) {
		workers = len(affected)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	chunk := (len(affected) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo > len(affected) {
			lo = len(affected)
		}
		if hi > len(affected) {
			hi = len(affected)
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for k := lo; k < hi; k++ {
				i := affected[k]
				deltas := st.words[i].Merge(pair.First, pair.Second, newID, t.cfg.MaxTokenLength)
				results[k] = wordDeltas{idx: i, deltas: deltas}
			}
		}(lo, hi)
	}
	wg.Wait()

	for _, r := range results {
		weight := st.weights[r.idx]
		for _, d := range r.deltas {
			st.counts[d.Pair] += d.Delta * weight
			if d.Delta > 0 {
				set, ok := st.positions[d.Pair]
				if !ok {
					set = make(map[int]struct{})
					st.positions[d.Pair] = set
				}
				set[r.idx] = struct{}{}
			}
			if c := st.counts[d.Pair]; c > 0 {
				st.h.push(d.Pair, c)
			}
		}
	}
}
