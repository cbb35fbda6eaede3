// Command bpetrain trains a BPE vocabulary from a corpus and writes the
// result as a vocab.json plus a merges.txt sidecar.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/unz/pkg/bpe"
	"github.com/ha1tch/unz/pkg/vocab"
)

var (
	corpusPath        string
	configPath        string
	specialTokensPath string
	alphabetPath      string
	mergesPath        string
	outDir            string
	vocabSize         int
	minFrequency      int64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bpetrain:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bpetrain",
		Short:         "Train a BPE vocabulary from a text corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTrain,
	}

	root.Flags().StringVar(&corpusPath, "corpus", "", "corpus file to train on (required)")
	root.Flags().StringVar(&configPath, "config", "", "trainer.yaml config file (optional; overrides --vocab-size/--min-frequency when set)")
	root.Flags().StringVar(&specialTokensPath, "special-tokens", "", "special_tokens.txt sidecar (optional)")
	root.Flags().StringVar(&alphabetPath, "alphabet", "", "alphabet.txt sidecar (optional)")
	root.Flags().StringVar(&mergesPath, "merges-in", "", "merges.txt sidecar; presence switches to extend mode")
	root.Flags().StringVar(&outDir, "out", ".", "output directory for vocab.json and merges.txt")
	root.Flags().IntVar(&vocabSize, "vocab-size", 10000, "target vocabulary size")
	root.Flags().Int64Var(&minFrequency, "min-frequency", 2, "minimum pair frequency eligible for a merge")
	root.MarkFlagRequired("corpus")

	return root
}

func runTrain(cmd *cobra.Command, args []string) error {
	corpus, err := os.ReadFile(corpusPath)
	if err != nil {
		return fmt.Errorf("reading corpus: %w", err)
	}

	cfg := bpe.DefaultConfig(vocabSize)
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		defer f.Close()
		cfg, err = vocab.LoadConfig(f)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg.MinFrequency = minFrequency
	}

	src := vocab.Sources{Corpus: []string{string(corpus)}}
	if specialTokensPath != "" {
		f, err := os.Open(specialTokensPath)
		if err != nil {
			return fmt.Errorf("opening special tokens: %w", err)
		}
		defer f.Close()
		src.SpecialTokens = f
	}
	if alphabetPath != "" {
		f, err := os.Open(alphabetPath)
		if err != nil {
			return fmt.Errorf("opening alphabet: %w", err)
		}
		defer f.Close()
		src.Alphabet = f
	}
	if mergesPath != "" {
		f, err := os.Open(mergesPath)
		if err != nil {
			return fmt.Errorf("opening merges: %w", err)
		}
		defer f.Close()
		src.Merges = f
	}

	model, err := vocab.TrainFromSources(context.Background(), cfg, src)
	if err != nil {
		return fmt.Errorf("training: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	vocabFile, err := os.Create(outDir + "/vocab.json")
	if err != nil {
		return fmt.Errorf("creating vocab.json: %w", err)
	}
	defer vocabFile.Close()
	enc := json.NewEncoder(vocabFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(model.Vocab); err != nil {
		return fmt.Errorf("writing vocab.json: %w", err)
	}

	mergesFile, err := os.Create(outDir + "/merges.txt")
	if err != nil {
		return fmt.Errorf("creating merges.txt: %w", err)
	}
	defer mergesFile.Close()

	symbolMerges := make([]bpe.SymbolPair, 0, len(model.OrderedMerges()))
	modelVocab := model.Vocabulary()
	for _, p := range model.OrderedMerges() {
		left, _ := modelVocab.Symbol(p.First)
		right, _ := modelVocab.Symbol(p.Second)
		symbolMerges = append(symbolMerges, bpe.SymbolPair{Left: left, Right: right})
	}
	if err := vocab.WriteMerges(mergesFile, symbolMerges); err != nil {
		return fmt.Errorf("writing merges.txt: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "trained vocabulary: %d tokens, %d merges\n",
		modelVocab.Size(), len(symbolMerges))
	return nil
}
