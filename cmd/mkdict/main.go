// Command mkdict trains a byte-level BPE dictionary from a corpus file and
// emits it as a Go source file, for embedding a bootstrap vocabulary into
// pkg/vocab without a runtime training step.
//
// Usage:
//
//	mkdict -in corpus.txt -out tokens.go -package vocab -var goTokens -merges 2000
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ha1tch/unz/pkg/bpe"
)

var (
	inPath    = flag.String("in", "", "corpus file to train on (required)")
	outPath   = flag.String("out", "", "output Go source file (default: stdout)")
	goPackage = flag.String("package", "vocab", "package name for generated source")
	varName   = flag.String("var", "tokens", "variable name for generated token map")
	numMerges = flag.Int("merges", 2000, "number of BPE merges beyond the 256 base bytes")
)

func main() {
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "mkdict: missing -in corpus file")
		flag.Usage()
		os.Exit(1)
	}

	corpus, err := os.ReadFile(*inPath)
	if err != nil {
		fatal("cannot read '%s': %v", *inPath, err)
	}

	tokenRanks := trainBPE(corpus, *numMerges)

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatal("cannot create '%s': %v", *outPath, err)
		}
		defer f.Close()
		out = f
	}

	writeGoSource(out, tokenRanks)
}

// trainBPE trains a byte-complete BPE dictionary and returns it as the
// plain token-to-rank map writeGoSource and bpe.NewVocabulary both accept.
// This wraps bpe.TrainBytes rather than pkg/bpe's word-boundary-aware
// Trainer: the generated source is consumed directly by bpe.NewVocabulary,
// which needs the full 256-byte base alphabet mkdict's own tests assert on,
// not a corpus-frequency-culled alphabet.
func trainBPE(corpus []byte, merges int) map[string]int {
	return bpe.TrainBytes(corpus, merges)
}

// writeGoSource emits tokenRanks as a Go source file declaring a
// map[string]int literal, sorted by rank for stable, reviewable diffs.
func writeGoSource(w io.Writer, tokenRanks map[string]int) {
	type entry struct {
		token string
		rank  int
	}
	entries := make([]entry, 0, len(tokenRanks))
	for tok, rank := range tokenRanks {
		entries = append(entries, entry{tok, rank})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].rank < entries[j].rank })

	fmt.Fprintf(w, "// Code generated by mkdict from -in corpus, -merges %d. DO NOT EDIT.\n\n", *numMerges)
	fmt.Fprintf(w, "package %s\n\n", *goPackage)
	fmt.Fprintf(w, "var %s = map[string]int{\n", *varName)
	for _, e := range entries {
		fmt.Fprintf(w, "\t%s: %d,\n", goStringLiteral(e.token), e.rank)
	}
	fmt.Fprint(w, "}\n")
}

// goStringLiteral renders s as a double-quoted Go string literal, escaping
// bytes that are not printable ASCII so the generated file round-trips
// arbitrary byte-level tokens (non-UTF-8 sequences included).
func goStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&b, `\x%02x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "mkdict: "+format+"\n", args...)
	os.Exit(1)
}
