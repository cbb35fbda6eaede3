package bpe

import (
	"fmt"
	"strconv"
	"strings"
)

// TrainBytes runs a naive, single-threaded byte-level BPE merge loop over
// text and returns the resulting token-to-rank table. Unlike Trainer.Train
// (the word-boundary-aware, parallel, spec-compliant trainer in trainer.go),
// TrainBytes always starts from all 256 raw byte values, so every
// vocabulary it produces is byte-complete: any byte string decodes
// losslessly through the tokens it returns. pkg/vocab uses it to build the
// bootstrap vocabularies pkg/compress needs for guaranteed round-trip
// behavior, where Trainer's word-level alphabet selection could otherwise
// drop rare bytes.
//
// numMerges is a budget, not a guarantee: the loop stops early once no
// remaining pair occurs more than once.
func TrainBytes(text []byte, numMerges int) map[string]int {
	tokenRanks := make(map[string]int, 256+numMerges)
	for i := 0; i < 256; i++ {
		tokenRanks[string([]byte{byte(i)})] = i
	}

	ids := make([]int, len(text))
	for i, b := range text {
		ids[i] = int(b)
	}

	nextRank := 256

	for merge := 0; merge < numMerges; merge++ {
		pairCounts := make(map[string]int)
		for i := 0; i < len(ids)-1; i++ {
			key := fmt.Sprintf("%d,%d", ids[i], ids[i+1])
			pairCounts[key]++
		}

		if len(pairCounts) == 0 {
			break
		}

		var bestPair string
		bestCount := 0
		for pair, count := range pairCounts {
			if count > bestCount {
				bestCount = count
				bestPair = pair
			}
		}

		if bestCount < 2 {
			break
		}

		parts := strings.Split(bestPair, ",")
		id1, _ := strconv.Atoi(parts[0])
		id2, _ := strconv.Atoi(parts[1])

		var newBytes []byte
		for b, r := range tokenRanks {
			if r == id1 {
				newBytes = append(newBytes, []byte(b)...)
				break
			}
		}
		for b, r := range tokenRanks {
			if r == id2 {
				newBytes = append(newBytes, []byte(b)...)
				break
			}
		}

		tokenRanks[string(newBytes)] = nextRank
		newID := nextRank
		nextRank++

		newIDs := make([]int, 0, len(ids))
		i := 0
		for i < len(ids) {
			if i < len(ids)-1 && ids[i] == id1 && ids[i+1] == id2 {
				newIDs = append(newIDs, newID)
				i += 2
			} else {
				newIDs = append(newIDs, ids[i])
				i++
			}
		}
		ids = newIDs
	}

	return tokenRanks
}

// TrainBytesVocab is TrainBytes followed by NewVocabulary, for callers that
// want a ready-to-use Vocabulary rather than the raw rank table.
func TrainBytesVocab(text []byte, numMerges int) *Vocabulary {
	return NewVocabulary(TrainBytes(text, numMerges))
}
