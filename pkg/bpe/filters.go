package bpe

import "strings"

// The word-start marker (discoveryFilters.marker, set from
// Config.WordStartMarker) is the leading-whitespace marker used to decorate
// a word's first character (the GPT-2-style "Ġ" convention). The group cap
// below only engages when the marker is non-empty, since a corpus tokenized
// without the convention has no group boundaries to enforce; the
// digit-boundary guard does not depend on the marker.

// defaultWordStartGroupCap is the Ġ-group threshold used when
// discoveryFilters.wordStartGroupCap is left at its zero value, matching
// trainer.rs's fixed limit of 20 groups.
const defaultWordStartGroupCap = 20

// discoveryFilters holds the two independently-togglable guards applied
// only during discovery (new-merge search), never during extend-mode
// replay of an inherited merge list: trainer.rs enforces these solely in
// do_train_extend's post-replay continuation loop (and in do_train_original
// by extension, once Config turns them on), never retroactively against
// merges a caller supplied.
type discoveryFilters struct {
	// capWordStartGroups rejects merging two symbols whose combined text,
	// split on marker, yields more than wordStartGroupCap non-empty
	// groups — i.e. a merge that would weld too many separate word-start
	// groups into a single token. wordStartGroupCap of 0 means
	// defaultWordStartGroupCap.
	capWordStartGroups bool
	marker             string
	wordStartGroupCap  int

	// digitBoundary rejects merging two symbols when a's last character
	// or b's first character is an ASCII digit, keeping a digit run from
	// growing past a single character via merge.
	digitBoundary bool
}

// allow reports whether a candidate merge of bytes a followed by bytes b
// passes both configured filters.
func (f discoveryFilters) allow(a, b string) bool {
	if f.capWordStartGroups && f.marker != "" {
		combined := a + b
		groups := 0
		for _, part := range strings.Split(combined, f.marker) {
			if part != "" {
				groups++
			}
		}
		threshold := f.wordStartGroupCap
		if threshold <= 0 {
			threshold = defaultWordStartGroupCap
		}
		if groups > threshold {
			return false
		}
	}
	if f.digitBoundary {
		if endsWithASCIIDigit(a) || startsWithASCIIDigit(b) {
			return false
		}
	}
	return true
}

// endsWithASCIIDigit and startsWithASCIIDigit check only the boundary
// byte: an ASCII digit never appears as a UTF-8 continuation byte, so
// this is safe without decoding runes.
func endsWithASCIIDigit(s string) bool {
	return s != "" && isASCIIDigit(s[len(s)-1])
}

func startsWithASCIIDigit(s string) bool {
	return s != "" && isASCIIDigit(s[0])
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
