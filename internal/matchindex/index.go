// Package matchindex implements the search core: it tokenizes captured pane
// text once, finds every occurrence of an incrementally typed query, and
// assigns a conflict-free single-character label to each occurrence.
//
// The package is pure — no logging, no I/O. Query is a function of
// (index, query text, options) and returns a fresh slice every call.
package matchindex

import (
	"strings"
	"unicode"
)

// DefaultLabelPool is the label alphabet used when no custom pool is
// configured. Home-row characters come first so the most reachable keys
// label the highest-priority matches.
const DefaultLabelPool = "asdfghjklqwertyuiopzxcvbnmASDFGHJKLQWERTYUIOPZXCVBNM"

// Options configure index construction. Both values are fixed for the
// lifetime of the index.
type Options struct {
	// CaseSensitive disables case folding of index keys and queries.
	CaseSensitive bool
	// WordSeparators lists the characters that delimit the word to copy
	// within a token. Empty means the whole token is copied. Separators
	// never affect what can be found, only what is copied.
	WordSeparators string
}

// Token is one searchable unit: a maximal run of non-whitespace characters
// at a known position in the source text. Offsets and columns are byte
// offsets; the flattened view joins lines with a single \n.
type Token struct {
	Text        string
	CopyText    string // longest separator-delimited sub-word, fallback only
	StartOffset int
	EndOffset   int
	Line        int
	Column      int
}

// Index maps a case-normalized token key to every token sharing that key.
// Built once from the full source text and immutable afterwards.
type Index struct {
	opts   Options
	tokens map[string][]Token
}

// Build tokenizes sourceText and constructs the index. Empty source text
// yields an empty index for which every query returns no occurrences.
func Build(sourceText string, opts Options) *Index {
	idx := &Index{
		opts:   opts,
		tokens: make(map[string][]Token),
	}

	offset := 0
	for lineNum, line := range strings.Split(sourceText, "\n") {
		for _, span := range tokenSpans(line) {
			text := line[span[0]:span[1]]
			tok := Token{
				Text:        text,
				CopyText:    defaultCopyText(text, opts.WordSeparators),
				StartOffset: offset + span[0],
				EndOffset:   offset + span[1],
				Line:        lineNum,
				Column:      span[0],
			}
			key := text
			if !opts.CaseSensitive {
				key = strings.ToLower(key)
			}
			idx.tokens[key] = append(idx.tokens[key], tok)
		}
		offset += len(line) + 1 // +1 for the joining newline
	}

	return idx
}

// Options returns the construction options. Exposed so callers can reuse
// the same case and separator settings when presenting results.
func (idx *Index) Options() Options {
	return idx.opts
}

// tokenSpans returns the [start, end) byte spans of every maximal
// non-whitespace run in line.
func tokenSpans(line string) [][2]int {
	var spans [][2]int
	start := -1
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, [2]int{start, i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, [2]int{start, len(line)})
	}
	return spans
}

// subWords splits text on the separator characters and returns the
// [start, end) byte span of each resulting sub-word, in order.
func subWords(text, separators string) [][2]int {
	var spans [][2]int
	start := -1
	for i, r := range text {
		if strings.ContainsRune(separators, r) {
			if start >= 0 {
				spans = append(spans, [2]int{start, i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, [2]int{start, len(text)})
	}
	return spans
}

// defaultCopyText picks the longest sub-word of text as the fallback copy
// text. With no separators configured the whole token is copied.
func defaultCopyText(text, separators string) string {
	if separators == "" {
		return text
	}
	best := text
	bestLen := -1
	for _, span := range subWords(text, separators) {
		if n := span[1] - span[0]; n > bestLen {
			best = text[span[0]:span[1]]
			bestLen = n
		}
	}
	return best
}

// resolveCopyText picks the copy text for one occurrence whose match begins
// at matchStart within text. Preference order: the sub-word containing the
// match start, then the first sub-word beginning after it, then the longest
// sub-word in the token.
func resolveCopyText(text, separators string, matchStart int) string {
	if separators == "" {
		return text
	}
	spans := subWords(text, separators)
	for _, span := range spans {
		if span[0] <= matchStart && matchStart < span[1] {
			return text[span[0]:span[1]]
		}
		if span[0] > matchStart {
			return text[span[0]:span[1]]
		}
	}
	return defaultCopyText(text, separators)
}
