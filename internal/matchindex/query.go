package matchindex

import (
	"sort"
	"strings"
)

// QueryOptions configure one query evaluation.
type QueryOptions struct {
	// ReverseOrder prioritizes matches from the bottom of the pane upward.
	ReverseOrder bool
	// LabelPool is the ordered label alphabet. Empty means DefaultLabelPool.
	LabelPool string
}

// Occurrence is one located instance of the query inside one token.
// MatchStart and MatchEnd are byte offsets of the query within Text.
// Label is 0 when the pool was exhausted before this occurrence.
type Occurrence struct {
	Token
	MatchStart int
	MatchEnd   int
	Label      rune
}

// dedupeKey identifies one occurrence across symmetric processing paths.
type dedupeKey struct {
	startOffset int
	matchStart  int
	text        string
}

// Query finds every occurrence of query in the indexed text, resolves each
// occurrence's copy text, orders the result by priority, and assigns labels.
// An empty query returns nil. The returned slice is freshly allocated; the
// index is never mutated.
func (idx *Index) Query(query string, opts QueryOptions) []Occurrence {
	if query == "" {
		return nil
	}
	if !idx.opts.CaseSensitive {
		query = strings.ToLower(query)
	}

	var occs []Occurrence
	for key, tokens := range idx.tokens {
		if !strings.Contains(key, query) {
			continue
		}
		for _, tok := range tokens {
			occs = append(occs, idx.tokenOccurrences(tok, query)...)
		}
	}

	occs = dedupe(occs)

	// Priority order: ascending source position, then match position within
	// the token. Reversing afterwards gives strict bottom-first priority.
	sort.Slice(occs, func(i, j int) bool {
		if occs[i].StartOffset != occs[j].StartOffset {
			return occs[i].StartOffset < occs[j].StartOffset
		}
		return occs[i].MatchStart < occs[j].MatchStart
	})
	if opts.ReverseOrder {
		for i, j := 0, len(occs)-1; i < j; i, j = i+1, j-1 {
			occs[i], occs[j] = occs[j], occs[i]
		}
	}

	pool := opts.LabelPool
	if pool == "" {
		pool = DefaultLabelPool
	}
	assignLabels(occs, query, pool, idx.opts.CaseSensitive)

	return occs
}

// tokenOccurrences finds every position of query inside tok's text. The
// cursor advances by one after each hit so repeated-letter queries surface
// every position the user might mean.
func (idx *Index) tokenOccurrences(tok Token, query string) []Occurrence {
	searchText := tok.Text
	if !idx.opts.CaseSensitive {
		searchText = strings.ToLower(searchText)
	}

	var occs []Occurrence
	pos := 0
	for {
		i := strings.Index(searchText[pos:], query)
		if i < 0 {
			break
		}
		pos += i

		occ := Occurrence{
			Token:      tok,
			MatchStart: pos,
			MatchEnd:   pos + len(query),
		}
		occ.CopyText = resolveCopyText(tok.Text, idx.opts.WordSeparators, pos)
		occs = append(occs, occ)

		pos++
	}
	return occs
}

func dedupe(occs []Occurrence) []Occurrence {
	seen := make(map[dedupeKey]struct{}, len(occs))
	unique := occs[:0]
	for _, occ := range occs {
		key := dedupeKey{occ.StartOffset, occ.MatchStart, occ.Text}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, occ)
	}
	return unique
}

// LookupByLabel returns the occurrence carrying the given label, if any.
func LookupByLabel(occs []Occurrence, label rune) (Occurrence, bool) {
	for _, occ := range occs {
		if occ.Label != 0 && occ.Label == label {
			return occ, true
		}
	}
	return Occurrence{}, false
}

// OnLine returns the occurrences located on the given zero-based line,
// preserving their priority order.
func OnLine(occs []Occurrence, line int) []Occurrence {
	var out []Occurrence
	for _, occ := range occs {
		if occ.Line == line {
			out = append(out, occ)
		}
	}
	return out
}
