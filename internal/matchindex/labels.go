package matchindex

import (
	"unicode"
	"unicode/utf8"
)

// assignLabels walks occurrences in priority order and gives each the first
// pool character that cannot be confused with continued typing:
//
//   - characters of the query itself are banned everywhere (typing one must
//     refine the search, never select),
//   - the character immediately following any occurrence's matched span is
//     banned everywhere (ambiguous between select and keep-typing),
//   - characters appearing inside an occurrence's own text are banned for
//     that occurrence only,
//   - a pool character consumed by an earlier occurrence is never reused.
//
// Pool exhaustion leaves Label zero; such occurrences stay highlighted but
// are reachable only through the Enter default.
func assignLabels(occs []Occurrence, query, pool string, caseSensitive bool) {
	fold := func(r rune) rune {
		if caseSensitive {
			return r
		}
		return unicode.ToLower(r)
	}

	banned := make(map[rune]bool)
	for _, r := range query {
		banned[fold(r)] = true
	}
	for _, occ := range occs {
		if occ.MatchEnd < len(occ.Text) {
			r, _ := utf8.DecodeRuneInString(occ.Text[occ.MatchEnd:])
			banned[fold(r)] = true
		}
	}

	// Tracks the pool character itself, so a and A stay independent labels
	// even in case-insensitive mode.
	used := make(map[rune]bool)

	for i := range occs {
		own := make(map[rune]bool)
		for _, r := range occs[i].Text {
			own[fold(r)] = true
		}

		for _, c := range pool {
			if used[c] {
				continue
			}
			fc := fold(c)
			if banned[fc] || own[fc] {
				continue
			}
			occs[i].Label = c
			used[c] = true
			break
		}
	}
}
