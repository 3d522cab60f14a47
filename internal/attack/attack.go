// Package attack scans page text for attack entries and coalesces the
// candidates into at most one entry per attack name.
package attack

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hyperifyio/statblock/internal/textutil"
	"github.com/hyperifyio/statblock/record"
)

// detailedRe matches a full attack line with a trailing parenthesized damage
// expression, e.g. `Melee jaws +18 (2d8+9 piercing)`. Arbitrary non-newline
// text is tolerated between the bonus and the opening parenthesis.
var detailedRe = regexp.MustCompile(`(?im)\b(?:melee|ranged)\b\s+(.+?)\s+([+-]\d+)[^()\n]*\(([^()\n]+)\)`)

// relaxedRe matches an attack line without requiring damage, e.g.
// `Ranged longbow +12`. Used only when detailedRe finds nothing.
var relaxedRe = regexp.MustCompile(`(?im)\b(?:melee|ranged)\b\s+(.+?)\s+([+-]\d+)`)

// Scan extracts attack candidates from text using the detailed pattern
// first, falling back to the relaxed pattern only when no detailed match
// exists, and returns the merged entries.
func Scan(text string) []record.Attack {
	text = textutil.NormalizeSigns(text)
	var cands []record.Attack
	for _, m := range detailedRe.FindAllStringSubmatch(text, -1) {
		cands = append(cands, candidate(m[1], m[2], m[3]))
	}
	if len(cands) == 0 {
		for _, m := range relaxedRe.FindAllStringSubmatch(text, -1) {
			cands = append(cands, candidate(m[1], m[2], ""))
		}
	}
	return Merge(cands)
}

func candidate(name, bonus, damage string) record.Attack {
	return record.Attack{
		Name:   strings.Trim(textutil.CollapseSpaces(name), " ,;"),
		Bonus:  bonus,
		Damage: textutil.CollapseSpaces(damage),
	}
}

// Merge collapses candidates to one entry per case-insensitive name. When
// two candidates share a name the numerically larger bonus magnitude wins;
// an exact tie keeps the first encountered. Output order is first-encounter
// order among the kept names.
func Merge(cands []record.Attack) []record.Attack {
	index := make(map[string]int, len(cands))
	out := make([]record.Attack, 0, len(cands))
	for _, c := range cands {
		key := strings.ToLower(c.Name)
		if i, ok := index[key]; ok {
			if magnitude(c.Bonus) > magnitude(out[i].Bonus) {
				out[i] = c
			}
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out
}

// magnitude parses a signed bonus string and returns its absolute value.
func magnitude(bonus string) int {
	n, err := strconv.Atoi(strings.TrimLeft(bonus, "+-"))
	if err != nil {
		return 0
	}
	return n
}
