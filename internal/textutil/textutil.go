// Package textutil holds the small text normalization primitives shared by
// the extraction pipeline: whitespace collapsing, list splitting, duplicate
// removal, and sign normalization.
package textutil

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// signNormalizer maps typographic minus and dash variants to ASCII '-'.
// U+2212 is the mathematical minus sign; U+2010..U+2013 are hyphen and dash
// forms that reference pages use interchangeably in front of digits.
var signNormalizer = runes.Map(func(r rune) rune {
	switch r {
	case '−', '‐', '‑', '‒', '–':
		return '-'
	}
	return r
})

// NormalizeSigns rewrites typographic minus/dash runes to ASCII '-'.
func NormalizeSigns(s string) string {
	out, _, err := transform.String(signNormalizer, s)
	if err != nil {
		return s
	}
	return out
}

// CollapseSpaces trims s and collapses internal whitespace runs to single
// spaces.
func CollapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range strings.TrimSpace(s) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\u00a0' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}

// SplitList splits a free-text enumeration on commas, semicolons, and bullet
// characters, returning the trimmed non-empty parts in order.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '•' || r == '·'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := CollapseSpaces(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Dedupe removes duplicate strings, keeping the first occurrence of each and
// preserving order.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
