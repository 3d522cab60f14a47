// Package extract assembles a statistics record from a page. Each field has
// an ordered list of strategies tried most-specific first; the first
// non-empty result wins and absence is a normal outcome, never an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hyperifyio/statblock/internal/attack"
	"github.com/hyperifyio/statblock/internal/page"
	"github.com/hyperifyio/statblock/internal/textutil"
	"github.com/hyperifyio/statblock/record"
)

// creatureLevelRe matches the level marker, e.g. `Creature 4` or
// `Creature -1`.
var creatureLevelRe = regexp.MustCompile(`\bCreature\s+([+-]?\d+)\b`)

// nameSuffixRe strips a trailing level annotation from a heading, e.g. the
// `(Creature 7)` in `Young Red Dragon (Creature 7)`.
var nameSuffixRe = regexp.MustCompile(`\s*\(\s*Creature\s+[+-]?\d+\s*\)\s*$`)

// creaturePrefixRe captures the text immediately preceding a level marker,
// e.g. `Barghest` from `Barghest Creature 4`.
var creaturePrefixRe = regexp.MustCompile(`^(.*?)[\s(]*\bCreature\s+[+-]?\d+\b`)

// traitsLineRe matches an explicit traits line, e.g. `Traits: Fiend, Evil`.
var traitsLineRe = regexp.MustCompile(`(?i)^Traits\s*[:\-]\s*(.+)$`)

// parenRe captures the first parenthesized run, e.g. `CE, Medium, Fiend`
// from `Barghest (CE, Medium, Fiend) is a ...`.
var parenRe = regexp.MustCompile(`\(([^()]+)\)`)

// acLabelRe / hpLabelRe anchor on the stat labels as whole words; the value
// patterns then take the first unsigned integer after the label on the same
// line, so `AC 23 HP 150` yields both values independently.
var (
	acLabelRe = regexp.MustCompile(`\bAC\b`)
	acValueRe = regexp.MustCompile(`\bAC\b[^0-9\n]*(\d+)`)
	hpLabelRe = regexp.MustCompile(`\bHP\b`)
	hpValueRe = regexp.MustCompile(`\bHP\b[^0-9\n]*(\d+)`)
)

// speedLabelRe locates a speed line; speedValueRe captures the descriptor up
// to the next sentence terminator, e.g. `25 feet, fly 60 feet` from
// `Speed 25 feet, fly 60 feet; swamp stride.`
var (
	speedLabelRe = regexp.MustCompile(`\bSpeed\b`)
	speedValueRe = regexp.MustCompile(`\bSpeed\b[:\s]*([^.;]+)`)
)

// traitSelector matches the markup the site uses for trait tags.
const traitSelector = "a.trait, span.trait, .traits a, .traits span"

// FromHTML runs the pipeline over a parsed HTML page.
func FromHTML(body string) record.Record {
	src, err := page.ParseHTML(body)
	if err != nil {
		return record.Record{}
	}
	return fromSource(src)
}

// FromText runs the pipeline over a plain-text rendering of the page.
func FromText(body string) record.Record {
	return fromSource(page.NewFlatText(body))
}

func fromSource(src page.Source) record.Record {
	return record.Record{
		Name:       extractName(src),
		Level:      extractLevel(src),
		Traits:     extractTraits(src),
		ArmorClass: labelNumber(src, acLabelRe, acValueRe),
		HitPoints:  labelNumber(src, hpLabelRe, hpValueRe),
		Speed:      extractSpeed(src),
		Attacks:    attack.Scan(src.ScanWindow()),
	}
}

// nameStrategies are tried in order; the first non-empty result wins.
var nameStrategies = []func(page.Source) string{
	nameFromPrimaryHeading,
	nameFromScopeHeading,
	nameFromCreatureMarker,
}

func extractName(src page.Source) string {
	for _, strat := range nameStrategies {
		if name := strat(src); name != "" {
			return name
		}
	}
	return ""
}

func nameFromPrimaryHeading(src page.Source) string {
	s, ok := src.(page.Structured)
	if !ok {
		return ""
	}
	for _, t := range s.DocTexts("h1") {
		return cleanName(t)
	}
	return ""
}

func nameFromScopeHeading(src page.Source) string {
	s, ok := src.(page.Structured)
	if !ok {
		return ""
	}
	for _, t := range s.ScopeTexts("h1, h2, h3, .title") {
		return cleanName(t)
	}
	return ""
}

// nameFromCreatureMarker reconstructs the name from the text preceding a
// `Creature N` marker. This is the only strategy available on the text path.
func nameFromCreatureMarker(src page.Source) string {
	ln, ok := src.FindLine(creatureLevelRe)
	if !ok {
		return ""
	}
	m := creaturePrefixRe.FindStringSubmatch(ln)
	if m == nil {
		return ""
	}
	return cleanName(m[1])
}

func cleanName(s string) string {
	s = nameSuffixRe.ReplaceAllString(s, "")
	return strings.Trim(textutil.CollapseSpaces(s), " -(")
}

func extractLevel(src page.Source) *int {
	ln, ok := src.FindLine(creatureLevelRe)
	if !ok {
		return nil
	}
	m := creatureLevelRe.FindStringSubmatch(ln)
	if m == nil {
		return nil
	}
	return parseInt(m[1])
}

// traitStrategies are tried in order; the first non-empty list wins.
var traitStrategies = []func(page.Source) []string{
	traitsFromMarkers,
	traitsFromLine,
	traitsFromParenthetical,
}

func extractTraits(src page.Source) []string {
	for _, strat := range traitStrategies {
		if traits := strat(src); len(traits) > 0 {
			return traits
		}
	}
	return []string{}
}

func traitsFromMarkers(src page.Source) []string {
	s, ok := src.(page.Structured)
	if !ok {
		return nil
	}
	return textutil.Dedupe(s.ScopeTexts(traitSelector))
}

func traitsFromLine(src page.Source) []string {
	ln, ok := src.FindLine(traitsLineRe)
	if !ok {
		return nil
	}
	m := traitsLineRe.FindStringSubmatch(ln)
	if m == nil {
		return nil
	}
	return textutil.Dedupe(textutil.SplitList(m[1]))
}

// traitsFromParenthetical reads the first parenthesis of the first
// paragraph, a convention older pages use in place of trait markup.
func traitsFromParenthetical(src page.Source) []string {
	s, ok := src.(page.Structured)
	if !ok {
		return nil
	}
	for _, p := range s.ScopeTexts("p") {
		m := parenRe.FindStringSubmatch(p)
		if m == nil {
			return nil
		}
		return textutil.Dedupe(textutil.SplitList(m[1]))
	}
	return nil
}

// labelNumber finds the first line carrying the label and returns the first
// unsigned integer following the label on that line. Absent when the label
// never appears or no digits trail it.
func labelNumber(src page.Source, labelRe, valueRe *regexp.Regexp) *int {
	ln, ok := src.FindLine(labelRe)
	if !ok {
		return nil
	}
	m := valueRe.FindStringSubmatch(ln)
	if m == nil {
		return nil
	}
	return parseInt(m[1])
}

func extractSpeed(src page.Source) string {
	ln, ok := src.FindLine(speedLabelRe)
	if !ok {
		return ""
	}
	m := speedValueRe.FindStringSubmatch(ln)
	if m == nil {
		return ""
	}
	return textutil.CollapseSpaces(m[1])
}

func parseInt(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
