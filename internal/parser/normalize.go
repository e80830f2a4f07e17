package parser

import (
	"regexp"
	"strings"
)

// rewriteRule is one ordered normalization rule. Rules run top to bottom;
// multi-word patterns MUST appear before any single-word pattern they contain
// or the single-word rule corrupts the multi-word match. Ordering here is a
// correctness invariant, not a style choice.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

var rewriteRules = []rewriteRule{
	// Nine-line trigger spelling variants. "niner line" and "night line" are
	// the two mishearings we see most from the recognizer.
	{regexp.MustCompile(`(?i)\b(?:nine|niner|night|9)[\s-]+line(?:rs?|s)?\b`), "nine line"},
	{regexp.MustCompile(`(?i)\bnineline\b`), "nine line"},

	// CAS control type variants.
	{regexp.MustCompile(`(?i)\btype\s+(?:one|won|wun|1)\b`), "type 1"},
	{regexp.MustCompile(`(?i)\btype\s+(?:two|too|to|2)\b`), "type 2"},
	{regexp.MustCompile(`(?i)\btype\s+(?:three|tree|3)\b`), "type 3"},

	// Brevity code variants.
	{regexp.MustCompile(`(?i)\bclear(?:ed)?\s+hott?\b`), "cleared hot"},
	{regexp.MustCompile(`(?i)\bdanger(?:ously)?\s+close\b`), "danger close"},
	{regexp.MustCompile(`(?i)\bwinch?ester\b`), "winchester"},

	// Radio procedure phrase variants.
	{regexp.MustCompile(`(?i)\bbreak[,.]?\s+break\b`), "break break"},
	{regexp.MustCompile(`(?i)\bstand\s+by\b`), "standby"},
	{regexp.MustCompile(`(?i)\bhow\s+copy\b`), "how copy"},

	// Troops-in-contact variants.
	{regexp.MustCompile(`(?i)\btroops?\s+(?:in|and|en)\s+contact\b`), "troops in contact"},

	// Situation-update trigger variants.
	{regexp.MustCompile(`(?i)\bsit(?:uation)?[\s-]*rep(?:ort)?\b`), "situation update"},
	{regexp.MustCompile(`(?i)\bsituation\s+updates\b`), "situation update"},

	// Weapon and caliber variants. Digit forms first, then the spelled-out
	// numbers the recognizer produces for common stores.
	{regexp.MustCompile(`(?i)\bg\s*b\s*u\s*[-. ]*(\d{1,3})\b`), "GBU-$1"},
	{regexp.MustCompile(`(?i)\bGBU-? ?thirty[- ]?eight\b`), "GBU-38"},
	{regexp.MustCompile(`(?i)\bGBU-? ?thirty[- ]?one\b`), "GBU-31"},
	{regexp.MustCompile(`(?i)\bGBU-? ?fifty[- ]?four\b`), "GBU-54"},
	{regexp.MustCompile(`(?i)\bGBU-? ?twelve\b`), "GBU-12"},
	{regexp.MustCompile(`(?i)\b(?:mk|mark)[-. ]*(\d{1,3})\b`), "Mk-$1"},
	{regexp.MustCompile(`(?i)\bmark eighty[- ]?two\b`), "Mk-82"},
	{regexp.MustCompile(`(?i)\bhell\s*fire\b`), "Hellfire"},
	{regexp.MustCompile(`(?i)\bmav(?:e?r)?ick\b`), "Maverick"},
	{regexp.MustCompile(`(?i)\btwenty\s+(?:mike\s+mike|millimeter)\b`), "20mm"},
	{regexp.MustCompile(`(?i)\bthirty\s+(?:mike\s+mike|millimeter)\b`), "30mm"},

	// Acronym spacing the recognizer tends to split.
	{regexp.MustCompile(`(?i)\bj[\s.-]+tac\b`), "JTAC"},
	{regexp.MustCompile(`(?i)\bb[\s.]+d[\s.]+a\b`), "BDA"},
	{regexp.MustCompile(`(?i)\bc[\s.]+a[\s.]+s\b`), "CAS"},
	{regexp.MustCompile(`(?i)\bm[\s.]+g[\s.]+r[\s.]+s\b`), "MGRS"},
	{regexp.MustCompile(`(?i)\bi[\s.]+p\b`), "IP"},

	// Phonetic number words. Must run after the multi-word rules above
	// ("niner line" is already gone by the time "niner" fires).
	{regexp.MustCompile(`(?i)\bniner\b`), "nine"},
	{regexp.MustCompile(`(?i)\bfife\b`), "five"},
	{regexp.MustCompile(`(?i)\bwun\b`), "one"},
	{regexp.MustCompile(`(?i)\bait\b`), "eight"},

	// Known callsign mis-hearings, mapped to the canonical spelling.
	{regexp.MustCompile(`(?i)\bhogg?\b`), "Hawg"},
	{regexp.MustCompile(`(?i)\bax(?:e)?[\s-]?man\b`), "Axeman"},
	{regexp.MustCompile(`(?i)\bwar[\s-]?dog\b`), "Wardog"},
	{regexp.MustCompile(`(?i)\bdew?d\s+(\d)`), "Dude $1"},
}

// Normalize rewrites known ASR mis-recognitions into canonical CAS phrasing.
// It is a pure function: same input, same output, no state. Unmatched text
// passes through unchanged.
func Normalize(text string) string {
	for _, rule := range rewriteRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return insertStructuralCommas(text)
}

var (
	lineLabelCommaBefore = regexp.MustCompile(`(?i)([^,\s])\s+(line\s+(?:\d|one|two|three|four|five|six|seven|eight|nine))\b`)
	lineLabelCommaAfter  = regexp.MustCompile(`(?i)\b(line\s+(?:\d|one|two|three|four|five|six|seven|eight|nine))\s+([^,\s])`)
	multiComma           = regexp.MustCompile(`,(?:\s*,)+`)
	spaceBeforeComma     = regexp.MustCompile(`\s+,`)
)

// sectionKeywordsForCommas are the triggers that should start a new clause.
var sectionKeywordsForCommas = []string{
	"nine line",
	"situation update",
	"game plan",
	"restrictions",
	"battle damage assessment",
	"remarks",
}

// insertStructuralCommas inserts commas at the speech-boundary positions the
// recognizer's automatic punctuation misses: around line-number labels and
// before section keywords. Commas are the only positional delimiter the later
// stages have for separating adjacent short fields, e.g. a grid reference from
// the field that follows it. Consecutive commas are collapsed after the pass.
func insertStructuralCommas(text string) string {
	text = lineLabelCommaBefore.ReplaceAllString(text, "$1, $2")
	text = lineLabelCommaAfter.ReplaceAllString(text, "$1, $2")

	for _, kw := range sectionKeywordsForCommas {
		re := regexp.MustCompile(`(?i)([^,\s])\s+(` + regexp.QuoteMeta(kw) + `)\b`)
		text = re.ReplaceAllString(text, "$1, $2")
	}

	text = spaceBeforeComma.ReplaceAllString(text, ",")
	text = multiComma.ReplaceAllString(text, ",")
	return strings.TrimSpace(text)
}
