package parser

import (
	"sort"
	"strings"
)

// sectionKeyword maps a literal trigger phrase to its section. The table is
// ordered most-specific first; order is what guarantees "type 1 control"
// routes to CAS before the bare "remarks" trigger can claim anything.
type sectionKeyword struct {
	phrase  string
	section Section
}

var sectionKeywords = []sectionKeyword{
	{"type 1 control", SectionCAS},
	{"type 2 control", SectionCAS},
	{"type 3 control", SectionCAS},
	{"battle damage assessment", SectionBDA},
	{"final attack heading", SectionRestrictions},
	{"situation update", SectionSitrep},
	{"checking in", SectionCAS},
	{"check in", SectionCAS},
	{"nine line", SectionNineLine},
	{"game plan", SectionGamePlan},
	{"restrictions", SectionRestrictions},
	{"remarks", SectionRemarks},
	{"bda", SectionBDA},
}

// chunk is one routed piece of a transmission.
type chunk struct {
	section    Section // SectionUnknown for continuation chunks
	hasKeyword bool
	text       string // keyword through next keyword (or whole text for continuations)
	trailing   string // text after the keyword only
}

type keywordMatch struct {
	start, end int
	kw         sectionKeyword
}

// scanKeywords finds every non-overlapping trigger occurrence in text.
// Matches are sorted by start position; ties prefer the longer phrase; a match
// starting inside an already accepted span is dropped.
func scanKeywords(text string) []keywordMatch {
	return scanKeywordTable(text, sectionKeywords)
}

func scanKeywordTable(text string, table []sectionKeyword) []keywordMatch {
	lower := strings.ToLower(text)

	var all []keywordMatch
	for _, kw := range table {
		from := 0
		for {
			i := strings.Index(lower[from:], kw.phrase)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(kw.phrase)
			if wordBoundary(lower, start, end) {
				all = append(all, keywordMatch{start: start, end: end, kw: kw})
			}
			from = start + 1
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end-all[i].start > all[j].end-all[j].start
	})

	var accepted []keywordMatch
	lastEnd := -1
	for _, m := range all {
		if m.start < lastEnd {
			continue
		}
		accepted = append(accepted, m)
		lastEnd = m.end
	}
	return accepted
}

// wordBoundary reports whether [start,end) sits on word boundaries in s.
func wordBoundary(s string, start, end int) bool {
	if start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// chunkTransmission carves a transmission into an ordered chunk sequence:
// one untagged continuation chunk for any text before the first keyword, then
// one tagged chunk per keyword hit spanning to the next hit.
func chunkTransmission(text string) []chunk {
	matches := scanKeywords(text)
	if len(matches) == 0 {
		return []chunk{{section: SectionUnknown, text: strings.TrimSpace(text)}}
	}

	var chunks []chunk
	if lead := strings.Trim(text[:matches[0].start], " ,."); lead != "" {
		chunks = append(chunks, chunk{section: SectionUnknown, text: lead})
	}
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].start
		}
		chunks = append(chunks, chunk{
			section:    m.kw.section,
			hasKeyword: true,
			text:       strings.Trim(text[m.start:end], " ,."),
			trailing:   strings.Trim(text[m.end:end], " ,."),
		})
	}
	return chunks
}

// inferenceThreshold is the minimum summed weight for the content-scoring
// fallback to claim a section.
const inferenceThreshold = 3

// inferenceWeights is the three-tier scoring vocabulary: 3 near-conclusive,
// 2 strong domain signal, 1 weak or shared term.
var inferenceWeights = map[Section]map[string]int{
	SectionCAS: {
		"this is":   3,
		"playtime":  2,
		"on station": 2,
		"mission number": 2,
		"laser code": 2,
		"ordnance":  1,
		"abort code": 1,
		"capes":     1,
	},
	SectionSitrep: {
		"troops in contact": 3,
		"enemy":             2,
		"small arms":        2,
		"friendlies":        1,
		"threat":            2,
		"artillery":         1,
		"arty":              2,
		"bmp":               2,
		"btr":               2,
		"technical":         1,
		"contact":           1,
		"taking fire":       2,
	},
	SectionNineLine: {
		"initial point": 2,
		"elevation":     2,
		"egress":        2,
		"mgrs":          2,
		"grid":          1,
		"heading":       1,
		"distance":      1,
		"ip":            1,
	},
	SectionRemarks: {
		"be advised": 2,
	},
	SectionRestrictions: {
		"do not":        2,
		"attack heading": 2,
		"danger close":  2,
		"no fire area":  2,
	},
	SectionBDA: {
		"target destroyed": 3,
		"direct hit":       2,
		"secondary":        1,
		"re-attack":        2,
		"good effects":     2,
	},
	SectionGamePlan: {
		"one pass": 2,
		"two pass": 2,
		"attack axis": 2,
	},
}

// phoneticWords are NATO alphabet words plus number words, used by the
// dense-readout detector.
var phoneticWords = map[string]bool{
	"alpha": true, "bravo": true, "charlie": true, "delta": true, "echo": true,
	"foxtrot": true, "golf": true, "hotel": true, "india": true, "juliett": true,
	"juliet": true, "kilo": true, "lima": true, "mike": true, "november": true,
	"oscar": true, "papa": true, "quebec": true, "romeo": true, "sierra": true,
	"tango": true, "uniform": true, "victor": true, "whiskey": true, "xray": true,
	"yankee": true, "zulu": true,
	"zero": true, "one": true, "two": true, "three": true, "four": true,
	"five": true, "six": true, "seven": true, "eight": true, "nine": true,
	"decimal": true, "point": true,
}

// denseReadout reports whether the text reads like a coordinate or identifier
// readout: at least four words, with 55% or more of them phonetic-alphabet
// words or pure digit runs.
func denseReadout(words []string) bool {
	if len(words) < 4 {
		return false
	}
	hits := 0
	for _, w := range words {
		if phoneticWords[w] || isDigits(w) {
			hits++
		}
	}
	return float64(hits) >= 0.55*float64(len(words))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// inferSection scores every section against the chunk text and returns the
// winner, or SectionUnknown when no section reaches the threshold or the top
// score is tied. current gets a +1 continuation bonus.
func inferSection(text string, current Section) Section {
	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	scores := make(map[Section]int)
	for _, sec := range allSections {
		total := 0
		for term, weight := range inferenceWeights[sec] {
			if containsWord(lower, term) {
				total += weight
			}
		}
		if sec == current {
			total++
		}
		scores[sec] = total
	}
	if denseReadout(words) {
		scores[SectionNineLine] += 2
	}

	best, bestScore, tied := SectionUnknown, 0, false
	for _, sec := range allSections {
		switch {
		case scores[sec] > bestScore:
			best, bestScore, tied = sec, scores[sec], false
		case scores[sec] == bestScore && bestScore > 0:
			tied = true
		}
	}
	if bestScore < inferenceThreshold || tied {
		return SectionUnknown
	}
	return best
}

// containsWord reports whether term occurs in lower on word boundaries.
func containsWord(lower, term string) bool {
	from := 0
	for {
		i := strings.Index(lower[from:], term)
		if i < 0 {
			return false
		}
		start := from + i
		if wordBoundary(lower, start, start+len(term)) {
			return true
		}
		from = start + 1
	}
}
