package parser

import (
	"regexp"
	"strings"
)

var (
	breakBreakRe = regexp.MustCompile(`(?i)\bbreak break\b`)
	overOutRe    = regexp.MustCompile(`(?i)\b(?:over|out)\b[,.]?`)

	// A callsign-shaped token: a name word followed by a digit group or
	// spelled-out number pair, ending at a comma. Catches mid-blob
	// re-addressing like "... Wardog five one, new tasking". The name is a
	// single word on purpose: a wider name group greedily absorbs the content
	// word before the real callsign.
	callsignShapeRe = regexp.MustCompile(`(?i)\b([a-z]+)\s((?:\d[\d-]*|(?:one|two|three|four|five|six|seven|eight|nine|zero)(?:[\s-](?:one|two|three|four|five|six|seven|eight|nine|zero))?))\s*,`)
)

// Words that can start a sentence and pattern-match the callsign shape but are
// never a re-address. "line one," is a nine-line label, not a callsign.
var notCallsignWords = map[string]bool{
	"line":          true,
	"lines":         true,
	"type":          true,
	"playtime":      true,
	"heading":       true,
	"distance":      true,
	"grid":          true,
	"elevation":     true,
	"egress":        true,
	"time":          true,
	"minus":         true,
	"plus":          true,
	"approximately": true,
	// Number words: a digit readout like "two seven zero," is never a
	// callsign even though it fits the shape.
	"zero": true, "one": true, "two": true, "three": true, "four": true,
	"five": true, "six": true, "seven": true, "eight": true, "nine": true,
}

// SplitTransmissions splits one raw text blob into an ordered list of separate
// radio transmissions. Boundary rules run in priority order; the first rule
// that produces two or more pieces wins, and every resulting piece is split
// again from the top. Each recursive call sees a strictly shorter string, so
// the recursion terminates. If no rule fires the input comes back as a
// single-element list.
func SplitTransmissions(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	for _, rule := range []func(string) []string{
		splitOnBreakBreak,
		splitAfterProcedureWord,
		splitBeforeCallsign,
	} {
		pieces := rule(text)
		if len(pieces) >= 2 {
			var out []string
			for _, p := range pieces {
				out = append(out, SplitTransmissions(p)...)
			}
			return out
		}
	}
	return []string{text}
}

// splitOnBreakBreak splits before each "break break" marker. The marker itself
// is dropped; it carries no report content.
func splitOnBreakBreak(text string) []string {
	locs := breakBreakRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	var pieces []string
	prev := 0
	for _, loc := range locs {
		if part := strings.Trim(text[prev:loc[0]], " ,."); part != "" {
			pieces = append(pieces, part)
		}
		prev = loc[1]
	}
	if part := strings.Trim(text[prev:], " ,."); part != "" {
		pieces = append(pieces, part)
	}
	if len(pieces) < 2 {
		return pieces
	}
	return pieces
}

// splitAfterProcedureWord splits after "over" or "out" when clearly new
// content follows, not just a trailing acknowledgment. New content means at
// least 3 non-trivial characters and at least 6 characters total after the
// procedure word.
func splitAfterProcedureWord(text string) []string {
	locs := overOutRe.FindAllStringIndex(text, -1)
	for _, loc := range locs {
		trailing := strings.TrimSpace(text[loc[1]:])
		if len(trailing) < 6 || countLetters(trailing) < 3 {
			continue
		}
		head := strings.TrimSpace(text[:loc[1]])
		if head == "" {
			continue
		}
		return []string{head, trailing}
	}
	return nil
}

// splitBeforeCallsign splits before a callsign-shaped token that appears after
// position 0, which signals re-addressing without a procedure word.
func splitBeforeCallsign(text string) []string {
	locs := callsignShapeRe.FindAllStringSubmatchIndex(text, -1)
	for _, loc := range locs {
		if loc[0] == 0 {
			continue
		}
		name := strings.ToLower(text[loc[2]:loc[3]])
		if notCallsignWords[name] {
			continue
		}
		head := strings.TrimSpace(text[:loc[0]])
		tail := strings.TrimSpace(text[loc[0]:])
		if head == "" || tail == "" {
			continue
		}
		return []string{head, tail}
	}
	return nil
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
