package parser

import (
	"regexp"
	"strings"

	"github.com/mkoval/casbrief/internal/report"
)

// lineLabelRe matches the spoken "line N" labels, digit or number-word form.
var lineLabelRe = regexp.MustCompile(`(?i)\bline\s+(one|two|three|four|five|six|seven|eight|nine|[1-9])\b`)

var lineNumberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9,
	"1": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
}

// lineFieldWords are per-line label words speakers often repeat after the
// line number ("line two heading two seven zero"); the repeated label is
// stripped so only the value lands in the field.
var lineFieldWords = map[int]string{
	2: "heading",
	3: "distance",
	4: "elevation",
	6: "mark",
	7: "friendlies",
	8: "egress",
	9: "remarks",
}

// keyword-inference vocabulary for the fallback path, checked in order.
var nineLineKeywordFields = []struct {
	re   *regexp.Regexp
	line int
}{
	{regexp.MustCompile(`(?i)\b(?:initial point|\bIP\b)\b`), 1},
	{regexp.MustCompile(`(?i)\bheading\b`), 2},
	{regexp.MustCompile(`(?i)\bdistance\b`), 3},
	{regexp.MustCompile(`(?i)\belevation\b`), 4},
	{regexp.MustCompile(`(?i)\b(?:mark(?:ed)?|smoke|laser|ir pointer)\b`), 6},
	{regexp.MustCompile(`(?i)\bfriendl(?:ies|y)\b`), 7},
	{regexp.MustCompile(`(?i)\begress\b`), 8},
	{regexp.MustCompile(`(?i)\b(?:grid|mgrs)\b`), 5},
}

// extractNineLine populates the nine-line record. The primary path splits the
// text on explicit "line N" labels and overwrites each addressed line, so the
// last spoken value for a line wins. The fallback path keyword-sniffs
// unlabeled text and appends, defaulting to the target-description line.
func extractNineLine(rep *report.Report, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if rep.NineLine == nil {
		rep.NineLine = &report.NineLine{}
	}
	nl := rep.NineLine

	labels := lineLabelRe.FindAllStringSubmatchIndex(text, -1)
	if len(labels) > 0 {
		for i, loc := range labels {
			num := lineNumberWords[strings.ToLower(text[loc[2]:loc[3]])]
			end := len(text)
			if i+1 < len(labels) {
				end = labels[i+1][0]
			}
			value := strings.Trim(text[loc[1]:end], " ,.")
			value = stripRepeatedLabel(num, value)
			if value != "" {
				nl.SetLine(num, value)
			}
		}
		return
	}

	for _, kf := range nineLineKeywordFields {
		if kf.re.MatchString(text) {
			nl.AppendLine(kf.line, strings.Trim(text, " ,."))
			return
		}
	}
	// No structure at all: target description is the catch-all.
	nl.AppendLine(5, strings.Trim(text, " ,."))
}

// stripRepeatedLabel removes the line's own label word when the speaker
// repeats it after the number, e.g. "line two heading two seven zero".
func stripRepeatedLabel(num int, value string) string {
	label, ok := lineFieldWords[num]
	if !ok {
		return value
	}
	lower := strings.ToLower(value)
	if strings.HasPrefix(lower, label) {
		return strings.TrimLeft(strings.TrimSpace(value[len(label):]), ",. ")
	}
	return value
}
