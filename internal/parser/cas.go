package parser

import (
	"regexp"
	"strings"

	"github.com/mkoval/casbrief/internal/report"
)

var (
	controlTypeRe = regexp.MustCompile(`(?i)\btype\s+([123])\b`)

	// Self-identification is authoritative for the callsign; a bare
	// name+number anywhere in the text is the fallback.
	thisIsCallsignRe = regexp.MustCompile(`(?i)\bthis is\s+([A-Za-z]+(?:\s[A-Za-z]+)?)\s((?:\d[\d-]*|(?:one|two|three|four|five|six|seven|eight|nine|zero)(?:[\s-](?:one|two|three|four|five|six|seven|eight|nine|zero))*))\b`)
	bareCallsignRe   = regexp.MustCompile(`(?i)\b([A-Za-z]+)\s((?:\d[\d-]*|(?:one|two|three|four|five|six|seven|eight|nine|zero)(?:[\s-](?:one|two|three|four|five|six|seven|eight|nine|zero))+))\b`)

	aircraftDesignatorRe = regexp.MustCompile(`(?i)\b(A-?10C?|F-?16|F/?A-?18|F-?15E?|AH-?64|AC-?130|B-?1B?|AV-?8B?|MQ-?9)\b`)

	ordnancePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d+|one|two|three|four|five|six|seven|eight)\s*(?:x|by|times)\s+((?:GBU|Mk|AGM|CBU)-\d+|Hellfire|Maverick|rockets?)\b`),
		regexp.MustCompile(`(?i)\b((?:GBU|Mk|AGM|CBU)-\d+)\b`),
		regexp.MustCompile(`(?i)\b(Hellfire|Maverick)s?\b`),
		regexp.MustCompile(`(?i)\b([23]0mm)\b`),
	}

	playtimeRe  = regexp.MustCompile(`(?i)\bplaytime(?:\s+is)?\s+((?:\d+|[a-z]+)(?:\s+(?:\d+|plus|zero|one|two|three|four|five|six|seven|eight|nine|ten|fifteen|twenty|thirty|forty|fifty|minutes?|mike))*)`)
	laserCodeRe = regexp.MustCompile(`(?i)\blaser(?:\s+code)?\s+(\d{4}|(?:one|two|three|four|five|six|seven|eight|nine|zero)(?:\s(?:one|two|three|four|five|six|seven|eight|nine|zero)){3})\b`)
	vdlCodeRe   = regexp.MustCompile(`(?i)\b(?:vdl|video\s+downlink)(?:\s+code)?\s+([a-z0-9]+(?:\s[a-z0-9]+)?)\b`)
	abortCodeRe = regexp.MustCompile(`(?i)\babort(?:\s+code)?(?:\s+is)?\s+([a-z]+(?:\s[a-z]+)?)\b`)
	missionIDRe = regexp.MustCompile(`(?i)\bmission(?:\s+number)?\s+([a-z]{0,2}\s?\d[\d-]*(?:\s\d+)*)\b`)
	positionRe  = regexp.MustCompile(`(?i)\b(?:(?:currently|holding|established)\s+)?(?:at|over|overhead)\s+((?:the\s+)?[a-z]+(?:\s[a-z0-9]+)?(?:\s+at)?\s+(?:angels|flight level)\s+[a-z0-9]+(?:\s[a-z0-9]+)?)`)
	angelsRe    = regexp.MustCompile(`(?i)\b(angels\s+(?:\d+|[a-z]+(?:\s[a-z]+)?))\b`)

	capesFreeRe = regexp.MustCompile(`(?i)\bcapes?:?\s+([a-z0-9 ,-]+?)(?:[,.]|$)`)
)

// capabilityLabels maps spoken capability tokens to report labels.
var capabilityLabels = []struct {
	token string
	label string
}{
	{"sniper pod", "Sniper targeting pod"},
	{"litening", "LITENING targeting pod"},
	{"targeting pod", "targeting pod"},
	{"laser spot", "laser spot tracker"},
	{"rover", "ROVER downlink"},
	{"link 16", "Link 16"},
	{"night vision", "night vision"},
	{"ir pointer", "IR pointer"},
}

// callsignBlocklist rejects name candidates that are procedure words, number
// words or JTAC jargon. Words of four or more characters also block by
// prefix, which catches inflected forms like "checking" via "chec".
var callsignBlocklist = []string{
	"line", "type", "grid", "angels", "playtime", "laser", "abort", "mission",
	"check", "station", "standby", "break", "over", "out", "roger", "copy",
	"cleared", "contact", "target", "enemy", "friendl", "heading", "distance",
	"elevation", "egress", "remark", "restrict", "threat", "advise", "request",
	"one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"zero", "this", "with", "and", "the",
}

func blockedCallsignWord(word string) bool {
	w := strings.ToLower(word)
	for _, b := range callsignBlocklist {
		if w == b {
			return true
		}
		if len(b) >= 4 && strings.HasPrefix(w, b) {
			return true
		}
	}
	return false
}

// extractCAS populates the check-in record from one routed text chunk. Every
// field is fill-if-unset except ordnance, which accumulates.
func extractCAS(rep *report.Report, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if rep.CheckIn == nil {
		rep.CheckIn = &report.CASCheckIn{}
	}
	ci := rep.CheckIn

	if ci.ControlType == "" {
		if m := controlTypeRe.FindStringSubmatch(text); m != nil {
			// The type and its label always travel together.
			ci.ControlType = m[1]
			ci.ControlLabel = "Type " + m[1] + " Control"
		}
	}

	if ci.Callsign == "" {
		ci.Callsign = extractCallsign(text)
	}

	if ci.Aircraft == "" {
		if m := aircraftDesignatorRe.FindString(text); m != "" {
			ci.Aircraft = strings.ToUpper(m)
		} else {
			ci.Aircraft = aircraftNickname(text)
		}
	}

	extractOrdnance(&ci.Ordnance, text)

	if m := playtimeRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&ci.Playtime, m[1])
	}
	if m := laserCodeRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&ci.LaserCode, m[1])
	}
	if m := vdlCodeRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&ci.VDLCode, m[1])
	}
	if m := abortCodeRe.FindStringSubmatch(text); m != nil && !blockedAbortWord(m[1]) {
		report.SetIfEmpty(&ci.AbortCode, m[1])
	}
	if m := missionIDRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&ci.MissionID, strings.ToUpper(m[1]))
	}
	if m := positionRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&ci.Position, m[1])
	} else if m := angelsRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&ci.Position, m[1])
	}

	if ci.Capabilities == "" {
		ci.Capabilities = extractCapabilities(text)
	}
}

// blockedAbortWord filters procedure words that follow "abort" without being
// a code, e.g. "abort if" or a bare "abort abort".
func blockedAbortWord(w string) bool {
	switch strings.ToLower(strings.Fields(w)[0]) {
	case "abort", "if", "on", "code", "criteria", "is":
		return true
	}
	return false
}

func extractCallsign(text string) string {
	if m := thisIsCallsignRe.FindStringSubmatch(text); m != nil {
		if !blockedCallsignWord(strings.Fields(m[1])[0]) {
			return m[1] + " " + m[2]
		}
	}
	for _, m := range bareCallsignRe.FindAllStringSubmatch(text, -1) {
		if blockedCallsignWord(m[1]) {
			continue
		}
		return m[1] + " " + m[2]
	}
	return ""
}

// aircraftNickname resolves spoken airframe nicknames, used only when no
// direct designator matched.
func aircraftNickname(text string) string {
	lower := strings.ToLower(text)
	for _, nick := range []struct{ name, designator string }{
		{"warthog", "A-10"},
		{"hawg", "A-10"},
		{"viper", "F-16"},
		{"hornet", "F/A-18"},
		{"strike eagle", "F-15E"},
		{"apache", "AH-64"},
		{"harrier", "AV-8B"},
		{"reaper", "MQ-9"},
		{"spooky", "AC-130"},
		{"bone", "B-1"},
	} {
		if containsWord(lower, nick.name) {
			return nick.designator
		}
	}
	return ""
}

// extractOrdnance appends every weapon mention to the accumulating list,
// skipping items already recorded.
func extractOrdnance(field *string, text string) {
	for _, re := range ordnancePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			item := m[0]
			if len(m) == 3 && isDigits(m[1]) {
				item = m[1] + "x " + m[2]
			}
			*field = report.AppendList(*field, canonicalOrdnance(item))
		}
	}
}

func canonicalOrdnance(item string) string {
	item = strings.TrimSpace(item)
	item = strings.ReplaceAll(item, " x ", "x ")
	return item
}

func extractCapabilities(text string) string {
	lower := strings.ToLower(text)
	var out string
	for _, c := range capabilityLabels {
		if strings.Contains(lower, c.token) {
			out = report.AppendList(out, c.label)
		}
	}
	if out == "" {
		if m := capesFreeRe.FindStringSubmatch(text); m != nil {
			out = strings.TrimSpace(m[1])
		}
	}
	return out
}
