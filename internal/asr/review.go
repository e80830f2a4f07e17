package asr

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mkoval/casbrief/pkg/logger"
)

// criticalPhrases are the safety-relevant brevity codes that demand operator
// re-verification when they show up in a low-confidence token. "standby" and
// other routine procedure words are deliberately absent.
var criticalPhrases = []string{
	"cleared hot",
	"abort",
	"danger close",
	"check fire",
	"cease fire",
	"knock it off",
	"friendlies",
	"no drop",
}

// Reviewer runs the confidence pass over recognizer output: it flags
// low-confidence tokens carrying critical phrases and proposes callsign
// corrections by bounded edit distance against a known vocabulary.
type Reviewer struct {
	minConfidence float64
	maxEditDist   int
	callsigns     []string
	log           *logger.Logger
}

// NewReviewer builds a reviewer. callsigns is the session's expected callsign
// vocabulary; an empty vocabulary disables correction but not the critical
// flag.
func NewReviewer(minConfidence float64, maxEditDist int, callsigns []string, log *logger.Logger) *Reviewer {
	return &Reviewer{
		minConfidence: minConfidence,
		maxEditDist:   maxEditDist,
		callsigns:     callsigns,
		log:           log.Named("asr"),
	}
}

// Review inspects a token sequence and returns the advisory result. Input
// tokens are not mutated; corrected tokens carry the proposal in Correction.
func (r *Reviewer) Review(tokens []Token) *Review {
	out := &Review{Tokens: make([]Token, 0, len(tokens))}
	for _, tok := range tokens {
		if tok.Confidence < r.minConfidence {
			if r.containsCriticalPhrase(tok.Text) {
				out.Critical = true
				r.log.Warn("critical phrase in low-confidence token",
					logger.String("text", tok.Text),
					logger.Float64("confidence", tok.Confidence))
			}
			if tok.Correction == "" {
				tok.Correction = r.correctCallsign(tok.Text)
			}
		}
		out.Tokens = append(out.Tokens, tok)
	}
	return out
}

func (r *Reviewer) containsCriticalPhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range criticalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// correctCallsign proposes the closest known callsign within the edit-distance
// bound, or "" when nothing is close enough. Exact matches need no proposal.
func (r *Reviewer) correctCallsign(text string) string {
	word := strings.ToLower(strings.TrimSpace(text))
	if word == "" {
		return ""
	}

	best := ""
	bestDist := r.maxEditDist + 1
	for _, cs := range r.callsigns {
		dist := levenshtein.ComputeDistance(word, strings.ToLower(cs))
		if dist == 0 {
			return ""
		}
		if dist < bestDist {
			best, bestDist = cs, dist
		}
	}
	return best
}
