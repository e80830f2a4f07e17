package asr

// Token is one recognized token from the upstream speech recognizer:
// the hypothesis text, an optional vocabulary correction filled in by the
// reviewer, and the recognizer's confidence in [0,1].
type Token struct {
	Text       string  `json:"text"`
	Correction string  `json:"correction,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Review is the transient per-utterance result of a confidence pass. It is
// advisory output for the operator, never persisted session state.
type Review struct {
	Tokens []Token `json:"tokens"`
	// Critical is set when a safety-relevant phrase appears in a token below
	// the confidence threshold, prompting operator re-verification.
	Critical bool `json:"critical"`
}

// LowConfidence lists only the tokens that fell below the threshold.
func (r *Review) LowConfidence(threshold float64) []Token {
	var out []Token
	for _, t := range r.Tokens {
		if t.Confidence < threshold {
			out = append(out, t)
		}
	}
	return out
}
