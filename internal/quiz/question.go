package quiz

import "strings"

// Verdict is the player's judgment of a question: real or fake.
type Verdict string

const (
	VerdictReal Verdict = "real"
	VerdictFake Verdict = "fake"
)

// legacyRealLabel is the button label older question banks used for "real".
const legacyRealLabel = "legit"

// Question is a single true/false item as served by the backend.
type Question struct {
	// Text is the claim the player judges.
	Text string `json:"question"`

	// Answer is the correct verdict as stored upstream ("real" or "fake",
	// any casing).
	Answer string `json:"answer"`

	// Reason is a legacy free-text justification. Optional; newer banks
	// serve explanations from a separate endpoint instead.
	Reason string `json:"reason,omitempty"`
}

// NormalizeAnswer lower-cases a raw answer and maps the legacy "legit"
// label onto VerdictReal.
func NormalizeAnswer(raw string) Verdict {
	v := strings.ToLower(raw)
	if v == legacyRealLabel {
		return VerdictReal
	}
	return Verdict(v)
}

// ParseVerdict normalizes raw and reports whether it is one of the two
// accepted verdicts.
func ParseVerdict(raw string) (Verdict, bool) {
	v := NormalizeAnswer(raw)
	switch v {
	case VerdictReal, VerdictFake:
		return v, true
	}
	return "", false
}

// IsCorrect reports whether the player's verdict matches the question's
// answer after normalization.
func IsCorrect(q Question, v Verdict) bool {
	return NormalizeAnswer(string(v)) == NormalizeAnswer(q.Answer)
}

// Label returns the verdict capitalized for display.
func (v Verdict) Label() string {
	if v == "" {
		return ""
	}
	return strings.ToUpper(string(v[:1])) + string(v[1:])
}
