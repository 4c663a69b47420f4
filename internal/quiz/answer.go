package quiz

import "strings"

// CheckAnswer compares a learner's answer with the expected answer.
//
// Both sides are trimmed of surrounding whitespace and lower-cased, then
// compared for exact equality. No numeric or algebraic equivalence is
// attempted: "0.5" does not match "1/2".
func CheckAnswer(candidate, expected string) bool {
	return normalize(candidate) == normalize(expected)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FinalScore converts a correct count into a 0..100 percentage, rounding
// halves up. Returns 0 when total is not positive.
func FinalScore(correct, total int) int {
	if total <= 0 {
		return 0
	}
	if correct < 0 {
		correct = 0
	}
	if correct > total {
		correct = total
	}
	return (200*correct + total) / (2 * total)
}
