package authoring

import (
	"fmt"
	"strings"
	"unicode"
)

// buildDedup formats existing questions for the prompt, respecting the max
// limit. Returns "None" if there are none.
func buildDedup(questions []string, max int) string {
	if len(questions) == 0 {
		return "None"
	}

	if max > 0 && len(questions) > max {
		questions = questions[len(questions)-max:]
	}

	var b strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// questionKey reduces a question to lower-case letters and digits so that
// spacing and punctuation differences do not hide duplicates.
func questionKey(q string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(q) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
