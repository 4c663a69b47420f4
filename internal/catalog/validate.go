package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

const topicIDPattern = `^[a-z0-9]+(-[a-z0-9]+)*$`

var topicIDRe = regexp.MustCompile(topicIDPattern)

// validateBank performs all structural checks on a bank document.
// Returns a combined error describing every problem found, or nil if valid.
func validateBank(bank *Bank) error {
	var errs []string

	seenLevels := make(map[string]bool, len(bank.Levels))
	for _, ld := range bank.Levels {
		if !Level(ld.ID).Valid() {
			errs = append(errs, fmt.Sprintf("unknown level %q", ld.ID))
		}
		if seenLevels[ld.ID] {
			errs = append(errs, fmt.Sprintf("duplicate level %q", ld.ID))
		}
		seenLevels[ld.ID] = true

		seenTopics := make(map[string]bool, len(ld.Topics))
		for _, td := range ld.Topics {
			prefix := fmt.Sprintf("%s/%s", ld.ID, td.ID)
			if !topicIDRe.MatchString(td.ID) {
				errs = append(errs, fmt.Sprintf("%s: topic id must match %s", prefix, topicIDPattern))
			}
			if seenTopics[td.ID] {
				errs = append(errs, fmt.Sprintf("duplicate topic id %q in level %q", td.ID, ld.ID))
			}
			seenTopics[td.ID] = true
			if strings.TrimSpace(td.Name) == "" {
				errs = append(errs, fmt.Sprintf("%s: name is empty", prefix))
			}
			for i, p := range td.Problems {
				if err := ValidateProblem(p); err != nil {
					errs = append(errs, fmt.Sprintf("%s problem %d: %v", prefix, i+1, err))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// ValidateProblem checks that a problem can be served: it needs a question,
// a non-blank answer and at least one non-blank solution step.
func ValidateProblem(p Problem) error {
	switch {
	case strings.TrimSpace(p.Question) == "":
		return fmt.Errorf("question is empty")
	case strings.TrimSpace(p.Answer) == "":
		return fmt.Errorf("answer is empty")
	case len(p.Solution) == 0:
		return fmt.Errorf("solution has no steps")
	}
	for i, step := range p.Solution {
		if strings.TrimSpace(step) == "" {
			return fmt.Errorf("solution step %d is empty", i+1)
		}
	}
	return nil
}
