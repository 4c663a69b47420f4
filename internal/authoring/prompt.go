package authoring

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write practice problems for UK A-Level Mathematics and Further Mathematics students.

Rules:
- Write problems for exactly the given level and topic, at exam-question difficulty.
- Every problem must have one short canonical answer that a student can type exactly: an integer, a simplified fraction such as 1/2, a decimal, or a compact expression such as 3x^2. Never ask for a proof, a sketch or several values.
- Answers are compared character for character after trimming and ignoring case, so state in the question the exact form expected (e.g. "give x in degrees", "as a fraction in lowest terms").
- Put the key expression in the latex field using standard LaTeX without $ delimiters, or leave it empty.
- Give the worked solution as short ordered steps.
- Hints are optional and must not give the answer away.
- Do not repeat or trivially reword any question from the "existing questions" list.`

// buildUserMessage constructs the user message from DraftInput and Config
// limits.
func buildUserMessage(input DraftInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Level: %s\n", input.Level.DisplayName())
	fmt.Fprintf(&b, "Topic: %s\n", input.Topic.Name)
	if input.Topic.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", input.Topic.Description)
	}
	fmt.Fprintf(&b, "Number of problems: %d\n", cfg.Count)

	existing := make([]string, len(input.Existing))
	for i, p := range input.Existing {
		existing[i] = p.Question
	}
	b.WriteString("\nExisting questions:\n")
	b.WriteString(buildDedup(existing, cfg.MaxExisting))

	return b.String()
}
