package authoring

import (
	"fmt"
	"strings"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/mathtext"
)

// Validator checks a drafted problem before it is offered for review.
type Validator interface {
	// Name returns a short identifier used in rejection messages.
	Name() string

	// Validate returns nil if the problem passes.
	Validate(p catalog.Problem) *ValidationError
}

// ValidationError describes why a drafted problem was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator applies the same checks as the question bank loader.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p catalog.Problem) *ValidationError {
	if err := catalog.ValidateProblem(p); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	return nil
}

// maxAnswerLen bounds answers to something a learner can type exactly.
const maxAnswerLen = 24

// AnswerFormValidator rejects answers that exact matching cannot grade
// fairly: long answers, multi-line answers and answers written as an
// equation.
type AnswerFormValidator struct{}

func (v *AnswerFormValidator) Name() string { return "answer-form" }

func (v *AnswerFormValidator) Validate(p catalog.Problem) *ValidationError {
	a := strings.TrimSpace(p.Answer)
	switch {
	case strings.ContainsAny(a, "\n\r"):
		return &ValidationError{Validator: v.Name(), Message: "answer spans several lines"}
	case len([]rune(a)) > maxAnswerLen:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("answer longer than %d characters", maxAnswerLen)}
	case strings.Contains(a, "="):
		return &ValidationError{Validator: v.Name(), Message: "answer is an equation, not a value"}
	case strings.Contains(a, `\`) || strings.Contains(a, "$"):
		return &ValidationError{Validator: v.Name(), Message: "answer contains LaTeX markup"}
	}
	return nil
}

// NotationValidator rejects LaTeX the terminal renderer cannot display.
type NotationValidator struct{}

func (v *NotationValidator) Name() string { return "notation" }

func (v *NotationValidator) Validate(p catalog.Problem) *ValidationError {
	if p.LaTeX == "" {
		return nil
	}
	if _, err := mathtext.Render(p.LaTeX); err != nil {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("latex does not render: %v", err)}
	}
	return nil
}
