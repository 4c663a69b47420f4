package quiz

import (
	"errors"
	"strings"

	"github.com/alevelmaths/alevel/internal/catalog"
)

// Phase represents where a Runner is in its question cycle.
type Phase int

const (
	PhaseEmpty     Phase = iota // Topic has no problems; nothing can be submitted
	PhaseAnswering              // Waiting for the learner's answer
	PhaseReviewing              // Showing feedback and the worked solution
	PhaseCompleted              // Advanced past the last problem
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseAnswering:
		return "answering"
	case PhaseReviewing:
		return "reviewing"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of the most recent submission.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	default:
		return "none"
	}
}

var (
	ErrEmptyTopic   = errors.New("topic has no problems")
	ErrBlankAnswer  = errors.New("answer is blank")
	ErrNotAnswering = errors.New("not waiting for an answer")
	ErrNotReviewing = errors.New("no answer is being reviewed")
	ErrCompleted    = errors.New("quiz already completed")
)

// Feedback is returned by Submit and carries everything revealed after
// an answer is checked.
type Feedback struct {
	Index     int // 0-based problem index
	Candidate string
	Expected  string
	Correct   bool
	Solution  []string
}

// Completion is produced exactly once, when the learner advances past
// the last problem.
type Completion struct {
	TopicID catalog.TopicID
	Score   int
	Correct int
	Total   int
}

// State is a read-only snapshot of a Runner for rendering.
type State struct {
	TopicID          catalog.TopicID
	Phase            Phase
	Problem          *catalog.Problem // nil when empty or completed
	Index            int              // 0-based current problem index
	Number           int              // 1-based question number for display
	Total            int
	Attempted        int
	Correct          int
	PendingAnswer    string
	SolutionRevealed bool
	LastVerdict      Verdict
	IsLast           bool
}

// Runner drives one pass through a topic's ordered problems. A Runner is
// built fresh for every topic selection and is not safe for concurrent use.
type Runner struct {
	topicID  catalog.TopicID
	problems []catalog.Problem

	phase     Phase
	index     int
	attempted int
	correct   int
	pending   string
	revealed  bool
	verdict   Verdict
}

// NewRunner creates a Runner for the given topic. A topic with no
// problems yields a Runner in PhaseEmpty.
func NewRunner(id catalog.TopicID, problems []catalog.Problem) *Runner {
	r := &Runner{
		topicID:  id,
		problems: problems,
		phase:    PhaseAnswering,
	}
	if len(problems) == 0 {
		r.phase = PhaseEmpty
	}
	return r
}

// TopicID returns the topic this runner is serving.
func (r *Runner) TopicID() catalog.TopicID {
	return r.topicID
}

// Phase returns the current phase.
func (r *Runner) Phase() Phase {
	return r.phase
}

// SetAnswer records the learner's in-progress answer. Ignored unless the
// runner is waiting for an answer.
func (r *Runner) SetAnswer(s string) {
	if r.phase != PhaseAnswering {
		return
	}
	r.pending = s
}

// CanSubmit reports whether Submit would accept the pending answer.
func (r *Runner) CanSubmit() bool {
	return r.phase == PhaseAnswering && strings.TrimSpace(r.pending) != ""
}

// Submit checks the pending answer against the current problem and reveals
// the canonical answer and worked solution.
func (r *Runner) Submit() (Feedback, error) {
	switch r.phase {
	case PhaseEmpty:
		return Feedback{}, ErrEmptyTopic
	case PhaseAnswering:
	default:
		return Feedback{}, ErrNotAnswering
	}
	if strings.TrimSpace(r.pending) == "" {
		return Feedback{}, ErrBlankAnswer
	}

	p := r.problems[r.index]
	ok := CheckAnswer(r.pending, p.Answer)

	r.attempted++
	if ok {
		r.correct++
		r.verdict = VerdictCorrect
	} else {
		r.verdict = VerdictIncorrect
	}
	r.revealed = true
	r.phase = PhaseReviewing

	return Feedback{
		Index:     r.index,
		Candidate: r.pending,
		Expected:  p.Answer,
		Correct:   ok,
		Solution:  append([]string(nil), p.Solution...),
	}, nil
}

// Advance moves past the reviewed problem. On the last problem the runner
// completes and returns the final Completion; otherwise it returns nil.
func (r *Runner) Advance() (*Completion, error) {
	switch r.phase {
	case PhaseEmpty:
		return nil, ErrEmptyTopic
	case PhaseCompleted:
		return nil, ErrCompleted
	case PhaseAnswering:
		return nil, ErrNotReviewing
	}

	r.pending = ""
	r.revealed = false
	r.verdict = VerdictNone

	if r.index < len(r.problems)-1 {
		r.index++
		r.phase = PhaseAnswering
		return nil, nil
	}

	r.phase = PhaseCompleted
	total := len(r.problems)
	return &Completion{
		TopicID: r.topicID,
		Score:   FinalScore(r.correct, total),
		Correct: r.correct,
		Total:   total,
	}, nil
}

// State returns a snapshot of the runner.
func (r *Runner) State() State {
	s := State{
		TopicID:          r.topicID,
		Phase:            r.phase,
		Index:            r.index,
		Total:            len(r.problems),
		Attempted:        r.attempted,
		Correct:          r.correct,
		PendingAnswer:    r.pending,
		SolutionRevealed: r.revealed,
		LastVerdict:      r.verdict,
	}
	if r.phase == PhaseAnswering || r.phase == PhaseReviewing {
		p := r.problems[r.index]
		s.Problem = &p
		s.Number = r.index + 1
		s.IsLast = r.index == len(r.problems)-1
	}
	return s
}
