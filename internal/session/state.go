package session

import (
	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/quiz"
)

// View is the top-level screen the coordinator is in.
type View int

const (
	ViewTopics   View = iota // Nothing selected; topic list and dashboard
	ViewQuiz                 // A topic with problems is being worked through
	ViewEmpty                // Selected topic has no problems yet
	ViewComplete             // The last problem was advanced past
)

// String returns the view name.
func (v View) String() string {
	switch v {
	case ViewTopics:
		return "topics"
	case ViewQuiz:
		return "quiz"
	case ViewEmpty:
		return "empty"
	case ViewComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// State is a read-only snapshot of the coordinator for rendering.
type State struct {
	View    View
	Level   catalog.Level
	TopicID string

	// Quiz is the runner snapshot. Zero in ViewTopics and ViewComplete.
	Quiz quiz.State

	// CanSubmit mirrors the runner's submit guard.
	CanSubmit bool

	// Completion, Best and Improved are set in ViewComplete.
	Completion *quiz.Completion
	Best       int
	Improved   bool
}

// ID returns the composite identifier of the selected topic, or "" when
// nothing is selected.
func (s State) ID() catalog.TopicID {
	if s.View == ViewTopics {
		return ""
	}
	return catalog.NewTopicID(s.Level, s.TopicID)
}

// Result is returned by every command: the state after the command and
// the events it produced.
type Result struct {
	State  State
	Events []Event
}

// Event is a domain event emitted by a coordinator command.
type Event interface {
	EventName() string
}

// TopicSelected is emitted when the learner picks a topic.
type TopicSelected struct {
	TopicID      catalog.TopicID
	ProblemCount int
}

// AnswerChecked is emitted after an answer is submitted.
type AnswerChecked struct {
	TopicID   catalog.TopicID
	Index     int
	Candidate string
	Expected  string
	Correct   bool
}

// TopicCompleted is emitted when a topic pass finishes and progress has
// been updated.
type TopicCompleted struct {
	TopicID  catalog.TopicID
	Score    int
	Correct  int
	Total    int
	Best     int
	Improved bool
}

// SelectionCleared is emitted when the learner returns to the topic list.
type SelectionCleared struct {
	TopicID catalog.TopicID
}

func (TopicSelected) EventName() string    { return "topic_selected" }
func (AnswerChecked) EventName() string    { return "answer_checked" }
func (TopicCompleted) EventName() string   { return "topic_completed" }
func (SelectionCleared) EventName() string { return "selection_cleared" }
