package store

import (
	"context"
	"time"
)

// Kind identifies the type of a journal event.
type Kind string

const (
	KindSession    Kind = "session"
	KindAnswer     Kind = "answer"
	KindCompletion Kind = "completion"
	KindLLMRequest Kind = "llm_request"
	KindDraft      Kind = "draft"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int   // max results (0 = unlimited)
	After int64 // sequence > After
	Kind  Kind  // only events of this kind ("" = all)
}

// Session actions recorded in SessionEventData.Action.
const (
	ActionStart  = "start"
	ActionSelect = "select"
	ActionBack   = "back"
	ActionEnd    = "end"
)

// SessionEventData captures navigation within a session.
type SessionEventData struct {
	SessionID    string
	Action       string
	TopicID      string
	ProblemCount int
}

// AnswerEventData captures a single checked answer.
type AnswerEventData struct {
	SessionID     string
	TopicID       string
	Index         int
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
}

// CompletionEventData captures the end of a topic pass.
type CompletionEventData struct {
	SessionID string
	TopicID   string
	Score     int
	Correct   int
	Total     int
	Best      int
	Improved  bool
}

// LLMRequestEventData captures one call to a language model.
type LLMRequestEventData struct {
	Provider string
	Model    string

	// Purpose, TopicID and Requested come from the request's llm.Tag.
	Purpose   string
	TopicID   string
	Requested int

	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	Prompt       string
	Reply        string
}

// DraftEventData captures the outcome of drafting problems for a topic.
type DraftEventData struct {
	TopicID   string
	Model     string
	Requested int
	Accepted  int
	Rejected  int
}

// Event is one journal entry. Exactly one of the data pointers is set,
// matching Kind.
type Event struct {
	ID         string
	Sequence   int64
	Timestamp  time.Time
	Kind       Kind
	Session    *SessionEventData
	Answer     *AnswerEventData
	Completion *CompletionEventData
	LLMRequest *LLMRequestEventData
	Draft      *DraftEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a navigation event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a checked answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendCompletionEvent records a completed topic pass.
	AppendCompletionEvent(ctx context.Context, data CompletionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendDraftOutcome records how many drafted problems were kept.
	AppendDraftOutcome(ctx context.Context, data DraftEventData) error

	// Query returns matching events, newest first.
	Query(ctx context.Context, opts QueryOpts) ([]Event, error)
}
