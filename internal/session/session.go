package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/progress"
	"github.com/alevelmaths/alevel/internal/quiz"
	"github.com/alevelmaths/alevel/internal/store"
)

// ErrNoActiveQuiz is returned by quiz commands when no topic with a
// running quiz is selected.
var ErrNoActiveQuiz = errors.New("no quiz in progress")

// Source is what the coordinator needs from the catalog.
type Source interface {
	progress.Source
	Problems(level catalog.Level, topicID string) []catalog.Problem
}

// Session coordinates navigation, the active quiz and the progress record
// for one run of the application. It is not safe for concurrent use.
type Session struct {
	id       string
	src      Source
	progress *progress.Record
	journal  store.EventRepo

	selected bool
	level    catalog.Level
	topicID  string
	runner   *quiz.Runner

	completion *quiz.Completion
	best       int
	improved   bool
}

// Option configures a Session.
type Option func(*Session)

// WithJournal records every command to repo.
func WithJournal(repo store.EventRepo) Option {
	return func(s *Session) { s.journal = repo }
}

// WithProgress starts the session from an existing record.
func WithProgress(rec *progress.Record) Option {
	return func(s *Session) { s.progress = rec }
}

// New creates a coordinator over src with an empty progress record.
func New(src Source, opts ...Option) *Session {
	s := &Session{
		id:  uuid.NewString(),
		src: src,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.progress == nil {
		s.progress = progress.NewRecord()
	}
	s.record(func(ctx context.Context, j store.EventRepo) error {
		return j.AppendSessionEvent(ctx, store.SessionEventData{SessionID: s.id, Action: store.ActionStart})
	})
	return s
}

// ID returns the unique id of this session.
func (s *Session) ID() string { return s.id }

// Progress returns the live progress record.
func (s *Session) Progress() *progress.Record { return s.progress }

// Stats derives the dashboard statistics from the progress record.
func (s *Session) Stats() progress.Stats {
	return progress.Derive(s.progress, s.src)
}

// Resolver returns the topic name lookup backing the coordinator.
func (s *Session) Resolver() progress.Resolver { return s.src }

// Journal returns the event repository, or nil.
func (s *Session) Journal() store.EventRepo { return s.journal }

// SelectTopic makes (level, topicID) the active topic and starts a fresh
// quiz over its problems. The topic is not checked for existence: an
// unknown topic behaves like one with no problems.
func (s *Session) SelectTopic(level catalog.Level, topicID string) Result {
	problems := s.src.Problems(level, topicID)

	s.selected = true
	s.level = level
	s.topicID = topicID
	s.runner = quiz.NewRunner(catalog.NewTopicID(level, topicID), problems)
	s.clearCompletion()

	id := catalog.NewTopicID(level, topicID)
	s.record(func(ctx context.Context, j store.EventRepo) error {
		return j.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:    s.id,
			Action:       store.ActionSelect,
			TopicID:      string(id),
			ProblemCount: len(problems),
		})
	})

	return Result{
		State:  s.State(),
		Events: []Event{TopicSelected{TopicID: id, ProblemCount: len(problems)}},
	}
}

// SetAnswer records the in-progress answer text.
func (s *Session) SetAnswer(answer string) State {
	if s.runner != nil {
		s.runner.SetAnswer(answer)
	}
	return s.State()
}

// SubmitAnswer sets the answer and submits it for checking.
func (s *Session) SubmitAnswer(answer string) (Result, error) {
	if s.runner == nil {
		return Result{State: s.State()}, ErrNoActiveQuiz
	}
	s.runner.SetAnswer(answer)

	question := ""
	if st := s.runner.State(); st.Problem != nil {
		question = st.Problem.Question
	}
	fb, err := s.runner.Submit()
	if err != nil {
		return Result{State: s.State()}, err
	}

	id := s.runner.TopicID()
	s.record(func(ctx context.Context, j store.EventRepo) error {
		return j.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:     s.id,
			TopicID:       string(id),
			Index:         fb.Index,
			QuestionText:  question,
			CorrectAnswer: fb.Expected,
			LearnerAnswer: fb.Candidate,
			Correct:       fb.Correct,
		})
	})

	return Result{
		State: s.State(),
		Events: []Event{AnswerChecked{
			TopicID:   id,
			Index:     fb.Index,
			Candidate: fb.Candidate,
			Expected:  fb.Expected,
			Correct:   fb.Correct,
		}},
	}, nil
}

// Advance moves to the next problem. Advancing past the last problem
// records the final score in the progress record and switches to
// ViewComplete.
func (s *Session) Advance() (Result, error) {
	if s.runner == nil {
		return Result{State: s.State()}, ErrNoActiveQuiz
	}
	done, err := s.runner.Advance()
	if err != nil {
		return Result{State: s.State()}, err
	}
	if done == nil {
		return Result{State: s.State()}, nil
	}

	best, improved := s.CompleteTopic(done.TopicID, done.Score)
	s.runner = nil
	s.completion = done
	s.best = best
	s.improved = improved

	s.record(func(ctx context.Context, j store.EventRepo) error {
		return j.AppendCompletionEvent(ctx, store.CompletionEventData{
			SessionID: s.id,
			TopicID:   string(done.TopicID),
			Score:     done.Score,
			Correct:   done.Correct,
			Total:     done.Total,
			Best:      best,
			Improved:  improved,
		})
	})

	return Result{
		State: s.State(),
		Events: []Event{TopicCompleted{
			TopicID:  done.TopicID,
			Score:    done.Score,
			Correct:  done.Correct,
			Total:    done.Total,
			Best:     best,
			Improved: improved,
		}},
	}, nil
}

// CompleteTopic merges a final score into the progress record, keeping
// the best score seen. It is the only way progress changes.
func (s *Session) CompleteTopic(id catalog.TopicID, score int) (best int, improved bool) {
	return s.progress.Complete(id, score)
}

// Back clears the selection and discards any quiz in progress.
func (s *Session) Back() Result {
	if !s.selected {
		return Result{State: s.State()}
	}
	id := catalog.NewTopicID(s.level, s.topicID)

	s.selected = false
	s.level = ""
	s.topicID = ""
	s.runner = nil
	s.clearCompletion()

	s.record(func(ctx context.Context, j store.EventRepo) error {
		return j.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: s.id,
			Action:    store.ActionBack,
			TopicID:   string(id),
		})
	})

	return Result{
		State:  s.State(),
		Events: []Event{SelectionCleared{TopicID: id}},
	}
}

// End records the end of the session in the journal.
func (s *Session) End() {
	s.record(func(ctx context.Context, j store.EventRepo) error {
		return j.AppendSessionEvent(ctx, store.SessionEventData{SessionID: s.id, Action: store.ActionEnd})
	})
}

// State returns a snapshot for rendering.
func (s *Session) State() State {
	if !s.selected {
		return State{View: ViewTopics}
	}

	st := State{Level: s.level, TopicID: s.topicID}
	switch {
	case s.completion != nil:
		st.View = ViewComplete
		c := *s.completion
		st.Completion = &c
		st.Best = s.best
		st.Improved = s.improved
	case s.runner != nil:
		st.Quiz = s.runner.State()
		st.CanSubmit = s.runner.CanSubmit()
		st.View = ViewQuiz
		if st.Quiz.Phase == quiz.PhaseEmpty {
			st.View = ViewEmpty
		}
	}
	return st
}

func (s *Session) clearCompletion() {
	s.completion = nil
	s.best = 0
	s.improved = false
}

// record writes to the journal when one is configured. Journal failures
// never affect the quiz.
func (s *Session) record(fn func(ctx context.Context, j store.EventRepo) error) {
	if s.journal == nil {
		return
	}
	// The journal only feeds the history screen; a learner's answer and
	// score must stand even when it cannot be written.
	_ = fn(context.Background(), s.journal)
}
