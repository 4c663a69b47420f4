package store

import "context"

func (s *MemoryStore) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return s.append(ctx, Event{Kind: KindSession, Session: &data})
}

func (s *MemoryStore) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return s.append(ctx, Event{Kind: KindAnswer, Answer: &data})
}

func (s *MemoryStore) AppendCompletionEvent(ctx context.Context, data CompletionEventData) error {
	return s.append(ctx, Event{Kind: KindCompletion, Completion: &data})
}

// SessionAccuracy returns the fraction of correct answers recorded for a
// session, or 0 when none were recorded.
func (s *MemoryStore) SessionAccuracy(ctx context.Context, sessionID string) (float64, error) {
	events, err := s.Query(ctx, QueryOpts{Kind: KindAnswer})
	if err != nil {
		return 0, err
	}

	total, correct := 0, 0
	for _, e := range events {
		if e.Answer.SessionID != sessionID {
			continue
		}
		total++
		if e.Answer.Correct {
			correct++
		}
	}
	if total == 0 {
		return 0, nil
	}
	return float64(correct) / float64(total), nil
}
