package store

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestAppendAndQuery_NewestFirst(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	if err := s.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: ActionSelect, TopicID: "alevel-algebra"}); err != nil {
		t.Fatalf("append session: %v", err)
	}
	if err := s.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", TopicID: "alevel-algebra", Correct: true}); err != nil {
		t.Fatalf("append answer: %v", err)
	}
	if err := s.AppendCompletionEvent(ctx, CompletionEventData{SessionID: "s1", TopicID: "alevel-algebra", Score: 100}); err != nil {
		t.Fatalf("append completion: %v", err)
	}

	events, err := s.Query(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	wantKinds := []Kind{KindCompletion, KindAnswer, KindSession}
	for i, e := range events {
		if e.Kind != wantKinds[i] {
			t.Errorf("event %d kind = %q, want %q", i, e.Kind, wantKinds[i])
		}
		if e.ID == "" {
			t.Errorf("event %d has empty ID", i)
		}
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("sequences not decreasing: %d, %d", events[0].Sequence, events[1].Sequence)
	}
	if events[0].Completion == nil || events[0].Completion.Score != 100 {
		t.Errorf("completion payload = %+v", events[0].Completion)
	}
}

func TestQuery_Filters(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_ = s.AppendAnswerEvent(ctx, AnswerEventData{Index: i})
		_ = s.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock"})
	}

	answers, err := s.Query(ctx, QueryOpts{Kind: KindAnswer})
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 5 {
		t.Errorf("got %d answers, want 5", len(answers))
	}

	limited, _ := s.Query(ctx, QueryOpts{Limit: 3})
	if len(limited) != 3 {
		t.Errorf("limit: got %d, want 3", len(limited))
	}

	after, _ := s.Query(ctx, QueryOpts{After: 8})
	if len(after) != 2 {
		t.Errorf("after: got %d, want 2", len(after))
	}
	for _, e := range after {
		if e.Sequence <= 8 {
			t.Errorf("event with sequence %d returned for After=8", e.Sequence)
		}
	}
}

func TestCapacity_DropsOldest(t *testing.T) {
	s := NewMemoryStore(3)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_ = s.AppendAnswerEvent(ctx, AnswerEventData{Index: i})
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	events, _ := s.Query(ctx, QueryOpts{})
	if events[len(events)-1].Answer.Index != 2 {
		t.Errorf("oldest kept index = %d, want 2", events[len(events)-1].Answer.Index)
	}
}

func TestTimestampsFromClock(t *testing.T) {
	s := NewMemoryStore(0)
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_ = s.AppendSessionEvent(context.Background(), SessionEventData{Action: ActionStart})
	events, _ := s.Query(context.Background(), QueryOpts{})
	if !events[0].Timestamp.Equal(fixed) {
		t.Errorf("timestamp = %v, want %v", events[0].Timestamp, fixed)
	}
}

func TestCancelledContext(t *testing.T) {
	s := NewMemoryStore(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.AppendSessionEvent(ctx, SessionEventData{}); err == nil {
		t.Error("expected error for cancelled context")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after cancelled append", s.Len())
	}
}

func TestSessionAccuracy(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	_ = s.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "a", Correct: true})
	_ = s.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "a", Correct: false})
	_ = s.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "b", Correct: false})

	acc, err := s.SessionAccuracy(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if acc != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", acc)
	}
	if acc, _ := s.SessionAccuracy(ctx, "none"); acc != 0 {
		t.Errorf("accuracy for unknown session = %v, want 0", acc)
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.AppendAnswerEvent(ctx, AnswerEventData{Index: i})
		}(i)
	}
	wg.Wait()

	events, _ := s.Query(ctx, QueryOpts{})
	if len(events) != 50 {
		t.Fatalf("got %d events, want 50", len(events))
	}
	seen := make(map[int64]bool)
	for _, e := range events {
		if seen[e.Sequence] {
			t.Errorf("duplicate sequence %d", e.Sequence)
		}
		seen[e.Sequence] = true
	}
}
