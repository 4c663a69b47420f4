package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of events a MemoryStore keeps before
// dropping the oldest.
const DefaultCapacity = 1000

// MemoryStore is an in-process EventRepo. Nothing is written to disk; the
// journal lives exactly as long as the process.
type MemoryStore struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	seq      *sequenceCounter
	now      func() time.Time
}

var _ EventRepo = (*MemoryStore)(nil)

// NewMemoryStore creates a journal holding at most capacity events.
// A non-positive capacity means DefaultCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{
		capacity: capacity,
		seq:      newSequenceCounter(),
		now:      time.Now,
	}
}

// Len returns the number of events currently held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// append stamps e and stores it, evicting the oldest event when full.
func (s *MemoryStore) append(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	e.Sequence = s.seq.Next()
	e.Timestamp = s.now()

	if len(s.events) >= s.capacity {
		copy(s.events, s.events[1:])
		s.events = s.events[:len(s.events)-1]
	}
	s.events = append(s.events, e)
	return nil
}

// Query returns events matching opts, newest first.
func (s *MemoryStore) Query(ctx context.Context, opts QueryOpts) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if e.Sequence <= opts.After {
			break
		}
		if opts.Kind != "" && e.Kind != opts.Kind {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}
