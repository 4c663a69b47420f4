package store

import "sync"

// sequenceCounter hands out the global monotonic sequence shared across all
// event kinds, so events of different kinds can be ordered against each
// other (did the answer come before or after the selection?).
type sequenceCounter struct {
	mu   sync.Mutex
	next int64
}

func newSequenceCounter() *sequenceCounter {
	return &sequenceCounter{next: 1}
}

// Next returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next() int64 {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	seq := sc.next
	sc.next++
	return seq
}
