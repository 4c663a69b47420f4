package progress

import (
	"maps"
	"slices"

	"github.com/alevelmaths/alevel/internal/catalog"
)

// Record maps topic identifiers to the best score ever achieved on that
// topic. A topic has an entry only after at least one completed attempt.
// Record is not safe for concurrent use.
type Record struct {
	best map[catalog.TopicID]int
}

// NewRecord returns an empty progress record.
func NewRecord() *Record {
	return &Record{best: make(map[catalog.TopicID]int)}
}

// Score returns the best score for a topic, or 0 when it was never
// completed.
func (r *Record) Score(id catalog.TopicID) int {
	return r.best[id]
}

// Lookup returns the best score and whether an entry exists.
func (r *Record) Lookup(id catalog.TopicID) (int, bool) {
	s, ok := r.best[id]
	return s, ok
}

// Complete merges a completed attempt into the record, keeping the
// maximum of the stored and new score. Scores are clamped to 0..100.
// Returns the stored best afterwards and whether it increased (a first
// completion always counts as improved).
func (r *Record) Complete(id catalog.TopicID, score int) (best int, improved bool) {
	score = clamp(score)
	prev, ok := r.best[id]
	if ok && prev >= score {
		return prev, false
	}
	r.best[id] = score
	return score, true
}

// Len returns the number of topics with an entry.
func (r *Record) Len() int {
	return len(r.best)
}

// IDs returns the identifiers with an entry, sorted.
func (r *Record) IDs() []catalog.TopicID {
	return slices.Sorted(maps.Keys(r.best))
}

// Snapshot returns a copy of the underlying mapping.
func (r *Record) Snapshot() map[catalog.TopicID]int {
	return maps.Clone(r.best)
}

func clamp(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
