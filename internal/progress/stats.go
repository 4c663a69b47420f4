package progress

import (
	"cmp"
	"slices"

	"github.com/alevelmaths/alevel/internal/catalog"
)

const (
	// MasteryThreshold is the inclusive score at which a topic counts as
	// mastered.
	MasteryThreshold = 70

	// RecentLimit caps the recent activity list.
	RecentLimit = 10
)

// Resolver maps a topic identifier to a display name.
type Resolver interface {
	TopicName(id catalog.TopicID) (string, bool)
}

// Source is what Derive needs from the catalog.
type Source interface {
	Resolver
	TotalTopics() int
}

// Activity is one row of the recent activity list.
type Activity struct {
	TopicID  catalog.TopicID
	Name     string // topic name, or the raw identifier when unresolved
	Score    int
	Mastered bool
	Resolved bool
}

// Stats is the dashboard summary derived from a Record.
type Stats struct {
	Mastered    int
	TotalTopics int
	Average     int
	Attempted   int
	Recent      []Activity
}

// IsMastered reports whether a score meets the mastery threshold.
func IsMastered(score int) bool {
	return score >= MasteryThreshold
}

// MasteredCount returns the number of entries at or above the mastery
// threshold.
func MasteredCount(rec *Record) int {
	n := 0
	for _, s := range rec.best {
		if IsMastered(s) {
			n++
		}
	}
	return n
}

// AverageScore returns the mean of all entries rounded half up, or 0 when
// the record is empty.
func AverageScore(rec *Record) int {
	if len(rec.best) == 0 {
		return 0
	}
	sum := 0
	for _, s := range rec.best {
		sum += s
	}
	n := len(rec.best)
	return (2*sum + n) / (2 * n)
}

// RecentActivity returns up to limit entries ordered by score descending,
// ties broken by identifier. Entries whose identifier cannot be resolved
// keep the raw identifier as their name. A non-positive limit means
// RecentLimit.
func RecentActivity(rec *Record, resolver Resolver, limit int) []Activity {
	if limit <= 0 {
		limit = RecentLimit
	}

	out := make([]Activity, 0, len(rec.best))
	for id, s := range rec.best {
		a := Activity{
			TopicID:  id,
			Name:     string(id),
			Score:    s,
			Mastered: IsMastered(s),
		}
		if resolver != nil {
			if name, ok := resolver.TopicName(id); ok {
				a.Name = name
				a.Resolved = true
			}
		}
		out = append(out, a)
	}

	slices.SortFunc(out, func(a, b Activity) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.TopicID, b.TopicID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Derive computes the dashboard statistics.
func Derive(rec *Record, src Source) Stats {
	st := Stats{
		Mastered:  MasteredCount(rec),
		Average:   AverageScore(rec),
		Attempted: rec.Len(),
		Recent:    RecentActivity(rec, src, RecentLimit),
	}
	if src != nil {
		st.TotalTopics = src.TotalTopics()
	}
	return st
}
