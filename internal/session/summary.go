package session

import (
	"fmt"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/progress"
)

// Summary holds the data displayed on the completion screen.
type Summary struct {
	TopicID   catalog.TopicID
	TopicName string
	Score     int
	Correct   int
	Total     int
	Best      int
	Improved  bool
	Mastered  bool
}

// BuildSummary creates a Summary from a ViewComplete state. Returns nil
// for any other view.
func BuildSummary(st State, resolver progress.Resolver) *Summary {
	if st.View != ViewComplete || st.Completion == nil {
		return nil
	}
	c := st.Completion
	name := string(c.TopicID)
	if resolver != nil {
		if n, ok := resolver.TopicName(c.TopicID); ok {
			name = n
		}
	}
	return &Summary{
		TopicID:   c.TopicID,
		TopicName: name,
		Score:     c.Score,
		Correct:   c.Correct,
		Total:     c.Total,
		Best:      st.Best,
		Improved:  st.Improved,
		Mastered:  progress.IsMastered(st.Best),
	}
}

// Headline is the completion message shown to the learner.
func (s *Summary) Headline() string {
	return fmt.Sprintf("Quiz complete! You scored %d/%d (%d%%)", s.Correct, s.Total, s.Score)
}
