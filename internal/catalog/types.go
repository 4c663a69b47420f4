package catalog

import "strings"

// Topic is a named unit of curriculum content under a level.
type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Problem is a single pre-authored question within a topic.
type Problem struct {
	// Question is the prompt shown to the learner.
	Question string `json:"question"`

	// LaTeX is an optional notation snippet rendered below the question.
	LaTeX string `json:"latex,omitempty"`

	// Hint is an optional nudge shown with the question.
	Hint string `json:"hint,omitempty"`

	// Answer is the canonical expected answer. Matching is exact after
	// trimming and lower-casing.
	Answer string `json:"answer"`

	// Solution is the ordered worked solution revealed after submission.
	Solution []string `json:"solution"`
}

// TopicID is the composite "{level}-{topicId}" key joining catalog topics
// and progress entries.
type TopicID string

// NewTopicID builds the identifier for a topic under a level.
func NewTopicID(level Level, topicID string) TopicID {
	return TopicID(string(level) + "-" + topicID)
}

// Split breaks the identifier on its first "-" into level and topic id.
// Topic ids may themselves contain "-". Returns false if there is no
// separator or the level part is not a known level.
func (id TopicID) Split() (Level, string, bool) {
	lvl, topic, ok := strings.Cut(string(id), "-")
	if !ok || topic == "" {
		return "", "", false
	}
	l := Level(lvl)
	if !l.Valid() {
		return "", "", false
	}
	return l, topic, true
}

func (id TopicID) String() string {
	return string(id)
}
