package catalog

import (
	"fmt"
	"slices"
)

// Catalog is the read-only question bank: topics grouped by level, each
// with an ordered (possibly empty) list of problems.
type Catalog struct {
	levels map[Level]*levelIndex
	total  int
}

// levelIndex holds one level's topics with precomputed lookups.
type levelIndex struct {
	name     string
	topics   []Topic
	byID     map[string]int
	problems map[string][]Problem
}

// New builds a Catalog from a bank document after validating it.
func New(bank *Bank) (*Catalog, error) {
	if bank == nil {
		return nil, fmt.Errorf("nil bank")
	}
	if err := validateBank(bank); err != nil {
		return nil, err
	}

	c := &Catalog{levels: make(map[Level]*levelIndex, len(bank.Levels))}
	for _, ld := range bank.Levels {
		idx := &levelIndex{
			name:     ld.Name,
			byID:     make(map[string]int, len(ld.Topics)),
			problems: make(map[string][]Problem, len(ld.Topics)),
		}
		for _, td := range ld.Topics {
			idx.byID[td.ID] = len(idx.topics)
			idx.topics = append(idx.topics, Topic{
				ID:          td.ID,
				Name:        td.Name,
				Description: td.Description,
			})
			idx.problems[td.ID] = slices.Clone(td.Problems)
		}
		c.levels[Level(ld.ID)] = idx
		c.total += len(idx.topics)
	}
	return c, nil
}

// Levels returns the levels present in the catalog, in display order.
func (c *Catalog) Levels() []Level {
	var out []Level
	for _, l := range AllLevels() {
		if _, ok := c.levels[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// LevelName returns the bank's display name for a level, falling back to
// the built-in name.
func (c *Catalog) LevelName(level Level) string {
	if idx, ok := c.levels[level]; ok && idx.name != "" {
		return idx.name
	}
	return level.DisplayName()
}

// Topics returns the topics of a level in authored order.
func (c *Catalog) Topics(level Level) []Topic {
	idx, ok := c.levels[level]
	if !ok {
		return nil
	}
	return slices.Clone(idx.topics)
}

// Topic looks up a single topic.
func (c *Catalog) Topic(level Level, topicID string) (Topic, bool) {
	idx, ok := c.levels[level]
	if !ok {
		return Topic{}, false
	}
	i, ok := idx.byID[topicID]
	if !ok {
		return Topic{}, false
	}
	return idx.topics[i], true
}

// Problems returns the ordered problems of a topic. Unknown topics yield an
// empty list, never an error.
func (c *Catalog) Problems(level Level, topicID string) []Problem {
	idx, ok := c.levels[level]
	if !ok {
		return nil
	}
	return slices.Clone(idx.problems[topicID])
}

// ProblemCount returns the number of problems authored for a topic.
func (c *Catalog) ProblemCount(level Level, topicID string) int {
	idx, ok := c.levels[level]
	if !ok {
		return 0
	}
	return len(idx.problems[topicID])
}

// TotalTopics returns the number of topics across all levels.
func (c *Catalog) TotalTopics() int {
	return c.total
}

// TopicName resolves a topic identifier to the topic's display name.
func (c *Catalog) TopicName(id TopicID) (string, bool) {
	level, topicID, ok := id.Split()
	if !ok {
		return "", false
	}
	t, ok := c.Topic(level, topicID)
	if !ok {
		return "", false
	}
	return t.Name, true
}
