package catalog

import "fmt"

// Level is a curriculum track.
type Level string

const (
	LevelALevel  Level = "alevel"
	LevelFurther Level = "further"
)

// AllLevels returns all levels in display order.
func AllLevels() []Level {
	return []Level{LevelALevel, LevelFurther}
}

// DisplayName returns a human-readable name for a level.
func (l Level) DisplayName() string {
	switch l {
	case LevelALevel:
		return "A-Level Mathematics"
	case LevelFurther:
		return "Further Mathematics"
	default:
		return string(l)
	}
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return l == LevelALevel || l == LevelFurther
}

// ParseLevel parses a level identifier.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown level %q (want %q or %q)", s, LevelALevel, LevelFurther)
	}
	return l, nil
}
