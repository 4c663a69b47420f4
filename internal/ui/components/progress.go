package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alevelmaths/alevel/internal/ui/theme"
)

// ScoreBar is the mastery bar drawn next to a topic: a filled track
// followed by the percentage, coloured by whether Threshold is reached.
type ScoreBar struct {
	Score     int
	Threshold int
	Width     int
}

// Mastered reports whether the score reaches the threshold.
func (b ScoreBar) Mastered() bool {
	return b.Score >= b.Threshold
}

// View renders the bar in Width cells. The track is never narrower than
// four cells.
func (b ScoreBar) View() string {
	const label = 6 // "  100%"
	track := max(b.Width-label, 4)
	filled := min(max(track*b.Score/100, 0), track)

	fill := lipgloss.NewStyle().Background(theme.Mastery(b.Mastered()))
	return fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", track-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %3d%%", b.Score))
}
