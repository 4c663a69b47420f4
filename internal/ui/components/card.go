package components

import (
	"charm.land/lipgloss/v2"

	"github.com/alevelmaths/alevel/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards so they align.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border box at the given content width.
func Card(content string, cw int, border lipgloss.Style) string {
	return border.
		Border(lipgloss.RoundedBorder()).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// PlainCard is Card with the default border colour.
func PlainCard(content string, cw int) string {
	return Card(content, cw, lipgloss.NewStyle().BorderForeground(theme.Border))
}
