// Package layout draws the frame around every screen: a bordered header
// with progress stats, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alevelmaths/alevel/internal/ui/theme"
)

// AppName is shown at the left of the header.
const AppName = "A-Level Maths Mastery"

const (
	// MinWidth and MinHeight are the smallest terminal the frame fits in.
	MinWidth  = 80
	MinHeight = 24

	// compactBelow is the width under which screens drop side panels.
	compactBelow = 100
)

// KeyHint is one "key action" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats is the progress summary shown at the right of the header.
type HeaderStats struct {
	Mastered int
	Total    int
	Average  int
}

// IsCompactWidth reports whether width is too narrow for side-by-side panels.
func IsCompactWidth(width int) bool {
	return width < compactBelow
}

// Chrome is everything drawn around the active screen.
type Chrome struct {
	Title string
	Stats HeaderStats
	Hints []KeyHint
}

// Render fills a width x height terminal. body receives the size left
// between header and footer.
func (c Chrome) Render(width, height int, body func(width, height int) string) string {
	if width < MinWidth || height < MinHeight {
		return tooSmall(width, height)
	}

	header := c.header(width)
	footer := c.footer(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		Render(body(width, bodyHeight))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

var boxed = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// header places the app name left, the title centred and stats right.
func (c Chrome) header(width int) string {
	name := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render("  " + AppName)
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(c.Title)
	stats := lipgloss.NewStyle().Foreground(theme.Success).
		Render(fmt.Sprintf("✓ %d/%d", c.Stats.Mastered, c.Stats.Total)) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("avg %d%%", c.Stats.Average))

	inner := max(width-4, 0)
	nameW, titleW, statsW := lipgloss.Width(name), lipgloss.Width(title), lipgloss.Width(stats)
	before := max((inner-titleW)/2-nameW, 1)
	after := max(inner-nameW-before-titleW-statsW, 1)

	line := name + strings.Repeat(" ", before) + title + strings.Repeat(" ", after) + stats
	return boxed.Width(width).Render(line)
}

func (c Chrome) footer(width int) string {
	key := lipgloss.NewStyle().Bold(true).Foreground(theme.Text)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(c.Hints))
	for i, h := range c.Hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return boxed.Width(width).Render("  " + strings.Join(parts, "   "))
}

func tooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small!\n\nNeeds at least %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height))
}

// Window returns at most height lines of lines, scrolled so that the line
// at index focus stays visible.
func Window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := min(max(focus-height/2, 0), len(lines)-height)
	return lines[start : start+height]
}
