// Package placeholder is the screen for a topic that has no problems in
// the bank yet.
package placeholder

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/router"
	"github.com/alevelmaths/alevel/internal/ui/theme"
)

// PlaceholderScreen tells the learner the topic is empty and how an
// author can fill it.
type PlaceholderScreen struct {
	level catalog.Level
	topic catalog.Topic
}

var _ router.Screen = (*PlaceholderScreen)(nil)

func New(level catalog.Level, topic catalog.Topic) *PlaceholderScreen {
	return &PlaceholderScreen{level: level, topic: topic}
}

func (p *PlaceholderScreen) Init() tea.Cmd { return nil }

func (p *PlaceholderScreen) Title() string { return p.topic.Name }

// Update returns to the topic list on Enter. Esc is handled by the app.
func (p *PlaceholderScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		return p, router.Home()
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	lines := []string{
		theme.LevelHeader.Render("╌╌ Coming Soon ╌╌"),
		"",
		theme.Body.Render("Problems for this topic are being prepared."),
		"",
		theme.Hint.Render(fmt.Sprintf("Authors: alevel draft --level %s --topic %s", p.level, p.topic.ID)),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}
