package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alevelmaths/alevel/internal/progress"
	"github.com/alevelmaths/alevel/internal/router"
	"github.com/alevelmaths/alevel/internal/session"
	"github.com/alevelmaths/alevel/internal/ui/components"
	"github.com/alevelmaths/alevel/internal/ui/layout"
	"github.com/alevelmaths/alevel/internal/ui/theme"
)

// SummaryScreen shows the result of a completed quiz.
type SummaryScreen struct {
	summary *session.Summary
}

var _ router.Screen = (*SummaryScreen)(nil)
var _ router.HintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Topics"},
		{Key: "Esc", Description: "Topics"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Home()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(sum.TopicName))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Render(sum.Headline()))
	b.WriteString("\n\n")
	b.WriteString(components.ScoreBar{Score: sum.Score, Threshold: progress.MasteryThreshold, Width: cw - 8}.View())
	b.WriteString("\n\n")

	best := fmt.Sprintf("Best score: %d%%", sum.Best)
	if sum.Improved {
		best += "  " + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("New best!")
	}
	b.WriteString(theme.Body.Render(best))
	b.WriteString("\n")

	if sum.Mastered {
		b.WriteString(theme.Correct.Render("Topic mastered!"))
	} else {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Score %d%% or more to master this topic.", progress.MasteryThreshold)))
	}

	border := lipgloss.NewStyle().BorderForeground(theme.Border)
	if sum.Mastered {
		border = border.BorderForeground(theme.Success)
	}
	card := components.Card(b.String(), cw, border)
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}
