// Package topics is the root screen: the topic selector grouped by level
// with the progress dashboard beside it, or below it on narrow terminals.
package topics

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/progress"
	"github.com/alevelmaths/alevel/internal/router"
	"github.com/alevelmaths/alevel/internal/screens/history"
	"github.com/alevelmaths/alevel/internal/screens/placeholder"
	"github.com/alevelmaths/alevel/internal/screens/quiz"
	"github.com/alevelmaths/alevel/internal/session"
	"github.com/alevelmaths/alevel/internal/ui/components"
	"github.com/alevelmaths/alevel/internal/ui/layout"
	"github.com/alevelmaths/alevel/internal/ui/theme"
)

const (
	nameWidth = 28
	barWidth  = 18
	panelMin  = 30

	compactListMin = 6
)

// entry is the (level, topic) behind a selectable menu row.
type entry struct {
	level catalog.Level
	topic catalog.Topic
}

// TopicsScreen lists every topic with its mastery bar.
type TopicsScreen struct {
	sess    *session.Session
	cat     *catalog.Catalog
	entries []entry // parallel to menu.Items; zero value for headers
	menu    components.Menu
}

var _ router.Screen = (*TopicsScreen)(nil)
var _ router.HintProvider = (*TopicsScreen)(nil)

// New creates the topic selector over cat, driving sess.
func New(sess *session.Session, cat *catalog.Catalog) *TopicsScreen {
	s := &TopicsScreen{sess: sess, cat: cat}

	var items []components.MenuItem
	for _, level := range cat.Levels() {
		items = append(items, components.MenuItem{Label: cat.LevelName(level), Header: true})
		s.entries = append(s.entries, entry{})
		for _, t := range cat.Topics(level) {
			items = append(items, components.MenuItem{
				Label:  t.Name,
				Action: s.selectCmd(level, t),
			})
			s.entries = append(s.entries, entry{level: level, topic: t})
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *TopicsScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicsScreen) Title() string {
	return "Topics"
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Next level"},
		{Key: "Enter", Description: "Start quiz"},
		{Key: "H", Description: "History"},
		{Key: "Q", Description: "Quit"},
	}
}

// Current returns the highlighted topic, if any.
func (s *TopicsScreen) Current() (catalog.Level, catalog.Topic, bool) {
	i := s.menu.Selected
	if i < 0 || i >= len(s.entries) || s.entries[i].level == "" {
		return "", catalog.Topic{}, false
	}
	return s.entries[i].level, s.entries[i].topic, true
}

func (s *TopicsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "q":
			return s, tea.Quit
		case "h":
			if repo := s.sess.Journal(); repo != nil {
				scr := history.New(repo, s.cat)
				return s, router.Push(scr)
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// selectCmd starts a quiz on the topic. Topics without problems get the
// placeholder screen instead.
func (s *TopicsScreen) selectCmd(level catalog.Level, t catalog.Topic) func() tea.Cmd {
	return func() tea.Cmd {
		res := s.sess.SelectTopic(level, t.ID)

		var next router.Screen
		if res.State.View == session.ViewEmpty {
			next = placeholder.New(level, t)
		} else {
			next = quiz.New(s.sess, t.Name)
		}
		return router.Push(next)
	}
}

func (s *TopicsScreen) View(width, height int) string {
	stats := s.sess.Stats()
	rec := s.sess.Progress()

	lines := s.menu.Lines()
	for i, e := range s.entries {
		if e.level == "" {
			if i > 0 {
				lines[i] = "\n" + lines[i]
			}
			continue
		}
		lines[i] = padRight(lines[i], nameWidth+4) + topicDetail(rec.Score(catalog.NewTopicID(e.level, e.topic.ID)), s.cat.ProblemCount(e.level, e.topic.ID))
	}

	if layout.IsCompactWidth(width) {
		// Dashboard stacked under the list; the list scrolls in what is left.
		panel := components.PlainCard(Dashboard(stats), components.ContentWidth(width))
		listHeight := max(height-lipgloss.Height(panel)-4, compactListMin)
		list := layout.Window(lines, s.menu.Selected, listHeight)
		return "\n" + strings.Join(list, "\n") + "\n\n" + panel
	}

	list := strings.Join(layout.Window(lines, s.menu.Selected, height-2), "\n")
	listWidth := nameWidth + barWidth + 16
	panelWidth := width - listWidth - 4
	if panelWidth < panelMin {
		panelWidth = panelMin
	}

	left := lipgloss.NewStyle().Width(listWidth).Render("\n" + list)
	right := components.PlainCard(Dashboard(stats), panelWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", "\n"+right)
}

// topicDetail renders the score bar, or the problem count for topics not
// yet completed with a non-zero score.
func topicDetail(score, problems int) string {
	if problems == 0 {
		return theme.Hint.Render("coming soon")
	}
	if score > 0 {
		return components.ScoreBar{Score: score, Threshold: progress.MasteryThreshold, Width: barWidth}.View()
	}
	return theme.Hint.Render(fmt.Sprintf("%d questions", problems))
}

// Dashboard renders the progress tracker panel.
func Dashboard(stats progress.Stats) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Your Progress"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Topics Mastered  %d / %d", stats.Mastered, stats.TotalTopics)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Average Score    %d%%", stats.Average)))
	b.WriteString("\n\n")
	b.WriteString(theme.LevelHeader.Render("Recent Activity"))
	b.WriteString("\n")

	if len(stats.Recent) == 0 {
		b.WriteString(theme.Hint.Render("No activity yet. Start practicing!"))
		return b.String()
	}
	for _, a := range stats.Recent {
		style := lipgloss.NewStyle().Foreground(theme.Mastery(a.Mastered))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(padRight(truncate(a.Name, 22), 24)))
		b.WriteString(style.Render(fmt.Sprintf("%3d%%", a.Score)))
	}
	return b.String()
}

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "…")
}
