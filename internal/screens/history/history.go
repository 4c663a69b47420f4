package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/progress"
	"github.com/alevelmaths/alevel/internal/router"
	"github.com/alevelmaths/alevel/internal/store"
	"github.com/alevelmaths/alevel/internal/ui/layout"
	"github.com/alevelmaths/alevel/internal/ui/theme"
)

// maxEvents caps how much of the journal the screen loads.
const maxEvents = 200

type historyLoadedMsg struct {
	Events []store.Event
	Err    error
}

// HistoryScreen lists this session's journal, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	resolver  progress.Resolver
	events    []store.Event
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ router.Screen = (*HistoryScreen)(nil)
var _ router.HintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. resolver may be nil, in which case raw
// topic identifiers are shown.
func New(eventRepo store.EventRepo, resolver progress.Resolver) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		resolver:  resolver,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.Query(context.Background(), store.QueryOpts{Limit: maxEvents})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Events: visible(events)}
	}
}

// visible drops the session start/end markers and raw LLM traffic. Draft
// outcomes stay so authoring runs show up next to the practice they feed.
func visible(events []store.Event) []store.Event {
	out := events[:0:0]
	for _, e := range events {
		switch e.Kind {
		case store.KindAnswer, store.KindCompletion, store.KindDraft:
			out = append(out, e)
		case store.KindSession:
			if e.Session.Action == store.ActionSelect || e.Session.Action == store.ActionBack {
				out = append(out, e)
			}
		}
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		return s, s.key(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) key(k string) tea.Cmd {
	switch k {
	case "esc":
		return router.Back()
	case "up", "k":
		s.selected = max(s.selected-1, 0)
	case "down", "j":
		s.selected = max(min(s.selected+1, len(s.events)-1), 0)
	case "enter":
		s.expanded[s.selected] = !s.expanded[s.selected]
	}
	return nil
}

// notice centres a single status line in the body.
func notice(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render("\n\n" + text)
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return notice(width, lipgloss.NewStyle().Foreground(theme.Error), "Error: "+s.errMsg)
	case !s.loaded:
		return notice(width, lipgloss.NewStyle().Foreground(theme.TextDim), "Loading history...")
	case len(s.events) == 0:
		return notice(width, theme.Hint, "No activity yet. Start practicing!")
	}

	var lines []string
	focus := 0
	for i, e := range s.events {
		row := e.Timestamp.Format("15:04:05") + "  " + s.describe(e)
		if i == s.selected {
			focus = len(lines)
			lines = append(lines, theme.Selected.Render("> "+row))
		} else {
			lines = append(lines, theme.Unselected.Render("  "+row))
		}

		if s.expanded[i] {
			for _, d := range s.details(e) {
				lines = append(lines, theme.Hint.Render("            "+d))
			}
		}
	}

	lines = layout.Window(lines, focus, height-1)
	return "\n" + strings.Join(lines, "\n")
}

// describe renders the one-line summary of an event.
func (s *HistoryScreen) describe(e store.Event) string {
	switch e.Kind {
	case store.KindSession:
		name := s.name(e.Session.TopicID)
		if e.Session.Action == store.ActionBack {
			return "Left " + name
		}
		return fmt.Sprintf("Started %s (%d questions)", name, e.Session.ProblemCount)

	case store.KindAnswer:
		a := e.Answer
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !a.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
		return fmt.Sprintf("%s %s Q%d: %s", mark, s.name(a.TopicID), a.Index+1, a.LearnerAnswer)

	case store.KindCompletion:
		c := e.Completion
		return fmt.Sprintf("Completed %s: %d/%d (%d%%)", s.name(c.TopicID), c.Correct, c.Total, c.Score)

	case store.KindDraft:
		d := e.Draft
		return fmt.Sprintf("Drafted %d %s problems, %d kept", d.Requested, s.name(d.TopicID), d.Accepted)
	}
	return string(e.Kind)
}

// details renders the expanded lines of an event.
func (s *HistoryScreen) details(e store.Event) []string {
	switch e.Kind {
	case store.KindAnswer:
		a := e.Answer
		return []string{
			"Question: " + a.QuestionText,
			"Your answer: " + a.LearnerAnswer,
			"Correct answer: " + a.CorrectAnswer,
		}
	case store.KindCompletion:
		c := e.Completion
		out := []string{fmt.Sprintf("Best score: %d%%", c.Best)}
		if c.Improved {
			out = append(out, "New best!")
		}
		return out
	case store.KindSession:
		return []string{"Topic: " + e.Session.TopicID}
	case store.KindDraft:
		d := e.Draft
		return []string{
			"Model: " + d.Model,
			fmt.Sprintf("Accepted: %d  Rejected: %d", d.Accepted, d.Rejected),
		}
	}
	return nil
}

func (s *HistoryScreen) name(id string) string {
	if s.resolver != nil {
		if n, ok := s.resolver.TopicName(catalog.TopicID(id)); ok {
			return n
		}
	}
	return id
}
