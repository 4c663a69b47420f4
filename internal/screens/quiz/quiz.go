// Package quiz is the screen for working through one topic's problems.
package quiz

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alevelmaths/alevel/internal/mathtext"
	q "github.com/alevelmaths/alevel/internal/quiz"
	"github.com/alevelmaths/alevel/internal/router"
	"github.com/alevelmaths/alevel/internal/screens/summary"
	"github.com/alevelmaths/alevel/internal/session"
	"github.com/alevelmaths/alevel/internal/ui/components"
	"github.com/alevelmaths/alevel/internal/ui/layout"
	"github.com/alevelmaths/alevel/internal/ui/theme"
)

const answerWidth = 32

// QuizScreen drives the session's active quiz.
type QuizScreen struct {
	sess   *session.Session
	name   string
	input  components.TextInput
	errMsg string
}

var _ router.Screen = (*QuizScreen)(nil)
var _ router.HintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for the topic already selected on sess.
func New(sess *session.Session, topicName string) *QuizScreen {
	return &QuizScreen{
		sess:  sess,
		name:  topicName,
		input: newInput(),
	}
}

func newInput() components.TextInput {
	return components.NewTextInput("Type your answer...", answerWidth)
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *QuizScreen) Title() string {
	return s.name
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	st := s.sess.State()
	if st.Quiz.Phase == q.PhaseReviewing {
		label := "Next question"
		if st.Quiz.IsLast {
			label = "Complete quiz"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "Esc", Description: "Topics"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check answer"},
		{Key: "Esc", Description: "Topics"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	st := s.sess.State()

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		switch st.Quiz.Phase {
		case q.PhaseAnswering:
			return s.submit()
		case q.PhaseReviewing:
			return s.advance()
		}
		return s, nil
	}

	if st.Quiz.Phase != q.PhaseAnswering {
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.sess.SetAnswer(s.input.Value())
	s.errMsg = ""
	return s, cmd
}

func (s *QuizScreen) submit() (router.Screen, tea.Cmd) {
	if !s.sess.State().CanSubmit {
		return s, nil
	}
	res, err := s.sess.SubmitAnswer(s.input.Value())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	for _, ev := range res.Events {
		if ac, ok := ev.(session.AnswerChecked); ok {
			s.input.Submit(ac.Correct)
		}
	}
	return s, nil
}

func (s *QuizScreen) advance() (router.Screen, tea.Cmd) {
	res, err := s.sess.Advance()
	if err != nil {
		if errors.Is(err, session.ErrNoActiveQuiz) {
			return s, router.Home()
		}
		s.errMsg = err.Error()
		return s, nil
	}

	if res.State.View == session.ViewComplete {
		sum := session.BuildSummary(res.State, s.sess.Resolver())
		next := summary.New(sum)
		return s, router.Swap(next)
	}

	s.input = newInput()
	return s, s.input.Init()
}

func (s *QuizScreen) View(width, height int) string {
	st := s.sess.State()
	if st.View != session.ViewQuiz || st.Quiz.Problem == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No quiz in progress.")
	}

	qs := st.Quiz
	p := qs.Problem
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", qs.Number, qs.Total))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score: %d/%d  ", qs.Correct, qs.Attempted))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(p.Question)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	b.WriteString("\n")

	if p.LaTeX != "" {
		text, _ := mathtext.Display(p.LaTeX)
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.PlainCard(theme.Math.Render(text), cw)))
		b.WriteString("\n")
	}

	if p.Hint != "" && qs.Phase == q.PhaseAnswering {
		b.WriteString("\n")
		b.WriteString(center.Render(theme.Hint.Render("Hint: " + p.Hint)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Render("Answer: " + s.input.View()))
	b.WriteString("\n\n")

	if qs.Phase == q.PhaseAnswering {
		b.WriteString(center.Render(components.NewButton("Enter", "Check Answer", st.CanSubmit).View()))
	} else {
		b.WriteString(s.renderReview(qs, width, cw))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
	}

	return b.String()
}

func (s *QuizScreen) renderReview(qs q.State, width, cw int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder

	if qs.LastVerdict == q.VerdictCorrect {
		b.WriteString(center.Render(theme.Correct.Render("✓ Correct!")))
	} else {
		b.WriteString(center.Render(theme.Incorrect.Render("✗ Incorrect")))
		b.WriteString("\n")
		b.WriteString(center.Render(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Correct answer: " + qs.Problem.Answer)))
	}
	b.WriteString("\n\n")

	if qs.SolutionRevealed && len(qs.Problem.Solution) > 0 {
		var sol strings.Builder
		sol.WriteString(theme.LevelHeader.Render("Solution"))
		for i, step := range qs.Problem.Solution {
			sol.WriteString(fmt.Sprintf("\n%d. %s", i+1, step))
		}
		block := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(sol.String())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n\n")
	}

	label := "Next Question"
	if qs.IsLast {
		label = "Complete Quiz"
	}
	b.WriteString(center.Render(components.NewButton("Enter", label, true).View()))
	return b.String()
}
