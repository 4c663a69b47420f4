package topics

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/progress"
	"github.com/alevelmaths/alevel/internal/router"
	"github.com/alevelmaths/alevel/internal/screens/history"
	"github.com/alevelmaths/alevel/internal/screens/placeholder"
	"github.com/alevelmaths/alevel/internal/screens/quiz"
	"github.com/alevelmaths/alevel/internal/session"
	"github.com/alevelmaths/alevel/internal/store"
)

func testTopicsScreen(t *testing.T) (*TopicsScreen, *session.Session) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	sess := session.New(cat, session.WithJournal(store.NewMemoryStore(100)))
	return New(sess, cat), sess
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// pushed runs cmd (and the command it returns) and extracts the pushed screen.
func pushed(t *testing.T, cmd tea.Cmd) router.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if inner, ok := msg.(tea.Cmd); ok {
		msg = inner()
	}
	push, ok := msg.(router.NavMsg)
	if !ok || push.Op != router.OpPush {
		t.Fatalf("expected a push, got %#v", msg)
	}
	return push.Screen
}

func TestTopics_StartsOnFirstTopic(t *testing.T) {
	s, _ := testTopicsScreen(t)
	level, topic, ok := s.Current()
	if !ok || level != catalog.LevelALevel || topic.ID != "algebra" {
		t.Errorf("Current = %s/%s/%v, want alevel/algebra", level, topic.ID, ok)
	}
}

func TestTopics_TabJumpsToNextLevel(t *testing.T) {
	s, _ := testTopicsScreen(t)
	s.Update(key(tea.KeyTab))
	level, topic, _ := s.Current()
	if level != catalog.LevelFurther || topic.ID != "complex-numbers" {
		t.Errorf("after Tab Current = %s/%s, want further/complex-numbers", level, topic.ID)
	}
}

func TestTopics_SelectPushesQuiz(t *testing.T) {
	s, sess := testTopicsScreen(t)
	_, cmd := s.Update(key(tea.KeyEnter))

	if _, ok := pushed(t, cmd).(*quiz.QuizScreen); !ok {
		t.Error("expected quiz screen for a topic with problems")
	}
	st := sess.State()
	if st.View != session.ViewQuiz || st.ID() != "alevel-algebra" {
		t.Errorf("session state = %s %q", st.View, st.ID())
	}
}

func TestTopics_EmptyTopicPushesPlaceholder(t *testing.T) {
	s, sess := testTopicsScreen(t)
	for i := 0; i < 7; i++ {
		s.Update(key(tea.KeyDown))
	}
	_, topic, _ := s.Current()
	if topic.ID != "proof" {
		t.Fatalf("expected cursor on proof, got %q", topic.ID)
	}

	_, cmd := s.Update(key(tea.KeyEnter))
	if _, ok := pushed(t, cmd).(*placeholder.PlaceholderScreen); !ok {
		t.Error("expected placeholder screen for an empty topic")
	}
	if sess.State().View != session.ViewEmpty {
		t.Errorf("view = %s, want empty", sess.State().View)
	}
}

func TestTopics_HistoryKey(t *testing.T) {
	s, _ := testTopicsScreen(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if _, ok := pushed(t, cmd).(*history.HistoryScreen); !ok {
		t.Error("expected history screen")
	}
}

func TestTopics_ViewShowsDashboard(t *testing.T) {
	s, sess := testTopicsScreen(t)

	view := s.View(120, 40)
	for _, want := range []string{"A-Level Mathematics", "Further Mathematics", "Your Progress", "Topics Mastered  0 / 13", "No activity yet. Start practicing!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	sess.CompleteTopic("alevel-integration", 80)
	sess.CompleteTopic("further-matrices", 50)
	view = s.View(120, 40)
	for _, want := range []string{"Topics Mastered  1 / 13", "Average Score    65%", "80%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q after progress", want)
		}
	}
}

func TestTopics_CompactViewStacksDashboard(t *testing.T) {
	s, sess := testTopicsScreen(t)
	sess.CompleteTopic("alevel-algebra", 80)

	for _, width := range []int{80, 99} {
		view := s.View(width, 40)
		for _, want := range []string{"Algebra", "Your Progress", "Topics Mastered  1 / 13", "Recent Activity", "80%"} {
			if !strings.Contains(view, want) {
				t.Errorf("width %d: view missing %q", width, want)
			}
		}
		if got := strings.Index(view, "Recent Activity"); got < strings.Index(view, "Algebra") {
			t.Errorf("width %d: dashboard should follow the topic list", width)
		}
		if n := strings.Count(view, "\n") + 1; n > 40 {
			t.Errorf("width %d: view is %d lines, taller than 40", width, n)
		}
	}
}

func TestDashboard_RecentCapped(t *testing.T) {
	rec := progress.NewRecord()
	for i := 0; i < 12; i++ {
		rec.Complete(catalog.TopicID(string(rune('a'+i))+"-x"), 50+i)
	}
	stats := progress.Stats{Recent: progress.RecentActivity(rec, nil, 0)}
	out := Dashboard(stats)
	if got := strings.Count(out, "%"); got != 11 {
		// ten recent rows plus the average line
		t.Errorf("expected 11 percentages, got %d", got)
	}
}
