package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/router"
	"github.com/alevelmaths/alevel/internal/session"
	"github.com/alevelmaths/alevel/internal/store"
)

func testModel(t *testing.T) (AppModel, *store.MemoryStore) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	journal := store.NewMemoryStore(100)
	return newAppModel(Options{Catalog: cat, Journal: journal}), journal
}

// drive feeds msg to the model. When msg is a key press, the command it
// returns is run once and any navigation message it yields is fed back.
// Screen Init commands (cursor blinks) are never run.
func drive(m AppModel, msg tea.Msg) AppModel {
	updated, cmd := m.Update(msg)
	m = updated.(AppModel)
	if _, ok := msg.(tea.KeyMsg); !ok || cmd == nil {
		return m
	}
	if nav, ok := cmd().(router.NavMsg); ok {
		updated, _ = m.Update(nav)
		m = updated.(AppModel)
	}
	return m
}

func TestApp_SelectAndEscape(t *testing.T) {
	m, journal := testModel(t)

	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.router.Depth() != 2 {
		t.Fatalf("depth after select = %d, want 2", m.router.Depth())
	}
	if m.sess.State().View != session.ViewQuiz {
		t.Fatalf("view = %s, want quiz", m.sess.State().View)
	}

	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("depth after esc = %d, want 1", m.router.Depth())
	}
	if m.sess.State().View != session.ViewTopics {
		t.Errorf("view after esc = %s, want topics", m.sess.State().View)
	}

	events, _ := journal.Query(t.Context(), store.QueryOpts{Kind: store.KindSession})
	if len(events) != 3 || events[0].Session.Action != store.ActionBack {
		t.Errorf("expected start, select, back in the journal, got %d events", len(events))
	}
}

func TestApp_PopToRootClearsSelection(t *testing.T) {
	m, _ := testModel(t)
	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = drive(m, router.NavMsg{Op: router.OpHome})
	if m.sess.State().View != session.ViewTopics {
		t.Errorf("view = %s, want topics", m.sess.State().View)
	}
}

func TestApp_View(t *testing.T) {
	m, _ := testModel(t)
	m = drive(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	content := m.render()
	for _, want := range []string{"A-Level Maths Mastery", "Topics", "0/13", "Ctrl+C"} {
		if !strings.Contains(content, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestApp_TooSmall(t *testing.T) {
	m, _ := testModel(t)
	m = drive(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small!") {
		t.Error("expected min-size message")
	}
}
