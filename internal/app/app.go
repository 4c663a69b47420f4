package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/router"
	"github.com/alevelmaths/alevel/internal/screens/topics"
	"github.com/alevelmaths/alevel/internal/session"
	"github.com/alevelmaths/alevel/internal/store"
	"github.com/alevelmaths/alevel/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Catalog *catalog.Catalog
	Journal store.EventRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

// newAppModel creates a new AppModel with the topic selector at the root.
func newAppModel(opts Options) AppModel {
	var sopts []session.Option
	if opts.Journal != nil {
		sopts = append(sopts, session.WithJournal(opts.Journal))
	}
	sess := session.New(opts.Catalog, sopts...)
	return AppModel{
		router: router.New(topics.New(sess, opts.Catalog)),
		sess:   sess,
	}
}

func (m AppModel) Init() tea.Cmd { return nil }

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case router.NavMsg:
		// Leaving to the topic list ends the selection in the session too.
		if msg.Op == router.OpHome {
			m.sess.Back()
		}

	case tea.KeyMsg:
		if cmd, handled := m.globalKey(msg.String()); handled {
			return m, cmd
		}
	}
	return m, m.router.Update(msg)
}

// globalKey handles keys that work on every screen.
func (m AppModel) globalKey(key string) (tea.Cmd, bool) {
	switch key {
	case "ctrl+c":
		return tea.Quit, true
	case "esc":
		if m.router.Depth() == 1 {
			return nil, true
		}
		return router.Home(), true
	}
	return nil, false
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width > 0 && m.height > 0 {
		v.SetContent(m.render())
	}
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	active := m.router.Active()
	stats := m.sess.Stats()

	chrome := layout.Chrome{
		Title: active.Title(),
		Stats: layout.HeaderStats{
			Mastered: stats.Mastered,
			Total:    stats.TotalTopics,
			Average:  stats.Average,
		},
	}
	if p, ok := active.(router.HintProvider); ok {
		chrome.Hints = p.KeyHints()
	}
	chrome.Hints = append(chrome.Hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	return chrome.Render(m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program and blocks until it exits. The
// session is ended however the program stops.
func Run(opts Options) error {
	m := newAppModel(opts)
	defer m.sess.End()
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
