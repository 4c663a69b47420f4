package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/alevelmaths/alevel/internal/ui/theme"
)

// MenuItem represents a single row in a sectioned menu. Header rows are
// never selectable and start a new section.
type MenuItem struct {
	Label  string
	Detail string
	Header bool
	Action func() tea.Cmd
}

// Menu is a vertical navigation menu grouped into sections.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first selectable item highlighted.
// Selected is -1 when no item is selectable.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	for i, item := range items {
		if !item.Header {
			m.Selected = i
			break
		}
	}
	return m
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.step(m.Selected, -1)
	case "down", "j":
		m.Selected = m.step(m.Selected, 1)
	case "tab":
		m.Selected = m.section(1)
	case "shift+tab":
		m.Selected = m.section(-1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Header {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// step returns the next selectable index from i in direction dir, or i
// when there is none.
func (m Menu) step(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(m.Items); j += dir {
		if !m.Items[j].Header {
			return j
		}
	}
	return i
}

// section returns the first selectable item of the next (dir=1) or
// previous (dir=-1) section, wrapping around.
func (m Menu) section(dir int) int {
	var starts []int
	for i, item := range m.Items {
		if item.Header {
			if s := m.step(i, 1); s != i && (len(starts) == 0 || starts[len(starts)-1] != s) {
				starts = append(starts, s)
			}
		}
	}
	if len(starts) == 0 {
		return m.Selected
	}

	cur := 0
	for k, s := range starts {
		if s <= m.Selected {
			cur = k
		}
	}
	next := (cur + dir + len(starts)) % len(starts)
	return starts[next]
}

// Lines renders one string per item.
func (m Menu) Lines() []string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Header:
			lines = append(lines, theme.LevelHeader.Render(item.Label))
		case i == m.Selected:
			lines = append(lines, theme.Selected.Render("  ▸ "+item.Label)+item.Detail)
		default:
			lines = append(lines, theme.Unselected.Render("    "+item.Label)+item.Detail)
		}
	}
	return lines
}

// View renders the menu.
func (m Menu) View() string {
	return strings.Join(m.Lines(), "\n")
}
