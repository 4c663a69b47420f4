package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func sectionedMenu(picked *string) Menu {
	pick := func(s string) func() tea.Cmd {
		return func() tea.Cmd {
			*picked = s
			return nil
		}
	}
	return NewMenu([]MenuItem{
		{Label: "Pure", Header: true},
		{Label: "a1", Action: pick("a1")},
		{Label: "a2", Action: pick("a2")},
		{Label: "Further", Header: true},
		{Label: "b1", Action: pick("b1")},
		{Label: "Empty", Header: true},
	})
}

func press(m Menu, key tea.KeyPressMsg) Menu {
	m, _ = m.Update(key)
	return m
}

func TestMenu_SkipsHeaders(t *testing.T) {
	var picked string
	m := sectionedMenu(&picked)
	if m.Selected != 1 {
		t.Fatalf("initial Selected = %d, want 1", m.Selected)
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyDown})
	m = press(m, tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 4 {
		t.Errorf("after two downs Selected = %d, want 4", m.Selected)
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 4 {
		t.Errorf("down at last item moved to %d", m.Selected)
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Errorf("up over header Selected = %d, want 2", m.Selected)
	}
}

func TestMenu_TabJumpsSections(t *testing.T) {
	var picked string
	m := sectionedMenu(&picked)

	m = press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.Selected != 4 {
		t.Errorf("tab Selected = %d, want 4", m.Selected)
	}
	m = press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.Selected != 1 {
		t.Errorf("tab should wrap to first section, got %d", m.Selected)
	}
	m = press(m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if m.Selected != 4 {
		t.Errorf("shift+tab Selected = %d, want 4", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	var picked string
	m := sectionedMenu(&picked)
	m = press(m, tea.KeyPressMsg{Code: tea.KeyDown})
	press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "a2" {
		t.Errorf("picked = %q, want a2", picked)
	}
}

func TestMenu_AllHeaders(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Only", Header: true}})
	if m.Selected != -1 {
		t.Errorf("Selected = %d, want -1", m.Selected)
	}
	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.Selected != -1 {
		t.Errorf("Selected changed to %d", m.Selected)
	}
}

func TestMenu_LinesMarkSelection(t *testing.T) {
	var picked string
	lines := sectionedMenu(&picked).Lines()
	if len(lines) != 6 {
		t.Fatalf("len(lines) = %d, want 6", len(lines))
	}
	if !strings.Contains(lines[1], "▸ a1") {
		t.Errorf("selected line = %q", lines[1])
	}
	if strings.Contains(lines[2], "▸") {
		t.Errorf("unselected line has marker: %q", lines[2])
	}
}

func TestScoreBar(t *testing.T) {
	if !(ScoreBar{Score: 70, Threshold: 70}).Mastered() {
		t.Error("a score equal to the threshold is mastered")
	}
	if (ScoreBar{Score: 69, Threshold: 70}).Mastered() {
		t.Error("a score below the threshold is not mastered")
	}
	bar := ScoreBar{Score: 64, Threshold: 70, Width: 20}.View()
	if !strings.Contains(bar, "64%") {
		t.Error("score bar should print the percentage")
	}
	if w := lipgloss.Width(bar); w != 20 {
		t.Errorf("bar width = %d, want 20", w)
	}
}

func TestTextInput_SubmitFreezes(t *testing.T) {
	in := NewTextInput("answer", 10)
	in, _ = in.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if in.Value() != "4" {
		t.Fatalf("Value = %q, want 4", in.Value())
	}
	in.Submit(true)
	in, _ = in.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if in.Value() != "4" {
		t.Errorf("input changed after submit: %q", in.Value())
	}
	if !in.Submitted() {
		t.Error("Submitted() = false")
	}
}
