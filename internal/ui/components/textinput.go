package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/alevelmaths/alevel/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the app's styling. Once
// submitted it stops accepting keys and shows a ✓ or ✗ mark.
type TextInput struct {
	Model     textinput.Model
	MaxWidth  int
	submitted bool
	valid     bool
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	in := TextInput{Model: textinput.New(), MaxWidth: maxWidth}
	in.Model.Placeholder = placeholder
	in.Model.CharLimit = max(maxWidth, 0)
	in.Model.Focus()
	return in
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update is a no-op once the answer is submitted.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.submitted {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	switch {
	case !t.submitted:
		return t.Model.View()
	case t.valid:
		return t.Model.View() + " " + theme.Correct.Render("✓")
	default:
		return t.Model.View() + " " + theme.Incorrect.Render("✗")
	}
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submitted reports whether Submit has been called.
func (t TextInput) Submitted() bool {
	return t.submitted
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
	t.Model.Blur()
}
