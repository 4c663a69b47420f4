package components

import (
	"github.com/alevelmaths/alevel/internal/ui/theme"
)

// Button is a key-hint styled as a button. An inactive button is drawn
// dimmed so the learner can see the action exists but is unavailable.
type Button struct {
	Key    string
	Label  string
	Active bool
}

// NewButton creates a new button.
func NewButton(key, label string, active bool) Button {
	return Button{
		Key:    key,
		Label:  label,
		Active: active,
	}
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label + "  [" + b.Key + "]"
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
