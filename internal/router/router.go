// Package router keeps the stack of screens the TUI navigates through.
// Screens never touch the stack directly; they return one of the commands
// below and the router applies the resulting NavMsg.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/alevelmaths/alevel/internal/ui/layout"
)

// Screen is one page of the TUI. View draws only the area between the
// header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// HintProvider is implemented by screens that add their own footer hints.
type HintProvider interface {
	KeyHints() []layout.KeyHint
}

// Op is a stack operation.
type Op int

const (
	OpPush Op = iota
	OpBack
	OpSwap
	OpHome
)

// NavMsg asks the router to change the stack. Screen is only set for
// OpPush and OpSwap.
type NavMsg struct {
	Op     Op
	Screen Screen
}

// Push opens s on top of the current screen.
func Push(s Screen) tea.Cmd { return navigate(OpPush, s) }

// Back closes the current screen.
func Back() tea.Cmd { return navigate(OpBack, nil) }

// Swap replaces the current screen with s at the same depth.
func Swap(s Screen) tea.Cmd { return navigate(OpSwap, s) }

// Home returns to the root screen.
func Home() tea.Cmd { return navigate(OpHome, nil) }

func navigate(op Op, s Screen) tea.Cmd {
	return func() tea.Msg { return NavMsg{Op: op, Screen: s} }
}

// Router owns the screen stack. The root screen is never removed.
type Router struct {
	stack []Screen
}

// New creates a Router with root at the bottom of the stack.
func New(root Screen) *Router {
	return &Router{stack: []Screen{root}}
}

// Active returns the top screen.
func (r *Router) Active() Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of open screens, root included.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if nav, ok := msg.(NavMsg); ok {
		return r.apply(nav)
	}
	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) apply(nav NavMsg) tea.Cmd {
	switch nav.Op {
	case OpPush:
		r.stack = append(r.stack, nav.Screen)
		return nav.Screen.Init()
	case OpSwap:
		r.stack[len(r.stack)-1] = nav.Screen
		return nav.Screen.Init()
	case OpBack:
		if len(r.stack) > 1 {
			r.stack = r.stack[:len(r.stack)-1]
		}
	case OpHome:
		r.stack = r.stack[:1]
	}
	return nil
}

// View draws the active screen into a width x height area.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
