package placeholder

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/alevelmaths/alevel/internal/catalog"
	"github.com/alevelmaths/alevel/internal/router"
)

func TestPlaceholder_View(t *testing.T) {
	p := New(catalog.LevelFurther, catalog.Topic{ID: "polar-coordinates", Name: "Polar Coordinates"})
	if p.Title() != "Polar Coordinates" {
		t.Errorf("Title = %q", p.Title())
	}
	view := p.View(80, 20)
	for _, want := range []string{
		"Coming Soon",
		"Problems for this topic are being prepared.",
		"alevel draft --level further --topic polar-coordinates",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPlaceholder_EnterReturns(t *testing.T) {
	_, cmd := New(catalog.LevelALevel, catalog.Topic{ID: "x", Name: "X"}).Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if nav, ok := cmd().(router.NavMsg); !ok || nav.Op != router.OpHome {
		t.Error("Enter should return to the topic list")
	}
}
