package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmdeck/internal/layout"
	"github.com/nikbrunner/bmdeck/internal/model"
	"github.com/nikbrunner/bmdeck/internal/search"
)

func results() []search.Result {
	return []search.Result{
		{Entry: search.Entry{FolderTitle: "Code", Bookmark: model.Bookmark{ID: "b1", Title: "GitHub", URL: "https://github.com"}}},
		{Entry: search.Entry{FolderTitle: "Code", Bookmark: model.Bookmark{ID: "b2", Title: "GitLab", URL: "https://gitlab.com"}}},
	}
}

func press(p Picker, msg tea.KeyMsg) (Picker, tea.Cmd) {
	m, cmd := p.Update(msg)
	return m.(Picker), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_InitialState(t *testing.T) {
	p := New(results(), "git")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.results) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.results))
	}
}

func TestPicker_Navigate(t *testing.T) {
	p := New(results(), "git")

	p, _ = press(p, runes("j"))
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1 after j, got %d", p.cursor)
	}

	// Stays on the last item.
	p, _ = press(p, tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Errorf("expected cursor to stay at 1, got %d", p.cursor)
	}

	p, _ = press(p, runes("k"))
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 after k, got %d", p.cursor)
	}

	p, _ = press(p, tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", p.cursor)
	}
}

func TestPicker_Select(t *testing.T) {
	p := New(results(), "git")
	p.cursor = 1

	p, cmd := press(p, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected quit command after selection")
	}

	got, ok := p.Selected()
	if !ok || got.ID != "b2" {
		t.Errorf("Selected() = %v, %v, want b2", got, ok)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New(results(), "git")

	p, cmd := press(p, tea.KeyMsg{Type: tea.KeyEsc})
	if !p.Cancelled() {
		t.Error("expected cancelled after Esc")
	}
	if cmd == nil {
		t.Error("expected quit command after cancel")
	}
	if _, ok := p.Selected(); ok {
		t.Error("expected no selection when cancelled")
	}
}

func TestPicker_SelectWithNoResults(t *testing.T) {
	p := New(nil, "nothing")

	p, _ = press(p, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := p.Selected(); ok {
		t.Error("expected no selection from an empty list")
	}
}

func TestPicker_View(t *testing.T) {
	p := New(results(), "git")
	view := layout.StripANSI(p.View())

	for _, want := range []string{"Search: git (2 results)", "> GitHub", "  GitLab", "Code  https://gitlab.com"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHighlight_KeepsText(t *testing.T) {
	got := layout.StripANSI(highlight("GitHub", []int{0, 1, 2}, normalStyle))
	if got != "GitHub" {
		t.Errorf("highlight changed visible text: %q", got)
	}
}
