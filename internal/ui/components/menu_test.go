package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

type pickedMsg string

func testMenu() Menu {
	item := func(label, key string) MenuItem {
		return MenuItem{Label: label, Key: key, Action: func() tea.Cmd {
			return func() tea.Msg { return pickedMsg(label) }
		}}
	}
	return NewMenu([]MenuItem{item("PRACTICE", "p"), item("STATISTICS", "s"), item("EXIT", "")})
}

func TestMenuWraps(t *testing.T) {
	m := testMenu()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Errorf("Selected = %d after up from top, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Errorf("Selected = %d after down from bottom, want 0", m.Selected)
	}
}

func TestMenuEnterActivatesSelected(t *testing.T) {
	m := testMenu()
	m, _ = m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if got := cmd(); got != pickedMsg("STATISTICS") {
		t.Errorf("got %v, want STATISTICS", got)
	}
}

func TestMenuShortcut(t *testing.T) {
	m := testMenu()
	m, cmd := m.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	if cmd == nil || cmd() != pickedMsg("STATISTICS") {
		t.Fatal("shortcut should activate its item")
	}
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestMenuLabels(t *testing.T) {
	labels := testMenu().Labels()
	if len(labels) != 3 || labels[0] != "PRACTICE" || labels[2] != "EXIT" {
		t.Errorf("Labels = %v", labels)
	}
}
