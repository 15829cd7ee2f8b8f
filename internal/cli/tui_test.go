package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/units/pkg/builtin"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m UnitListModel, msgs ...tea.Msg) UnitListModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(UnitListModel)
	}
	return m
}

func testRows(t *testing.T) []unitRow {
	t.Helper()
	reg, err := builtin.New()
	if err != nil {
		t.Fatalf("builtin.New() error: %v", err)
	}
	return unitRows(reg, nil)
}

func TestUnitListNavigation(t *testing.T) {
	m := NewUnitListModel(testRows(t))
	m.Height = 3

	m = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}

	m = send(m, keyRunes("j"), keyRunes("j"), keyRunes("j"), tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 4 {
		t.Errorf("cursor = %d, want 4", m.Cursor)
	}
	if m.Offset != 2 {
		t.Errorf("offset = %d, want 2 to keep the cursor visible", m.Offset)
	}

	m = send(m, keyRunes("k"), keyRunes("k"), keyRunes("k"))
	if m.Cursor != 1 || m.Offset != 1 {
		t.Errorf("cursor, offset = %d, %d, want 1, 1", m.Cursor, m.Offset)
	}

	for range len(m.Units) + 5 {
		m = send(m, keyRunes("j"))
	}
	if m.Cursor != len(m.Units)-1 {
		t.Errorf("cursor = %d, want last row %d", m.Cursor, len(m.Units)-1)
	}
}

func TestUnitListFilter(t *testing.T) {
	m := NewUnitListModel(testRows(t))

	m = send(m, keyRunes("/"), keyRunes("m"), keyRunes("i"), keyRunes("l"))
	if !m.Filtering || m.Filter != "mil" {
		t.Fatalf("filtering = %v, filter = %q", m.Filtering, m.Filter)
	}

	// "mil" matches mile (mi) and milligram (mg) by name.
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Filtering {
		t.Error("enter should leave filter input")
	}
	for _, r := range m.visible() {
		if !r.matches("mil") {
			t.Errorf("row %s does not match the filter", r.Symbol)
		}
	}
	if len(m.visible()) == 0 || len(m.visible()) == len(m.Units) {
		t.Errorf("filter kept %d of %d rows", len(m.visible()), len(m.Units))
	}

	m = send(m, keyRunes("/"), tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Filter != "mi" {
		t.Errorf("filter after backspace = %q, want %q", m.Filter, "mi")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Filtering || m.Filter != "" {
		t.Errorf("esc should clear the filter, got %q", m.Filter)
	}

	// Filtering input swallows keys that would otherwise quit.
	m = send(m, keyRunes("/"))
	next, cmd := m.Update(keyRunes("q"))
	if cmd != nil {
		t.Error("q while filtering should not quit")
	}
	if next.(UnitListModel).Filter != "q" {
		t.Errorf("filter = %q, want %q", next.(UnitListModel).Filter, "q")
	}
}

func TestUnitListSelectAndDetail(t *testing.T) {
	m := NewUnitListModel(testRows(t))
	m = send(m, keyRunes("/"), keyRunes("degF"), tea.KeyMsg{Type: tea.KeyEnter})

	sel, ok := m.Selected()
	if !ok || sel.Symbol != "degF" {
		t.Fatalf("Selected() = %+v, %v", sel, ok)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Detail {
		t.Fatal("enter should open the detail pane")
	}
	view := m.View()
	for _, want := range []string{"degree Fahrenheit", "offset", "builtin"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q:\n%s", want, view)
		}
	}
}

func TestUnitListQuit(t *testing.T) {
	m := NewUnitListModel(testRows(t))
	if _, cmd := m.Update(keyRunes("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestUnitListEmptyView(t *testing.T) {
	m := NewUnitListModel(nil)
	if !strings.Contains(m.View(), "no units match") {
		t.Errorf("empty view = %q", m.View())
	}
	if _, ok := m.Selected(); ok {
		t.Error("empty list should have no selection")
	}
}

func TestUnitListWindowSize(t *testing.T) {
	m := send(NewUnitListModel(nil), tea.WindowSizeMsg{Width: 80, Height: 10})
	if m.Height != 5 {
		t.Errorf("height = %d, want minimum 5", m.Height)
	}
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 40})
	if m.Height != 32 {
		t.Errorf("height = %d, want 32", m.Height)
	}
}
