package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listFilterStyle = lipgloss.NewStyle().Foreground(colorYellow)
	detailBoxStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// UnitListModel - Interactive unit browser
// =============================================================================

// UnitListModel is the bubbletea model for browsing registered units.
//
// Keys: ↑/↓ (k/j) move, / starts a filter on symbol, name and aliases,
// ⏎ toggles the detail pane, q quits.
type UnitListModel struct {
	Units     []unitRow
	Filter    string
	Filtering bool
	Cursor    int
	Offset    int
	Height    int
	Detail    bool
}

// NewUnitListModel creates a new unit list model.
func NewUnitListModel(rows []unitRow) UnitListModel {
	return UnitListModel{
		Units:  rows,
		Height: 15,
	}
}

func (m UnitListModel) Init() tea.Cmd {
	return nil
}

// visible returns the rows matching the current filter.
func (m UnitListModel) visible() []unitRow {
	if m.Filter == "" {
		return m.Units
	}
	var out []unitRow
	for _, r := range m.Units {
		if r.matches(m.Filter) {
			out = append(out, r)
		}
	}
	return out
}

// Selected returns the row under the cursor.
func (m UnitListModel) Selected() (unitRow, bool) {
	rows := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(rows) {
		return unitRow{}, false
	}
	return rows[m.Cursor], true
}

func (m UnitListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering {
			return m.updateFilter(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "/":
			m.Filtering = true
			m.Detail = false
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.visible())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// updateFilter edits the filter while filter input is active.
func (m UnitListModel) updateFilter(msg tea.KeyMsg) UnitListModel {
	switch msg.Type {
	case tea.KeyEnter:
		m.Filtering = false
	case tea.KeyEsc, tea.KeyCtrlC:
		m.Filtering = false
		m.Filter = ""
	case tea.KeyBackspace:
		if r := []rune(m.Filter); len(r) > 0 {
			m.Filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.Filter += string(msg.Runes)
	}
	m.Cursor, m.Offset = 0, 0
	return m
}

func (m UnitListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Units"))
	b.WriteString("\n")
	switch {
	case m.Filtering:
		b.WriteString(listFilterStyle.Render("/" + m.Filter + "▏"))
	case m.Filter != "":
		b.WriteString(listDimStyle.Render("filter: "+m.Filter+"  ↑/↓ navigate  ⏎ details  / filter  q quit"))
	default:
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  / filter  q quit"))
	}
	b.WriteString("\n\n")

	rows := m.visible()
	if len(rows) == 0 {
		b.WriteString(listDimStyle.Render("  no units match"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(rows))
	page := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		r := rows[i]
		page = append(page, []string{cursor, r.Symbol, r.Name, r.Dimension})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Symbol", "Name", "Dimension").
		Rows(page...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(colorDim)
			} else if !rows[idx].Builtin {
				base = base.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if sel, ok := m.Selected(); ok && m.Detail {
		b.WriteString(detailBoxStyle.Render(detailView(sel)))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(rows))))

	return b.String()
}

// detailView renders every field of a row.
func detailView(r unitRow) string {
	var b strings.Builder
	line := func(k, v string) {
		if v == "" {
			return
		}
		b.WriteString(styleKey.Render(k) + " " + StyleValue.Render(v) + "\n")
	}
	line("symbol", r.Symbol)
	line("name", r.Name)
	line("dimension", r.Dimension)
	line("factor", r.Factor)
	line("offset", r.Offset)
	line("aliases", r.Aliases)
	if r.Builtin {
		line("source", "builtin")
	} else {
		line("source", "user")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
