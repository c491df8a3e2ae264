package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/ledgergrid/internal/database/repository"
	"github.com/jask/ledgergrid/internal/grid"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	focusStyle    = lipgloss.NewStyle().Reverse(true)
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	disabledStyle = lipgloss.NewStyle().Faint(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const indexWidth = 9

func (a *App) View() string {
	props := a.engine.Props(a.page.Rows)
	var b strings.Builder
	b.WriteString(titleStyle.Render("Transactions"))
	b.WriteString("\n")
	b.WriteString(a.renderHeader(props))
	b.WriteString("\n")
	if !a.loaded {
		b.WriteString("loading...\n")
	} else if len(props.Rows) == 0 {
		b.WriteString("No transactions match.\n")
	}
	for i := range props.Rows {
		b.WriteString(a.renderRow(props, i))
		b.WriteString("\n")
	}
	b.WriteString(a.renderFooter(props))

	switch {
	case props.FilterUI.Phase != grid.PhaseClosed:
		b.WriteString("\n" + a.renderFilter(props))
	case a.panel == panelColumns:
		b.WriteString("\n" + a.renderColumnsPanel())
	case a.panel == panelEditor:
		b.WriteString("\n" + a.renderEditor())
	}
	if a.status != "" {
		b.WriteString("\n" + a.status)
	}
	return b.String()
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func checkbox(checked, indeterminate bool) string {
	switch {
	case checked:
		return "[x]"
	case indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

func sortArrow(o grid.Order) string {
	switch o {
	case grid.OrderAscend:
		return "▲"
	case grid.OrderDescend:
		return "▼"
	}
	return ""
}

func (a *App) renderHeader(props grid.Props[repository.Transaction]) string {
	h := props.Index.Header
	idx := "  #"
	if h.Checkbox {
		idx = "  " + checkbox(h.Checked, h.Indeterminate)
		if h.Disabled {
			idx = disabledStyle.Render(idx)
		}
	}
	cells := []string{fit(idx, indexWidth)}
	for i, c := range props.Columns {
		title := c.Title
		if arrow := sortArrow(c.SortOrder); arrow != "" {
			title += " " + arrow
		}
		if c.Filtered {
			title += " " + badgeStyle.Render("●")
		}
		cell := fit(title, c.Width)
		if i == a.cursorCol || c.FilterOpen {
			cell = focusStyle.Render(cell)
		}
		cells = append(cells, headerStyle.Render(cell))
	}
	return strings.Join(cells, " ")
}

func (a *App) renderRow(props grid.Props[repository.Transaction], i int) string {
	marker := " "
	if i == a.cursorRow {
		marker = "▶"
	}
	ic := props.Index.Cells[i]
	idx := fmt.Sprintf("%d", ic.Number)
	if ic.Checkbox {
		idx = checkbox(ic.Checked, false) + " " + idx
	}
	row := props.Rows[i]
	cells := []string{fit(marker+" "+idx, indexWidth)}
	for _, c := range props.Columns {
		cells = append(cells, fit(c.Render(row, i), c.Width))
	}
	line := strings.Join(cells, " ")
	if ic.Checkbox && ic.Disabled {
		line = disabledStyle.Render(line)
	}
	return line
}

func (a *App) renderFooter(props grid.Props[repository.Transaction]) string {
	p := props.Pagination
	out := fmt.Sprintf("Page %d of %d  %d rows", p.Page, a.page.Pages(p.PageSize), a.page.Total)
	if props.Selectable {
		out += fmt.Sprintf("  %d selected", props.Selection.Count)
		if a.engine.Selection().Mode() == grid.KeepPagination {
			out += " across pages"
		}
	}
	return out + "\n" + a.help.View(a.keys)
}

func (a *App) renderFilter(props grid.Props[repository.Transaction]) string {
	filters := a.engine.Filters()
	if props.FilterUI.Phase == grid.PhaseColumn {
		col, _ := a.engine.Registry().Column(props.FilterUI.ActiveColumnID)
		out := titleStyle.Render("Filter "+col.Filterable.Label) + "\n" + a.input.View()
		if opts := col.Filterable.Options; len(opts) > 0 {
			out += "\noptions: " + strings.Join(opts, ", ")
		}
		out += "\n[enter] Apply  [ctrl+r] Reset  [tab] Next option  [esc] Close"
		return panelStyle.Render(out)
	}

	out := titleStyle.Render("Filters") + "\n"
	for i, col := range a.filterableColumns() {
		marker := " "
		value := draftText(filters.DraftValue(col.ID))
		if i == a.drawerCursor {
			marker = "▶"
			value = a.input.View()
		}
		out += fmt.Sprintf("%s %-12s %s\n", marker, col.Filterable.Label, value)
	}
	if props.FilterUI.Timing == grid.CommitLive {
		out += "changes apply as you type\n"
	}
	out += "[enter] Apply  [ctrl+r] Reset all  [tab] Next option  [↑/↓] Field  [esc] Close"
	return panelStyle.Render(out)
}

func (a *App) renderColumnsPanel() string {
	out := titleStyle.Render("Columns") + "\n"
	for i, cv := range a.engine.Columns().State() {
		col, _ := a.engine.Registry().Column(cv.ID)
		marker := " "
		if i == a.panelCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %s %s\n", marker, checkbox(cv.Visible, false), col.Title)
	}
	out += "[space] Toggle  [esc] Close"
	return panelStyle.Render(out)
}

func (a *App) renderEditor() string {
	editor := a.engine.Columns()
	staged, ok := editor.Staged()
	if !ok {
		return ""
	}
	from, over, dragging := editor.Dragging()
	title := "Edit columns"
	if !staged.Equal(editor.State()) {
		title += " (unapplied)"
	}
	out := titleStyle.Render(title) + "\n"
	out += fmt.Sprintf("  %s All\n", checkbox(editor.StagedAllChecked(), staged.VisibleCount() > 0))
	for i, cv := range staged {
		col, _ := a.engine.Registry().Column(cv.ID)
		marker := " "
		if i == a.panelCursor {
			marker = "▶"
		}
		line := fmt.Sprintf("%s %s %s", marker, checkbox(cv.Visible, false), col.Title)
		if dragging && i == from {
			line += " (moving)"
		}
		if dragging && i == over && over != from {
			line = focusStyle.Render(line)
		}
		out += line + "\n"
	}
	if dragging {
		out += "[↑/↓] Target  [enter] Drop  [esc] Cancel move"
	} else {
		out += "[space] Toggle  [a] All  [K/J] Move  [m] Drag  [enter] Apply  [esc] Cancel"
	}
	return panelStyle.Render(out)
}
