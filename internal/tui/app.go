package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ledgergrid/internal/database/repository"
	"github.com/jask/ledgergrid/internal/grid"
	"github.com/jask/ledgergrid/internal/service"
)

// Engine is the grid engine specialised to transactions keyed by id.
type Engine = grid.Engine[repository.Transaction, string]

// Options configures the listing page.
type Options struct {
	Source        *service.RowSource
	Views         grid.ViewConfigRepository
	StorageKey    string
	PageSize      int
	SelectionMode grid.SelectionMode
	FilterVariant grid.FilterVariant
	Accounts      []string
	Logger        *slog.Logger

	// Columns replaces the transaction column declarations when set.
	Columns []grid.Column[repository.Transaction]
}

// App is the transactions listing page. All grid state lives in the engine;
// App only tracks cursors, open panels and the fetched page.
type App struct {
	ctx    context.Context
	source *service.RowSource
	engine *Engine
	keys   keyMap
	help   help.Model
	logger *slog.Logger

	page      service.Page
	loaded    bool
	cursorRow int
	cursorCol int

	panel        panel
	panelCursor  int
	drawerCursor int
	input        textinput.Model

	// set by engine callbacks, consumed after each key
	reload    bool
	firstPage bool
	// seq numbers page loads; only the latest response is kept
	seq int

	status string
}

type panel string

const (
	panelNone    panel = ""
	panelColumns panel = "columns"
	panelEditor  panel = "editor"
)

type pageMsg struct {
	seq   int
	query service.Query
	page  service.Page
}

type errMsg struct{ error }

// New builds the listing page and its engine. The stored column view is
// resolved here, so a missing view is seeded before the first render.
func New(ctx context.Context, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	columns := opts.Columns
	if columns == nil {
		columns = transactionColumns(opts.Accounts)
	}
	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 64
	in.Cursor.SetMode(cursor.CursorStatic)

	a := &App{
		ctx:    ctx,
		source: opts.Source,
		keys:   newKeyMap(),
		help:   help.New(),
		logger: logger,
		input:  in,
	}
	a.engine = grid.New(grid.Options[repository.Transaction, string]{
		Columns:       columns,
		StorageKey:    opts.StorageKey,
		Repository:    opts.Views,
		FilterVariant: opts.FilterVariant,
		Pagination:    grid.Pagination{Page: 1, PageSize: opts.PageSize},
		Selection: &grid.SelectionOptions[repository.Transaction, string]{
			Mode:       opts.SelectionMode,
			Key:        service.RecordKey,
			Selectable: service.Selectable,
		},
		OnSortChange: func(s grid.SortState) {
			a.reload = true
			a.logger.Debug("sort changed", "columns", len(s))
		},
		OnFilterChange: func(f grid.FilterValues) {
			a.reload = true
			a.firstPage = true
			a.logger.Debug("filters changed", "values", f)
		},
		OnPaginationChange: func(p grid.Pagination) {
			a.reload = true
			a.logger.Debug("page changed", "page", p.Page, "size", p.PageSize)
		},
		OnViewChange: func(v grid.ViewState) {
			a.logger.Debug("view changed", "visible", v.VisibleIDs())
		},
		Logger: logger,
	})
	return a
}

func (a *App) Init() tea.Cmd {
	return a.loadPage()
}

func (a *App) loadPage() tea.Cmd {
	q := service.Query{
		Filters:    a.engine.Filters().Committed(),
		Sort:       a.engine.Sort().State(),
		Pagination: a.engine.Pagination(),
	}
	a.seq++
	seq := a.seq
	return func() tea.Msg {
		page, err := a.source.Fetch(a.ctx, q)
		if err != nil {
			return errMsg{err}
		}
		return pageMsg{seq: seq, query: q, page: page}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = m.Width
		return a, nil
	case pageMsg:
		return a, a.handlePage(m)
	case errMsg:
		a.status = "error: " + m.Error()
		a.logger.Error("load page", "err", m.error)
		return a, nil
	case tea.KeyMsg:
		model, cmd := a.handleKey(m)
		if reload := a.flush(); reload != nil {
			return model, tea.Batch(cmd, reload)
		}
		return model, cmd
	}
	return a, nil
}

// flush turns the flags set by engine callbacks into a page load. A filter
// change always starts over from the first page.
func (a *App) flush() tea.Cmd {
	if a.firstPage {
		a.firstPage = false
		p := a.engine.Pagination()
		p.Page = 1
		a.engine.SetPagination(p)
	}
	if !a.reload {
		return nil
	}
	a.reload = false
	return a.loadPage()
}

func (a *App) handlePage(m pageMsg) tea.Cmd {
	if m.seq != a.seq {
		// a later load was issued after this one
		return nil
	}
	p := a.engine.Pagination()
	if last := m.page.Pages(p.PageSize); p.Page > last {
		p.Page = last
		a.engine.SetPagination(p)
		return a.flush()
	}
	a.page = m.page
	a.loaded = true
	if a.cursorRow >= len(a.page.Rows) {
		a.cursorRow = max(len(a.page.Rows)-1, 0)
	}
	return nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	if a.engine.Filters().UI().Phase != grid.PhaseClosed {
		return a.handleFilterKey(m)
	}
	switch a.panel {
	case panelColumns:
		return a.handleColumnsKey(m)
	case panelEditor:
		return a.handleEditorKey(m)
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.cursorRow > 0 {
			a.cursorRow--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursorRow < len(a.page.Rows)-1 {
			a.cursorRow++
		}
	case key.Matches(m, a.keys.Left):
		if a.cursorCol > 0 {
			a.cursorCol--
		}
	case key.Matches(m, a.keys.Right):
		if a.cursorCol < a.engine.Columns().State().VisibleCount()-1 {
			a.cursorCol++
		}
	case key.Matches(m, a.keys.NextPage):
		p := a.engine.Pagination()
		if p.Page < a.page.Pages(p.PageSize) {
			p.Page++
			a.engine.SetPagination(p)
		}
	case key.Matches(m, a.keys.PrevPage):
		p := a.engine.Pagination()
		if p.Page > 1 {
			p.Page--
			a.engine.SetPagination(p)
		}
	case key.Matches(m, a.keys.ToggleRow):
		a.toggleRow()
	case key.Matches(m, a.keys.ToggleAll):
		if !a.engine.HasSelection() {
			break
		}
		sel := a.engine.Selection()
		ps := sel.Page(a.page.Rows)
		sel.ToggleAll(a.page.Rows, !ps.CheckedAll)
	case key.Matches(m, a.keys.Sort), key.Matches(m, a.keys.MultiSort):
		a.cycleSort(key.Matches(m, a.keys.MultiSort))
	case key.Matches(m, a.keys.Filter):
		return a, a.openFilter()
	case key.Matches(m, a.keys.ClearFilter):
		a.engine.Filters().ResetAll()
	case key.Matches(m, a.keys.Columns):
		a.panel = panelColumns
		a.panelCursor = 0
	case key.Matches(m, a.keys.Editor):
		a.engine.Columns().Open()
		a.panel = panelEditor
		a.panelCursor = 0
	}
	return a, nil
}

func (a *App) currentColumn() (grid.Column[repository.Transaction], bool) {
	ids := a.engine.Columns().State().VisibleIDs()
	if len(ids) == 0 {
		return grid.Column[repository.Transaction]{}, false
	}
	if a.cursorCol >= len(ids) {
		a.cursorCol = len(ids) - 1
	}
	return a.engine.Registry().Column(ids[a.cursorCol])
}

func (a *App) toggleRow() {
	if !a.engine.HasSelection() || a.cursorRow >= len(a.page.Rows) {
		return
	}
	sel := a.engine.Selection()
	row := a.page.Rows[a.cursorRow]
	if !sel.Selectable(row) {
		a.status = "row cannot be selected"
		return
	}
	sel.ToggleRow(row, !sel.IsSelected(row))
}

func (a *App) cycleSort(multi bool) {
	col, ok := a.currentColumn()
	if !ok {
		return
	}
	if !a.engine.Sort().Sortable(col.ID) {
		a.status = col.Title + " is not sortable"
		return
	}
	a.engine.ChangeSort(cycleSort(a.engine.Sort().State(), col.ID, multi))
}

// filterableColumns lists the drawer entries in view order.
func (a *App) filterableColumns() []grid.Column[repository.Transaction] {
	var out []grid.Column[repository.Transaction]
	for _, cv := range a.engine.Columns().State() {
		col, ok := a.engine.Registry().Column(cv.ID)
		if ok && col.Filterable != nil {
			out = append(out, col)
		}
	}
	return out
}

// focusedFilter is the column whose value the input edits.
func (a *App) focusedFilter() (grid.Column[repository.Transaction], bool) {
	ui := a.engine.Filters().UI()
	switch ui.Phase {
	case grid.PhaseColumn:
		return a.engine.Registry().Column(ui.ActiveColumnID)
	case grid.PhaseAll:
		cols := a.filterableColumns()
		if len(cols) == 0 {
			return grid.Column[repository.Transaction]{}, false
		}
		a.drawerCursor = min(a.drawerCursor, len(cols)-1)
		return cols[a.drawerCursor], true
	}
	return grid.Column[repository.Transaction]{}, false
}

func (a *App) openFilter() tea.Cmd {
	filters := a.engine.Filters()
	if filters.UI().Variant == grid.VariantAside {
		filters.OpenAll()
		a.drawerCursor = 0
	} else {
		col, ok := a.currentColumn()
		if !ok || col.Filterable == nil {
			a.status = "column is not filterable"
			return nil
		}
		filters.OpenColumn(col.ID)
	}
	a.syncInput()
	return a.input.Focus()
}

// syncInput loads the draft value of the focused column into the input.
func (a *App) syncInput() {
	col, ok := a.focusedFilter()
	if !ok {
		a.input.SetValue("")
		return
	}
	a.input.SetValue(draftText(a.engine.Filters().DraftValue(col.ID)))
	a.input.CursorEnd()
}

func draftText(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (a *App) editFocused(value string) {
	col, ok := a.focusedFilter()
	if !ok {
		return
	}
	if value == "" {
		a.engine.Filters().EditDraft(col.ID, nil)
		return
	}
	a.engine.Filters().EditDraft(col.ID, value)
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	filters := a.engine.Filters()
	ui := filters.UI()
	switch {
	case key.Matches(m, a.keys.Close):
		filters.Close()
		a.input.Blur()
		return a, nil
	case key.Matches(m, a.keys.Apply):
		if ui.Phase == grid.PhaseColumn {
			filters.ApplyColumn(ui.ActiveColumnID)
		} else {
			filters.ApplyAll()
		}
		a.input.Blur()
		return a, nil
	case key.Matches(m, a.keys.Reset):
		if ui.Phase == grid.PhaseColumn {
			filters.ResetColumn(ui.ActiveColumnID)
		} else {
			filters.ResetAll()
		}
		a.input.Blur()
		return a, nil
	case key.Matches(m, a.keys.Cycle):
		if col, ok := a.focusedFilter(); ok && len(col.Filterable.Options) > 0 {
			next := nextOption(col.Filterable.Options, a.input.Value())
			a.input.SetValue(next)
			a.input.CursorEnd()
			a.editFocused(next)
		}
		return a, nil
	case ui.Phase == grid.PhaseAll && (m.Type == tea.KeyUp || m.Type == tea.KeyDown):
		n := len(a.filterableColumns())
		if m.Type == tea.KeyUp && a.drawerCursor > 0 {
			a.drawerCursor--
		}
		if m.Type == tea.KeyDown && a.drawerCursor < n-1 {
			a.drawerCursor++
		}
		a.syncInput()
		return a, nil
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	if a.input.Value() != before {
		a.editFocused(a.input.Value())
	}
	return a, cmd
}

// nextOption cycles through options followed by the empty value.
func nextOption(options []string, current string) string {
	for i, o := range options {
		if o == current {
			if i+1 < len(options) {
				return options[i+1]
			}
			return ""
		}
	}
	return options[0]
}

func (a *App) handleColumnsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := a.engine.Columns().State()
	switch {
	case key.Matches(m, a.keys.Close), key.Matches(m, a.keys.Columns):
		a.panel = panelNone
	case key.Matches(m, a.keys.Up):
		if a.panelCursor > 0 {
			a.panelCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.panelCursor < len(view)-1 {
			a.panelCursor++
		}
	case key.Matches(m, a.keys.ToggleRow), key.Matches(m, a.keys.Apply):
		if a.panelCursor < len(view) {
			a.engine.Columns().ToggleVisible(view[a.panelCursor].ID)
		}
	}
	return a, nil
}

func (a *App) handleEditorKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	editor := a.engine.Columns()
	staged, ok := editor.Staged()
	if !ok {
		a.panel = panelNone
		return a, nil
	}
	hasEntry := a.panelCursor < len(staged)
	_, _, dragging := editor.Dragging()
	switch {
	case key.Matches(m, a.keys.Close):
		if dragging {
			editor.CancelDrag()
			return a, nil
		}
		editor.Cancel()
		a.panel = panelNone
	case key.Matches(m, a.keys.Apply):
		if dragging {
			editor.Drop()
			return a, nil
		}
		editor.Apply()
		a.panel = panelNone
		a.cursorCol = 0
	case key.Matches(m, a.keys.MoveUp):
		if !dragging && a.panelCursor > 0 {
			editor.StagedReorder(a.panelCursor, a.panelCursor-1)
			a.panelCursor--
		}
	case key.Matches(m, a.keys.MoveDown):
		if !dragging && a.panelCursor < len(staged)-1 {
			editor.StagedReorder(a.panelCursor, a.panelCursor+1)
			a.panelCursor++
		}
	case key.Matches(m, a.keys.Up):
		if a.panelCursor > 0 {
			a.panelCursor--
		}
		editor.DragOver(a.panelCursor)
	case key.Matches(m, a.keys.Down):
		if a.panelCursor < len(staged)-1 {
			a.panelCursor++
		}
		editor.DragOver(a.panelCursor)
	case key.Matches(m, a.keys.Drag):
		editor.BeginDrag(a.panelCursor)
	case key.Matches(m, a.keys.ToggleRow):
		if !dragging && hasEntry {
			editor.StagedToggle(staged[a.panelCursor].ID)
		}
	case key.Matches(m, a.keys.ToggleAll):
		if !dragging {
			editor.StagedToggleAll()
		}
	}
	return a, nil
}
