package grid

import "log/slog"

// Options configures an Engine.
type Options[R any, K comparable] struct {
	Columns []Column[R]

	// StorageKey and Repository enable persistence of the column view. Either
	// one being empty keeps the view in memory only.
	StorageKey  string
	Repository  ViewConfigRepository
	InitialView ViewState

	// Selection enables the checkbox index column when non-nil.
	Selection *SelectionOptions[R, K]

	FilterVariant  FilterVariant
	FilterTiming   *CommitTiming
	InitialFilters FilterValues
	InitialSort    SortState
	Pagination     Pagination

	OnSortChange       func(SortState)
	OnFilterChange     func(FilterValues)
	OnPaginationChange func(Pagination)
	OnViewChange       func(ViewState)

	Logger *slog.Logger
}

// Engine wires the coordinators into one grid. It keeps no state of its own
// besides the pagination it forwards.
type Engine[R any, K comparable] struct {
	registry   *Registry[R]
	columns    *ColumnEditor
	sort       *SortCoordinator
	filters    *FilterCoordinator
	selection  *Selection[R, K]
	pagination Pagination

	onSortChange       func(SortState)
	onPaginationChange func(Pagination)
}

// New builds an engine and resolves the initial column view.
func New[R any, K comparable](opts Options[R, K]) *Engine[R, K] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := NewRegistry(opts.Columns)
	persist := viewPersistence{repo: opts.Repository, key: opts.StorageKey, logger: logger}
	view := resolveViewState(reg, opts.InitialView, persist)

	timing := opts.FilterVariant.DefaultTiming()
	if opts.FilterTiming != nil {
		timing = *opts.FilterTiming
	}

	e := &Engine[R, K]{
		registry:           reg,
		columns:            newColumnEditor(view, reg.Defaults(), persist),
		sort:               newSortCoordinator(reg, opts.InitialSort),
		filters:            newFilterCoordinator(opts.FilterVariant, timing, opts.InitialFilters),
		pagination:         opts.Pagination.Normalize(),
		onSortChange:       opts.OnSortChange,
		onPaginationChange: opts.OnPaginationChange,
	}
	e.columns.OnChange(opts.OnViewChange)
	e.filters.onChange = opts.OnFilterChange
	if opts.Selection != nil {
		e.selection = NewSelection(*opts.Selection, e.pagination.Page)
	}
	return e
}

func (e *Engine[R, K]) Registry() *Registry[R] { return e.registry }
func (e *Engine[R, K]) Columns() *ColumnEditor { return e.columns }
func (e *Engine[R, K]) Sort() *SortCoordinator { return e.sort }
func (e *Engine[R, K]) Filters() *FilterCoordinator { return e.filters }
func (e *Engine[R, K]) Selection() *Selection[R, K] { return e.selection }
func (e *Engine[R, K]) Pagination() Pagination { return e.pagination }
func (e *Engine[R, K]) HasSelection() bool { return e.selection != nil }

// ChangeSort replaces the sort state and notifies the caller.
func (e *Engine[R, K]) ChangeSort(descs []SortDescriptor) SortState {
	next := e.sort.Change(descs)
	if e.onSortChange != nil {
		e.onSortChange(next.Clone())
	}
	return next
}

// SetPagination moves to another page or page size. The selection sees the
// page change before the caller is notified.
func (e *Engine[R, K]) SetPagination(p Pagination) {
	p = p.Normalize()
	if p == e.pagination {
		return
	}
	e.pagination = p
	if e.selection != nil {
		e.selection.SetPage(p.Page)
	}
	if e.onPaginationChange != nil {
		e.onPaginationChange(p)
	}
}

// ColumnProps is one rendered data column.
type ColumnProps[R any] struct {
	Column[R]
	SortOrder    Order
	IsSortable   bool
	IsFilterable bool
	Filtered     bool
	FilterOpen   bool
}

// Props is everything the rendering layer needs for one pass.
type Props[R any] struct {
	Index      IndexColumn
	Columns    []ColumnProps[R]
	Rows       []R
	Selection  PageSelection[R]
	Selectable bool
	Sort       SortState
	Filters    FilterValues
	FilterUI   FilterUIState
	Pagination Pagination
}

// Props derives the rendering props for the rows of the current page.
func (e *Engine[R, K]) Props(rows []R) Props[R] {
	sortState := e.sort.State()
	committed := e.filters.Committed()
	ui := e.filters.UI()

	p := Props[R]{
		Index:      SynthesizeIndex(e.selection, rows, e.pagination),
		Rows:       rows,
		Selectable: e.selection != nil,
		Sort:       sortState,
		Filters:    committed,
		FilterUI:   ui,
		Pagination: e.pagination,
	}
	if e.selection != nil {
		p.Selection = e.selection.Page(rows)
	}
	for _, id := range e.columns.State().VisibleIDs() {
		col, ok := e.registry.Column(id)
		if !ok {
			continue
		}
		p.Columns = append(p.Columns, ColumnProps[R]{
			Column:       col,
			SortOrder:    sortState.OrderOf(id),
			IsSortable:   col.Sortable != nil,
			IsFilterable: col.Filterable != nil,
			Filtered:     committed.Active(id),
			FilterOpen:   (ui.Phase == PhaseColumn && ui.ActiveColumnID == id) || (ui.Phase == PhaseAll && col.Filterable != nil),
		})
	}
	return p
}
