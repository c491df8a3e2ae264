package grid

// IndexColumnID is reserved for the synthesized index/checkbox column.
const IndexColumnID = "__index"

// RenderFunc renders one cell of a column.
type RenderFunc[R any] func(row R, index int) string

// SortConfig marks a column as sortable. Priority is static; when several
// columns are sorted the one with the higher priority wins.
type SortConfig struct {
	Priority int
}

// FilterConfig marks a column as filterable. Options, when set, restricts the
// editor to a fixed set of values.
type FilterConfig struct {
	Label   string
	Options []string
}

// Column declares a grid column. Declarations are immutable for the lifetime
// of a render pass.
type Column[R any] struct {
	ID            string
	Title         string
	Width         int
	DefaultHidden bool
	Hidden        bool
	Sortable      *SortConfig
	Filterable    *FilterConfig
	Render        RenderFunc[R]
}

// Registry derives the working column list and default view from the
// declarations.
type Registry[R any] struct {
	available []Column[R]
	defaults  ViewState
	byID      map[string]int
}

// NewRegistry builds a registry from cols. Hidden columns and anything using
// IndexColumnID are left out.
func NewRegistry[R any](cols []Column[R]) *Registry[R] {
	r := &Registry[R]{byID: make(map[string]int, len(cols))}
	for _, c := range cols {
		if c.Hidden || c.ID == IndexColumnID {
			continue
		}
		if _, dup := r.byID[c.ID]; dup {
			continue
		}
		r.byID[c.ID] = len(r.available)
		r.available = append(r.available, c)
		r.defaults = append(r.defaults, ColumnView{ID: c.ID, Visible: !c.DefaultHidden})
	}
	return r
}

// Available returns the declared, non-hidden columns in declared order.
func (r *Registry[R]) Available() []Column[R] {
	out := make([]Column[R], len(r.available))
	copy(out, r.available)
	return out
}

// Defaults returns a fresh copy of the default view.
func (r *Registry[R]) Defaults() ViewState {
	return r.defaults.Clone()
}

// Column looks up an available column by id.
func (r *Registry[R]) Column(id string) (Column[R], bool) {
	idx, ok := r.byID[id]
	if !ok {
		var zero Column[R]
		return zero, false
	}
	return r.available[idx], true
}

// Len returns the number of available columns.
func (r *Registry[R]) Len() int { return len(r.available) }

// Reconcile normalizes state so that it covers every available column exactly
// once. Unknown and duplicate ids are dropped, missing columns are appended
// with their default visibility. The second result reports whether anything
// changed.
func (r *Registry[R]) Reconcile(state ViewState) (ViewState, bool) {
	out := make(ViewState, 0, len(r.available))
	seen := make(map[string]bool, len(state))
	changed := false
	for _, cv := range state {
		if _, ok := r.byID[cv.ID]; !ok || seen[cv.ID] {
			changed = true
			continue
		}
		seen[cv.ID] = true
		out = append(out, cv)
	}
	for _, def := range r.defaults {
		if seen[def.ID] {
			continue
		}
		out = append(out, def)
		changed = true
	}
	return out, changed
}
