package grid

// SelectionMode is the policy deciding how selections survive pagination.
type SelectionMode int

const (
	// AutoClear scopes the selection to the current page and drops it on
	// every page change.
	AutoClear SelectionMode = iota
	// KeepPagination accumulates selections across pages.
	KeepPagination
)

func (m SelectionMode) String() string {
	if m == KeepPagination {
		return "keepPagination"
	}
	return "autoClear"
}

// KeyFunc extracts the identity used for selection membership.
type KeyFunc[R any, K comparable] func(R) K

// IdentityKey uses the row value itself as its key.
func IdentityKey[R comparable]() KeyFunc[R, R] {
	return func(r R) R { return r }
}

// PageSelection summarizes the selection relative to the current page.
type PageSelection[R any] struct {
	Selectable    []R
	CheckedAll    bool
	Indeterminate bool
	Count         int
}

// ApplyHeaderToggle computes the records after toggling the header checkbox
// under mode. pageSelectable are the selectable rows of the current page.
func ApplyHeaderToggle[R any, K comparable](mode SelectionMode, records, pageSelectable []R, key KeyFunc[R, K], checked bool) []R {
	switch mode {
	case KeepPagination:
		if checked {
			return appendMissing(records, pageSelectable, key)
		}
		return removeKeys(records, pageSelectable, key)
	default:
		if checked {
			out := make([]R, len(pageSelectable))
			copy(out, pageSelectable)
			return out
		}
		return []R{}
	}
}

func keySet[R any, K comparable](rows []R, key KeyFunc[R, K]) map[K]struct{} {
	out := make(map[K]struct{}, len(rows))
	for _, r := range rows {
		out[key(r)] = struct{}{}
	}
	return out
}

func appendMissing[R any, K comparable](records, add []R, key KeyFunc[R, K]) []R {
	out := make([]R, len(records), len(records)+len(add))
	copy(out, records)
	have := keySet(records, key)
	for _, r := range add {
		k := key(r)
		if _, ok := have[k]; ok {
			continue
		}
		have[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

func removeKeys[R any, K comparable](records, drop []R, key KeyFunc[R, K]) []R {
	gone := keySet(drop, key)
	out := make([]R, 0, len(records))
	for _, r := range records {
		if _, ok := gone[key(r)]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Selection tracks selected rows across pages.
type Selection[R any, K comparable] struct {
	mode       SelectionMode
	records    []R
	key        KeyFunc[R, K]
	selectable func(R) bool
	page       int
	onChange   func([]R)
}

// SelectionOptions configures row selection. Key defaults to the row value
// itself, which only works when R and K are the same type. Selectable defaults
// to accepting every row.
type SelectionOptions[R any, K comparable] struct {
	Mode       SelectionMode
	Initial    []R
	Key        KeyFunc[R, K]
	Selectable func(R) bool
	OnChange   func([]R)
}

// NewSelection builds a selection coordinator starting at page.
func NewSelection[R any, K comparable](opts SelectionOptions[R, K], page int) *Selection[R, K] {
	sel := opts.Selectable
	if sel == nil {
		sel = func(R) bool { return true }
	}
	key := opts.Key
	if key == nil {
		key = func(r R) K {
			k, _ := any(r).(K)
			return k
		}
	}
	records := make([]R, len(opts.Initial))
	copy(records, opts.Initial)
	return &Selection[R, K]{
		mode:       opts.Mode,
		records:    records,
		key:        key,
		selectable: sel,
		page:       page,
		onChange:   opts.OnChange,
	}
}

// Mode returns the selection policy.
func (s *Selection[R, K]) Mode() SelectionMode { return s.mode }

// Records returns a copy of the selected rows.
func (s *Selection[R, K]) Records() []R {
	out := make([]R, len(s.records))
	copy(out, s.records)
	return out
}

// Selectable reports whether a row may be selected.
func (s *Selection[R, K]) Selectable(row R) bool { return s.selectable(row) }

// IsSelected reports membership by key.
func (s *Selection[R, K]) IsSelected(row R) bool {
	k := s.key(row)
	for _, r := range s.records {
		if s.key(r) == k {
			return true
		}
	}
	return false
}

func (s *Selection[R, K]) set(records []R) {
	s.records = records
	if s.onChange != nil {
		s.onChange(s.Records())
	}
}

// Page computes the selection summary for the rows of the current page.
func (s *Selection[R, K]) Page(rows []R) PageSelection[R] {
	var ps PageSelection[R]
	for _, r := range rows {
		if s.selectable(r) {
			ps.Selectable = append(ps.Selectable, r)
		}
	}
	have := keySet(s.records, s.key)
	selectedOnPage := 0
	for _, r := range ps.Selectable {
		if _, ok := have[s.key(r)]; ok {
			selectedOnPage++
		}
	}
	ps.CheckedAll = len(ps.Selectable) > 0 && selectedOnPage == len(ps.Selectable)
	ps.Indeterminate = selectedOnPage > 0 && !ps.CheckedAll
	ps.Count = len(s.records)
	return ps
}

// ToggleAll applies the header checkbox to the page rows.
func (s *Selection[R, K]) ToggleAll(rows []R, checked bool) {
	ps := s.Page(rows)
	s.set(ApplyHeaderToggle(s.mode, s.records, ps.Selectable, s.key, checked))
}

// ToggleRow checks or unchecks a single row. Rows failing the selectable
// predicate cannot be checked.
func (s *Selection[R, K]) ToggleRow(row R, checked bool) {
	if checked {
		if !s.selectable(row) || s.IsSelected(row) {
			return
		}
		s.set(appendMissing(s.records, []R{row}, s.key))
		return
	}
	s.set(removeKeys(s.records, []R{row}, s.key))
}

// SetPage records the current page. Under AutoClear any change of page empties
// the selection.
func (s *Selection[R, K]) SetPage(page int) {
	if page == s.page {
		return
	}
	s.page = page
	if s.mode == AutoClear {
		s.set([]R{})
	}
}
