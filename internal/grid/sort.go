package grid

import "sort"

// Order is a column sort direction. The zero value means unsorted.
type Order string

const (
	OrderNone    Order = ""
	OrderAscend  Order = "ascend"
	OrderDescend Order = "descend"
)

// SortEntry is the sort state of one column.
type SortEntry struct {
	Order    Order
	Priority int
}

// SortState maps column ids to their sort entry. Absent columns are unsorted.
type SortState map[string]SortEntry

// SortDescriptor is what the rendering layer reports for one sorted column.
type SortDescriptor struct {
	ColumnID string
	Order    Order
}

// SortedColumn is one active sort in precedence order.
type SortedColumn struct {
	ColumnID string
	Order    Order
	Priority int
}

// Clone returns an independent copy.
func (s SortState) Clone() SortState {
	out := make(SortState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// OrderOf returns the order of a column, OrderNone when unsorted.
func (s SortState) OrderOf(id string) Order {
	return s[id].Order
}

// Ordered returns active sorts, highest priority first. Equal priorities fall
// back to column id so the result is deterministic.
func (s SortState) Ordered() []SortedColumn {
	out := make([]SortedColumn, 0, len(s))
	for id, e := range s {
		if e.Order == OrderNone {
			continue
		}
		out = append(out, SortedColumn{ColumnID: id, Order: e.Order, Priority: e.Priority})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ColumnID < out[j].ColumnID
	})
	return out
}

// Descriptors returns the active sorts in the form the rendering layer reports
// them.
func (s SortState) Descriptors() []SortDescriptor {
	ordered := s.Ordered()
	out := make([]SortDescriptor, len(ordered))
	for i, c := range ordered {
		out[i] = SortDescriptor{ColumnID: c.ColumnID, Order: c.Order}
	}
	return out
}

// SortCoordinator keeps the sort state. Priorities come from the column
// declarations and never change at runtime.
type SortCoordinator struct {
	priorities map[string]int
	state      SortState
}

func newSortCoordinator[R any](reg *Registry[R], initial SortState) *SortCoordinator {
	s := &SortCoordinator{priorities: map[string]int{}, state: SortState{}}
	for _, c := range reg.available {
		if c.Sortable != nil {
			s.priorities[c.ID] = c.Sortable.Priority
		}
	}
	if initial != nil {
		descs := make([]SortDescriptor, 0, len(initial))
		for id, e := range initial {
			descs = append(descs, SortDescriptor{ColumnID: id, Order: e.Order})
		}
		s.Change(descs)
	}
	return s
}

// State returns a copy of the current sort state.
func (s *SortCoordinator) State() SortState { return s.state.Clone() }

// Sortable reports whether a column participates in sorting.
func (s *SortCoordinator) Sortable(id string) bool {
	_, ok := s.priorities[id]
	return ok
}

// Change replaces the whole sort state with the reported descriptors. Columns
// missing from descs end up unsorted.
func (s *SortCoordinator) Change(descs []SortDescriptor) SortState {
	next := make(SortState, len(descs))
	for _, d := range descs {
		prio, ok := s.priorities[d.ColumnID]
		if !ok || d.Order == OrderNone {
			continue
		}
		next[d.ColumnID] = SortEntry{Order: d.Order, Priority: prio}
	}
	s.state = next
	return next.Clone()
}
