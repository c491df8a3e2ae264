package grid

// ColumnView is one entry of a ViewState.
type ColumnView struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
}

// ViewState is the ordered visibility list of a grid. Order is display order
// from left to right.
type ViewState []ColumnView

// Clone returns an independent copy.
func (v ViewState) Clone() ViewState {
	if v == nil {
		return nil
	}
	out := make(ViewState, len(v))
	copy(out, v)
	return out
}

// Equal reports whether both states have the same entries in the same order.
func (v ViewState) Equal(other ViewState) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// IndexOf returns the position of id or -1.
func (v ViewState) IndexOf(id string) int {
	for i, cv := range v {
		if cv.ID == id {
			return i
		}
	}
	return -1
}

// VisibleIDs returns the ids of visible columns in display order.
func (v ViewState) VisibleIDs() []string {
	var out []string
	for _, cv := range v {
		if cv.Visible {
			out = append(out, cv.ID)
		}
	}
	return out
}

// VisibleCount returns how many entries are visible.
func (v ViewState) VisibleCount() int {
	n := 0
	for _, cv := range v {
		if cv.Visible {
			n++
		}
	}
	return n
}

// WithToggled returns a copy with the visibility of id flipped. Unknown ids
// yield an unchanged copy.
func (v ViewState) WithToggled(id string) ViewState {
	out := v.Clone()
	if i := out.IndexOf(id); i >= 0 {
		out[i].Visible = !out[i].Visible
	}
	return out
}

// WithAllVisible returns a copy with every entry set to visible.
func (v ViewState) WithAllVisible(visible bool) ViewState {
	out := v.Clone()
	for i := range out {
		out[i].Visible = visible
	}
	return out
}

// Move is a stable array move: the element at from is removed and inserted at
// to, every other element keeps its relative order. Out of range indexes
// return an unchanged copy.
func Move[T any](list []T, from, to int) []T {
	out := make([]T, len(list))
	copy(out, list)
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) || from == to {
		return out
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}
