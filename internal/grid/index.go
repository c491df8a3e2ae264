package grid

// Pagination is the current page (1-based) and page size.
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize clamps page and size to at least 1.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
	return p
}

// RowNumber returns the 1-based position of the row across pages.
func (p Pagination) RowNumber(indexInPage int) int {
	p = p.Normalize()
	return p.PageSize*(p.Page-1) + indexInPage + 1
}

// IndexHeader is the header of the index column.
type IndexHeader struct {
	Checkbox      bool
	Checked       bool
	Indeterminate bool
	Disabled      bool
}

// IndexCell is one cell of the index column. Number is always filled; the
// checkbox fields only matter when Checkbox is set.
type IndexCell struct {
	Number   int
	Checkbox bool
	Checked  bool
	Disabled bool
}

// IndexColumn is the synthesized leading column.
type IndexColumn struct {
	Header IndexHeader
	Cells  []IndexCell
}

// SynthesizeIndex builds the index column for the page rows. A nil selection
// degrades every cell to its sequential number.
func SynthesizeIndex[R any, K comparable](sel *Selection[R, K], rows []R, p Pagination) IndexColumn {
	col := IndexColumn{Cells: make([]IndexCell, len(rows))}
	for i := range rows {
		col.Cells[i].Number = p.RowNumber(i)
	}
	if sel == nil {
		return col
	}
	ps := sel.Page(rows)
	col.Header = IndexHeader{
		Checkbox:      true,
		Checked:       ps.CheckedAll,
		Indeterminate: ps.Indeterminate,
		Disabled:      len(ps.Selectable) == 0,
	}
	for i, r := range rows {
		col.Cells[i].Checkbox = true
		col.Cells[i].Checked = sel.IsSelected(r)
		col.Cells[i].Disabled = !sel.Selectable(r)
	}
	return col
}
