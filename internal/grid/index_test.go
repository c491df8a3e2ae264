package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexWithoutSelectionIsSequential(t *testing.T) {
	col := SynthesizeIndex[txn, string](nil, pageOf("r", 3), Pagination{Page: 3, PageSize: 20})
	require.False(t, col.Header.Checkbox)
	require.Equal(t, []IndexCell{{Number: 41}, {Number: 42}, {Number: 43}}, col.Cells)
}

func TestIndexWithSelection(t *testing.T) {
	rows := pageOf("r", 3)
	rows[2].Status = "void"
	s := newTxnSelection(KeepPagination, []txn{rows[0]})

	col := SynthesizeIndex(s, rows, Pagination{Page: 1, PageSize: 10})
	require.Equal(t, IndexHeader{Checkbox: true, Indeterminate: true}, col.Header)
	require.Equal(t, []IndexCell{
		{Number: 1, Checkbox: true, Checked: true},
		{Number: 2, Checkbox: true},
		{Number: 3, Checkbox: true, Disabled: true},
	}, col.Cells)
}

func TestIndexHeaderDisabledWithoutSelectableRows(t *testing.T) {
	s := newTxnSelection(AutoClear, nil)
	col := SynthesizeIndex(s, []txn{{ID: "v", Status: "void"}}, Pagination{Page: 1, PageSize: 10})
	require.True(t, col.Header.Disabled)
	require.False(t, col.Header.Checked)
}

func TestPaginationNormalize(t *testing.T) {
	require.Equal(t, Pagination{Page: 1, PageSize: 1}, Pagination{}.Normalize())
	require.Equal(t, 1, Pagination{}.RowNumber(0))
}
