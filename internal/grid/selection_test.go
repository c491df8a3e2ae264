package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTxnSelection(mode SelectionMode, initial []txn) *Selection[txn, string] {
	return NewSelection(SelectionOptions[txn, string]{
		Mode:       mode,
		Initial:    initial,
		Key:        txnKey,
		Selectable: notVoid,
	}, 1)
}

func ids(rows []txn) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestCheckedAllIgnoresUnselectableRows(t *testing.T) {
	a := txn{ID: "A", Status: "posted"}
	b := txn{ID: "B", Status: "posted"}
	c := txn{ID: "C", Status: "void"}
	page := []txn{a, b, c}

	s := newTxnSelection(AutoClear, []txn{a})
	ps := s.Page(page)
	require.Equal(t, []string{"A", "B"}, ids(ps.Selectable))
	require.False(t, ps.CheckedAll)
	require.True(t, ps.Indeterminate)

	s.ToggleRow(b, true)
	ps = s.Page(page)
	require.True(t, ps.CheckedAll)
	require.False(t, ps.Indeterminate)
}

func TestCheckedAllFalseWithoutSelectableRows(t *testing.T) {
	s := newTxnSelection(AutoClear, nil)
	require.False(t, s.Page(nil).CheckedAll)
	require.False(t, s.Page([]txn{{ID: "V", Status: "void"}}).CheckedAll)
}

func TestAutoClearClearsOnPageChange(t *testing.T) {
	var calls [][]txn
	s := NewSelection(SelectionOptions[txn, string]{
		Mode:     AutoClear,
		Initial:  []txn{{ID: "A"}, {ID: "B"}},
		Key:      txnKey,
		OnChange: func(r []txn) { calls = append(calls, r) },
	}, 1)

	s.SetPage(1)
	require.Len(t, s.Records(), 2)
	require.Empty(t, calls)

	s.SetPage(2)
	require.Empty(t, s.Records())
	require.Len(t, calls, 1)
}

func TestKeepPaginationSurvivesPageChange(t *testing.T) {
	s := newTxnSelection(KeepPagination, []txn{{ID: "A"}})
	s.SetPage(2)
	require.Equal(t, []string{"A"}, ids(s.Records()))
}

func TestAutoClearHeaderToggleScopesToPage(t *testing.T) {
	s := newTxnSelection(AutoClear, []txn{{ID: "elsewhere"}})
	page := pageOf("p", 3)
	page[2].Status = "void"

	s.ToggleAll(page, true)
	require.Equal(t, []string{"p0", "p1"}, ids(s.Records()))

	s.ToggleAll(page, false)
	require.Empty(t, s.Records())
}

func TestKeepPaginationAccumulates(t *testing.T) {
	page1 := []txn{{ID: "A"}, {ID: "B"}}
	page2 := []txn{{ID: "C"}, {ID: "D"}}
	s := newTxnSelection(KeepPagination, nil)

	s.ToggleAll(page1, true)
	s.SetPage(2)
	s.ToggleAll(page2, true)
	require.ElementsMatch(t, []string{"A", "B", "C", "D"}, ids(s.Records()))

	s.ToggleAll(page2, true)
	require.Len(t, s.Records(), 4)

	s.ToggleAll(page2, false)
	require.Equal(t, []string{"A", "B"}, ids(s.Records()))
}

func TestApplyHeaderToggleStrategies(t *testing.T) {
	records := []txn{{ID: "X"}, {ID: "A"}}
	page := []txn{{ID: "A"}, {ID: "B"}}

	require.Equal(t, []string{"A", "B"}, ids(ApplyHeaderToggle(AutoClear, records, page, txnKey, true)))
	require.Empty(t, ApplyHeaderToggle(AutoClear, records, page, txnKey, false))
	require.Equal(t, []string{"X", "A", "B"}, ids(ApplyHeaderToggle(KeepPagination, records, page, txnKey, true)))
	require.Equal(t, []string{"X"}, ids(ApplyHeaderToggle(KeepPagination, records, page, txnKey, false)))
	require.Equal(t, []string{"X", "A"}, ids(records))
}

func TestToggleRow(t *testing.T) {
	s := newTxnSelection(KeepPagination, nil)
	a := txn{ID: "A", Desc: "first"}

	s.ToggleRow(a, true)
	s.ToggleRow(txn{ID: "A", Desc: "refetched copy"}, true)
	require.Equal(t, []string{"A"}, ids(s.Records()))
	require.True(t, s.IsSelected(txn{ID: "A"}))

	s.ToggleRow(txn{ID: "V", Status: "void"}, true)
	require.Len(t, s.Records(), 1)

	s.ToggleRow(txn{ID: "A", Desc: "refetched copy"}, false)
	require.Empty(t, s.Records())
}

func TestIdentityKey(t *testing.T) {
	s := NewSelection(SelectionOptions[string, string]{Key: IdentityKey[string]()}, 1)
	s.ToggleRow("a", true)
	s.ToggleRow("a", true)
	require.Equal(t, []string{"a"}, s.Records())
}

func TestModeString(t *testing.T) {
	require.Equal(t, "autoClear", AutoClear.String())
	require.Equal(t, "keepPagination", KeepPagination.String())
}
