package tui

import (
	"fmt"

	"github.com/jask/ledgergrid/internal/database/repository"
	"github.com/jask/ledgergrid/internal/grid"
	"github.com/jask/ledgergrid/internal/service"
)

const dateLayout = "2006-01-02"

func formatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// transactionColumns declares the listing columns. accounts feeds the account
// filter options.
func transactionColumns(accounts []string) []grid.Column[repository.Transaction] {
	return []grid.Column[repository.Transaction]{
		{
			ID: service.ColDate, Title: "Date", Width: 10,
			Sortable: &grid.SortConfig{Priority: 1},
			Render:   func(t repository.Transaction, _ int) string { return t.Date.Format(dateLayout) },
		},
		{
			ID: service.ColAccount, Title: "Account", Width: 14,
			Sortable:   &grid.SortConfig{Priority: 2},
			Filterable: &grid.FilterConfig{Label: "Account", Options: accounts},
			Render:     func(t repository.Transaction, _ int) string { return t.AccountName },
		},
		{
			ID: service.ColDescription, Title: "Description", Width: 26,
			Sortable:   &grid.SortConfig{Priority: 3},
			Filterable: &grid.FilterConfig{Label: "Description"},
			Render:     func(t repository.Transaction, _ int) string { return t.RawDescription },
		},
		{
			ID: service.ColAmount, Title: "Amount", Width: 12,
			Sortable: &grid.SortConfig{Priority: 4},
			Render:   func(t repository.Transaction, _ int) string { return formatAmount(t.AmountCents) },
		},
		{
			ID: service.ColStatus, Title: "Status", Width: 8,
			Filterable: &grid.FilterConfig{
				Label:   "Status",
				Options: []string{repository.StatusPosted, repository.StatusPending, repository.StatusVoid},
			},
			Render: func(t repository.Transaction, _ int) string { return t.Status },
		},
		{
			ID: "id", Title: "ID", Width: 36, DefaultHidden: true,
			Render: func(t repository.Transaction, _ int) string { return t.ID },
		},
	}
}

// nextOrder cycles none -> ascend -> descend -> none.
func nextOrder(o grid.Order) grid.Order {
	switch o {
	case grid.OrderNone:
		return grid.OrderAscend
	case grid.OrderAscend:
		return grid.OrderDescend
	default:
		return grid.OrderNone
	}
}

// cycleSort builds the descriptor list the table reports after the header of
// id is activated. Without multi only id is reported, which clears every
// other column.
func cycleSort(state grid.SortState, id string, multi bool) []grid.SortDescriptor {
	next := nextOrder(state.OrderOf(id))
	var descs []grid.SortDescriptor
	if multi {
		for _, d := range state.Descriptors() {
			if d.ColumnID != id {
				descs = append(descs, d)
			}
		}
	}
	if next != grid.OrderNone {
		descs = append(descs, grid.SortDescriptor{ColumnID: id, Order: next})
	}
	return descs
}
