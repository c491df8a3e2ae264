package service

import (
	"cmp"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"

	"github.com/jask/ledgergrid/internal/database/repository"
	"github.com/jask/ledgergrid/internal/grid"
)

// Column ids of the transactions listing.
const (
	ColDate        = "date"
	ColAccount     = "account"
	ColDescription = "description"
	ColAmount      = "amount"
	ColStatus      = "status"
)

// Query is one page request built from the committed grid state.
type Query struct {
	Filters    grid.FilterValues
	Sort       grid.SortState
	Pagination grid.Pagination
}

// Page is one fetched page plus the total number of matching rows.
type Page struct {
	Rows  []repository.Transaction
	Total int
}

// Pages returns the number of pages for the total at the given size.
func (p Page) Pages(size int) int {
	if size < 1 || p.Total == 0 {
		return 1
	}
	return (p.Total + size - 1) / size
}

// RecordKey identifies a transaction for selection.
func RecordKey(t repository.Transaction) string { return t.ID }

// Selectable rejects void transactions.
func Selectable(t repository.Transaction) bool { return t.Status != repository.StatusVoid }

// TransactionLister is the part of repository.TransactionRepo RowSource needs.
type TransactionLister interface {
	List(ctx context.Context, f repository.TransactionFilters) ([]repository.Transaction, error)
}

// RowSource fetches transaction pages for the listing grid. Status is pushed
// down to SQL; the fuzzy filters and sorting run in memory.
type RowSource struct {
	Transactions TransactionLister
}

func filterString(f grid.FilterValues, id string) string {
	v, ok := f[id]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// Fetch returns the requested page.
func (s *RowSource) Fetch(ctx context.Context, q Query) (Page, error) {
	if s.Transactions == nil {
		return Page{}, fmt.Errorf("row source: transactions repo not configured")
	}
	rows, err := s.Transactions.List(ctx, repository.TransactionFilters{Status: filterString(q.Filters, ColStatus)})
	if err != nil {
		return Page{}, fmt.Errorf("list transactions: %w", err)
	}

	if acct := filterString(q.Filters, ColAccount); acct != "" {
		rows = filterAccounts(rows, acct)
	}
	if desc := filterString(q.Filters, ColDescription); desc != "" {
		rows = filterDescriptions(rows, desc)
	}
	// Without an active sort rows keep match rank, or newest first.
	if ordered := q.Sort.Ordered(); len(ordered) > 0 {
		sortTransactions(rows, ordered)
	}

	page := Page{Total: len(rows)}
	p := q.Pagination.Normalize()
	start := (p.Page - 1) * p.PageSize
	if start >= len(rows) {
		return page, nil
	}
	end := min(start+p.PageSize, len(rows))
	page.Rows = rows[start:end]
	return page, nil
}

// AccountMatches accepts case-insensitive substrings and near misses, so
// "evryday" still finds "Everyday".
func AccountMatches(name, query string) bool {
	n, q := strings.ToLower(name), strings.ToLower(query)
	if strings.Contains(n, q) {
		return true
	}
	dist := levenshtein.ComputeDistance(n, q)
	return float64(dist)/float64(max(len(n), len(q))) < 0.3
}

func filterAccounts(rows []repository.Transaction, query string) []repository.Transaction {
	out := rows[:0:0]
	for _, r := range rows {
		if AccountMatches(r.AccountName, query) {
			out = append(out, r)
		}
	}
	return out
}

type descriptionSource []repository.Transaction

func (d descriptionSource) String(i int) string { return d[i].RawDescription }
func (d descriptionSource) Len() int            { return len(d) }

// filterDescriptions keeps fuzzy matches ordered by match score.
func filterDescriptions(rows []repository.Transaction, query string) []repository.Transaction {
	matches := fuzzy.FindFrom(query, descriptionSource(rows))
	out := make([]repository.Transaction, len(matches))
	for i, m := range matches {
		out[i] = rows[m.Index]
	}
	return out
}

func compareColumn(a, b repository.Transaction, id string) int {
	switch id {
	case ColDate:
		return a.Date.Compare(b.Date)
	case ColAccount:
		return cmp.Compare(strings.ToLower(a.AccountName), strings.ToLower(b.AccountName))
	case ColDescription:
		return cmp.Compare(strings.ToLower(a.RawDescription), strings.ToLower(b.RawDescription))
	case ColAmount:
		return cmp.Compare(a.AmountCents, b.AmountCents)
	case ColStatus:
		return cmp.Compare(a.Status, b.Status)
	}
	return 0
}

func sortTransactions(rows []repository.Transaction, ordered []grid.SortedColumn) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, col := range ordered {
			c := compareColumn(rows[i], rows[j], col.ColumnID)
			if c == 0 {
				continue
			}
			if col.Order == grid.OrderDescend {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}
