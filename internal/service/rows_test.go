package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/ledgergrid/internal/database"
	"github.com/jask/ledgergrid/internal/database/repository"
	"github.com/jask/ledgergrid/internal/grid"
)

func newTestSource(t *testing.T) *RowSource {
	t.Helper()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))

	txRepo := repository.NewTransactionRepo(db)
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := []repository.Transaction{
		{ID: "t1", AccountID: database.AccountID("Everyday"), Date: day, AmountCents: -2000, RawDescription: "WOOLWORTHS METRO", Status: repository.StatusPosted},
		{ID: "t2", AccountID: database.AccountID("Credit Card"), Date: day.AddDate(0, 0, 1), AmountCents: -1500, RawDescription: "UBER EATS* SUSHI", Status: repository.StatusPending},
		{ID: "t3", AccountID: database.AccountID("Everyday"), Date: day.AddDate(0, 0, 2), AmountCents: 300000, RawDescription: "SALARY ACME PTY", Status: repository.StatusPosted},
		{ID: "t4", AccountID: database.AccountID("Online Saver"), Date: day.AddDate(0, 0, 3), AmountCents: -500, RawDescription: "WOOLWORTHS ONLINE", Status: repository.StatusVoid},
		{ID: "t5", AccountID: database.AccountID("Credit Card"), Date: day.AddDate(0, 0, 4), AmountCents: -2000, RawDescription: "SPOTIFY P1234", Status: repository.StatusPosted},
	}
	for _, r := range rows {
		require.NoError(t, txRepo.Insert(ctx, r))
	}
	return &RowSource{Transactions: txRepo}
}

func pageIDs(p Page) []string {
	out := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		out[i] = r.ID
	}
	return out
}

func TestFetchPagesNewestFirst(t *testing.T) {
	src := newTestSource(t)
	ctx := context.Background()

	p1, err := src.Fetch(ctx, Query{Pagination: grid.Pagination{Page: 1, PageSize: 2}})
	require.NoError(t, err)
	require.Equal(t, 5, p1.Total)
	require.Equal(t, 3, p1.Pages(2))
	require.Equal(t, []string{"t5", "t4"}, pageIDs(p1))

	p3, err := src.Fetch(ctx, Query{Pagination: grid.Pagination{Page: 3, PageSize: 2}})
	require.NoError(t, err)
	require.Equal(t, []string{"t1"}, pageIDs(p3))

	p9, err := src.Fetch(ctx, Query{Pagination: grid.Pagination{Page: 9, PageSize: 2}})
	require.NoError(t, err)
	require.Empty(t, p9.Rows)
	require.Equal(t, 5, p9.Total)
}

func TestFetchAppliesFilters(t *testing.T) {
	src := newTestSource(t)
	ctx := context.Background()
	all := grid.Pagination{Page: 1, PageSize: 50}

	p, err := src.Fetch(ctx, Query{Filters: grid.FilterValues{ColStatus: repository.StatusPosted}, Pagination: all})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"t1", "t3", "t5"}, pageIDs(p))

	p, err = src.Fetch(ctx, Query{Filters: grid.FilterValues{ColAccount: "evryday"}, Pagination: all})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"t1", "t3"}, pageIDs(p))

	p, err = src.Fetch(ctx, Query{Filters: grid.FilterValues{ColDescription: "wlwrth"}, Pagination: all})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"t1", "t4"}, pageIDs(p))

	p, err = src.Fetch(ctx, Query{Filters: grid.FilterValues{ColStatus: nil, ColAccount: nil, ColDescription: nil}, Pagination: all})
	require.NoError(t, err)
	require.Equal(t, 5, p.Total)
}

func TestFetchMultiSort(t *testing.T) {
	src := newTestSource(t)
	ctx := context.Background()

	sortState := grid.SortState{
		ColAmount: {Order: grid.OrderAscend, Priority: 2},
		ColDate:   {Order: grid.OrderDescend, Priority: 1},
	}
	p, err := src.Fetch(ctx, Query{Sort: sortState, Pagination: grid.Pagination{Page: 1, PageSize: 50}})
	require.NoError(t, err)
	require.Equal(t, []string{"t5", "t1", "t2", "t4", "t3"}, pageIDs(p))
}

func TestAccountMatches(t *testing.T) {
	require.True(t, AccountMatches("Everyday", "every"))
	require.True(t, AccountMatches("Everyday", "Evryday"))
	require.False(t, AccountMatches("Everyday", "saver"))
}

func TestSelectableAndKey(t *testing.T) {
	require.False(t, Selectable(repository.Transaction{Status: repository.StatusVoid}))
	require.True(t, Selectable(repository.Transaction{Status: repository.StatusPending}))
	require.Equal(t, "x", RecordKey(repository.Transaction{ID: "x"}))
}
