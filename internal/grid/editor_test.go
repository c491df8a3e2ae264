package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, repo ViewConfigRepository, key string) *Engine[txn, string] {
	t.Helper()
	return New(Options[txn, string]{
		Columns:    testColumns(),
		StorageKey: key,
		Repository: repo,
		Pagination: Pagination{Page: 1, PageSize: 10},
	})
}

func TestViewSeededIntoEmptyStore(t *testing.T) {
	repo := NewMemoryRepository()
	e := newTestEngine(t, repo, "txns")

	stored, err := repo.Load("txns")
	require.NoError(t, err)
	require.Equal(t, e.Registry().Defaults(), stored)
	require.Equal(t, stored, e.Columns().State())
}

func TestViewLoadedFromStore(t *testing.T) {
	repo := NewMemoryRepository()
	saved := ViewState{{ID: "d", Visible: true}, {ID: "c", Visible: true}, {ID: "b", Visible: false}, {ID: "a", Visible: true}}
	require.NoError(t, repo.Save("txns", saved))

	e := newTestEngine(t, repo, "txns")
	require.Equal(t, saved, e.Columns().State())
}

func TestCallerViewWinsOverStore(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.Save("txns", ViewState{{ID: "a", Visible: false}}))

	initial := ViewState{{ID: "b", Visible: true}, {ID: "a", Visible: true}, {ID: "c", Visible: true}, {ID: "d", Visible: false}}
	e := New(Options[txn, string]{
		Columns:     testColumns(),
		StorageKey:  "txns",
		Repository:  repo,
		InitialView: initial,
	})
	require.Equal(t, initial, e.Columns().State())
}

func TestCorruptStoredViewReseedsDefaults(t *testing.T) {
	repo := newFailingRepo(errCorrupt, nil)
	e := newTestEngine(t, repo, "txns")

	require.Equal(t, e.Registry().Defaults(), e.Columns().State())
	require.Equal(t, 1, repo.saves)
	require.Equal(t, e.Registry().Defaults(), repo.saved["txns"])
}

func TestDriftedStoredViewIsReconciledAndSaved(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.Save("txns", ViewState{{ID: "b", Visible: false}, {ID: "old", Visible: true}}))

	e := newTestEngine(t, repo, "txns")
	want := ViewState{{ID: "b", Visible: false}, {ID: "a", Visible: true}, {ID: "c", Visible: false}, {ID: "d", Visible: true}}
	require.Equal(t, want, e.Columns().State())

	stored, err := repo.Load("txns")
	require.NoError(t, err)
	require.Equal(t, want, stored)
}

func TestNoKeySkipsPersistence(t *testing.T) {
	repo := newFailingRepo(nil, nil)
	e := newTestEngine(t, repo, "")
	e.Columns().ToggleVisible("a")

	require.Zero(t, repo.saves)
	require.False(t, e.Columns().State()[0].Visible)
}

func TestToggleVisiblePersists(t *testing.T) {
	repo := NewMemoryRepository()
	e := newTestEngine(t, repo, "txns")
	before := e.Columns().State()

	e.Columns().ToggleVisible("c")

	stored, err := repo.Load("txns")
	require.NoError(t, err)
	for i, cv := range before {
		if cv.ID == "c" {
			require.Equal(t, !cv.Visible, stored[i].Visible)
			continue
		}
		require.Equal(t, cv, stored[i])
	}
	require.Equal(t, stored, e.Columns().State())
}

func TestToggleVisibleSaveFailureStillAdvances(t *testing.T) {
	repo := newFailingRepo(nil, errors.New("disk full"))
	e := newTestEngine(t, repo, "txns")

	e.Columns().ToggleVisible("a")
	require.False(t, e.Columns().State()[0].Visible)
}

func TestToggleUnknownColumnIsNoop(t *testing.T) {
	repo := newFailingRepo(nil, nil)
	e := newTestEngine(t, repo, "txns")
	saves := repo.saves

	e.Columns().ToggleVisible("nope")
	require.Equal(t, saves, repo.saves)
}

func TestStagedEditorIsolation(t *testing.T) {
	repo := NewMemoryRepository()
	e := newTestEngine(t, repo, "txns")
	ed := e.Columns()
	before := ed.State()

	ed.Open()
	ed.StagedToggle("a")
	ed.StagedReorder(0, 3)
	staged, ok := ed.Staged()
	require.True(t, ok)
	require.NotEqual(t, before, staged)
	require.Equal(t, before, ed.State())

	require.True(t, ed.Cancel())
	require.Equal(t, before, ed.State())
	stored, err := repo.Load("txns")
	require.NoError(t, err)
	require.Equal(t, before, stored)

	_, ok = ed.Staged()
	require.False(t, ok)
	require.False(t, ed.Apply())
}

func TestStagedApplyCommitsAndPersists(t *testing.T) {
	repo := NewMemoryRepository()
	var seen []ViewState
	e := New(Options[txn, string]{
		Columns:      testColumns(),
		StorageKey:   "txns",
		Repository:   repo,
		OnViewChange: func(v ViewState) { seen = append(seen, v) },
	})
	ed := e.Columns()

	ed.Open()
	ed.StagedReorder(0, 2)
	ed.StagedToggle("c")
	require.True(t, ed.Apply())
	require.False(t, ed.Cancel())

	want := ViewState{{ID: "b", Visible: true}, {ID: "c", Visible: true}, {ID: "a", Visible: true}, {ID: "d", Visible: true}}
	require.Equal(t, want, ed.State())
	stored, err := repo.Load("txns")
	require.NoError(t, err)
	require.Equal(t, want, stored)
	require.Len(t, seen, 1)
}

func TestReopenDiscardsUnappliedEdits(t *testing.T) {
	e := newTestEngine(t, NewMemoryRepository(), "txns")
	ed := e.Columns()

	ed.Open()
	ed.StagedToggle("a")
	ed.Open()
	staged, _ := ed.Staged()
	require.Equal(t, ed.State(), staged)
}

func TestStagedSelectAll(t *testing.T) {
	e := newTestEngine(t, NewMemoryRepository(), "txns")
	ed := e.Columns()
	require.False(t, ed.StagedAllChecked())

	ed.Open()
	require.False(t, ed.StagedAllChecked(), "c is hidden by default")

	ed.StagedToggleAll()
	require.True(t, ed.StagedAllChecked())
	staged, _ := ed.Staged()
	require.Equal(t, 4, staged.VisibleCount())

	ed.StagedToggleAll()
	require.False(t, ed.StagedAllChecked())
	staged, _ = ed.Staged()
	require.Zero(t, staged.VisibleCount())
	require.Equal(t, []string{"a", "b", "c", "d"}, []string{staged[0].ID, staged[1].ID, staged[2].ID, staged[3].ID})
}

func TestDragDropAndCancel(t *testing.T) {
	e := newTestEngine(t, NewMemoryRepository(), "txns")
	ed := e.Columns()
	require.False(t, ed.BeginDrag(0), "no session open")

	ed.Open()
	require.True(t, ed.BeginDrag(0))
	ed.DragOver(2)
	from, over, ok := ed.Dragging()
	require.True(t, ok)
	require.Equal(t, 0, from)
	require.Equal(t, 2, over)

	ed.CancelDrag()
	_, _, ok = ed.Dragging()
	require.False(t, ok)
	staged, _ := ed.Staged()
	require.Equal(t, ed.State(), staged)

	require.True(t, ed.BeginDrag(0))
	ed.DragOver(2)
	ed.Drop()
	staged, _ = ed.Staged()
	require.Equal(t, []string{"b", "c", "a", "d"}, []string{staged[0].ID, staged[1].ID, staged[2].ID, staged[3].ID})
	require.Equal(t, "a", ed.State()[0].ID)
}
