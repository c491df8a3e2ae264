package grid

import (
	"errors"
	"fmt"
)

type txn struct {
	ID     string
	Desc   string
	Status string
}

func txnKey(t txn) string { return t.ID }

func notVoid(t txn) bool { return t.Status != "void" }

func testColumns() []Column[txn] {
	render := func(r txn, _ int) string { return r.Desc }
	return []Column[txn]{
		{ID: "a", Title: "A", Width: 10, Sortable: &SortConfig{Priority: 1}, Render: render},
		{ID: "b", Title: "B", Width: 10, Sortable: &SortConfig{Priority: 2}, Filterable: &FilterConfig{}, Render: render},
		{ID: "c", Title: "C", Width: 10, DefaultHidden: true, Render: render},
		{ID: "d", Title: "D", Width: 10, Filterable: &FilterConfig{Options: []string{"x", "y"}}, Render: render},
		{ID: "secret", Title: "Secret", Hidden: true, Render: render},
	}
}

// failingRepo returns loadErr from Load and saveErr from Save while recording
// what was saved.
type failingRepo struct {
	loadErr error
	saveErr error
	saved   map[string]ViewState
	saves   int
}

func newFailingRepo(loadErr, saveErr error) *failingRepo {
	return &failingRepo{loadErr: loadErr, saveErr: saveErr, saved: map[string]ViewState{}}
}

func (f *failingRepo) Load(key string) (ViewState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	v, ok := f.saved[key]
	if !ok {
		return nil, ErrViewNotFound
	}
	return v.Clone(), nil
}

func (f *failingRepo) Save(key string, state ViewState) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[key] = state.Clone()
	return nil
}

var errCorrupt = errors.New("decode view: unexpected end of JSON input")

func pageOf(prefix string, n int) []txn {
	out := make([]txn, n)
	for i := range out {
		out[i] = txn{ID: fmt.Sprintf("%s%d", prefix, i), Desc: fmt.Sprintf("row %s%d", prefix, i), Status: "posted"}
	}
	return out
}
