package grid

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrViewNotFound is returned by a ViewConfigRepository when nothing is stored
// under a key.
var ErrViewNotFound = errors.New("view config not found")

// ViewConfigRepository persists column views under a caller-chosen key. Both
// calls are synchronous.
type ViewConfigRepository interface {
	Load(key string) (ViewState, error)
	Save(key string, state ViewState) error
}

// MemoryRepository keeps views in memory.
type MemoryRepository struct {
	mu    sync.Mutex
	views map[string]ViewState
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{views: map[string]ViewState{}}
}

func (m *MemoryRepository) Load(key string) (ViewState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[key]
	if !ok {
		return nil, ErrViewNotFound
	}
	return v.Clone(), nil
}

func (m *MemoryRepository) Save(key string, state ViewState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[key] = state.Clone()
	return nil
}

// viewPersistence binds a repository to a key. A zero key disables
// persistence.
type viewPersistence struct {
	repo   ViewConfigRepository
	key    string
	logger *slog.Logger
}

func (p viewPersistence) enabled() bool {
	return p.repo != nil && p.key != ""
}

func (p viewPersistence) save(state ViewState) {
	if !p.enabled() {
		return
	}
	if err := p.repo.Save(p.key, state); err != nil {
		p.logger.Warn("save column view", "key", p.key, "err", err)
	}
}

// resolveViewState picks the initial view: caller state, then the stored
// view, then the registry defaults. Defaults are written back when nothing
// usable is stored.
func resolveViewState[R any](reg *Registry[R], initial ViewState, p viewPersistence) ViewState {
	if initial != nil {
		state, _ := reg.Reconcile(initial)
		return state
	}
	if !p.enabled() {
		return reg.Defaults()
	}
	stored, err := p.repo.Load(p.key)
	switch {
	case errors.Is(err, ErrViewNotFound):
		defaults := reg.Defaults()
		p.save(defaults)
		return defaults
	case err != nil:
		p.logger.Warn("load column view, reseeding defaults", "key", p.key, "err", err)
		defaults := reg.Defaults()
		p.save(defaults)
		return defaults
	}
	state, changed := reg.Reconcile(stored)
	if changed {
		p.logger.Info("stored column view drifted from declarations", "key", p.key)
		p.save(state)
	}
	return state
}
