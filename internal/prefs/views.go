package prefs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/jask/ledgergrid/internal/grid"
)

// ViewFile keeps every stored column view in one JSON document keyed by
// storage key. Writes go through a temp file and rename.
type ViewFile struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

func NewViewFile(path string) *ViewFile {
	return &ViewFile{path: path, logger: slog.Default()}
}

func (f *ViewFile) Path() string { return f.path }

func (f *ViewFile) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	views := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &views); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return views, nil
}

func (f *ViewFile) Load(key string) (grid.ViewState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	views, err := f.readAll()
	if err != nil {
		return nil, err
	}
	raw, ok := views[key]
	if !ok {
		return nil, grid.ErrViewNotFound
	}
	var state grid.ViewState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode view %q: %w", key, err)
	}
	return state, nil
}

// CorruptPath is where an unreadable views file is moved before it is
// replaced.
func (f *ViewFile) CorruptPath() string { return f.path + ".corrupt" }

// Save replaces the view under key. An unreadable file is moved to
// CorruptPath and a fresh one started, so one bad write cannot block every
// later save.
func (f *ViewFile) Save(key string, state grid.ViewState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	views, err := f.readAll()
	if err != nil {
		f.logger.Warn("views file unreadable, moving aside", "path", f.path, "backup", f.CorruptPath(), "err", err)
		if err := os.Rename(f.path, f.CorruptPath()); err != nil {
			return fmt.Errorf("move corrupt views file: %w", err)
		}
		views = map[string]json.RawMessage{}
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	views[key] = raw
	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Delete removes a stored view. Missing keys are not an error.
func (f *ViewFile) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	views, err := f.readAll()
	if err != nil {
		return err
	}
	if _, ok := views[key]; !ok {
		return nil
	}
	delete(views, key)
	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
