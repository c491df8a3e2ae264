package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jask/ledgergrid/internal/grid"
)

// ViewConfigRepo stores column views keyed by page.
type ViewConfigRepo struct {
	db *sql.DB
}

func NewViewConfigRepo(db *sql.DB) *ViewConfigRepo { return &ViewConfigRepo{db: db} }

func (r *ViewConfigRepo) Upsert(ctx context.Context, key, state string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO view_configs(key, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET state=excluded.state, updated_at=CURRENT_TIMESTAMP;
	`, key, state)
	return err
}

func (r *ViewConfigRepo) Get(ctx context.Context, key string) (*ViewConfig, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, state, updated_at FROM view_configs WHERE key = ?`, key)
	var vc ViewConfig
	if err := row.Scan(&vc.Key, &vc.State, &vc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &vc, nil
}

func (r *ViewConfigRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM view_configs WHERE key = ?`, key)
	return err
}

func (r *ViewConfigRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM view_configs ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Store adapts the repo to grid.ViewConfigRepository. Each call is bounded by
// timeout so a locked database cannot stall the UI.
func (r *ViewConfigRepo) Store(ctx context.Context, timeout time.Duration) grid.ViewConfigRepository {
	return &viewStore{repo: r, ctx: ctx, timeout: timeout}
}

type viewStore struct {
	repo    *ViewConfigRepo
	ctx     context.Context
	timeout time.Duration
}

func (s *viewStore) callCtx() (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(s.ctx)
	}
	return context.WithTimeout(s.ctx, s.timeout)
}

func (s *viewStore) Load(key string) (grid.ViewState, error) {
	ctx, cancel := s.callCtx()
	defer cancel()
	vc, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load view %q: %w", key, err)
	}
	if vc == nil {
		return nil, grid.ErrViewNotFound
	}
	var state grid.ViewState
	if err := json.Unmarshal([]byte(vc.State), &state); err != nil {
		return nil, fmt.Errorf("decode view %q: %w", key, err)
	}
	return state, nil
}

func (s *viewStore) Save(key string, state grid.ViewState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode view %q: %w", key, err)
	}
	ctx, cancel := s.callCtx()
	defer cancel()
	if err := s.repo.Upsert(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save view %q: %w", key, err)
	}
	return nil
}
