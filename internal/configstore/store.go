// Package configstore owns the shared scoring configuration: a versioned,
// immutable snapshot swapped atomically on validated updates. In-flight
// computations keep the snapshot they loaded at entry and are unaffected by a
// later swap.
package configstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/credlens/credlens/pkg/scoring"
)

// Snapshot is one published configuration version. The Config pointer is
// never mutated after publication.
type Snapshot struct {
	Version   int             `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	Config    *scoring.Config `json:"config"`
}

// Store publishes configuration snapshots. Reads take the lock only long
// enough to copy the snapshot reference; computations then run lock-free
// against their copy.
type Store struct {
	mu      sync.RWMutex
	current Snapshot
	db      *sql.DB // nil for in-memory stores
}

// NewStore creates an in-memory store seeded with the given config, which
// must already be valid.
func NewStore(initial *scoring.Config) (*Store, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial config: %w", err)
	}
	return &Store{
		current: Snapshot{
			Version:   1,
			UpdatedAt: time.Now().UTC(),
			Config:    initial,
		},
	}, nil
}

// NewStoreWithDB creates a Postgres-backed store. The latest persisted
// version is loaded; an empty table is seeded with the defaults.
func NewStoreWithDB(ctx context.Context, db *sql.DB) (*Store, error) {
	s := &Store{db: db}

	var (
		version   int
		updatedAt time.Time
		raw       []byte
	)
	err := db.QueryRowContext(ctx,
		`SELECT version, updated_at, config FROM scoring_configs ORDER BY version DESC LIMIT 1`,
	).Scan(&version, &updatedAt, &raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		seeded, err := NewStore(scoring.Defaults())
		if err != nil {
			return nil, err
		}
		seeded.db = db
		if err := seeded.persist(ctx, seeded.current); err != nil {
			return nil, fmt.Errorf("seeding config: %w", err)
		}
		return seeded, nil
	case err != nil:
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg := &scoring.Config{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing persisted config v%d: %w", version, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("persisted config v%d: %w", version, err)
	}

	s.current = Snapshot{Version: version, UpdatedAt: updatedAt, Config: cfg}
	return s, nil
}

// Get returns the current snapshot. Callers use one snapshot consistently
// for a full computation; the Config it carries is immutable.
func (s *Store) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates the patched configuration in full before publishing it as
// a new version. A failed validation leaves the previous snapshot untouched
// and visible; partial application never happens.
func (s *Store) Update(ctx context.Context, p Patch) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := p.applyTo(s.current.Config)
	if err != nil {
		return Snapshot{}, err
	}
	if err := next.Validate(); err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Version:   s.current.Version + 1,
		UpdatedAt: time.Now().UTC(),
		Config:    next,
	}
	if err := s.persist(ctx, snap); err != nil {
		return Snapshot{}, fmt.Errorf("persisting config v%d: %w", snap.Version, err)
	}

	s.current = snap
	return snap, nil
}

func (s *Store) persist(ctx context.Context, snap Snapshot) error {
	if s.db == nil {
		return nil
	}
	raw, err := json.Marshal(snap.Config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scoring_configs (version, updated_at, config) VALUES ($1, $2, $3)`,
		snap.Version, snap.UpdatedAt, raw,
	)
	return err
}
