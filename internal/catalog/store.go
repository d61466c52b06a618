package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/antojo/antojo/pkg/types"
)

// Store persists the dish catalog in SQLite so deployments can ship an
// updated catalog without rebuilding the binary. Dishes are stored as JSON
// documents; position preserves catalog order, which ranking uses as the
// stable tie-break.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS dishes (
	id       TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	data     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dishes_position ON dishes(position);
`

// OpenStore opens (or creates) the catalog database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	// Single writer; WAL keeps concurrent readers cheap.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply catalog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadDishes reads the full catalog in stored order, validating and
// augmenting each dish the same way Load does for JSON input.
func (s *Store) LoadDishes(ctx context.Context) ([]types.Dish, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM dishes ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query dishes: %w", err)
	}
	defer rows.Close()

	var dishes []types.Dish
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		var d types.Dish
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, fmt.Errorf("decode dish: %w", err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("dish %s: %w", d.ID, err)
		}
		augmentIntentTags(&d)
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dishes: %w", err)
	}
	if len(dishes) == 0 {
		return nil, types.ErrEmptyCatalog
	}
	return dishes, nil
}

// SaveDishes replaces the stored catalog atomically.
func (s *Store) SaveDishes(ctx context.Context, dishes []types.Dish) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM dishes"); err != nil {
		return fmt.Errorf("clear dishes: %w", err)
	}
	for i := range dishes {
		if err := dishes[i].Validate(); err != nil {
			return fmt.Errorf("dish %d (%s): %w", i, dishes[i].ID, err)
		}
		data, err := json.Marshal(&dishes[i])
		if err != nil {
			return fmt.Errorf("encode dish %s: %w", dishes[i].ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO dishes (id, position, data) VALUES (?, ?, ?)",
			dishes[i].ID, i, string(data)); err != nil {
			return fmt.Errorf("insert dish %s: %w", dishes[i].ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog tx: %w", err)
	}
	return nil
}
