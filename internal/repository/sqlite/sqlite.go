package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	_ "modernc.org/sqlite"

	"topomap/internal/domain"
	"topomap/internal/errors"
	"topomap/internal/repository"
	"topomap/internal/viewport"
)

const viewportKey = "viewport"

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New creates a new SQLite repository. Use ":memory:" for a throwaway
// database.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// One connection: SQLite has a single writer, and an in-memory database
	// exists per connection
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	PRAGMA journal_mode = WAL;
	PRAGMA busy_timeout = 5000;

	CREATE TABLE IF NOT EXISTS node_positions (
		node_id TEXT PRIMARY KEY,
		x REAL NOT NULL,
		y REAL NOT NULL,
		pinned INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value JSON NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SavePositions upserts position data for multiple nodes
func (r *Repository) SavePositions(ctx context.Context, positions []domain.NodePosition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO node_positions (node_id, x, y, pinned, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(node_id) DO UPDATE SET
			x = excluded.x,
			y = excluded.y,
			pinned = excluded.pinned,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare statement")
	}
	defer stmt.Close()

	for _, pos := range positions {
		if pos.NodeID == "" {
			return errors.NewInvalidRequestError("position without node id")
		}
		if _, err := stmt.ExecContext(ctx, pos.NodeID, pos.X, pos.Y, pos.Pinned); err != nil {
			return errors.Wrapf(err, "failed to save position for %s", pos.NodeID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// GetPositions returns saved positions for ids, or every saved position
// when ids is empty. Ids without a saved position are absent from the map.
func (r *Repository) GetPositions(ctx context.Context, ids []string) (map[string]domain.NodePosition, error) {
	query := `SELECT node_id, x, y, pinned FROM node_positions`
	args := make([]interface{}, 0, len(ids))
	if len(ids) > 0 {
		query += ` WHERE node_id IN (?` + strings.Repeat(`, ?`, len(ids)-1) + `)`
		for _, id := range ids {
			args = append(args, id)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query positions")
	}
	defer rows.Close()

	out := make(map[string]domain.NodePosition)
	for rows.Next() {
		var pos domain.NodePosition
		if err := rows.Scan(&pos.NodeID, &pos.X, &pos.Y, &pos.Pinned); err != nil {
			return nil, errors.Wrap(err, "failed to scan position")
		}
		out[pos.NodeID] = pos
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating positions")
	}
	return out, nil
}

// ClearPositions forgets every saved position
func (r *Repository) ClearPositions(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM node_positions`); err != nil {
		return errors.Wrap(err, "failed to clear positions")
	}
	return nil
}

// SaveViewport stores the viewport transform
func (r *Repository) SaveViewport(ctx context.Context, t viewport.Transform) error {
	data, err := json.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "failed to marshal viewport")
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, viewportKey, string(data))
	if err != nil {
		return errors.Wrap(err, "failed to save viewport")
	}
	return nil
}

// GetViewport returns the stored viewport transform, or nil if none was
// saved
func (r *Repository) GetViewport(ctx context.Context) (*viewport.Transform, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, viewportKey).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query viewport")
	}

	var t viewport.Transform
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal viewport")
	}
	return &t, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
