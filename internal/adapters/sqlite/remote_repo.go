package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/rpgdash/internal/ports/secondary"
)

// RemoteRepository implements secondary.RemoteStore over the rpg_data table,
// one JSON document per user.
type RemoteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRemoteRepository creates a new SQLite remote document repository.
func NewRemoteRepository(db *sql.DB) *RemoteRepository {
	return &RemoteRepository{db: db, now: time.Now}
}

// Ensure RemoteRepository implements the interface
var _ secondary.RemoteStore = (*RemoteRepository)(nil)

// Select returns the document stored for userID.
func (r *RemoteRepository) Select(ctx context.Context, userID string) ([]byte, bool, error) {
	var data string
	err := r.db.QueryRowContext(ctx, "SELECT data FROM rpg_data WHERE user_id = ?", userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to select remote document: %w", err)
	}
	return []byte(data), true, nil
}

// Upsert stores doc for userID, replacing any previous document.
func (r *RemoteRepository) Upsert(ctx context.Context, userID string, doc []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rpg_data (user_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, string(doc), r.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert remote document: %w", err)
	}
	return nil
}

// UpdatedAt returns when the document for userID was last written.
func (r *RemoteRepository) UpdatedAt(ctx context.Context, userID string) (time.Time, error) {
	var updatedAt string
	err := r.db.QueryRowContext(ctx, "SELECT updated_at FROM rpg_data WHERE user_id = ?", userID).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, secondary.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read remote timestamp: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse remote timestamp: %w", err)
	}
	return t, nil
}
