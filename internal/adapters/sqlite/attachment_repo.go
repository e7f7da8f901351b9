package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/rpgdash/internal/ports/secondary"
)

// AttachmentRepository implements secondary.AttachmentRepository with SQLite.
type AttachmentRepository struct {
	db *sql.DB
}

// NewAttachmentRepository creates a new SQLite attachment repository.
func NewAttachmentRepository(db *sql.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Ensure AttachmentRepository implements the interface
var _ secondary.AttachmentRepository = (*AttachmentRepository)(nil)

// Put persists a new attachment including its content.
func (r *AttachmentRepository) Put(ctx context.Context, record *secondary.AttachmentRecord) error {
	content := record.Content
	if content == nil {
		content = []byte{}
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO attachments (id, name, category, size, mime, content, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		record.ID, record.Name, record.Category, record.Size, record.MIME, content, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

// List returns attachment metadata, newest first.
func (r *AttachmentRepository) List(ctx context.Context, category string) ([]*secondary.AttachmentRecord, error) {
	query := "SELECT id, name, category, size, mime, created_at FROM attachments"
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	var records []*secondary.AttachmentRecord
	for rows.Next() {
		rec := &secondary.AttachmentRecord{}
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Category, &rec.Size, &rec.MIME, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attachments: %w", err)
	}
	return records, nil
}

// Get retrieves an attachment with its content.
func (r *AttachmentRepository) Get(ctx context.Context, id string) (*secondary.AttachmentRecord, error) {
	rec := &secondary.AttachmentRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, category, size, mime, content, created_at FROM attachments WHERE id = ?", id,
	).Scan(&rec.ID, &rec.Name, &rec.Category, &rec.Size, &rec.MIME, &rec.Content, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("attachment %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return rec, nil
}

// Delete removes an attachment.
func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM attachments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("attachment %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}
