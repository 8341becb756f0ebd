package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// DocumentRepository keeps documents in the sqlite documents table
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Get returns the stored document or ErrNotFound
func (r *DocumentRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM documents WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", key, err)
	}
	return []byte(value), nil
}

// Put replaces the document, retrying on lock errors
func (r *DocumentRepository) Put(ctx context.Context, key string, data []byte) error {
	return retryOnLock(ctx, 5, 50*time.Millisecond, func() error {
		query := `
			INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		if _, err := r.db.ExecContext(ctx, query, key, string(data), time.Now().UTC()); err != nil {
			return fmt.Errorf("put document %s: %w", key, err)
		}
		return nil
	})
}
