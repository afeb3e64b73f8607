package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/versebridge/companion/internal/models"
)

// PassageCacheRepository handles cached passage payloads. Rows written without
// an expiry are the ones the maintenance sweep removes.
type PassageCacheRepository struct {
	db *DB
}

// NewPassageCacheRepository creates a new PassageCacheRepository
func NewPassageCacheRepository(db *DB) *PassageCacheRepository {
	return &PassageCacheRepository{db: db}
}

// Put stores a passage payload under its reference key.
func (r *PassageCacheRepository) Put(ctx context.Context, reference string, payload []byte, expiresAt *time.Time) error {
	query := `
		INSERT INTO passage_cache (id, reference, payload, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (reference) DO UPDATE
		SET payload = EXCLUDED.payload,
		    expires_at = EXCLUDED.expires_at,
		    created_at = EXCLUDED.created_at
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), reference, payload, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("insert passage cache: %w", err)
	}
	return nil
}

// Get retrieves a cached payload by reference. Returns nil on a cache miss.
// A row past its expiry is a miss too; rows without an expiry are served until
// the maintenance sweep removes them.
func (r *PassageCacheRepository) Get(ctx context.Context, reference string) ([]byte, error) {
	query := `
		SELECT payload, expires_at
		FROM passage_cache
		WHERE reference = $1
	`
	var payload []byte
	var expiresAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, reference).Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("query passage cache: %w", err)
	}
	if expiresAt.Valid && !expiresAt.Time.After(time.Now()) {
		return nil, nil
	}
	return payload, nil
}

// Sweep deletes every row lacking an expiry in a single batched statement and
// reports the deleted/kept partition. The returned counts match the partition
// at the time of the sweep exactly.
func (r *PassageCacheRepository) Sweep(ctx context.Context) (*models.SweepResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin sweep: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM passage_cache`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count passage cache: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM passage_cache WHERE expires_at IS NULL`)
	if err != nil {
		return nil, fmt.Errorf("delete expiryless rows: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("count deleted rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sweep: %w", err)
	}

	return &models.SweepResult{Deleted: int(deleted), Kept: total - int(deleted)}, nil
}
