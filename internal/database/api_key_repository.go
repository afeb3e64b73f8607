package database

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/versebridge/companion/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyRepository handles API key database operations
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// KeyLookupHash returns the lookup hash for an API key (sha256 hex).
// Used for secure lookup without storing the plain key.
func KeyLookupHash(apiKey string) string {
	h := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(h[:])
}

// GetByKeyLookup retrieves an API key by its lookup hash (sha256 hex of the
// plain key). The bcrypt hash still gets compared by the caller.
func (r *APIKeyRepository) GetByKeyLookup(ctx context.Context, lookup string) (*models.APIKey, error) {
	query := `
		SELECT id, user_id, key_hash, status, created_at
		FROM api_keys
		WHERE key_lookup = $1
	`
	key := &models.APIKey{}
	err := r.db.QueryRowContext(ctx, query, lookup).Scan(
		&key.ID, &key.UserID, &key.KeyHash, &key.Status, &key.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("api key not found")
	}
	return key, err
}

// CreateAPIKey creates a new API key for a user and returns the plain key
// (shown only once).
func (r *APIKeyRepository) CreateAPIKey(ctx context.Context, userID uuid.UUID) (plainKey string, key *models.APIKey, err error) {
	const keyLen = 32
	b := make([]byte, keyLen)
	if _, err := rand.Read(b); err != nil {
		return "", nil, fmt.Errorf("generate key: %w", err)
	}
	plainKey = "sk_" + hex.EncodeToString(b)

	hash, err := bcrypt.GenerateFromPassword([]byte(plainKey), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash key: %w", err)
	}

	key = &models.APIKey{
		ID:        uuid.New(),
		UserID:    userID,
		KeyHash:   string(hash),
		Status:    "active",
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO api_keys (id, user_id, key_hash, key_lookup, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query,
		key.ID, key.UserID, key.KeyHash, KeyLookupHash(plainKey), key.Status, key.CreatedAt,
	)
	if err != nil {
		return "", nil, err
	}
	return plainKey, key, nil
}
