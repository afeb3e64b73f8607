package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/versebridge/companion/internal/apperr"
	"github.com/versebridge/companion/internal/database"
	"golang.org/x/crypto/bcrypt"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserIDKey is the context key for user ID
	UserIDKey ContextKey = "user_id"
	// APIKeyIDKey is the context key for API key ID
	APIKeyIDKey ContextKey = "api_key_id"
)

// Service handles authentication
type Service struct {
	apiKeyRepo *database.APIKeyRepository
}

// NewService creates a new auth service
func NewService(db *database.DB) *Service {
	return &Service{
		apiKeyRepo: database.NewAPIKeyRepository(db),
	}
}

// Middleware rejects requests without a valid bearer API key. Every operation
// fails UNAUTHENTICATED here before any validation or upstream work happens.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			apperr.Write(w, apperr.New(apperr.Unauthenticated, "missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			apperr.Write(w, apperr.New(apperr.Unauthenticated, "invalid authorization header format"))
			return
		}

		apiKey := parts[1]
		if apiKey == "" {
			apperr.Write(w, apperr.New(apperr.Unauthenticated, "empty api key"))
			return
		}

		// Locate the key by its deterministic lookup hash, then verify the
		// stored bcrypt hash. One compare per request.
		stored, err := s.apiKeyRepo.GetByKeyLookup(r.Context(), database.KeyLookupHash(apiKey))
		if err != nil {
			log.Debug().Msg("API key not found")
			apperr.Write(w, apperr.New(apperr.Unauthenticated, "invalid api key"))
			return
		}

		if stored.Status != "active" {
			log.Warn().Str("key_id", stored.ID.String()).Msg("API key is not active")
			apperr.Write(w, apperr.New(apperr.Unauthenticated, "api key is disabled"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(stored.KeyHash), []byte(apiKey)); err != nil {
			apperr.Write(w, apperr.New(apperr.Unauthenticated, "invalid api key"))
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, stored.UserID)
		ctx = context.WithValue(ctx, APIKeyIDKey, stored.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user id not found in context")
	}
	return userID, nil
}

// GetAPIKeyID retrieves the API key ID from context
func GetAPIKeyID(ctx context.Context) (uuid.UUID, error) {
	keyID, ok := ctx.Value(APIKeyIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("api key id not found in context")
	}
	return keyID, nil
}
