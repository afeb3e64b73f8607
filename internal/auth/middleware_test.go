package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/versebridge/companion/internal/database"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return NewService(&database.DB{DB: sqlDB}), mock
}

func keyRow(t *testing.T, plainKey, status string) (*sqlmock.Rows, uuid.UUID, uuid.UUID) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plainKey), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	keyID, userID := uuid.New(), uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "key_hash", "status", "created_at"}).
		AddRow(keyID, userID, string(hash), status, time.Now())
	return rows, keyID, userID
}

func TestMiddleware_ValidKey(t *testing.T) {
	svc, mock := newTestService(t)
	const plainKey = "sk_test_valid"

	rows, keyID, userID := keyRow(t, plainKey, "active")
	mock.ExpectQuery("SELECT id, user_id, key_hash, status, created_at").
		WithArgs(database.KeyLookupHash(plainKey)).
		WillReturnRows(rows)

	var gotUser, gotKey uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = GetUserID(r.Context())
		gotKey, _ = GetAPIKeyID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/passage", nil)
	req.Header.Set("Authorization", "Bearer "+plainKey)
	rec := httptest.NewRecorder()
	svc.Middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if gotUser != userID || gotKey != keyID {
		t.Errorf("context ids user=%s key=%s, want %s/%s", gotUser, gotKey, userID, keyID)
	}
}

func TestMiddleware_DisabledKey(t *testing.T) {
	svc, mock := newTestService(t)
	const plainKey = "sk_test_disabled"

	rows, _, _ := keyRow(t, plainKey, "disabled")
	mock.ExpectQuery("SELECT id, user_id, key_hash, status, created_at").
		WithArgs(database.KeyLookupHash(plainKey)).
		WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodPost, "/v1/passage", nil)
	req.Header.Set("Authorization", "Bearer "+plainKey)
	rec := httptest.NewRecorder()
	svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler reached with a disabled key")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "disabled") {
		t.Errorf("body %s", rec.Body.String())
	}
}

func TestMiddleware_UnknownKey(t *testing.T) {
	svc, mock := newTestService(t)
	const plainKey = "sk_test_unknown"

	mock.ExpectQuery("SELECT id, user_id, key_hash, status, created_at").
		WithArgs(database.KeyLookupHash(plainKey)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "key_hash", "status", "created_at"}))

	req := httptest.NewRequest(http.MethodPost, "/v1/passage", nil)
	req.Header.Set("Authorization", "Bearer "+plainKey)
	rec := httptest.NewRecorder()
	svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler reached with an unknown key")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

// The lookup hash collides only if sha256 collides, but the bcrypt compare is
// still the authority: a row returned with a non-matching hash is rejected.
func TestMiddleware_HashMismatch(t *testing.T) {
	svc, mock := newTestService(t)
	const plainKey = "sk_test_presented"

	rows, _, _ := keyRow(t, "sk_test_other", "active")
	mock.ExpectQuery("SELECT id, user_id, key_hash, status, created_at").
		WithArgs(database.KeyLookupHash(plainKey)).
		WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodPost, "/v1/passage", nil)
	req.Header.Set("Authorization", "Bearer "+plainKey)
	rec := httptest.NewRecorder()
	svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler reached despite hash mismatch")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	svc, _ := newTestService(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/passage", nil)
	rec := httptest.NewRecorder()
	svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler reached without credentials")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}
