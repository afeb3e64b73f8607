package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/versebridge/companion/internal/models"
)

func TestSweepCache_ReportsCounts(t *testing.T) {
	cache := &fakeCache{
		sweep: func(ctx context.Context) (*models.SweepResult, error) {
			return &models.SweepResult{Deleted: 3, Kept: 7}, nil
		},
	}
	h := newTestHandler(&fakeGenerator{}, cache)

	req := authedRequest(http.MethodPost, "/v1/maintenance/cache", `{}`)
	rec := httptest.NewRecorder()
	h.SweepCache(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Error("success not true")
	}
	if body["deleted"] != float64(3) || body["kept"] != float64(7) {
		t.Errorf("counts deleted=%v kept=%v", body["deleted"], body["kept"])
	}
}

func TestSweepCache_EmptyTable(t *testing.T) {
	cache := &fakeCache{
		sweep: func(ctx context.Context) (*models.SweepResult, error) {
			return &models.SweepResult{}, nil
		},
	}
	h := newTestHandler(&fakeGenerator{}, cache)

	req := authedRequest(http.MethodPost, "/v1/maintenance/cache", `{}`)
	rec := httptest.NewRecorder()
	h.SweepCache(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["deleted"] != float64(0) || body["kept"] != float64(0) {
		t.Errorf("counts deleted=%v kept=%v", body["deleted"], body["kept"])
	}
}

func TestSweepCache_StorageFailure(t *testing.T) {
	cache := &fakeCache{
		sweep: func(ctx context.Context) (*models.SweepResult, error) {
			return nil, errors.New("pq: deadlock detected")
		},
	}
	h := newTestHandler(&fakeGenerator{}, cache)

	req := authedRequest(http.MethodPost, "/v1/maintenance/cache", `{}`)
	rec := httptest.NewRecorder()
	h.SweepCache(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500: %s", rec.Code, rec.Body.String())
	}
	if msg := errorMessage(t, rec); msg != "pq: deadlock detected" {
		t.Errorf("message %q, want original storage error", msg)
	}
}

func TestSweepCache_NoStorageConfigured(t *testing.T) {
	h := newTestHandler(&fakeGenerator{}, nil)

	req := authedRequest(http.MethodPost, "/v1/maintenance/cache", `{}`)
	rec := httptest.NewRecorder()
	h.SweepCache(rec, req)

	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("status %d, want 412: %s", rec.Code, rec.Body.String())
	}
}
