package handlers

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/versebridge/companion/internal/llm"
)

func TestImage_Success(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4e, 0x47}
	gen := &fakeGenerator{
		generateImage: func(ctx context.Context, prompt string, highQuality bool) (*llm.Image, error) {
			if highQuality {
				t.Error("high_quality defaulted to true")
			}
			return &llm.Image{Data: data, MimeType: "image/png", Model: "fast"}, nil
		},
	}
	h := newTestHandler(gen, &fakeCache{})

	req := authedRequest(http.MethodPost, "/v1/image", `{"description":"Moses parting the Red Sea at dawn"}`)
	rec := httptest.NewRecorder()
	h.Image(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["image"] != base64.StdEncoding.EncodeToString(data) {
		t.Errorf("image %v", body["image"])
	}
	if body["mime_type"] != "image/png" {
		t.Errorf("mime_type %v", body["mime_type"])
	}
}

func TestImage_HighQualityFlagForwarded(t *testing.T) {
	var gotHQ bool
	gen := &fakeGenerator{
		generateImage: func(ctx context.Context, prompt string, highQuality bool) (*llm.Image, error) {
			gotHQ = highQuality
			return &llm.Image{Data: []byte("x"), MimeType: "image/png"}, nil
		},
	}
	h := newTestHandler(gen, &fakeCache{})

	req := authedRequest(http.MethodPost, "/v1/image", `{"description":"Moses parting the Red Sea at dawn","high_quality":true}`)
	rec := httptest.NewRecorder()
	h.Image(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !gotHQ {
		t.Error("high_quality not forwarded to the gateway")
	}
}

// An upstream response with no inline-data part is an empty result, not a
// failure. The envelope still reports success with an empty image string.
func TestImage_EmptyResultIsNotAnError(t *testing.T) {
	gen := &fakeGenerator{
		generateImage: func(ctx context.Context, prompt string, highQuality bool) (*llm.Image, error) {
			return &llm.Image{Model: "fast"}, nil
		},
	}
	h := newTestHandler(gen, &fakeCache{})

	req := authedRequest(http.MethodPost, "/v1/image", `{"description":"Moses parting the Red Sea at dawn"}`)
	rec := httptest.NewRecorder()
	h.Image(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Error("success not true")
	}
	if body["image"] != "" {
		t.Errorf("image %v, want empty string", body["image"])
	}
}

func TestImage_DescriptionTooShort(t *testing.T) {
	gen := &fakeGenerator{}
	h := newTestHandler(gen, &fakeCache{})

	req := authedRequest(http.MethodPost, "/v1/image", `{"description":"a dove"}`)
	rec := httptest.NewRecorder()
	h.Image(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if gen.imageCalls != 0 {
		t.Errorf("gateway invoked %d times for invalid input", gen.imageCalls)
	}
}
