package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/versebridge/companion/internal/apperr"
	"github.com/versebridge/companion/internal/auth"
	"github.com/versebridge/companion/internal/llm"
	"github.com/versebridge/companion/internal/models"
	"github.com/versebridge/companion/internal/retry"
)

// Generator is the model gateway seam. Handlers depend on it so tests can
// substitute a fake without a live provider.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string, highQuality bool) (*llm.Image, error)
}

// PassageCache is the passage cache seam: read-through/write-back for the
// passage operation plus the maintenance sweep.
type PassageCache interface {
	Get(ctx context.Context, reference string) ([]byte, error)
	Put(ctx context.Context, reference string, payload []byte, expiresAt *time.Time) error
	Sweep(ctx context.Context) (*models.SweepResult, error)
}

// Handler contains all HTTP handlers
type Handler struct {
	generator Generator
	cache     PassageCache
	invoker   *retry.Invoker
}

// NewHandler creates a new handler
func NewHandler(generator Generator, cache PassageCache, invoker *retry.Invoker) *Handler {
	return &Handler{
		generator: generator,
		cache:     cache,
		invoker:   invoker,
	}
}

// authed verifies the request carries an authenticated identity. Runs before
// validation and before any upstream work.
func (h *Handler) authed(w http.ResponseWriter, r *http.Request) bool {
	if _, err := auth.GetUserID(r.Context()); err != nil {
		apperr.Write(w, apperr.New(apperr.Unauthenticated, "unauthenticated"))
		return false
	}
	return true
}

// generate runs one retry-wrapped upstream text call. The same prompt is
// re-sent on every attempt. Extraction happens outside this closure so only
// transport-level quota failures retry.
func (h *Handler) generate(ctx context.Context, prompt string) (string, error) {
	return retry.Do(ctx, h.invoker, func() (string, error) {
		return h.generator.GenerateText(ctx, prompt)
	})
}

// completeJSON generates and extracts a structured payload. An extraction
// failure is an application error naming the expected payload kind; it never
// retries.
func (h *Handler) completeJSON(ctx context.Context, prompt, payloadKind string) (json.RawMessage, error) {
	raw, err := h.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	payload, ok := llm.ExtractJSON(raw)
	if !ok {
		return nil, apperr.Newf(apperr.Internal, "model did not produce a valid %s payload", payloadKind)
	}
	return payload, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeText writes a prose result envelope.
func writeText(w http.ResponseWriter, text string) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"text":    text,
	})
}

// writeField writes an envelope with the payload under one named field.
func writeField(w http.ResponseWriter, field string, payload json.RawMessage) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		field:     payload,
	})
}

// writeSpread merges {success:true} with the extracted object's own fields.
func writeSpread(w http.ResponseWriter, payload json.RawMessage) {
	envelope := map[string]interface{}{}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		apperr.Write(w, apperr.New(apperr.Internal, "model did not produce a valid object payload"))
		return
	}
	envelope["success"] = true
	writeJSON(w, http.StatusOK, envelope)
}
