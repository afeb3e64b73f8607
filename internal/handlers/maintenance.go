package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/versebridge/companion/internal/apperr"
	"github.com/versebridge/companion/internal/auth"
)

// SweepCache handles POST /v1/maintenance/cache — deletes every cached row
// lacking an expiry in one batch and reports the partition counts.
func (h *Handler) SweepCache(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	if h.cache == nil {
		apperr.Write(w, apperr.New(apperr.FailedPrecondition, "cache storage is not configured"))
		return
	}

	result, err := h.cache.Sweep(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Cache sweep failed")
		apperr.Write(w, err)
		return
	}

	keyID, _ := auth.GetAPIKeyID(r.Context())
	log.Info().
		Str("api_key_id", keyID.String()).
		Int("deleted", result.Deleted).
		Int("kept", result.Kept).
		Msg("Cache sweep complete")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": result.Deleted,
		"kept":    result.Kept,
	})
}
