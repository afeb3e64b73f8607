package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/versebridge/companion/internal/apperr"
	"github.com/versebridge/companion/internal/models"
	"github.com/versebridge/companion/internal/prompt"
	"github.com/versebridge/companion/internal/validate"
)

// passageCacheTTL is how long a fetched chapter stays cached. Rows written
// without an expiry are legacy and get removed by the maintenance sweep.
const passageCacheTTL = 30 * 24 * time.Hour

// Passage handles POST /v1/passage — chapter text in a named translation.
func (h *Handler) Passage(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.PassageRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	cacheKey := passageCacheKey(req)
	if h.cache != nil {
		cached, err := h.cache.Get(r.Context(), cacheKey)
		if err != nil {
			log.Warn().Err(err).Str("reference", cacheKey).Msg("Passage cache read failed, calling model")
		} else if cached != nil {
			log.Debug().Str("reference", cacheKey).Msg("Passage served from cache")
			writeField(w, "verses", cached)
			return
		}
	}

	payload, err := h.completeJSON(r.Context(), prompt.Passage(req), "verses array")
	if err != nil {
		apperr.Write(w, recitationGuard(err))
		return
	}

	if h.cache != nil {
		expiresAt := time.Now().Add(passageCacheTTL)
		if err := h.cache.Put(r.Context(), cacheKey, payload, &expiresAt); err != nil {
			// Cache writes are best-effort; the result still goes out.
			log.Warn().Err(err).Str("reference", cacheKey).Msg("Passage cache write failed")
		}
	}

	writeField(w, "verses", payload)
}

func passageCacheKey(req models.PassageRequest) string {
	return strings.ToLower(fmt.Sprintf("%s/%d/%s/%s", req.Book, req.Chapter, req.Version, req.Language))
}

// recitationGuard translates an upstream recitation block (the provider
// declining to reproduce copyrighted text) into actionable guidance instead
// of a generic internal error.
func recitationGuard(err error) error {
	if strings.Contains(err.Error(), "RECITATION") {
		return apperr.New(apperr.FailedPrecondition,
			"the model declined to reproduce this translation; request a public-domain version such as KJV or WEB")
	}
	return err
}
