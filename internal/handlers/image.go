package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/versebridge/companion/internal/apperr"
	"github.com/versebridge/companion/internal/llm"
	"github.com/versebridge/companion/internal/models"
	"github.com/versebridge/companion/internal/prompt"
	"github.com/versebridge/companion/internal/retry"
	"github.com/versebridge/companion/internal/validate"
)

// Image handles POST /v1/image — illustration generation. When the model
// returns no inline-data part the envelope carries an empty image string;
// that is the documented empty result, not an error.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.ImageRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}

	img, err := retry.Do(r.Context(), h.invoker, func() (*llm.Image, error) {
		return h.generator.GenerateImage(r.Context(), prompt.Image(req), req.HighQuality)
	})
	if err != nil {
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"image":     base64.StdEncoding.EncodeToString(img.Data),
		"mime_type": img.MimeType,
	})
}
