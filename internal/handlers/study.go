package handlers

import (
	"net/http"

	"github.com/versebridge/companion/internal/apperr"
	"github.com/versebridge/companion/internal/models"
	"github.com/versebridge/companion/internal/prompt"
	"github.com/versebridge/companion/internal/validate"
)

// Analysis handles POST /v1/analysis — an analysis essay on a reference.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.AnalysisRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	text, err := h.generate(r.Context(), prompt.Analysis(req))
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeText(w, text)
}

// QA handles POST /v1/qa — a question answered from supplied documents.
func (h *Handler) QA(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.QARequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	text, err := h.generate(r.Context(), prompt.QA(req))
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeText(w, text)
}

// Devotional handles POST /v1/devotional.
func (h *Handler) Devotional(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.DevotionalRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	payload, err := h.completeJSON(r.Context(), prompt.Devotional(req), "devotional object")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeSpread(w, payload)
}

// StudyGuide handles POST /v1/studyguide.
func (h *Handler) StudyGuide(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.StudyGuideRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	payload, err := h.completeJSON(r.Context(), prompt.StudyGuide(req), "study guide object")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeSpread(w, payload)
}

// Plan handles POST /v1/plan — a multi-day thematic reading plan.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.PlanRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	payload, err := h.completeJSON(r.Context(), prompt.Plan(req), "reading plan object")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeSpread(w, payload)
}

// AudioTranslation handles POST /v1/audiotranslation — a spoken-style
// translation for narration.
func (h *Handler) AudioTranslation(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.AudioTranslationRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	text, err := h.generate(r.Context(), prompt.AudioTranslation(req))
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeText(w, text)
}
