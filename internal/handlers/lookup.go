package handlers

import (
	"net/http"

	"github.com/versebridge/companion/internal/apperr"
	"github.com/versebridge/companion/internal/models"
	"github.com/versebridge/companion/internal/prompt"
	"github.com/versebridge/companion/internal/validate"
)

// Storyboard handles POST /v1/storyboard — visual scenes for a chapter.
func (h *Handler) Storyboard(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.StoryboardRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	payload, err := h.completeJSON(r.Context(), prompt.Storyboard(req), "scenes array")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeField(w, "scenes", payload)
}

// Locations handles POST /v1/locations — geocoded places in a chapter.
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.LocationsRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	payload, err := h.completeJSON(r.Context(), prompt.Locations(req), "locations array")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeField(w, "locations", payload)
}

// Keywords handles POST /v1/keywords — key terms of a reference.
func (h *Handler) Keywords(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.KeywordsRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	payload, err := h.completeJSON(r.Context(), prompt.Keywords(req), "keywords array")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeField(w, "keywords", payload)
}

// Lexicon handles POST /v1/lexicon — original-language word study.
func (h *Handler) Lexicon(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.LexiconRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	payload, err := h.completeJSON(r.Context(), prompt.Lexicon(req), "lexicon object")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeSpread(w, payload)
}

// Interlinear handles POST /v1/interlinear — word-by-word verse breakdown.
func (h *Handler) Interlinear(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.InterlinearRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	payload, err := h.completeJSON(r.Context(), prompt.Interlinear(req), "words array")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeField(w, "words", payload)
}

// Search handles POST /v1/search — verses matching a free-text query.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.SearchRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	payload, err := h.completeJSON(r.Context(), prompt.Search(req), "results array")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeField(w, "results", payload)
}

// CustomMap handles POST /v1/custommap — a themed map definition.
func (h *Handler) CustomMap(w http.ResponseWriter, r *http.Request) {
	if !h.authed(w, r) {
		return
	}
	var req models.CustomMapRequest
	if err := validate.DecodeAndValidate(r.Body, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	payload, err := h.completeJSON(r.Context(), prompt.CustomMap(req), "map object")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeSpread(w, payload)
}
