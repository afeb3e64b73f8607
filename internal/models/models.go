package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// APIKey represents an API key for authentication
type APIKey struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	KeyHash   string    `json:"-"`
	Status    string    `json:"status"` // active, disabled
	CreatedAt time.Time `json:"created_at"`
}

// Language is a supported display language code.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageSpanish    Language = "es"
	LanguagePortuguese Language = "pt"

	// DefaultLanguage applies when the request omits the language field.
	DefaultLanguage = LanguageEnglish

	// DefaultVersion applies when a passage request omits the version field.
	DefaultVersion = "KJV"
)

// DisplayName returns the canonical display name embedded in prompt text.
func (l Language) DisplayName() string {
	switch l {
	case LanguageSpanish:
		return "Spanish"
	case LanguagePortuguese:
		return "Portuguese"
	default:
		return "English"
	}
}

// PassageRequest asks for the text of one chapter in a named translation.
type PassageRequest struct {
	Book     string   `json:"book" validate:"required,min=2"`
	Chapter  int      `json:"chapter" validate:"required,gt=0"`
	Version  string   `json:"version" validate:"required,min=2"`
	Language Language `json:"language" validate:"required,oneof=en es pt"`
}

// Normalize applies request defaults before validation.
func (r *PassageRequest) Normalize() {
	if r.Version == "" {
		r.Version = DefaultVersion
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// StoryboardRequest asks for visual scenes depicting a chapter.
type StoryboardRequest struct {
	Book     string   `json:"book" validate:"required,min=2"`
	Chapter  int      `json:"chapter" validate:"required,gt=0"`
	Language Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *StoryboardRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// LocationsRequest asks for geocoded places mentioned in a chapter.
type LocationsRequest struct {
	Book     string   `json:"book" validate:"required,min=2"`
	Chapter  int      `json:"chapter" validate:"required,gt=0"`
	Language Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *LocationsRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// AnalysisRequest asks for an analysis essay on a scripture reference.
type AnalysisRequest struct {
	Reference string   `json:"reference" validate:"required,min=3"`
	Question  string   `json:"question" validate:"omitempty,min=5"`
	Language  Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *AnalysisRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// Document is one source text for a multi-document question.
type Document struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required,min=20"`
}

// QARequest asks a question answered from the supplied documents only.
type QARequest struct {
	Question  string     `json:"question" validate:"required,min=5"`
	Documents []Document `json:"documents" validate:"required,min=1,dive"`
	Language  Language   `json:"language" validate:"required,oneof=en es pt"`
}

func (r *QARequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// DevotionalRequest asks for a devotional on a topic. ReaderAge, when set,
// tunes tone and vocabulary for that age.
type DevotionalRequest struct {
	Topic     string   `json:"topic" validate:"required,min=3"`
	ReaderAge *int     `json:"reader_age" validate:"omitempty,gte=0"`
	Language  Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *DevotionalRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// StudyGuideRequest asks for a study guide for a chapter.
type StudyGuideRequest struct {
	Book     string   `json:"book" validate:"required,min=2"`
	Chapter  int      `json:"chapter" validate:"required,gt=0"`
	Language Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *StudyGuideRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// PlanRequest asks for a multi-day thematic reading plan.
type PlanRequest struct {
	Theme    string   `json:"theme" validate:"required,min=3"`
	Days     int      `json:"days" validate:"required,gt=0"`
	Language Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *PlanRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// AudioTranslationRequest asks for a spoken-style translation of a passage.
type AudioTranslationRequest struct {
	Text     string   `json:"text" validate:"required,min=10"`
	Language Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *AudioTranslationRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// KeywordsRequest asks for the key terms of a scripture reference.
type KeywordsRequest struct {
	Reference string   `json:"reference" validate:"required,min=3"`
	Language  Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *KeywordsRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// LexiconRequest asks for the original-language background of one word.
type LexiconRequest struct {
	Word     string   `json:"word" validate:"required,min=2"`
	Language Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *LexiconRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// InterlinearRequest asks for a word-by-word breakdown of one verse.
type InterlinearRequest struct {
	Book     string   `json:"book" validate:"required,min=2"`
	Chapter  int      `json:"chapter" validate:"required,gt=0"`
	Verse    int      `json:"verse" validate:"required,gt=0"`
	Language Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *InterlinearRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// SearchRequest asks for verses matching a free-text query.
type SearchRequest struct {
	Query    string   `json:"query" validate:"required,min=3"`
	Language Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *SearchRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// CustomMapRequest asks for a themed map definition (center + markers).
type CustomMapRequest struct {
	Theme    string   `json:"theme" validate:"required,min=3"`
	Language Language `json:"language" validate:"required,oneof=en es pt"`
}

func (r *CustomMapRequest) Normalize() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// ImageRequest asks for a generated illustration.
type ImageRequest struct {
	Description string `json:"description" validate:"required,min=10"`
	HighQuality bool   `json:"high_quality"`
}

// SweepResult reports how a cache sweep partitioned the rows.
type SweepResult struct {
	Deleted int `json:"deleted"`
	Kept    int `json:"kept"`
}
