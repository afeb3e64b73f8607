// Package prompt turns validated request fields into model instruction
// strings. Builders are pure: same input, same prompt, no I/O.
package prompt

import (
	"fmt"
	"strings"

	"github.com/versebridge/companion/internal/models"
)

// publicDomainVersions is the fixed allow-list of translation identifiers that
// may be requested verbatim. Anything else gets the stylistic phrasing so the
// model is never asked to reproduce copyrighted text word for word. This
// branch is a content-policy mitigation; keep the check exactly as-is.
var publicDomainVersions = map[string]bool{
	"kjv":     true,
	"asv":     true,
	"web":     true,
	"ylt":     true,
	"darby":   true,
	"bbe":     true,
	"rva":     true,
	"almeida": true,
}

// IsPublicDomain reports whether the version identifier is in the
// public-domain allow-list (case-insensitive).
func IsPublicDomain(version string) bool {
	return publicDomainVersions[strings.ToLower(strings.TrimSpace(version))]
}

// Passage builds the content-retrieval prompt. Public-domain versions request
// verbatim numbered text; others request a rendering in the style of the
// named translation.
func Passage(req models.PassageRequest) string {
	lang := req.Language.DisplayName()
	if IsPublicDomain(req.Version) {
		return fmt.Sprintf(`Provide the full text of %s chapter %d from the %s translation, verbatim.

Response format (STRICT):
- JSON array only (no markdown, no code fences)
- One object per verse with exactly two keys: "verse" (integer) and "text" (string)
- Verses in ascending order, numbered as in the translation

The translation is in the public domain; reproduce the text exactly. Respond in %s where the instructions allow.`,
			req.Book, req.Chapter, req.Version, lang)
	}
	return fmt.Sprintf(`Provide the text of %s chapter %d rendered in the style of the %s translation. Do not reproduce the translation verbatim; write a faithful rendering in its characteristic voice.

Response format (STRICT):
- JSON array only (no markdown, no code fences)
- One object per verse with exactly two keys: "verse" (integer) and "text" (string)
- Verses in ascending order

Respond in %s.`, req.Book, req.Chapter, req.Version, lang)
}

// Storyboard builds the prompt for visual scenes of a chapter.
func Storyboard(req models.StoryboardRequest) string {
	return fmt.Sprintf(`Create a storyboard of the key moments in %s chapter %d.

Response format (STRICT):
- JSON array only (no markdown, no code fences)
- 4 to 8 objects, each with exactly three keys: "title" (string), "description" (string, a vivid visual description of the scene), "reference" (string, the verse range it depicts)

Write all values in %s.`, req.Book, req.Chapter, req.Language.DisplayName())
}

// Locations builds the prompt for geocoded places in a chapter.
func Locations(req models.LocationsRequest) string {
	return fmt.Sprintf(`List the geographical locations mentioned in %s chapter %d with their modern coordinates.

Response format (STRICT):
- JSON array only (no markdown, no code fences)
- One object per location with exactly four keys: "name" (string), "latitude" (number), "longitude" (number), "description" (string, one sentence on its role in the chapter)
- Omit locations whose position is unknown rather than guessing

Write names and descriptions in %s.`, req.Book, req.Chapter, req.Language.DisplayName())
}

// Analysis builds the prompt for an analysis essay.
func Analysis(req models.AnalysisRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a thoughtful analysis essay on %s covering historical context, literary structure, and main themes.", req.Reference)
	if req.Question != "" {
		fmt.Fprintf(&b, " Give particular attention to this question: %s", req.Question)
	}
	fmt.Fprintf(&b, " Write flowing prose, no headings or lists. Respond in %s.", req.Language.DisplayName())
	return b.String()
}

// QA builds the prompt for a question answered strictly from the supplied documents.
func QA(req models.QARequest) string {
	var b strings.Builder
	b.WriteString("Answer the question using ONLY the documents below. If the documents do not contain the answer, say so plainly.\n\n")
	for i, doc := range req.Documents {
		fmt.Fprintf(&b, "Document %d — %s:\n%s\n\n", i+1, doc.Title, doc.Content)
	}
	fmt.Fprintf(&b, "Question: %s\n\nRespond in %s.", req.Question, req.Language.DisplayName())
	return b.String()
}

// Devotional builds the prompt for a devotional on a topic.
func Devotional(req models.DevotionalRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a devotional on the topic of %q.", req.Topic)
	if req.ReaderAge != nil {
		fmt.Fprintf(&b, " The reader is %d years old; match tone and vocabulary to that age.", *req.ReaderAge)
	}
	fmt.Fprintf(&b, `

Response format (STRICT):
- JSON object only (no markdown, no code fences)
- Exactly four keys: "title" (string), "scripture" (string, one anchoring verse reference with its text), "reflection" (string, 2-3 paragraphs), "prayer" (string, a short closing prayer)

Write all values in %s.`, req.Language.DisplayName())
	return b.String()
}

// StudyGuide builds the prompt for a chapter study guide.
func StudyGuide(req models.StudyGuideRequest) string {
	return fmt.Sprintf(`Prepare a study guide for %s chapter %d.

Response format (STRICT):
- JSON object only (no markdown, no code fences)
- Exactly four keys: "summary" (string), "key_verses" (array of strings, verse references), "questions" (array of strings, discussion questions), "application" (string, practical application)

Write all values in %s.`, req.Book, req.Chapter, req.Language.DisplayName())
}

// Plan builds the prompt for a multi-day thematic reading plan.
func Plan(req models.PlanRequest) string {
	return fmt.Sprintf(`Create a %d-day reading plan on the theme %q.

Response format (STRICT):
- JSON object only (no markdown, no code fences)
- Exactly two keys: "theme" (string) and "days" (array of %d objects, each with exactly three keys: "day" (integer starting at 1), "reference" (string, the passage to read), "focus" (string, one sentence on the day's focus))

Write all values in %s.`, req.Days, req.Theme, req.Days, req.Language.DisplayName())
}

// AudioTranslation builds the prompt for a spoken-style translation.
func AudioTranslation(req models.AudioTranslationRequest) string {
	return fmt.Sprintf(`Translate the following passage into %s for audio narration. Use natural spoken phrasing, expand abbreviations, and spell out verse numbers as words. Return only the translated text, nothing else.

%s`, req.Language.DisplayName(), req.Text)
}

// Keywords builds the prompt for key-term extraction.
func Keywords(req models.KeywordsRequest) string {
	return fmt.Sprintf(`List the key theological and narrative terms of %s.

Response format (STRICT):
- JSON array only (no markdown, no code fences)
- 5 to 12 strings, each a single term or short phrase
- No duplicates

Write the terms in %s.`, req.Reference, req.Language.DisplayName())
}

// Lexicon builds the prompt for an original-language word study.
func Lexicon(req models.LexiconRequest) string {
	return fmt.Sprintf(`Give the original-language background of the word %q as used in scripture.

Response format (STRICT):
- JSON object only (no markdown, no code fences)
- Exactly five keys: "word" (string, the word as asked), "original" (string, the Hebrew or Greek term in its own script), "transliteration" (string), "definition" (string), "usage" (string, how scripture uses the term, with one or two reference examples)

Write definition and usage in %s.`, req.Word, req.Language.DisplayName())
}

// Interlinear builds the prompt for a word-by-word verse breakdown.
func Interlinear(req models.InterlinearRequest) string {
	return fmt.Sprintf(`Break down %s chapter %d verse %d word by word from the original language.

Response format (STRICT):
- JSON array only (no markdown, no code fences)
- One object per original-language word, in text order, with exactly three keys: "word" (string, in the original script), "transliteration" (string), "meaning" (string)

Write meanings in %s.`, req.Book, req.Chapter, req.Verse, req.Language.DisplayName())
}

// Search builds the prompt for a free-text verse search.
func Search(req models.SearchRequest) string {
	return fmt.Sprintf(`Find scripture passages that match this query: %q

Response format (STRICT):
- JSON array only (no markdown, no code fences)
- Up to 10 objects ordered by relevance, each with exactly three keys: "reference" (string), "text" (string, the verse text), "relevance" (string, one sentence on why it matches)

Write text and relevance in %s.`, req.Query, req.Language.DisplayName())
}

// CustomMap builds the prompt for a themed map definition.
func CustomMap(req models.CustomMapRequest) string {
	return fmt.Sprintf(`Design a map of the places relevant to the theme %q.

Response format (STRICT):
- JSON object only (no markdown, no code fences)
- Exactly three keys: "title" (string), "center" (object with exactly two keys "latitude" and "longitude", both numbers), "markers" (array of objects, each with exactly four keys: "name" (string), "latitude" (number), "longitude" (number), "note" (string, one sentence tying the place to the theme))

Write title, names, and notes in %s.`, req.Theme, req.Language.DisplayName())
}

// Image builds the prompt for illustration generation.
func Image(req models.ImageRequest) string {
	return fmt.Sprintf("A reverent, painterly illustration suitable for a scripture study app: %s. No text or lettering in the image.", req.Description)
}
