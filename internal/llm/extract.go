package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Greedy spans from the first opening bracket to the last closing one. This
// does not do depth matching: stray brackets in prose before the real payload
// can mis-locate the boundary. Known limitation, kept on purpose.
var (
	reObjectSpan = regexp.MustCompile(`(?s)\{.*\}`)
	reArraySpan  = regexp.MustCompile(`(?s)\[.*\]`)
)

// ExtractJSON locates and parses exactly one JSON object or array embedded in
// arbitrary surrounding prose. If a '[' appears before any '{' the text is
// treated as array-first, otherwise object-first. Returns ok=false (with the
// offending text logged) when no bracket is found or the span fails to parse;
// callers treat that as the model failing to produce structured output, not
// as a transport failure.
func ExtractJSON(raw string) (json.RawMessage, bool) {
	objIdx := strings.Index(raw, "{")
	arrIdx := strings.Index(raw, "[")

	var span string
	switch {
	case arrIdx >= 0 && (objIdx < 0 || arrIdx < objIdx):
		span = reArraySpan.FindString(raw)
	case objIdx >= 0:
		span = reObjectSpan.FindString(raw)
	default:
		logExtractionFailure("no JSON brackets in model output", raw)
		return nil, false
	}

	var payload json.RawMessage
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		logExtractionFailure("model output span is not valid JSON", raw)
		return nil, false
	}
	return payload, true
}

func logExtractionFailure(reason, raw string) {
	if len(raw) > maxResponseLogBytes {
		raw = raw[:maxResponseLogBytes] + "... [truncated]"
	}
	log.Warn().Str("model_output", raw).Msg("JSON extraction failed: " + reason)
}
