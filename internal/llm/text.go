package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/versebridge/companion/internal/apperr"
)

// permissiveSafetySettings sets every harm category to the least restrictive
// threshold. Devotional, theological, and historical content trips the default
// filters far too often; set this explicitly on every request rather than
// relying on provider defaults.
func permissiveSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	}
}

// GenerateText submits one prompt and returns the generated text. A block
// indication and an empty generation are distinct failures, never successes.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	client, err := c.ensureTextClient(ctx)
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(c.modelText)
	model.SafetySettings = permissiveSafetySettings()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("text generation: %w", err)
	}

	raw, err := textFromResponse(resp)
	if err != nil {
		return "", err
	}

	logResponse("GenerateText", raw)
	return raw, nil
}

// textFromResponse joins the text parts of a generation response. A prompt
// block, a candidate stopped for a non-STOP reason (the SDK reports these with
// err == nil and empty content), and a genuinely empty generation each produce
// a distinct error; the finish reason's wire name is kept in the message so
// callers can react to specific stops like RECITATION.
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", apperr.Newf(apperr.Internal, "generation blocked by content policy: %v", resp.PromptFeedback.BlockReason)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}

	raw := b.String()
	if raw != "" {
		return raw, nil
	}

	for _, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop && cand.FinishReason != genai.FinishReasonUnspecified {
			return "", apperr.Newf(apperr.Internal, "generation stopped: %s", finishReasonName(cand.FinishReason))
		}
	}
	return "", apperr.New(apperr.Internal, "model returned an empty response")
}

// finishReasonName maps a finish reason to its wire name.
func finishReasonName(reason genai.FinishReason) string {
	switch reason {
	case genai.FinishReasonStop:
		return "STOP"
	case genai.FinishReasonMaxTokens:
		return "MAX_TOKENS"
	case genai.FinishReasonSafety:
		return "SAFETY"
	case genai.FinishReasonRecitation:
		return "RECITATION"
	case genai.FinishReasonOther:
		return "OTHER"
	default:
		return fmt.Sprintf("FINISH_REASON_%d", reason)
	}
}
