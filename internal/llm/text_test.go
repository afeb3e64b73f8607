package llm

import (
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestTextFromResponse_JoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				FinishReason: genai.FinishReasonStop,
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("first "), genai.Text("second")},
				},
			},
		},
	}
	raw, err := textFromResponse(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != "first second" {
		t.Errorf("raw = %q", raw)
	}
}

// A recitation block arrives as a nil-content candidate with the RECITATION
// finish reason, not as a transport error. The wire name must end up in the
// error text so the passage operation can remap it.
func TestTextFromResponse_RecitationStop(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{FinishReason: genai.FinishReasonRecitation},
		},
	}
	_, err := textFromResponse(resp)
	if err == nil {
		t.Fatal("expected error for recitation-stopped candidate")
	}
	if !strings.Contains(err.Error(), "RECITATION") {
		t.Errorf("error %q does not carry the RECITATION wire name", err)
	}
}

func TestTextFromResponse_SafetyStop(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{FinishReason: genai.FinishReasonSafety, Content: &genai.Content{}},
		},
	}
	_, err := textFromResponse(resp)
	if err == nil {
		t.Fatal("expected error for safety-stopped candidate")
	}
	if !strings.Contains(err.Error(), "SAFETY") {
		t.Errorf("error %q does not carry the SAFETY wire name", err)
	}
}

func TestTextFromResponse_PromptBlocked(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
	}
	_, err := textFromResponse(resp)
	if err == nil {
		t.Fatal("expected error for blocked prompt")
	}
	if !strings.Contains(err.Error(), "content policy") {
		t.Errorf("error %q", err)
	}
}

func TestTextFromResponse_EmptyWithoutStopReason(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{FinishReason: genai.FinishReasonStop, Content: &genai.Content{}},
		},
	}
	_, err := textFromResponse(resp)
	if err == nil {
		t.Fatal("expected error for empty generation")
	}
	if !strings.Contains(err.Error(), "empty response") {
		t.Errorf("error %q", err)
	}
}
