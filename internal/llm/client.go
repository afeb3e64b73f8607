package llm

import (
	"context"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/versebridge/companion/internal/apperr"
	"google.golang.org/api/option"
	unifiedgenai "google.golang.org/genai"
)

// maxResponseLogBytes is the max length of a model response body to log in full (to avoid huge logs).
const maxResponseLogBytes = 4096

// Client wraps the Gemini API clients. One Client is created at startup and
// shared by all requests; the underlying provider clients are built lazily on
// first use and never torn down.
type Client struct {
	apiKey         string
	modelText      string
	modelImage     string // high-quality image variant
	modelImageFast string // fast image variant

	mu          sync.Mutex
	textClient  *genai.Client
	imageClient *unifiedgenai.Client
}

// Image is a generated image payload. Data may be empty when the model
// returned no inline-data part; callers treat that as a valid empty result.
type Image struct {
	Data     []byte
	MimeType string
	Model    string
}

// Empty reports whether the model returned no image bytes.
func (i *Image) Empty() bool {
	return i == nil || len(i.Data) == 0
}

// NewClient creates the LLM client. No network work happens here; the missing
// credential is only reported on first use.
func NewClient(apiKey, modelText, modelImage, modelImageFast string) *Client {
	if modelText == "" {
		modelText = "gemini-2.5-flash"
	}
	if modelImage == "" {
		modelImage = "gemini-3-pro-image-preview"
	}
	if modelImageFast == "" {
		modelImageFast = "gemini-2.5-flash-image"
	}

	log.Info().
		Str("model_text", modelText).
		Str("model_image", modelImage).
		Str("model_image_fast", modelImageFast).
		Bool("api_key_configured", apiKey != "").
		Msg("LLM client initialized")

	return &Client{
		apiKey:         apiKey,
		modelText:      modelText,
		modelImage:     modelImage,
		modelImageFast: modelImageFast,
	}
}

// ensureTextClient lazily builds the text-generation client.
// Missing credential is a server configuration fault at first use.
func (c *Client) ensureTextClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.textClient != nil {
		return c.textClient, nil
	}
	if c.apiKey == "" {
		return nil, apperr.New(apperr.FailedPrecondition, "GEMINI_API_KEY is not configured on the server")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to initialize model client", err)
	}
	c.textClient = client
	return client, nil
}

// ensureImageClient lazily builds the unified-SDK client used for image output.
func (c *Client) ensureImageClient(ctx context.Context) (*unifiedgenai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.imageClient != nil {
		return c.imageClient, nil
	}
	if c.apiKey == "" {
		return nil, apperr.New(apperr.FailedPrecondition, "GEMINI_API_KEY is not configured on the server")
	}
	client, err := unifiedgenai.NewClient(ctx, &unifiedgenai.ClientConfig{APIKey: c.apiKey})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to initialize image model client", err)
	}
	c.imageClient = client
	return client, nil
}

// logResponse logs model response text, truncating if over maxResponseLogBytes.
func logResponse(caller, raw string) {
	if len(raw) <= maxResponseLogBytes {
		log.Debug().Str("caller", caller).Str("model_response", raw).Msg("Model response")
		return
	}
	log.Debug().
		Str("caller", caller).
		Str("model_response", raw[:maxResponseLogBytes]+"... [truncated]").
		Int("model_response_len", len(raw)).
		Msg("Model response")
}
