package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	unifiedgenai "google.golang.org/genai"
)

// GenerateImage generates an image from a prompt. highQuality selects the
// slower high-quality model variant. The response parts are scanned for the
// first inline-data part; when none is present the result is an empty Image,
// not an error.
func (c *Client) GenerateImage(ctx context.Context, prompt string, highQuality bool) (*Image, error) {
	client, err := c.ensureImageClient(ctx)
	if err != nil {
		return nil, err
	}

	model := c.modelImageFast
	if highQuality {
		model = c.modelImage
	}

	config := &unifiedgenai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	}

	resp, err := client.Models.GenerateContent(ctx, model, unifiedgenai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("image generation: %w", err)
	}

	for i, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for j, part := range cand.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			log.Info().
				Str("caller", "GenerateImage").
				Str("model", model).
				Int("image_size_bytes", len(part.InlineData.Data)).
				Str("mime_type", mimeType).
				Int("candidate", i).
				Int("part", j).
				Msg("Model response (image blob)")
			return &Image{Data: part.InlineData.Data, MimeType: mimeType, Model: model}, nil
		}
	}

	log.Warn().
		Str("model", model).
		Int("candidates", len(resp.Candidates)).
		Msg("No inline-data part in image response; returning empty image")
	return &Image{Model: model}, nil
}
