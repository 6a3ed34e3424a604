package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tessero/ragdesk/ai"
)

// GeneratorService implements ai.Generator over the v1beta REST surface.
type GeneratorService struct {
	client *client
	logger *slog.Logger
}

var _ ai.Generator = (*GeneratorService)(nil)

type contentPart struct {
	Text string `json:"text,omitempty"`
}

type content struct {
	Parts []contentPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type fileSearchTool struct {
	FileSearchStoreNames []string `json:"fileSearchStoreNames"`
}

type generateTool struct {
	FileSearch *fileSearchTool `json:"fileSearch,omitempty"`
}

type generateRequest struct {
	Contents []content      `json:"contents"`
	Tools    []generateTool `json:"tools,omitempty"`
}

type candidate struct {
	Content *content `json:"content"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type imageInstance struct {
	Prompt string `json:"prompt"`
}

type imageParameters struct {
	SampleCount int `json:"sampleCount"`
}

type predictRequest struct {
	Instances  []imageInstance `json:"instances"`
	Parameters imageParameters `json:"parameters"`
}

type prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
}

// GenerateText issues one grounded generation request and extracts the answer
// text. When the response carries no text parts, the raw response body is
// returned instead of an error so a usable answer is never lost to a missing
// accessor.
func (g *GeneratorService) GenerateText(ctx context.Context, prompt string, storeNames []string) (string, error) {
	req := generateRequest{
		Contents: []content{
			{Parts: []contentPart{{Text: prompt}}, Role: "user"},
		},
	}
	if len(storeNames) > 0 {
		req.Tools = []generateTool{
			{FileSearch: &fileSearchTool{FileSearchStoreNames: storeNames}},
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	body, err := g.client.do(ctx, requestSpec{
		method:      "POST",
		url:         g.client.endpoint("/v1beta/models/" + g.client.config.TextModel + ":generateContent"),
		body:        payload,
		contentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	return extractText(body), nil
}

// extractText joins the text parts of the first candidate. Falls back to the
// raw body when no candidate text is present.
func extractText(body []byte) string {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return string(body)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
		break
	}
	if sb.Len() == 0 {
		return string(body)
	}
	return sb.String()
}

// GenerateImages produces up to count images for the prompt via the
// configured image model.
func (g *GeneratorService) GenerateImages(ctx context.Context, prompt string, count int) ([][]byte, error) {
	if count < 1 {
		count = 1
	}

	payload, err := json.Marshal(predictRequest{
		Instances:  []imageInstance{{Prompt: prompt}},
		Parameters: imageParameters{SampleCount: count},
	})
	if err != nil {
		return nil, err
	}

	body, err := g.client.do(ctx, requestSpec{
		method:      "POST",
		url:         g.client.endpoint("/v1beta/models/" + g.client.config.ImageModel + ":predict"),
		body:        payload,
		contentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("generate images: %w", err)
	}

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("generate images: decode response: %w", err)
	}

	images := make([][]byte, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		if p.BytesBase64Encoded == "" {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(p.BytesBase64Encoded)
		if err != nil {
			g.logger.Warn("skipping undecodable image payload", "err", err)
			continue
		}
		images = append(images, raw)
	}
	return images, nil
}
