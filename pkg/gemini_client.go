package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"` // base64
}

type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inlineData,omitempty"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GenerationConfig struct {
	Temperature        *float32 `json:"temperature,omitempty"`
	MaxOutputTokens    *int32   `json:"maxOutputTokens,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type GeminiRequest struct {
	Contents          []GeminiContent   `json:"contents"`
	SystemInstruction *GeminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// GeminiClient calls the generative language API. The HTTP client carries a
// fixed per-request timeout; retries are the caller's policy.
type GeminiClient struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewGeminiClient(apiKey string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		client:  &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: GeminiBaseURL,
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *GeminiClient) SetBaseURL(url string) {
	c.baseURL = url
}

func (c *GeminiClient) post(ctx context.Context, model string, body GeminiRequest) (*GeminiResponse, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var response GeminiResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %v", err)
	}
	return &response, nil
}

// GenerateText sends a prompt with a persona instruction and returns the
// first candidate's text.
func (c *GeminiClient) GenerateText(ctx context.Context, model, persona, prompt string) (string, error) {
	req := GeminiRequest{
		Contents: []GeminiContent{{
			Role:  "user",
			Parts: []GeminiPart{{Text: prompt}},
		}},
	}
	if persona != "" {
		req.SystemInstruction = &GeminiContent{Parts: []GeminiPart{{Text: persona}}}
	}

	resp, err := c.post(ctx, model, req)
	if err != nil {
		return "", err
	}
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("empty response from model %s", model)
}

// GenerateImage asks the image model for a single picture and returns it as
// base64 inline data.
func (c *GeminiClient) GenerateImage(ctx context.Context, model, prompt string) (string, error) {
	req := GeminiRequest{
		Contents: []GeminiContent{{
			Role:  "user",
			Parts: []GeminiPart{{Text: prompt}},
		}},
		GenerationConfig: &GenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	resp, err := c.post(ctx, model, req)
	if err != nil {
		return "", err
	}
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return part.InlineData.Data, nil
			}
		}
	}
	return "", fmt.Errorf("no image in response from model %s", model)
}
