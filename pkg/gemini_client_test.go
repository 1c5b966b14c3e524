package pkg

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "models/text-model:generateContent") {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "api-key" {
			t.Errorf("key = %q", got)
		}
		var req GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.SystemInstruction == nil || req.SystemInstruction.Parts[0].Text != "You are a mystic." {
			t.Errorf("system instruction = %+v", req.SystemInstruction)
		}
		if req.Contents[0].Parts[0].Text != "Tell me about The Fool." {
			t.Errorf("prompt = %+v", req.Contents)
		}
		json.NewEncoder(w).Encode(GeminiResponse{
			Candidates: []GeminiCandidate{{
				Content: GeminiContent{Parts: []GeminiPart{{Text: "New beginnings await."}}},
			}},
		})
	}))
	defer srv.Close()

	c := NewGeminiClient("api-key", 5*time.Second)
	c.SetBaseURL(srv.URL)

	text, err := c.GenerateText(context.Background(), "text-model", "You are a mystic.", "Tell me about The Fool.")
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if text != "New beginnings await." {
		t.Errorf("text = %q", text)
	}
}

func TestGenerateTextEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GeminiResponse{})
	}))
	defer srv.Close()

	c := NewGeminiClient("api-key", 5*time.Second)
	c.SetBaseURL(srv.URL)
	if _, err := c.GenerateText(context.Background(), "text-model", "", "prompt"); err == nil {
		t.Fatal("empty candidate list not surfaced as error")
	}
}

func TestGenerateTextUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":"RESOURCE_EXHAUSTED"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeminiClient("api-key", 5*time.Second)
	c.SetBaseURL(srv.URL)
	if _, err := c.GenerateText(context.Background(), "text-model", "", "prompt"); err == nil {
		t.Fatal("non-200 response not surfaced as error")
	}
}

func TestGenerateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.GenerationConfig == nil || len(req.GenerationConfig.ResponseModalities) != 2 {
			t.Errorf("generation config = %+v", req.GenerationConfig)
		}
		json.NewEncoder(w).Encode(GeminiResponse{
			Candidates: []GeminiCandidate{{
				Content: GeminiContent{Parts: []GeminiPart{
					{Text: "Here is your card."},
					{InlineData: &GeminiInlineData{MimeType: "image/png", Data: "aW1hZ2U="}},
				}},
			}},
		})
	}))
	defer srv.Close()

	c := NewGeminiClient("api-key", 5*time.Second)
	c.SetBaseURL(srv.URL)

	image, err := c.GenerateImage(context.Background(), "image-model", "The Fool, tarot style")
	if err != nil {
		t.Fatalf("GenerateImage failed: %v", err)
	}
	if image != "aW1hZ2U=" {
		t.Errorf("image = %q", image)
	}
}

func TestGenerateImageTextOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GeminiResponse{
			Candidates: []GeminiCandidate{{
				Content: GeminiContent{Parts: []GeminiPart{{Text: "I cannot draw that."}}},
			}},
		})
	}))
	defer srv.Close()

	c := NewGeminiClient("api-key", 5*time.Second)
	c.SetBaseURL(srv.URL)
	if _, err := c.GenerateImage(context.Background(), "image-model", "prompt"); err == nil {
		t.Fatal("text-only response not surfaced as error")
	}
}
