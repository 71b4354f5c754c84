package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompleteReturnsConcatenatedText(t *testing.T) {
	var gotVersion, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotKey = r.Header.Get("x-api-key")

		var req messagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("expected a single user message, got %+v", req.Messages)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "{\"intent\":"},
				{"type": "text", "text": " \"demo_request\"}"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	text, err := client.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "{\"intent\": \"demo_request\"}" {
		t.Fatalf("unexpected text %q", text)
	}
	if gotVersion != apiVersion {
		t.Fatalf("expected anthropic-version header %q, got %q", apiVersion, gotVersion)
	}
	if gotKey != "test-key" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", BaseURL: server.URL})
	if _, err := client.Complete(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for API error response")
	}
}

func TestCompleteRejectsEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"content": []map[string]string{}})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if _, err := client.Complete(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty content")
	}
}
