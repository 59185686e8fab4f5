package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// fakeOpenAI serves the chat completions endpoint the way the real API does,
// so the summarizer is exercised through the actual client.
func fakeOpenAI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func completionJSON(content string) string {
	resp := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"model":   "gpt-3.5-turbo",
		"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"}},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestSummarize(t *testing.T) {
	t.Run("sends the expected request and trims the first choice", func(t *testing.T) {
		var gotReq openai.ChatCompletionRequest
		srv := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Errorf("decode request: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(completionJSON("  a tight summary \n")))
		})

		s := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

		got, err := s.Summarize(context.Background(), "  original text with spaces  ")
		if err != nil {
			t.Fatalf("Summarize() error = %v", err)
		}
		if got != "a tight summary" {
			t.Errorf("summary = %q, want %q", got, "a tight summary")
		}

		if gotReq.Model != "gpt-3.5-turbo" {
			t.Errorf("model = %q, want gpt-3.5-turbo", gotReq.Model)
		}
		if gotReq.MaxTokens != 100 {
			t.Errorf("max_tokens = %d, want 100", gotReq.MaxTokens)
		}
		if gotReq.Temperature != 0.7 {
			t.Errorf("temperature = %v, want 0.7", gotReq.Temperature)
		}
		if len(gotReq.Messages) != 1 {
			t.Fatalf("got %d messages, want 1", len(gotReq.Messages))
		}
		// The prompt must carry the untrimmed input verbatim.
		if !strings.Contains(gotReq.Messages[0].Content, "  original text with spaces  ") {
			t.Errorf("prompt %q does not contain the original text", gotReq.Messages[0].Content)
		}
		if !strings.HasPrefix(gotReq.Messages[0].Content, "Summarize in ≤ 30 words:") {
			t.Errorf("prompt %q has unexpected instruction", gotReq.Messages[0].Content)
		}
	})

	t.Run("no choices yields an empty summary without error", func(t *testing.T) {
		srv := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","choices":[]}`))
		})

		s := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

		got, err := s.Summarize(context.Background(), "text")
		if err != nil {
			t.Fatalf("Summarize() error = %v", err)
		}
		if got != "" {
			t.Errorf("summary = %q, want empty", got)
		}
	})

	t.Run("quota errors propagate unmodified with their status", func(t *testing.T) {
		srv := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"Rate limit exceeded","type":"requests"}}`))
		})

		s := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

		_, err := s.Summarize(context.Background(), "text")
		if err == nil {
			t.Fatal("Summarize() error = nil, want 429 error")
		}
		var apiErr *openai.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error %T does not carry an API error", err)
		}
		if apiErr.HTTPStatusCode != http.StatusTooManyRequests {
			t.Errorf("status = %d, want 429", apiErr.HTTPStatusCode)
		}
	})

	t.Run("missing API key fails on first use, not at construction", func(t *testing.T) {
		s := NewOpenAI(Config{})

		_, err := s.Summarize(context.Background(), "text")
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("error = %v, want ErrMissingAPIKey", err)
		}

		// And keeps failing the same way on subsequent calls.
		_, err = s.Summarize(context.Background(), "text")
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("second call error = %v, want ErrMissingAPIKey", err)
		}
	})

	t.Run("client is initialized once and reused", func(t *testing.T) {
		calls := 0
		srv := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(completionJSON("summary")))
		})

		s := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

		for i := 0; i < 3; i++ {
			if _, err := s.Summarize(context.Background(), "text"); err != nil {
				t.Fatalf("call %d: %v", i, err)
			}
		}
		if calls != 3 {
			t.Errorf("upstream saw %d calls, want 3", calls)
		}
	})
}

func TestSummarizeConcurrentFirstUse(t *testing.T) {
	srv := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionJSON("summary")))
	})

	s := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

	// Racing first users must never observe a half-built client.
	errCh := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := s.Summarize(context.Background(), "text")
			errCh <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-errCh; err != nil {
			t.Errorf("concurrent call: %v", err)
		}
	}
}
