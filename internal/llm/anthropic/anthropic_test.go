package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reciperag/internal/llm"
)

func newTestServer(t *testing.T, status int, body string, gotRequest *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			http.NotFound(w, r)
			return
		}
		if gotRequest != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, gotRequest)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate(t *testing.T) {
	var req map[string]any
	srv := newTestServer(t, http.StatusOK, `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-3-haiku-20240307",
		"content": [{"type": "text", "text": "Try the chicken pasta."}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 10, "output_tokens": 5}
	}`, &req)

	c, err := New(llm.Config{APIKey: "k", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Generate(context.Background(), "be brief", "what's for dinner?")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Try the chicken pasta." {
		t.Fatalf("got %q", got)
	}
	if req["model"] != "claude-3-haiku-20240307" {
		t.Fatalf("model = %v", req["model"])
	}
	if req["max_tokens"] != float64(llm.DefaultMaxTokens) {
		t.Fatalf("max_tokens = %v", req["max_tokens"])
	}
	if c.Name() != "anthropic" || c.Model() != "claude-3-haiku-20240307" {
		t.Fatalf("unexpected identity %s/%s", c.Name(), c.Model())
	}
}

func TestGenerateStatusError(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests,
		`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`, nil)

	c, err := New(llm.Config{APIKey: "k", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Generate(context.Background(), "s", "u")
	var se *llm.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusTooManyRequests || !se.Retryable() {
		t.Fatalf("unexpected status error %+v", se)
	}
	if !errors.Is(err, llm.ErrGeneration) {
		t.Fatal("expected ErrGeneration in chain")
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(llm.Config{}); !errors.Is(err, llm.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}
