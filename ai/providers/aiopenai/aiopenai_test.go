package aiopenai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/imagetext/ai/ocr"
	"github.com/Abraxas-365/imagetext/errx"
	"github.com/openai/openai-go/option"
)

const completionJSON = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "COME ON\nLET'S PARTY\n"}
  }],
  "usage": {"prompt_tokens": 100, "completion_tokens": 7, "total_tokens": 107}
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIProvider("test-key", option.WithBaseURL(srv.URL+"/"))
}

func TestExtractTextSplitsLines(t *testing.T) {
	var request map[string]any
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &request); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionJSON)
	})

	res, err := p.ExtractText(context.Background(), []byte("\x89PNG\r\n\x1a\nrest"), ocr.WithModel("gpt-4o-mini"))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}

	if res.Text != "COME ON\nLET'S PARTY\n" {
		t.Fatalf("Text = %q", res.Text)
	}
	if len(res.Blocks) != 2 || res.Blocks[0].Type != ocr.BlockLine {
		t.Fatalf("Blocks = %+v", res.Blocks)
	}
	if res.Usage.TotalTokens != 107 {
		t.Fatalf("Usage = %+v", res.Usage)
	}
	if request["model"] != "gpt-4o-mini" {
		t.Fatalf("model = %v", request["model"])
	}
	if !strings.Contains(string(mustJSON(t, request["messages"])), "data:image/png;base64,") {
		t.Fatalf("image data URL missing from request")
	}
}

func TestExtractTextServiceError(t *testing.T) {
	calls := 0
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
	})

	_, err := p.ExtractText(context.Background(), []byte("img"))
	if !errx.IsCode(err, ocr.ErrProviderFailed) {
		t.Fatalf("expected ErrProviderFailed, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestExtractTextNoChoices(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[]}`)
	})

	_, err := p.ExtractText(context.Background(), []byte("img"))
	if !errx.IsCode(err, ocr.ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse, got %v", err)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
