package cohere

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) *Embedder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewEmbedder(&Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "embed-english-v3.0",
	})
}

func TestEmbed_Success(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/embed" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"embeddings": {"float": [[0.5, -0.25]]}}`)); err != nil {
			t.Fatal(err)
		}
	})

	vec, err := e.Embed(context.Background(), "what happened today")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 2 || vec[0] != 0.5 || vec[1] != -0.25 {
		t.Errorf("vector = %v", vec)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody["model"] != "embed-english-v3.0" {
		t.Errorf("model = %v", gotBody["model"])
	}
	if gotBody["input_type"] != "search_query" {
		t.Errorf("input_type = %v", gotBody["input_type"])
	}
}

func TestEmbed_EmptyText(t *testing.T) {
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty text")
	})

	for _, text := range []string{"", "   "} {
		if _, err := e.Embed(context.Background(), text); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("text %q: err = %v, want ErrInvalidInput", text, err)
		}
	}
}

func TestEmbed_HTTPError(t *testing.T) {
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		if _, err := w.Write([]byte(`{"message": "rate limit exceeded"}`)); err != nil {
			t.Fatal(err)
		}
	})

	_, err := e.Embed(context.Background(), "query")
	if !errors.Is(err, domain.ErrEmbeddingFailed) {
		t.Fatalf("err = %v, want ErrEmbeddingFailed", err)
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("error should carry the upstream message: %v", err)
	}
}

func TestEmbed_UnrecognizedShape(t *testing.T) {
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"id": "resp-1", "meta": {}}`)); err != nil {
			t.Fatal(err)
		}
	})

	_, err := e.Embed(context.Background(), "query")
	if !errors.Is(err, domain.ErrUpstreamShape) {
		t.Errorf("err = %v, want ErrUpstreamShape", err)
	}
	if !errors.Is(err, domain.ErrEmbeddingFailed) {
		t.Errorf("err = %v, want ErrEmbeddingFailed", err)
	}
}

func TestEmbed_MalformedJSON(t *testing.T) {
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`not json`)); err != nil {
			t.Fatal(err)
		}
	})

	if _, err := e.Embed(context.Background(), "query"); !errors.Is(err, domain.ErrEmbeddingFailed) {
		t.Errorf("err = %v, want ErrEmbeddingFailed", err)
	}
}

func TestHealthCheck(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/models" {
				t.Errorf("path = %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		})
		if err := e.HealthCheck(context.Background()); err != nil {
			t.Errorf("HealthCheck: %v", err)
		}
	})

	t.Run("unauthorized", func(t *testing.T) {
		e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		if err := e.HealthCheck(context.Background()); err == nil {
			t.Error("expected error for 401")
		}
	})
}

func TestMessageFromBody(t *testing.T) {
	if got := messageFromBody([]byte(`{"message": "bad model"}`)); got != "bad model" {
		t.Errorf("got %q", got)
	}
	if got := messageFromBody([]byte(`plain text error`)); got != "plain text error" {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("x", 500)
	if got := messageFromBody([]byte(long)); len(got) != 256 {
		t.Errorf("expected bounded fallback, got %d chars", len(got))
	}
}
