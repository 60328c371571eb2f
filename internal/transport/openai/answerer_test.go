package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

func newTestAnswerer(t *testing.T, handler http.HandlerFunc) *Answerer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAnswerer(&Config{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Model:   "gpt-4o-mini",
	})
}

func completionResponse(content string) string {
	return `{"choices": [{"message": {"role": "assistant", "content": ` +
		jsonString(content) + `}}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestAnswer_Success(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	a := newTestAnswerer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(completionResponse("  The certified answer.  "))); err != nil {
			t.Fatal(err)
		}
	})

	answer, err := a.Answer(context.Background(), "what happened", "Passage one.\n\nPassage two.")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer != "The certified answer." {
		t.Errorf("answer = %q, want trimmed content", answer)
	}

	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 3 {
		t.Fatalf("got %d messages, want system + context + user", len(gotReq.Messages))
	}
	if gotReq.Messages[1].Role != openai.ChatMessageRoleSystem ||
		!strings.HasPrefix(gotReq.Messages[1].Content, "Context passages:\n\n") {
		t.Errorf("context message = %+v", gotReq.Messages[1])
	}
	if gotReq.Messages[2].Role != openai.ChatMessageRoleUser || gotReq.Messages[2].Content != "what happened" {
		t.Errorf("user message = %+v", gotReq.Messages[2])
	}
}

func TestAnswer_OmitsEmptyContext(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	a := newTestAnswerer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if _, err := w.Write([]byte(completionResponse("ok"))); err != nil {
			t.Fatal(err)
		}
	})

	if _, err := a.Answer(context.Background(), "question", ""); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if len(gotReq.Messages) != 2 {
		t.Errorf("got %d messages, want system + user only", len(gotReq.Messages))
	}
}

func TestAnswer_EmptyChoices(t *testing.T) {
	a := newTestAnswerer(t, func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"choices": []}`)); err != nil {
			t.Fatal(err)
		}
	})

	_, err := a.Answer(context.Background(), "question", "context")
	if !errors.Is(err, domain.ErrAnswerFailed) {
		t.Errorf("err = %v, want ErrAnswerFailed", err)
	}
}

func TestAnswer_APIError(t *testing.T) {
	a := newTestAnswerer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(`{"detail": "model overloaded"}`)); err != nil {
			t.Fatal(err)
		}
	})

	_, err := a.Answer(context.Background(), "question", "context")
	if !errors.Is(err, domain.ErrAnswerFailed) {
		t.Fatalf("err = %v, want ErrAnswerFailed", err)
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("error should carry the upstream detail: %v", err)
	}
}

func TestExtractDetail(t *testing.T) {
	if got := extractDetail([]byte(`{"detail": "boom"}`)); got != "boom" {
		t.Errorf("got %q", got)
	}
	if got := extractDetail([]byte(`not json`)); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := extractDetail([]byte(`{"other": "field"}`)); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
