package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/metrics"
)

// systemPrompt grounds the model in retrieved passages and tells it to admit
// gaps instead of inventing.
const systemPrompt = "You are a research assistant. Answer the user's question " +
	"using only the provided context passages. Cite the passage sources when " +
	"they exist. If the context does not contain the answer, say so plainly " +
	"instead of guessing."

// Answerer synthesizes answers via an OpenAI-compatible chat completion API.
type Answerer struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the LLM provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewAnswerer creates an OpenAI-compatible chat client.
func NewAnswerer(cfg *Config) *Answerer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Answerer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// Answer implements chat.Answerer: one completion over the query and the
// assembled context.
func (a *Answerer) Answer(ctx context.Context, query, contextText string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if contextText != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Context passages:\n\n" + contextText,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: query,
	})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
	})
	if err != nil {
		metrics.AnswerRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.AnswerRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrAnswerFailed)
	}

	metrics.AnswerRequestsTotal.WithLabelValues(a.model, "success").Inc()
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrAnswerFailed for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrAnswerFailed

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("completion API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("completion API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("completion request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
