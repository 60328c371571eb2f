package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/metrics"
)

const (
	defaultBaseURL = "https://api.cohere.ai/v1"
	defaultTimeout = 15 * time.Second
)

// Embedder converts query text into embedding vectors via the Cohere REST
// API. The response is parsed tolerantly: Cohere has shipped several embed
// response shapes over API versions, and gateways wrap the whole thing once
// more under "body".
type Embedder struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
	client  *http.Client
	logger  *zap.Logger
}

// Config holds the embedding provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewEmbedder creates a Cohere embedding client.
func NewEmbedder(cfg *Config) *Embedder {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedder{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Embed implements retrieval.Embedder. The call carries its own timeout, so
// cancellation here prevents any downstream search from starting.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text: %w", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	reqBody := map[string]any{
		"model":           e.model,
		"texts":           []string{text},
		"input_type":      "search_query",
		"embedding_types": []string{"float"},
	}

	start := time.Now()
	resp, err := e.postJSON(ctx, e.baseURL+"/embed", reqBody)
	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.model, "error").Inc()
		return nil, fmt.Errorf("%v: %w", err, domain.ErrEmbeddingFailed)
	}

	vector, ok := ExtractVector(resp)
	if !ok {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.model, "error").Inc()
		e.logger.Error("embedding response shape not recognized",
			zap.Strings("top_level_keys", topLevelKeys(resp)),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamShape, domain.ErrEmbeddingFailed)
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(e.model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(e.model).Observe(duration.Seconds())

	return vector, nil
}

// HealthCheck verifies API availability via the models listing endpoint.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("list models: %s", resp.Status)
	}
	return nil
}

func (e *Embedder) postJSON(ctx context.Context, url string, body any) (map[string]any, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cohere embed request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cohere embed %s: %s", resp.Status, messageFromBody(raw))
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded, nil
}

// messageFromBody extracts the "message" field from a Cohere error body,
// falling back to the (bounded) raw body.
func messageFromBody(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		return parsed.Message
	}
	if len(body) > 256 {
		body = body[:256]
	}
	return string(body)
}

func topLevelKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
