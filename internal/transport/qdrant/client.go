package qdrant

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

const defaultTimeout = 10 * time.Second

// Client is a minimal REST client for Qdrant similarity search against one
// collection. It assumes the collection is pre-populated by an offline
// ingestion job.
type Client struct {
	baseURL    string
	apiKey     string
	collection string
	timeout    time.Duration
	client     *http.Client
	logger     *zap.Logger
}

// Config holds the vector store connection settings.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// NewClient creates a Qdrant search client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		timeout:    timeout,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Search implements retrieval.Searcher: topK nearest neighbors with payload
// attached and vector data excluded. A successful response in an
// unrecognized shape yields an empty slice, never an error.
func (c *Client) Search(ctx context.Context, vector []float32, topK int) ([]map[string]any, error) {
	if topK <= 0 {
		topK = 5
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
		"with_vector":  false,
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, c.collection)

	start := time.Now()
	decoded, err := c.postJSON(ctx, url, reqBody)
	duration := time.Since(start)

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(c.collection, "error").Inc()
		return nil, fmt.Errorf("%v: %w", err, domain.ErrSearchFailed)
	}

	metrics.SearchRequestsTotal.WithLabelValues(c.collection, "success").Inc()
	metrics.SearchRequestDuration.WithLabelValues(c.collection).Observe(duration.Seconds())

	hits := unwrapHits(decoded)
	if hits == nil {
		c.logger.Warn("search response shape not recognized, treating as empty",
			zap.String("collection", c.collection),
		)
		return []map[string]any{}, nil
	}
	return hits, nil
}

// Ping checks that the collection exists and the store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/collections/%s", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant ping: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant ping: %s", resp.Status)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, url string, body any) (any, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant search request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		if len(raw) > 256 {
			raw = raw[:256]
		}
		return nil, fmt.Errorf("qdrant search %s: %s", resp.Status, string(raw))
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded, nil
}
