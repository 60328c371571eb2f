package chat

import (
	"context"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/usecase/retrieval"
)

// Retriever produces a bounded context for a query, widening once when the
// first pass looks irrelevant.
type Retriever interface {
	RetrieveWidened(ctx context.Context, query string, topK int) retrieval.Result
}

// Answerer synthesizes an answer from the query and assembled context.
type Answerer interface {
	Answer(ctx context.Context, query, contextText string) (string, error)
}

// Transcript persists and reads per-session chat history.
type Transcript interface {
	Append(ctx context.Context, sessionID string, entry domain.TranscriptEntry) error
	List(ctx context.Context, sessionID string) ([]domain.TranscriptEntry, error)
}
