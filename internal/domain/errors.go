package domain

import "errors"

var (
	// ErrInvalidInput signals an empty or malformed caller input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmbeddingFailed signals an embedding provider failure or timeout.
	ErrEmbeddingFailed = errors.New("embedding failed")
	// ErrSearchFailed signals a vector store failure or timeout.
	ErrSearchFailed = errors.New("vector search failed")
	// ErrUpstreamShape signals a successful upstream call whose response
	// matched none of the known shapes.
	ErrUpstreamShape = errors.New("unrecognized upstream response shape")
	// ErrAnswerFailed signals an LLM completion failure.
	ErrAnswerFailed = errors.New("answer generation failed")
	// ErrSessionNotFound signals a missing session transcript.
	ErrSessionNotFound = errors.New("session not found")
)
