package chat

import (
	"context"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/usecase/retrieval"
)

// mockRetriever implements Retriever with a canned result.
type mockRetriever struct {
	retrieveFunc func(ctx context.Context, query string, topK int) retrieval.Result
	calls        int
}

func (m *mockRetriever) RetrieveWidened(ctx context.Context, query string, topK int) retrieval.Result {
	m.calls++
	if m.retrieveFunc != nil {
		return m.retrieveFunc(ctx, query, topK)
	}
	return retrieval.Result{}
}

// mockAnswerer implements Answerer with a pluggable func and a call counter.
type mockAnswerer struct {
	answerFunc func(ctx context.Context, query, contextText string) (string, error)
	calls      int
}

func (m *mockAnswerer) Answer(ctx context.Context, query, contextText string) (string, error) {
	m.calls++
	if m.answerFunc != nil {
		return m.answerFunc(ctx, query, contextText)
	}
	return "canned answer", nil
}

// mockTranscript implements Transcript, recording appended entries in memory.
type mockTranscript struct {
	appendFunc func(ctx context.Context, sessionID string, entry domain.TranscriptEntry) error
	listFunc   func(ctx context.Context, sessionID string) ([]domain.TranscriptEntry, error)
	appended   map[string][]domain.TranscriptEntry
}

func (m *mockTranscript) Append(ctx context.Context, sessionID string, entry domain.TranscriptEntry) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, sessionID, entry)
	}
	if m.appended == nil {
		m.appended = make(map[string][]domain.TranscriptEntry)
	}
	m.appended[sessionID] = append(m.appended[sessionID], entry)
	return nil
}

func (m *mockTranscript) List(ctx context.Context, sessionID string) ([]domain.TranscriptEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, sessionID)
	}
	return m.appended[sessionID], nil
}
