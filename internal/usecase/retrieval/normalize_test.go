package retrieval

import (
	"testing"
)

func TestNormalize_IDVariants(t *testing.T) {
	raw := []map[string]any{
		{"id": "plain", "score": 0.5},
		{"_id": "underscore", "score": 0.5},
		{"id": float64(42), "score": 0.5},
		{"score": 0.5},
	}

	out := normalize(raw)
	if len(out) != 4 {
		t.Fatalf("expected 4 hits, got %d", len(out))
	}

	wantIDs := []string{"plain", "underscore", "42", ""}
	for i, want := range wantIDs {
		if got := out[i].ID(); got != want {
			t.Errorf("hit %d: ID = %q, want %q", i, got, want)
		}
	}
}

func TestNormalize_ScoreVariants(t *testing.T) {
	raw := []map[string]any{
		{"id": "a", "score": 0.73},
		{"id": "b", "payload_score": 0.31},
		{"id": "c"},
	}

	out := normalize(raw)

	if !out[0].Scored() || out[0].Score() != 0.73 {
		t.Errorf("direct score: got (%v, %v)", out[0].Score(), out[0].Scored())
	}
	if !out[1].Scored() || out[1].Score() != 0.31 {
		t.Errorf("payload_score fallback: got (%v, %v)", out[1].Score(), out[1].Scored())
	}
	if out[2].Scored() {
		t.Error("missing score must leave the hit unscored")
	}
	if out[2].Score() != 0 {
		t.Errorf("unscored hit enters arithmetic as 0, got %v", out[2].Score())
	}
}

func TestNormalize_PayloadNestingAndFlattened(t *testing.T) {
	raw := []map[string]any{
		{"id": "a", "payload": map[string]any{"title": "Nested"}},
		{"id": "b", "title": "Flattened"},
	}

	out := normalize(raw)

	if got := out[0].Title(); got != "Nested" {
		t.Errorf("nested payload: Title = %q", got)
	}
	if got := out[1].Title(); got != "Flattened" {
		t.Errorf("flattened payload: Title = %q", got)
	}
}

func TestNormalize_PreservesOrder(t *testing.T) {
	raw := []map[string]any{
		{"id": "first"}, {"id": "second"}, {"id": "third"},
	}

	out := normalize(raw)
	for i, want := range []string{"first", "second", "third"} {
		if out[i].ID() != want {
			t.Errorf("position %d: got %s, want %s", i, out[i].ID(), want)
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	if out := normalize(nil); len(out) != 0 {
		t.Errorf("normalize(nil) = %d hits, want 0", len(out))
	}
}
