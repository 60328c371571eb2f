package hit

import "testing"

func TestProbe_AliasPrecedence(t *testing.T) {
	h := New("42", 0.5, true, map[string]any{
		"headline": "From headline",
		"name":     "From name",
	})
	if got := h.Title(); got != "From headline" {
		t.Errorf("Title() = %q, want %q", got, "From headline")
	}

	h = New("42", 0.5, true, map[string]any{
		"title": "From title",
		"name":  "From name",
	})
	if got := h.Title(); got != "From title" {
		t.Errorf("Title() = %q, want %q", got, "From title")
	}
}

func TestProbe_SkipsBlankAndNonString(t *testing.T) {
	h := New("", 0, false, map[string]any{
		"title":    "   ",
		"headline": 123,
		"name":     "  Real Name  ",
	})
	if got := h.Title(); got != "Real Name" {
		t.Errorf("Title() = %q, want %q", got, "Real Name")
	}
}

func TestText_ProbeOrder(t *testing.T) {
	h := New("", 0, false, map[string]any{
		"excerpt": "short excerpt",
		"content": "full content",
		"title":   "Title only",
	})
	if got := h.Text(); got != "full content" {
		t.Errorf("Text() = %q, want %q", got, "full content")
	}

	h = New("", 0, false, map[string]any{"title": "Title only"})
	if got := h.Text(); got != "Title only" {
		t.Errorf("Text() falls back to title, got %q", got)
	}

	h = New("", 0, false, map[string]any{})
	if got := h.Text(); got != "" {
		t.Errorf("Text() on empty payload = %q, want empty", got)
	}
}

func TestDedupKey_Precedence(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
		id      string
		want    string
	}{
		{"url wins", map[string]any{"url": "http://a", "title": "T"}, "1", "http://a"},
		{"source over link", map[string]any{"link": "http://l", "source": "feed"}, "1", "feed"},
		{"title fallback", map[string]any{"title": "Only Title"}, "1", "Only Title"},
		{"id fallback", map[string]any{}, "doc-9", "doc-9"},
		{"nothing", map[string]any{}, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := New(tc.id, 0, false, tc.payload)
			if got := h.DedupKey(); got != tc.want {
				t.Errorf("DedupKey() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolvedSource_TitleFallback(t *testing.T) {
	h := New("", 0, false, map[string]any{"title": "A Story"})
	if got := h.ResolvedSource(); got != "A Story" {
		t.Errorf("ResolvedSource() = %q, want title fallback", got)
	}

	h = New("", 0, false, map[string]any{"title": "A Story", "link": "http://x"})
	if got := h.ResolvedSource(); got != "http://x" {
		t.Errorf("ResolvedSource() = %q, want link", got)
	}
}

func TestWithScore_RebuildsHit(t *testing.T) {
	h := New("1", 0.5, true, map[string]any{"title": "T"})
	adjusted := h.WithScore(0.62, 1.0)

	if adjusted.Score() != 0.62 || adjusted.TitleMatch() != 1.0 {
		t.Errorf("adjusted = (%v, %v), want (0.62, 1.0)", adjusted.Score(), adjusted.TitleMatch())
	}
	if h.Score() != 0.5 {
		t.Errorf("original mutated: score = %v", h.Score())
	}
}
