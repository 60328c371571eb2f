package hit

import "strings"

// Ordered alias tables for probing payload fields. Precedence is defined
// once here and reused by every component that needs the same logical field.
var (
	titleAliases  = []string{"title", "headline", "name"}
	sourceAliases = []string{"url", "source", "link"}
	textAliases   = []string{
		"text", "content", "chunk", "body", "summary",
		"description", "article", "excerpt", "title",
	}
	dedupAliases = []string{"url", "source", "link", "title"}
)

// Title returns the document title via the title alias table.
func (h *Hit) Title() string { return probe(h.payload, titleAliases) }

// Text returns the display snippet via the text alias table.
func (h *Hit) Text() string { return probe(h.payload, textAliases) }

// Source returns the document origin (url, source or link), used for the
// "Source:" line in assembled context.
func (h *Hit) Source() string { return probe(h.payload, sourceAliases) }

// ResolvedSource returns the best available origin for display, falling back
// to the title when no url/source/link is present. Empty when nothing fits.
func (h *Hit) ResolvedSource() string {
	if s := probe(h.payload, sourceAliases); s != "" {
		return s
	}
	return probe(h.payload, []string{"title"})
}

// DedupKey derives the identity used to collapse hits referring to the same
// underlying source: url > source > link > title > id. Empty when none of
// those exist; callers must substitute a synthetic key so such hits are
// never silently dropped.
func (h *Hit) DedupKey() string {
	if k := probe(h.payload, dedupAliases); k != "" {
		return k
	}
	return strings.TrimSpace(h.id)
}

// probe returns the first non-empty trimmed string among the aliased fields.
func probe(payload map[string]any, aliases []string) string {
	for _, key := range aliases {
		if v, ok := payload[key].(string); ok {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}
