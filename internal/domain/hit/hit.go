package hit

// Hit is a single vector-search hit after normalization. The payload is the
// provider's free-form document metadata; no schema is enforced on it, fields
// are probed through the alias tables in this package.
type Hit struct {
	id         string
	score      float64
	scored     bool
	titleMatch float64
	payload    map[string]any
}

// New creates a normalized hit. scored is false when the provider supplied
// no usable score; such hits enter score arithmetic as 0.
func New(id string, score float64, scored bool, payload map[string]any) Hit {
	return Hit{id: id, score: score, scored: scored, payload: payload}
}

// ID returns the provider identifier, empty when the provider sent none.
func (h *Hit) ID() string { return h.id }

// Score returns the similarity score (adjusted after rescoring).
func (h *Hit) Score() float64 { return h.score }

// Scored reports whether the provider supplied a score.
func (h *Hit) Scored() bool { return h.scored }

// TitleMatch returns the lexical title-match fraction in [0,1] set during
// rescoring, 0 before.
func (h *Hit) TitleMatch() float64 { return h.titleMatch }

// Payload returns the document metadata.
func (h *Hit) Payload() map[string]any { return h.payload }

// WithScore rebuilds the hit with an adjusted score and the title-match
// fraction that produced it.
func (h Hit) WithScore(score, titleMatch float64) Hit {
	h.score = score
	h.scored = true
	h.titleMatch = titleMatch
	return h
}
