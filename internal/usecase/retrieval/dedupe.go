package retrieval

import (
	"strconv"

	"github.com/kailas-cloud/ragpipe/internal/domain/hit"
)

// dedupe collapses hits sharing a dedup key into the best-scoring
// representative, considering only the first considerLimit hits.
//
// The consider window is applied in provider-return order, before the final
// score sort. A high-rescored hit ranked low by the vector store can
// therefore fall outside the window; that bias toward the store's own top-K
// is intentional and must not be "fixed" here.
func dedupe(hits []hit.Hit, considerLimit int) []hit.Hit {
	if considerLimit > 0 && len(hits) > considerLimit {
		hits = hits[:considerLimit]
	}

	type slot struct {
		pos int
		h   hit.Hit
	}
	best := make(map[string]slot, len(hits))
	order := make([]string, 0, len(hits))

	for i, h := range hits {
		key := h.DedupKey()
		if key == "" {
			// Synthetic key: hits with no derivable identity survive
			// independently, never merged with each other.
			key = "\x00anon-" + strconv.Itoa(i)
		}

		cur, seen := best[key]
		if !seen {
			best[key] = slot{pos: i, h: h}
			order = append(order, key)
			continue
		}
		// Replace only on strictly greater score; ties keep the first seen.
		if h.Score() > cur.h.Score() {
			best[key] = slot{pos: cur.pos, h: h}
		}
	}

	out := make([]hit.Hit, 0, len(order))
	for _, key := range order {
		out = append(out, best[key].h)
	}
	return out
}
