package retrieval

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/ragpipe/internal/domain/hit"
)

// budgetMargin is the minimum remaining character budget worth spending:
// below it, a further fragment would be too short to be useful.
const budgetMargin = 80

// ellipsisReserve is held back from the remaining budget when truncating the
// final piece, covering the ellipsis marker.
const ellipsisReserve = 3

// pieceSeparator joins accepted context pieces.
const pieceSeparator = "\n\n"

// titleJunk is stripped from a snippet after removing a leading duplicate of
// the title.
const titleJunk = " \t\r\n-–—:.,;!?"

// sortByScore orders hits descending by adjusted score. The sort is stable,
// so equal scores keep their input order deterministically.
func sortByScore(hits []hit.Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score() > hits[j].Score()
	})
}

// assemble formats the top hits into a bounded context string. Hits must
// already be sorted descending by score. At most maxHits pieces are emitted;
// a running budget of maxChars characters governs how many fit, and a piece
// that does not fit whole is boundary-truncated and terminates assembly.
func assemble(hits []hit.Hit, maxHits, maxChars int) (string, []string) {
	remaining := maxChars
	var pieces []string

	for i := range hits {
		if len(pieces) >= maxHits || remaining <= budgetMargin {
			break
		}

		piece := formatPiece(&hits[i])
		if piece == "" {
			continue
		}

		if len(piece) <= remaining {
			pieces = append(pieces, piece)
			remaining -= len(piece) + len(pieceSeparator)
			continue
		}

		pieces = append(pieces, SafeTruncate(piece, remaining-ellipsisReserve))
		break
	}

	return strings.Join(pieces, pieceSeparator), pieces
}

// formatPiece renders one hit as a context block: optional title line,
// snippet with a duplicated leading title stripped, optional source line.
// Empty when the hit has nothing displayable.
func formatPiece(h *hit.Hit) string {
	title := h.Title()
	snippet := h.Text()

	if title != "" && len(snippet) >= len(title) && strings.EqualFold(snippet[:len(title)], title) {
		snippet = strings.TrimLeft(snippet[len(title):], titleJunk)
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	b.WriteString(snippet)
	if src := h.Source(); src != "" {
		b.WriteString("\nSource: ")
		b.WriteString(src)
	}
	return strings.TrimSpace(b.String())
}
