package retrieval

import (
	"encoding/json"
	"strconv"

	"github.com/kailas-cloud/ragpipe/internal/domain/hit"
)

// normalize converts raw provider hits into the canonical hit representation.
// Pure and order-preserving. Providers disagree on field names: the id may
// live under "id" or "_id", the score may be missing or stashed under
// "payload_score", and some providers flatten the payload to the top level.
func normalize(raw []map[string]any) []hit.Hit {
	hits := make([]hit.Hit, 0, len(raw))
	for _, r := range raw {
		id := formatID(r["id"])
		if id == "" {
			id = formatID(r["_id"])
		}

		score, scored := numericField(r, "score")
		if !scored {
			score, scored = numericField(r, "payload_score")
		}

		payload, ok := r["payload"].(map[string]any)
		if !ok {
			payload = r
		}

		hits = append(hits, hit.New(id, score, scored, payload))
	}
	return hits
}

// formatID renders a provider id (string or number) as a string, avoiding
// the exponent form float64 ids would otherwise take after JSON decoding.
func formatID(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func numericField(m map[string]any, key string) (float64, bool) {
	switch t := m[key].(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}
