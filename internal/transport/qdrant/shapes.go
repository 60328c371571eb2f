package qdrant

// hitWrappers are the fields a successful search response may nest its hit
// array under, in preference order. A bare top-level array is accepted too.
var hitWrappers = []string{"result", "data", "hits"}

// unwrapHits pulls the hit array out of a decoded search response. Returns
// nil when no known shape matches; malformed individual entries are skipped.
func unwrapHits(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		return asHitMaps(t)
	case map[string]any:
		for _, key := range hitWrappers {
			if arr, ok := t[key].([]any); ok {
				return asHitMaps(arr)
			}
		}
	}
	return nil
}

func asHitMaps(arr []any) []map[string]any {
	hits := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			hits = append(hits, m)
		}
	}
	return hits
}
