package cohere

import "encoding/json"

// extractor probes one known response shape for the first embedding vector.
// Extractors operate on the decoded JSON tree, never on SDK types, so a new
// provider shape is one more entry here rather than a parser rewrite.
type extractor func(map[string]any) []float32

// extractors in preference order:
//  1. {"embeddings": {"float": [[...]]}}   (embed v2, typed embeddings)
//  2. {"embeddings": [[...]]}              (embed v1, bare matrix)
//  3. {"embeddings": [{"embedding": [...]}]}
//  4. {"data": [{"embedding": [...]}]}     (OpenAI-compatible proxies)
var extractors = []extractor{
	fromTypedEmbeddings,
	fromEmbeddingMatrix,
	fromEmbeddingObjects,
	fromDataObjects,
}

// ExtractVector pulls the first embedding vector out of a provider response,
// trying each known shape in order. A response wrapped once under "body"
// (gateway passthrough) is unwrapped and retried.
func ExtractVector(resp map[string]any) ([]float32, bool) {
	for _, extract := range extractors {
		if v := extract(resp); len(v) > 0 {
			return v, true
		}
	}
	if body, ok := resp["body"].(map[string]any); ok {
		for _, extract := range extractors {
			if v := extract(body); len(v) > 0 {
				return v, true
			}
		}
	}
	return nil, false
}

func fromTypedEmbeddings(resp map[string]any) []float32 {
	emb, ok := resp["embeddings"].(map[string]any)
	if !ok {
		return nil
	}
	rows, ok := emb["float"].([]any)
	if !ok || len(rows) == 0 {
		return nil
	}
	return asVector(rows[0])
}

func fromEmbeddingMatrix(resp map[string]any) []float32 {
	rows, ok := resp["embeddings"].([]any)
	if !ok || len(rows) == 0 {
		return nil
	}
	return asVector(rows[0])
}

func fromEmbeddingObjects(resp map[string]any) []float32 {
	rows, ok := resp["embeddings"].([]any)
	if !ok || len(rows) == 0 {
		return nil
	}
	obj, ok := rows[0].(map[string]any)
	if !ok {
		return nil
	}
	return asVector(obj["embedding"])
}

func fromDataObjects(resp map[string]any) []float32 {
	rows, ok := resp["data"].([]any)
	if !ok || len(rows) == 0 {
		return nil
	}
	obj, ok := rows[0].(map[string]any)
	if !ok {
		return nil
	}
	return asVector(obj["embedding"])
}

// asVector converts a decoded JSON array into a float32 vector. Returns nil
// unless every element is numeric and the array is non-empty.
func asVector(v any) []float32 {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil
	}
	vec := make([]float32, len(arr))
	for i, el := range arr {
		switch n := el.(type) {
		case float64:
			vec[i] = float32(n)
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return nil
			}
			vec[i] = float32(f)
		default:
			return nil
		}
	}
	return vec
}
