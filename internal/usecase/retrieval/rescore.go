package retrieval

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/ragpipe/internal/domain/hit"
)

// nonWord splits lowercased text into tokens on any run of whitespace or
// non-word characters.
var nonWord = regexp.MustCompile(`[^a-z0-9_]+`)

// tokenize lowercases s and splits it into non-empty word tokens.
func tokenize(s string) []string {
	parts := nonWord.Split(strings.ToLower(s), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// rescore applies a lexical title-match boost on top of the semantic score:
// adjusted = score + alpha * fraction of query tokens present in the title.
// Pure vector similarity can miss exact entity matches in titles; alpha stays
// small so the boost corrects ranking without overwhelming it.
func rescore(hits []hit.Hit, query string, alpha float64) []hit.Hit {
	queryTokens := tokenize(query)

	out := make([]hit.Hit, len(hits))
	for i, h := range hits {
		fraction := titleMatchFraction(queryTokens, h.Title())
		out[i] = h.WithScore(h.Score()+alpha*fraction, fraction)
	}
	return out
}

// titleMatchFraction returns the share of query tokens found among the title
// tokens, 0 when either side has no tokens.
func titleMatchFraction(queryTokens []string, title string) float64 {
	if len(queryTokens) == 0 || title == "" {
		return 0
	}

	titleTokens := make(map[string]struct{})
	for _, tok := range tokenize(title) {
		titleTokens[tok] = struct{}{}
	}
	if len(titleTokens) == 0 {
		return 0
	}

	matched := 0
	for _, tok := range queryTokens {
		if _, ok := titleTokens[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}
