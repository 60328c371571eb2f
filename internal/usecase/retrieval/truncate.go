package retrieval

import (
	"strings"
	"unicode/utf8"
)

// crudeBackoff is how far below maxChars the last-resort cut lands, reducing
// the odds of severing a multi-byte sequence or a long token right at the
// edge.
const crudeBackoff = 8

// SafeTruncate cuts text to at most maxChars characters at a readable
// boundary, appending " ..." when anything was removed. Boundaries are tried
// in order: the last sentence end past 30% of the budget, the last space
// past 25%, then a fixed backoff cut. The result never exceeds maxChars+4
// (the ellipsis overhead).
func SafeTruncate(text string, maxChars int) string {
	if maxChars < 0 {
		maxChars = 0
	}
	if len(text) <= maxChars {
		return text
	}

	cut := text[:maxChars]

	if idx := lastSentenceEnd(cut); idx >= 0 && idx > maxChars*3/10 {
		return strings.TrimSpace(cut[:idx+1]) + " ..."
	}

	if idx := strings.LastIndexByte(cut, ' '); idx > maxChars/4 {
		return strings.TrimSpace(cut[:idx]) + " ..."
	}

	// No usable boundary (e.g. one long unbroken token): crude fixed cut.
	n := maxChars - crudeBackoff
	if n < 0 {
		n = 0
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return strings.TrimSpace(text[:n]) + " ..."
}

// lastSentenceEnd returns the index of the last sentence-terminal punctuation
// mark immediately followed by a space, or -1.
func lastSentenceEnd(s string) int {
	for i := len(s) - 2; i >= 0; i-- {
		switch s[i] {
		case '.', '!', '?':
			if s[i+1] == ' ' {
				return i
			}
		}
	}
	return -1
}
