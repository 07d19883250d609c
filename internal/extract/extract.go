// Package extract pulls candidate short phrases out of raw generated or brief
// text and collapses near-duplicates. All functions here are pure: they accept
// possibly-empty input and return possibly-empty output, never an error.
package extract

import (
	"strings"
	"unicode"
)

// fillerPrefixes is the closed set of determiners/pronouns stripped from the
// head of a candidate sentence before the uppercase check.
var fillerPrefixes = []string{"The", "This", "It", "A", "An"}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Sentences splits text on sentence terminators (embedded line breaks are
// normalized to spaces first), trims each candidate, and keeps those whose
// length falls in [minLen, maxLen]. A single leading filler word is stripped
// if present, and the candidate survives only if it still begins with an
// uppercase letter. Collection stops once maxItems have been kept.
func Sentences(text string, maxItems, minLen, maxLen int) []string {
	if text == "" || maxItems <= 0 {
		return nil
	}

	normalized := strings.ReplaceAll(text, "\n", " ")
	items := make([]string, 0, maxItems)

	for _, raw := range strings.FieldsFunc(normalized, isTerminator) {
		candidate := strings.TrimSpace(raw)
		if len(candidate) < minLen || len(candidate) > maxLen {
			continue
		}

		for _, prefix := range fillerPrefixes {
			if strings.HasPrefix(candidate, prefix+" ") {
				candidate = strings.TrimSpace(candidate[len(prefix)+1:])
				break
			}
		}

		if candidate == "" {
			continue
		}
		first := []rune(candidate)[0]
		if !unicode.IsUpper(first) {
			continue
		}

		items = append(items, candidate)
		if len(items) >= maxItems {
			break
		}
	}

	return items
}

// Split returns the trimmed sentence candidates of text without any length or
// casing filtering. Empty candidates are dropped.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, raw := range strings.FieldsFunc(text, isTerminator) {
		if candidate := strings.TrimSpace(raw); candidate != "" {
			out = append(out, candidate)
		}
	}
	return out
}

// Key returns the normalization key for dedup: the lower-cased text truncated
// to keyLen runes.
func Key(text string, keyLen int) string {
	lowered := strings.ToLower(text)
	runes := []rune(lowered)
	if len(runes) > keyLen {
		runes = runes[:keyLen]
	}
	return string(runes)
}

// Dedupe collapses near-duplicate strings by normalized-prefix key, preserving
// insertion order. The first occurrence of each key wins.
func Dedupe(items []string, keyLen int) []string {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := Key(item, keyLen)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
