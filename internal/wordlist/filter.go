// Package wordlist provides word list normalization helpers.
package wordlist

import (
	"fmt"
	"strings"
)

// Normalize upper-cases and trims words, rejecting anything outside A-Z and duplicates.
func Normalize(words []string) ([]string, error) {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, raw := range words {
		word := strings.ToUpper(strings.TrimSpace(raw))
		if word == "" {
			continue
		}
		if !isASCIIUpper(word) {
			return nil, fmt.Errorf("word %q must contain only letters A-Z", raw)
		}
		if _, dup := seen[word]; dup {
			return nil, fmt.Errorf("word %q is listed twice", word)
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return out, nil
}

func isASCIIUpper(word string) bool {
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'A' || ch > 'Z' {
			return false
		}
	}
	return true
}
