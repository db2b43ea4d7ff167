package engine

import "strings"

// titleCase converts a snake_case condition key into a display label,
// e.g. "monsoon_peak" -> "Monsoon Peak".
func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
