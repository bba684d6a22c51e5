package dispatchers

import (
	"sort"
	"strings"

	"github.com/footprint-tools/routeshell/internal/route"
)

// levenshtein calculates the edit distance between two strings
func levenshtein(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Create matrix
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	// Initialize first column
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}

	// Initialize first row
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	// Fill in the rest of the matrix
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

type suggestion struct {
	name     string
	distance int
}

// FindSimilarRoutes returns up to maxResults route names or command words
// within a small edit distance of input, closest first.
func FindSimilarRoutes(input string, reg *route.Registry, maxResults int) []string {
	if reg == nil || input == "" {
		return nil
	}

	const maxDistance = 3

	seen := make(map[string]bool)
	var suggestions []suggestion

	consider := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		dist := levenshtein(input, name)
		if dist <= maxDistance && dist > 0 {
			suggestions = append(suggestions, suggestion{name: name, distance: dist})
		}
	}

	for _, r := range reg.Routes() {
		consider(r.Name())
		if cmd := r.Command(); cmd != "" {
			consider(cmd)
		}
	}

	// Sort by distance (ascending), then alphabetically for stability
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].distance != suggestions[j].distance {
			return suggestions[i].distance < suggestions[j].distance
		}
		return suggestions[i].name < suggestions[j].name
	})

	if len(suggestions) > maxResults {
		suggestions = suggestions[:maxResults]
	}

	result := make([]string, len(suggestions))
	for i, s := range suggestions {
		result[i] = s.name
	}

	return result
}

// CommandWords returns the distinct dispatch keys of the registry, sorted.
func CommandWords(reg *route.Registry) []string {
	seen := make(map[string]bool)
	var words []string
	for _, r := range reg.Routes() {
		cmd := r.Command()
		if cmd == "" || seen[cmd] {
			continue
		}
		seen[cmd] = true
		words = append(words, cmd)
	}
	sort.Strings(words)
	return words
}
