package commands

import (
	"fmt"
	"path/filepath"
	"sort"
)

// expandSources expands item file paths and glob patterns. Matches of one
// pattern are sorted; patterns keep their command-line order and repeated
// paths are read once. A pattern without matches is kept as a literal path
// so opening it reports a useful error.
func expandSources(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var sources []string

	for _, pattern := range patterns {
		if pattern == "-" {
			if !seen[pattern] {
				seen[pattern] = true
				sources = append(sources, pattern)
			}
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid glob pattern %q: %v", ErrUsage, pattern, err)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		sort.Strings(matches)

		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				sources = append(sources, match)
			}
		}
	}

	if len(sources) == 0 {
		sources = []string{"-"}
	}
	return sources, nil
}
