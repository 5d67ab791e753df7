package classify

import (
	"os"
	"sort"
	"strings"
)

const (
	// ReservedPrefix marks library subdirectories that are internal buckets,
	// never offered to the model as categories.
	ReservedPrefix = "_"
	// CategoryUnclassified receives documents the classifier could not place.
	CategoryUnclassified = "_unclassified"
	// CategoryUnsupported receives documents with no extraction handler.
	CategoryUnsupported = "_unsupported"
)

// Vocabulary merges the base category list with the names of existing library
// subdirectories, excluding reserved ones, and returns them sorted and
// deduplicated. An unreadable library directory contributes nothing; the base
// list still applies.
func Vocabulary(base []string, libraryDir string) []string {
	seen := make(map[string]struct{}, len(base))
	merged := make([]string, 0, len(base))
	add := func(name string) {
		if name == "" || strings.HasPrefix(name, ReservedPrefix) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		merged = append(merged, name)
	}

	for _, category := range base {
		add(strings.TrimSpace(category))
	}
	if entries, err := os.ReadDir(libraryDir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				add(entry.Name())
			}
		}
	}

	sort.Strings(merged)
	return merged
}

// SanitizeCategory makes a model-proposed category usable as a single
// directory segment: whitespace trimmed, path separators replaced.
func SanitizeCategory(category string) string {
	category = strings.TrimSpace(category)
	category = strings.ReplaceAll(category, "/", "-")
	category = strings.ReplaceAll(category, `\`, "-")
	return category
}
