package watcher

import "strings"

// temporary-write suffixes used by browsers and editors mid-download.
var temporarySuffixes = []string{".tmp", ".part", ".crdownload", ".swp"}

// shouldSkip reports whether a filename looks like a hidden file, an editor
// backup, or an in-progress write rather than a document to process.
func shouldSkip(name string) bool {
	if name == "" {
		return true
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") {
		return true
	}
	lower := strings.ToLower(name)
	for _, suffix := range temporarySuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
