package complete

import (
	"sort"
	"strings"
)

// Names lists the distinct executable names currently running, sorted and
// de-duplicated, for shell completion of the target argument.
func Names() []string {
	return uniqueSorted(processNames())
}

// shellMetaChars contains characters that are unsafe in shell completion
// contexts. Process names containing these characters are filtered out to
// prevent command injection.
const shellMetaChars = " \t\n$`\\\"';&|<>(){}[]!*?~"

// isShellSafe returns true if the string contains no shell metacharacters
func isShellSafe(s string) bool {
	return !strings.ContainsAny(s, shellMetaChars)
}

// uniqueSorted returns a sorted slice with duplicates removed
func uniqueSorted(items []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" && !seen[item] && isShellSafe(item) {
			seen[item] = true
			result = append(result, item)
		}
	}
	sort.Strings(result)
	return result
}
