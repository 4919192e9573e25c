package hashtag

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`#(\w+)`)

// Extract returns the normalized hashtags found in text, in order of
// appearance. Each occurrence counts: duplicates are kept because usage
// tracking is per occurrence, not per post.
func Extract(text string) []string {
	matches := tagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, Normalize(m[1]))
	}
	return tags
}

// Normalize lowercases and trims a tag. All tag storage (interest profiles,
// usage counters) goes through this so "Travel" and "travel" accumulate
// under one key.
func Normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tag, "#")))
}
