// Package slug derives URL keys and reading estimates from post content.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WordsPerMinute is the reading speed used by ReadTime.
const WordsPerMinute = 200

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// Slugify lowercases s and collapses every run of non-alphanumerics into a single hyphen.
func Slugify(s string) string {
	out := nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(out, "-")
}

// ForPost builds a post slug from its title. The millisecond timestamp keeps slugs
// readable and roughly ordered; the random suffix keeps two posts created in the
// same millisecond from colliding.
func ForPost(title string, now time.Time) string {
	base := Slugify(title)
	if base == "" {
		base = "post"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return base + "-" + strconv.FormatInt(now.UnixMilli(), 10) + suffix
}

// ForTag normalises a tag name: lowercase, whitespace runs become hyphens.
func ForTag(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// WordCount counts whitespace separated words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ReadTime is ceil(words / WordsPerMinute), never below one minute.
func ReadTime(content string) int {
	words := WordCount(content)
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
