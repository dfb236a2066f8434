package slug

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":            "hello-world",
		"  Go, Rust & Zig!  ":    "go-rust-zig",
		"already-a-slug":         "already-a-slug",
		"Ünïcode only":           "n-code-only",
		"***":                    "",
		"Multiple   spaces here": "multiple-spaces-here",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestForPostIsUniqueWithinTheSameMillisecond(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		s := ForPost("Same Title", now)
		assert.True(t, strings.HasPrefix(s, "same-title-1714564800000"), s)
		assert.False(t, seen[s], "duplicate slug %s", s)
		seen[s] = true
	}
}

func TestForPostFallsBackWhenTitleHasNoSlugChars(t *testing.T) {
	s := ForPost("!!!", time.Unix(0, 0))
	assert.True(t, strings.HasPrefix(s, "post-0"), s)
}

func TestForTag(t *testing.T) {
	assert.Equal(t, "machine-learning", ForTag("Machine Learning"))
	assert.Equal(t, "go", ForTag("  Go "))
	assert.Equal(t, "web-dev", ForTag("Web \t Dev"))
}

func TestReadTime(t *testing.T) {
	words := func(n int) string { return strings.TrimSpace(strings.Repeat("word ", n)) }

	assert.Equal(t, 1, ReadTime(words(1)))
	assert.Equal(t, 1, ReadTime(words(200)))
	assert.Equal(t, 2, ReadTime(words(201)))
	assert.Equal(t, 3, ReadTime(words(600)))
	assert.Equal(t, 1, ReadTime("   "))
}
