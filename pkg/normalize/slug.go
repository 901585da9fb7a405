package normalize

import (
	"regexp"
	"strings"
)

var (
	reSlugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	reWhitespaceRun  = regexp.MustCompile(`\s+`)
	reHyphenRun      = regexp.MustCompile(`-+`)
)

var slugPipeline = Pipeline{
	strings.ToLower,
	strings.TrimSpace,
	func(s string) string { return reSlugDisallowed.ReplaceAllString(s, "") },
	func(s string) string { return reWhitespaceRun.ReplaceAllString(s, "-") },
	func(s string) string { return reHyphenRun.ReplaceAllString(s, "-") },
	func(s string) string { return strings.Trim(s, "-") },
}

// Slug derives the canonical URL-safe identifier from a title. It is
// deterministic and idempotent on its own output; distinct titles may
// still collide, which the unique slug index resolves at insert time.
func Slug(title string) string {
	return slugPipeline.Apply(title)
}
