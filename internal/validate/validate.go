package validate

import (
	"regexp"
	"strings"
)

var (
	reID   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	reSlugStrip    = regexp.MustCompile(`[^a-z0-9]+`)
	reSlugCollapse = regexp.MustCompile(`-{2,}`)
)

// ID validates a resource identifier (team/category/product/purchase ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Slug validates a URL-safe team slug.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

// Slugify derives a slug from a display name: lowercase, non-alphanumerics
// become dashes. Used when a team is created without an explicit slug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = reSlugStrip.ReplaceAllString(s, "-")
	s = reSlugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Template validates a price template selector.
func Template(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == "A" || s == "B"
}

// Price validates a minor-currency amount (non-negative integer cents).
func Price(n int64) bool { return n >= 0 }

// Quantity clamps a cart quantity to a sane range.
func Quantity(n int64) int64 {
	if n < 1 {
		return 1
	}
	if n > 999 {
		return 999
	}
	return n
}
