package scraper

import "strings"

// Slugify normalizes a display label into a URL-safe path segment:
// lowercase, characters outside [a-z0-9 space hyphen] stripped, whitespace
// runs collapsed to one hyphen, hyphen runs collapsed, edge hyphens trimmed.
// Total and idempotent.
func Slugify(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// BuildURL maps a combination onto its canonical product page path under
// base, in category/brand/model/fuel order. Deterministic: the deduplicator
// and the probe guard rely on path stability as an implicit combination
// identity.
func BuildURL(base string, c Combination) string {
	segments := []string{
		Slugify(c.Category),
		Slugify(c.Brand),
		Slugify(c.Model),
		Slugify(c.Fuel),
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
