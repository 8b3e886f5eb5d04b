// Package paths derives filesystem identity from page titles.
package paths

import (
	"strings"

	"wiki2md/models"
)

// Resolve derives PageMeta from a raw page title and records any directory
// seen into stats for the end-of-run index rename pass.
//
// "/" in a title is a nesting separator, not an invalid character: it
// splits the title into directory segments. Everything else that cannot
// appear in a filename is replaced by "_".
func Resolve(title string, stats *models.RunStats) models.PageMeta {
	sanitized := Sanitize(title)
	slugged := strings.ReplaceAll(sanitized, " ", "_")

	meta := models.PageMeta{
		Title:    sanitized,
		URL:      strings.ReplaceAll(slugged, "/", "_"),
		Filename: slugged,
	}

	if strings.Contains(slugged, "/") {
		parts := strings.Split(slugged, "/")
		meta.Directory = strings.Join(parts[:len(parts)-1], "/")
		meta.Filename = parts[len(parts)-1]
		stats.AddDirectory(meta.Directory)
	}
	return meta
}

// Sanitize replaces filesystem-invalid characters in a title with
// underscores. Replacement is position-preserving: consecutive invalid
// characters are never deduplicated ("a::b" becomes "a__b").
func Sanitize(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch r {
		case ':', '*', '?', '<', '>', '|', '\\', '"':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
