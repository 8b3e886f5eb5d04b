// Package models defines data structures shared across the conversion pipeline.
package models

// PageRecord is a single page as read from the export dump.
// Title and Text come straight from the XML and are immutable once loaded.
type PageRecord struct {
	Title string
	Text  string
}

// Convertible reports whether the page carries enough data to be processed.
// Pages without a title or revision text are skipped with a warning.
func (p PageRecord) Convertible() bool {
	return p.Title != "" && p.Text != ""
}
