package models

// PageMeta holds the filesystem identity derived from a page title.
// It is computed once per page and passed through normalization and
// rendering unchanged.
type PageMeta struct {
	// Directory is the output path relative to the output root, empty when
	// the title has no "/" separators.
	Directory string

	// Filename is the final path segment, without the ".md" extension.
	Filename string

	// Title is the page title with filesystem-invalid characters replaced.
	Title string

	// URL is Title with spaces replaced by underscores. It doubles as the
	// permalink value and as the prefix for relative wiki links.
	URL string
}
