package models

// Default option values.
const (
	DefaultOutput = "./output/"
	DefaultFormat = "gfm"
)

// Options holds runtime configuration for a conversion run.
// All values come from CLI flags, not external config files. They are
// fixed for the entire run and read-only afterwards.
type Options struct {
	// Filename is the path to the MediaWiki XML export dump. Required.
	Filename string

	// Output is the root directory converted files are written under.
	Output string

	// Flatten collapses nested titles into underscore-joined flat filenames.
	Flatten bool

	// AddMeta prepends a front-matter block to every written file.
	AddMeta bool

	// Format is the target dialect passed to the external converter.
	Format string

	// Indexes enables the end-of-run dir.md -> dir/index.md rename pass.
	Indexes bool

	// SkipErrors logs per-page conversion or write failures and continues
	// instead of aborting the run.
	SkipErrors bool

	// ReportDB, when set, is the path of a SQLite database recording one
	// row per processed page plus a run summary.
	ReportDB string

	// DetectLang adds a detected "lang" field to the front matter. Only
	// effective together with AddMeta.
	DetectLang bool
}

// NewOptions returns Options with defaults applied.
func NewOptions() Options {
	return Options{
		Output: DefaultOutput,
		Format: DefaultFormat,
	}
}
