package convert

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"wiki2md/models"
	"wiki2md/pkg/dump"
	"wiki2md/pkg/langid"
	"wiki2md/pkg/normalize"
	"wiki2md/pkg/paths"
	"wiki2md/pkg/render"
	"wiki2md/pkg/report"
	"wiki2md/pkg/writer"
)

// Runner executes the conversion pipeline for one dump file. Pages are
// processed strictly sequentially; all run-wide state lives in a RunStats
// value owned by Run.
type Runner struct {
	Options   models.Options
	Converter render.Converter

	// LegacyURLFix is true when the converter version is at or below
	// 2.0.2 and the normalizer must escape bracketed raw URLs.
	LegacyURLFix bool

	Log *log.Logger

	// Report is nil when --report-db is not set.
	Report *report.DB

	// Detector is nil unless language detection is enabled.
	Detector *langid.Detector
}

// Run converts every page in the dump and returns the number of files
// written. Fatal errors abort immediately; per-page conversion and write
// failures abort or continue depending on Options.SkipErrors.
func (r *Runner) Run() (int, error) {
	if err := os.MkdirAll(r.Options.Output, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory %s: %w", r.Options.Output, err)
	}

	pages, err := dump.Load(r.Options.Filename)
	if err != nil {
		return 0, err
	}
	r.Log.Info("loaded dump", "pages", len(pages))

	var runID int64
	if r.Report != nil {
		runID, err = r.Report.StartRun(r.Options.Filename, r.Options.Output, r.Options.Format)
		if err != nil {
			return 0, err
		}
	}

	stats := &models.RunStats{}
	w := &writer.Writer{
		Output:  r.Options.Output,
		Flatten: r.Options.Flatten,
		AddMeta: r.Options.AddMeta,
	}
	n := &normalize.Normalizer{
		Flatten:      r.Options.Flatten,
		LegacyURLFix: r.LegacyURLFix,
	}

	for _, page := range pages {
		if page.Title == "" {
			r.Log.Warn("no title found for a page, skipping")
			r.record(runID, "", "", report.StatusSkipped, "missing title")
			continue
		}
		if page.Text == "" {
			r.Log.Warn("no text content for page, skipping", "title", page.Title)
			r.record(runID, page.Title, "", report.StatusSkipped, "missing revision text")
			continue
		}

		meta := paths.Resolve(page.Title, stats)
		cleaned, isTemplate := n.Clean(page.Text, meta)

		var body string
		if isTemplate {
			body = render.TemplateDoc(cleaned)
		} else {
			body, err = r.Converter.Convert(cleaned, r.Options.Format)
			if err != nil {
				r.record(runID, meta.Title, "", report.StatusFailed, err.Error())
				if r.Options.SkipErrors {
					r.Log.Error("failed converting, skipping", "title", meta.Title, "error", err)
					continue
				}
				return stats.Converted, fmt.Errorf("error converting %s: %w", meta.Title, err)
			}
		}

		var lang string
		if r.Detector != nil && r.Options.AddMeta {
			if code, ok := r.Detector.Detect(body); ok {
				lang = code
			}
		}

		path, err := w.Write(meta, body, lang)
		if err != nil {
			r.record(runID, meta.Title, "", report.StatusFailed, err.Error())
			if r.Options.SkipErrors {
				r.Log.Error("failed writing, skipping", "title", meta.Title, "error", err)
				continue
			}
			return stats.Converted, err
		}

		stats.Converted++
		r.record(runID, meta.Title, path, report.StatusOK, "")
		r.Log.Info("converted", "path", path)
	}

	if !r.Options.Flatten && r.Options.Indexes {
		if err := w.RenameIndexes(stats.Directories); err != nil {
			return stats.Converted, err
		}
	}

	if r.Report != nil {
		if err := r.Report.FinishRun(runID, stats.Converted); err != nil {
			r.Log.Warn("failed to finalize report", "error", err)
		}
	}
	return stats.Converted, nil
}

// record writes a page outcome to the report database when reporting is
// enabled. Report failures never abort the run.
func (r *Runner) record(runID int64, title, path, status, errMsg string) {
	if r.Report == nil {
		return
	}
	if err := r.Report.RecordPage(runID, title, path, status, errMsg); err != nil {
		r.Log.Warn("failed to record page outcome", "title", title, "error", err)
	}
}
