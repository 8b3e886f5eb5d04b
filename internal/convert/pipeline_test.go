package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiki2md/internal/logging"
	"wiki2md/models"
	"wiki2md/pkg/render"
	"wiki2md/pkg/report"
)

// fakeConverter stands in for pandoc. It echoes its input back and fails
// when the input contains failOn.
type fakeConverter struct {
	failOn string
	calls  int
}

func (f *fakeConverter) Convert(text, format string) (string, error) {
	f.calls++
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return "", &render.ConversionError{Stderr: "mock failure"}
	}
	return text, nil
}

type testPage struct {
	title string
	text  string
}

func writeDump(t *testing.T, pages ...testPage) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(`<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.11/">`)
	for _, p := range pages {
		b.WriteString("<page>")
		if p.title != "" {
			b.WriteString("<title>" + p.title + "</title>")
		}
		if p.text != "" {
			b.WriteString("<revision><text>" + p.text + "</text></revision>")
		}
		b.WriteString("</page>")
	}
	b.WriteString("</mediawiki>")

	path := filepath.Join(t.TempDir(), "dump.xml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func newRunner(t *testing.T, conv render.Converter, pages ...testPage) *Runner {
	t.Helper()

	opts := models.NewOptions()
	opts.Filename = writeDump(t, pages...)
	opts.Output = filepath.Join(t.TempDir(), "out")

	return &Runner{
		Options:   opts,
		Converter: conv,
		Log:       logging.New(true),
	}
}

func TestRunWritesNestedPage(t *testing.T) {
	r := newRunner(t, &fakeConverter{}, testPage{"A/B", "Some text"})

	converted, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, converted)

	content, err := os.ReadFile(filepath.Join(r.Options.Output, "A", "B.md"))
	require.NoError(t, err)
	assert.Equal(t, "Some text", string(content))
}

func TestRunAddMeta(t *testing.T) {
	r := newRunner(t, &fakeConverter{}, testPage{"A/B", "Some text"})
	r.Options.AddMeta = true

	_, err := r.Run()
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(r.Options.Output, "A", "B.md"))
	require.NoError(t, err)

	s := string(content)
	assert.True(t, strings.HasPrefix(s, "---\n"))
	assert.Contains(t, s, "title: A/B\n")
	assert.Contains(t, s, "permalink: /A_B/\n")
	assert.Contains(t, s, "Some text")
}

func TestRunFlatten(t *testing.T) {
	r := newRunner(t, &fakeConverter{}, testPage{"A/B", "Some text"})
	r.Options.Flatten = true

	converted, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, converted)

	_, err = os.Stat(filepath.Join(r.Options.Output, "A_B.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(r.Options.Output, "A"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunSkipsPagesMissingFields(t *testing.T) {
	r := newRunner(t, &fakeConverter{},
		testPage{"", "orphan body"},
		testPage{"No Text", ""},
		testPage{"Good", "body"},
	)

	converted, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, converted)

	entries, err := os.ReadDir(r.Options.Output)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Good.md", entries[0].Name())
}

func TestRunAbortsOnConversionError(t *testing.T) {
	conv := &fakeConverter{failOn: "FAILME"}
	r := newRunner(t, conv,
		testPage{"First", "fine"},
		testPage{"Bad", "FAILME"},
		testPage{"After", "never reached"},
	)

	converted, err := r.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad")
	assert.Equal(t, 1, converted)

	// Nothing after the failing page was processed.
	_, statErr := os.Stat(filepath.Join(r.Options.Output, "After.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunSkipErrorsContinues(t *testing.T) {
	conv := &fakeConverter{failOn: "FAILME"}
	r := newRunner(t, conv,
		testPage{"First", "fine"},
		testPage{"Bad", "FAILME"},
		testPage{"After", "also fine"},
	)
	r.Options.SkipErrors = true

	converted, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, converted)

	_, statErr := os.Stat(filepath.Join(r.Options.Output, "After.md"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(r.Options.Output, "Bad.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunIndexRenames(t *testing.T) {
	r := newRunner(t, &fakeConverter{},
		testPage{"A", "section page"},
		testPage{"A/B", "leaf page"},
	)
	r.Options.Indexes = true

	converted, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, converted)

	_, err = os.Stat(filepath.Join(r.Options.Output, "A.md"))
	assert.True(t, os.IsNotExist(err))

	content, err := os.ReadFile(filepath.Join(r.Options.Output, "A", "index.md"))
	require.NoError(t, err)
	assert.Equal(t, "section page", string(content))

	content, err = os.ReadFile(filepath.Join(r.Options.Output, "A", "B.md"))
	require.NoError(t, err)
	assert.Equal(t, "leaf page", string(content))
}

func TestRunTemplatePageBypassesConverter(t *testing.T) {
	conv := &fakeConverter{}
	r := newRunner(t, conv,
		testPage{"Template:Box", "&lt;noinclude&gt;This is the box template.&lt;/noinclude&gt;\n{{Box\n|size=big\n}}"},
	)

	converted, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, converted)
	assert.Equal(t, 0, conv.calls)

	content, err := os.ReadFile(filepath.Join(r.Options.Output, "Template_Box.md"))
	require.NoError(t, err)
	s := string(content)
	assert.True(t, strings.HasPrefix(s, "# Template Documentation\n"))
	assert.Contains(t, s, "- `size`")
}

func TestRunRecordsReport(t *testing.T) {
	db, err := report.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	conv := &fakeConverter{failOn: "FAILME"}
	r := newRunner(t, conv,
		testPage{"Good", "fine"},
		testPage{"No Text", ""},
		testPage{"Bad", "FAILME"},
	)
	r.Options.SkipErrors = true
	r.Report = db

	converted, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, converted)

	pages, err := db.RunPages(1)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, report.StatusOK, pages[0].Status)
	assert.Equal(t, "Good", pages[0].Title)
	assert.Equal(t, report.StatusSkipped, pages[1].Status)
	assert.Equal(t, report.StatusFailed, pages[2].Status)
	assert.Contains(t, pages[2].Error, "mock failure")
}

func TestRunFailsOnMissingDump(t *testing.T) {
	opts := models.NewOptions()
	opts.Filename = filepath.Join(t.TempDir(), "missing.xml")
	opts.Output = t.TempDir()

	r := &Runner{Options: opts, Converter: &fakeConverter{}, Log: logging.New(true)}
	_, err := r.Run()
	assert.Error(t, err)
}
