// Package dump reads MediaWiki XML export files into page records.
package dump

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"wiki2md/models"
)

// ExportNamespace is the MediaWiki export schema namespace this loader is
// pinned to. Pages under a different schema version are not matched and
// surface as an empty dump.
const ExportNamespace = "http://www.mediawiki.org/xml/export-0.11/"

// ParseError wraps an XML syntax failure in the dump file.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing XML: %s", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyDumpError reports a well-formed dump containing no page elements.
// Tags lists the distinct element names that were encountered instead.
type EmptyDumpError struct {
	Tags []string
}

func (e *EmptyDumpError) Error() string {
	return fmt.Sprintf("no pages found in XML data (elements encountered: %s)",
		strings.Join(e.Tags, ", "))
}

type xmlExport struct {
	XMLName xml.Name  `xml:"mediawiki"`
	Pages   []xmlPage `xml:"http://www.mediawiki.org/xml/export-0.11/ page"`
}

type xmlPage struct {
	Title    string      `xml:"http://www.mediawiki.org/xml/export-0.11/ title"`
	Revision xmlRevision `xml:"http://www.mediawiki.org/xml/export-0.11/ revision"`
}

type xmlRevision struct {
	Text string `xml:"http://www.mediawiki.org/xml/export-0.11/ text"`
}

// Load reads the export file at path and returns its pages in document
// order. The order determines downstream processing and progress reporting.
func Load(path string) ([]models.PageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dump file %s: %w", path, err)
	}

	var export xmlExport
	if err := xml.Unmarshal(data, &export); err != nil {
		return nil, &ParseError{Err: err}
	}

	if len(export.Pages) == 0 {
		return nil, &EmptyDumpError{Tags: elementTags(data)}
	}

	pages := make([]models.PageRecord, 0, len(export.Pages))
	for _, p := range export.Pages {
		pages = append(pages, models.PageRecord{
			Title: p.Title,
			Text:  p.Revision.Text,
		})
	}
	return pages, nil
}

// elementTags collects the distinct element names in the document, in
// order of first appearance. Used for empty-dump diagnostics.
func elementTags(data []byte) []string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	seen := make(map[string]bool)
	var tags []string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok {
			if !seen[se.Name.Local] {
				seen[se.Name.Local] = true
				tags = append(tags, se.Name.Local)
			}
		}
	}
	return tags
}
