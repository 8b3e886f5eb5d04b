// Package writer persists converted pages under the output root.
package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"wiki2md/models"
)

// Writer owns the output directory tree for one run.
type Writer struct {
	// Output is the root directory files are written under.
	Output string

	// Flatten writes every page at the root using its underscore-joined
	// URL as the filename instead of nesting by directory.
	Flatten bool

	// AddMeta prepends a front-matter block to every file.
	AddMeta bool
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Permalink string `yaml:"permalink"`
	Lang      string `yaml:"lang,omitempty"`
}

// Write persists body for the given page, creating directories as needed
// (idempotent), and returns the path written. lang is only emitted when
// non-empty and AddMeta is set.
func (w *Writer) Write(meta models.PageMeta, body, lang string) (string, error) {
	dir := w.Output
	name := meta.Filename
	if w.Flatten {
		name = meta.URL
	} else if meta.Directory != "" {
		dir = filepath.Join(w.Output, meta.Directory)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	out := body
	if w.AddMeta {
		prefix, err := w.metadata(meta, lang)
		if err != nil {
			return "", err
		}
		out = prefix + body
	}

	path := filepath.Join(dir, name+".md")
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("error saving file %s: %w", meta.Title, err)
	}
	return path, nil
}

// metadata renders the front-matter block for a page.
func (w *Writer) metadata(meta models.PageMeta, lang string) (string, error) {
	b, err := yaml.Marshal(frontMatter{
		Title:     meta.Title,
		Permalink: "/" + meta.URL + "/",
		Lang:      lang,
	})
	if err != nil {
		return "", fmt.Errorf("encoding front matter for %s: %w", meta.Title, err)
	}
	return "---\n" + string(b) + "---\n\n", nil
}

// RenameIndexes moves <dir>.md to <dir>/index.md for every directory
// recorded during path resolution. This reconciles a title that doubles as
// both a leaf document and a section containing nested pages. Directories
// without a matching .md file are skipped.
func (w *Writer) RenameIndexes(dirs []string) error {
	for _, dir := range dirs {
		src := filepath.Join(w.Output, dir+".md")
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := filepath.Join(w.Output, dir, "index.md")
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("renaming %s to %s: %w", src, dst, err)
		}
	}
	return nil
}
