package normalize

import (
	"regexp"
	"strings"

	"wiki2md/models"
)

var (
	wikiLinkPattern = regexp.MustCompile(`\[\[(.+?)\]\]`)
	schemePrefix    = regexp.MustCompile(`^https?://`)
	relativePrefix  = regexp.MustCompile(`^\.+/`)
	slashRun        = regexp.MustCompile(`/+`)
)

// linkCleaner rewrites the body of every [[...]] wiki link for one page.
type linkCleaner struct {
	flatten bool
	meta    models.PageMeta
}

func (lc linkCleaner) rewriteAll(text string) string {
	return wikiLinkPattern.ReplaceAllStringFunc(text, func(m string) string {
		body := wikiLinkPattern.FindStringSubmatch(m)[1]
		return lc.clean(body)
	})
}

// clean rewrites a single link body. A raw URL inside wiki-link brackets
// is malformed markup; it comes back as a single-bracket literal rather
// than an error. Everything else stays in wiki-link syntax for the
// external converter to render.
func (lc linkCleaner) clean(body string) string {
	if schemePrefix.MatchString(body) {
		return "[" + body + "]"
	}

	// Relative paths become absolute under the page's own URL.
	if relativePrefix.MatchString(body) {
		body = lc.meta.URL + "/" + body
	}

	link, linkText, found := strings.Cut(body, "|")
	if !found {
		linkText = body
	}

	link = NormalizePath(strings.TrimSpace(link))
	if lc.flatten {
		link = strings.ReplaceAll(link, "/", "_")
	}
	link = strings.ReplaceAll(link, " ", "_")

	return "[[" + link + "|" + strings.TrimSpace(linkText) + "]]"
}

// NormalizePath normalizes a filesystem-style link path: backslashes
// become forward slashes, repeated slashes collapse, and "." / ".."
// segments resolve against an empty base. A leading ".." past the root is
// a no-op, not an error. Idempotent.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = slashRun.ReplaceAllString(path, "/")

	var parts []string
	for _, segment := range strings.Split(path, "/") {
		switch segment {
		case ".":
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, segment)
		}
	}
	return strings.Join(parts, "/")
}
