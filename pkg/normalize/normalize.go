// Package normalize repairs raw MediaWiki markup into a form the external
// converter can parse. The non-template path is an ordered list of named
// rewrite rules; ordering matters, later rules assume earlier ones ran.
package normalize

import (
	"strings"

	"wiki2md/models"
)

// Normalizer rewrites one page's wikitext. Safe to reuse across pages; all
// per-page state travels in the PageMeta argument.
type Normalizer struct {
	// Flatten rewrites link targets into underscore-joined flat names,
	// matching the flattened file layout.
	Flatten bool

	// LegacyURLFix enables the bracketed-URL escaping workaround for
	// converter versions at or below 2.0.2.
	LegacyURLFix bool
}

var angleEntities = strings.NewReplacer("&lt;", "<", "&gt;", ">")

// Clean rewrites raw wikitext and reports whether the page was classified
// as a template page.
func (n *Normalizer) Clean(text string, meta models.PageMeta) (string, bool) {
	text = angleEntities.Replace(text)

	isTemplate := IsTemplate(text)
	if isTemplate {
		text = cleanTemplate(text)
	} else {
		for _, r := range tableRules {
			text = r.apply(text)
		}
	}

	if n.LegacyURLFix {
		text = legacyURLFix(text)
	}

	lc := linkCleaner{flatten: n.Flatten, meta: meta}
	return lc.rewriteAll(text), isTemplate
}

// IsTemplate classifies a page as a template when it contains a noinclude
// tag together with a double-brace pair. This is a heuristic, not a
// namespace check: ordinary pages containing all three substrings are
// misclassified. Known limitation.
func IsTemplate(text string) bool {
	return strings.Contains(text, "<noinclude>") &&
		strings.Contains(text, "{{") &&
		strings.Contains(text, "}}")
}

// cleanTemplate strips noinclude/includeonly tag pairs while keeping their
// content, collapses triple braces to single, then drops single braces
// that are not part of a double-brace structure. Template invocation
// syntax ("{{ ... }}") survives for the documentation renderer.
func cleanTemplate(text string) string {
	text = noincludeTag.ReplaceAllString(text, "")
	text = includeonlyTag.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "{{{", "{")
	text = strings.ReplaceAll(text, "}}}", "}")
	return stripLoneBraces(text)
}

// stripLoneBraces removes every "{" or "}" that has no identical neighbor,
// leaving "{{" and "}}" pairs intact. Only used on template pages, where
// table markers do not occur.
func stripLoneBraces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '{' || c == '}' {
			var prev, next byte
			if i > 0 {
				prev = s[i-1]
			}
			if i+1 < len(s) {
				next = s[i+1]
			}
			if prev != c && next != c {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
