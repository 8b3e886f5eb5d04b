package normalize

import (
	"regexp"
	"strings"
)

// rule is one named rewrite step. Rules run in the order listed in
// tableRules; several later rules depend on the output shape of earlier
// ones (the balancer guarantees every "{|" has a matching "|}" before the
// Markdown rewrite runs).
type rule struct {
	name  string
	apply func(string) string
}

// tableRules is the non-template rewrite pipeline.
var tableRules = []rule{
	{"clean-table-start", cleanTableStart},
	{"drop-table-attributes", dropTableAttributes},
	{"unwrap-braces", unwrapBraces},
	{"balance-tables", balanceTables},
	{"collapse-overclosed-tables", collapseOverclosed},
	{"drop-scope-rows", dropScopeRows},
	{"normalize-row-markers", normalizeRowMarkers},
	{"trim-row-trailing-space", trimRowTrailingSpace},
	{"normalize-row-separators", normalizeRowSeparators},
	{"drop-separator-pipe", dropSeparatorPipe},
	{"trim-separator-space", trimSeparatorSpace},
	{"strip-break-tags", stripBreakTags},
	{"split-merged-cells", splitMergedCells},
	{"drop-empty-row-pairs", dropEmptyRowPairs},
	{"strip-stray-pipes", stripStrayPipes},
	{"tables-to-markdown", tablesToMarkdown},
}

var (
	noincludeTag   = regexp.MustCompile(`</?noinclude>`)
	includeonlyTag = regexp.MustCompile(`</?includeonly>`)

	tableStartPattern = regexp.MustCompile(`\{\|(.*)\n`)
	classAttrPattern  = regexp.MustCompile(`class="[^"]*"`)
	tableAttrPattern  = regexp.MustCompile(`\|\s*(?:cellspacing|cellpadding|border|style|width|align|summary)="[^"]+"`)

	tripleBracePattern = regexp.MustCompile(`\{\{\{([^}]+)\}\}+`)
	doubleBracePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)
	singleBracePattern = regexp.MustCompile(`\{([^|{}]+)\}`)

	overclosedPattern   = regexp.MustCompile(`\|\}\s*\}+`)
	scopeRowPattern     = regexp.MustCompile(`(?m)^[-!].*scope="row".*$`)
	rowMarkerPattern    = regexp.MustCompile(`(?m)^[-!]`)
	rowTrailingPattern  = regexp.MustCompile(`\|\s*\n`)
	rowSeparatorPattern = regexp.MustCompile(`\|-+`)
	separatorPipe       = regexp.MustCompile(`\|-\s*\|`)
	separatorSpace      = regexp.MustCompile(`\|-\s+`)
	breakTagPattern     = regexp.MustCompile(`<br\s*/?>`)
	mergedCellPattern   = regexp.MustCompile(`\|([^\n|]+)\|`)
	emptyRowPairPattern = regexp.MustCompile(`\|-\s*\|-`)

	tableBlockPattern = regexp.MustCompile(`(?s)\{\|(.*?)\|\}`)

	bracketedURLPattern = regexp.MustCompile(`\[(http.+?)\]`)
)

// cleanTableStart keeps only class attributes on a table-start line.
func cleanTableStart(text string) string {
	return tableStartPattern.ReplaceAllStringFunc(text, func(m string) string {
		attrs := tableStartPattern.FindStringSubmatch(m)[1]
		classes := classAttrPattern.FindAllString(attrs, -1)
		if len(classes) > 0 {
			return "{| " + strings.Join(classes, " ") + "\n"
		}
		return "{|\n"
	})
}

func dropTableAttributes(text string) string {
	return tableAttrPattern.ReplaceAllString(text, "")
}

// unwrapBraces strips triple, double and single curly-brace wrapping. The
// single-brace pattern excludes "|" so "{|" and "|}" table markers are
// never touched.
func unwrapBraces(text string) string {
	text = tripleBracePattern.ReplaceAllString(text, "$1")
	text = doubleBracePattern.ReplaceAllString(text, "$1")
	return singleBracePattern.ReplaceAllString(text, "$1")
}

// balanceTables scans line by line tracking an open-table counter. Table
// start and end lines are reduced to bare markers, "|}" without an open
// table is dropped, malformed "{|}" lines are dropped entirely, and one
// "|}" per still-open table is appended at the end.
func balanceTables(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	open := 0
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(stripped, "{|}"):
			// malformed table-like structure
		case strings.HasPrefix(stripped, "{|"):
			open++
			cleaned = append(cleaned, "{|")
		case strings.HasPrefix(stripped, "|}"):
			if open > 0 {
				open--
				cleaned = append(cleaned, "|}")
			}
		default:
			cleaned = append(cleaned, line)
		}
	}
	for ; open > 0; open-- {
		cleaned = append(cleaned, "|}")
	}
	return strings.Join(cleaned, "\n")
}

func collapseOverclosed(text string) string {
	return overclosedPattern.ReplaceAllString(text, "|}")
}

func dropScopeRows(text string) string {
	return scopeRowPattern.ReplaceAllString(text, "")
}

func normalizeRowMarkers(text string) string {
	return rowMarkerPattern.ReplaceAllString(text, "|")
}

func trimRowTrailingSpace(text string) string {
	return rowTrailingPattern.ReplaceAllString(text, "|\n")
}

func normalizeRowSeparators(text string) string {
	return rowSeparatorPattern.ReplaceAllString(text, "|-")
}

func dropSeparatorPipe(text string) string {
	return separatorPipe.ReplaceAllString(text, "|-")
}

func trimSeparatorSpace(text string) string {
	return separatorSpace.ReplaceAllString(text, "|-")
}

func stripBreakTags(text string) string {
	return breakTagPattern.ReplaceAllString(text, "")
}

// splitMergedCells puts cells that share a line onto their own lines.
func splitMergedCells(text string) string {
	return mergedCellPattern.ReplaceAllString(text, "|\n$1\n|")
}

func dropEmptyRowPairs(text string) string {
	return emptyRowPairPattern.ReplaceAllString(text, "|-")
}

// stripStrayPipes removes leading and trailing "|" from lines outside any
// {| ... |} block. Table interiors are left alone so the Markdown rewrite
// still sees its cell delimiters.
func stripStrayPipes(text string) string {
	lines := strings.Split(text, "\n")
	depth := 0
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "{|") {
			depth++
			continue
		}
		if strings.HasPrefix(stripped, "|}") {
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth > 0 {
			continue
		}
		lines[i] = stripStrayPipesLine(line)
	}
	return strings.Join(lines, "\n")
}

func stripStrayPipesLine(line string) string {
	trimmed := strings.TrimRight(line, " \t")
	if strings.HasSuffix(trimmed, "|") && !strings.HasSuffix(trimmed, "{|") {
		line = strings.TrimRight(trimmed[:len(trimmed)-1], " \t")
	}
	if rest, ok := strings.CutPrefix(line, "|"); ok {
		if !strings.HasPrefix(strings.TrimLeft(rest, " \t"), "}") {
			line = strings.TrimLeft(rest, " \t")
		}
	}
	return line
}

// tablesToMarkdown rewrites each balanced {| ... |} block into a Markdown
// table: rows split on "|-", cells split on "|", empty cells dropped, and
// a header separator emitted after the first row.
func tablesToMarkdown(text string) string {
	return tableBlockPattern.ReplaceAllStringFunc(text, func(m string) string {
		content := tableBlockPattern.FindStringSubmatch(m)[1]
		rows := strings.Split(content, "|-")
		var out []string
		for i, row := range rows {
			var cells []string
			for _, cell := range strings.Split(row, "|") {
				if c := strings.TrimSpace(cell); c != "" {
					cells = append(cells, c)
				}
			}
			if len(cells) == 0 {
				continue
			}
			out = append(out, "| "+strings.Join(cells, " | ")+" |")
			if i == 0 {
				seps := make([]string, len(cells))
				for j := range seps {
					seps[j] = "---"
				}
				out = append(out, "|"+strings.Join(seps, "|")+"|")
			}
		}
		return strings.Join(out, "\n")
	})
}

var urlFixReplacer = strings.NewReplacer("=&", "=%20&", "= ", "=%20 ", ".&", ".%20&")

// legacyURLFix escapes characters inside bracketed raw URLs that pandoc
// 2.0.2 and older render incorrectly.
func legacyURLFix(text string) string {
	return bracketedURLPattern.ReplaceAllStringFunc(text, urlFixReplacer.Replace)
}
