package render

import "strings"

// TemplateDoc renders a cleaned template page as Markdown documentation,
// independent of the external converter. Lines starting with "This is the"
// become subsection headings, <pre> blocks become a fenced "Template
// Usage" section, and every "name=value" line inside a template invocation
// contributes a documented parameter.
func TemplateDoc(text string) string {
	lines := strings.Split(text, "\n")
	out := []string{"# Template Documentation\n"}
	inTemplate := false
	var params []string

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(stripped, "This is the"):
			out = append(out, "## "+stripped+"\n")
		case strings.HasPrefix(stripped, "<pre>"):
			out = append(out, "## Template Usage\n```")
		case strings.HasPrefix(stripped, "</pre>"):
			out = append(out, "```\n")
		case strings.HasPrefix(stripped, "{{"):
			inTemplate = true
			out = append(out, stripped)
		case strings.HasPrefix(stripped, "}}"):
			inTemplate = false
			out = append(out, stripped)
		case inTemplate && strings.Contains(stripped, "="):
			name, _, _ := strings.Cut(stripped, "=")
			params = append(params, strings.Trim(name, "| "))
			out = append(out, stripped)
		case stripped != "":
			out = append(out, stripped)
		}
	}

	if len(params) > 0 {
		out = append(out, "\n## Template Parameters")
		for _, p := range params {
			out = append(out, "- `"+p+"`")
		}
	}
	return strings.Join(out, "\n")
}
