package render

import (
	"strconv"
	"strings"
)

// legacyVersionThreshold is the last pandoc release with the bracketed-URL
// rendering defect the normalizer works around.
const legacyVersionThreshold = "2.0.2"

// parseVersion extracts the dotted version from `pandoc --version` output,
// e.g. "pandoc 2.9.2.1" -> "2.9.2.1". Returns "" when the first line has
// no version field.
func parseVersion(out string) string {
	line, _, _ := strings.Cut(out, "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	return fields[len(fields)-1]
}

// compareVersions compares dotted version strings numerically, so "2.10"
// sorts after "2.0.2". Missing segments count as zero.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var ai, bi int
		if i < len(as) {
			ai, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bi, _ = strconv.Atoi(bs[i])
		}
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
	}
	return 0
}
