// Package render turns cleaned wikitext into the target output format,
// either through the external pandoc binary or, for template pages, a
// built-in documentation renderer.
package render

import (
	"fmt"
	"strings"
)

// Converter renders cleaned wikitext into the named target format. The
// pandoc subprocess sits behind this interface so tests can swap in a
// fake without spawning processes.
type Converter interface {
	Convert(text, format string) (string, error)
}

// ConversionError carries the external tool's diagnostic output from a
// non-zero exit.
type ConversionError struct {
	Stderr string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("pandoc: %s", strings.TrimSpace(e.Stderr))
}
