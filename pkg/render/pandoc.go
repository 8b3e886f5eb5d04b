package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Pandoc invokes the pandoc binary as a blocking subprocess, once per
// page. No timeout is imposed; a hung pandoc hangs the run.
type Pandoc struct {
	version string
}

// NewPandoc verifies that pandoc is installed and queries its version
// once. The version gates the legacy URL workaround in the normalizer.
func NewPandoc() (*Pandoc, error) {
	out, err := exec.Command("pandoc", "--version").Output()
	if err != nil {
		return nil, fmt.Errorf("pandoc is not installed or not found in PATH: %w", err)
	}
	return &Pandoc{version: parseVersion(string(out))}, nil
}

// Version returns the dotted version string reported by the binary.
func (p *Pandoc) Version() string { return p.version }

// NeedsLegacyURLFix reports whether this pandoc has the bracketed-URL
// rendering defect present through version 2.0.2.
func (p *Pandoc) NeedsLegacyURLFix() bool {
	if p.version == "" {
		return false
	}
	return compareVersions(p.version, legacyVersionThreshold) <= 0
}

// Convert pipes text through pandoc from the mediawiki dialect to format.
func (p *Pandoc) Convert(text, format string) (string, error) {
	cmd := exec.Command("pandoc", "-f", "mediawiki", "-t", format)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ConversionError{Stderr: stderr.String()}
	}
	return stdout.String(), nil
}
