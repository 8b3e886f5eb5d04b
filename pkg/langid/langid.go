// Package langid detects the language of converted page bodies for the
// front-matter lang field.
package langid

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// candidates is the fixed set of languages considered. A smaller set keeps
// detection reliable on short pages.
var candidates = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Russian,
	lingua.Japanese,
	lingua.Chinese,
}

// Detector wraps a lingua language detector built once per run.
type Detector struct {
	inner lingua.LanguageDetector
}

// New builds a detector over the candidate language set.
func New() *Detector {
	return &Detector{
		inner: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code of the dominant language. ok is false
// when no candidate is confident enough; callers omit the field then.
func (d *Detector) Detect(text string) (string, bool) {
	lang, ok := d.inner.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
