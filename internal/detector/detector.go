// Package detector wraps lingua-go language detection, used to resolve
// --from-lang auto from a sample of the source tree's prose.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"
)

// Detector identifies the language of a text sample. Building the
// underlying lingua detector is expensive; reuse the instance.
type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the ISO 639-1 code of the detected language.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return lang.IsoCode639_1().String(), true
}
