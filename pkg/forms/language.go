package forms

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectLanguage guesses the ISO 639-1 code of composed content so the
// created entity carries its language from the start. Detection models load
// lazily, the first composition pays the cost. Returns an empty string for
// text too short or ambiguous to classify.
func DetectLanguage(text string) string {
	if len(strings.TrimSpace(text)) < 8 {
		return ""
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Italian,
				lingua.Portuguese,
				lingua.Dutch,
				lingua.Japanese,
				lingua.Chinese,
			).
			Build()
	})

	language, ok := detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(language.IsoCode639_1().String())
}
