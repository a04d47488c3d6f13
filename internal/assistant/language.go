// Package assistant holds the screen state of the assistant and the flows
// that connect it to the recognition, synthesis, translation and face
// detection services.
package assistant

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// SourceLanguage is the language text is translated from
const SourceLanguage = "en"

// Language is a translation target
type Language int

const (
	Spanish Language = iota
	French
	Italian
)

// Languages lists the targets in display order
var Languages = []Language{Spanish, French, Italian}

var languageTags = map[Language]language.Tag{
	Spanish: language.Spanish,
	French:  language.French,
	Italian: language.Italian,
}

// Tag returns the BCP 47 tag of the language
func (l Language) Tag() language.Tag {
	if tag, ok := languageTags[l]; ok {
		return tag
	}
	return language.Spanish
}

// Code returns the ISO 639-1 code sent to the translation service
func (l Language) Code() string {
	base, _ := l.Tag().Base()
	return base.String()
}

// String returns the English name of the language
func (l Language) String() string {
	return display.Languages(language.English).Name(l.Tag())
}

// NativeName returns the name of the language in that language
func (l Language) NativeName() string {
	return display.Self.Name(l.Tag())
}

// Next returns the following language, wrapping around
func (l Language) Next() Language {
	return Languages[(l.index()+1)%len(Languages)]
}

// Prev returns the preceding language, wrapping around
func (l Language) Prev() Language {
	return Languages[(l.index()+len(Languages)-1)%len(Languages)]
}

func (l Language) index() int {
	for i, lang := range Languages {
		if lang == l {
			return i
		}
	}
	return 0
}

// ParseLanguage accepts a language code ("fr", "fr-CA") or English name ("French")
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, lang := range Languages {
		if strings.EqualFold(s, lang.String()) {
			return lang, nil
		}
	}

	tag, err := language.Parse(s)
	if err != nil {
		return Spanish, fmt.Errorf("unknown language %q", s)
	}
	base, _ := tag.Base()
	for _, lang := range Languages {
		if lang.Code() == base.String() {
			return lang, nil
		}
	}
	return Spanish, fmt.Errorf("unsupported target language %q, choose one of %s", s, supportedCodes())
}

func supportedCodes() string {
	codes := make([]string, 0, len(Languages))
	for _, lang := range Languages {
		codes = append(codes, lang.Code())
	}
	return strings.Join(codes, ", ")
}
