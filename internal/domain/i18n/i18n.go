package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type Language string

const (
	EN Language = "en"
	RU Language = "ru"
	CS Language = "cs"

	Default = EN
)

var (
	Supported = []Language{EN, RU, CS}

	ErrUnsupportedLanguage = errors.New("unsupported language")

	matcher = language.NewMatcher([]language.Tag{
		language.English,
		language.Russian,
		language.Czech,
	})
)

func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case EN, RU, CS:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

func (l Language) Valid() bool {
	_, err := ParseLanguage(string(l))
	return err == nil
}

// MatchAcceptLanguage picks the closest supported language for an
// Accept-Language header value.
func MatchAcceptLanguage(header string) Language {
	if strings.TrimSpace(header) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

// Text holds one string per language. Missing keys are allowed.
type Text map[Language]string

// Resolve returns the string for lang, then the English one, then "".
func (t Text) Resolve(lang Language) string {
	if v := t[lang]; v != "" {
		return v
	}
	return t[EN]
}

func Resolve(t Text, lang Language) string {
	return t.Resolve(lang)
}

func (t Text) Validate() error {
	for k := range t {
		if !k.Valid() {
			return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(k))
		}
	}
	return nil
}

func (t Text) Clone() Text {
	if t == nil {
		return nil
	}
	out := make(Text, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Blank reports whether no language has a non-whitespace value.
func (t Text) Blank() bool {
	for _, v := range t {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Empty returns a text with every supported key set to "".
func Empty() Text {
	return Text{EN: "", RU: "", CS: ""}
}

// Changed is broadcast when the active language changes.
type Changed struct {
	Language Language
}
