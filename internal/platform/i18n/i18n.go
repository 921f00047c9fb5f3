// Package i18n defines the languages the site supports.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var (
	english = language.MustParse("en-US")
	urdu    = language.MustParse("ur-PK")

	supported = []language.Tag{english, urdu}
	matcher   = language.NewMatcher(supported)
)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return english
}

// ParseTag parses value and reports whether it maps to a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Tag{}, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return language.Tag{}, false
	}
	return supported[index], true
}

// MatchTags returns the best supported tag for tags, or the default.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}

// Direction returns the text direction for tag.
func Direction(tag language.Tag) string {
	if base, _ := tag.Base(); base.String() == "ur" {
		return "rtl"
	}
	return "ltr"
}
