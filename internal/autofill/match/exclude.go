package match

import (
	"regexp"
	"slices"
	"strings"

	"github.com/cozy/keys-autofill/internal/autofill/keywords"
	"github.com/cozy/keys-autofill/internal/types"
)

var (
	camelCaseBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	ignoredSeparators = regexp.MustCompile(`[\s_-]`)
)

// IsSearchField reports whether the field looks like a site search box.
// The type, name, id and placeholder are split on camelCase boundaries and
// non-letters, and each word is looked up in the search keywords.
func IsSearchField(field *types.Field) bool {
	for _, attr := range []string{field.Type, field.HTMLName, field.HTMLID, field.Placeholder} {
		if attr == "" {
			continue
		}
		words := strings.FieldsFunc(
			strings.ToLower(camelCaseBoundary.ReplaceAllString(attr, "$1 $2")),
			func(r rune) bool { return r < 'a' || r > 'z' },
		)
		for _, w := range words {
			if slices.Contains(keywords.SearchFieldNames, w) {
				return true
			}
		}
	}
	return false
}

// FieldHasDisqualifyingAttributeValue reports whether the id, name or
// placeholder carries an ignore-list marker such as "captcha".
func FieldHasDisqualifyingAttributeValue(field *types.Field) bool {
	for _, attr := range []string{field.HTMLID, field.HTMLName, field.Placeholder} {
		cleaned := cleanAttribute(attr)
		if cleaned != "" && containsAny(cleaned, keywords.FieldIgnoreList) {
			return true
		}
	}
	return false
}

// ValueIsLikePassword reports whether an attribute value names a password
// input without naming a known false positive.
func ValueIsLikePassword(value string) bool {
	cleaned := cleanAttribute(value)
	if !strings.Contains(cleaned, "password") {
		return false
	}
	return !containsAny(cleaned, keywords.PasswordFieldExcludeList)
}

// IsLikePasswordField reports whether a text input's id, name or
// placeholder looks like a password.
func IsLikePasswordField(field *types.Field) bool {
	if field.Type != "text" {
		return false
	}
	return ValueIsLikePassword(field.HTMLID) ||
		ValueIsLikePassword(field.HTMLName) ||
		ValueIsLikePassword(field.Placeholder)
}

// IsExcludedType reports whether the field's type matches one of
// excludedTypes.
func IsExcludedType(field *types.Field, excludedTypes []string) bool {
	return IsFieldMatch(field.Type, excludedTypes, nil)
}

// IsExcludedFieldType reports whether the field can never be autofilled
// with a cipher attribute: spans, excluded input types and search boxes.
func IsExcludedFieldType(field *types.Field, excludedTypes []string) bool {
	if field.IsSpan() {
		return true
	}
	if IsExcludedType(field, excludedTypes) {
		return true
	}
	return IsSearchField(field)
}

func cleanAttribute(value string) string {
	return ignoredSeparators.ReplaceAllString(strings.ToLower(value), "")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
