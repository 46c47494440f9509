package match

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cozy/keys-autofill/internal/autofill/keywords"
	"github.com/cozy/keys-autofill/internal/types"
)

// MaxMatchedValueLength is the longest attribute value considered by
// IsFieldMatch. Longer values are prose, not field metadata.
const MaxMatchedValueLength = 100

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	lineBreaks      = strings.NewReplacer("\r\n", "", "\r", "", "\n", "")
)

// IsFieldMatch reports whether value matches one of options.
//
// value is trimmed, lowercased, stripped of accents and of every
// non-alphanumeric character; options are lowercased and stripped of
// hyphens. An option matches when it equals the value, or when it is
// listed in containsOptions (or containsOptions is nil) and the value
// contains it.
func IsFieldMatch(value string, options, containsOptions []string) bool {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > MaxMatchedValueLength {
		return false
	}
	value = normalizeValue(value)

	for _, option := range options {
		checkContains := containsOptions == nil || slices.Contains(containsOptions, option)
		option = strings.ReplaceAll(strings.ToLower(option), "-", "")
		if value == option || (checkContains && strings.Contains(value, option)) {
			return true
		}
	}
	return false
}

// Normalize applies the IsFieldMatch value normalization. It returns ""
// for values IsFieldMatch would reject outright.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > MaxMatchedValueLength {
		return ""
	}
	return normalizeValue(value)
}

func normalizeValue(value string) string {
	value = strings.ToLower(value)
	if stripped, _, err := transform.String(accentStripper(), value); err == nil {
		value = stripped
	}
	return nonAlphanumeric.ReplaceAllString(value, "")
}

// transform.Transformer is stateful, so a fresh chain is built per call.
func accentStripper() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

var fuzzyAttributes = []string{
	types.AttrHTMLID,
	types.AttrHTMLName,
	types.AttrLabelTag,
	types.AttrPlaceholder,
	types.AttrLabelLeft,
	types.AttrLabelTop,
	types.AttrLabelAria,
}

// FieldIsFuzzyMatch reports whether one of the field's id, name,
// placeholder or label attributes contains one of names.
func FieldIsFuzzyMatch(field *types.Field, names []string) bool {
	for _, attr := range fuzzyAttributes {
		if fuzzyMatch(names, field.Attr(attr)) {
			return true
		}
	}
	return false
}

func fuzzyMatch(options []string, value string) bool {
	if len(options) == 0 || value == "" {
		return false
	}
	value = strings.ToLower(strings.TrimSpace(lineBreaks.Replace(value)))
	for _, option := range options {
		if strings.Contains(value, option) {
			return true
		}
	}
	return false
}

// FieldAttrsContain reports whether one of the card attributes, spaces
// removed and lowercased, contains s. It is how expiry formats are sniffed.
func FieldAttrsContain(field *types.Field, s string) bool {
	return attrsContain(field, keywords.CardAttributesExtended, s, nil)
}

// FieldLabelsContain is FieldAttrsContain without htmlID and htmlName.
func FieldLabelsContain(field *types.Field, s string) bool {
	return attrsContain(field, keywords.CardAttributesExtended, s, func(attr string) bool {
		return attr != types.AttrHTMLID && attr != types.AttrHTMLName
	})
}

// FieldIdentifiersContain reports whether htmlID or htmlName contains s,
// with "_" read as "-".
func FieldIdentifiersContain(field *types.Field, s string) bool {
	if field == nil {
		return false
	}
	for _, val := range []string{field.HTMLID, field.HTMLName} {
		val = strings.ReplaceAll(strings.ToLower(strings.ReplaceAll(val, " ", "")), "_", "-")
		if val != "" && strings.Contains(val, s) {
			return true
		}
	}
	return false
}

func attrsContain(field *types.Field, attrs []string, s string, keep func(string) bool) bool {
	if field == nil {
		return false
	}
	for _, attr := range attrs {
		if keep != nil && !keep(attr) {
			continue
		}
		val := field.Attr(attr)
		if val == "" {
			continue
		}
		if strings.Contains(strings.ToLower(strings.ReplaceAll(val, " ", "")), s) {
			return true
		}
	}
	return false
}
