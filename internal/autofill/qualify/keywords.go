package qualify

import (
	"slices"
	"strings"

	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

// keywordAttributes are the attributes whose values make up a field's
// keyword data.
var keywordAttributes = []string{
	types.AttrHTMLID,
	types.AttrHTMLName,
	types.AttrHTMLClass,
	types.AttrTitle,
	types.AttrPlaceholder,
	types.AttrAutoCompleteType,
	types.AttrLabelData,
	types.AttrLabelAria,
	types.AttrLabelLeft,
	types.AttrLabelRight,
	types.AttrLabelTag,
	types.AttrLabelTop,
}

// fieldKeywords is the normalized keyword data of one field: the set of
// its attribute values, and the values joined for substring search.
type fieldKeywords struct {
	set    map[string]struct{}
	joined string
}

func newFieldKeywords(f *types.Field) fieldKeywords {
	kw := fieldKeywords{set: make(map[string]struct{})}
	var values []string
	for _, attr := range keywordAttributes {
		v := match.Normalize(f.Attr(attr))
		if v == "" {
			continue
		}
		kw.set[v] = struct{}{}
		values = append(values, v)
	}
	kw.joined = strings.Join(values, "|")
	return kw
}

// found reports whether one of keywords appears in the field data. Fuzzy
// search looks for substrings of the joined values, exact search for whole
// values.
func (kw fieldKeywords) found(keywords []string, fuzzy bool) bool {
	for _, k := range keywords {
		k = match.Normalize(k)
		if k == "" {
			continue
		}
		if fuzzy {
			if strings.Contains(kw.joined, k) {
				return true
			}
			continue
		}
		if _, ok := kw.set[k]; ok {
			return true
		}
	}
	return false
}

// autocompleteTokens splits an autocomplete attribute into its lowercase
// tokens ("section-x shipping email" gives three tokens).
func autocompleteTokens(f *types.Field) []string {
	return strings.Fields(strings.ToLower(f.AutoCompleteType))
}

// fieldContainsAutocompleteValues reports whether one of the field's
// autocomplete tokens is in values.
func fieldContainsAutocompleteValues(f *types.Field, values []string) bool {
	for _, token := range autocompleteTokens(f) {
		if slices.Contains(values, token) {
			return true
		}
	}
	return false
}
