package match

import (
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/types"
)

// Matcher evaluates keyword names against field attributes. It caches the
// compiled patterns of "regex=" names and is safe for concurrent use.
type Matcher struct {
	log        *zap.Logger
	regexCache sync.Map
}

// NewMatcher creates a matcher. A nil logger discards regex errors.
func NewMatcher(log *zap.Logger) *Matcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{log: log}
}

type prefixedAttr struct {
	attr   string
	prefix string
}

// Attributes tried for "prefix=value" names, in order.
var prefixedAttributes = []prefixedAttr{
	{types.AttrHTMLID, "id"},
	{types.AttrHTMLName, "name"},
	{types.AttrLabelLeft, "label"},
	{types.AttrLabelRight, "label"},
	{types.AttrLabelTag, "label"},
	{types.AttrLabelAria, "label"},
	{types.AttrLabelTop, "label"},
	{types.AttrPlaceholder, "placeholder"},
}

// Attributes tried for plain names, in order.
var exactAttributes = []string{
	types.AttrHTMLID,
	types.AttrHTMLName,
	types.AttrLabelLeft,
	types.AttrLabelRight,
	types.AttrLabelTag,
	types.AttrLabelAria,
	types.AttrLabelTop,
	types.AttrPlaceholder,
}

// FindMatchingFieldIndex returns the index of the first name matching one
// of the field's attributes, or -1.
//
// A name of the form "id=x", "name=x", "label=x" or "placeholder=x" is
// first tried against that attribute only; every name is then tried as is
// against all attributes, which is where "regex=" and "csv=" names apply.
func (m *Matcher) FindMatchingFieldIndex(field *types.Field, names []string) int {
	for i, name := range names {
		if strings.Contains(name, "=") {
			for _, pa := range prefixedAttributes {
				if m.fieldPropertyIsPrefixMatch(field, pa.attr, name, pa.prefix) {
					return i
				}
			}
		}
		for _, attr := range exactAttributes {
			if m.fieldPropertyIsMatch(field, attr, name) {
				return i
			}
		}
	}
	return -1
}

func (m *Matcher) fieldPropertyIsPrefixMatch(field *types.Field, attr, name, prefix string) bool {
	val, ok := strings.CutPrefix(name, prefix+"=")
	if !ok {
		return false
	}
	return m.fieldPropertyIsMatch(field, attr, val)
}

func (m *Matcher) fieldPropertyIsMatch(field *types.Field, attr, name string) bool {
	fieldVal := field.Attr(attr)
	if fieldVal == "" {
		return false
	}
	fieldVal = lineBreaks.Replace(strings.TrimSpace(fieldVal))

	if pattern, ok := strings.CutPrefix(name, "regex="); ok {
		re, err := m.cachedRegex(pattern)
		if err != nil {
			m.log.Warn("Invalid regex field name", zap.String("pattern", pattern), zap.Error(err))
			return false
		}
		return re.MatchString(fieldVal)
	}
	if csv, ok := strings.CutPrefix(name, "csv="); ok {
		for _, val := range strings.Split(csv, ",") {
			if strings.ToLower(strings.TrimSpace(val)) == strings.ToLower(fieldVal) {
				return true
			}
		}
		return false
	}
	return strings.ToLower(fieldVal) == name
}

// cachedRegex compiles pattern case-insensitively, once.
func (m *Matcher) cachedRegex(pattern string) (*regexp.Regexp, error) {
	if cached, ok := m.regexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}

	m.regexCache.Store(pattern, re)
	return re, nil
}
