package generate

import (
	"strings"

	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

// SkipsCustomFields reports whether the custom-field pass must not run for
// the cipher type. Contacts and papers synthesize their custom fields from
// the record itself, so the pass would fill the same field twice.
func SkipsCustomFields(t types.CipherType) bool {
	return t == types.CipherTypeContact || t == types.CipherTypePaper
}

// CustomFields fills the page fields named by the cipher's custom fields
// and claims them before the type-specific generator runs. Only visible
// fields and spans take part.
func CustomFields(req *Request, m *match.Matcher) {
	if req.Cipher == nil || len(req.Cipher.Fields) == 0 || SkipsCustomFields(req.Cipher.Type()) {
		return
	}

	var (
		names  []string
		fields []types.CustomField
	)
	for _, cf := range req.Cipher.Fields {
		if strings.TrimSpace(cf.Name) == "" {
			continue
		}
		names = append(names, strings.ToLower(cf.Name))
		fields = append(fields, cf)
	}
	if len(names) == 0 {
		return
	}

	for _, field := range req.Page.Fields {
		if field.Disabled || req.Filled.Has(field.OpID) {
			continue
		}
		if !field.Viewable && !field.IsSpan() {
			continue
		}
		idx := m.FindMatchingFieldIndex(field, names)
		if idx < 0 {
			continue
		}
		FillField(req, field, customFieldValue(req.Cipher, fields[idx]))
	}
}

func customFieldValue(c *types.Cipher, cf types.CustomField) string {
	if cf.Type == types.CustomFieldLinked {
		v, _ := c.LinkedFieldValue(cf.LinkedID)
		return v
	}
	if cf.Value == nil {
		if cf.Type == types.CustomFieldBoolean {
			return "false"
		}
		return ""
	}
	return *cf.Value
}
