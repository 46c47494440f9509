package types

import (
	"encoding/json"
	"slices"
)

// Field is one form element scraped from a page.
//
// Every textual attribute is optional; an empty string means the page did
// not expose it and matchers treat it as "no match".
type Field struct {
	OpID             string      `json:"opid"`
	ElementNumber    int         `json:"elementNumber"`
	TagName          string      `json:"tagName"`
	Type             string      `json:"type"`
	HTMLID           string      `json:"htmlID"`
	HTMLName         string      `json:"htmlName"`
	HTMLClass        string      `json:"htmlClass"`
	Title            string      `json:"title"`
	Placeholder      string      `json:"placeholder"`
	Value            string      `json:"value"`
	LabelLeft        string      `json:"label-left"`
	LabelRight       string      `json:"label-right"`
	LabelTop         string      `json:"label-top"`
	LabelTag         string      `json:"label-tag"`
	LabelAria        string      `json:"label-aria"`
	LabelData        string      `json:"label-data"`
	AutoCompleteType string      `json:"autoCompleteType"`
	DataStripe       string      `json:"data-stripe"`
	DataRecurly      string      `json:"data-recurly"`
	Viewable         bool        `json:"viewable"`
	Readonly         bool        `json:"readonly"`
	Disabled         bool        `json:"disabled"`
	MaxLength        int         `json:"maxLength"`
	SelectInfo       *SelectInfo `json:"selectInfo,omitempty"`
	Form             string      `json:"form,omitempty"`

	// Set by the field qualifier, kept for the lifetime of the field's
	// registration in a session.
	FieldQualifier     FieldQualifier `json:"fieldQualifier,omitempty"`
	FilledByCipherType CipherType     `json:"filledByCipherType,omitempty"`
}

// Attribute names accepted by Field.Attr.
const (
	AttrAutoCompleteType = "autoCompleteType"
	AttrDataStripe       = "data-stripe"
	AttrDataRecurly      = "data-recurly"
	AttrHTMLName         = "htmlName"
	AttrHTMLID           = "htmlID"
	AttrHTMLClass        = "htmlClass"
	AttrTitle            = "title"
	AttrType             = "type"
	AttrPlaceholder      = "placeholder"
	AttrLabelLeft        = "label-left"
	AttrLabelRight       = "label-right"
	AttrLabelTop         = "label-top"
	AttrLabelTag         = "label-tag"
	AttrLabelAria        = "label-aria"
	AttrLabelData        = "label-data"
)

// Attr returns the textual attribute with the given scrape name, or "".
func (f *Field) Attr(name string) string {
	if f == nil {
		return ""
	}
	switch name {
	case AttrAutoCompleteType:
		return f.AutoCompleteType
	case AttrDataStripe:
		return f.DataStripe
	case AttrDataRecurly:
		return f.DataRecurly
	case AttrHTMLName:
		return f.HTMLName
	case AttrHTMLID:
		return f.HTMLID
	case AttrHTMLClass:
		return f.HTMLClass
	case AttrTitle:
		return f.Title
	case AttrType:
		return f.Type
	case AttrPlaceholder:
		return f.Placeholder
	case AttrLabelLeft:
		return f.LabelLeft
	case AttrLabelRight:
		return f.LabelRight
	case AttrLabelTop:
		return f.LabelTop
	case AttrLabelTag:
		return f.LabelTag
	case AttrLabelAria:
		return f.LabelAria
	case AttrLabelData:
		return f.LabelData
	default:
		return ""
	}
}

// IsSpan reports whether the field is a span element. Spans only ever
// receive custom field values.
func (f *Field) IsSpan() bool {
	return f.TagName == "span"
}

// IsHidden reports whether the field is effectively invisible to the user.
func (f *Field) IsHidden() bool {
	return f.Readonly || f.Disabled || !f.Viewable
}

// HasOptions reports whether the field carries select options.
func (f *Field) HasOptions() bool {
	return f.SelectInfo != nil && len(f.SelectInfo.Options) > 0
}

// SelectInfo holds the options of a select element as [value, text] pairs.
type SelectInfo struct {
	Options [][]string `json:"options"`
}

// Value returns the value of option i, or "" when absent.
func (s *SelectInfo) Value(i int) string {
	return s.part(i, 0)
}

// Text returns the visible text of option i, or "" when absent.
func (s *SelectInfo) Text(i int) string {
	return s.part(i, 1)
}

func (s *SelectInfo) part(i, j int) string {
	if s == nil || i < 0 || i >= len(s.Options) || j >= len(s.Options[i]) {
		return ""
	}
	return s.Options[i][j]
}

// Form describes a form element that groups fields.
type Form struct {
	OpID       string `json:"opid"`
	HTMLID     string `json:"htmlID"`
	HTMLName   string `json:"htmlName"`
	HTMLAction string `json:"htmlAction"`
	HTMLMethod string `json:"htmlMethod"`
	HTMLClass  string `json:"htmlClass,omitempty"`
}

// PageDetails is the field inventory of one document, in DOM order.
type PageDetails struct {
	Title              string          `json:"title"`
	URL                string          `json:"url"`
	DocumentURL        string          `json:"documentUrl"`
	DocumentUUID       string          `json:"documentUUID"`
	Forms              map[string]Form `json:"forms"`
	Fields             []*Field        `json:"fields"`
	CollectedTimestamp int64           `json:"collectedTimestamp"`
}

// Field returns the field with the given opid, or nil.
func (p *PageDetails) Field(opid string) *Field {
	if p == nil {
		return nil
	}
	for _, f := range p.Fields {
		if f != nil && f.OpID == opid {
			return f
		}
	}
	return nil
}

// UnmarshalJSON decodes page details, dropping null field entries.
func (p *PageDetails) UnmarshalJSON(data []byte) error {
	type plain PageDetails
	if err := json.Unmarshal(data, (*plain)(p)); err != nil {
		return err
	}
	p.Fields = slices.DeleteFunc(p.Fields, func(f *Field) bool { return f == nil })
	return nil
}

// Compacted returns p, or a shallow copy of p without its nil fields when
// it has some.
func (p *PageDetails) Compacted() *PageDetails {
	if p == nil || !slices.Contains(p.Fields, nil) {
		return p
	}
	c := *p
	c.Fields = make([]*Field, 0, len(p.Fields))
	for _, f := range p.Fields {
		if f != nil {
			c.Fields = append(c.Fields, f)
		}
	}
	return &c
}

// HasForm reports whether formOpID names a form of the page.
func (p *PageDetails) HasForm(formOpID string) bool {
	if p == nil || formOpID == "" {
		return false
	}
	_, ok := p.Forms[formOpID]
	return ok
}
