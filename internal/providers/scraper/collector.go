package scraper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/cozy/keys-autofill/internal/types"
)

const (
	// fieldSelector lists the elements that become fields. Input types
	// that can never hold a credential are filtered afterwards.
	fieldSelector = "input, select, textarea, span[data-bwautofill]"

	// DefaultMaxLength is reported when an element sets no usable maxlength.
	DefaultMaxLength = 999
)

var skippedInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"reset":  true,
	"button": true,
	"image":  true,
	"file":   true,
}

// Collector builds page details from an HTML document. It stands in for the
// in-page collection script: fields get opids in DOM order and carry the
// attributes and label texts the matchers look at.
type Collector struct {
	log  *zap.Logger
	text *bluemonday.Policy
	now  func() time.Time
}

// NewCollector creates a collector.
func NewCollector() *Collector {
	return &Collector{
		log:  zap.NewNop(),
		text: bluemonday.StrictPolicy(),
		now:  time.Now,
	}
}

// WithLogger sets the logger.
func (c *Collector) WithLogger(log *zap.Logger) *Collector {
	if log != nil {
		c.log = log
	}
	return c
}

// Collect parses data and returns its field inventory. pageURL is recorded
// as both the page and the document URL.
func (c *Collector) Collect(data []byte, pageURL string) (*types.PageDetails, error) {
	doc, err := LoadDocument(data)
	if err != nil {
		return nil, err
	}

	details := &types.PageDetails{
		Title:              NormalizeWhitespace(doc.Find("title").First().Text()),
		URL:                pageURL,
		DocumentURL:        pageURL,
		DocumentUUID:       uuid.NewString(),
		Forms:              map[string]types.Form{},
		Fields:             []*types.Field{},
		CollectedTimestamp: c.now().UnixMilli(),
	}

	forms := c.collectForms(doc, details)
	labels := c.labelsFor(doc)

	doc.Find(fieldSelector).Each(func(_ int, s *goquery.Selection) {
		if ignored(s) {
			return
		}
		f := c.field(s, len(details.Fields))
		f.Form = forms.of(s)
		f.LabelTag = c.labelTag(s, labels)
		details.Fields = append(details.Fields, f)
	})

	c.log.Debug("Page details collected",
		zap.String("url", pageURL),
		zap.Int("forms", len(details.Forms)),
		zap.Int("fields", len(details.Fields)))

	return details, nil
}

func ignored(s *goquery.Selection) bool {
	if _, ok := s.Attr("data-bwignore"); ok {
		return true
	}
	return s.Is("input") && skippedInputTypes[inputType(s)]
}

func inputType(s *goquery.Selection) string {
	t := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
	if t == "" {
		return "text"
	}
	return t
}

func (c *Collector) field(s *goquery.Selection, n int) *types.Field {
	node := s.Get(0)
	f := &types.Field{
		OpID:             fmt.Sprintf("__%d", n),
		ElementNumber:    n,
		TagName:          node.Data,
		HTMLID:           s.AttrOr("id", ""),
		HTMLName:         s.AttrOr("name", ""),
		HTMLClass:        s.AttrOr("class", ""),
		Title:            s.AttrOr("title", ""),
		Placeholder:      s.AttrOr("placeholder", ""),
		AutoCompleteType: autocomplete(s),
		DataStripe:       s.AttrOr("data-stripe", ""),
		DataRecurly:      s.AttrOr("data-recurly", ""),
		LabelAria:        s.AttrOr("aria-label", ""),
		LabelData:        s.AttrOr("data-label", ""),
		LabelLeft:        c.leftLabel(node),
		LabelRight:       c.rightLabel(node),
		LabelTop:         c.topLabel(node),
		Viewable:         viewable(node),
		Readonly:         hasAttr(node, "readonly"),
		Disabled:         disabled(node),
		MaxLength:        maxLength(s),
	}

	switch node.Data {
	case "input":
		f.Type = inputType(s)
		f.Value = s.AttrOr("value", "")
	case "textarea":
		f.Type = "textarea"
		f.Value = s.Text()
	case "select":
		f.Type = "select-one"
		if _, multiple := s.Attr("multiple"); multiple {
			f.Type = "select-multiple"
		}
		f.SelectInfo, f.Value = selectInfo(s)
	case "span":
		f.Value = NormalizeWhitespace(s.Text())
	}
	return f
}

func autocomplete(s *goquery.Selection) string {
	for _, attr := range []string{"x-autocompletetype", "autocompletetype", "autocomplete"} {
		if v := strings.TrimSpace(s.AttrOr(attr, "")); v != "" {
			return strings.ToLower(v)
		}
	}
	return ""
}

func maxLength(s *goquery.Selection) int {
	n, err := strconv.Atoi(strings.TrimSpace(s.AttrOr("maxlength", "")))
	if err != nil || n < 0 || n > DefaultMaxLength {
		return DefaultMaxLength
	}
	return n
}

// selectInfo returns the [value, text] pairs of a select and the value of
// its selected option.
func selectInfo(s *goquery.Selection) (*types.SelectInfo, string) {
	info := &types.SelectInfo{Options: [][]string{}}
	var selected string
	s.Find("option").Each(func(i int, opt *goquery.Selection) {
		text := NormalizeWhitespace(opt.Text())
		value := opt.AttrOr("value", text)
		info.Options = append(info.Options, []string{value, text})
		if _, ok := opt.Attr("selected"); ok || i == 0 {
			selected = value
		}
	})
	return info, selected
}

type formIndex struct {
	byNode map[*html.Node]string
	byID   map[string]string
}

func (c *Collector) collectForms(doc *Document, details *types.PageDetails) formIndex {
	idx := formIndex{byNode: map[*html.Node]string{}, byID: map[string]string{}}
	doc.Find("form").Each(func(i int, s *goquery.Selection) {
		opid := fmt.Sprintf("__form__%d", i)
		form := types.Form{
			OpID:       opid,
			HTMLID:     s.AttrOr("id", ""),
			HTMLName:   s.AttrOr("name", ""),
			HTMLAction: s.AttrOr("action", ""),
			HTMLMethod: strings.ToLower(s.AttrOr("method", "get")),
			HTMLClass:  s.AttrOr("class", ""),
		}
		details.Forms[opid] = form
		idx.byNode[s.Get(0)] = opid
		if form.HTMLID != "" {
			idx.byID[form.HTMLID] = opid
		}
	})
	return idx
}

// of returns the opid of the form owning s: the one named by its form
// attribute, else the closest enclosing form.
func (idx formIndex) of(s *goquery.Selection) string {
	if id := s.AttrOr("form", ""); id != "" {
		if opid, ok := idx.byID[id]; ok {
			return opid
		}
	}
	if form := s.Closest("form"); form.Length() > 0 {
		return idx.byNode[form.Get(0)]
	}
	return ""
}
