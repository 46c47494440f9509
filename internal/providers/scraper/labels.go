package scraper

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// maxLabelClimb bounds how many ancestors are searched for a left label.
const maxLabelClimb = 3

// labelsFor indexes the text of every <label for=...> by its target id.
func (c *Collector) labelsFor(doc *Document) map[string][]string {
	out := map[string][]string{}
	for _, n := range htmlquery.Find(doc.Root, "//label[@for]") {
		target := htmlquery.SelectAttr(n, "for")
		if t := c.textOf(n); t != "" && target != "" {
			out[target] = append(out[target], t)
		}
	}
	return out
}

// labelTag joins the labels pointing at the field and the label wrapping it.
func (c *Collector) labelTag(s *goquery.Selection, labels map[string][]string) string {
	var parts []string
	if id := s.AttrOr("id", ""); id != "" {
		parts = append(parts, labels[id]...)
	}
	if wrap := s.Closest("label"); wrap.Length() > 0 {
		if t := c.textOf(wrap.Get(0)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// leftLabel collects the text preceding n up to the previous form control,
// climbing to the parent while nothing is found.
func (c *Collector) leftLabel(n *html.Node) string {
	var parts []string
	cur := n
	for depth := 0; depth <= maxLabelClimb && cur != nil && !boundary(cur); depth++ {
		for sib := cur.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if hasControl(sib) {
				return strings.Join(parts, " ")
			}
			if t := c.textOf(sib); t != "" {
				parts = append([]string{t}, parts...)
			}
		}
		if len(parts) > 0 {
			break
		}
		cur = cur.Parent
	}
	return strings.Join(parts, " ")
}

// rightLabel collects the text following n up to the next form control.
func (c *Collector) rightLabel(n *html.Node) string {
	var parts []string
	for sib := n.NextSibling; sib != nil && !hasControl(sib); sib = sib.NextSibling {
		if t := c.textOf(sib); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// topLabel returns, for a field inside a table cell, the text of the cell
// at the same column in the previous row.
func (c *Collector) topLabel(n *html.Node) string {
	cell := n.Parent
	for cell != nil && cell.Data != "td" && cell.Data != "th" {
		if boundary(cell) {
			return ""
		}
		cell = cell.Parent
	}
	if cell == nil || cell.Parent == nil || cell.Parent.Data != "tr" {
		return ""
	}

	col := elementIndex(cell)
	prev := cell.Parent.PrevSibling
	for prev != nil && prev.Type != html.ElementNode {
		prev = prev.PrevSibling
	}
	if prev == nil || prev.Data != "tr" {
		return ""
	}
	i := 0
	for cand := prev.FirstChild; cand != nil; cand = cand.NextSibling {
		if cand.Type != html.ElementNode {
			continue
		}
		if i == col {
			return c.textOf(cand)
		}
		i++
	}
	return ""
}

// textOf returns the visible text of n without markup, scripts or styles.
func (c *Collector) textOf(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return NormalizeWhitespace(html.UnescapeString(c.text.Sanitize(buf.String())))
}

func elementIndex(n *html.Node) int {
	i := 0
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == html.ElementNode {
			i++
		}
	}
	return i
}

func boundary(n *html.Node) bool {
	switch n.Data {
	case "form", "body", "html", "table":
		return n.Type == html.ElementNode
	}
	return n.Type == html.DocumentNode
}

func hasControl(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "input", "select", "textarea", "button":
		return true
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if hasControl(child) {
			return true
		}
	}
	return false
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// viewable reports whether neither n nor an ancestor is hidden by the
// hidden attribute or an inline display/visibility style.
func viewable(n *html.Node) bool {
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if hasAttr(cur, "hidden") {
			return false
		}
		style := strings.ToLower(strings.ReplaceAll(htmlquery.SelectAttr(cur, "style"), " ", ""))
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
	}
	return true
}

// disabled reports whether n or an enclosing fieldset is disabled.
func disabled(n *html.Node) bool {
	if hasAttr(n, "disabled") {
		return true
	}
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && cur.Data == "fieldset" && hasAttr(cur, "disabled") {
			return true
		}
	}
	return false
}
