package scraper

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion
const MaxHTMLSize = 10 * 1024 * 1024

// ValidateHTML checks HTML size and returns error if too large
func ValidateHTML(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("html content required")
	}
	if len(data) > MaxHTMLSize {
		return fmt.Errorf("html exceeds maximum size of %d bytes", MaxHTMLSize)
	}
	return nil
}

// DetectCharset detects and returns charset from HTML bytes. Valid UTF-8
// is reported as such, then a BOM or <meta> declaration is honored before
// the statistical detector runs. Declarations of windows-1252, the HTML
// fallback, are left to the detector.
func DetectCharset(data []byte) string {
	if utf8.Valid(data) {
		return "utf-8"
	}
	if _, name, _ := charset.DetermineEncoding(data, ""); name != "" && name != "windows-1252" {
		return name
	}
	detector := chardet.NewHtmlDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// Document is a parsed page, usable both with CSS selectors and XPath.
type Document struct {
	Root *html.Node
	*goquery.Document
}

// LoadDocument parses HTML with automatic charset detection.
func LoadDocument(data []byte) (*Document, error) {
	if err := ValidateHTML(data); err != nil {
		return nil, err
	}

	var r io.Reader = bytes.NewReader(data)
	if cs := DetectCharset(data); cs != "utf-8" {
		decoded, err := charset.NewReader(r, "text/html; charset="+cs)
		if err == nil {
			r = decoded
		} else {
			r = bytes.NewReader(data)
		}
	}

	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{Root: root, Document: goquery.NewDocumentFromNode(root)}, nil
}

// NormalizeWhitespace collapses multiple spaces into one
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
