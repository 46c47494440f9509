// Package scraper collects page details from HTML documents.
//
// The collector walks a parsed document the way the in-page collection
// script does: every input, select, textarea and span[data-bwautofill]
// becomes a field with an opid ("__0", "__1", ...) in DOM order, and every
// form gets a "__form__N" opid. Besides the raw attributes, each field
// carries the label texts the matchers read:
//   - label-tag: <label for=id> and wrapping <label> text
//   - label-left, label-right: text of the neighbouring nodes
//   - label-top: text of the cell above, for fields laid out in tables
//   - label-aria, label-data: aria-label and data-label attributes
//
// Built on:
//   - goquery: CSS selectors over the parsed tree
//   - htmlquery: XPath lookups (label[@for])
//   - bluemonday: markup stripping for label text
//   - chardet: charset detection of non UTF-8 input
//
// Example Usage:
//
//	details, err := scraper.NewCollector().Collect(html, "https://example.com/login")
package scraper
