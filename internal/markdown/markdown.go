// Package markdown renders report Markdown to HTML for email and the web
// dashboard.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// converter has raw HTML disabled, so report text from GitHub cannot inject
// markup.
var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// ToHTML converts Markdown to an HTML fragment.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// SafeHTML converts Markdown for use in html/template. Conversion errors
// fall back to the escaped source inside a <pre> block.
func SafeHTML(source string) template.HTML {
	out, err := ToHTML(source)
	if err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(source) + "</pre>") //nolint:gosec // escaped above
	}
	return template.HTML(out) //nolint:gosec // goldmark output with raw HTML disabled
}
