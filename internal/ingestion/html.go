package ingestion

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector lists elements that never hold CV or job description content
const noiseSelector = "script, style, noscript, template, nav, footer, iframe, svg, .ad, .advertisement, .cookie-banner, .popup"

// blockSelector lists elements that end a line of text
const blockSelector = "p, div, li, tr, h1, h2, h3, h4, h5, h6, section, article, header, dt, dd, blockquote, pre"

// contentSelectors are tried in order; the first match becomes the extraction root.
func contentSelectors() []string {
	return []string{
		".job-description",
		"#job-description",
		".resume",
		"#resume",
		".cv",
		"main",
		"article",
		"#content",
		".content",
	}
}

// extractHTML keeps the text of the main content region with one line per block element.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find(blockSelector).AppendHtml("\n")

	var root *goquery.Selection
	for _, selector := range contentSelectors() {
		if selection := doc.Find(selector); selection.Length() > 0 {
			root = selection.First()
			break
		}
	}
	if root == nil {
		root = doc.Find("body")
	}

	return root.Text(), nil
}
