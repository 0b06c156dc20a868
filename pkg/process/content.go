package process

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"mailsweep/pkg/models"
)

// PageParser transforms raw HTML into text content and the page's raw
// hyperlink values. Implementations are best-effort: malformed markup is
// tolerated, and a total parse failure yields an empty result rather than
// an error.
type PageParser interface {
	Parse(html string) models.ParseResult
}

// HTMLParser extracts text and links using goquery.
type HTMLParser struct {
	log *logrus.Entry
}

// NewHTMLParser creates an HTMLParser
func NewHTMLParser(log *logrus.Entry) *HTMLParser {
	return &HTMLParser{log: log}
}

// Parse extracts the visible text content and all a[href] values from the
// document, in document order. Script, style and noscript subtrees are
// excluded from the text since addresses inside them are never rendered.
func (p *HTMLParser) Parse(html string) models.ParseResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		p.log.Debugf("HTML parse failed: %v", err)
		return models.ParseResult{}
	}

	// Collect raw hrefs before touching the document
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return // Skip empty hrefs
		}
		links = append(links, href)
	})

	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		// Fragment without a body element; fall back to the whole document
		text = doc.Text()
	}

	return models.ParseResult{Text: text, Links: links}
}
