package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wesleyorama2/fetchkit/internal/resolve"
)

// KindDocument resolves a body into a *goquery.Document.
const KindDocument = "document"

// Document parses the response body as HTML.
func Document(res resolve.Response) (any, error) {
	text, err := res.Text()
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML document: %w", err)
	}
	return doc, nil
}

// Register installs the extension kinds of this package on r.
func Register(r *resolve.Resolver) {
	r.Register(KindDocument, Document)
}

// Select returns the trimmed text of every node matching selector.
func Select(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}
