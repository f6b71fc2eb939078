package usecase

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/m-mizutani/scout/pkg/domain/model"
	"github.com/m-mizutani/scout/pkg/utils/filetype"
)

// Selectors of the upstream search result markup
const (
	selectorResultAnchor = "a[href]"
	selectorResultTitle  = ".title-container span"
	selectorResultSize   = "span.inline-block"
)

func loadDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// lastSegment returns the text after the last '/'
func lastSegment(s string) string {
	return s[strings.LastIndex(s, "/")+1:]
}

// ParseResults extracts search hits from an upstream results page. Anchors
// lacking a title, a size or a non-empty trailing href segment are dropped.
// Document order is kept and duplicates are not removed.
func ParseResults(html string) []model.SearchResult {
	results := []model.SearchResult{}
	if strings.TrimSpace(html) == "" {
		return results
	}

	doc, err := loadDocument(html)
	if err != nil {
		return results
	}

	doc.Find(selectorResultAnchor).Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find(selectorResultTitle).Text())
		size := strings.TrimSpace(s.Find(selectorResultSize).Text())
		href, _ := s.Attr("href")
		link := lastSegment(href)

		if title == "" || size == "" || link == "" {
			return
		}

		results = append(results, model.SearchResult{
			Name:     title,
			Size:     size,
			Link:     link,
			FileType: string(filetype.Classify(title)),
		})
	})

	return results
}
