package usecase

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractor pulls one candidate value out of a parsed page. An empty string
// means "no match, try the next one".
type extractor struct {
	name string
	fn   func(doc *goquery.Document) string
}

// firstMatch runs extractors in order and returns the first non-empty value
// together with the name of the extractor that produced it.
func firstMatch(doc *goquery.Document, extractors []extractor) (string, string) {
	for _, ex := range extractors {
		if v := ex.fn(doc); v != "" {
			return v, ex.name
		}
	}
	return "", ""
}

func firstAttr(selector, attr string) extractor {
	return extractor{
		name: selector,
		fn: func(doc *goquery.Document) string {
			v, _ := doc.Find(selector).First().Attr(attr)
			return strings.TrimSpace(v)
		},
	}
}

// downloadURLExtractors lists detail page heuristics for the direct link,
// most specific first.
var downloadURLExtractors = []extractor{
	firstAttr("a.block", "href"),
	firstAttr("a.button", "href"),
	firstAttr("a[download]", "href"),
	{name: "a:download-text", fn: anyDownloadAnchor},
}

func anyDownloadAnchor(doc *goquery.Document) string {
	var found string
	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return true
		}
		text := strings.ToLower(s.Text())
		if strings.Contains(text, "download") || strings.Contains(href, "download") {
			found = href
			return false
		}
		return true
	})
	return found
}

const selectorDetailFilename = "p.break-all"

func extractFilename(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find(selectorDetailFilename).Text())
}

var sizePattern = regexp.MustCompile(`[\d.]+ [KMG]B`)

func hasSizeUnit(text string) bool {
	return strings.Contains(text, "MB") || strings.Contains(text, "GB") || strings.Contains(text, "KB")
}

// detailSizeExtractors lists detail page heuristics for the file size. The
// search-page lookup and the literal fallback are handled by the resolver.
var detailSizeExtractors = []extractor{
	{name: "size-classes", fn: sizeByClass},
	{name: "size-pattern", fn: sizeByPattern},
}

func sizeByClass(doc *goquery.Document) string {
	var found string
	doc.Find(".ml-2, .size-info, .file-info, .file-size, span.text-sm").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text != "" && hasSizeUnit(text) {
			found = text
			return false
		}
		return true
	})
	return found
}

func sizeByPattern(doc *goquery.Document) string {
	var found string
	doc.Find("p, span, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text == "" || !hasSizeUnit(text) {
			return true
		}
		if m := sizePattern.FindString(text); m != "" {
			found = m
			return false
		}
		return true
	})
	return found
}

// eachAnchorWithID calls fn for every anchor whose href contains id, in
// document order, until fn returns false.
func eachAnchorWithID(doc *goquery.Document, id string, fn func(s *goquery.Selection) bool) {
	if id == "" {
		return
	}
	doc.Find(selectorResultAnchor).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if !strings.Contains(href, id) {
			return true
		}
		return fn(s)
	})
}

// findListing returns title and size of the first search hit linking to id
// that carries both.
func findListing(doc *goquery.Document, id string) (string, string) {
	var title, size string
	eachAnchorWithID(doc, id, func(s *goquery.Selection) bool {
		t := strings.TrimSpace(s.Find(selectorResultTitle).Text())
		sz := strings.TrimSpace(s.Find(selectorResultSize).Text())
		if t != "" && sz != "" {
			title, size = t, sz
			return false
		}
		return true
	})
	return title, size
}

// findListingSize returns the size text of the first search hit linking to id
// that has a size element at all, even if the element is empty.
func findListingSize(doc *goquery.Document, id string) string {
	var size string
	eachAnchorWithID(doc, id, func(s *goquery.Selection) bool {
		el := s.Find(selectorResultSize)
		if el.Length() == 0 {
			return true
		}
		size = strings.TrimSpace(el.Text())
		return false
	})
	return size
}

// findListingTitle returns the title text of the first search hit linking to
// id that has a title element at all.
func findListingTitle(doc *goquery.Document, id string) string {
	var title string
	eachAnchorWithID(doc, id, func(s *goquery.Selection) bool {
		el := s.Find(selectorResultTitle)
		if el.Length() == 0 {
			return true
		}
		title = strings.TrimSpace(el.Text())
		return false
	})
	return title
}
