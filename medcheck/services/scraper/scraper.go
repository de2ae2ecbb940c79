// Package scraper extracts condition records from a public health site: a
// listing page of condition links, then one detail page per condition.
package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"medcheck/medcheck/errs"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// maxFieldChars bounds the symptoms and recommendations buckets. Matched
// section text beyond this is dropped.
const maxFieldChars = 1000

// recommendationKeywords classify a section heading into the
// recommendations bucket. "symptom" is checked first; a heading matching
// both lands in symptoms only.
var recommendationKeywords = []string{"treatment", "self-care", "prevention"}

type ConditionRecord struct {
	Name            string
	Symptoms        string
	Recommendations string
}

type Scraper struct {
	fetcher    Fetcher
	listingURL string
	base       *url.URL
	pathPrefix string
}

func NewScraper(fetcher Fetcher, listingURL, baseURL, pathPrefix string) (*Scraper, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return &Scraper{
		fetcher:    fetcher,
		listingURL: listingURL,
		base:       base,
		pathPrefix: pathPrefix,
	}, nil
}

// ListConditionLinks fetches the listing page and returns the absolute URLs
// of every condition detail page, de-duplicated in first-seen order. A page
// without the expected list markup yields an empty slice, not an error, so
// a caller reports zero links instead of crashing.
func (s *Scraper) ListConditionLinks(ctx context.Context) ([]string, error) {
	body, err := s.fetcher.Fetch(ctx, s.listingURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("ul a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := s.base.ResolveReference(ref)
		if !strings.HasPrefix(abs.Path, s.pathPrefix) {
			return
		}
		link := abs.String()
		if seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links, nil
}

// ScrapeCondition fetches one detail page and parses it into a record.
func (s *Scraper) ScrapeCondition(ctx context.Context, pageURL string) (*ConditionRecord, error) {
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return s.ParseCondition(body)
}

// ParseCondition extracts a condition record from raw page HTML. The first
// top-level heading is the condition name; each section is classified by
// its first h2/h3 heading text (case-insensitive substring match) and its
// visible text appended to the matching bucket.
func (s *Scraper) ParseCondition(body string) (*ConditionRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	heading := doc.Find("h1").First()
	if heading.Length() == 0 {
		return nil, fmt.Errorf("%w: no h1 heading", errs.ErrParse)
	}
	name := strings.TrimSpace(heading.Text())

	var symptoms, recommendations strings.Builder
	doc.Find("section").Each(func(_ int, sec *goquery.Selection) {
		secHeading := sec.Find("h2, h3").First()
		if secHeading.Length() == 0 {
			return
		}
		title := strings.ToLower(strings.TrimSpace(secHeading.Text()))
		switch {
		case strings.Contains(title, "symptom"):
			symptoms.WriteString(visibleText(sec))
			symptoms.WriteString(" ")
		case matchesAny(title, recommendationKeywords):
			recommendations.WriteString(visibleText(sec))
			recommendations.WriteString(" ")
		}
	})

	return &ConditionRecord{
		Name:            name,
		Symptoms:        truncate(strings.TrimSpace(symptoms.String()), maxFieldChars),
		Recommendations: truncate(strings.TrimSpace(recommendations.String()), maxFieldChars),
	}, nil
}

func matchesAny(title string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// visibleText returns the whitespace-normalized text of a selection,
// skipping script, style and noscript subtrees.
func visibleText(sel *goquery.Selection) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
