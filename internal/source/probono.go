package source

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ausjobs/internal/extract"
	"ausjobs/internal/parse"
	"ausjobs/internal/skills"
)

func init() {
	Register("probono", func() Source { return NewProBono("") })
}

// ProBono covers the Pro Bono Australia board. Listings render
// client-side, so it runs through the headless fetcher, and its
// not-for-profit audience gets dedicated category rules.
type ProBono struct {
	base string
}

func NewProBono(baseURL string) *ProBono {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://probonoaustralia.com.au"
	}
	return &ProBono{base: baseURL}
}

func (s *ProBono) Name() string    { return "probono" }
func (s *ProBono) BaseURL() string { return s.base }
func (s *ProBono) Headless() bool  { return true }

func (s *ProBono) ListingURL(page int, query string) string {
	if page <= 0 {
		page = 1
	}
	u := fmt.Sprintf("%s/search-jobs/?paged=%d", s.base, page)
	if q := strings.TrimSpace(query); q != "" {
		u += "&keywords=" + url.QueryEscape(q)
	}
	return u
}

func (s *ProBono) Cards(doc *goquery.Document) []extract.Card {
	if doc == nil {
		return nil
	}
	var cards []extract.Card
	doc.Find(".job-listing-item, article.job_listing, .search-result").Each(func(_ int, tile *goquery.Selection) {
		link := tile.Find("a[href*='/jobs/']").First()
		href, _ := link.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = s.base + href
		}

		cards = append(cards, extract.Card{
			Title:        parse.NormalizeWhitespace(link.Text()),
			Company:      parse.NormalizeWhitespace(tile.Find(".organisation, .company").First().Text()),
			LocationText: parse.NormalizeWhitespace(tile.Find(".location").First().Text()),
			PostedText:   parse.NormalizeWhitespace(tile.Find(".date, time").First().Text()),
			URL:          href,
		})
	})
	return cards
}

func (s *ProBono) Options() extract.Options {
	return extract.Options{
		Selectors: extract.Selectors{
			Title:       []string{"h1.entry-title", ".job-header h1"},
			Company:     []string{".organisation-name", ".organisation"},
			Description: []string{".job-description", ".entry-content"},
			Location:    []string{".job-location", ".location"},
			Salary:      []string{".salary"},
			Posted:      []string{".date-posted", "time"},
		},
		Vocabulary: skills.DefaultVocabulary(),
		CategoryRules: []skills.CategoryRule{
			{Keyword: "fundraising", Category: "fundraising"},
			{Keyword: "volunteer", Category: "other"},
			{Keyword: "community", Category: "other"},
		},
	}
}
