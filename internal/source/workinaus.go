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
	Register("workinaus", func() Source { return NewWorkinAus("") })
}

// WorkinAus covers the WorkinAUS board, a conventional server-rendered
// listing/detail site.
type WorkinAus struct {
	base string
}

func NewWorkinAus(baseURL string) *WorkinAus {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://www.workinaus.com.au"
	}
	return &WorkinAus{base: baseURL}
}

func (s *WorkinAus) Name() string    { return "workinaus" }
func (s *WorkinAus) BaseURL() string { return s.base }
func (s *WorkinAus) Headless() bool  { return false }

func (s *WorkinAus) ListingURL(page int, query string) string {
	if page <= 0 {
		page = 1
	}
	u := fmt.Sprintf("%s/job-search?page=%d", s.base, page)
	if q := strings.TrimSpace(query); q != "" {
		u += "&keyword=" + url.QueryEscape(q)
	}
	return u
}

func (s *WorkinAus) Cards(doc *goquery.Document) []extract.Card {
	if doc == nil {
		return nil
	}
	var cards []extract.Card
	doc.Find(".job-card, article.job, .job-listing").Each(func(_ int, tile *goquery.Selection) {
		link := tile.Find("a[href*='/job/']").First()
		href, _ := link.Attr("href")
		href = s.absURL(href)
		if href == "" {
			return
		}

		title := parse.NormalizeWhitespace(link.Text())
		if title == "" {
			title = parse.NormalizeWhitespace(tile.Find(".job-title, h2, h3").First().Text())
		}

		logo, _ := tile.Find("img").First().Attr("src")

		cards = append(cards, extract.Card{
			Title:        title,
			Company:      parse.NormalizeWhitespace(tile.Find(".company-name, .employer").First().Text()),
			LocationText: parse.NormalizeWhitespace(tile.Find(".job-location, .location").First().Text()),
			SalaryText:   parse.NormalizeWhitespace(tile.Find(".job-salary, .salary").First().Text()),
			PostedText:   parse.NormalizeWhitespace(tile.Find(".posted-date, .posted, time").First().Text()),
			JobTypeText:  parse.NormalizeWhitespace(tile.Find(".job-type, .work-type").First().Text()),
			URL:          href,
			LogoURL:      s.absURL(logo),
		})
	})
	return cards
}

func (s *WorkinAus) Options() extract.Options {
	return extract.Options{
		Selectors: extract.Selectors{
			Title:       []string{"h1.job-title", ".job-header h1"},
			Company:     []string{".company-name", ".employer-name"},
			Description: []string{".job-description", ".job-detail-description", "#jobDescription"},
			Location:    []string{".job-location", ".location"},
			Salary:      []string{".job-salary", ".salary"},
			Posted:      []string{".posted-date", ".posted", "time"},
			JobType:     []string{".job-type", ".work-type"},
		},
		Vocabulary: skills.DefaultVocabulary(),
	}
}

func (s *WorkinAus) absURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return s.base + href
	}
	return s.base + "/" + href
}
