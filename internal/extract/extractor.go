package extract

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ausjobs/internal/domain/job"
	"ausjobs/internal/parse"
	"ausjobs/internal/skills"
)

// Descriptions shorter than this are treated as extraction misses and
// the next fallback in the chain is tried.
const minDescriptionLen = 80

var defaultDescriptionSelectors = []string{
	".job-description", "#job-description", ".description",
	".job-details", ".job-content", "article", "main", ".content",
}

type Options struct {
	Selectors      Selectors
	Limits         Limits
	Vocabulary     skills.Vocabulary
	CategoryRules  []skills.CategoryRule
	KnownCompanies []string
}

type Extractor struct {
	selectors   Selectors
	limits      Limits
	skills      *skills.Extractor
	categorizer *skills.Categorizer
	known       []string
	now         func() time.Time
}

func New(opts Options) *Extractor {
	return &Extractor{
		selectors:   opts.Selectors,
		limits:      opts.Limits.withDefaults(),
		skills:      skills.NewExtractor(opts.Vocabulary),
		categorizer: skills.NewCategorizer(job.NewCategoryRegistry(), opts.CategoryRules),
		known:       opts.KnownCompanies,
		now:         time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (x *Extractor) SetClock(now func() time.Time) {
	if now != nil {
		x.now = now
	}
}

// FromDetailPage assembles a Draft from a fetched detail page plus
// whatever the listing card already knew. ok is false when no valid
// title can be found, which invalidates the record.
func (x *Extractor) FromDetailPage(doc *goquery.Document, card Card) (Draft, bool) {
	if x == nil {
		return Draft{}, false
	}
	now := x.now()
	extra := map[string]string{}

	title, ok := x.pickTitle(doc, card, extra)
	if !ok {
		return Draft{}, false
	}

	company, logo := x.pickCompany(doc, card, title, extra)
	description := x.pickDescription(doc, title, company, card, extra)

	locationText := parse.NormalizeWhitespace(card.LocationText)
	if locationText == "" {
		locationText = x.firstSelectorText(doc, x.selectors.Location)
	}

	salary, hasPay := x.pickSalary(doc, card, description)

	postedRaw := parse.NormalizeWhitespace(card.PostedText)
	if postedRaw == "" {
		postedRaw = x.firstSelectorText(doc, x.selectors.Posted)
	}

	jobTypeText := card.JobTypeText
	if parse.NormalizeWhitespace(jobTypeText) == "" {
		jobTypeText = x.firstSelectorText(doc, x.selectors.JobType)
	}

	required, preferred := x.skills.Extract(title, description)

	d := Draft{
		Title:        parse.Truncate(title, x.limits.Title),
		Company:      company,
		CompanyLogo:  logo,
		Description:  description,
		LocationText: locationText,
		Salary:       salary,
		HasPay:       hasPay,
		JobType:      parse.JobType(jobTypeText, title, description),
		Category:     x.categorizer.Categorize(title, description),
		Required:     required,
		Preferred:    preferred,
		PostedAgo:    parse.Truncate(postedRaw, x.limits.PostedAgo),
		DatePosted:   parse.Date(postedRaw, now),
		URL:          parse.Truncate(strings.TrimSpace(card.URL), x.limits.URL),
		ExternalID:   ExternalIDFromURL(card.URL),
		Extra:        extra,
	}
	return d, true
}

func (x *Extractor) pickTitle(doc *goquery.Document, card Card, extra map[string]string) (string, bool) {
	var candidates []string
	var sources []string

	push := func(s, src string) {
		s = parse.NormalizeWhitespace(s)
		if s != "" {
			candidates = append(candidates, s)
			sources = append(sources, src)
		}
	}

	push(card.Title, "card")
	if doc != nil {
		for _, sel := range x.selectors.Title {
			push(doc.Find(sel).First().Text(), "selector")
		}
		push(doc.Find("h1").First().Text(), "h1")
		push(cleanPageTitle(doc.Find("title").First().Text()), "page_title")
	}

	// Prefer a candidate that reads like a role; settle for any valid
	// one.
	for i, c := range candidates {
		if ValidTitle(c) && LooksLikeRole(c) {
			extra["title_source"] = sources[i]
			return c, true
		}
	}
	for i, c := range candidates {
		if ValidTitle(c) {
			extra["title_source"] = sources[i]
			return c, true
		}
	}
	return "", false
}

// cleanPageTitle strips the trailing "| Site Name" decoration boards
// put in the document title.
func cleanPageTitle(s string) string {
	s = parse.NormalizeWhitespace(s)
	for _, sep := range []string{" | ", " - ", " :: ", " – "} {
		if idx := strings.Index(s, sep); idx > 0 {
			s = s[:idx]
			break
		}
	}
	return strings.TrimSpace(s)
}

func (x *Extractor) pickCompany(doc *goquery.Document, card Card, title string, extra map[string]string) (name, logo string) {
	var candidates []string
	var sources []string
	push := func(s, src string) {
		s = parse.NormalizeWhitespace(s)
		if s != "" {
			candidates = append(candidates, s)
			sources = append(sources, src)
		}
	}

	push(card.Company, "card")
	if doc != nil {
		for _, sel := range x.selectors.Company {
			push(doc.Find(sel).First().Text(), "selector")
		}

		logoSel := doc.Find("img[alt*='logo'], img[class*='logo'], .company-logo img").First()
		if alt, ok := logoSel.Attr("alt"); ok {
			push(strings.TrimSuffix(strings.TrimSpace(alt), " logo"), "logo_alt")
		}
		if src, ok := logoSel.Attr("src"); ok {
			logo = strings.TrimSpace(src)
		}

		pageText := doc.Text()
		for _, k := range x.known {
			if k != "" && strings.Contains(strings.ToLower(pageText), strings.ToLower(k)) {
				push(k, "known_company")
				break
			}
		}

		doc.Find("a[href*='/company/'], a[href*='/employer/'], a[href*='/companies/']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if t := parse.NormalizeWhitespace(s.Text()); t != "" {
				push(t, "company_link")
				return false
			}
			if href, ok := s.Attr("href"); ok {
				if slug := companyFromSlug(href); slug != "" {
					push(slug, "company_slug")
					return false
				}
			}
			return true
		})
	}

	// "Office Manager at Acme Holdings"
	if idx := strings.Index(strings.ToLower(title), " at "); idx > 0 {
		push(title[idx+4:], "title_suffix")
	}

	if logo == "" {
		logo = strings.TrimSpace(card.LogoURL)
	}

	for i, c := range candidates {
		if ValidCompanyName(c) {
			extra["company_source"] = sources[i]
			return parse.Truncate(c, job.NameMaxLen), logo
		}
	}
	extra["company_source"] = "default"
	return job.UnknownCompany, logo
}

func companyFromSlug(href string) string {
	href = strings.Trim(strings.TrimSpace(href), "/")
	parts := strings.Split(href, "/")
	if len(parts) == 0 {
		return ""
	}
	slug := parts[len(parts)-1]
	slug = strings.ReplaceAll(slug, "-", " ")
	slug = strings.ReplaceAll(slug, "_", " ")
	slug = parse.NormalizeWhitespace(slug)
	if slug == "" || strings.EqualFold(slug, "company") || strings.EqualFold(slug, "companies") || strings.EqualFold(slug, "employer") {
		return ""
	}
	return slugCaser.String(slug)
}

var slugCaser = cases.Title(language.English)

func (x *Extractor) pickDescription(doc *goquery.Document, title, company string, card Card, extra map[string]string) string {
	if doc != nil {
		selectors := append(append([]string{}, x.selectors.Description...), defaultDescriptionSelectors...)
		for _, sel := range selectors {
			text := parse.CleanDescription(parse.SelectionText(doc.Find(sel).First()))
			if len(text) >= minDescriptionLen {
				extra["description_source"] = sel
				return text
			}
		}
		if body := parse.CleanDescription(parse.SelectionText(doc.Find("body"))); len(body) >= minDescriptionLen {
			extra["description_source"] = "body"
			return body
		}
	}

	extra["description_source"] = "synthesized"
	return synthesizeDescription(title, company, card.LocationText)
}

// synthesizeDescription builds a minimal but never-empty description
// from fields that did extract.
func synthesizeDescription(title, company, locationText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s position", title)
	if company != "" && company != job.UnknownCompany {
		fmt.Fprintf(&b, " at %s", company)
	}
	if loc := parse.NormalizeWhitespace(locationText); loc != "" {
		fmt.Fprintf(&b, " in %s", loc)
	}
	b.WriteString(". See the original posting for the full description.")
	return b.String()
}

func (x *Extractor) pickSalary(doc *goquery.Document, card Card, description string) (parse.SalaryRange, bool) {
	if s, ok := parse.Salary(card.SalaryText); ok {
		return s, true
	}
	if doc != nil {
		for _, sel := range x.selectors.Salary {
			if s, ok := parse.Salary(doc.Find(sel).First().Text()); ok {
				return s, true
			}
		}
	}
	for _, line := range strings.Split(description, "\n") {
		if !strings.Contains(line, "$") {
			continue
		}
		if s, ok := parse.Salary(line); ok {
			return s, true
		}
	}
	return parse.SalaryRange{}, false
}

func (x *Extractor) firstSelectorText(doc *goquery.Document, sels []string) string {
	if doc == nil {
		return ""
	}
	for _, sel := range sels {
		if t := parse.NormalizeWhitespace(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// ExternalIDFromURL derives a stable per-posting identifier when a
// board exposes none of its own.
func ExternalIDFromURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	h := sha1.Sum([]byte(u))
	return "urlsha1-" + hex.EncodeToString(h[:])
}
