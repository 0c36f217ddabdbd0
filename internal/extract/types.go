package extract

import (
	"time"

	"ausjobs/internal/domain/job"
	"ausjobs/internal/parse"
)

// Selectors name where a board keeps each field, in priority order.
// They are data, not code: a new board means a new Selectors value.
type Selectors struct {
	Title       []string
	Company     []string
	CompanyLogo []string
	Description []string
	Location    []string
	Salary      []string
	Posted      []string
	JobType     []string
}

// Limits are storage truncation bounds. Zero values fall back to the
// schema limits.
type Limits struct {
	Title       int
	URL         int
	PostedAgo   int
	Description int
}

func (l Limits) withDefaults() Limits {
	if l.Title <= 0 {
		l.Title = job.TitleMaxLen
	}
	if l.URL <= 0 {
		l.URL = job.URLMaxLen
	}
	if l.PostedAgo <= 0 {
		l.PostedAgo = job.PostedAgoMaxLen
	}
	return l
}

// Card is the listing-page context for one posting: whatever the
// search-results tile already told us before opening the detail page.
type Card struct {
	Title        string
	Company      string
	LocationText string
	SalaryText   string
	PostedText   string
	JobTypeText  string
	URL          string
	LogoURL      string
}

// Draft is a fully extracted, not yet persisted posting.
type Draft struct {
	Title       string
	Company     string
	CompanyLogo string
	Description string

	LocationText string

	Salary   parse.SalaryRange
	HasPay   bool
	JobType  job.JobType
	Category string

	Required  []string
	Preferred []string

	PostedAgo  string
	DatePosted time.Time

	URL        string
	ExternalID string

	// Extra keeps extraction provenance for the additional_info
	// column: which fallback produced each contested field.
	Extra map[string]string
}
