package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ausjobs/internal/domain/job"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func testExtractor() *Extractor {
	x := New(Options{
		Selectors: Selectors{
			Title:       []string{"h1.job-title"},
			Company:     []string{".employer-name"},
			Description: []string{".job-description"},
			Location:    []string{".job-location"},
			Salary:      []string{".job-salary"},
			Posted:      []string{".posted-date"},
		},
	})
	x.SetClock(func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) })
	return x
}

const detailPage = `<html><head><title>Registered Nurse | ExampleBoard</title></head><body>
<h1 class="job-title">Registered Nurse</h1>
<div class="employer-name">Coastal Health Group</div>
<div class="job-location">Newcastle, NSW</div>
<div class="job-salary">$80,000 - $95,000 per year</div>
<div class="posted-date">3 days ago</div>
<div class="job-description">
<p>We are seeking a registered nurse to join our aged care team in Newcastle.</p>
<p>Essential: current nursing registration, medication management and strong communication.</p>
<p>Desirable: first aid training would be great.</p>
</div>
</body></html>`

func TestFromDetailPage(t *testing.T) {
	x := testExtractor()
	d, ok := x.FromDetailPage(docFrom(t, detailPage), Card{URL: "https://example.com/jobs/rn-123"})
	require.True(t, ok)

	assert.Equal(t, "Registered Nurse", d.Title)
	assert.Equal(t, "Coastal Health Group", d.Company)
	assert.Equal(t, "Newcastle, NSW", d.LocationText)

	require.True(t, d.HasPay)
	assert.Equal(t, "80000", d.Salary.Min.Decimal.String())
	assert.Equal(t, "95000", d.Salary.Max.Decimal.String())
	assert.Equal(t, job.SalaryYearly, d.Salary.Type)

	assert.Equal(t, "3 days ago", d.PostedAgo)
	assert.Equal(t, time.Date(2025, 6, 12, 12, 0, 0, 0, time.UTC), d.DatePosted)

	assert.Equal(t, "healthcare", d.Category)
	assert.NotEmpty(t, d.Required)
	assert.NotEmpty(t, d.Preferred)
	assert.Contains(t, d.Required, "Communication")

	assert.Equal(t, ExternalIDFromURL("https://example.com/jobs/rn-123"), d.ExternalID)
	assert.Contains(t, d.Description, "aged care team")
	assert.NotContains(t, d.Description, "ExampleBoard")
}

func TestFromDetailPageRejectsWithoutTitle(t *testing.T) {
	x := testExtractor()
	page := `<html><head><title>21 - 40 of 478</title></head><body><div>1 - 20 of 478</div></body></html>`
	_, ok := x.FromDetailPage(docFrom(t, page), Card{URL: "https://example.com/jobs/1"})
	assert.False(t, ok)
}

func TestFromDetailPageCardFallbacks(t *testing.T) {
	x := testExtractor()
	page := `<html><body><p>Short page.</p></body></html>`
	d, ok := x.FromDetailPage(docFrom(t, page), Card{
		Title:        "Delivery Driver",
		Company:      "Quick Couriers",
		LocationText: "Brisbane, QLD",
		URL:          "https://example.com/jobs/driver-9",
	})
	require.True(t, ok)

	assert.Equal(t, "Delivery Driver", d.Title)
	assert.Equal(t, "Quick Couriers", d.Company)
	assert.Equal(t, "synthesized", d.Extra["description_source"])
	assert.Contains(t, d.Description, "Delivery Driver position at Quick Couriers")
	assert.Contains(t, d.Description, "Brisbane, QLD")
	assert.NotEmpty(t, d.Description)
}

func TestFromDetailPageUnknownCompany(t *testing.T) {
	x := testExtractor()
	page := `<html><body><h1>Kitchen Hand</h1>
<div class="job-description">Busy commercial kitchen needs a reliable kitchen hand for weekend shifts. Duties include dishwashing and food preparation support across the venue.</div>
</body></html>`
	d, ok := x.FromDetailPage(docFrom(t, page), Card{URL: "https://example.com/jobs/kh-1"})
	require.True(t, ok)
	assert.Equal(t, job.UnknownCompany, d.Company)
	assert.Equal(t, "default", d.Extra["company_source"])
}

func TestFromDetailPageCompanyRejectsLocationLeak(t *testing.T) {
	x := testExtractor()
	page := `<html><body><h1 class="job-title">Retail Assistant</h1>
<div class="employer-name">Sydney, NSW</div>
<div class="job-description">Join our busy store team assisting customers, restocking shelves and operating the register across weekend trading hours.</div>
</body></html>`
	d, ok := x.FromDetailPage(docFrom(t, page), Card{URL: "https://example.com/jobs/ra-2"})
	require.True(t, ok)
	assert.Equal(t, job.UnknownCompany, d.Company)
}

func TestTitleTruncation(t *testing.T) {
	x := New(Options{Limits: Limits{Title: 10}})
	x.SetClock(func() time.Time { return time.Now() })
	page := `<html><body><h1>Experienced Forklift Operator</h1>
<div class="job-description">Operate forklifts in a busy distribution centre, loading and unloading trucks and keeping the warehouse floor safe and organised every day.</div>
</body></html>`
	d, ok := x.FromDetailPage(docFrom(t, page), Card{URL: "https://example.com/jobs/f-1"})
	require.True(t, ok)
	assert.Len(t, d.Title, 10)
}

func TestCleanPageTitle(t *testing.T) {
	assert.Equal(t, "Registered Nurse", cleanPageTitle("Registered Nurse | ExampleBoard"))
	assert.Equal(t, "Chef", cleanPageTitle("Chef - Jobs"))
}

func TestValidTitle(t *testing.T) {
	assert.True(t, ValidTitle("Senior Accountant"))
	assert.False(t, ValidTitle(""))
	assert.False(t, ValidTitle("1 - 20 of 478"))
	assert.False(t, ValidTitle("Next"))
	assert.False(t, ValidTitle("12345"))
}

func TestValidCompanyName(t *testing.T) {
	assert.True(t, ValidCompanyName("Coastal Health Group"))
	assert.False(t, ValidCompanyName("Sydney, NSW"))
	assert.False(t, ValidCompanyName("Apply now"))
	assert.False(t, ValidCompanyName("A"))
}
