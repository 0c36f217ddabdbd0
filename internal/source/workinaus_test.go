package source

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body>
<div class="job-card">
  <a href="/job/senior-nurse-123">Senior Nurse</a>
  <div class="company-name">Coastal Health Group</div>
  <div class="job-location">Newcastle, NSW</div>
  <div class="job-salary">$80,000 - $95,000 per year</div>
  <div class="posted-date">3 days ago</div>
</div>
<div class="job-card">
  <a href="https://www.workinaus.com.au/job/chef-456">Chef</a>
  <div class="company-name">Harbour Bistro</div>
  <div class="job-location">Sydney, NSW</div>
</div>
<div class="job-card"><span>No link tile</span></div>
</body></html>`

func TestWorkinAusCards(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingPage))
	require.NoError(t, err)

	s := NewWorkinAus("")
	cards := s.Cards(doc)
	require.Len(t, cards, 2)

	assert.Equal(t, "Senior Nurse", cards[0].Title)
	assert.Equal(t, "Coastal Health Group", cards[0].Company)
	assert.Equal(t, "Newcastle, NSW", cards[0].LocationText)
	assert.Equal(t, "$80,000 - $95,000 per year", cards[0].SalaryText)
	assert.Equal(t, "3 days ago", cards[0].PostedText)
	assert.Equal(t, "https://www.workinaus.com.au/job/senior-nurse-123", cards[0].URL)

	assert.Equal(t, "https://www.workinaus.com.au/job/chef-456", cards[1].URL)
}

func TestWorkinAusListingURL(t *testing.T) {
	s := NewWorkinAus("")
	assert.Equal(t, "https://www.workinaus.com.au/job-search?page=2", s.ListingURL(2, ""))
	assert.Equal(t, "https://www.workinaus.com.au/job-search?page=1&keyword=nurse+icu", s.ListingURL(0, "nurse icu"))
}

func TestRegistry(t *testing.T) {
	s, err := New("workinaus")
	require.NoError(t, err)
	assert.Equal(t, "workinaus", s.Name())

	_, err = New("nope")
	assert.Error(t, err)

	names := Names()
	assert.Contains(t, names, "workinaus")
	assert.Contains(t, names, "probono")
}
