package source

import (
	"github.com/PuerkitoBio/goquery"

	"ausjobs/internal/extract"
)

// Source describes one job board. Everything board-specific lives
// here as data: URL shapes, card selectors, vocabulary and category
// rules. The shared pipeline does the rest.
type Source interface {
	Name() string
	BaseURL() string

	// ListingURL builds the search-results URL for a page, 1-based.
	ListingURL(page int, query string) string

	// Cards pulls the posting tiles off a parsed listing page. An
	// empty slice means the board ran out of pages.
	Cards(doc *goquery.Document) []extract.Card

	// Options configures the record extractor for this board.
	Options() extract.Options

	// Headless marks boards whose pages only render in a browser.
	Headless() bool
}
