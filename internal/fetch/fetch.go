package fetch

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves a page and hands back its parsed DOM. A source
// gets the plain HTTP collector unless its board only renders in a
// browser, in which case it gets the headless one.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}
