package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"ausjobs/internal/config"
)

// Headless renders a page in a real browser before scraping it, for
// boards that build their listings entirely in JavaScript.
type Headless struct {
	userAgent string
	timeout   time.Duration

	// settle gives client-side rendering a moment after load.
	settle time.Duration
}

func NewHeadless(cfg config.ScraperConfig) *Headless {
	timeout := cfg.NavTimeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &Headless{
		userAgent: cfg.UserAgent,
		timeout:   timeout,
		settle:    1500 * time.Millisecond,
	}
}

func (h *Headless) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if h == nil {
		return nil, fmt.Errorf("nil fetcher")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(h.userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, h.timeout)
	defer reqCancel()

	var html string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(h.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("headless fetch %s: %w", rawURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	return doc, nil
}
