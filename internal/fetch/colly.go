package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"ausjobs/internal/config"
)

// Collector fetches pages over plain HTTP with bounded retries and a
// polite per-domain delay.
type Collector struct {
	userAgent string
	timeout   time.Duration
	retries   int
}

func NewCollector(cfg config.ScraperConfig) *Collector {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}
	timeout := cfg.NavTimeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &Collector{
		userAgent: cfg.UserAgent,
		timeout:   timeout,
		retries:   retries,
	}
}

func (c *Collector) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if c == nil {
		return nil, fmt.Errorf("nil collector")
	}
	host, err := hostOf(rawURL)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		body, err := c.fetchOnce(ctx, host, rawURL)
		if err == nil {
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", rawURL, err)
			}
			return doc, nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(300*(attempt+1)) * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", rawURL, lastErr)
}

func (c *Collector) fetchOnce(ctx context.Context, host, rawURL string) ([]byte, error) {
	col := colly.NewCollector(
		colly.AllowedDomains(host),
		colly.UserAgent(c.userAgent),
	)
	col.SetRequestTimeout(c.timeout)
	_ = col.Limit(&colly.LimitRule{
		DomainGlob:  "*" + host + "*",
		Parallelism: 2,
		Delay:       300 * time.Millisecond,
		RandomDelay: 500 * time.Millisecond,
	})

	var body []byte
	var reqErr error

	col.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "en-AU,en;q=0.9")
	})
	col.OnResponse(func(r *colly.Response) {
		if r.StatusCode < 200 || r.StatusCode >= 300 {
			reqErr = fmt.Errorf("status %d", r.StatusCode)
			return
		}
		body = r.Body
	})
	col.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := col.Visit(rawURL); err != nil {
		return nil, err
	}
	col.Wait()

	if reqErr != nil {
		return nil, reqErr
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response")
	}
	return body, nil
}

func hostOf(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("bad url %q: %w", rawURL, err)
	}
	host := u.Host
	if host == "" {
		return "", fmt.Errorf("bad url %q: no host", rawURL)
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h, nil
	}
	return host, nil
}
