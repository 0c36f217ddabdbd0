package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ausjobs/internal/cache"
	"ausjobs/internal/extract"
	"ausjobs/internal/fetch"
	"ausjobs/internal/source"
	"ausjobs/internal/store"
)

const (
	defaultWorkers  = 4
	defaultMaxPages = 20
)

// Runner drives one scrape of one board: page through listings, fetch
// detail pages concurrently, upsert the results sequentially.
type Runner struct {
	Source  source.Source
	Fetcher fetch.Fetcher
	Store   store.RecordStore
	Runs    store.RunStore // optional bookkeeping
	Cache   *cache.Redis   // optional cross-run dedup
	Log     *zap.Logger

	MaxJobs  int
	MaxPages int
	Query    string
	Workers  int
	Rate     int
	SeenTTL  time.Duration
}

// RunResult is what one scrape came to. Success is about the run as a
// whole; individual record failures only bump Errors.
type RunResult struct {
	Success    bool
	Source     string
	Scraped    int
	Duplicates int
	Patched    int
	Rejected   int
	Errors     int
	Message    string
}

func (r RunResult) summary() string {
	return fmt.Sprintf("scraped=%d duplicates=%d patched=%d rejected=%d errors=%d",
		r.Scraped, r.Duplicates, r.Patched, r.Rejected, r.Errors)
}

// Run executes the scrape. It never panics out: a panic inside the run
// is caught and reported as a failed result.
func (r *Runner) Run(ctx context.Context) RunResult {
	res := RunResult{Source: r.Source.Name()}

	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("source", res.Source))

	var runID uuid.UUID
	haveRun := false
	if r.Runs != nil {
		id, err := r.Runs.CreateRun(ctx, res.Source)
		if err != nil {
			log.Warn("could not record run start", zap.Error(err))
		} else {
			runID = id
			haveRun = true
		}
	}

	status := "finished"
	defer func() {
		if rec := recover(); rec != nil {
			res.Success = false
			res.Errors++
			res.Message = fmt.Sprintf("panic: %v", rec)
			status = "failed"
			log.Error("run panicked", zap.Any("panic", rec))
		}
		if res.Message == "" {
			res.Message = res.summary()
		}
		if haveRun {
			finishCtx := context.WithoutCancel(ctx)
			if err := r.Runs.FinishRun(finishCtx, runID, status, store.RunCounts{
				Scraped:    res.Scraped,
				Duplicates: res.Duplicates,
				Errors:     res.Errors,
				Message:    res.Message,
			}); err != nil {
				log.Warn("could not record run finish", zap.Error(err))
			}
		}
		log.Info("run finished",
			zap.Bool("success", res.Success),
			zap.Int("scraped", res.Scraped),
			zap.Int("duplicates", res.Duplicates),
			zap.Int("patched", res.Patched),
			zap.Int("rejected", res.Rejected),
			zap.Int("errors", res.Errors))
	}()

	res.Success = true
	if err := r.scrape(ctx, log, &res); err != nil {
		res.Success = false
		status = "failed"
		res.Message = err.Error()
	}
	return res
}

func (r *Runner) scrape(ctx context.Context, log *zap.Logger, res *RunResult) error {
	extractor := extract.New(r.Source.Options())
	upserter := NewUpserter(r.Store, res.Source, log)

	workers := r.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	pool := NewWorkerPool(workers, workers*2)
	if r.Rate > 0 {
		pool.SetRateLimit(r.Rate)
	}
	results := pool.Run(ctx)

	// Single consumer keeps writes strictly sequential while detail
	// fetches run in parallel.
	type tally struct {
		scraped, duplicates, patched, rejected, errors int
	}
	var consumed tally
	done := make(chan struct{})
	go func() {
		defer close(done)
		for out := range results {
			if out.Err != nil {
				consumed.errors++
				log.Warn("record failed", zap.Error(out.Err))
				continue
			}
			outcome, err := upserter.Upsert(ctx, out.Draft)
			if err != nil {
				consumed.errors++
				log.Warn("upsert failed", zap.String("url", out.Draft.URL), zap.Error(err))
				continue
			}
			switch outcome {
			case OutcomeNew:
				consumed.scraped++
				r.Cache.MarkURL(ctx, res.Source, out.Draft.URL, r.SeenTTL)
			case OutcomeDuplicate:
				consumed.duplicates++
				r.Cache.MarkURL(ctx, res.Source, out.Draft.URL, r.SeenTTL)
			case OutcomePatched:
				consumed.patched++
				r.Cache.MarkURL(ctx, res.Source, out.Draft.URL, r.SeenTTL)
			case OutcomeRejected:
				consumed.rejected++
				log.Debug("record rejected", zap.String("url", out.Draft.URL))
			}
		}
	}()

	maxPages := r.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	seen := mapset.NewSet[string]()
	submitted := 0
	var fatal error

pages:
	for page := 1; page <= maxPages; page++ {
		if ctx.Err() != nil {
			break
		}
		if r.MaxJobs > 0 && submitted >= r.MaxJobs {
			break
		}

		listingURL := r.Source.ListingURL(page, r.Query)
		doc, err := r.Fetcher.Fetch(ctx, listingURL)
		if err != nil {
			res.Errors++
			log.Warn("listing fetch failed", zap.String("url", listingURL), zap.Error(err))
			if page == 1 && submitted == 0 {
				fatal = fmt.Errorf("fetch first listing page: %w", err)
			}
			break
		}

		cards := r.Source.Cards(doc)
		if len(cards) == 0 {
			log.Debug("no more listings", zap.Int("page", page))
			break
		}
		log.Info("listing page fetched", zap.Int("page", page), zap.Int("cards", len(cards)))

		for _, card := range cards {
			if ctx.Err() != nil {
				break pages
			}
			if r.MaxJobs > 0 && submitted >= r.MaxJobs {
				break pages
			}
			url := strings.TrimSpace(card.URL)
			if url == "" || !seen.Add(url) {
				continue
			}
			if r.Cache.SeenURL(ctx, res.Source, url) {
				res.Duplicates++
				continue
			}

			c := card
			ok := pool.Submit(ctx, func(taskCtx context.Context) (extract.Draft, error) {
				detail, err := r.Fetcher.Fetch(taskCtx, c.URL)
				if err != nil {
					return extract.Draft{}, fmt.Errorf("fetch detail %s: %w", c.URL, err)
				}
				draft, ok := extractor.FromDetailPage(detail, c)
				if !ok {
					// No usable title; flows through as a rejection.
					return extract.Draft{URL: c.URL}, nil
				}
				return draft, nil
			})
			if !ok {
				break pages
			}
			submitted++
		}
	}

	pool.Close()
	<-done

	if fatal == nil && ctx.Err() != nil {
		fatal = fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	res.Scraped += consumed.scraped
	res.Duplicates += consumed.duplicates
	res.Patched += consumed.patched
	res.Rejected += consumed.rejected
	res.Errors += consumed.errors
	return fatal
}
