package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ausjobs/internal/cache"
	"ausjobs/internal/config"
	"ausjobs/internal/fetch"
	"ausjobs/internal/source"
	"ausjobs/internal/store"
)

// runLockTTL bounds how long a crashed run can hold its source lock.
const runLockTTL = 30 * time.Minute

// Service resolves a source name into a configured Runner and executes
// it. Both the CLI and the HTTP trigger go through here.
type Service struct {
	Cfg   config.ScraperConfig
	Store store.RecordStore
	Runs  store.RunStore
	Cache *cache.Redis
	Log   *zap.Logger
}

type RunRequest struct {
	Source  string
	MaxJobs int
	Query   string
}

func (s *Service) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	src, err := source.New(req.Source)
	if err != nil {
		return RunResult{}, err
	}

	var fetcher fetch.Fetcher
	if src.Headless() {
		fetcher = fetch.NewHeadless(s.Cfg)
	} else {
		fetcher = fetch.NewCollector(s.Cfg)
	}

	// One run per source at a time. Degrades to unlocked when redis is
	// down.
	lockKey := "runlock:" + src.Name()
	ok, _ := s.Cache.SetIfNotExists(ctx, lockKey, "1", runLockTTL)
	if !ok {
		return RunResult{}, fmt.Errorf("a run for source %q is already in progress", src.Name())
	}
	defer func() { _ = s.Cache.Delete(context.WithoutCancel(ctx), lockKey) }()

	r := &Runner{
		Source:  src,
		Fetcher: fetcher,
		Store:   s.Store,
		Runs:    s.Runs,
		Cache:   s.Cache,
		Log:     s.Log,
		MaxJobs: req.MaxJobs,
		Query:   req.Query,
		Workers: s.Cfg.DetailWorkers,
		Rate:    s.Cfg.RatePerSecond,
		SeenTTL: s.Cfg.SeenURLCacheTTL,
	}
	return r.Run(ctx), nil
}
