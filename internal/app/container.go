package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ausjobs/internal/cache"
	"ausjobs/internal/config"
	"ausjobs/internal/database"
	dbpostgres "ausjobs/internal/database/postgres"
	"ausjobs/internal/logging"
	"ausjobs/internal/pipeline"
	"ausjobs/internal/store"
)

// Container holds the shared process dependencies: one logger, one
// connection pool, one cache client.
type Container struct {
	Config config.Config
	Log    *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Store  *store.Postgres

	Scrapes *pipeline.Service
}

func NewContainer(cfg config.Config) (*Container, error) {
	log, err := logging.New(cfg.App.Environment, cfg.App.LogFile)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	st := store.NewPostgres(db)
	redis := cache.NewRedis(log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Cache:  redis,
		Store:  st,
		Scrapes: &pipeline.Service{
			Cfg:   cfg.Scraper,
			Store: st,
			Runs:  st,
			Cache: redis,
			Log:   log,
		},
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	var err error
	if c.DB != nil {
		err = c.DB.Close()
	}
	if c.Log != nil {
		_ = c.Log.Sync()
	}
	return err
}
