package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ausjobs/internal/app"
	"ausjobs/internal/config"
	"ausjobs/internal/database/migration"
	"ausjobs/internal/database/seeder"
	"ausjobs/internal/pipeline"
	"ausjobs/internal/source"
)

func main() {
	sourceName := flag.String("source", "", "job board to scrape (one of: "+strings.Join(source.Names(), ", ")+")")
	maxJobs := flag.Int("max-jobs", 0, "stop after this many postings, 0 for no limit")
	query := flag.String("query", "", "optional search keywords")
	flag.Parse()

	if strings.TrimSpace(*sourceName) == "" {
		fmt.Fprintln(os.Stderr, "usage: scraper -source <name> [-max-jobs N] [-query ...]")
		os.Exit(1)
	}
	if *maxJobs < 0 {
		fmt.Fprintln(os.Stderr, "-max-jobs must not be negative")
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: "migrations", Log: c.Log}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(migCtx, c.DB); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, err := c.Scrapes.Run(ctx, pipeline.RunRequest{
		Source:  *sourceName,
		MaxJobs: *maxJobs,
		Query:   *query,
	})
	if err != nil {
		c.Log.Error("run could not start", zap.Error(err))
		os.Exit(1)
	}

	c.Log.Info("scrape summary",
		zap.String("source", res.Source),
		zap.Bool("success", res.Success),
		zap.Int("scraped", res.Scraped),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("patched", res.Patched),
		zap.Int("rejected", res.Rejected),
		zap.Int("errors", res.Errors),
		zap.String("message", res.Message))
	fmt.Println(res.Message)

	if !res.Success {
		os.Exit(1)
	}
}
