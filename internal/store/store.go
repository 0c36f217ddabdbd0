package store

import (
	"context"

	"github.com/google/uuid"

	"ausjobs/internal/domain/job"
)

// Existing is the slice of a stored posting the dedup decision needs.
type Existing struct {
	ID           uuid.UUID
	LocationID   *uuid.UUID
	LocationName string
}

// RecordTx is the per-record transactional surface: one posting is
// looked up, resolved and written inside a single transaction.
type RecordTx interface {
	FindExisting(ctx context.Context, source, url, externalID string) (*Existing, error)
	ResolveCompany(ctx context.Context, name, logoURL string) (uuid.UUID, error)
	ResolveLocation(ctx context.Context, text string) (*uuid.UUID, error)
	Insert(ctx context.Context, p job.Posting) (bool, error)
	PatchLocation(ctx context.Context, postingID, locationID uuid.UUID) error
}

type RecordStore interface {
	WithTx(ctx context.Context, fn func(tx RecordTx) error) error
}

// RunCounts summarizes a finished run for the bookkeeping row.
type RunCounts struct {
	Scraped    int
	Duplicates int
	Errors     int
	Message    string
}

type RunStore interface {
	CreateRun(ctx context.Context, source string) (uuid.UUID, error)
	FinishRun(ctx context.Context, id uuid.UUID, status string, counts RunCounts) error
	LatestRun(ctx context.Context, source string) (*job.ScrapeRun, error)
}
