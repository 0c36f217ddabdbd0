package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ausjobs/internal/domain/job"
	"ausjobs/internal/extract"
	"ausjobs/internal/parse"
	"ausjobs/internal/store"
)

// Outcome is the terminal state of one record's upsert.
type Outcome string

const (
	OutcomeNew       Outcome = "new"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomePatched   Outcome = "patched"
	OutcomeRejected  Outcome = "rejected"
)

// Upserter persists drafts one transaction per record. A record either
// lands whole or not at all; a failure on one never blocks the next.
type Upserter struct {
	store  store.RecordStore
	source string
	log    *zap.Logger
	now    func() time.Time
}

func NewUpserter(st store.RecordStore, sourceName string, log *zap.Logger) *Upserter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Upserter{
		store:  st,
		source: sourceName,
		log:    log,
		now:    time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (u *Upserter) SetClock(now func() time.Time) {
	if now != nil {
		u.now = now
	}
}

// Upsert decides what one draft becomes: a new row, a duplicate of an
// existing one, a location patch on a duplicate, or a rejection. The
// error return is reserved for storage failures.
func (u *Upserter) Upsert(ctx context.Context, d extract.Draft) (Outcome, error) {
	if !validDraft(d) {
		return OutcomeRejected, nil
	}

	outcome := OutcomeDuplicate
	err := u.store.WithTx(ctx, func(tx store.RecordTx) error {
		existing, err := tx.FindExisting(ctx, u.source, d.URL, d.ExternalID)
		if err != nil {
			return fmt.Errorf("find existing: %w", err)
		}
		if existing != nil {
			patched, err := u.maybePatchLocation(ctx, tx, existing, d)
			if err != nil {
				return err
			}
			if patched {
				outcome = OutcomePatched
			} else {
				outcome = OutcomeDuplicate
			}
			return nil
		}

		companyID, err := tx.ResolveCompany(ctx, d.Company, d.CompanyLogo)
		if err != nil {
			return fmt.Errorf("resolve company: %w", err)
		}
		locationID, err := tx.ResolveLocation(ctx, d.LocationText)
		if err != nil {
			return fmt.Errorf("resolve location: %w", err)
		}

		inserted, err := tx.Insert(ctx, u.buildPosting(d, companyID, locationID))
		if err != nil {
			return fmt.Errorf("insert posting: %w", err)
		}
		if inserted {
			outcome = OutcomeNew
		} else {
			// Lost the race to a concurrent run; the row exists.
			outcome = OutcomeDuplicate
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// maybePatchLocation fills a stored posting's location when this pass
// found a plausible one and the stored row has none, or holds raw text
// the location parser would not accept.
func (u *Upserter) maybePatchLocation(ctx context.Context, tx store.RecordTx, existing *store.Existing, d extract.Draft) (bool, error) {
	if !parse.PlausibleLocation(d.LocationText) {
		return false, nil
	}
	if existing.LocationID != nil && parse.PlausibleLocation(existing.LocationName) {
		return false, nil
	}

	locationID, err := tx.ResolveLocation(ctx, d.LocationText)
	if err != nil {
		return false, fmt.Errorf("resolve location: %w", err)
	}
	if locationID == nil {
		return false, nil
	}
	if existing.LocationID != nil && *existing.LocationID == *locationID {
		return false, nil
	}
	if err := tx.PatchLocation(ctx, existing.ID, *locationID); err != nil {
		return false, fmt.Errorf("patch location: %w", err)
	}
	u.log.Debug("patched posting location",
		zap.String("posting_id", existing.ID.String()),
		zap.String("location", d.LocationText))
	return true, nil
}

func (u *Upserter) buildPosting(d extract.Draft, companyID uuid.UUID, locationID *uuid.UUID) job.Posting {
	now := u.now().UTC()

	currency := d.Salary.Currency
	if currency == "" {
		currency = job.CurrencyAUD
	}
	salaryType := d.Salary.Type
	if !salaryType.Valid() {
		salaryType = job.SalaryYearly
	}

	p := job.Posting{
		Title:           d.Title,
		Slug:            postingSlug(d.Title, d.ExternalID),
		Description:     d.Description,
		CompanyID:       companyID,
		LocationID:      locationID,
		Category:        d.Category,
		JobType:         d.JobType,
		SalaryCurrency:  currency,
		SalaryType:      salaryType,
		Skills:          d.Required,
		PreferredSkills: d.Preferred,
		ExternalSource:  u.source,
		ExternalURL:     d.URL,
		ExternalID:      d.ExternalID,
		PostedAgo:       d.PostedAgo,
		DatePosted:      d.DatePosted,
		Status:          job.StatusActive,
		AdditionalInfo:  d.Extra,
		ScrapedAt:       now,
		UpdatedAt:       now,
	}
	if d.HasPay {
		p.SalaryMin = d.Salary.Min
		p.SalaryMax = d.Salary.Max
		p.SalaryRawText = parse.Truncate(d.Salary.Raw, job.SalaryRawMaxLen)
	}
	return p
}

// postingSlug keeps slugs unique across same-titled postings by
// suffixing a fragment of the stable external id.
func postingSlug(title, externalID string) string {
	slug := parse.Truncate(parse.Slugify(title), 60)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "posting"
	}
	if n := len(externalID); n > 8 {
		slug += "-" + externalID[n-8:]
	} else if externalID != "" {
		slug += "-" + externalID
	}
	return slug
}

func validDraft(d extract.Draft) bool {
	if strings.TrimSpace(d.URL) == "" {
		return false
	}
	return extract.ValidTitle(d.Title)
}
