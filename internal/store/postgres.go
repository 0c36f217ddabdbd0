package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ausjobs/internal/database"
	"ausjobs/internal/domain/job"
	"ausjobs/internal/parse"
	"ausjobs/internal/resolve"
)

type Postgres struct {
	db database.DB
}

func NewPostgres(db database.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) WithTx(ctx context.Context, fn func(tx RecordTx) error) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil store")
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(pgRecordTx{tx: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type pgRecordTx struct {
	tx database.Tx
}

// FindExisting matches on URL first, then on the board's own posting
// id, so a repost under a rewritten URL still folds into the stored
// row.
func (t pgRecordTx) FindExisting(ctx context.Context, source, url, externalID string) (*Existing, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT p.id, p.location_id, COALESCE(l.name, '')
		 FROM job_postings p
		 LEFT JOIN locations l ON l.id = p.location_id
		 WHERE p.external_source = $1
		   AND (p.external_url = $2 OR ($3 <> '' AND p.external_id = $3))
		 ORDER BY (p.external_url = $2) DESC
		 LIMIT 1`,
		source, url, externalID,
	)
	var out Existing
	if err := row.Scan(&out.ID, &out.LocationID, &out.LocationName); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find existing posting: %w", err)
	}
	return &out, nil
}

func (t pgRecordTx) ResolveCompany(ctx context.Context, name, logoURL string) (uuid.UUID, error) {
	return resolve.Company(ctx, t.tx, name, logoURL)
}

func (t pgRecordTx) ResolveLocation(ctx context.Context, text string) (*uuid.UUID, error) {
	return resolve.Location(ctx, t.tx, text)
}

func (t pgRecordTx) Insert(ctx context.Context, p job.Posting) (bool, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	info, err := json.Marshal(p.AdditionalInfo)
	if err != nil {
		info = []byte("{}")
	}

	n, err := t.tx.Exec(ctx,
		`INSERT INTO job_postings (
			id, title, slug, description, company_id, location_id,
			category, job_type, experience_level, work_mode,
			salary_min, salary_max, salary_currency, salary_type, salary_raw_text,
			skills, preferred_skills,
			external_source, external_url, external_id, posted_ago, date_posted,
			status, additional_info, scraped_at, updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,
			$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26
		) ON CONFLICT DO NOTHING`,
		p.ID,
		p.Title,
		p.Slug,
		p.Description,
		p.CompanyID,
		p.LocationID,
		p.Category,
		string(p.JobType),
		nullableText(p.ExperienceLevel),
		nullableText(p.WorkMode),
		nullableDecimal(p.SalaryMin),
		nullableDecimal(p.SalaryMax),
		p.SalaryCurrency,
		string(p.SalaryType),
		nullableText(parse.Truncate(p.SalaryRawText, job.SalaryRawMaxLen)),
		strings.Join(p.Skills, ", "),
		strings.Join(p.PreferredSkills, ", "),
		p.ExternalSource,
		p.ExternalURL,
		p.ExternalID,
		nullableText(p.PostedAgo),
		nullableTime(p.DatePosted),
		string(p.Status),
		info,
		p.ScrapedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert posting url=%s: %w", p.ExternalURL, err)
	}
	return n > 0, nil
}

func (t pgRecordTx) PatchLocation(ctx context.Context, postingID, locationID uuid.UUID) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE job_postings SET location_id = $2, updated_at = now() WHERE id = $1`,
		postingID, locationID,
	)
	if err != nil {
		return fmt.Errorf("patch location: %w", err)
	}
	return nil
}

func (s *Postgres) CreateRun(ctx context.Context, source string) (uuid.UUID, error) {
	if s == nil || s.db == nil {
		return uuid.Nil, fmt.Errorf("nil store")
	}
	id := uuid.New()
	_, err := s.db.Exec(ctx,
		`INSERT INTO scrape_runs (id, source, started_at, status) VALUES ($1,$2,$3,$4)`,
		id, source, time.Now().UTC(), "running",
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

func (s *Postgres) FinishRun(ctx context.Context, id uuid.UUID, status string, counts RunCounts) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil store")
	}
	if id == uuid.Nil {
		return nil
	}
	_, err := s.db.Exec(ctx,
		`UPDATE scrape_runs
		 SET finished_at = $2, status = $3,
		     scraped_count = $4, duplicate_count = $5, error_count = $6, message = $7
		 WHERE id = $1`,
		id, time.Now().UTC(), strings.TrimSpace(status),
		counts.Scraped, counts.Duplicates, counts.Errors, nullableText(counts.Message),
	)
	return err
}

func (s *Postgres) LatestRun(ctx context.Context, source string) (*job.ScrapeRun, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("nil store")
	}
	row := s.db.QueryRow(ctx,
		`SELECT id, source, started_at, finished_at, status,
		        scraped_count, duplicate_count, error_count, COALESCE(message, '')
		 FROM scrape_runs
		 WHERE source = $1
		 ORDER BY started_at DESC
		 LIMIT 1`,
		source,
	)
	var out job.ScrapeRun
	if err := row.Scan(
		&out.ID, &out.Source, &out.StartedAt, &out.FinishedAt, &out.Status,
		&out.ScrapedCount, &out.DuplicateCount, &out.ErrorCount, &out.Message,
	); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return &out, nil
}

func isNoRows(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "no rows")
}

func nullableText(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

// NUMERIC binds as text so no driver-level decimal codec is needed.
func nullableDecimal(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
