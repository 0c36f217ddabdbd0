package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ausjobs/internal/database"
	"ausjobs/internal/domain/job"
	"ausjobs/internal/extract"
	"ausjobs/internal/parse"
)

// Company finds or creates the company row for a name, matching
// case-insensitively so "ACME Pty Ltd" and "Acme Pty Ltd" resolve to
// one row. A name that fails validation resolves to the Unknown
// Company row rather than polluting the dimension.
func Company(ctx context.Context, q database.Querier, name string, logoURL string) (uuid.UUID, error) {
	if q == nil {
		return uuid.Nil, fmt.Errorf("nil querier")
	}
	name = parse.NormalizeWhitespace(name)
	if name == "" || (name != job.UnknownCompany && !extract.ValidCompanyName(name)) {
		name = job.UnknownCompany
	}
	name = parse.Truncate(name, job.NameMaxLen)
	logoURL = strings.TrimSpace(logoURL)

	_, _ = q.Exec(ctx,
		`INSERT INTO companies (id, name, slug, logo_url, company_size)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT ((lower(name))) DO NOTHING`,
		uuid.New(), name, parse.Slugify(name), nullableText(logoURL), job.SizeSmall,
	)

	row := q.QueryRow(ctx,
		`SELECT id, COALESCE(logo_url, '') FROM companies WHERE lower(name) = lower($1) LIMIT 1`,
		name,
	)
	var id uuid.UUID
	var storedLogo string
	if err := row.Scan(&id, &storedLogo); err != nil {
		return uuid.Nil, fmt.Errorf("resolve company %q: %w", name, err)
	}

	// Backfill a logo the first time a source provides one.
	if storedLogo == "" && logoURL != "" {
		_, _ = q.Exec(ctx, `UPDATE companies SET logo_url = $2, updated_at = now() WHERE id = $1`, id, logoURL)
	}

	return id, nil
}

// Location canonicalizes a location fragment and finds or creates its
// row. Implausible fragments resolve to no location at all: a posting
// without a location beats one with "Apply now" as its suburb.
func Location(ctx context.Context, q database.Querier, text string) (*uuid.UUID, error) {
	if q == nil {
		return nil, fmt.Errorf("nil querier")
	}
	place, ok := parse.Location(text)
	if !ok {
		return nil, nil
	}

	_, _ = q.Exec(ctx,
		`INSERT INTO locations (id, name, city, state, country)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT ((lower(name))) DO NOTHING`,
		uuid.New(), place.Name, nullableText(place.City), nullableText(place.State), place.Country,
	)

	row := q.QueryRow(ctx, `SELECT id FROM locations WHERE lower(name) = lower($1) LIMIT 1`, place.Name)
	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return nil, fmt.Errorf("resolve location %q: %w", place.Name, err)
	}
	return &id, nil
}

func nullableText(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
