package resolve

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ausjobs/internal/database"
	"ausjobs/internal/domain/job"
)

type companyRow struct {
	id   uuid.UUID
	name string
	logo string
}

type locationRow struct {
	id   uuid.UUID
	name string
}

type fakeQuerier struct {
	companies []*companyRow
	locations []*locationRow
}

func (f *fakeQuerier) Exec(_ context.Context, query string, args ...any) (int64, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(q, "insert into companies"):
		name := args[1].(string)
		if f.findCompany(name) != nil {
			return 0, nil
		}
		logo := ""
		if s, ok := args[3].(string); ok {
			logo = s
		}
		f.companies = append(f.companies, &companyRow{id: args[0].(uuid.UUID), name: name, logo: logo})
		return 1, nil
	case strings.HasPrefix(q, "update companies"):
		id := args[0].(uuid.UUID)
		for _, c := range f.companies {
			if c.id == id {
				c.logo = args[1].(string)
			}
		}
		return 1, nil
	case strings.HasPrefix(q, "insert into locations"):
		name := args[1].(string)
		if f.findLocation(name) != nil {
			return 0, nil
		}
		f.locations = append(f.locations, &locationRow{id: args[0].(uuid.UUID), name: name})
		return 1, nil
	}
	return 0, nil
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeQuerier) QueryRow(_ context.Context, query string, args ...any) database.Row {
	q := strings.ToLower(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(q, "select id, coalesce(logo_url"):
		if c := f.findCompany(args[0].(string)); c != nil {
			return fakeRow{vals: []any{c.id, c.logo}}
		}
	case strings.HasPrefix(q, "select id from locations"):
		if l := f.findLocation(args[0].(string)); l != nil {
			return fakeRow{vals: []any{l.id}}
		}
	}
	return fakeRow{err: fmt.Errorf("no rows")}
}

func (f *fakeQuerier) findCompany(name string) *companyRow {
	for _, c := range f.companies {
		if strings.EqualFold(c.name, name) {
			return c
		}
	}
	return nil
}

func (f *fakeQuerier) findLocation(name string) *locationRow {
	for _, l := range f.locations {
		if strings.EqualFold(l.name, name) {
			return l
		}
	}
	return nil
}

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan dest mismatch")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *uuid.UUID:
			*d = r.vals[i].(uuid.UUID)
		case *string:
			*d = r.vals[i].(string)
		default:
			return fmt.Errorf("unsupported scan type")
		}
	}
	return nil
}

func TestCompanyCaseInsensitiveDedup(t *testing.T) {
	f := &fakeQuerier{}
	ctx := context.Background()

	a, err := Company(ctx, f, "Acme Holdings", "")
	require.NoError(t, err)
	b, err := Company(ctx, f, "ACME HOLDINGS", "")
	require.NoError(t, err)
	c, err := Company(ctx, f, "  acme   holdings  ", "")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.Len(t, f.companies, 1)
}

func TestCompanyInvalidNameFallsBackToUnknown(t *testing.T) {
	f := &fakeQuerier{}
	id, err := Company(context.Background(), f, "Sydney, NSW", "")
	require.NoError(t, err)
	require.Len(t, f.companies, 1)
	assert.Equal(t, job.UnknownCompany, f.companies[0].name)
	assert.Equal(t, f.companies[0].id, id)
}

func TestCompanyLogoBackfillOnlyWhenEmpty(t *testing.T) {
	f := &fakeQuerier{}
	ctx := context.Background()

	_, err := Company(ctx, f, "Acme Holdings", "")
	require.NoError(t, err)
	_, err = Company(ctx, f, "Acme Holdings", "https://cdn.example.com/acme.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/acme.png", f.companies[0].logo)

	_, err = Company(ctx, f, "Acme Holdings", "https://cdn.example.com/other.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/acme.png", f.companies[0].logo, "existing logo must not be overwritten")
}

func TestLocationResolution(t *testing.T) {
	f := &fakeQuerier{}
	ctx := context.Background()

	a, err := Location(ctx, f, "Sydney, NSW")
	require.NoError(t, err)
	require.NotNil(t, a)

	b, err := Location(ctx, f, "sydney nsw 2000")
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, *a, *b)
	assert.Len(t, f.locations, 1)
	assert.Equal(t, "Sydney, New South Wales", f.locations[0].name)
}

func TestLocationImplausibleIsNil(t *testing.T) {
	f := &fakeQuerier{}
	got, err := Location(context.Background(), f, "Apply now")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, f.locations)
}
