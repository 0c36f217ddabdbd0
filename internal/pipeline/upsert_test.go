package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ausjobs/internal/domain/job"
	"ausjobs/internal/extract"
	"ausjobs/internal/parse"
	"ausjobs/internal/store"
)

// fakeRecordStore keeps everything in memory and mimics the real
// store's resolution rules closely enough for outcome decisions.
type fakeRecordStore struct {
	existing  map[string]*store.Existing
	byExtID   map[string]*store.Existing
	locations map[string]uuid.UUID
	locNames  map[uuid.UUID]string
	inserted  []job.Posting
	patches   map[uuid.UUID]uuid.UUID

	insertConflict bool
	findErr        error
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		existing:  map[string]*store.Existing{},
		byExtID:   map[string]*store.Existing{},
		locations: map[string]uuid.UUID{},
		locNames:  map[uuid.UUID]string{},
		patches:   map[uuid.UUID]uuid.UUID{},
	}
}

func (s *fakeRecordStore) WithTx(ctx context.Context, fn func(tx store.RecordTx) error) error {
	return fn(s)
}

func (s *fakeRecordStore) FindExisting(_ context.Context, _, url, externalID string) (*store.Existing, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if row := s.existing[url]; row != nil {
		return row, nil
	}
	if externalID != "" {
		return s.byExtID[externalID], nil
	}
	return nil, nil
}

func (s *fakeRecordStore) ResolveCompany(_ context.Context, name, _ string) (uuid.UUID, error) {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)), nil
}

func (s *fakeRecordStore) ResolveLocation(_ context.Context, text string) (*uuid.UUID, error) {
	place, ok := parse.Location(text)
	if !ok {
		return nil, nil
	}
	id, ok := s.locations[place.Name]
	if !ok {
		id = uuid.New()
		s.locations[place.Name] = id
		s.locNames[id] = place.Name
	}
	return &id, nil
}

func (s *fakeRecordStore) Insert(_ context.Context, p job.Posting) (bool, error) {
	if s.insertConflict {
		return false, nil
	}
	s.inserted = append(s.inserted, p)
	row := &store.Existing{ID: uuid.New(), LocationID: p.LocationID}
	if p.LocationID != nil {
		row.LocationName = s.locNames[*p.LocationID]
	}
	s.existing[p.ExternalURL] = row
	if p.ExternalID != "" {
		s.byExtID[p.ExternalID] = row
	}
	return true, nil
}

func (s *fakeRecordStore) PatchLocation(_ context.Context, postingID, locationID uuid.UUID) error {
	s.patches[postingID] = locationID
	return nil
}

func testDraft() extract.Draft {
	return extract.Draft{
		Title:        "Registered Nurse",
		Company:      "Coastal Health Group",
		Description:  "Provide patient care in a busy regional hospital.",
		LocationText: "Newcastle, NSW",
		Salary: parse.SalaryRange{
			Min:      decimal.NewNullDecimal(decimal.NewFromInt(80000)),
			Max:      decimal.NewNullDecimal(decimal.NewFromInt(95000)),
			Currency: job.CurrencyAUD,
			Type:     job.SalaryYearly,
			Raw:      "$80,000 - $95,000 per year",
		},
		HasPay:     true,
		JobType:    job.TypeFullTime,
		Category:   "healthcare",
		Required:   []string{"Patient Care", "Communication"},
		Preferred:  []string{"Aged Care"},
		PostedAgo:  "3 days ago",
		DatePosted: time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC),
		URL:        "https://example.com/job/nurse-123",
		ExternalID: extract.ExternalIDFromURL("https://example.com/job/nurse-123"),
		Extra:      map[string]string{"title_source": "card"},
	}
}

func TestUpsertNew(t *testing.T) {
	st := newFakeRecordStore()
	u := NewUpserter(st, "workinaus", nil)
	u.SetClock(func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) })

	outcome, err := u.Upsert(context.Background(), testDraft())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNew, outcome)
	require.Len(t, st.inserted, 1)

	p := st.inserted[0]
	assert.Equal(t, "Registered Nurse", p.Title)
	assert.Equal(t, "workinaus", p.ExternalSource)
	assert.Equal(t, job.StatusActive, p.Status)
	assert.Equal(t, job.TypeFullTime, p.JobType)
	assert.True(t, p.SalaryMin.Valid)
	assert.Equal(t, "80000", p.SalaryMin.Decimal.String())
	assert.Equal(t, job.CurrencyAUD, p.SalaryCurrency)
	require.NotNil(t, p.LocationID)
	assert.Equal(t, []string{"Patient Care", "Communication"}, p.Skills)
	assert.Contains(t, p.Slug, "registered-nurse-")
	assert.Equal(t, time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), p.ScrapedAt)
}

func TestUpsertNoPayLeavesSalaryNull(t *testing.T) {
	st := newFakeRecordStore()
	u := NewUpserter(st, "workinaus", nil)

	d := testDraft()
	d.HasPay = false
	d.Salary = parse.SalaryRange{}

	outcome, err := u.Upsert(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNew, outcome)

	p := st.inserted[0]
	assert.False(t, p.SalaryMin.Valid)
	assert.False(t, p.SalaryMax.Valid)
	assert.Empty(t, p.SalaryRawText)
	assert.Equal(t, job.CurrencyAUD, p.SalaryCurrency)
	assert.Equal(t, job.SalaryYearly, p.SalaryType)
}

func TestUpsertDuplicate(t *testing.T) {
	st := newFakeRecordStore()
	d := testDraft()
	locID := uuid.New()
	st.existing[d.URL] = &store.Existing{
		ID:           uuid.New(),
		LocationID:   &locID,
		LocationName: "Newcastle, New South Wales",
	}

	u := NewUpserter(st, "workinaus", nil)
	outcome, err := u.Upsert(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)
	assert.Empty(t, st.inserted)
	assert.Empty(t, st.patches)
}

func TestUpsertDuplicateByExternalID(t *testing.T) {
	st := newFakeRecordStore()
	u := NewUpserter(st, "workinaus", nil)

	first, err := u.Upsert(context.Background(), testDraft())
	require.NoError(t, err)
	require.Equal(t, OutcomeNew, first)

	// Same board posting id behind a rewritten URL.
	d := testDraft()
	d.URL = "https://example.com/careers/registered-nurse?ref=homepage"

	outcome, err := u.Upsert(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)
	assert.Len(t, st.inserted, 1)
}

func TestUpsertPatchesMissingLocation(t *testing.T) {
	st := newFakeRecordStore()
	d := testDraft()
	existingID := uuid.New()
	st.existing[d.URL] = &store.Existing{ID: existingID}

	u := NewUpserter(st, "workinaus", nil)
	outcome, err := u.Upsert(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, OutcomePatched, outcome)
	require.Contains(t, st.patches, existingID)
	assert.Equal(t, st.locations["Newcastle, New South Wales"], st.patches[existingID])
}

func TestUpsertPatchesImplausibleStoredLocation(t *testing.T) {
	st := newFakeRecordStore()
	d := testDraft()
	existingID := uuid.New()
	staleID := uuid.New()
	st.existing[d.URL] = &store.Existing{
		ID:           existingID,
		LocationID:   &staleID,
		LocationName: "Apply Now >>",
	}

	u := NewUpserter(st, "workinaus", nil)
	outcome, err := u.Upsert(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, OutcomePatched, outcome)
	assert.Contains(t, st.patches, existingID)
}

func TestUpsertNoPatchWhenDraftLocationImplausible(t *testing.T) {
	st := newFakeRecordStore()
	d := testDraft()
	d.LocationText = "Apply for this role today"
	st.existing[d.URL] = &store.Existing{ID: uuid.New()}

	u := NewUpserter(st, "workinaus", nil)
	outcome, err := u.Upsert(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)
	assert.Empty(t, st.patches)
}

func TestUpsertRejectsInvalidDraft(t *testing.T) {
	st := newFakeRecordStore()
	u := NewUpserter(st, "workinaus", nil)

	d := testDraft()
	d.Title = ""
	outcome, err := u.Upsert(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome)

	d = testDraft()
	d.URL = ""
	outcome, err = u.Upsert(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome)

	assert.Empty(t, st.inserted)
}

func TestUpsertInsertConflictFoldsToDuplicate(t *testing.T) {
	st := newFakeRecordStore()
	st.insertConflict = true

	u := NewUpserter(st, "workinaus", nil)
	outcome, err := u.Upsert(context.Background(), testDraft())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)
}

func TestUpsertStorageErrorSurfaces(t *testing.T) {
	st := newFakeRecordStore()
	st.findErr = errors.New("connection reset")

	u := NewUpserter(st, "workinaus", nil)
	_, err := u.Upsert(context.Background(), testDraft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostingSlug(t *testing.T) {
	id := extract.ExternalIDFromURL("https://example.com/job/1")
	slug := postingSlug("Senior Software Engineer", id)
	assert.Contains(t, slug, "senior-software-engineer-")
	assert.Equal(t, id[len(id)-8:], slug[len(slug)-8:])

	assert.Equal(t, "posting-abc", postingSlug("!!!", "abc"))
}
