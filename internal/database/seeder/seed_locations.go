package seeder

import (
	"context"
	"fmt"

	"ausjobs/internal/database"
)

// LocationsSeeder preloads the capital cities so location resolution
// has canonical rows to attach to from the first run.
type LocationsSeeder struct{}

func (LocationsSeeder) Name() string { return "locations" }

func (LocationsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "locations", "id", "name", "city", "state", "country"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		City  string
		State string
	}{
		{City: "Sydney", State: "New South Wales"},
		{City: "Melbourne", State: "Victoria"},
		{City: "Brisbane", State: "Queensland"},
		{City: "Perth", State: "Western Australia"},
		{City: "Adelaide", State: "South Australia"},
		{City: "Hobart", State: "Tasmania"},
		{City: "Canberra", State: "Australian Capital Territory"},
		{City: "Darwin", State: "Northern Territory"},
	}

	for _, it := range items {
		name := it.City + ", " + it.State
		_, err := tx.Exec(
			ctx,
			`INSERT INTO locations (id, name, city, state, country)
			 VALUES (gen_random_uuid(), $1, $2, $3, 'Australia')
			 ON CONFLICT ((lower(name))) DO NOTHING`,
			name,
			it.City,
			it.State,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
