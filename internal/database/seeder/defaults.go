package seeder

// Defaults are the seeders every fresh database gets.
func Defaults() []Seeder {
	return []Seeder{
		LocationsSeeder{},
	}
}
