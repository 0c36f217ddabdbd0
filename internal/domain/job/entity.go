package job

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Company struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	Website     string
	LogoURL     string
	Size        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Location struct {
	ID        uuid.UUID
	Name      string
	City      string
	State     string
	Country   string
	CreatedAt time.Time
}

type Posting struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	Description string

	CompanyID  uuid.UUID
	LocationID *uuid.UUID

	Category        string
	JobType         JobType
	ExperienceLevel string
	WorkMode        string

	SalaryMin      decimal.NullDecimal
	SalaryMax      decimal.NullDecimal
	SalaryCurrency string
	SalaryType     SalaryType
	SalaryRawText  string

	Skills          []string
	PreferredSkills []string

	ExternalSource string
	ExternalURL    string
	ExternalID     string
	PostedAgo      string
	DatePosted     time.Time

	Status         Status
	AdditionalInfo map[string]string

	ScrapedAt time.Time
	UpdatedAt time.Time
}

type ScrapeRun struct {
	ID             uuid.UUID
	Source         string
	StartedAt      time.Time
	FinishedAt     *time.Time
	Status         string
	ScrapedCount   int
	DuplicateCount int
	ErrorCount     int
	Message        string
}
