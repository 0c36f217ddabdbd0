package job

type JobType string

const (
	TypeFullTime   JobType = "full_time"
	TypePartTime   JobType = "part_time"
	TypeCasual     JobType = "casual"
	TypeContract   JobType = "contract"
	TypeTemporary  JobType = "temporary"
	TypeInternship JobType = "internship"
	TypeFreelance  JobType = "freelance"
)

func (t JobType) Valid() bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeCasual, TypeContract, TypeTemporary, TypeInternship, TypeFreelance:
		return true
	}
	return false
}

type SalaryType string

const (
	SalaryHourly  SalaryType = "hourly"
	SalaryDaily   SalaryType = "daily"
	SalaryWeekly  SalaryType = "weekly"
	SalaryMonthly SalaryType = "monthly"
	SalaryYearly  SalaryType = "yearly"
)

func (t SalaryType) Valid() bool {
	switch t {
	case SalaryHourly, SalaryDaily, SalaryWeekly, SalaryMonthly, SalaryYearly:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusExpired  Status = "expired"
	StatusFilled   Status = "filled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusExpired, StatusFilled:
		return true
	}
	return false
}

const (
	CurrencyAUD = "AUD"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
)

// Company size buckets, coarsest useful granularity.
const (
	SizeStartup    = "startup"
	SizeSmall      = "small"
	SizeMedium     = "medium"
	SizeLarge      = "large"
	SizeEnterprise = "enterprise"
)

// Storage field limits. Anything longer is truncated before persisting.
const (
	TitleMaxLen     = 200
	URLMaxLen       = 500
	PostedAgoMaxLen = 50
	NameMaxLen      = 200
	SalaryRawMaxLen = 120
)

const UnknownCompany = "Unknown Company"
