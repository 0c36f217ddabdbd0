package parse

import (
	"strings"

	"ausjobs/internal/domain/job"
)

// JobType maps employment-type wording onto the closed enum. Later
// fragments only matter when earlier ones carry no signal; full time
// is the default because boards rarely label it.
func JobType(fragments ...string) job.JobType {
	for _, f := range fragments {
		lower := strings.ToLower(NormalizeWhitespace(f))
		if lower == "" {
			continue
		}
		switch {
		case strings.Contains(lower, "casual"):
			return job.TypeCasual
		case strings.Contains(lower, "part time") || strings.Contains(lower, "part-time"):
			return job.TypePartTime
		case strings.Contains(lower, "intern"):
			return job.TypeInternship
		case strings.Contains(lower, "freelance"):
			return job.TypeFreelance
		case strings.Contains(lower, "temp"):
			return job.TypeTemporary
		case strings.Contains(lower, "contract") || strings.Contains(lower, "fixed term"):
			return job.TypeContract
		case strings.Contains(lower, "full time") || strings.Contains(lower, "full-time") || strings.Contains(lower, "permanent"):
			return job.TypeFullTime
		}
	}
	return job.TypeFullTime
}
