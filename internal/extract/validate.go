package extract

import (
	"regexp"
	"strings"

	"ausjobs/internal/parse"
)

var (
	paginationRe = regexp.MustCompile(`(?i)^\d+\s*-\s*\d+\s+of\s+\d+`)
	pureNumberRe = regexp.MustCompile(`^[\d\s,.\-]+$`)
	navWordsRe   = regexp.MustCompile(`(?i)^(next|previous|prev|more|back|home|menu|search results?)$`)
)

// Words that suggest a fragment really is a role title. Used to prefer
// one candidate over another, never to reject.
var roleWords = []string{
	"manager", "engineer", "developer", "officer", "assistant",
	"coordinator", "specialist", "analyst", "consultant", "advisor",
	"nurse", "teacher", "driver", "operator", "technician", "chef",
	"supervisor", "director", "administrator", "labourer", "electrician",
	"accountant", "receptionist", "cleaner", "carer", "worker",
}

// ValidTitle rejects fragments that are page chrome rather than a
// role title. An invalid title invalidates the whole record.
func ValidTitle(s string) bool {
	s = parse.NormalizeWhitespace(s)
	if len(s) < 3 || len(s) > 300 {
		return false
	}
	if paginationRe.MatchString(s) || pureNumberRe.MatchString(s) || navWordsRe.MatchString(s) {
		return false
	}
	lower := strings.ToLower(s)
	for _, bad := range []string{"page not found", "access denied", "sign in", "log in", "error 404"} {
		if strings.Contains(lower, bad) {
			return false
		}
	}
	return true
}

// LooksLikeRole reports whether the fragment carries a role word,
// used to rank title candidates.
func LooksLikeRole(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range roleWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// ValidCompanyName rejects fragments that cannot be an employer name:
// locations, chrome, counters, or raw markup.
func ValidCompanyName(s string) bool {
	s = parse.NormalizeWhitespace(s)
	if len(s) < 2 || len(s) > 200 {
		return false
	}
	if paginationRe.MatchString(s) || pureNumberRe.MatchString(s) || navWordsRe.MatchString(s) {
		return false
	}
	lower := strings.ToLower(s)
	for _, bad := range []string{
		"apply", "click", "sign in", "log in", "register", "jobs found",
		"view all", "read more", "posted", "ago", "full time", "part time",
	} {
		if strings.Contains(lower, bad) {
			return false
		}
	}
	if strings.ContainsAny(s, "<>{}|") {
		return false
	}
	// A fragment that parses cleanly as a place is a location leak.
	if _, isPlace := parse.Location(s); isPlace {
		return false
	}
	return true
}
