package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	relativeRe = regexp.MustCompile(`(?i)\b(\d+)\s*(hour|day|week|month)s?\s+ago\b`)
	ordinalRe  = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	postedRe   = regexp.MustCompile(`(?i)^(posted|listed|date posted|added)[:\s]+`)
)

// Explicit layouts tried before the tolerant fallback. Australian
// boards write day-first, so these take precedence over ParseAny,
// which assumes US ordering for ambiguous numeric dates.
var dateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"2-Jan-2006",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2006-01-02",
	"2006/1/2",
	"January 2, 2006",
}

// Date interprets a posting-date fragment. Unparseable input falls
// back to now so a bad date never blocks a record.
func Date(text string, now time.Time) time.Time {
	if t, ok := DateStrict(text, now); ok {
		return t
	}
	return now
}

// DateStrict is Date without the fallback, for fields like closing
// dates where "could not parse" matters.
func DateStrict(text string, now time.Time) (time.Time, bool) {
	s := NormalizeWhitespace(text)
	if s == "" {
		return time.Time{}, false
	}
	s = postedRe.ReplaceAllString(s, "")
	lower := strings.ToLower(s)

	switch {
	case strings.Contains(lower, "just posted"), strings.Contains(lower, "today"):
		return atNine(now), true
	case strings.Contains(lower, "yesterday"):
		return atNine(now.AddDate(0, 0, -1)), true
	}

	if m := relativeRe.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 0 {
			switch m[2] {
			case "hour":
				return now.Add(-time.Duration(n) * time.Hour), true
			case "day":
				return now.AddDate(0, 0, -n), true
			case "week":
				return now.AddDate(0, 0, -7*n), true
			case "month":
				return now.AddDate(0, 0, -30*n), true
			}
		}
	}

	cleaned := ordinalRe.ReplaceAllString(s, "$1")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			if saneYear(t, now) {
				return t, true
			}
		}
	}

	if t, err := dateparse.ParseAny(cleaned); err == nil && saneYear(t, now) {
		return t, true
	}

	return time.Time{}, false
}

func atNine(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 9, 0, 0, 0, t.Location())
}

func saneYear(t time.Time, now time.Time) bool {
	y := t.Year()
	return y >= 2000 && y <= now.Year()+1
}
