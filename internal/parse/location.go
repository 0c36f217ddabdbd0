package parse

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultCountry = "Australia"

var stateByAbbrev = map[string]string{
	"nsw": "New South Wales",
	"vic": "Victoria",
	"qld": "Queensland",
	"wa":  "Western Australia",
	"sa":  "South Australia",
	"tas": "Tasmania",
	"act": "Australian Capital Territory",
	"nt":  "Northern Territory",
}

var stateByName = func() map[string]string {
	m := make(map[string]string, len(stateByAbbrev))
	for _, full := range stateByAbbrev {
		m[strings.ToLower(full)] = full
	}
	return m
}()

var capitalCityState = map[string]string{
	"sydney":    "New South Wales",
	"melbourne": "Victoria",
	"brisbane":  "Queensland",
	"perth":     "Western Australia",
	"adelaide":  "South Australia",
	"hobart":    "Tasmania",
	"canberra":  "Australian Capital Territory",
	"darwin":    "Northern Territory",
}

// Place is a canonicalized Australian location.
type Place struct {
	Name    string
	City    string
	State   string
	Country string
}

var (
	postcodeRe     = regexp.MustCompile(`\b\d{4}\b`)
	markupCharRe   = regexp.MustCompile(`[(){}\[\]=<>#/\\;:_@|]`)
	parentheticRe  = regexp.MustCompile(`\(([^)]+)\)`)
	locationPrefix = regexp.MustCompile(`(?i)^(location|located in|based in|where)[:\s]+`)
)

// Words that mean the fragment is site furniture or ad copy, not a
// place name.
var locationBadWords = []string{
	"visa", "available", "dates", "apply", "experience", "salary",
	"job", "jobs", "contact", "function", "click", "search", "login",
	"register", "email", "password", "filter", "sort", "results",
	"benefits", "sponsorship", "closing", "full time", "part time",
	"casual", "permanent", "remote", "hybrid",
}

var domVocabulary = []string{
	"form", "table", "tbody", "thead", "div", "span", "nav", "footer",
	"header", "button", "input", "select", "option", "script", "css",
	"html", "href", "src",
}

var titleCaser = cases.Title(language.English)

// PlausibleLocation reports whether a fragment could name an
// Australian place. It is deliberately strict: a wrong location is
// worse than no location.
func PlausibleLocation(text string) bool {
	s := NormalizeWhitespace(text)
	if len(s) < 2 || len(s) > 80 {
		return false
	}
	if markupCharRe.MatchString(s) {
		return false
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, " or ") || strings.Contains(lower, " and ") {
		return false
	}
	if strings.Count(s, ",") > 2 {
		return false
	}
	if len(strings.Fields(s)) > 10 {
		return false
	}
	for _, w := range locationBadWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	for _, w := range domVocabulary {
		if containsWord(lower, w) {
			return false
		}
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		tail := strings.TrimSpace(parts[len(parts)-1])
		tail = strings.TrimSpace(postcodeRe.ReplaceAllString(tail, ""))
		_, ok := resolveState(tail)
		return ok
	}

	stripped := strings.TrimSpace(postcodeRe.ReplaceAllString(s, ""))
	if containsState(stripped) {
		return true
	}
	_, isCapital := capitalCityState[strings.ToLower(stripped)]
	return isCapital
}

// Location canonicalizes a location fragment into a Place, expanding
// state abbreviations and building a "City, State" display name.
func Location(text string) (Place, bool) {
	s := NormalizeWhitespace(text)
	s = locationPrefix.ReplaceAllString(s, "")

	// A parenthetical often carries the cleaner form: "Sydney (NSW)".
	if m := parentheticRe.FindStringSubmatch(s); m != nil {
		inner := strings.TrimSpace(m[1])
		outer := NormalizeWhitespace(parentheticRe.ReplaceAllString(s, " "))
		if _, ok := resolveState(inner); ok && outer != "" {
			s = outer + ", " + inner
		} else {
			s = outer
		}
	}

	if !PlausibleLocation(s) {
		return Place{}, false
	}

	s = strings.TrimSpace(postcodeRe.ReplaceAllString(s, ""))
	s = strings.TrimSuffix(strings.TrimSpace(s), ",")

	// "NSW - Parramatta"
	if idx := strings.Index(s, " - "); idx > 0 {
		if state, ok := resolveState(strings.TrimSpace(s[:idx])); ok {
			return placeFor(strings.TrimSpace(s[idx+3:]), state), true
		}
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		tail := strings.TrimSpace(parts[len(parts)-1])
		state, ok := resolveState(tail)
		if !ok {
			return Place{}, false
		}
		city := strings.TrimSpace(strings.Join(parts[:len(parts)-1], " "))
		return placeFor(city, state), true
	}

	// "Parramatta NSW"
	fields := strings.Fields(s)
	if len(fields) >= 2 {
		if state, ok := resolveState(fields[len(fields)-1]); ok {
			city := strings.Join(fields[:len(fields)-1], " ")
			return placeFor(city, state), true
		}
	}

	// Trailing full state name: "Launceston Tasmania"
	for name, full := range stateByName {
		lower := strings.ToLower(s)
		if lower != name && strings.HasSuffix(lower, " "+name) {
			city := strings.TrimSpace(s[:len(s)-len(name)])
			return placeFor(city, full), true
		}
	}

	if state, ok := resolveState(s); ok {
		return Place{Name: state, State: state, Country: DefaultCountry}, true
	}

	if state, ok := capitalCityState[strings.ToLower(s)]; ok {
		return placeFor(s, state), true
	}

	return Place{}, false
}

func placeFor(city, state string) Place {
	city = titleCaser.String(strings.ToLower(NormalizeWhitespace(city)))
	if city == "" {
		return Place{Name: state, State: state, Country: DefaultCountry}
	}
	return Place{
		Name:    city + ", " + state,
		City:    city,
		State:   state,
		Country: DefaultCountry,
	}
}

func resolveState(tok string) (string, bool) {
	tok = strings.ToLower(strings.TrimSpace(tok))
	if tok == "" {
		return "", false
	}
	if full, ok := stateByAbbrev[tok]; ok {
		return full, true
	}
	if full, ok := stateByName[tok]; ok {
		return full, true
	}
	return "", false
}

func containsState(s string) bool {
	lower := strings.ToLower(s)
	for ab := range stateByAbbrev {
		if containsWord(lower, ab) {
			return true
		}
	}
	for name := range stateByName {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

func containsWord(haystack, word string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], word)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordChar(haystack[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(haystack) || !isWordChar(haystack[afterIdx])
		if before && after {
			return true
		}
		idx = i + len(word)
		if idx >= len(haystack) {
			return false
		}
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
