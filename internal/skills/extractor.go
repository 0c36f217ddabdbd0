package skills

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ausjobs/internal/parse"
)

const maxPerList = 8

// Cues that flip the running section while walking a description.
// Anything before the first cue counts as required.
var (
	requiredCues = []string{
		"essential", "required", "must have", "mandatory",
		"minimum requirements", "key requirements", "you will need",
		"qualifications", "selection criteria",
	}
	preferredCues = []string{
		"preferred", "desirable", "advantageous", "nice to have",
		"a plus", "bonus", "ideal candidate", "would be great",
		"highly regarded",
	}
)

type Extractor struct {
	vocab  Vocabulary
	titler cases.Caser
}

func NewExtractor(v Vocabulary) *Extractor {
	if len(v.Technical) == 0 && len(v.Soft) == 0 && len(v.Industry) == 0 {
		v = DefaultVocabulary()
	}
	return &Extractor{vocab: v, titler: cases.Title(language.English)}
}

// Extract pulls skills out of a posting and splits them into required
// and preferred. Both lists come back non-empty: section cues decide
// the split where the description has them, otherwise matches default
// to required and the lists are rebalanced or filled from fallbacks.
func (e *Extractor) Extract(title, description string) (required, preferred []string) {
	if e == nil {
		return fallbackRequired, fallbackPreferred
	}

	var req, pref []string
	seen := mapset.NewThreadUnsafeSet[string]()

	add := func(term string, toPreferred bool) {
		canonical := strings.ToLower(strings.TrimSpace(term))
		if canonical == "" || seen.Contains(canonical) {
			return
		}
		seen.Add(canonical)
		if toPreferred {
			pref = append(pref, canonical)
		} else {
			req = append(req, canonical)
		}
	}

	// Title matches are always requirements.
	for _, term := range e.matchTerms(strings.ToLower(title)) {
		add(term, false)
	}

	inPreferred := false
	for _, line := range strings.Split(strings.ToLower(description), "\n") {
		line = parse.NormalizeWhitespace(line)
		if line == "" {
			continue
		}
		if containsAnyCue(line, preferredCues) {
			inPreferred = true
		} else if containsAnyCue(line, requiredCues) {
			inPreferred = false
		}
		for _, term := range e.matchTerms(line) {
			add(term, inPreferred)
		}
	}

	req, pref = rebalance(req, pref, e.vocab)

	if len(req) == 0 && len(pref) == 0 {
		return titleFallback(title), append([]string(nil), fallbackPreferred...)
	}

	// A lone match leaves one list empty; top it up from the fixed
	// fallbacks so both lists always carry something.
	if len(pref) == 0 {
		pref = fillFrom(fallbackPreferred, seen)
	}
	if len(req) == 0 {
		req = fillFrom(fallbackRequired, seen)
	}

	return e.present(req), e.present(pref)
}

// matchTerms returns every vocabulary term present in the fragment,
// resolving synonym variants to their canonical form.
func (e *Extractor) matchTerms(lower string) []string {
	var out []string
	scan := func(terms []string) {
		for _, t := range terms {
			if termPresent(lower, t) {
				out = append(out, t)
			}
		}
	}
	scan(e.vocab.Technical)
	scan(e.vocab.Soft)
	scan(e.vocab.Industry)
	for variant, canonical := range e.vocab.Synonyms {
		if termPresent(lower, variant) {
			out = append(out, canonical)
		}
	}
	return out
}

func termPresent(haystack, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	idx := 0
	for {
		i := strings.Index(haystack[idx:], term)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordByte(haystack[i-1])
		afterIdx := i + len(term)
		after := afterIdx >= len(haystack) || !isWordByte(haystack[afterIdx])
		if before && after {
			return true
		}
		idx = i + len(term)
		if idx >= len(haystack) {
			return false
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func containsAnyCue(line string, cues []string) bool {
	for _, c := range cues {
		if strings.Contains(line, c) {
			return true
		}
	}
	return false
}

// rebalance guarantees both lists end up non-empty whenever at least
// two skills were found. Soft skills move first: a posting that lists
// "communication" among hard requirements loses little by presenting
// it as preferred instead.
func rebalance(req, pref []string, vocab Vocabulary) ([]string, []string) {
	total := len(req) + len(pref)
	if total < 2 || (len(req) > 0 && len(pref) > 0) {
		return req, pref
	}

	soft := mapset.NewThreadUnsafeSet[string]()
	for _, s := range vocab.Soft {
		soft.Add(strings.ToLower(s))
	}

	// Move soft skills across, up to n of them; only raid the tail of
	// the list when no soft skill was available to move.
	move := func(from []string, n int) (kept, moved []string) {
		for _, s := range from {
			if len(moved) < n && soft.Contains(s) {
				moved = append(moved, s)
			} else {
				kept = append(kept, s)
			}
		}
		for len(moved) == 0 && len(kept) > 1 {
			moved = append(moved, kept[len(kept)-1])
			kept = kept[:len(kept)-1]
		}
		if len(kept) == 0 && len(moved) > 1 {
			kept = append(kept, moved[len(moved)-1])
			moved = moved[:len(moved)-1]
		}
		return kept, moved
	}

	if len(pref) == 0 {
		req, pref = move(req, 2)
	} else {
		pref, req = move(pref, 2)
	}
	return req, pref
}

func fillFrom(defaults []string, seen mapset.Set[string]) []string {
	out := make([]string, 0, 2)
	for _, d := range defaults {
		if seen.Contains(strings.ToLower(d)) {
			continue
		}
		out = append(out, strings.ToLower(d))
		if len(out) == 2 {
			break
		}
	}
	return out
}

func titleFallback(title string) []string {
	lower := strings.ToLower(title)
	for _, bucket := range fallbackTitleBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(lower, kw) {
				return append([]string(nil), bucket.required...)
			}
		}
	}
	return append([]string(nil), fallbackRequired...)
}

func (e *Extractor) present(terms []string) []string {
	if len(terms) > maxPerList {
		terms = terms[:maxPerList]
	}
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, e.titler.String(t))
	}
	return out
}
