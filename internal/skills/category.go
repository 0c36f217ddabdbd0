package skills

import (
	"sort"
	"strings"

	"ausjobs/internal/domain/job"
)

// CategoryRule is a high-priority title rule checked before keyword
// scoring, e.g. anything titled "fundraising" lands in fundraising no
// matter what the body says.
type CategoryRule struct {
	Keyword  string
	Category string
}

var categoryKeywords = map[string][]string{
	"technology": {
		"software", "developer", "engineer", "programmer", "devops", "data analyst",
		"data scientist", "cyber", "it support", "systems administrator", "cloud",
		"web", "database", "network", "helpdesk",
	},
	"finance": {
		"accountant", "accounting", "finance", "financial", "bookkeeper", "payroll",
		"auditor", "tax", "banking", "treasury", "accounts payable", "accounts receivable",
	},
	"healthcare": {
		"nurse", "nursing", "doctor", "medical", "healthcare", "aged care", "carer",
		"physiotherapist", "pharmacist", "dental", "allied health", "disability support",
		"patient",
	},
	"marketing": {
		"marketing", "brand", "digital marketing", "seo", "social media", "content",
		"communications", "public relations", "campaign",
	},
	"sales": {
		"sales", "account manager", "business development", "account executive",
		"sales representative", "telesales",
	},
	"hr": {
		"human resources", "recruitment", "recruiter", "talent acquisition",
		"hr advisor", "hr manager", "people and culture", "workforce",
	},
	"education": {
		"teacher", "teaching", "educator", "tutor", "lecturer", "trainer",
		"early childhood", "childcare", "school", "curriculum",
	},
	"retail": {
		"retail", "store", "shop assistant", "merchandiser", "cashier",
		"customer service", "checkout",
	},
	"hospitality": {
		"chef", "cook", "barista", "waiter", "waitress", "bartender", "hotel",
		"restaurant", "kitchen", "hospitality", "housekeeping", "catering",
	},
	"construction": {
		"construction", "builder", "carpenter", "plumber", "electrician",
		"site manager", "estimator", "civil", "concreter", "bricklayer",
		"scaffolder", "labourer",
	},
	"manufacturing": {
		"manufacturing", "production", "assembly", "machine operator", "process worker",
		"factory", "fabricator", "welder", "cnc",
	},
	"consulting": {
		"consultant", "consulting", "advisory", "strategy",
	},
	"legal": {
		"lawyer", "solicitor", "paralegal", "legal", "conveyancing", "barrister",
		"compliance officer",
	},
	"office_support": {
		"administration", "administrative", "receptionist", "office manager",
		"executive assistant", "personal assistant", "data entry", "clerk",
		"office support",
	},
	"drivers_operators": {
		"driver", "forklift", "truck", "courier", "delivery", "operator",
		"machinery", "excavator", "crane",
	},
	"technical_engineering": {
		"mechanical engineer", "electrical engineer", "civil engineer",
		"maintenance", "technician", "fitter", "toolmaker", "engineering",
	},
	"transport_logistics": {
		"logistics", "warehouse", "supply chain", "freight", "despatch",
		"dispatch", "storeperson", "pick packer", "transport",
	},
	"mining_resources": {
		"mining", "mine", "drill", "fifo", "underground", "quarry", "rigger",
		"geologist", "resources",
	},
	"executive": {
		"chief executive", "ceo", "cfo", "coo", "general manager", "director",
		"head of", "executive director",
	},
	"fundraising": {
		"fundraising", "donor", "philanthropy", "grants", "appeals",
	},
}

// Deterministic scoring order so ties resolve the same way every run.
var categoryOrder = func() []string {
	out := make([]string, 0, len(categoryKeywords))
	for c := range categoryKeywords {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}()

type Categorizer struct {
	rules    []CategoryRule
	registry *job.CategoryRegistry
}

func NewCategorizer(registry *job.CategoryRegistry, rules []CategoryRule) *Categorizer {
	if registry == nil {
		registry = job.NewCategoryRegistry()
	}
	for _, r := range rules {
		registry.Extend(r.Category)
	}
	return &Categorizer{rules: rules, registry: registry}
}

// Categorize picks the posting category: explicit title rules first,
// then keyword scoring with title hits counted double.
func (c *Categorizer) Categorize(title, description string) string {
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	if c != nil {
		for _, r := range c.rules {
			if termPresent(titleLower, r.Keyword) {
				return c.registry.Normalize(r.Category)
			}
		}
	}

	best := job.CategoryOther
	bestScore := 0
	for _, cat := range categoryOrder {
		score := 0
		for _, kw := range categoryKeywords[cat] {
			score += 2 * countOccurrences(titleLower, kw)
			score += countOccurrences(descLower, kw)
		}
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}

	if c == nil || c.registry == nil {
		return best
	}
	return c.registry.Normalize(best)
}

func countOccurrences(haystack, term string) int {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return 0
	}
	count := 0
	idx := 0
	for {
		i := strings.Index(haystack[idx:], term)
		if i < 0 {
			return count
		}
		i += idx
		before := i == 0 || !isWordByte(haystack[i-1])
		afterIdx := i + len(term)
		after := afterIdx >= len(haystack) || !isWordByte(haystack[afterIdx])
		if before && after {
			count++
		}
		idx = i + len(term)
		if idx >= len(haystack) {
			return count
		}
	}
}
