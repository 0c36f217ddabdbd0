package skills

// Vocabulary is the per-source skill dictionary. Sources ship their
// own lists when a board has a niche audience; DefaultVocabulary
// covers the general Australian market.
type Vocabulary struct {
	Technical []string
	Soft      []string
	Industry  []string

	// Synonyms maps variant spellings onto the canonical term, e.g.
	// "ms office" onto "microsoft office".
	Synonyms map[string]string
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Technical: []string{
			"python", "java", "javascript", "typescript", "golang", "c#", "c++",
			"sql", "mysql", "postgresql", "mongodb", "aws", "azure", "docker",
			"kubernetes", "react", "angular", "node.js", "git", "linux",
			"excel", "microsoft office", "power bi", "tableau", "salesforce",
			"sap", "xero", "myob", "autocad", "solidworks",
			"forklift", "heavy vehicle", "hr licence", "hc licence", "mr licence",
			"white card", "first aid", "rsa", "rcg", "police check",
			"working with children check", "manual handling", "food safety",
			"welding", "machining", "fitting", "electrical", "plumbing",
			"carpentry", "scaffolding", "rigging", "crane operation",
			"data entry", "typing", "bookkeeping", "payroll", "rostering",
			"point of sale", "cash handling", "stock control", "inventory management",
		},
		Soft: []string{
			"communication", "teamwork", "leadership", "problem solving",
			"time management", "attention to detail", "customer service",
			"customer focus", "initiative", "adaptability", "organisation",
			"interpersonal skills", "work ethic", "reliability", "flexibility",
			"multitasking", "conflict resolution", "decision making",
			"critical thinking", "negotiation", "presentation skills",
			"stakeholder management", "mentoring",
		},
		Industry: []string{
			"project management", "agile", "scrum", "occupational health and safety",
			"whs", "quality assurance", "quality control", "lean manufacturing",
			"supply chain", "logistics", "warehousing", "procurement",
			"account management", "business development", "digital marketing",
			"seo", "social media", "content creation", "copywriting",
			"recruitment", "training and development", "performance management",
			"aged care", "disability support", "nursing", "patient care",
			"medication management", "childcare", "early childhood education",
			"teaching", "curriculum development", "fundraising", "grant writing",
			"community engagement", "case management", "compliance",
			"risk management", "auditing", "financial reporting", "taxation",
			"budgeting", "forecasting", "legal research", "contract management",
		},
		Synonyms: map[string]string{
			"ms office":          "microsoft office",
			"office suite":       "microsoft office",
			"microsoft excel":    "excel",
			"spreadsheets":       "excel",
			"js":                 "javascript",
			"postgres":           "postgresql",
			"k8s":                "kubernetes",
			"ohs":                "occupational health and safety",
			"oh&s":               "occupational health and safety",
			"work health and safety": "whs",
			"customer service skills": "customer service",
			"team player":        "teamwork",
			"written and verbal": "communication",
			"organised":          "organisation",
			"organized":          "organisation",
			"detail oriented":    "attention to detail",
			"fork lift":          "forklift",
			"heavy rigid":        "hr licence",
		},
	}
}

// Fallbacks used when a description yields no matches at all. Every
// posting carries at least these, split by title signal first.
var fallbackTitleBuckets = []struct {
	keywords []string
	required []string
}{
	{
		keywords: []string{"manager", "supervisor", "lead", "head of", "coordinator"},
		required: []string{"Leadership", "Communication", "Time Management", "Decision Making"},
	},
	{
		keywords: []string{"driver", "operator", "labourer", "warehouse", "forklift"},
		required: []string{"Reliability", "Manual Handling", "Attention To Detail", "Teamwork"},
	},
	{
		keywords: []string{"nurse", "carer", "support worker", "aged care", "disability"},
		required: []string{"Patient Care", "Communication", "Empathy", "Teamwork"},
	},
	{
		keywords: []string{"sales", "retail", "customer", "hospitality", "barista", "waiter"},
		required: []string{"Customer Service", "Communication", "Cash Handling", "Teamwork"},
	},
}

var (
	fallbackRequired  = []string{"Communication", "Teamwork", "Problem Solving", "Time Management"}
	fallbackPreferred = []string{"Leadership", "Initiative", "Attention To Detail", "Customer Focus"}
)
