package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ausjobs/internal/domain/job"
)

func TestCategorizeByKeywords(t *testing.T) {
	c := NewCategorizer(job.NewCategoryRegistry(), nil)

	cases := []struct {
		title string
		desc  string
		want  string
	}{
		{"Senior Software Developer", "Build web applications in a cloud environment.", "technology"},
		{"Registered Nurse", "Provide patient care in an aged care facility.", "healthcare"},
		{"Forklift Driver", "Operate a forklift in our warehouse.", "drivers_operators"},
		{"Receptionist", "Administrative duties and data entry.", "office_support"},
		{"Commis Chef", "Work in a busy restaurant kitchen.", "hospitality"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Categorize(tc.title, tc.desc))
		})
	}
}

func TestCategorizeTitleWeighsDouble(t *testing.T) {
	c := NewCategorizer(job.NewCategoryRegistry(), nil)
	// Body mentions construction once, title says accountant: the
	// doubled title hit wins.
	got := c.Categorize("Accountant", "Join a construction business.")
	assert.Equal(t, "finance", got)
}

func TestCategorizeDefaultsToOther(t *testing.T) {
	c := NewCategorizer(job.NewCategoryRegistry(), nil)
	assert.Equal(t, "other", c.Categorize("Mystery Role", "No recognizable wording at all."))
}

func TestCategorizePriorityRules(t *testing.T) {
	rules := []CategoryRule{{Keyword: "fundraising", Category: "fundraising"}}
	c := NewCategorizer(job.NewCategoryRegistry(), rules)

	got := c.Categorize("Fundraising Coordinator", "Manage donor software and technology systems.")
	assert.Equal(t, "fundraising", got)
}

func TestCategorizeRegistryExtension(t *testing.T) {
	reg := job.NewCategoryRegistry()
	rules := []CategoryRule{{Keyword: "viticulture", Category: "agriculture"}}
	c := NewCategorizer(reg, rules)

	assert.True(t, reg.Valid("agriculture"))
	assert.Equal(t, "agriculture", c.Categorize("Viticulture Hand", "Seasonal vineyard work."))
}
