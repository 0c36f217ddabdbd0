package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSectionSplit(t *testing.T) {
	desc := strings.Join([]string{
		"About the role.",
		"Essential:",
		"Forklift licence and manual handling experience.",
		"Strong communication.",
		"Desirable:",
		"First aid certificate.",
		"Excel skills would be great.",
	}, "\n")

	e := NewExtractor(Vocabulary{})
	req, pref := e.Extract("Warehouse Storeperson", desc)

	assert.Contains(t, req, "Forklift")
	assert.Contains(t, req, "Manual Handling")
	assert.Contains(t, req, "Communication")
	assert.Contains(t, pref, "First Aid")
	assert.Contains(t, pref, "Excel")
}

func TestExtractDefaultsToRequired(t *testing.T) {
	e := NewExtractor(Vocabulary{})
	req, pref := e.Extract("", "We need python and sql experience plus excellent teamwork.")

	assert.Contains(t, req, "Python")
	assert.Contains(t, req, "Sql")
	require.NotEmpty(t, pref, "preferred list must never be empty")
}

func TestExtractRebalanceMovesSoftSkillsFirst(t *testing.T) {
	e := NewExtractor(Vocabulary{})
	req, pref := e.Extract("", "Requires python, sql and strong communication.")

	require.NotEmpty(t, req)
	require.NotEmpty(t, pref)
	assert.Contains(t, pref, "Communication")
	assert.Contains(t, req, "Python")
	assert.Contains(t, req, "Sql")
}

func TestExtractSynonyms(t *testing.T) {
	e := NewExtractor(Vocabulary{})
	req, _ := e.Extract("", "Must have MS Office and be a team player. Postgres essential.")

	assert.Contains(t, req, "Microsoft Office")
	assert.Contains(t, req, "Teamwork")
	assert.Contains(t, req, "Postgresql")
}

func TestExtractNoDuplicates(t *testing.T) {
	e := NewExtractor(Vocabulary{})
	req, pref := e.Extract("Python Developer", "Python, python and more Python. Did we mention python?")

	all := append(append([]string{}, req...), pref...)
	seen := map[string]int{}
	for _, s := range all {
		seen[s]++
	}
	for s, n := range seen {
		assert.Equal(t, 1, n, "skill %q appears %d times", s, n)
	}
}

func TestExtractFallbacksByTitle(t *testing.T) {
	e := NewExtractor(Vocabulary{})

	req, pref := e.Extract("Site Supervisor", "Great opportunity. Call us today.")
	require.NotEmpty(t, req)
	require.NotEmpty(t, pref)
	assert.Contains(t, req, "Leadership")

	req, pref = e.Extract("", "Great opportunity. Call us today.")
	assert.Equal(t, []string{"Communication", "Teamwork", "Problem Solving", "Time Management"}, req)
	assert.Equal(t, []string{"Leadership", "Initiative", "Attention To Detail", "Customer Focus"}, pref)
}

func TestExtractBothListsNonEmptyWithSingleMatch(t *testing.T) {
	e := NewExtractor(Vocabulary{})
	req, pref := e.Extract("", "Needs xero.")
	assert.NotEmpty(t, req)
	assert.NotEmpty(t, pref)
}

func TestExtractCapsListLength(t *testing.T) {
	desc := "python java javascript typescript sql mysql postgresql mongodb aws azure docker kubernetes react angular git linux"
	e := NewExtractor(Vocabulary{})
	req, _ := e.Extract("", desc)
	assert.LessOrEqual(t, len(req), maxPerList)
}
