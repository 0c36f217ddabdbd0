package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLToTextKeepsBlockBreaks(t *testing.T) {
	in := `<div><h2>About the role</h2><p>First paragraph.</p><ul><li>One</li><li>Two</li></ul>Line<br>Break</div>`
	got := HTMLToText(in)

	assert.Contains(t, got, "About the role\n")
	assert.Contains(t, got, "One\n")
	lines := strings.Split(got, "\n")
	assert.Greater(t, len(lines), 3)
}

func TestHTMLToTextDropsScripts(t *testing.T) {
	in := `<p>Visible</p><script>var hidden = 1;</script><style>.x{}</style>`
	got := HTMLToText(in)
	assert.Contains(t, got, "Visible")
	assert.NotContains(t, got, "hidden")
	assert.NotContains(t, got, ".x{}")
}

func TestCleanDescription(t *testing.T) {
	in := "We are hiring a nurse.\nApply now\nShare this job\nFacebook\nGreat benefits on offer."
	got := CleanDescription(in)
	assert.Contains(t, got, "We are hiring a nurse.")
	assert.Contains(t, got, "Great benefits on offer.")
	assert.NotContains(t, got, "Apply now")
	assert.NotContains(t, got, "Facebook")
}

func TestCleanDescriptionKeepsLongLinesMentioningNoiseWords(t *testing.T) {
	in := "Candidates should apply now through the council careers portal where the full position description is available."
	got := CleanDescription(in)
	assert.Contains(t, got, "council careers portal")
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a\n\tb   c  "))
	assert.Equal(t, "", NormalizeWhitespace("   "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "abcdef", Truncate("abcdef", 0))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "senior-nurse-icu", Slugify("Senior Nurse (ICU)"))
	assert.Equal(t, "abc-pty-ltd", Slugify("  ABC Pty. Ltd!  "))
}
