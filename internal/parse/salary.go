package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"ausjobs/internal/domain/job"
)

// SalaryRange is a parsed pay fragment. Min and Max are both set when
// anything parsed; a single figure fills both.
type SalaryRange struct {
	Min      decimal.NullDecimal
	Max      decimal.NullDecimal
	Currency string
	Type     job.SalaryType
	Raw      string
}

// Words that mark a fragment as actually being about pay. Without one
// of these (or a dollar sign) the fragment is ignored, which keeps
// result counters and pagination text out of the salary columns.
var salaryIndicators = []string{
	"salary", "package", "remuneration", "compensation",
}

var salaryExclusionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d+\s*-\s*\d+\s+of\s+\d+`),
	regexp.MustCompile(`(?i)\bpage\s+\d+`),
	regexp.MustCompile(`(?i)\bjobs?\s+found\b`),
	regexp.MustCompile(`(?i)\bof\s+\d+\s+jobs?\b`),
	regexp.MustCompile(`(?i)\bposted\b`),
	regexp.MustCompile(`(?i)\bago\b`),
}

var salaryNumberRe = regexp.MustCompile(`(?i)\$?\s*(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*(k\b)?`)

// Salary extracts a pay range from a text fragment. ok is false when
// the fragment carries no believable salary signal.
func Salary(text string) (SalaryRange, bool) {
	raw := NormalizeWhitespace(text)
	if raw == "" {
		return SalaryRange{}, false
	}
	lower := strings.ToLower(raw)

	if !hasSalaryIndicator(lower) {
		return SalaryRange{}, false
	}
	for _, re := range salaryExclusionRes {
		if re.MatchString(lower) {
			return SalaryRange{}, false
		}
	}

	amounts := extractAmounts(lower)
	if len(amounts) == 0 {
		return SalaryRange{}, false
	}

	min, max := amounts[0].value, amounts[0].value
	for _, a := range amounts[1:] {
		if a.value.LessThan(min) {
			min = a.value
		}
		if a.value.GreaterThan(max) {
			max = a.value
		}
	}

	out := SalaryRange{
		Min:      decimal.NullDecimal{Decimal: min, Valid: true},
		Max:      decimal.NullDecimal{Decimal: max, Valid: true},
		Currency: detectCurrency(lower),
		Type:     amounts[0].period,
		Raw:      raw,
	}
	return out, true
}

func hasSalaryIndicator(lower string) bool {
	if strings.Contains(lower, "$") {
		return true
	}
	for _, w := range salaryIndicators {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// amount is one accepted figure: its value, whether it sat next to a
// dollar sign, and the pay period of its nearest keyword.
type amount struct {
	value  decimal.Decimal
	dollar bool
	period job.SalaryType
}

func extractAmounts(lower string) []amount {
	marks := periodMarks(lower)
	locs := salaryNumberRe.FindAllStringSubmatchIndex(lower, -1)
	out := make([]amount, 0, len(locs))
	sawDollar := false
	for _, loc := range locs {
		numStr := strings.ReplaceAll(lower[loc[2]:loc[3]], ",", "")
		v, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			continue
		}
		if loc[4] >= 0 && v < 1000 {
			v *= 1000
		}
		period := nearestPeriod(marks, loc[2])
		if !plausibleAmount(v, period) {
			continue
		}
		a := amount{
			value:  decimal.NewFromFloat(v),
			dollar: lower[loc[0]] == '$',
			period: period,
		}
		if a.dollar {
			sawDollar = true
		}
		out = append(out, a)
	}

	// Currency-adjacent figures outrank bare ones: a reference number
	// or an hours figure never rides along with a real "$80,000".
	if sawDollar {
		kept := out[:0]
		for _, a := range out {
			if a.dollar {
				kept = append(kept, a)
			}
		}
		out = kept
	}
	return out
}

// Believable bands per pay period. Figures outside the band are
// treated as page noise, not pay.
func plausibleAmount(v float64, period job.SalaryType) bool {
	switch period {
	case job.SalaryHourly:
		return v >= 15 && v <= 500
	case job.SalaryDaily:
		return v >= 100 && v <= 3000
	case job.SalaryWeekly:
		return v >= 500 && v <= 10000
	case job.SalaryMonthly:
		return v >= 2000 && v <= 50000
	default:
		return v >= 20000 && v <= 2000000
	}
}

// Period keywords with their positions. The keyword nearest an amount
// decides that amount's pay period, so "$80,000 per annum, 38 hours
// per week" reads the 80,000 as yearly, not the whole fragment as
// hourly.
var periodMarkRes = []struct {
	re     *regexp.Regexp
	period job.SalaryType
}{
	{regexp.MustCompile(`\bhourly\b|\bper\s+hour\b|\ban\s+hour\b|\bp\.?h\.?\b|\bhr\b|\bhours?\b`), job.SalaryHourly},
	{regexp.MustCompile(`\bdaily\b|\bper\s+day\b|\bday\s+rate\b`), job.SalaryDaily},
	{regexp.MustCompile(`\bweekly\b|\bper\s+week\b|\bweek\b`), job.SalaryWeekly},
	{regexp.MustCompile(`\bmonthly\b|\bper\s+month\b|\bmonth\b`), job.SalaryMonthly},
	{regexp.MustCompile(`\byearly\b|\bper\s+year\b|\bannum\b|\bannual(?:ly)?\b|\bp\.?a\.?\b|\byear\b`), job.SalaryYearly},
}

type periodMark struct {
	pos    int
	period job.SalaryType
}

func periodMarks(lower string) []periodMark {
	var out []periodMark
	for _, pm := range periodMarkRes {
		for _, loc := range pm.re.FindAllStringIndex(lower, -1) {
			out = append(out, periodMark{pos: loc[0], period: pm.period})
		}
	}
	return out
}

func nearestPeriod(marks []periodMark, pos int) job.SalaryType {
	best := job.SalaryYearly
	bestDist := -1
	for _, m := range marks {
		d := m.pos - pos
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = m.period
		}
	}
	return best
}

func detectCurrency(lower string) string {
	switch {
	case strings.Contains(lower, "usd") || strings.Contains(lower, "us$"):
		return job.CurrencyUSD
	case strings.Contains(lower, "€") || strings.Contains(lower, "eur"):
		return job.CurrencyEUR
	case strings.Contains(lower, "£") || strings.Contains(lower, "gbp"):
		return job.CurrencyGBP
	default:
		return job.CurrencyAUD
	}
}
