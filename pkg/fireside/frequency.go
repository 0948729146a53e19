package fireside

import (
	"math"
	"strings"
	"time"
)

// Frequency is the canonical recurrence cadence for a bill, income, or
// debt payment. Data-layer spellings ("bi-weekly", "annually", ...) are
// folded into these values by ParseFrequency at the boundary.
type Frequency string

const (
	FrequencyDaily       Frequency = "daily"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyBiweekly    Frequency = "biweekly"
	FrequencySemimonthly Frequency = "semimonthly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyBimonthly   Frequency = "bimonthly"
	FrequencyQuarterly   Frequency = "quarterly"
	FrequencySemiannual  Frequency = "semiannual"
	FrequencyAnnual      Frequency = "annual"
)

// frequencySynonyms maps every spelling seen in the data layer to its
// canonical frequency.
var frequencySynonyms = map[string]Frequency{
	"daily":        FrequencyDaily,
	"weekly":       FrequencyWeekly,
	"biweekly":     FrequencyBiweekly,
	"bi-weekly":    FrequencyBiweekly,
	"fortnightly":  FrequencyBiweekly,
	"every2weeks":  FrequencyBiweekly,
	"semimonthly":  FrequencySemimonthly,
	"semi-monthly": FrequencySemimonthly,
	"twicemonthly": FrequencySemimonthly,
	"monthly":      FrequencyMonthly,
	"bimonthly":    FrequencyBimonthly,
	"bi-monthly":   FrequencyBimonthly,
	"quarterly":    FrequencyQuarterly,
	"semiannual":   FrequencySemiannual,
	"semi-annual":  FrequencySemiannual,
	"semiannually": FrequencySemiannual,
	"biannual":     FrequencySemiannual,
	"annual":       FrequencyAnnual,
	"annually":     FrequencyAnnual,
	"yearly":       FrequencyAnnual,
}

// ParseFrequency normalizes a raw frequency string to its canonical value.
// The second return is false when the spelling is not recognized.
func ParseFrequency(s string) (Frequency, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "_", "")

	if f, ok := frequencySynonyms[key]; ok {
		return f, true
	}
	return FrequencyMonthly, false
}

// MonthlyFactor returns the multiplier that converts one occurrence amount
// at this frequency into a monthly-equivalent amount.
func (f Frequency) MonthlyFactor() float64 {
	switch f {
	case FrequencyDaily:
		return 30
	case FrequencyWeekly:
		return 52.0 / 12.0
	case FrequencyBiweekly:
		return 26.0 / 12.0
	case FrequencySemimonthly:
		return 2
	case FrequencyMonthly:
		return 1
	case FrequencyBimonthly:
		return 1.0 / 2.0
	case FrequencyQuarterly:
		return 1.0 / 3.0
	case FrequencySemiannual:
		return 1.0 / 6.0
	case FrequencyAnnual:
		return 1.0 / 12.0
	default:
		return 1
	}
}

// MonthlyEquivalent converts an amount recurring at the given frequency
// into its monthly-equivalent value. Negative or NaN inputs are treated
// as 0; an unrecognized frequency falls back to monthly.
func MonthlyEquivalent(amount float64, freq Frequency) float64 {
	if amount < 0 || math.IsNaN(amount) {
		amount = 0
	}
	return amount * freq.MonthlyFactor()
}

// AdvanceOneCycle returns the date exactly one recurrence period after t.
// Month and year steps clamp to the last day of the target month: a 31st
// anchor advancing into a shorter month lands on its final day instead of
// overflowing into the month after next. Callers that need a stable
// anchor day across repeated advances should use advanceAnchored.
func AdvanceOneCycle(t time.Time, freq Frequency) time.Time {
	return advanceAnchored(t, freq, t.Day())
}

// advanceAnchored advances t by one cycle, restoring the anchor day of
// month after clamped month steps (Jan 31 -> Feb 28 -> Mar 31).
func advanceAnchored(t time.Time, freq Frequency, anchorDay int) time.Time {
	if days := freq.cycleDays(); days > 0 {
		return t.AddDate(0, 0, days)
	}
	return addMonthsClamped(t, freq.cycleMonths(), anchorDay)
}

// cycleDays returns the fixed day step for day-based frequencies, or 0
// for month-based ones.
func (f Frequency) cycleDays() int {
	switch f {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencySemimonthly:
		// Two pay events per month, 15 days apart.
		return 15
	default:
		return 0
	}
}

// cycleMonths returns the month step for month-based frequencies.
// Unrecognized values advance monthly, matching ParseFrequency's
// fallback.
func (f Frequency) cycleMonths() int {
	switch f {
	case FrequencyBimonthly:
		return 2
	case FrequencyQuarterly:
		return 3
	case FrequencySemiannual:
		return 6
	case FrequencyAnnual:
		return 12
	default:
		return 1
	}
}

// addMonthsClamped moves t forward by the given number of months, landing
// on anchorDay or the last day of the target month, whichever is earlier.
func addMonthsClamped(t time.Time, months, anchorDay int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)

	day := anchorDay
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
