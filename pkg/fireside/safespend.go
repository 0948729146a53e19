package fireside

import "time"

const (
	// DefaultSafetyBuffer is the cushion subtracted from the projected
	// minimum balance before reporting spendable cash.
	DefaultSafetyBuffer = 500

	// safeToSpendHorizon is the number of ledger days (today plus the
	// next 14) scanned for the minimum balance.
	safeToSpendHorizon = 15

	// comfortableThreshold separates a comfortable safe-to-spend figure
	// from a tight one.
	comfortableThreshold = 1000
)

// SpendSummary reports how much can safely be spent over the next two
// weeks. SafeToSpend is floored at 0; LowestBalance keeps the true,
// possibly negative, projected minimum for diagnostics.
type SpendSummary struct {
	SafeToSpend   float64 `json:"safeToSpend"`
	LowestBalance float64 `json:"lowestBalance"`
	LowestDate    Date    `json:"lowestDate"`
	Buffer        float64 `json:"buffer"`
	Comfortable   bool    `json:"comfortable"`
	Tight         bool    `json:"tight"`
	Danger        bool    `json:"danger"`
}

// SafeToSpend scans the first 15 days of a projection, takes the minimum
// projected balance, and subtracts the safety buffer. Pass buffer <= 0 to
// use DefaultSafetyBuffer.
func SafeToSpend(projection []*LedgerDay, buffer float64) *SpendSummary {
	if buffer <= 0 {
		buffer = DefaultSafetyBuffer
	}

	summary := &SpendSummary{Buffer: buffer}
	if len(projection) == 0 {
		summary.Danger = true
		return summary
	}

	horizon := projection
	if len(horizon) > safeToSpendHorizon {
		horizon = horizon[:safeToSpendHorizon]
	}

	lowest := horizon[0].Balance
	lowestDate := horizon[0].Date
	for _, day := range horizon[1:] {
		if day.Balance < lowest {
			lowest = day.Balance
			lowestDate = day.Date
		}
	}

	safe := lowest - buffer
	if safe < 0 {
		safe = 0
	}

	summary.SafeToSpend = safe
	summary.LowestBalance = lowest
	summary.LowestDate = lowestDate
	summary.Comfortable = safe > comfortableThreshold
	summary.Tight = safe > 0 && safe <= comfortableThreshold
	summary.Danger = safe <= 0

	return summary
}

// AgingBucket groups upcoming outflows due inside one urgency window
type AgingBucket struct {
	Items []Occurrence `json:"items"`
	Total float64      `json:"total"`
}

// AgingReport buckets upcoming bill outflows by how soon they are due:
// critical within 7 days, upcoming within 8-30, planned within 31-60.
// Outflows more than 60 days out are not reported.
type AgingReport struct {
	Critical AgingBucket `json:"critical"`
	Upcoming AgingBucket `json:"upcoming"`
	Planned  AgingBucket `json:"planned"`
}

// BillsAging walks every outflow occurrence in the projection and buckets
// it by calendar-day distance from today.
func BillsAging(projection []*LedgerDay, today time.Time) *AgingReport {
	report := &AgingReport{}
	today = midnight(today)

	for _, day := range projection {
		for _, occ := range day.Outflows {
			if occ.Date.Before(today) {
				continue
			}
			daysOut := daysBetween(today, occ.Date.Time)

			switch {
			case daysOut <= 7:
				report.Critical.Items = append(report.Critical.Items, occ)
				report.Critical.Total += occ.Amount
			case daysOut <= 30:
				report.Upcoming.Items = append(report.Upcoming.Items, occ)
				report.Upcoming.Total += occ.Amount
			case daysOut <= 60:
				report.Planned.Items = append(report.Planned.Items, occ)
				report.Planned.Total += occ.Amount
			}
		}
	}

	return report
}
