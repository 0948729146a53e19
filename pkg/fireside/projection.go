package fireside

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// DefaultProjectionDays is the projection horizon used when none is given
const DefaultProjectionDays = 90

// ProjectionParams are the inputs to a cash-flow projection. Today is the
// reference clock; it must be set by the caller so projections stay
// deterministic. Input slices are never mutated.
type ProjectionParams struct {
	StartBalance float64
	Incomes      []*Income
	Bills        []*Bill
	Debts        []*Debt
	Days         int
	Today        time.Time

	// Logger receives the unknown-frequency warning. Optional.
	Logger Logger
}

// Project builds a day-indexed ledger covering every calendar day from
// today through today+days inclusive. Each day carries its inflow and
// outflow occurrences, the net movement, and the running balance seeded
// from StartBalance. Inactive items are skipped; a bill already marked
// paid contributes no occurrence in the current calendar month.
func Project(params *ProjectionParams) []*LedgerDay {
	if params == nil {
		return nil
	}

	days := params.Days
	if days <= 0 {
		days = DefaultProjectionDays
	}

	today := params.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = midnight(today)

	// One empty ledger day per date, keyed by ISO date for O(1) lookup
	// while occurrences are distributed.
	ledger := make(map[string]*LedgerDay, days+1)
	for i := 0; i <= days; i++ {
		date := today.AddDate(0, 0, i)
		key := date.Format("2006-01-02")
		ledger[key] = &LedgerDay{Date: DateOf(date)}
	}

	push := func(date time.Time, amount float64, kind OccurrenceKind, source string) {
		day, ok := ledger[date.Format("2006-01-02")]
		if !ok {
			return
		}
		occ := Occurrence{
			Date:   DateOf(date),
			Amount: coerceAmount(amount),
			Kind:   kind,
			Source: source,
		}
		if kind == Inflow {
			day.Inflows = append(day.Inflows, occ)
		} else {
			day.Outflows = append(day.Outflows, occ)
		}
	}

	for _, income := range params.Incomes {
		if income == nil || !income.IsActive {
			continue
		}
		freq := resolveFrequency(income.Frequency, income.Name, params.Logger)
		for _, date := range OccurrencesWithin(today, income.StartDate().Time, freq, days) {
			push(date, income.Amount, Inflow, income.Name)
		}
	}

	for _, bill := range params.Bills {
		if bill == nil || !bill.IsActive {
			continue
		}
		start := dueDayAnchor(today, bill.DueDay)
		if start.IsZero() {
			continue
		}
		freq := resolveFrequency(bill.Frequency, bill.Name, params.Logger)
		// The due day stays the anchor even when the first occurrence was
		// clamped into a short month.
		for _, date := range occurrencesWithin(today, start, freq, days, bill.DueDay) {
			if bill.IsPaid && date.Year() == today.Year() && date.Month() == today.Month() {
				continue
			}
			push(date, bill.Amount, Outflow, bill.Name)
		}
	}

	for _, debt := range params.Debts {
		if debt == nil || !debt.IsActive {
			continue
		}
		for _, date := range OccurrencesWithin(today, debt.NextPaymentDate.Time, FrequencyMonthly, days) {
			push(date, debt.MonthlyPayment, Outflow, debt.Name)
		}
	}

	// Walk days in ascending date order accumulating the balance.
	result := make([]*LedgerDay, 0, len(ledger))
	for _, day := range ledger {
		result = append(result, day)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date.Time)
	})

	balance := params.StartBalance
	for _, day := range result {
		day.Net = day.InflowTotal() - day.OutflowTotal()
		balance += day.Net
		day.Balance = balance
	}

	return result
}

// dueDayAnchor maps a bill's day-of-month due date onto a concrete date
// in the reference month, clamping days past the month's end. Returns the
// zero time for out-of-range due days.
func dueDayAnchor(today time.Time, dueDay int) time.Time {
	if dueDay < 1 || dueDay > 31 {
		return time.Time{}
	}
	day := dueDay
	if last := daysInMonth(today.Year(), today.Month()); day > last {
		day = last
	}
	return time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, today.Location())
}

// resolveFrequency normalizes a raw frequency string, logging a warning
// and falling back to monthly when the spelling is unknown.
func resolveFrequency(raw, source string, logger Logger) Frequency {
	if raw == "" {
		return FrequencyMonthly
	}
	freq, ok := ParseFrequency(raw)
	if !ok && logger != nil {
		logger.Warn("unknown frequency, defaulting to monthly", "frequency", raw, "source", source)
	}
	return freq
}

// coerceAmount maps invalid numeric input to 0
func coerceAmount(amount float64) float64 {
	if amount < 0 || math.IsNaN(amount) {
		return 0
	}
	return amount
}

// projectionService implements the ProjectionService interface
type projectionService struct {
	client *Client
}

// Project fetches the current bills, income, debts, and settings from the
// data source and projects the running balance over the given horizon.
// Pass days <= 0 to use the configured horizon.
func (s *projectionService) Project(ctx context.Context, days int) ([]*LedgerDay, error) {
	snap, err := s.client.loadSnapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load projection inputs")
	}

	if days <= 0 {
		days = s.client.projectionDays(snap.settings)
	}

	return Project(&ProjectionParams{
		StartBalance: snap.settings.CheckingBalance,
		Incomes:      snap.incomes,
		Bills:        snap.bills,
		Debts:        snap.debts,
		Days:         days,
		Today:        s.client.now(),
		Logger:       s.client.options.Logger,
	}), nil
}

// SafeToSpend projects the configured horizon and derives the spendable
// summary from it.
func (s *projectionService) SafeToSpend(ctx context.Context) (*SpendSummary, error) {
	snap, err := s.client.loadSnapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load projection inputs")
	}

	projection := Project(&ProjectionParams{
		StartBalance: snap.settings.CheckingBalance,
		Incomes:      snap.incomes,
		Bills:        snap.bills,
		Debts:        snap.debts,
		Days:         s.client.projectionDays(snap.settings),
		Today:        s.client.now(),
		Logger:       s.client.options.Logger,
	})

	return SafeToSpend(projection, s.client.safetyBuffer(snap.settings)), nil
}

// Aging projects the configured horizon and buckets upcoming outflows by
// urgency.
func (s *projectionService) Aging(ctx context.Context) (*AgingReport, error) {
	snap, err := s.client.loadSnapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load projection inputs")
	}

	projection := Project(&ProjectionParams{
		StartBalance: snap.settings.CheckingBalance,
		Incomes:      snap.incomes,
		Bills:        snap.bills,
		Debts:        snap.debts,
		Days:         s.client.projectionDays(snap.settings),
		Today:        s.client.now(),
		Logger:       s.client.options.Logger,
	})

	return BillsAging(projection, s.client.now()), nil
}
