package fireside

import (
	"context"

	"github.com/pkg/errors"
)

// recurringService implements the RecurringService interface
type recurringService struct {
	client *Client
}

// List returns every active bill, income source, and debt payment as a
// unified recurring item with its monthly-equivalent amount.
func (s *recurringService) List(ctx context.Context) ([]*RecurringItem, error) {
	snap, err := s.client.loadSnapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recurring items")
	}

	logger := s.client.options.Logger
	var items []*RecurringItem

	for _, income := range snap.incomes {
		if income == nil || !income.IsActive {
			continue
		}
		freq := resolveFrequency(income.Frequency, income.Name, logger)
		items = append(items, &RecurringItem{
			Name:              income.Name,
			Amount:            coerceAmount(income.Amount),
			Frequency:         freq,
			Kind:              Inflow,
			MonthlyEquivalent: MonthlyEquivalent(income.Amount, freq),
		})
	}

	for _, bill := range snap.bills {
		if bill == nil || !bill.IsActive {
			continue
		}
		freq := resolveFrequency(bill.Frequency, bill.Name, logger)
		items = append(items, &RecurringItem{
			Name:              bill.Name,
			Amount:            coerceAmount(bill.Amount),
			Frequency:         freq,
			Kind:              Outflow,
			MonthlyEquivalent: MonthlyEquivalent(bill.Amount, freq),
		})
	}

	for _, debt := range snap.debts {
		if debt == nil || !debt.IsActive {
			continue
		}
		items = append(items, &RecurringItem{
			Name:              debt.Name,
			Amount:            coerceAmount(debt.MonthlyPayment),
			Frequency:         FrequencyMonthly,
			Kind:              Outflow,
			MonthlyEquivalent: MonthlyEquivalent(debt.MonthlyPayment, FrequencyMonthly),
		})
	}

	return items, nil
}

// Summary aggregates the recurring items into monthly-equivalent inflow
// and outflow totals.
func (s *recurringService) Summary(ctx context.Context) (*RecurringSummary, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &RecurringSummary{Items: items}
	for _, item := range items {
		if item.Kind == Inflow {
			summary.MonthlyInflow += item.MonthlyEquivalent
		} else {
			summary.MonthlyOutflow += item.MonthlyEquivalent
		}
	}
	summary.MonthlyNet = summary.MonthlyInflow - summary.MonthlyOutflow

	return summary, nil
}
