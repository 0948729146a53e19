package fireside

import (
	"context"
	"time"
)

// DataSource supplies the engine's inputs. Implementations fetch from the
// hosted backend, a local snapshot store, or fixtures in tests; the
// engine itself never performs I/O.
type DataSource interface {
	// Bills retrieves all recurring bills
	Bills(ctx context.Context) ([]*Bill, error)

	// Incomes retrieves all recurring income sources
	Incomes(ctx context.Context) ([]*Income, error)

	// Debts retrieves all debts with recurring payments
	Debts(ctx context.Context) ([]*Debt, error)

	// Transactions retrieves transactions dated within [from, to]
	Transactions(ctx context.Context, from, to time.Time) ([]*Transaction, error)

	// Settings retrieves the user settings, category budgets included
	Settings(ctx context.Context) (*Settings, error)
}

// ProjectionService drives the cash-flow projector and its derived views
type ProjectionService interface {
	// Project builds the day-by-day ledger over the given horizon.
	// Pass days <= 0 for the configured default.
	Project(ctx context.Context, days int) ([]*LedgerDay, error)

	// SafeToSpend reports the spendable amount over the next two weeks
	SafeToSpend(ctx context.Context) (*SpendSummary, error)

	// Aging buckets upcoming bill outflows by urgency
	Aging(ctx context.Context) (*AgingReport, error)
}

// BudgetService compares category budgets against actual spending
type BudgetService interface {
	// Evaluate runs budget-vs-actuals for a month in YYYY-MM form
	Evaluate(ctx context.Context, month string) (*BudgetReport, error)

	// CurrentMonth evaluates the month containing the reference clock
	CurrentMonth(ctx context.Context) (*BudgetReport, error)
}

// RecurringService exposes the unified recurring-item view
type RecurringService interface {
	// List returns all active recurring items with monthly equivalents
	List(ctx context.Context) ([]*RecurringItem, error)

	// Summary aggregates recurring items into monthly inflow/outflow totals
	Summary(ctx context.Context) (*RecurringSummary, error)
}
