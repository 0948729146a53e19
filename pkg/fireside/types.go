package fireside

import "encoding/json"

// Bill represents a recurring obligation
type Bill struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
	DueDay    int     `json:"due_date"` // day of month, 1-31
	IsActive  bool    `json:"is_active"`
	IsPaid    bool    `json:"is_paid"`
}

// Income represents a recurring income source
type Income struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	Frequency       string  `json:"frequency"`
	NextPaymentDate Date    `json:"next_payment_date"`
	PayDate         Date    `json:"pay_date"` // legacy column, used when next_payment_date is absent
	IsActive        bool    `json:"is_active"`
}

// UnmarshalJSON defaults is_active to true when the column is absent.
// Income rows carry the field only on backends that support pausing a
// source; explicit false still deactivates.
func (i *Income) UnmarshalJSON(data []byte) error {
	type income Income
	aux := struct {
		*income
		IsActive *bool `json:"is_active"`
	}{income: (*income)(i)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	i.IsActive = aux.IsActive == nil || *aux.IsActive
	return nil
}

// StartDate returns the anchor date for occurrence generation, preferring
// next_payment_date over the legacy pay_date column.
func (i *Income) StartDate() Date {
	if !i.NextPaymentDate.IsZero() {
		return i.NextPaymentDate
	}
	return i.PayDate
}

// Debt represents a debt with a recurring payment. Debt payments are
// always treated as monthly.
type Debt struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MonthlyPayment  float64 `json:"monthly_payment"`
	NextPaymentDate Date    `json:"next_payment_date"`
	IsActive        bool    `json:"is_active"`
}

// UnmarshalJSON defaults is_active to true when the column is absent,
// mirroring Income.
func (d *Debt) UnmarshalJSON(data []byte) error {
	type debt Debt
	aux := struct {
		*debt
		IsActive *bool `json:"is_active"`
	}{debt: (*debt)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.IsActive = aux.IsActive == nil || *aux.IsActive
	return nil
}

// Transaction represents a bank transaction
type Transaction struct {
	ID       string  `json:"id"`
	Date     Date    `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Merchant string  `json:"merchant_name,omitempty"`
}

// Settings represents user settings
type Settings struct {
	CategoryBudgets map[string]float64 `json:"category_budgets"`
	SafetyBuffer    float64            `json:"safety_buffer"`
	CheckingBalance float64            `json:"checking_balance"`
	ProjectionDays  int                `json:"projection_days"`
}

// OccurrenceKind distinguishes money in from money out
type OccurrenceKind string

const (
	Inflow  OccurrenceKind = "inflow"
	Outflow OccurrenceKind = "outflow"
)

// Occurrence is one concrete future instance of a recurring item,
// materialized for a specific calendar date. Occurrences are generated
// fresh on every projection and never persisted.
type Occurrence struct {
	Date   Date           `json:"date"`
	Amount float64        `json:"amount"`
	Kind   OccurrenceKind `json:"kind"`
	Source string         `json:"source"`
}

// LedgerDay is one day of a projection: everything landing on that date
// plus the running balance after it.
//
// Invariants: Net equals the inflow total minus the outflow total, and
// Balance equals the previous day's balance plus Net.
type LedgerDay struct {
	Date     Date         `json:"date"`
	Inflows  []Occurrence `json:"inflows"`
	Outflows []Occurrence `json:"outflows"`
	Net      float64      `json:"net"`
	Balance  float64      `json:"balance"`
}

// InflowTotal sums the day's inflows
func (d *LedgerDay) InflowTotal() float64 {
	var total float64
	for _, o := range d.Inflows {
		total += o.Amount
	}
	return total
}

// OutflowTotal sums the day's outflows
func (d *LedgerDay) OutflowTotal() float64 {
	var total float64
	for _, o := range d.Outflows {
		total += o.Amount
	}
	return total
}

// RecurringItem is the unified read-only view of a bill, income, or debt
// payment with its monthly-equivalent amount.
type RecurringItem struct {
	Name              string         `json:"name"`
	Amount            float64        `json:"amount"`
	Frequency         Frequency      `json:"frequency"`
	Kind              OccurrenceKind `json:"kind"`
	MonthlyEquivalent float64        `json:"monthlyEquivalent"`
}

// RecurringSummary aggregates recurring items into monthly-equivalent
// inflow and outflow totals.
type RecurringSummary struct {
	Items          []*RecurringItem `json:"items"`
	MonthlyInflow  float64          `json:"monthlyInflow"`
	MonthlyOutflow float64          `json:"monthlyOutflow"`
	MonthlyNet     float64          `json:"monthlyNet"`
}
