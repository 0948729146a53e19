package fireside

// BudgetStatus classifies a category's spending against its budget
type BudgetStatus string

const (
	// BudgetUnbudgeted means no budget is set for the category
	BudgetUnbudgeted BudgetStatus = "unbudgeted"

	// BudgetUnder means spending is safely inside the budget
	BudgetUnder BudgetStatus = "under"

	// BudgetWarning means spending has crossed 85% of the budget
	// without exceeding it (the "3 Amber Rule")
	BudgetWarning BudgetStatus = "warning"

	// BudgetOver means spending has exceeded the budget
	BudgetOver BudgetStatus = "over"
)

// CategoryBudgetResult compares one category's budget to its actual
// spending for a month. VariancePct and ProgressPct are nil when the
// category is unbudgeted.
type CategoryBudgetResult struct {
	Category    string       `json:"category"`
	Budget      float64      `json:"budget"`
	Actual      float64      `json:"actual"`
	Variance    float64      `json:"variance"`
	VariancePct *float64     `json:"variancePct,omitempty"`
	Status      BudgetStatus `json:"status"`
	ProgressPct *float64     `json:"progressPct,omitempty"`
}

// BudgetTotals aggregates budget and actual across all categories
type BudgetTotals struct {
	Budget   float64      `json:"budget"`
	Actual   float64      `json:"actual"`
	Variance float64      `json:"variance"`
	Status   BudgetStatus `json:"status"`
}

// BudgetReport is the full budget-vs-actuals result for one month
type BudgetReport struct {
	Month      string                  `json:"month"`
	Categories []*CategoryBudgetResult `json:"categories"`
	Totals     BudgetTotals            `json:"totals"`
}
