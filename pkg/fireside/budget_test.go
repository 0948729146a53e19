package fireside

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(date, category string, amount float64) *Transaction {
	var d Date
	_ = d.UnmarshalJSON([]byte(`"` + date + `"`))
	return &Transaction{Date: d, Amount: amount, Category: category}
}

func findCategory(t *testing.T, report *BudgetReport, category string) *CategoryBudgetResult {
	t.Helper()
	for _, result := range report.Categories {
		if result.Category == category {
			return result
		}
	}
	t.Fatalf("category %q not in report", category)
	return nil
}

func TestEvaluateBudget_ThreeAmberRule(t *testing.T) {
	tests := []struct {
		name     string
		budget   float64
		actual   float64
		expected BudgetStatus
	}{
		{"no budget set", 0, 120, BudgetUnbudgeted},
		{"well under", 300, 250, BudgetUnder},
		{"at the amber line", 300, 255, BudgetUnder},
		{"just past the amber line", 300, 260, BudgetWarning},
		{"at the budget", 300, 300, BudgetWarning},
		{"over", 300, 310, BudgetOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := EvaluateBudget("2025-08",
				map[string]float64{"groceries": tt.budget},
				[]*Transaction{txn("2025-08-12", "groceries", -tt.actual)},
			)

			result := findCategory(t, report, "groceries")
			assert.Equal(t, tt.expected, result.Status)
			assert.Equal(t, tt.actual, result.Actual)
			assert.Equal(t, tt.actual-tt.budget, result.Variance)
		})
	}
}

func TestEvaluateBudget_StatusPartition(t *testing.T) {
	// Exactly one status holds for any budget/actual pair
	pairs := []struct{ budget, actual float64 }{
		{0, 0}, {0, 50}, {100, 0}, {100, 84.9}, {100, 85}, {100, 85.1},
		{100, 99.9}, {100, 100}, {100, 100.1}, {250, 1000},
	}

	for _, p := range pairs {
		status := classifyBudget(p.budget, p.actual)
		matches := 0
		if p.budget == 0 {
			matches++
			assert.Equal(t, BudgetUnbudgeted, status)
		} else if p.actual > p.budget {
			matches++
			assert.Equal(t, BudgetOver, status)
		} else if p.actual > 0.85*p.budget {
			matches++
			assert.Equal(t, BudgetWarning, status)
		} else {
			matches++
			assert.Equal(t, BudgetUnder, status)
		}
		assert.Equal(t, 1, matches)
	}
}

func TestEvaluateBudget_SumsAbsoluteAmountsForMonth(t *testing.T) {
	report := EvaluateBudget("2025-08",
		map[string]float64{"dining": 200},
		[]*Transaction{
			txn("2025-08-02", "dining", -42.50),
			txn("2025-08-15", "dining", -18.25),
			txn("2025-08-20", "dining", 10), // refund still counts toward actuals
			txn("2025-07-30", "dining", -99), // previous month excluded
			txn("2025-09-01", "dining", -99), // next month excluded
		},
	)

	result := findCategory(t, report, "dining")
	assert.InDelta(t, 70.75, result.Actual, 1e-9)
}

func TestEvaluateBudget_ExcludesIncomeCategory(t *testing.T) {
	report := EvaluateBudget("2025-08",
		map[string]float64{},
		[]*Transaction{
			txn("2025-08-01", "income", 4200),
			txn("2025-08-03", "groceries", -80),
		},
	)

	for _, result := range report.Categories {
		assert.NotEqual(t, incomeCategory, result.Category)
	}
	assert.Equal(t, 80.0, report.Totals.Actual)
}

func TestEvaluateBudget_ProgressCappedAt150(t *testing.T) {
	report := EvaluateBudget("2025-08",
		map[string]float64{"shopping": 100},
		[]*Transaction{txn("2025-08-10", "shopping", -400)},
	)

	result := findCategory(t, report, "shopping")
	require.NotNil(t, result.ProgressPct)
	assert.Equal(t, 150.0, *result.ProgressPct)
	assert.Equal(t, BudgetOver, result.Status)
}

func TestEvaluateBudget_UnbudgetedHasNilProgress(t *testing.T) {
	report := EvaluateBudget("2025-08",
		map[string]float64{},
		[]*Transaction{txn("2025-08-10", "entertainment", -60)},
	)

	result := findCategory(t, report, "entertainment")
	assert.Nil(t, result.ProgressPct)
	assert.Nil(t, result.VariancePct)
	assert.Equal(t, BudgetUnbudgeted, result.Status)
}

func TestEvaluateBudget_CoversDashboardCategoriesAndExtras(t *testing.T) {
	report := EvaluateBudget("2025-08",
		map[string]float64{"pets": 75},
		nil,
	)

	for _, category := range DashboardCategories {
		findCategory(t, report, category)
	}
	extra := findCategory(t, report, "pets")
	assert.Equal(t, 75.0, extra.Budget)
	assert.Equal(t, BudgetUnder, extra.Status)
}

func TestEvaluateBudget_UncategorizedFallsBackToOther(t *testing.T) {
	report := EvaluateBudget("2025-08",
		map[string]float64{"other": 100},
		[]*Transaction{txn("2025-08-05", "", -30)},
	)

	result := findCategory(t, report, "other")
	assert.Equal(t, 30.0, result.Actual)
}

func TestEvaluateBudget_Totals(t *testing.T) {
	report := EvaluateBudget("2025-08",
		map[string]float64{"groceries": 400, "dining": 200},
		[]*Transaction{
			txn("2025-08-02", "groceries", -320),
			txn("2025-08-05", "dining", -240),
		},
	)

	assert.Equal(t, 600.0, report.Totals.Budget)
	assert.Equal(t, 560.0, report.Totals.Actual)
	assert.Equal(t, -40.0, report.Totals.Variance)
	// 560 > 0.85 * 600 = 510, aggregate is in the warning band
	assert.Equal(t, BudgetWarning, report.Totals.Status)
}

func TestEvaluateBudget_Idempotent(t *testing.T) {
	budgets := map[string]float64{"groceries": 400}
	transactions := []*Transaction{txn("2025-08-02", "groceries", -100)}

	first, err := json.Marshal(EvaluateBudget("2025-08", budgets, transactions))
	require.NoError(t, err)
	second, err := json.Marshal(EvaluateBudget("2025-08", budgets, transactions))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
