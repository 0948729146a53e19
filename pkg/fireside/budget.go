package fireside

import (
	"context"
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/pkg/errors"
)

const (
	// warningRatio is the fraction of a budget at which spending turns
	// amber ahead of actually exceeding it.
	warningRatio = 0.85

	// progressCap caps the reported progress percentage so one blown
	// category cannot distort a progress bar.
	progressCap = 150

	// incomeCategory is excluded from all actuals
	incomeCategory = "income"
)

// DashboardCategories is the fixed category set every budget report
// covers, whether or not the month had spending in them.
var DashboardCategories = []string{
	"housing",
	"utilities",
	"groceries",
	"dining",
	"transportation",
	"healthcare",
	"insurance",
	"subscriptions",
	"entertainment",
	"shopping",
	"personal",
	"debt",
	"savings",
	"other",
}

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// EvaluateBudget compares a per-category monthly budget map against the
// actual transaction amounts for the given month ("YYYY-MM"). Actuals sum
// the absolute transaction amounts per category; income transactions are
// excluded. Every dashboard category appears in the result along with any
// extra category present in the budget map.
func EvaluateBudget(month string, budgets map[string]float64, transactions []*Transaction) *BudgetReport {
	actuals := make(map[string]float64)
	for _, tx := range transactions {
		if tx == nil || tx.Date.IsZero() {
			continue
		}
		if tx.Date.Format("2006-01") != month {
			continue
		}
		category := normalizeCategory(tx.Category)
		if category == incomeCategory {
			continue
		}
		actuals[category] += math.Abs(coerceNumber(tx.Amount))
	}

	categories := categorySet(budgets, actuals)

	report := &BudgetReport{Month: month}
	for _, category := range categories {
		budget := coerceNumber(budgets[category])
		actual := actuals[category]
		report.Categories = append(report.Categories, evaluateCategory(category, budget, actual))

		report.Totals.Budget += budget
		report.Totals.Actual += actual
	}

	report.Totals.Variance = report.Totals.Actual - report.Totals.Budget
	report.Totals.Status = classifyBudget(report.Totals.Budget, report.Totals.Actual)

	return report
}

// evaluateCategory derives the budget result for a single category
func evaluateCategory(category string, budget, actual float64) *CategoryBudgetResult {
	result := &CategoryBudgetResult{
		Category: category,
		Budget:   budget,
		Actual:   actual,
		Variance: actual - budget,
		Status:   classifyBudget(budget, actual),
	}

	if budget > 0 {
		variancePct := (actual - budget) / budget * 100
		result.VariancePct = &variancePct

		progress := actual / budget * 100
		if progress > progressCap {
			progress = progressCap
		}
		result.ProgressPct = &progress
	}

	return result
}

// classifyBudget applies the 3 Amber Rule thresholds. Exactly one status
// holds for any budget/actual pair.
func classifyBudget(budget, actual float64) BudgetStatus {
	switch {
	case budget == 0:
		return BudgetUnbudgeted
	case actual > budget:
		return BudgetOver
	case actual > warningRatio*budget:
		return BudgetWarning
	default:
		return BudgetUnder
	}
}

// categorySet merges the dashboard categories with any extras found in
// the budget map or the month's spending, sorted for stable output.
func categorySet(budgets, actuals map[string]float64) []string {
	seen := make(map[string]bool, len(DashboardCategories))
	categories := make([]string, 0, len(DashboardCategories))

	for _, category := range DashboardCategories {
		seen[category] = true
		categories = append(categories, category)
	}

	var extras []string
	for category := range budgets {
		if category != "" && !seen[category] {
			seen[category] = true
			extras = append(extras, category)
		}
	}
	for category := range actuals {
		if category != "" && !seen[category] {
			seen[category] = true
			extras = append(extras, category)
		}
	}
	sort.Strings(extras)

	return append(categories, extras...)
}

// normalizeCategory folds an empty transaction category into "other"
func normalizeCategory(category string) string {
	if category == "" {
		return "other"
	}
	return category
}

// coerceNumber maps NaN and infinite input to 0
func coerceNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// Evaluate fetches the month's transactions and category budgets from
// the data source and runs the budget-vs-actuals engine over them.
func (s *budgetService) Evaluate(ctx context.Context, month string) (*BudgetReport, error) {
	if !monthPattern.MatchString(month) {
		return nil, errors.Wrapf(ErrInvalidMonth, "%q", month)
	}

	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidMonth, "%q", month)
	}
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)

	settings, err := s.client.fetchSettings(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get settings")
	}

	transactions, err := s.client.fetchTransactions(ctx, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transactions")
	}

	return EvaluateBudget(month, settings.CategoryBudgets, transactions), nil
}

// CurrentMonth evaluates the month containing the client's reference
// clock.
func (s *budgetService) CurrentMonth(ctx context.Context) (*BudgetReport, error) {
	return s.Evaluate(ctx, s.client.now().Format("2006-01"))
}
