package fireside

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_MonthlyBillScenario(t *testing.T) {
	today := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	projection := Project(&ProjectionParams{
		StartBalance: 1000,
		Bills: []*Bill{
			{Name: "Internet", Amount: 100, Frequency: "monthly", DueDay: 15, IsActive: true},
		},
		Days:  30,
		Today: today,
	})

	require.Len(t, projection, 31)

	// Day 15 carries the outflow and the balance drops by exactly 100
	day15 := projection[14]
	assert.Equal(t, "2025-09-15", day15.Date.String())
	require.Len(t, day15.Outflows, 1)
	assert.Equal(t, 100.0, day15.Outflows[0].Amount)
	assert.Equal(t, "Internet", day15.Outflows[0].Source)
	assert.Equal(t, 900.0, day15.Balance)
	assert.Equal(t, 1000.0, projection[13].Balance)

	// Every other day is untouched
	for i, day := range projection {
		if i == 14 {
			continue
		}
		assert.Empty(t, day.Outflows, "day %s", day.Date)
		if i < 14 {
			assert.Equal(t, 1000.0, day.Balance)
		} else {
			assert.Equal(t, 900.0, day.Balance)
		}
	}
}

func TestProject_LedgerConservation(t *testing.T) {
	today := time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC)

	projection := Project(&ProjectionParams{
		StartBalance: 2500,
		Incomes: []*Income{
			{Name: "Salary", Amount: 2100, Frequency: "biweekly", NextPaymentDate: NewDate(2025, time.April, 4), IsActive: true},
		},
		Bills: []*Bill{
			{Name: "Rent", Amount: 1450, Frequency: "monthly", DueDay: 1, IsActive: true},
			{Name: "Gym", Amount: 45, Frequency: "monthly", DueDay: 20, IsActive: true},
		},
		Debts: []*Debt{
			{Name: "Car Loan", MonthlyPayment: 389, NextPaymentDate: NewDate(2025, time.April, 10), IsActive: true},
		},
		Days:  90,
		Today: today,
	})

	require.Len(t, projection, 91)

	previous := 2500.0
	for i, day := range projection {
		expected := previous + day.InflowTotal() - day.OutflowTotal()
		assert.InDelta(t, expected, day.Balance, 1e-9, "day %d (%s)", i, day.Date)
		assert.InDelta(t, day.InflowTotal()-day.OutflowTotal(), day.Net, 1e-9)
		previous = day.Balance
	}
}

func TestProject_Deterministic(t *testing.T) {
	params := &ProjectionParams{
		StartBalance: 800,
		Incomes: []*Income{
			{Name: "Freelance", Amount: 500, Frequency: "weekly", NextPaymentDate: NewDate(2025, time.May, 2), IsActive: true},
		},
		Bills: []*Bill{
			{Name: "Power", Amount: 130, Frequency: "monthly", DueDay: 12, IsActive: true},
		},
		Days:  60,
		Today: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
	}

	first, err := json.Marshal(Project(params))
	require.NoError(t, err)
	second, err := json.Marshal(Project(params))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestProject_DoesNotMutateInputs(t *testing.T) {
	bill := &Bill{Name: "Water", Amount: 60, Frequency: "monthly", DueDay: 5, IsActive: true}
	bills := []*Bill{bill}

	Project(&ProjectionParams{
		Bills: bills,
		Days:  30,
		Today: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, &Bill{Name: "Water", Amount: 60, Frequency: "monthly", DueDay: 5, IsActive: true}, bill)
}

func TestProject_SkipsInactiveItems(t *testing.T) {
	today := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	projection := Project(&ProjectionParams{
		StartBalance: 100,
		Bills: []*Bill{
			{Name: "Cancelled Sub", Amount: 15, Frequency: "monthly", DueDay: 10, IsActive: false},
		},
		Incomes: []*Income{
			{Name: "Old Job", Amount: 3000, Frequency: "biweekly", NextPaymentDate: NewDate(2025, time.August, 8), IsActive: false},
		},
		Days:  30,
		Today: today,
	})

	for _, day := range projection {
		assert.Empty(t, day.Inflows)
		assert.Empty(t, day.Outflows)
		assert.Equal(t, 100.0, day.Balance)
	}
}

func TestProject_PaidBillSkipsCurrentMonth(t *testing.T) {
	today := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	projection := Project(&ProjectionParams{
		Bills: []*Bill{
			{Name: "Rent", Amount: 1450, Frequency: "monthly", DueDay: 15, IsActive: true, IsPaid: true},
		},
		Days:  60,
		Today: today,
	})

	byDate := make(map[string]*LedgerDay)
	for _, day := range projection {
		byDate[day.Date.String()] = day
	}

	assert.Empty(t, byDate["2025-09-15"].Outflows, "paid bill must not hit the current month")
	require.Len(t, byDate["2025-10-15"].Outflows, 1, "paid bill still hits the next month")
}

func TestProject_DebtsAreAlwaysMonthly(t *testing.T) {
	today := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	projection := Project(&ProjectionParams{
		Debts: []*Debt{
			{Name: "Student Loan", MonthlyPayment: 220, NextPaymentDate: NewDate(2025, time.January, 5), IsActive: true},
		},
		Days:  90,
		Today: today,
	})

	var outflows []Occurrence
	for _, day := range projection {
		outflows = append(outflows, day.Outflows...)
	}

	require.Len(t, outflows, 3)
	assert.Equal(t, "2025-01-05", outflows[0].Date.String())
	assert.Equal(t, "2025-02-05", outflows[1].Date.String())
	assert.Equal(t, "2025-03-05", outflows[2].Date.String())
}

func TestProject_UnknownFrequencyFallsBackToMonthly(t *testing.T) {
	today := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	logger := &recordingLogger{}

	projection := Project(&ProjectionParams{
		Bills: []*Bill{
			{Name: "Mystery", Amount: 40, Frequency: "sometimes", DueDay: 10, IsActive: true},
		},
		Days:   60,
		Today:  today,
		Logger: logger,
	})

	var count int
	for _, day := range projection {
		count += len(day.Outflows)
	}
	assert.Equal(t, 2, count, "monthly fallback yields one occurrence per month")
	assert.NotEmpty(t, logger.warnings, "unknown frequency must be logged")
}

func TestProject_DefaultsAndEmptyInputs(t *testing.T) {
	today := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)

	projection := Project(&ProjectionParams{Today: today})

	require.Len(t, projection, DefaultProjectionDays+1)
	assert.Equal(t, "2025-02-10", projection[0].Date.String())
	assert.Equal(t, 0.0, projection[len(projection)-1].Balance)

	assert.Nil(t, Project(nil))
}

func TestProject_BillDueDayAnchorSurvivesShortMonths(t *testing.T) {
	today := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	projection := Project(&ProjectionParams{
		StartBalance: 5000,
		Bills: []*Bill{
			{Name: "Mortgage", Amount: 1200, Frequency: "monthly", DueDay: 31, IsActive: true},
		},
		Days:  90,
		Today: today,
	})

	var dates []string
	for _, day := range projection {
		if len(day.Outflows) > 0 {
			dates = append(dates, day.Date.String())
		}
	}

	// February clamps to the 28th, but the 31st stays the anchor
	assert.Equal(t, []string{"2025-02-28", "2025-03-31", "2025-04-30"}, dates)
}

func TestProject_IncomeAndDebtRowsWithoutActiveColumn(t *testing.T) {
	var income Income
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Payroll","amount":2000,"frequency":"monthly","next_payment_date":"2025-06-10"}`), &income))
	require.True(t, income.IsActive)

	var debt Debt
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Car Loan","monthly_payment":350,"next_payment_date":"2025-06-20"}`), &debt))
	require.True(t, debt.IsActive)

	today := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	projection := Project(&ProjectionParams{
		StartBalance: 1000,
		Incomes:      []*Income{&income},
		Debts:        []*Debt{&debt},
		Days:         30,
		Today:        today,
	})

	day10 := projection[9]
	assert.Equal(t, "2025-06-10", day10.Date.String())
	require.Len(t, day10.Inflows, 1)
	assert.Equal(t, 2000.0, day10.Inflows[0].Amount)

	day20 := projection[19]
	require.Len(t, day20.Outflows, 1)
	assert.Equal(t, 350.0, day20.Outflows[0].Amount)

	// An explicit false still deactivates
	var paused Income
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Side gig","amount":400,"frequency":"monthly","next_payment_date":"2025-06-10","is_active":false}`), &paused))
	assert.False(t, paused.IsActive)
}

// recordingLogger captures warnings for assertions
type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *recordingLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *recordingLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.warnings = append(l.warnings, msg)
}
func (l *recordingLogger) Error(msg string, keysAndValues ...interface{}) {}
