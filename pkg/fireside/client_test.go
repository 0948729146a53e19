package fireside

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDataSource is a testify mock of the DataSource interface
type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) Bills(ctx context.Context) ([]*Bill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Bill), args.Error(1)
}

func (m *MockDataSource) Incomes(ctx context.Context) ([]*Income, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Income), args.Error(1)
}

func (m *MockDataSource) Debts(ctx context.Context) ([]*Debt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Debt), args.Error(1)
}

func (m *MockDataSource) Transactions(ctx context.Context, from, to time.Time) ([]*Transaction, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Transaction), args.Error(1)
}

func (m *MockDataSource) Settings(ctx context.Context) (*Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Settings), args.Error(1)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestClient(t *testing.T, source DataSource, today time.Time) *Client {
	t.Helper()
	client, err := NewClient(&Options{
		DataSource: source,
		Clock:      fixedClock(today),
	})
	require.NoError(t, err)
	return client
}

func TestProjectionService_Project(t *testing.T) {
	today := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	source := new(MockDataSource)
	source.On("Bills", mock.Anything).Return([]*Bill{
		{Name: "Rent", Amount: 1450, Frequency: "monthly", DueDay: 1, IsActive: true},
	}, nil)
	source.On("Incomes", mock.Anything).Return([]*Income{
		{Name: "Salary", Amount: 2600, Frequency: "biweekly", NextPaymentDate: NewDate(2025, time.September, 5), IsActive: true},
	}, nil)
	source.On("Debts", mock.Anything).Return([]*Debt{}, nil)
	source.On("Settings", mock.Anything).Return(&Settings{CheckingBalance: 3200}, nil)

	client := newTestClient(t, source, today)
	projection, err := client.Projection.Project(context.Background(), 30)

	require.NoError(t, err)
	require.Len(t, projection, 31)
	assert.Equal(t, "2025-09-01", projection[0].Date.String())
	// Rent lands on day one: 3200 - 1450
	assert.Equal(t, 1750.0, projection[0].Balance)
	source.AssertExpectations(t)
}

func TestProjectionService_SafeToSpend_UsesSettingsBuffer(t *testing.T) {
	today := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	source := new(MockDataSource)
	source.On("Bills", mock.Anything).Return([]*Bill{}, nil)
	source.On("Incomes", mock.Anything).Return([]*Income{}, nil)
	source.On("Debts", mock.Anything).Return([]*Debt{}, nil)
	source.On("Settings", mock.Anything).Return(&Settings{
		CheckingBalance: 1500,
		SafetyBuffer:    750,
	}, nil)

	client := newTestClient(t, source, today)
	summary, err := client.Projection.SafeToSpend(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 750.0, summary.Buffer)
	assert.Equal(t, 750.0, summary.SafeToSpend)
	assert.True(t, summary.Tight)
}

func TestProjectionService_Aging(t *testing.T) {
	today := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	source := new(MockDataSource)
	source.On("Bills", mock.Anything).Return([]*Bill{
		{Name: "Power", Amount: 120, Frequency: "monthly", DueDay: 5, IsActive: true},
	}, nil)
	source.On("Incomes", mock.Anything).Return([]*Income{}, nil)
	source.On("Debts", mock.Anything).Return([]*Debt{}, nil)
	source.On("Settings", mock.Anything).Return(&Settings{}, nil)

	client := newTestClient(t, source, today)
	report, err := client.Projection.Aging(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Critical.Items, 1)
	assert.Equal(t, "Power", report.Critical.Items[0].Source)
}

func TestBudgetService_Evaluate(t *testing.T) {
	today := time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)

	source := new(MockDataSource)
	source.On("Settings", mock.Anything).Return(&Settings{
		CategoryBudgets: map[string]float64{"groceries": 400},
	}, nil)
	source.On("Transactions", mock.Anything,
		time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC),
	).Return([]*Transaction{
		{Date: NewDate(2025, time.August, 4), Amount: -120, Category: "groceries"},
	}, nil)

	client := newTestClient(t, source, today)
	report, err := client.Budgets.Evaluate(context.Background(), "2025-08")

	require.NoError(t, err)
	result := findCategory(t, report, "groceries")
	assert.Equal(t, 120.0, result.Actual)
	assert.Equal(t, BudgetUnder, result.Status)
	source.AssertExpectations(t)
}

func TestBudgetService_Evaluate_RejectsBadMonth(t *testing.T) {
	client := newTestClient(t, new(MockDataSource), time.Now())

	for _, month := range []string{"2025-13", "August", "2025/08", "", "2025-8"} {
		_, err := client.Budgets.Evaluate(context.Background(), month)
		assert.ErrorIs(t, err, ErrInvalidMonth, "month %q", month)
	}
}

func TestBudgetService_CurrentMonth(t *testing.T) {
	today := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)

	source := new(MockDataSource)
	source.On("Settings", mock.Anything).Return(&Settings{}, nil)
	source.On("Transactions", mock.Anything, mock.Anything, mock.Anything).Return([]*Transaction{}, nil)

	client := newTestClient(t, source, today)
	report, err := client.Budgets.CurrentMonth(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2025-07", report.Month)
}

func TestRecurringService_Summary(t *testing.T) {
	today := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	source := new(MockDataSource)
	source.On("Bills", mock.Anything).Return([]*Bill{
		{Name: "Rent", Amount: 1450, Frequency: "monthly", DueDay: 1, IsActive: true},
		{Name: "Old Sub", Amount: 20, Frequency: "monthly", DueDay: 5, IsActive: false},
	}, nil)
	source.On("Incomes", mock.Anything).Return([]*Income{
		{Name: "Salary", Amount: 1200, Frequency: "biweekly", NextPaymentDate: NewDate(2025, time.May, 2), IsActive: true},
	}, nil)
	source.On("Debts", mock.Anything).Return([]*Debt{
		{Name: "Car Loan", MonthlyPayment: 389, NextPaymentDate: NewDate(2025, time.May, 10), IsActive: true},
	}, nil)
	source.On("Settings", mock.Anything).Return(&Settings{}, nil)

	client := newTestClient(t, source, today)
	summary, err := client.Recurring.Summary(context.Background())

	require.NoError(t, err)
	require.Len(t, summary.Items, 3, "inactive items are excluded")
	assert.InDelta(t, 1200*26.0/12.0, summary.MonthlyInflow, 1e-9)
	assert.InDelta(t, 1450+389, summary.MonthlyOutflow, 1e-9)
	assert.InDelta(t, summary.MonthlyInflow-summary.MonthlyOutflow, summary.MonthlyNet, 1e-9)
}

func TestClient_NoDataSource(t *testing.T) {
	client, err := NewClient(nil)
	require.NoError(t, err)

	_, err = client.Projection.Project(context.Background(), 30)
	assert.ErrorIs(t, err, ErrNoDataSource)

	_, err = client.Budgets.Evaluate(context.Background(), "2025-08")
	assert.ErrorIs(t, err, ErrNoDataSource)

	_, err = client.Recurring.List(context.Background())
	assert.ErrorIs(t, err, ErrNoDataSource)
}
