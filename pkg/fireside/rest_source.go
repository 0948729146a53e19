package fireside

import (
	"context"
	"net/url"
	"time"

	"github.com/firesidecapital/fireside-go/internal/transport"
	"github.com/pkg/errors"
)

// restSource is the DataSource implementation backed by the hosted
// PostgREST backend.
type restSource struct {
	transport *transport.RestTransport
}

// NewRESTDataSource builds a DataSource against a hosted backend. Most
// callers should let NewClient construct this from Options instead.
func NewRESTDataSource(baseURL, apiKey, token string) DataSource {
	trans := transport.NewRestTransport(&transport.Options{
		BaseURL: baseURL,
		APIKey:  apiKey,
	})
	if token != "" {
		trans.SetAuth(token)
	}
	return &restSource{transport: trans}
}

// Bills retrieves all recurring bills
func (s *restSource) Bills(ctx context.Context) ([]*Bill, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "due_date.asc")

	var bills []*Bill
	if err := s.transport.Get(ctx, "bills", query, &bills); err != nil {
		return nil, errors.Wrap(err, "failed to get bills")
	}
	return bills, nil
}

// Incomes retrieves all recurring income sources
func (s *restSource) Incomes(ctx context.Context) ([]*Income, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "next_payment_date.asc")

	var incomes []*Income
	if err := s.transport.Get(ctx, "income", query, &incomes); err != nil {
		return nil, errors.Wrap(err, "failed to get income")
	}
	return incomes, nil
}

// Debts retrieves all debts with recurring payments
func (s *restSource) Debts(ctx context.Context) ([]*Debt, error) {
	query := url.Values{}
	query.Set("select", "*")

	var debts []*Debt
	if err := s.transport.Get(ctx, "debts", query, &debts); err != nil {
		return nil, errors.Wrap(err, "failed to get debts")
	}
	return debts, nil
}

// Transactions retrieves transactions dated within [from, to]
func (s *restSource) Transactions(ctx context.Context, from, to time.Time) ([]*Transaction, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "date.desc")
	if !from.IsZero() {
		query.Add("date", "gte."+from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		query.Add("date", "lte."+to.Format("2006-01-02"))
	}

	var transactions []*Transaction
	if err := s.transport.Get(ctx, "transactions", query, &transactions); err != nil {
		return nil, errors.Wrap(err, "failed to get transactions")
	}
	return transactions, nil
}

// Settings retrieves the user settings row. A backend with no settings
// row yields an empty Settings rather than an error.
func (s *restSource) Settings(ctx context.Context) (*Settings, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("limit", "1")

	var rows []*Settings
	if err := s.transport.Get(ctx, "settings", query, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to get settings")
	}
	if len(rows) == 0 {
		return &Settings{}, nil
	}
	return rows[0], nil
}
