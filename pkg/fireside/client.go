package fireside

import (
	"context"
	"net/http"
	"time"

	"github.com/firesidecapital/fireside-go/internal/transport"
	internalTypes "github.com/firesidecapital/fireside-go/internal/types"
	"github.com/getsentry/sentry-go"
)

const (
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// Client is the engine's entry point. It owns the data source, the
// reference clock, and the projection defaults, and exposes the engine
// through service interfaces. The pure functions (Project, SafeToSpend,
// BillsAging, EvaluateBudget) remain usable without a Client.
type Client struct {
	// Service interfaces
	Projection ProjectionService
	Budgets    BudgetService
	Recurring  RecurringService

	// Internal fields
	source  DataSource
	options *Options
	clock   func() time.Time
}

// Options configures the client
type Options struct {
	// DataSource supplies engine inputs. When nil and BaseURL is set, a
	// REST data source against the hosted backend is built instead.
	DataSource DataSource

	// BaseURL of the hosted backend (PostgREST style)
	BaseURL string

	// APIKey is the backend's public API key
	APIKey string

	// Token is a user JWT for row-level access; falls back to APIKey
	Token string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// RetryConfig configures transport retry behavior
	RetryConfig *internalTypes.RetryConfig

	// Hooks for request observability
	Hooks *internalTypes.Hooks

	// Logger for debug logging and data-quality warnings
	Logger Logger

	// Clock overrides the reference "today" used by projections.
	// Defaults to time.Now; inject a fixed clock in tests.
	Clock func() time.Time

	// ProjectionDays overrides the projection horizon
	ProjectionDays int

	// SafetyBuffer overrides the safe-to-spend cushion
	SafetyBuffer float64

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// NewClient creates a new Fireside engine client
func NewClient(opts *Options) (*Client, error) {
	if opts == nil {
		opts = &Options{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	source := opts.DataSource
	if source == nil && opts.BaseURL != "" {
		if opts.HTTPClient == nil {
			opts.HTTPClient = &http.Client{
				Timeout: DefaultTimeout,
			}
		}
		if opts.Timeout > 0 {
			opts.HTTPClient.Timeout = opts.Timeout
		}

		trans := transport.NewRestTransport(&transport.Options{
			BaseURL:     opts.BaseURL,
			APIKey:      opts.APIKey,
			HTTPClient:  opts.HTTPClient,
			RetryConfig: opts.RetryConfig,
			Logger:      opts.Logger,
			Hooks:       opts.Hooks,
		})
		if opts.Token != "" {
			trans.SetAuth(opts.Token)
		}
		source = &restSource{transport: trans}
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	c := &Client{
		source:  source,
		options: opts,
		clock:   clock,
	}

	c.initServices()

	return c, nil
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Projection = &projectionService{client: c}
	c.Budgets = &budgetService{client: c}
	c.Recurring = &recurringService{client: c}
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}

// now returns the reference "today"
func (c *Client) now() time.Time {
	return c.clock()
}

// projectionDays resolves the horizon: option override, then settings,
// then the default.
func (c *Client) projectionDays(settings *Settings) int {
	if c.options.ProjectionDays > 0 {
		return c.options.ProjectionDays
	}
	if settings != nil && settings.ProjectionDays > 0 {
		return settings.ProjectionDays
	}
	return DefaultProjectionDays
}

// safetyBuffer resolves the cushion: option override, then settings,
// then the default.
func (c *Client) safetyBuffer(settings *Settings) float64 {
	if c.options.SafetyBuffer > 0 {
		return c.options.SafetyBuffer
	}
	if settings != nil && settings.SafetyBuffer > 0 {
		return settings.SafetyBuffer
	}
	return DefaultSafetyBuffer
}

// snapshot holds one consistent fetch of every projection input
type snapshot struct {
	bills    []*Bill
	incomes  []*Income
	debts    []*Debt
	settings *Settings
}

// loadSnapshot fetches bills, income, debts, and settings in one pass
func (c *Client) loadSnapshot(ctx context.Context) (*snapshot, error) {
	bills, err := c.fetchBills(ctx)
	if err != nil {
		return nil, err
	}

	incomes, err := c.fetchIncomes(ctx)
	if err != nil {
		return nil, err
	}

	debts, err := c.fetchDebts(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := c.fetchSettings(ctx)
	if err != nil {
		return nil, err
	}

	return &snapshot{
		bills:    bills,
		incomes:  incomes,
		debts:    debts,
		settings: settings,
	}, nil
}

func (c *Client) fetchBills(ctx context.Context) ([]*Bill, error) {
	if c.source == nil {
		return nil, ErrNoDataSource
	}
	var bills []*Bill
	err := c.observe(ctx, "bills.list", func() error {
		var err error
		bills, err = c.source.Bills(ctx)
		return err
	})
	return bills, err
}

func (c *Client) fetchIncomes(ctx context.Context) ([]*Income, error) {
	if c.source == nil {
		return nil, ErrNoDataSource
	}
	var incomes []*Income
	err := c.observe(ctx, "income.list", func() error {
		var err error
		incomes, err = c.source.Incomes(ctx)
		return err
	})
	return incomes, err
}

func (c *Client) fetchDebts(ctx context.Context) ([]*Debt, error) {
	if c.source == nil {
		return nil, ErrNoDataSource
	}
	var debts []*Debt
	err := c.observe(ctx, "debts.list", func() error {
		var err error
		debts, err = c.source.Debts(ctx)
		return err
	})
	return debts, err
}

func (c *Client) fetchTransactions(ctx context.Context, from, to time.Time) ([]*Transaction, error) {
	if c.source == nil {
		return nil, ErrNoDataSource
	}
	var transactions []*Transaction
	err := c.observe(ctx, "transactions.list", func() error {
		var err error
		transactions, err = c.source.Transactions(ctx, from, to)
		return err
	})
	return transactions, err
}

// fetchSettings returns the user settings, substituting an empty Settings
// when the source has none. Budget evaluation and projection both degrade
// to defaults rather than fail.
func (c *Client) fetchSettings(ctx context.Context) (*Settings, error) {
	if c.source == nil {
		return nil, ErrNoDataSource
	}
	var settings *Settings
	err := c.observe(ctx, "settings.get", func() error {
		var err error
		settings, err = c.source.Settings(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &Settings{}
	}
	return settings, nil
}

// observe wraps a data-source call with timing, debug logging, and
// Sentry capture.
func (c *Client) observe(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	duration := time.Since(start)

	if c.options.Logger != nil {
		c.options.Logger.Debug("data source call", "operation", operation, "duration", duration)
	}

	if err != nil {
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("fireside.operation", operation)
				scope.SetContext("fireside", map[string]interface{}{
					"duration": duration.String(),
				})
				hub.CaptureException(err)
			})
		} else {
			sentry.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("fireside.operation", operation)
				scope.SetContext("fireside", map[string]interface{}{
					"duration": duration.String(),
				})
				sentry.CaptureException(err)
			})
		}
	}

	return err
}
