// Package store provides a SQLite-backed snapshot of the user's finance
// data for offline runs. A snapshot satisfies fireside.DataSource, so
// the engine reads from it exactly as it would from the hosted backend.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/firesidecapital/fireside-go/pkg/fireside"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	settingSafetyBuffer    = "safety_buffer"
	settingCheckingBalance = "checking_balance"
	settingProjectionDays  = "projection_days"

	metaRefreshedAt = "refreshed_at"
)

// Snapshot is a SQLite-backed copy of bills, income, debts,
// transactions, and settings.
type Snapshot struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Snapshot, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrap(err, "creating snapshot dir")
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, errors.Wrap(err, "opening snapshot db")
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}

	return &Snapshot{db: db}, nil
}

// Close closes the snapshot database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// Replace rewrites the whole snapshot from a fresh backend fetch and
// stamps the refresh time.
func (s *Snapshot) Replace(ctx context.Context, bills []*fireside.Bill, incomes []*fireside.Income, debts []*fireside.Debt, transactions []*fireside.Transaction, settings *fireside.Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning snapshot replace")
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"bills", "incomes", "debts", "transactions", "category_budgets", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "clearing %s", table)
		}
	}

	for _, bill := range bills {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO bills (id, name, amount, frequency, due_day, is_active, is_paid) VALUES (?, ?, ?, ?, ?, ?, ?)",
			bill.ID, bill.Name, bill.Amount, bill.Frequency, bill.DueDay, bill.IsActive, bill.IsPaid)
		if err != nil {
			return errors.Wrap(err, "inserting bill")
		}
	}

	for _, income := range incomes {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO incomes (id, name, amount, frequency, next_payment_date, is_active) VALUES (?, ?, ?, ?, ?, ?)",
			income.ID, income.Name, income.Amount, income.Frequency, income.StartDate().String(), income.IsActive)
		if err != nil {
			return errors.Wrap(err, "inserting income")
		}
	}

	for _, debt := range debts {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO debts (id, name, monthly_payment, next_payment_date, is_active) VALUES (?, ?, ?, ?, ?)",
			debt.ID, debt.Name, debt.MonthlyPayment, debt.NextPaymentDate.String(), debt.IsActive)
		if err != nil {
			return errors.Wrap(err, "inserting debt")
		}
	}

	for _, txn := range transactions {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO transactions (id, date, amount, category, merchant) VALUES (?, ?, ?, ?, ?)",
			txn.ID, txn.Date.String(), txn.Amount, txn.Category, txn.Merchant)
		if err != nil {
			return errors.Wrap(err, "inserting transaction")
		}
	}

	if settings != nil {
		for category, amount := range settings.CategoryBudgets {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO category_budgets (category, amount) VALUES (?, ?)", category, amount)
			if err != nil {
				return errors.Wrap(err, "inserting category budget")
			}
		}
		for key, value := range map[string]float64{
			settingSafetyBuffer:    settings.SafetyBuffer,
			settingCheckingBalance: settings.CheckingBalance,
			settingProjectionDays:  float64(settings.ProjectionDays),
		} {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO settings (key, value) VALUES (?, ?)", key, value)
			if err != nil {
				return errors.Wrap(err, "inserting setting")
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		metaRefreshedAt, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.Wrap(err, "stamping refresh time")
	}

	return errors.Wrap(tx.Commit(), "committing snapshot replace")
}

// AddTransactions inserts imported transactions, replacing rows that
// share an ID.
func (s *Snapshot) AddTransactions(ctx context.Context, transactions []*fireside.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction insert")
	}
	defer func() { _ = tx.Rollback() }()

	for _, txn := range transactions {
		_, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO transactions (id, date, amount, category, merchant) VALUES (?, ?, ?, ?, ?)",
			txn.ID, txn.Date.String(), txn.Amount, txn.Category, txn.Merchant)
		if err != nil {
			return errors.Wrap(err, "inserting transaction")
		}
	}

	return errors.Wrap(tx.Commit(), "committing transaction insert")
}

// RefreshedAt returns when the snapshot was last replaced, or the zero
// time for a never-refreshed database.
func (s *Snapshot) RefreshedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", metaRefreshedAt).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, errors.Wrap(err, "reading refresh time")
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parsing refresh time")
	}
	return ts, nil
}

// Bills implements fireside.DataSource
func (s *Snapshot) Bills(ctx context.Context) ([]*fireside.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount, frequency, due_day, is_active, is_paid FROM bills ORDER BY due_day, name")
	if err != nil {
		return nil, errors.Wrap(err, "querying bills")
	}
	defer func() { _ = rows.Close() }()

	var bills []*fireside.Bill
	for rows.Next() {
		var bill fireside.Bill
		if err := rows.Scan(&bill.ID, &bill.Name, &bill.Amount, &bill.Frequency, &bill.DueDay, &bill.IsActive, &bill.IsPaid); err != nil {
			return nil, errors.Wrap(err, "scanning bill")
		}
		bills = append(bills, &bill)
	}
	return bills, rows.Err()
}

// Incomes implements fireside.DataSource
func (s *Snapshot) Incomes(ctx context.Context) ([]*fireside.Income, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount, frequency, next_payment_date, is_active FROM incomes ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "querying incomes")
	}
	defer func() { _ = rows.Close() }()

	var incomes []*fireside.Income
	for rows.Next() {
		var income fireside.Income
		var nextDate sql.NullString
		if err := rows.Scan(&income.ID, &income.Name, &income.Amount, &income.Frequency, &nextDate, &income.IsActive); err != nil {
			return nil, errors.Wrap(err, "scanning income")
		}
		income.NextPaymentDate = parseStoredDate(nextDate)
		incomes = append(incomes, &income)
	}
	return incomes, rows.Err()
}

// Debts implements fireside.DataSource
func (s *Snapshot) Debts(ctx context.Context) ([]*fireside.Debt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, monthly_payment, next_payment_date, is_active FROM debts ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "querying debts")
	}
	defer func() { _ = rows.Close() }()

	var debts []*fireside.Debt
	for rows.Next() {
		var debt fireside.Debt
		var nextDate sql.NullString
		if err := rows.Scan(&debt.ID, &debt.Name, &debt.MonthlyPayment, &nextDate, &debt.IsActive); err != nil {
			return nil, errors.Wrap(err, "scanning debt")
		}
		debt.NextPaymentDate = parseStoredDate(nextDate)
		debts = append(debts, &debt)
	}
	return debts, rows.Err()
}

// Transactions implements fireside.DataSource
func (s *Snapshot) Transactions(ctx context.Context, from, to time.Time) ([]*fireside.Transaction, error) {
	query := "SELECT id, date, amount, category, merchant FROM transactions"
	var args []interface{}
	var clauses []string

	if !from.IsZero() {
		clauses = append(clauses, "date >= ?")
		args = append(args, from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		clauses = append(clauses, "date <= ?")
		args = append(args, to.Format("2006-01-02"))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying transactions")
	}
	defer func() { _ = rows.Close() }()

	var transactions []*fireside.Transaction
	for rows.Next() {
		var txn fireside.Transaction
		var date sql.NullString
		var merchant sql.NullString
		if err := rows.Scan(&txn.ID, &date, &txn.Amount, &txn.Category, &merchant); err != nil {
			return nil, errors.Wrap(err, "scanning transaction")
		}
		txn.Date = parseStoredDate(date)
		txn.Merchant = merchant.String
		transactions = append(transactions, &txn)
	}
	return transactions, rows.Err()
}

// Settings implements fireside.DataSource
func (s *Snapshot) Settings(ctx context.Context) (*fireside.Settings, error) {
	settings := &fireside.Settings{
		CategoryBudgets: make(map[string]float64),
	}

	rows, err := s.db.QueryContext(ctx, "SELECT category, amount FROM category_budgets")
	if err != nil {
		return nil, errors.Wrap(err, "querying category budgets")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, errors.Wrap(err, "scanning category budget")
		}
		settings.CategoryBudgets[category] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	kvRows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, errors.Wrap(err, "querying settings")
	}
	defer func() { _ = kvRows.Close() }()

	for kvRows.Next() {
		var key string
		var value float64
		if err := kvRows.Scan(&key, &value); err != nil {
			return nil, errors.Wrap(err, "scanning setting")
		}
		switch key {
		case settingSafetyBuffer:
			settings.SafetyBuffer = value
		case settingCheckingBalance:
			settings.CheckingBalance = value
		case settingProjectionDays:
			settings.ProjectionDays = int(value)
		}
	}
	return settings, kvRows.Err()
}

// parseStoredDate turns a stored ISO date back into a fireside.Date,
// yielding the zero date for NULL or unparseable values.
func parseStoredDate(value sql.NullString) fireside.Date {
	if !value.Valid || value.String == "" {
		return fireside.Date{}
	}
	t, err := time.Parse("2006-01-02", value.String)
	if err != nil {
		return fireside.Date{}
	}
	return fireside.Date{Time: t}
}
