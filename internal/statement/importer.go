// Package statement imports bank-statement CSV exports into
// transactions the engine can consume.
package statement

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/firesidecapital/fireside-go/pkg/fireside"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// column aliases seen across bank exports
var (
	dateColumns     = []string{"date", "transaction date", "posted date"}
	amountColumns   = []string{"amount", "transaction amount"}
	categoryColumns = []string{"category", "type"}
	merchantColumns = []string{"description", "merchant", "payee", "name"}
)

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02 Jan 2006",
}

// Parse reads a bank-statement CSV and returns its transactions. The
// header row is matched case-insensitively against common column names;
// date and amount columns are required. Rows that fail to parse are
// skipped and reported as validation errors alongside the good rows.
func Parse(r io.Reader) ([]*fireside.Transaction, []*fireside.ValidationError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New("statement is empty")
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading statement header")
	}

	dateIdx := findColumn(header, dateColumns)
	amountIdx := findColumn(header, amountColumns)
	if dateIdx < 0 || amountIdx < 0 {
		return nil, nil, errors.Errorf("statement needs date and amount columns, got %v", header)
	}
	categoryIdx := findColumn(header, categoryColumns)
	merchantIdx := findColumn(header, merchantColumns)

	var transactions []*fireside.Transaction
	var invalid []*fireside.ValidationError

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrapf(err, "reading statement line %d", line)
		}

		date, err := parseDate(record[dateIdx])
		if err != nil {
			invalid = append(invalid, &fireside.ValidationError{
				Field:   "date",
				Message: err.Error(),
				Value:   record[dateIdx],
			})
			continue
		}

		amount, err := parseAmount(record[amountIdx])
		if err != nil {
			invalid = append(invalid, &fireside.ValidationError{
				Field:   "amount",
				Message: err.Error(),
				Value:   record[amountIdx],
			})
			continue
		}

		txn := &fireside.Transaction{
			ID:     uuid.NewString(),
			Date:   fireside.DateOf(date),
			Amount: amount,
		}
		if categoryIdx >= 0 && categoryIdx < len(record) {
			txn.Category = strings.ToLower(strings.TrimSpace(record[categoryIdx]))
		}
		if merchantIdx >= 0 && merchantIdx < len(record) {
			txn.Merchant = strings.TrimSpace(record[merchantIdx])
		}

		transactions = append(transactions, txn)
	}

	return transactions, invalid, nil
}

// findColumn returns the index of the first header matching any alias,
// or -1.
func findColumn(header []string, aliases []string) int {
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for _, alias := range aliases {
			if name == alias {
				return i
			}
		}
	}
	return -1
}

// parseDate tries the known bank-export date layouts.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("missing date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized date %q", value)
}

// parseAmount handles the currency formats banks export: "$1,234.56",
// "(42.00)" for debits, and bare negatives. Parsed exactly as a decimal
// and converted to float64 at the engine boundary.
func parseAmount(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, errors.New("missing amount")
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, errors.Errorf("unrecognized amount %q", value)
	}
	if negative {
		d = d.Neg()
	}

	f, _ := d.Float64()
	return f, nil
}
