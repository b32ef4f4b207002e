// Package request holds the parsing and error mapping shared by the v1
// handlers.
package request

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// Error maps a service error onto an HTTP status: validation failures are
// 400, missing entities 404 and anything else 500.
func Error(message string, err error) error {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return huma.NewError(http.StatusBadRequest, message, err)
	case errors.Is(err, ledger.ErrNotFound):
		return huma.NewError(http.StatusNotFound, message, err)
	default:
		return huma.NewError(http.StatusInternalServerError, message, err)
	}
}

// Date parses a required YYYY-MM-DD value.
func Date(field, value string) (date.Date, error) {
	d, err := date.Parse(value)
	if err != nil {
		return date.Date{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return d, nil
}

// OptionalDate parses a YYYY-MM-DD value, returning nil when it is empty.
func OptionalDate(field, value string) (*date.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := Date(field, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Amount parses a required decimal amount.
func Amount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return amount, nil
}

// AmountOr parses a decimal amount, returning fallback when it is empty.
func AmountOr(field, value string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if value == "" {
		return fallback, nil
	}
	return Amount(field, value)
}

// OptionalAmount parses a decimal amount, returning nil when it is empty.
func OptionalAmount(field, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	amount, err := Amount(field, value)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

// FormatDate renders an optional date, empty when nil.
func FormatDate(d *date.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
