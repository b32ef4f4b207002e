package service

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

const defaultLimit = 20

// TransactionCursor identifies a position in a paginated result set.
type TransactionCursor struct {
	Position int
	Limit    int
}

// DayTotals holds the derived totals around one date.
type DayTotals struct {
	Day   ledger.Totals
	Week  ledger.Totals
	Month ledger.Totals
}

// TransactionService handles ledger transactions.
type TransactionService struct {
	core *core
}

// CreateTransaction records a transaction on a date.
func (s *TransactionService) CreateTransaction(ctx context.Context, on date.Date, tx ledger.Transaction) (ledger.Transaction, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Transaction, error) {
		return b.AddTransaction(on, tx)
	})
}

// UpdateTransaction applies a patch to a transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, on date.Date, id string, patch ledger.TransactionPatch) (ledger.Transaction, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Transaction, error) {
		return b.UpdateTransaction(on, id, patch)
	})
}

// DeleteTransaction removes a transaction. Removing a recurring instance
// also removes the later instances of its rule; every removed entry is
// returned.
func (s *TransactionService) DeleteTransaction(ctx context.Context, on date.Date, id string) ([]ledger.Entry, error) {
	return mutate(s.core, func(b *ledger.Book) ([]ledger.Entry, error) {
		return b.RemoveTransaction(on, id)
	})
}

// MoveTransaction moves a transaction to another date.
func (s *TransactionService) MoveTransaction(ctx context.Context, from date.Date, id string, to date.Date) (ledger.Transaction, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Transaction, error) {
		return b.MoveTransaction(from, id, to)
	})
}

// GetDay returns the bucket of one date.
func (s *TransactionService) GetDay(ctx context.Context, on date.Date) (ledger.DayBucket, error) {
	return query(s.core, func(b *ledger.Book) (ledger.DayBucket, error) {
		return b.Day(on), nil
	})
}

// ListTransactions returns a page of the entries dated between from and to
// inclusive, in date order.
func (s *TransactionService) ListTransactions(ctx context.Context, from, to date.Date, cursor *TransactionCursor) ([]ledger.Entry, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	entries, err := query(s.core, func(b *ledger.Book) ([]ledger.Entry, error) {
		return b.Range(from, to), nil
	})
	if err != nil {
		return nil, nil, err
	}

	if offset >= len(entries) {
		return nil, nil, nil
	}
	entries = entries[offset:]

	var nextCursor *TransactionCursor
	if len(entries) > limit {
		entries = entries[:limit]
		nextCursor = &TransactionCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}
	return entries, nextCursor, nil
}

// Totals returns the day, week and month totals around a date.
func (s *TransactionService) Totals(ctx context.Context, on date.Date) (DayTotals, error) {
	return query(s.core, func(b *ledger.Book) (DayTotals, error) {
		return DayTotals{
			Day:   b.DailyTotal(on),
			Week:  b.WeeklyTotal(on),
			Month: b.MonthlyTotal(on.Year(), on.Month()),
		}, nil
	})
}

// Today is the current calendar date as the book sees it.
func (s *TransactionService) Today() date.Date {
	return s.core.book.Today()
}
