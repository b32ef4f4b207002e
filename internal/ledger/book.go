// Package ledger is the finance engine: dated transaction buckets, derived
// account and debt balances, recurring rules, budgets, goals and imports.
//
// A Book is not safe for concurrent use. Callers serialize mutations and may
// read between them; every derived view is computed fresh from the buckets.
package ledger

import (
	"maps"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/date"
)

// Book owns the ledger and every entity referencing it.
type Book struct {
	days       map[date.Date]*DayBucket
	accounts   map[string]*Account
	categories map[string]*Category
	rules      map[string]*RecurringRule
	debts      map[string]*Debt
	payments   map[string]*DebtPayment
	budgets    map[string]*Budget
	goals      map[string]*SavingsGoal

	now   func() time.Time
	newID func() string
}

type Option func(*Book)

// WithClock sets the clock used for "today" and creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// WithIDGenerator sets the generator for ids the book assigns itself.
func WithIDGenerator(newID func() string) Option {
	return func(b *Book) { b.newID = newID }
}

func NewBook(opts ...Option) *Book {
	b := &Book{
		days:       make(map[date.Date]*DayBucket),
		accounts:   make(map[string]*Account),
		categories: make(map[string]*Category),
		rules:      make(map[string]*RecurringRule),
		debts:      make(map[string]*Debt),
		payments:   make(map[string]*DebtPayment),
		budgets:    make(map[string]*Budget),
		goals:      make(map[string]*SavingsGoal),
		now:        time.Now,
		newID:      func() string { return uuid.Must(uuid.NewV4()).String() },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Today is the current date according to the book's clock.
func (b *Book) Today() date.Date { return date.FromTime(b.now()) }

func (b *Book) id(requested string) string {
	if requested != "" {
		return requested
	}
	return b.newID()
}

// sortedDates returns the bucket keys in calendar order.
func (b *Book) sortedDates() []date.Date {
	return slices.SortedFunc(maps.Keys(b.days), date.Date.Compare)
}

// sortedValues copies the values of m ordered by cmp.
func sortedValues[T any](m map[string]*T, cmp func(a, b T) int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, *v)
	}
	slices.SortFunc(out, cmp)
	return out
}
