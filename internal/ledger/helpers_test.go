package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/date"
)

// testClock is a settable clock shared with a Book.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Set(day string) {
	c.now = date.MustParse(day).StartOfDay(time.UTC).Add(9 * time.Hour)
}

func newTestBook(t *testing.T, today string) (*Book, *testClock) {
	t.Helper()
	clock := &testClock{}
	clock.Set(today)
	n := 0
	book := NewBook(
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("gen-%d", n)
		}),
	)
	return book, clock
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) date.Date { return date.MustParse(s) }

func created(s string) time.Time {
	return date.MustParse(s).StartOfDay(time.UTC).Add(8 * time.Hour)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s got %s", want, got.String())
}

func mustAccount(t *testing.T, b *Book, id string, typ AccountType, initial string, createdOn string) Account {
	t.Helper()
	a, err := b.AddAccount(Account{
		ID:             id,
		Name:           id,
		Type:           typ,
		InitialBalance: dec(initial),
		CreatedAt:      created(createdOn),
	})
	require.NoError(t, err)
	return a
}

func mustAdd(t *testing.T, b *Book, on string, tx Transaction) Transaction {
	t.Helper()
	added, err := b.AddTransaction(day(on), tx)
	require.NoError(t, err)
	return added
}

func balanceOf(t *testing.T, b *Book, accountID, asOf string) decimal.Decimal {
	t.Helper()
	bal, err := b.Balance(accountID, day(asOf))
	require.NoError(t, err)
	return bal
}
