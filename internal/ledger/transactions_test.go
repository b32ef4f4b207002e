package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTransaction_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		tx      Transaction
		wantErr error
	}{
		{
			name:    "zero amount",
			tx:      Transaction{Type: TypeSpending, Amount: dec("0"), AccountID: "checking"},
			wantErr: ErrValidation,
		},
		{
			name:    "negative amount",
			tx:      Transaction{Type: TypeIncome, Amount: dec("-5"), AccountID: "checking"},
			wantErr: ErrValidation,
		},
		{
			name:    "unknown type",
			tx:      Transaction{Type: "refund", Amount: dec("5")},
			wantErr: ErrValidation,
		},
		{
			name:    "transfer without destination",
			tx:      Transaction{Type: TypeTransfer, Amount: dec("5"), AccountID: "checking"},
			wantErr: ErrValidation,
		},
		{
			name:    "transfer to itself",
			tx:      Transaction{Type: TypeTransfer, Amount: dec("5"), AccountID: "checking", TransferToAccountID: "checking"},
			wantErr: ErrValidation,
		},
		{
			name:    "destination on spending",
			tx:      Transaction{Type: TypeSpending, Amount: dec("5"), AccountID: "checking", TransferToAccountID: "savings"},
			wantErr: ErrValidation,
		},
		{
			name:    "unknown account",
			tx:      Transaction{Type: TypeSpending, Amount: dec("5"), AccountID: "nope"},
			wantErr: ErrNotFound,
		},
		{
			name: "valid transfer",
			tx:   Transaction{Type: TypeTransfer, Amount: dec("5"), AccountID: "checking", TransferToAccountID: "savings"},
		},
		{
			name: "spending without account",
			tx:   Transaction{Type: TypeSpending, Amount: dec("5")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := newTestBook(t, "2025-03-10")
			mustAccount(t, b, "checking", AccountChecking, "0", "2025-01-01")
			mustAccount(t, b, "savings", AccountSavings, "0", "2025-01-01")

			_, err := b.AddTransaction(day("2025-03-01"), tc.tx)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, b.Dates(), "store untouched")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAddTransaction_AppendsByType(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	mustAccount(t, b, "checking", AccountChecking, "0", "2025-01-01")
	mustAccount(t, b, "savings", AccountSavings, "0", "2025-01-01")

	mustAdd(t, b, "2025-03-01", Transaction{ID: "a", Type: TypeIncome, Amount: dec("1"), AccountID: "checking"})
	mustAdd(t, b, "2025-03-01", Transaction{ID: "b", Type: TypeSpending, Amount: dec("2"), AccountID: "checking"})
	mustAdd(t, b, "2025-03-01", Transaction{ID: "c", Type: TypeSpending, Amount: dec("3"), AccountID: "checking"})
	mustAdd(t, b, "2025-03-01", Transaction{ID: "d", Type: TypeTransfer, Amount: dec("4"), AccountID: "checking", TransferToAccountID: "savings"})

	bucket := b.Day(day("2025-03-01"))
	require.Len(t, bucket.Income, 1)
	require.Len(t, bucket.Spending, 2)
	require.Len(t, bucket.Transfers, 1)
	assert.Equal(t, "b", bucket.Spending[0].ID)
	assert.Equal(t, "c", bucket.Spending[1].ID)

	_, err := b.AddTransaction(day("2025-03-01"), Transaction{ID: "a", Type: TypeSpending, Amount: dec("1")})
	assert.ErrorIs(t, err, ErrValidation, "ids are unique within a bucket")

	_, err = b.AddTransaction(day("2025-03-02"), Transaction{ID: "a", Type: TypeSpending, Amount: dec("1")})
	assert.NoError(t, err, "ids may repeat across buckets")
}

func TestAddTransaction_GeneratesID(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")

	tx := mustAdd(t, b, "2025-03-01", Transaction{Type: TypeSpending, Amount: dec("1")})
	assert.Equal(t, "gen-1", tx.ID)
}

func TestDay_ReturnsCopy(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	mustAdd(t, b, "2025-03-01", Transaction{ID: "a", Type: TypeSpending, Amount: dec("1")})

	bucket := b.Day(day("2025-03-01"))
	bucket.Spending[0].Amount = dec("999")

	tx, err := b.Transaction(day("2025-03-01"), "a")
	require.NoError(t, err)
	assertDecimal(t, "1", tx.Amount)
	assert.True(t, b.Day(day("2025-03-02")).IsEmpty())
}

func TestRemoveTransaction(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	mustAdd(t, b, "2025-03-01", Transaction{ID: "a", Type: TypeSpending, Amount: dec("1")})

	_, err := b.RemoveTransaction(day("2025-03-01"), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "transaction", nf.Kind)

	removed, err := b.RemoveTransaction(day("2025-03-01"), "a")
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "a", removed[0].Transaction.ID)
	assert.Empty(t, b.Dates(), "empty bucket dropped")
}

func TestRemoveTransaction_RecurringCascadesForwardOnly(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	for _, on := range []string{"2025-03-01", "2025-03-15", "2025-04-15", "2025-05-15"} {
		mustAdd(t, b, on, Transaction{
			ID:          InstanceID("rent", day(on)),
			Type:        TypeSpending,
			Amount:      dec("50"),
			IsRecurring: true,
			RecurringID: "rent",
		})
	}
	mustAdd(t, b, "2025-04-15", Transaction{ID: "coffee", Type: TypeSpending, Amount: dec("3")})

	removed, err := b.RemoveTransaction(day("2025-03-15"), InstanceID("rent", day("2025-03-15")))
	require.NoError(t, err)
	assert.Len(t, removed, 3)

	assert.Len(t, b.Day(day("2025-03-01")).Spending, 1, "earlier instance is history")
	assert.True(t, b.Day(day("2025-03-15")).IsEmpty())
	assert.Equal(t, "coffee", b.Day(day("2025-04-15")).Spending[0].ID)
	assert.Len(t, b.Day(day("2025-04-15")).Spending, 1)
	assert.True(t, b.Day(day("2025-05-15")).IsEmpty())
}

func TestUpdateTransaction(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	mustAccount(t, b, "checking", AccountChecking, "100", "2025-01-01")
	mustAccount(t, b, "savings", AccountSavings, "100", "2025-01-01")
	mustAdd(t, b, "2025-03-01", Transaction{ID: "a", Type: TypeSpending, Amount: dec("10"), AccountID: "checking"})

	amount := dec("25")
	savings := "savings"
	updated, err := b.UpdateTransaction(day("2025-03-01"), "a", TransactionPatch{Amount: &amount, AccountID: &savings})
	require.NoError(t, err)
	assertDecimal(t, "25", updated.Amount)
	assertDecimal(t, "100", balanceOf(t, b, "checking", "2025-03-10"))
	assertDecimal(t, "75", balanceOf(t, b, "savings", "2025-03-10"))

	zero := dec("0")
	_, err = b.UpdateTransaction(day("2025-03-01"), "a", TransactionPatch{Amount: &zero})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = b.UpdateTransaction(day("2025-03-02"), "a", TransactionPatch{Amount: &amount})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveTransaction(t *testing.T) {
	t.Run("manual keeps id", func(t *testing.T) {
		b, _ := newTestBook(t, "2025-03-10")
		mustAdd(t, b, "2025-03-01", Transaction{ID: "a", Type: TypeSpending, Amount: dec("10")})

		moved, err := b.MoveTransaction(day("2025-03-01"), "a", day("2025-03-05"))
		require.NoError(t, err)
		assert.Equal(t, "a", moved.ID)
		assert.True(t, b.Day(day("2025-03-01")).IsEmpty())
		assert.Len(t, b.Day(day("2025-03-05")).Spending, 1)
	})

	t.Run("manual id collision gets new id", func(t *testing.T) {
		b, _ := newTestBook(t, "2025-03-10")
		mustAdd(t, b, "2025-03-01", Transaction{ID: "a", Type: TypeSpending, Amount: dec("10")})
		mustAdd(t, b, "2025-03-05", Transaction{ID: "a", Type: TypeSpending, Amount: dec("20")})

		moved, err := b.MoveTransaction(day("2025-03-01"), "a", day("2025-03-05"))
		require.NoError(t, err)
		assert.NotEqual(t, "a", moved.ID)
		assert.Len(t, b.Day(day("2025-03-05")).Spending, 2)
	})

	t.Run("recurring becomes manual", func(t *testing.T) {
		b, _ := newTestBook(t, "2025-03-10")
		id := InstanceID("rent", day("2025-03-15"))
		mustAdd(t, b, "2025-03-15", Transaction{ID: id, Type: TypeSpending, Amount: dec("50"), IsRecurring: true, RecurringID: "rent"})
		mustAdd(t, b, "2025-04-15", Transaction{ID: InstanceID("rent", day("2025-04-15")), Type: TypeSpending, Amount: dec("50"), IsRecurring: true, RecurringID: "rent"})

		moved, err := b.MoveTransaction(day("2025-03-15"), id, day("2025-03-16"))
		require.NoError(t, err)
		assert.NotEqual(t, id, moved.ID)
		assert.False(t, moved.IsRecurring)
		assert.Empty(t, moved.RecurringID)
		assert.Len(t, b.Day(day("2025-04-15")).Spending, 1, "move does not cascade")
	})

	t.Run("missing", func(t *testing.T) {
		b, _ := newTestBook(t, "2025-03-10")
		_, err := b.MoveTransaction(day("2025-03-01"), "a", day("2025-03-05"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRange(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	mustAdd(t, b, "2025-03-03", Transaction{ID: "c", Type: TypeSpending, Amount: dec("1")})
	mustAdd(t, b, "2025-03-01", Transaction{ID: "a", Type: TypeSpending, Amount: dec("1")})
	mustAdd(t, b, "2025-03-09", Transaction{ID: "z", Type: TypeSpending, Amount: dec("1")})

	entries := b.Range(day("2025-03-01"), day("2025-03-05"))
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Transaction.ID)
	assert.Equal(t, "c", entries[1].Transaction.ID)
}
