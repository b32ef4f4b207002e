package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalance_CheckingScenario(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	mustAccount(t, b, "checking", AccountChecking, "1000", "2025-03-01")

	mustAdd(t, b, "2025-03-01", Transaction{Type: TypeIncome, Amount: dec("500"), AccountID: "checking"})
	mustAdd(t, b, "2025-03-03", Transaction{Type: TypeSpending, Amount: dec("200"), AccountID: "checking"})

	assertDecimal(t, "1500", balanceOf(t, b, "checking", "2025-03-02"))
	assertDecimal(t, "1300", balanceOf(t, b, "checking", "2025-03-03"))
}

func TestBalance_SignConventions(t *testing.T) {
	testCases := []struct {
		name        string
		accountType AccountType
		tx          Transaction
		want        string
	}{
		{
			name:        "asset income adds",
			accountType: AccountChecking,
			tx:          Transaction{Type: TypeIncome, Amount: dec("10"), AccountID: "subject"},
			want:        "110",
		},
		{
			name:        "asset spending subtracts",
			accountType: AccountChecking,
			tx:          Transaction{Type: TypeSpending, Amount: dec("10"), AccountID: "subject"},
			want:        "90",
		},
		{
			name:        "asset transfer out subtracts",
			accountType: AccountSavings,
			tx:          Transaction{Type: TypeTransfer, Amount: dec("10"), AccountID: "subject", TransferToAccountID: "other"},
			want:        "90",
		},
		{
			name:        "asset transfer in adds",
			accountType: AccountSavings,
			tx:          Transaction{Type: TypeTransfer, Amount: dec("10"), AccountID: "other", TransferToAccountID: "subject"},
			want:        "110",
		},
		{
			name:        "credit payment subtracts",
			accountType: AccountCreditCard,
			tx:          Transaction{Type: TypeIncome, Amount: dec("10"), AccountID: "subject"},
			want:        "90",
		},
		{
			name:        "credit spending adds",
			accountType: AccountCreditCard,
			tx:          Transaction{Type: TypeSpending, Amount: dec("10"), AccountID: "subject"},
			want:        "110",
		},
		{
			name:        "credit cash advance adds",
			accountType: AccountCreditCard,
			tx:          Transaction{Type: TypeTransfer, Amount: dec("10"), AccountID: "subject", TransferToAccountID: "other"},
			want:        "110",
		},
		{
			name:        "credit transfer in subtracts",
			accountType: AccountCreditCard,
			tx:          Transaction{Type: TypeTransfer, Amount: dec("10"), AccountID: "other", TransferToAccountID: "subject"},
			want:        "90",
		},
		{
			name:        "unrelated account ignored",
			accountType: AccountChecking,
			tx:          Transaction{Type: TypeSpending, Amount: dec("10"), AccountID: "other"},
			want:        "100",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := newTestBook(t, "2025-03-10")
			mustAccount(t, b, "subject", tc.accountType, "100", "2025-01-01")
			mustAccount(t, b, "other", AccountChecking, "0", "2025-01-01")
			mustAdd(t, b, "2025-02-01", tc.tx)

			assertDecimal(t, tc.want, balanceOf(t, b, "subject", "2025-03-10"))
		})
	}
}

func TestBalance_IgnoresTransactionsBeforeCreation(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	mustAccount(t, b, "checking", AccountChecking, "100", "2025-03-05")

	mustAdd(t, b, "2025-03-04", Transaction{Type: TypeSpending, Amount: dec("40"), AccountID: "checking"})
	mustAdd(t, b, "2025-03-05", Transaction{Type: TypeSpending, Amount: dec("10"), AccountID: "checking"})

	assertDecimal(t, "90", balanceOf(t, b, "checking", "2025-03-10"))
}

func TestBalance_StableWithoutActivity(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	mustAccount(t, b, "checking", AccountChecking, "100", "2025-01-01")
	mustAdd(t, b, "2025-02-01", Transaction{Type: TypeIncome, Amount: dec("5"), AccountID: "checking"})
	mustAdd(t, b, "2025-02-20", Transaction{Type: TypeSpending, Amount: dec("7")})

	t1 := balanceOf(t, b, "checking", "2025-02-02")
	t2 := balanceOf(t, b, "checking", "2025-06-30")
	assert.True(t, t1.Equal(t2))
}

func TestBalance_RemoveThenAddRestores(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	mustAccount(t, b, "checking", AccountChecking, "100", "2025-01-01")
	mustAccount(t, b, "card", AccountCreditCard, "0", "2025-01-01")
	debt, err := b.AddDebt(Debt{Name: "card", Type: DebtCreditCard, AccountID: "card"})
	require.NoError(t, err)

	tx := mustAdd(t, b, "2025-03-02", Transaction{ID: "pay", Type: TypeTransfer, Amount: dec("30"), AccountID: "checking", TransferToAccountID: "card"})
	mustAdd(t, b, "2025-03-01", Transaction{Type: TypeSpending, Amount: dec("80"), AccountID: "card"})

	before := balanceOf(t, b, "checking", "2025-03-10")
	debtBefore, _ := b.Debt(debt.ID)

	_, err = b.RemoveTransaction(day("2025-03-02"), "pay")
	require.NoError(t, err)
	mustAdd(t, b, "2025-03-02", tx)

	assert.True(t, before.Equal(balanceOf(t, b, "checking", "2025-03-10")))
	debtAfter, _ := b.Debt(debt.ID)
	assert.True(t, debtBefore.CurrentBalance.Equal(debtAfter.CurrentBalance))
	assertDecimal(t, "50", debtAfter.CurrentBalance)
}

func TestBalance_UnknownAccount(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	_, err := b.Balance("missing", day("2025-03-10"))
	assert.ErrorIs(t, err, ErrNotFound)
}
